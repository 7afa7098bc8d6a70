package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// セッションスナップショットの固定キー
const userStorageKey = "storefront:user"

var (
	// メールまたはパスワードが違う（区別して漏らさない）
	ErrInvalidCredentials = errors.New("invalid credentials")

	// emailが既に使用済み
	ErrEmailTaken = errors.New("email taken")

	// 入力が不正
	ErrValidation = errors.New("validation error")

	// 未ログイン
	ErrNoSession = errors.New("no session")
)

// 現在の時間
type Clock interface {
	Now() time.Time
}

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(userID string, isAdmin bool, now time.Time) (token string, expiresAt time.Time, err error)
}

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateLogin(email string, password string) error
	ValidateSignup(name string, email string, password string) error
}

type LoginInput struct {
	Email    string
	Password string
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

type JwtAccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// handlerがJSONにして返す
type AuthOutput struct {
	User  model.User     `json:"user"`
	Token JwtAccessToken `json:"token"`
}

// AuthUsecase はモック認証のセッションを管理します。
// ディレクトリは固定の台帳、パスワードは全員共通のデモ用1値。
// 本番の資格情報システムの置き場所であって、その実装ではない。
type AuthUsecase struct {
	directory repo.UserDirectory
	store     repo.KVStore
	validator AuthValidator
	verifier  PasswordVerifier
	issuer    AccessTokenIssuer
	idGen     IDGenerator
	clock     Clock

	//共通デモパスワードのbcryptハッシュ
	sharedHash string

	mu      sync.Mutex
	current *model.User
}

// DI
// sharedPasswordはデモ用の共通平文（起動時にハッシュ化して保持）。
func NewAuthUsecase(
	directory repo.UserDirectory,
	store repo.KVStore,
	validator AuthValidator,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	idGen IDGenerator,
	clock Clock,
	sharedPassword string,
) (*AuthUsecase, error) {
	sharedHash, err := hasher.Hash(sharedPassword)
	if err != nil {
		return nil, err
	}

	return &AuthUsecase{
		directory:  directory,
		store:      store,
		validator:  validator,
		verifier:   verifier,
		issuer:     issuer,
		idGen:      idGen,
		clock:      clock,
		sharedHash: sharedHash,
	}, nil
}

// Restoreは起動時に1回だけ呼ぶ。
// 保存形が壊れていれば未ログインのまま（エラーにしない）。
func (u *AuthUsecase) Restore(ctx context.Context) {
	raw, ok, err := u.store.Get(ctx, userStorageKey)
	if err != nil || !ok {
		return
	}

	var user model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return
	}
	if user.ID == "" || user.Email == "" {
		return
	}

	u.mu.Lock()
	u.current = &user
	u.mu.Unlock()
}

// ログイン。「ユーザー不在」と「パスワード違い」は区別せず返す。
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (AuthOutput, error) {
	if err := u.validator.ValidateLogin(in.Email, in.Password); err != nil {
		return AuthOutput{}, ErrValidation
	}

	user, err := u.directory.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return AuthOutput{}, ErrInvalidCredentials
		}
		return AuthOutput{}, err
	}

	//パスワード照合（共通デモ値）
	if ok := u.verifier.Verify(in.Password, u.sharedHash); !ok {
		return AuthOutput{}, ErrInvalidCredentials
	}

	return u.startSession(ctx, *user)
}

// サインアップ。成功したらそのままログイン状態にする。
func (u *AuthUsecase) Signup(ctx context.Context, in SignupInput) (AuthOutput, error) {
	if err := u.validator.ValidateSignup(in.Name, in.Email, in.Password); err != nil {
		return AuthOutput{}, ErrValidation
	}

	user := model.User{
		ID:      u.idGen.NewID(),
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		IsAdmin: false,
	}

	if err := u.directory.Create(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			return AuthOutput{}, ErrEmailTaken
		}
		return AuthOutput{}, err
	}

	return u.startSession(ctx, user)
}

// ログアウト。セッションと永続レコードを消す。
func (u *AuthUsecase) Logout(ctx context.Context) error {
	u.mu.Lock()
	u.current = nil
	u.mu.Unlock()

	return u.store.Remove(ctx, userStorageKey)
}

// 現在のユーザー（未ログインはok=false）
func (u *AuthUsecase) Current() (model.User, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.current == nil {
		return model.User{}, false
	}
	return *u.current, true
}

// セッション開始＝current更新＋永続化＋トークン発行
func (u *AuthUsecase) startSession(ctx context.Context, user model.User) (AuthOutput, error) {
	raw, err := json.Marshal(user)
	if err != nil {
		return AuthOutput{}, err
	}
	if err := u.store.Set(ctx, userStorageKey, string(raw)); err != nil {
		return AuthOutput{}, err
	}

	u.mu.Lock()
	u.current = &user
	u.mu.Unlock()

	now := u.clock.Now()
	token, expiresAt, err := u.issuer.Issue(user.ID, user.IsAdmin, now)
	if err != nil {
		return AuthOutput{}, err
	}

	return AuthOutput{
		User: user,
		Token: JwtAccessToken{
			AccessToken: token,
			ExpiresIn:   int(expiresAt.Sub(now).Seconds()),
		},
	}, nil
}

// HTTPErrorへの変換（handler共通）
func AuthErrorToHTTP(err error) error {
	switch {
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, "validation error")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, "email already in use")
	case errors.Is(err, ErrNoSession):
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

// bcryptでハッシュ化
func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

// bcryptハッシュと平文を比較
type BcryptPasswordVerifier struct{}

// DI
func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

// 平文(plain)をbcryptで比較
func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	return err == nil
}
