package handler_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/handler"
	infra "app/internal/infra/repository"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	testSecret   = "test-secret"
	demoPassword = "123456"
)

type testIDGenerator struct {
	n int
}

func (g *testIDGenerator) NewID() string {
	g.n++
	return fmt.Sprintf("test-id-%d", g.n)
}

type testClock struct{}

func (c *testClock) Now() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

// 本物のHS256で署名する（AuthJWTミドルウェアを通すため）
type testTokenIssuer struct{}

func (i *testTokenIssuer) Issue(userID string, isAdmin bool, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(15 * time.Minute)
	claims := jwt.MapClaims{
		"sub": userID,
		"adm": isAdmin,
		"iat": now.Unix(),
		// ミドルウェア検証用に実時間ベースで張る
		"exp": time.Now().Add(15 * time.Minute).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(testSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// シード済みの全ルートを持つテストサーバー
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := config.Config{JWTSecret: testSecret}

	productRepo := infra.NewProductMemoryRepository(infra.SeedProducts(), infra.SeedCategories())
	directory := infra.NewUserDirectoryMemory(infra.SeedUsers())
	kv := infra.NewKVMemoryStore()

	idGen := &testIDGenerator{}
	clock := &testClock{}

	productUC := usecase.NewProductUsecase(productRepo, idGen, clock)
	cartUC := usecase.NewCartUsecase(productRepo, kv)
	authUC, err := usecase.NewAuthUsecase(
		directory,
		kv,
		validator.NewAuthValidator(),
		usecase.NewBcryptPasswordHasher(4),
		usecase.NewBcryptPasswordVerifier(),
		&testTokenIssuer{},
		idGen,
		clock,
		demoPassword,
	)
	if err != nil {
		t.Fatalf("build auth usecase: %v", err)
	}

	e := echo.New()
	handler.NewProductHandler(productUC).RegisterRoutes(e)
	handler.NewAdminProductHandler(productUC).RegisterRoutes(e, cfg)
	handler.NewCartHandler(cartUC).RegisterRoutes(e)
	handler.NewAuthHandler(authUC).RegisterRoutes(e)

	return e
}

func doRequest(e *echo.Echo, method, target, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response: %v (body=%s)", err, rec.Body.String())
	}
}

// 管理者トークンを取るログインヘルパー
func loginAs(t *testing.T, e *echo.Echo, email string) string {
	t.Helper()

	rec := doRequest(e, http.MethodPost, "/auth/login", `{"email":"`+email+`","password":"`+demoPassword+`"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}

	var out usecase.AuthOutput
	decodeJSON(t, rec, &out)
	return out.Token.AccessToken
}
