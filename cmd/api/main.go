package main

import (
	"context"
	"log"
	"time"

	"app/internal/config"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	domainrepo "app/internal/repository"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// デモ認証の共通パスワード（全ユーザー共通）
const sharedDemoPassword = "123456"

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func newJWTIssuer(secret string) *jwtIssuer {
	//アクセストークン
	return &jwtIssuer{
		secret:    []byte(secret),
		accessTTL: 15 * time.Minute,
	}
}

func (i *jwtIssuer) Issue(userID string, isAdmin bool, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub": userID,
		"adm": isAdmin,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// STORE_DRIVERに応じたKVストアを開く
func openKVStore(cfg config.Config) (domainrepo.KVStore, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		gormDB, err := db.Connect(cfg)
		if err != nil {
			return nil, err
		}
		if err := gormDB.AutoMigrate(&infraRepo.KVRecord{}); err != nil {
			return nil, err
		}
		return infraRepo.NewKVGormStore(gormDB), nil

	case config.StoreDriverMemory:
		return infraRepo.NewKVMemoryStore(), nil

	default:
		badgerDB, err := infraRepo.OpenBadger(cfg.BadgerPath)
		if err != nil {
			return nil, err
		}
		return infraRepo.NewKVBadgerStore(badgerDB), nil
	}
}

func main() {
	//.envは無くてもよい（環境変数があれば動く）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//永続ストア
	kv, err := openKVStore(cfg)
	if err != nil {
		log.Fatal(err)
	}

	//Repository（メモリ実装）生成
	productRepo := infraRepo.NewProductMemoryRepository(
		infraRepo.SeedProducts(),
		infraRepo.SeedCategories(),
	)
	directory := infraRepo.NewUserDirectoryMemory(infraRepo.SeedUsers())

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//bcrypt（共通デモパスワードのHash / ログイン時のVerify）
	hasher := usecase.NewBcryptPasswordHasher(12)
	verifier := usecase.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := newJWTIssuer(cfg.JWTSecret)

	//Usecase生成
	productUC := usecase.NewProductUsecase(productRepo, idGen, clock)
	cartUC := usecase.NewCartUsecase(productRepo, kv)
	authUC, err := usecase.NewAuthUsecase(
		directory,
		kv,
		validator.NewAuthValidator(),
		hasher,
		verifier,
		issuer,
		idGen,
		clock,
		sharedDemoPassword,
	)
	if err != nil {
		log.Fatal(err)
	}

	//起動時にスナップショットから復元
	ctx := context.Background()
	cartUC.Restore(ctx)
	authUC.Restore(ctx)

	//Handler生成
	h := server.Handlers{
		Product:      handler.NewProductHandler(productUC),
		AdminProduct: handler.NewAdminProductHandler(productUC),
		Cart:         handler.NewCartHandler(cartUC),
		Auth:         handler.NewAuthHandler(authUC),
	}

	//Server起動
	if err := server.Start(cfg, h); err != nil {
		log.Fatal(err)
	}
}
