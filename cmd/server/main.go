package main

import (
	"context"
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"imageshare_backend/internal/app/di"
	"imageshare_backend/internal/app/router"
	authadapters "imageshare_backend/internal/feature/auth/adapters"
	authhandler "imageshare_backend/internal/feature/auth/transport/handler"
	authusecase "imageshare_backend/internal/feature/auth/usecase"
	imageshandler "imageshare_backend/internal/feature/images/transport/handler"
	imagesusecase "imageshare_backend/internal/feature/images/usecase"
	infradb "imageshare_backend/internal/platform/db"
	jwtmw "imageshare_backend/internal/platform/jwt"
	infraredis "imageshare_backend/internal/platform/redis"
	"imageshare_backend/internal/platform/storage"
	"imageshare_backend/internal/shared/ratelimiter"
)

const (
	tokenExpiry    = time.Hour
	publicListTTL  = time.Minute
	loginRateLimit = 30 // attempts per minute
)

func main() {
	// 署名鍵はプロセス起動時に一度だけ読み込み、以後は不変の設定値として注入する
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set. Set a strong secret before starting.")
	}

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// MinIO（アーティファクトストア）
	store, err := storage.NewMinioStore(context.Background())
	if err != nil {
		log.Fatalf("failed to initialize MinIO: %v", err)
	}

	// Repository
	accountRepo := authadapters.NewAccountPostgres(db)
	imageRepo := di.NewImageRepository(rdb, db, publicListTTL)

	// Usecase
	imagesUC := imagesusecase.NewImagesUsecase(imageRepo, store, accountRepo)
	authUC := authusecase.NewAuthUsecase(accountRepo, jwtmw.NewGenerator(jwtSecret, tokenExpiry), imagesUC)

	// Handler
	authH := authhandler.NewAuthHandler(authUC, jwtmw.NewVerifier(jwtSecret))
	imagesH := imageshandler.NewImagesHandler(imagesUC)

	// ルータ生成
	loginLimiter := ratelimiter.NewRateLimiter(loginRateLimit, time.Minute)
	r := router.NewRouter(authH, imagesH, jwtSecret, loginLimiter)

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
