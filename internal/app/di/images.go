package di

import (
	"time"

	"imageshare_backend/internal/feature/images/adapters"
	"imageshare_backend/internal/feature/images/usecase"
	"imageshare_backend/internal/platform/cache"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NewImageRepository creates an ImageRepository implementation.
// If Redis is available, the Postgres repository is wrapped with a caching
// decorator for the public listing. Otherwise the plain repository is used.
func NewImageRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.ImageRepository {
	repo := adapters.NewImagePostgres(db)
	if rdb != nil {
		return cache.NewCachingImageRepository(rdb, ttl, repo, "images")
	}
	return repo
}
