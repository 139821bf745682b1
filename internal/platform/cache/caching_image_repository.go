// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"imageshare_backend/internal/feature/images/domain/entity"
	"imageshare_backend/internal/feature/images/usecase"
)

// CachingImageRepository decorates an ImageRepository with Redis caching of
// the public image listing, the one read served to anonymous traffic. It
// implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. All other reads pass through.
type CachingImageRepository struct {
	inner     usecase.ImageRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.ImageRepository = (*CachingImageRepository)(nil)

// NewCachingImageRepository decorates an ImageRepository with Redis caching.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses "images".
func NewCachingImageRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ImageRepository, namespace string) *CachingImageRepository {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "images"
	}
	return &CachingImageRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// publicListKey is the single cache key for the public listing.
func (c *CachingImageRepository) publicListKey() string {
	return c.namespace + ":public"
}

// invalidate drops the public listing entry. Best effort: a failed delete
// only means a stale read until the TTL expires.
func (c *CachingImageRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, c.publicListKey()).Err()
}

// ListPublic retrieves public images, checking cache first then falling back
// to the database.
func (c *CachingImageRepository) ListPublic(ctx context.Context) ([]entity.Image, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.ListPublic(ctx)
	}

	key := c.publicListKey()

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Image
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.ListPublic(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Create inserts the record and invalidates the public listing.
func (c *CachingImageRepository) Create(ctx context.Context, img *entity.Image) error {
	if err := c.inner.Create(ctx, img); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Update persists the record and invalidates the public listing.
func (c *CachingImageRepository) Update(ctx context.Context, img *entity.Image) error {
	if err := c.inner.Update(ctx, img); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Delete removes the record and invalidates the public listing.
func (c *CachingImageRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// FindByID passes through to the underlying repository.
func (c *CachingImageRepository) FindByID(ctx context.Context, id uint) (*entity.Image, error) {
	return c.inner.FindByID(ctx, id)
}

// FindBySlug passes through to the underlying repository. Slug lookups gate
// visibility decisions, so they always read the authoritative store.
func (c *CachingImageRepository) FindBySlug(ctx context.Context, slug string) (*entity.Image, error) {
	return c.inner.FindBySlug(ctx, slug)
}

// ListByOwner passes through to the underlying repository.
func (c *CachingImageRepository) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Image, error) {
	return c.inner.ListByOwner(ctx, ownerID)
}
