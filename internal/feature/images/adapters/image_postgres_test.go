package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"imageshare_backend/internal/feature/images/domain/entity"
	"imageshare_backend/internal/feature/images/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.Image{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func seedImage(t *testing.T, repo *imagePostgres, ownerID uint, slug string, isPublic bool) *entity.Image {
	t.Helper()
	img := &entity.Image{
		OwnerID:    ownerID,
		StorageKey: "uploads/" + slug,
		Slug:       slug,
		IsPublic:   isPublic,
	}
	require.NoError(t, repo.Create(context.Background(), img), "failed to seed image")
	return img
}

func TestImagePostgres_Create(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewImagePostgres(db)

		img := seedImage(t, repo, 1, "slugAAAAAA", true)

		assert.NotZero(t, img.ID, "ID is not set")
		assert.False(t, img.CreatedAt.IsZero(), "CreatedAt is not set")
	})

	t.Run("duplicate slug is translated to ErrSlugTaken", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewImagePostgres(db)

		seedImage(t, repo, 1, "sameslugAA", true)

		dup := &entity.Image{OwnerID: 2, StorageKey: "uploads/other", Slug: "sameslugAA", IsPublic: true}
		err := repo.Create(context.Background(), dup)

		assert.ErrorIs(t, err, usecase.ErrSlugTaken, "should return ErrSlugTaken")
	})
}

func TestImagePostgres_FindBySlug(t *testing.T) {
	t.Run("find by slug successfully", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewImagePostgres(db)

		expected := seedImage(t, repo, 1, "findmeAAAA", true)

		found, err := repo.FindBySlug(context.Background(), "findmeAAAA")

		assert.NoError(t, err, "failed to find image")
		assert.Equal(t, expected.ID, found.ID, "ID does not match")
		assert.Equal(t, expected.OwnerID, found.OwnerID, "owner does not match")
	})

	t.Run("unknown slug returns ErrImageNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewImagePostgres(db)

		found, err := repo.FindBySlug(context.Background(), "nosuchslug")

		assert.Nil(t, found, "image should be nil")
		assert.ErrorIs(t, err, usecase.ErrImageNotFound)
	})
}

func TestImagePostgres_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewImagePostgres(db)

	expected := seedImage(t, repo, 1, "byidAAAAAA", false)

	found, err := repo.FindByID(context.Background(), expected.ID)
	assert.NoError(t, err)
	assert.Equal(t, expected.Slug, found.Slug)

	_, err = repo.FindByID(context.Background(), 999)
	assert.ErrorIs(t, err, usecase.ErrImageNotFound)
}

func TestImagePostgres_ListPublic(t *testing.T) {
	db := setupTestDB(t)
	repo := NewImagePostgres(db)

	seedImage(t, repo, 1, "publicAAAA", true)
	seedImage(t, repo, 1, "privateAAA", false)
	seedImage(t, repo, 2, "publicBBBB", true)

	imgs, err := repo.ListPublic(context.Background())

	assert.NoError(t, err, "failed to list public images")
	assert.Len(t, imgs, 2, "only public images should be listed")
	for _, img := range imgs {
		assert.True(t, img.IsPublic, "listed image %s is not public", img.Slug)
	}
}

func TestImagePostgres_ListByOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewImagePostgres(db)

	seedImage(t, repo, 1, "ownpublicA", true)
	seedImage(t, repo, 1, "ownprivate", false)
	seedImage(t, repo, 2, "otherownAA", true)

	imgs, err := repo.ListByOwner(context.Background(), 1)

	assert.NoError(t, err, "failed to list images by owner")
	assert.Len(t, imgs, 2, "public and private images of the owner should be listed")
	for _, img := range imgs {
		assert.Equal(t, uint(1), img.OwnerID, "listed image %s has wrong owner", img.Slug)
	}
}

func TestImagePostgres_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewImagePostgres(db)

	img := seedImage(t, repo, 1, "toggledAAA", true)

	img.IsPublic = false
	require.NoError(t, repo.Update(context.Background(), img), "failed to update image")

	found, err := repo.FindByID(context.Background(), img.ID)
	require.NoError(t, err)
	assert.False(t, found.IsPublic, "visibility change was not persisted")
}

func TestImagePostgres_Delete(t *testing.T) {
	t.Run("successful deletion removes the record", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewImagePostgres(db)

		img := seedImage(t, repo, 1, "deletedAAA", true)

		require.NoError(t, repo.Delete(context.Background(), img.ID))

		_, err := repo.FindByID(context.Background(), img.ID)
		assert.ErrorIs(t, err, usecase.ErrImageNotFound, "image should be gone")
	})

	t.Run("deleting a missing image returns ErrImageNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewImagePostgres(db)

		err := repo.Delete(context.Background(), 999)
		assert.ErrorIs(t, err, usecase.ErrImageNotFound)
	})
}
