// Package usecase implements the business logic for the images feature.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"imageshare_backend/internal/feature/images/domain/entity"

	"github.com/google/uuid"
)

// ImageRepository abstracts the persistence layer for image records.
// Following Go convention, the interface is defined by the consumer (usecase),
// not the provider (adapters).
type ImageRepository interface {
	// Create persists a new image record. If the slug collides with an existing
	// record it returns ErrSlugTaken.
	Create(ctx context.Context, img *entity.Image) error

	// FindByID retrieves an image by its ID, or ErrImageNotFound.
	FindByID(ctx context.Context, id uint) (*entity.Image, error)

	// FindBySlug retrieves an image by its slug, or ErrImageNotFound.
	FindBySlug(ctx context.Context, slug string) (*entity.Image, error)

	// ListPublic retrieves all images with IsPublic set.
	ListPublic(ctx context.Context) ([]entity.Image, error)

	// ListByOwner retrieves all images owned by ownerID, public and private alike.
	ListByOwner(ctx context.Context, ownerID uint) ([]entity.Image, error)

	// Update persists changes to an existing image record.
	Update(ctx context.Context, img *entity.Image) error

	// Delete removes the image record with the given ID.
	Delete(ctx context.Context, id uint) error
}

// ArtifactStore abstracts the binary object store holding the image artifacts.
type ArtifactStore interface {
	// Put stores an artifact under the given key.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// Get opens the artifact stored under the given key.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the artifact stored under the given key.
	Delete(ctx context.Context, key string) error
}

// OwnerVerifier reports whether an account still exists. Implemented by the
// auth feature's account repository.
type OwnerVerifier interface {
	Exists(ctx context.Context, accountID uint) (bool, error)
}

// imagesUsecase implements the image lifecycle: upload, lookup, visibility
// toggling, deletion and owner-cascade purge.
type imagesUsecase struct {
	images ImageRepository
	store  ArtifactStore
	owners OwnerVerifier
}

// NewImagesUsecase creates a new imagesUsecase instance.
func NewImagesUsecase(images ImageRepository, store ArtifactStore, owners OwnerVerifier) *imagesUsecase {
	return &imagesUsecase{
		images: images,
		store:  store,
		owners: owners,
	}
}

// Upload stores the artifact and inserts a new image record owned by ownerID.
// The artifact write happens before the record insert; the two are not atomic.
// If the record insert fails the stored artifact is removed best-effort.
// New images start public.
func (u *imagesUsecase) Upload(ctx context.Context, ownerID uint, r io.Reader, size int64, contentType string) (*entity.Image, error) {
	ok, err := u.owners.Exists(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify owner: %w", err)
	}
	if !ok {
		return nil, ErrOwnerNotFound
	}

	key := "uploads/" + uuid.NewString()
	if err := u.store.Put(ctx, key, r, size, contentType); err != nil {
		return nil, fmt.Errorf("failed to store artifact: %w", err)
	}

	img, err := u.insertWithFreshSlug(ctx, ownerID, key, size, contentType)
	if err != nil {
		// Record insert failed: remove the just-written artifact so it does not
		// linger as an orphan. Failure here only leaks storage, never state.
		if delErr := u.store.Delete(ctx, key); delErr != nil {
			slog.Warn("failed to clean up artifact after insert failure", "key", key, "error", delErr)
		}
		return nil, err
	}
	return img, nil
}

// insertWithFreshSlug allocates a slug and inserts the record, retrying
// allocation when the store reports a slug collision. The unique index on the
// slug column is the actual uniqueness guarantee; the allocator's pre-check
// only makes collisions unlikely.
func (u *imagesUsecase) insertWithFreshSlug(ctx context.Context, ownerID uint, storageKey string, size int64, contentType string) (*entity.Image, error) {
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		slug, err := u.allocateSlug(ctx)
		if err != nil {
			return nil, err
		}
		img := &entity.Image{
			OwnerID:     ownerID,
			StorageKey:  storageKey,
			ContentType: contentType,
			Size:        size,
			Slug:        slug,
			IsPublic:    true,
		}
		err = u.images.Create(ctx, img)
		if err == nil {
			return img, nil
		}
		if !errors.Is(err, ErrSlugTaken) {
			return nil, err
		}
		// Lost the race to a concurrent writer; allocate again.
	}
	return nil, ErrSlugSpaceExhausted
}

// ListPublic returns all public images.
func (u *imagesUsecase) ListPublic(ctx context.Context) ([]entity.Image, error) {
	return u.images.ListPublic(ctx)
}

// ListByOwner returns all images owned by ownerID, public and private alike.
// The caller must already have been authenticated as ownerID.
func (u *imagesUsecase) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Image, error) {
	return u.images.ListByOwner(ctx, ownerID)
}

// GetBySlug looks up an image by slug and applies the visibility rule.
// viewerID is nil for anonymous requests. Private images viewed by anyone but
// their owner yield ErrForbidden.
func (u *imagesUsecase) GetBySlug(ctx context.Context, slug string, viewerID *uint) (*entity.Image, error) {
	img, err := u.images.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !CanViewImage(viewerID, img) {
		return nil, ErrForbidden
	}
	return img, nil
}

// OpenArtifact streams the binary artifact for the image with the given slug,
// subject to the same visibility rule as GetBySlug. The record and the
// artifact are not kept in lockstep: a record may reference an artifact that
// is already gone, in which case the store's error surfaces here.
func (u *imagesUsecase) OpenArtifact(ctx context.Context, slug string, viewerID *uint) (io.ReadCloser, *entity.Image, error) {
	img, err := u.GetBySlug(ctx, slug, viewerID)
	if err != nil {
		return nil, nil, err
	}
	rc, err := u.store.Get(ctx, img.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open artifact %s: %w", img.StorageKey, err)
	}
	return rc, img, nil
}

// ToggleVisibility flips the image's public flag. Only the owner may.
func (u *imagesUsecase) ToggleVisibility(ctx context.Context, imageID, requesterID uint) (*entity.Image, error) {
	img, err := u.images.FindByID(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if !CanMutateImage(requesterID, img) {
		return nil, ErrForbidden
	}
	img.IsPublic = !img.IsPublic
	if err := u.images.Update(ctx, img); err != nil {
		return nil, fmt.Errorf("failed to update image: %w", err)
	}
	return img, nil
}

// Delete removes the image's artifact and record. Only the owner may.
// Artifact removal is best-effort: if it fails the error is logged and record
// deletion proceeds, because the record is the authoritative side.
func (u *imagesUsecase) Delete(ctx context.Context, imageID, requesterID uint) error {
	img, err := u.images.FindByID(ctx, imageID)
	if err != nil {
		return err
	}
	if !CanMutateImage(requesterID, img) {
		return ErrForbidden
	}
	if err := u.store.Delete(ctx, img.StorageKey); err != nil {
		slog.Warn("failed to delete artifact", "key", img.StorageKey, "image_id", img.ID, "error", err)
	}
	if err := u.images.Delete(ctx, img.ID); err != nil {
		return fmt.Errorf("failed to delete image record: %w", err)
	}
	return nil
}

// PurgeOwner deletes every image owned by ownerID, artifact and record, as
// part of account deletion. Each image is attempted independently; failures
// are collected and returned joined, never aborting the sweep.
func (u *imagesUsecase) PurgeOwner(ctx context.Context, ownerID uint) error {
	imgs, err := u.images.ListByOwner(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to list images for owner %d: %w", ownerID, err)
	}

	var errs []error
	for i := range imgs {
		img := &imgs[i]
		if err := u.store.Delete(ctx, img.StorageKey); err != nil {
			slog.Warn("failed to delete artifact during purge", "key", img.StorageKey, "image_id", img.ID, "error", err)
		}
		if err := u.images.Delete(ctx, img.ID); err != nil {
			errs = append(errs, fmt.Errorf("image %d: %w", img.ID, err))
		}
	}
	return errors.Join(errs...)
}
