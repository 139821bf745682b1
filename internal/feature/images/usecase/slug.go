package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

const (
	// slugLength is the number of characters in a generated slug.
	slugLength = 10

	// slugAlphabet excludes visually ambiguous characters (0/O, 1/l/I).
	slugAlphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// maxSlugAttempts caps collision retries so allocation cannot loop forever.
	maxSlugAttempts = 10
)

// newSlug generates a random slug candidate from the unambiguous alphabet.
func newSlug() (string, error) {
	max := big.NewInt(int64(len(slugAlphabet)))
	b := make([]byte, slugLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate slug: %w", err)
		}
		b[i] = slugAlphabet[n.Int64()]
	}
	return string(b), nil
}

// allocateSlug produces a slug with no image currently using it.
// The repository check is a best-effort pre-check only; the store's unique
// constraint remains the source of truth and insertion must still be prepared
// to see ErrSlugTaken under concurrent writers.
func (u *imagesUsecase) allocateSlug(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		slug, err := newSlug()
		if err != nil {
			return "", err
		}
		_, err = u.images.FindBySlug(ctx, slug)
		if errors.Is(err, ErrImageNotFound) {
			return slug, nil
		}
		if err != nil {
			return "", err
		}
		// Collision: regenerate.
	}
	return "", ErrSlugSpaceExhausted
}
