// Package usecase implements the business logic for the images feature.
package usecase

import "errors"

var (
	// ErrImageNotFound is returned when an image cannot be found by ID or slug.
	ErrImageNotFound = errors.New("image not found")

	// ErrOwnerNotFound is returned when the uploading account no longer exists.
	ErrOwnerNotFound = errors.New("owner account not found")

	// ErrForbidden is returned when the requester lacks permission for the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrSlugTaken is returned by the repository when inserting an image whose slug
	// collides with an existing one (store-level unique constraint).
	ErrSlugTaken = errors.New("slug already taken")

	// ErrSlugSpaceExhausted is returned when slug allocation gives up after the
	// maximum number of attempts.
	ErrSlugSpaceExhausted = errors.New("slug allocation exhausted")
)
