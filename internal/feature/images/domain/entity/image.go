// Package entity defines the domain entities for the images feature.
package entity

import "time"

// Image represents an uploaded image record.
// The binary artifact itself lives in the object store under StorageKey;
// this record carries ownership, visibility and the public lookup slug.
type Image struct {
	// ID is the unique identifier for the image record.
	ID uint `gorm:"primaryKey"`

	// OwnerID references the account that uploaded the image.
	// Ownership never transfers for the lifetime of the record.
	OwnerID uint `gorm:"index;not null"`

	// StorageKey is the object-store key of the binary artifact.
	StorageKey string `gorm:"size:255;not null"`

	// ContentType is the MIME type declared at upload, replayed on download.
	ContentType string `gorm:"size:100"`

	// Size is the artifact size in bytes.
	Size int64

	// Slug is the short random token used as the public lookup key.
	// It must be unique across all images.
	Slug string `gorm:"uniqueIndex;size:16;not null"`

	// IsPublic controls anonymous visibility. Images start public.
	IsPublic bool `gorm:"not null;default:true"`

	// CreatedAt is the timestamp when the image was uploaded.
	CreatedAt time.Time
}
