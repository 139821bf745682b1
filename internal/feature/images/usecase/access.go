package usecase

import "imageshare_backend/internal/feature/images/domain/entity"

// Access-control decisions are pure functions with no side effects.
// The handlers establish identity; these functions only decide.

// CanViewImage reports whether a viewer may read the image.
// Public images are visible to anyone, including anonymous viewers (nil viewerID).
// Private images are visible only to their owner.
func CanViewImage(viewerID *uint, img *entity.Image) bool {
	if img.IsPublic {
		return true
	}
	return viewerID != nil && *viewerID == img.OwnerID
}

// CanMutateImage reports whether requesterID may modify or delete the image.
// Only the owner may; there is no administrative override.
func CanMutateImage(requesterID uint, img *entity.Image) bool {
	return requesterID == img.OwnerID
}
