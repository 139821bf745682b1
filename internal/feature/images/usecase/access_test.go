package usecase

import (
	"testing"

	"imageshare_backend/internal/feature/images/domain/entity"
)

func uintPtr(v uint) *uint { return &v }

func TestCanViewImage(t *testing.T) {
	publicImg := &entity.Image{ID: 1, OwnerID: 10, IsPublic: true}
	privateImg := &entity.Image{ID: 2, OwnerID: 10, IsPublic: false}

	tests := []struct {
		name     string
		viewerID *uint
		img      *entity.Image
		want     bool
	}{
		{"anonymous viewer, public image", nil, publicImg, true},
		{"anonymous viewer, private image", nil, privateImg, false},
		{"owner, public image", uintPtr(10), publicImg, true},
		{"owner, private image", uintPtr(10), privateImg, true},
		{"other account, public image", uintPtr(11), publicImg, true},
		{"other account, private image", uintPtr(11), privateImg, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanViewImage(tt.viewerID, tt.img); got != tt.want {
				t.Errorf("CanViewImage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanMutateImage(t *testing.T) {
	img := &entity.Image{ID: 1, OwnerID: 10, IsPublic: true}

	if !CanMutateImage(10, img) {
		t.Error("owner must be allowed to mutate their image")
	}
	if CanMutateImage(11, img) {
		t.Error("non-owner must not be allowed to mutate the image")
	}
}
