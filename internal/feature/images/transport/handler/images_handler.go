// Package handler はimagesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"imageshare_backend/internal/feature/images/domain/entity"
	"imageshare_backend/internal/feature/images/transport/http/dto"
	"imageshare_backend/internal/feature/images/usecase"
	jwtmw "imageshare_backend/internal/platform/jwt"
)

// ImagesUsecase は画像ライフサイクル操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type ImagesUsecase interface {
	Upload(ctx context.Context, ownerID uint, r io.Reader, size int64, contentType string) (*entity.Image, error)
	ListPublic(ctx context.Context) ([]entity.Image, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]entity.Image, error)
	GetBySlug(ctx context.Context, slug string, viewerID *uint) (*entity.Image, error)
	OpenArtifact(ctx context.Context, slug string, viewerID *uint) (io.ReadCloser, *entity.Image, error)
	ToggleVisibility(ctx context.Context, imageID, requesterID uint) (*entity.Image, error)
	Delete(ctx context.Context, imageID, requesterID uint) error
}

// ImagesHandler は画像操作のHTTPリクエストを処理します。
type ImagesHandler struct {
	images ImagesUsecase
}

// NewImagesHandler はImagesHandlerの新しいインスタンスを生成します。
func NewImagesHandler(images ImagesUsecase) *ImagesHandler {
	return &ImagesHandler{images: images}
}

// Upload は画像アップロードAPIエンドポイントを処理します。
// multipart/form-dataの"image"フィールドを受け取り、新規画像は公開状態で作成されます。
func (h *ImagesHandler) Upload(c *gin.Context) {
	ownerID := c.GetUint(jwtmw.ContextUserID)

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("failed to open uploaded file", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	defer f.Close()

	contentType := file.Header.Get("Content-Type")
	img, err := h.images.Upload(c.Request.Context(), ownerID, f, file.Size, contentType)
	if err != nil {
		if errors.Is(err, usecase.ErrOwnerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		slog.Error("image upload failed", "owner_id", ownerID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	slog.Info("image uploaded", "image_id", img.ID, "owner_id", ownerID, "slug", img.Slug)
	c.JSON(http.StatusCreated, dto.NewOwnerImageRes(img))
}

// ListPublic は公開画像一覧APIエンドポイントを処理します。認証不要です。
func (h *ImagesHandler) ListPublic(c *gin.Context) {
	imgs, err := h.images.ListPublic(c.Request.Context())
	if err != nil {
		slog.Error("failed to list public images", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, dto.NewImageResList(imgs))
}

// ListOwn は認証済みアカウントの全画像一覧APIエンドポイントを処理します。
// 公開・非公開を問わず返します。
func (h *ImagesHandler) ListOwn(c *gin.Context) {
	ownerID := c.GetUint(jwtmw.ContextUserID)

	imgs, err := h.images.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		slog.Error("failed to list images for owner", "owner_id", ownerID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, dto.NewImageResList(imgs))
}

// GetBySlug はスラッグによる画像取得APIエンドポイントを処理します。
// 公開画像は匿名で取得でき、非公開画像はオーナーのトークンが必要です。
func (h *ImagesHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	viewerID := jwtmw.IdentityFromContext(c)

	img, err := h.images.GetBySlug(c.Request.Context(), slug, viewerID)
	if err != nil {
		h.renderSlugError(c, viewerID, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOwnerImageRes(img))
}

// Download はスラッグによるアーティファクト取得APIエンドポイントを処理します。
// 可視性ルールはGetBySlugと同一です。レコードが残っていてもアーティファクトが
// 既に失われている場合があり、その場合は500を返します。
func (h *ImagesHandler) Download(c *gin.Context) {
	slug := c.Param("slug")
	viewerID := jwtmw.IdentityFromContext(c)

	rc, img, err := h.images.OpenArtifact(c.Request.Context(), slug, viewerID)
	if err != nil {
		h.renderSlugError(c, viewerID, err)
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, img.Size, img.ContentType, rc, nil)
}

// renderSlugError はスラッグ系エンドポイント共通のエラーレスポンスを生成します。
func (h *ImagesHandler) renderSlugError(c *gin.Context, viewerID *uint, err error) {
	switch {
	case errors.Is(err, usecase.ErrImageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
	case errors.Is(err, usecase.ErrForbidden):
		if viewerID == nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "authentication required for this private image"})
		} else {
			c.JSON(http.StatusForbidden, gin.H{"error": "you are not allowed to access this image"})
		}
	default:
		slog.Error("slug lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}

// ToggleVisibility は可視性切り替えAPIエンドポイントを処理します。
// 対象画像のisPublicフラグを反転し、更新後のレコードを返します。
func (h *ImagesHandler) ToggleVisibility(c *gin.Context) {
	requesterID := c.GetUint(jwtmw.ContextUserID)

	imageID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image id"})
		return
	}

	img, err := h.images.ToggleVisibility(c.Request.Context(), uint(imageID), requesterID)
	switch {
	case errors.Is(err, usecase.ErrImageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed to modify this image"})
	case err != nil:
		slog.Error("visibility toggle failed", "image_id", imageID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	default:
		c.JSON(http.StatusOK, dto.NewOwnerImageRes(img))
	}
}

// Delete は画像削除APIエンドポイントを処理します。
// アーティファクトとレコードの両方を削除します。
func (h *ImagesHandler) Delete(c *gin.Context) {
	requesterID := c.GetUint(jwtmw.ContextUserID)

	imageID, err := strconv.ParseUint(c.Param("imageId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image id"})
		return
	}

	err = h.images.Delete(c.Request.Context(), uint(imageID), requesterID)
	switch {
	case errors.Is(err, usecase.ErrImageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed to delete this image"})
	case err != nil:
		slog.Error("image deletion failed", "image_id", imageID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	default:
		slog.Info("image deleted", "image_id", imageID, "requester_id", requesterID)
		c.JSON(http.StatusOK, gin.H{"message": "image deleted successfully"})
	}
}
