// Package adapters はimagesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"imageshare_backend/internal/feature/images/domain/entity"
	"imageshare_backend/internal/feature/images/usecase"
)

// imagePostgres はImageRepositoryインターフェースのPostgreSQL実装です。
type imagePostgres struct {
	db *gorm.DB
}

// imagePostgresがImageRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ImageRepository = (*imagePostgres)(nil)

// NewImagePostgres は指定されたgorm.DB接続でimagePostgresの新しいインスタンスを生成します。
func NewImagePostgres(db *gorm.DB) *imagePostgres {
	return &imagePostgres{db: db}
}

// isUniqueViolation はユニーク制約違反のドライバエラーを判定します。
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Create は画像レコードをデータベースに追加します。
// スラッグが衝突した場合、usecase.ErrSlugTakenを返します。
// スラッグの一意性はslugカラムのユニークインデックスが保証します。
func (r *imagePostgres) Create(ctx context.Context, img *entity.Image) error {
	if err := r.db.WithContext(ctx).Create(img).Error; err != nil {
		if isUniqueViolation(err) {
			return usecase.ErrSlugTaken
		}
		return err
	}
	return nil
}

// FindByID はIDで画像レコードを取得します。
// レコードが存在しない場合、usecase.ErrImageNotFoundを返します。
func (r *imagePostgres) FindByID(ctx context.Context, id uint) (*entity.Image, error) {
	var img entity.Image
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&img).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrImageNotFound
		}
		return nil, err
	}
	return &img, nil
}

// FindBySlug はスラッグで画像レコードを取得します。
// レコードが存在しない場合、usecase.ErrImageNotFoundを返します。
func (r *imagePostgres) FindBySlug(ctx context.Context, slug string) (*entity.Image, error) {
	var img entity.Image
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&img).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrImageNotFound
		}
		return nil, err
	}
	return &img, nil
}

// ListPublic は公開フラグが立っている全画像を取得します。
func (r *imagePostgres) ListPublic(ctx context.Context) ([]entity.Image, error) {
	var imgs []entity.Image
	if err := r.db.WithContext(ctx).Where("is_public = ?", true).Order("created_at DESC").Find(&imgs).Error; err != nil {
		return nil, err
	}
	return imgs, nil
}

// ListByOwner は指定されたオーナーの全画像を取得します。公開・非公開を問いません。
func (r *imagePostgres) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Image, error) {
	var imgs []entity.Image
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&imgs).Error; err != nil {
		return nil, err
	}
	return imgs, nil
}

// Update は既存の画像レコードを保存します。
func (r *imagePostgres) Update(ctx context.Context, img *entity.Image) error {
	return r.db.WithContext(ctx).Save(img).Error
}

// Delete はIDで画像レコードを削除します。
// 対象が存在しない場合、usecase.ErrImageNotFoundを返します。
func (r *imagePostgres) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Image{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrImageNotFound
	}
	return nil
}
