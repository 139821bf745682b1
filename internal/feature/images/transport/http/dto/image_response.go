// Package dto はimagesフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"imageshare_backend/internal/feature/images/domain/entity"
)

// ImageRes は一覧エンドポイントで返す画像の投影です。
// urlフィールドは公開ルックアップキー（スラッグ）を運びます。
type ImageRes struct {
	ID       uint      `json:"id"`
	Name     string    `json:"name"`
	Date     time.Time `json:"date"`
	IsPublic bool      `json:"isPublic"`
	URL      string    `json:"url"`
}

// OwnerImageRes はアップロード・個別取得エンドポイントで返す投影で、
// オーナーのアカウントIDを含みます。
type OwnerImageRes struct {
	ImageRes
	UserID uint `json:"userId"`
}

// NewImageRes はエンティティから一覧用の投影を生成します。
func NewImageRes(img *entity.Image) ImageRes {
	return ImageRes{
		ID:       img.ID,
		Name:     img.StorageKey,
		Date:     img.CreatedAt,
		IsPublic: img.IsPublic,
		URL:      img.Slug,
	}
}

// NewOwnerImageRes はエンティティからオーナー向けの投影を生成します。
func NewOwnerImageRes(img *entity.Image) OwnerImageRes {
	return OwnerImageRes{
		ImageRes: NewImageRes(img),
		UserID:   img.OwnerID,
	}
}

// NewImageResList はエンティティのスライスを一覧用の投影に変換します。
func NewImageResList(imgs []entity.Image) []ImageRes {
	out := make([]ImageRes, 0, len(imgs))
	for i := range imgs {
		out = append(out, NewImageRes(&imgs[i]))
	}
	return out
}
