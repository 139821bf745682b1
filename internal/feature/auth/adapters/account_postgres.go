// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"imageshare_backend/internal/feature/auth/domain/entity"
	"imageshare_backend/internal/feature/auth/usecase"
)

// accountPostgres はAccountRepositoryインターフェースのPostgreSQL実装です。
// GORMを使用してデータベース操作を行います。
type accountPostgres struct {
	db *gorm.DB
}

// accountPostgresがAccountRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.AccountRepository = (*accountPostgres)(nil)

// NewAccountPostgres は指定されたgorm.DB接続でaccountPostgresの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewAccountPostgres(db *gorm.DB) *accountPostgres {
	return &accountPostgres{db: db}
}

// isUniqueViolation はユニーク制約違反のドライバエラーを判定します。
// PostgreSQLはSQLSTATE 23505、テストで使うSQLiteはgorm.ErrDuplicatedKeyに変換されます。
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Create はアカウントをデータベースに追加します。
// 同じメールアドレスのアカウントが既に存在する場合、usecase.ErrEmailAlreadyExistsを返します。
// メールアドレスの一意性はemailカラムのユニークインデックスが保証します。
func (r *accountPostgres) Create(ctx context.Context, a *entity.Account) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		if isUniqueViolation(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail はメールアドレスでアカウントを取得します。
// アカウントが存在しない場合、usecase.ErrAccountNotFoundを返します。
func (r *accountPostgres) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var a entity.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindByID はIDでアカウントを取得します。
// アカウントが存在しない場合、usecase.ErrAccountNotFoundを返します。
func (r *accountPostgres) FindByID(ctx context.Context, id uint) (*entity.Account, error) {
	var a entity.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Delete はIDでアカウントレコードを削除します。
// 対象が存在しない場合、usecase.ErrAccountNotFoundを返します。
func (r *accountPostgres) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Account{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrAccountNotFound
	}
	return nil
}

// Exists はIDのアカウントが存在するかを返します。
// imagesフィーチャーのOwnerVerifierインターフェースを満たします。
func (r *accountPostgres) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Account{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
