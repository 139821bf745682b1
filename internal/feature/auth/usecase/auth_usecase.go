// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"imageshare_backend/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 6
)

// AccountRepository はアカウントエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type AccountRepository interface {
	// Create は新しいアカウントをストレージに永続化します。
	// 同じメールアドレスのアカウントが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, account *entity.Account) error

	// FindByEmail は指定されたメールアドレスに一致するアカウントを取得します。
	// アカウントが存在しない場合、ErrAccountNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByID は指定されたIDに一致するアカウントを取得します。
	// アカウントが存在しない場合、ErrAccountNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Account, error)

	// Delete は指定されたIDのアカウントレコードを削除します。
	Delete(ctx context.Context, id uint) error
}

// TokenGenerator は署名済みセッショントークン生成のインターフェースを定義します。
// 実装はplatform/jwtにあります。
type TokenGenerator interface {
	// GenerateToken は指定されたアカウントの署名済みトークンを生成します。
	GenerateToken(accountID uint, email string) (string, error)
}

// ImagePurger はアカウント削除時のカスケード削除を抽象化します。
// imagesフィーチャーのユースケースが実装します。
type ImagePurger interface {
	// PurgeOwner は指定されたオーナーの全画像（レコードとアーティファクト）を
	// ベストエフォートで削除します。個々の失敗はログに記録され、処理は継続します。
	PurgeOwner(ctx context.Context, ownerID uint) error
}

// authUsecase は認証とアカウントライフサイクルのビジネスロジックを実装します。
type authUsecase struct {
	accounts AccountRepository
	tokens   TokenGenerator
	images   ImagePurger
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(accounts AccountRepository, tokens TokenGenerator, images ImagePurger) *authUsecase {
	return &authUsecase{
		accounts: accounts,
		tokens:   tokens,
		images:   images,
	}
}

// validatePassword はパスワードがポリシーを満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// Register はハッシュ化されたパスワードで新規アカウントを登録します。
// メールアドレスが既に使われている場合はErrEmailAlreadyExistsを返します。
// 重複チェックはストアのユニーク制約が最終的な拠り所であり、アプリケーション側の
// 事前チェックには依存しません。
func (u *authUsecase) Register(ctx context.Context, email, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	account := &entity.Account{Email: email, Password: string(hashed)}
	return u.accounts.Create(ctx, account)
}

// Login はアカウントを認証し、成功時に署名済みトークンを返します。
// アカウント未検出とパスワード不一致はどちらもErrInvalidCredentialsに収束させ、
// アカウント列挙を防ぎます。
// タイミング攻撃を防止するため、アカウントが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	account, err := u.accounts.FindByEmail(ctx, email)

	// アカウント未検出時のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = account.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil || compareErr != nil {
		return "", ErrInvalidCredentials
	}

	token, tokenErr := u.tokens.GenerateToken(account.ID, account.Email)
	if tokenErr != nil {
		return "", fmt.Errorf("failed to generate token: %w", tokenErr)
	}

	return token, nil
}

// DeleteAccount はアカウントと、そのアカウントが所有する全画像を削除します。
// 本人以外のリクエストはErrForbiddenで拒否します。
// 画像の削除はベストエフォートであり、一部が失敗してもアカウントレコードの削除は
// 実行されます（孤児アーティファクトはログで報告されます）。
func (u *authUsecase) DeleteAccount(ctx context.Context, accountID, requesterID uint) error {
	if !CanDeleteAccount(requesterID, accountID) {
		return ErrForbidden
	}

	if _, err := u.accounts.FindByID(ctx, accountID); err != nil {
		return err
	}

	if err := u.images.PurgeOwner(ctx, accountID); err != nil {
		// 部分的なクリーンアップ失敗は許容する。アカウント削除は続行する。
		slog.Error("failed to purge all images for account", "account_id", accountID, "error", err)
	}

	if err := u.accounts.Delete(ctx, accountID); err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}
