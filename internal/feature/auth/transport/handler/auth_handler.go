// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"imageshare_backend/internal/feature/auth/transport/http/dto"
	"imageshare_backend/internal/feature/auth/usecase"
	jwtmw "imageshare_backend/internal/platform/jwt"
)

// AuthUsecase は認証とアカウントライフサイクル操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は指定されたメールアドレスとパスワードで新規アカウントを登録します。
	Register(ctx context.Context, email, password string) error
	// Login はアカウントを認証し、成功時に署名済みトークンを返します。
	Login(ctx context.Context, email, password string) (string, error)
	// DeleteAccount はアカウントと所有画像をカスケード削除します。
	DeleteAccount(ctx context.Context, accountID, requesterID uint) error
}

// TokenVerifier は/verify-tokenエンドポイント用のトークン検証を定義します。
type TokenVerifier interface {
	VerifySubject(tokenStr string) (uint, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth     AuthUsecase
	verifier TokenVerifier
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewAuthHandler(auth AuthUsecase, verifier TokenVerifier) *AuthHandler {
	return &AuthHandler{auth: auth, verifier: verifier}
}

// Signup はアカウント登録APIエンドポイントを処理します。
// - リクエストJSONをSignupReqにバインド
// - バリデーションエラー時は400を返却
// - メールアドレス重複時は403を返却
// - 成功時は201を返却
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required, password must be at least 6 characters"})
		return
	}
	if err := h.auth.Register(c.Request.Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			slog.Warn("signup rejected: email taken", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusForbidden, gin.H{"error": "account already exists"})
			return
		}
		slog.Error("signup failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "an error occurred while creating the account"})
		return
	}
	slog.Info("account created", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, gin.H{"message": "account created successfully"})
}

// Login はログインAPIエンドポイントを処理します。
// 認証失敗時は401を返却します。失敗理由（アカウント未検出／パスワード不一致）は
// レスポンスからは区別できません。
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// アカウント列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	slog.Info("login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// DeleteAccount はアカウント削除APIエンドポイントを処理します。
// AuthRequiredミドルウェアの背後で動作し、本人のアカウントのみ削除できます。
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	requesterID := c.GetUint(jwtmw.ContextUserID)

	err := h.auth.DeleteAccount(c.Request.Context(), requesterID, requesterID)
	switch {
	case errors.Is(err, usecase.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case err != nil:
		slog.Error("account deletion failed", "account_id", requesterID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "an error occurred while deleting the account"})
	default:
		slog.Info("account deleted", "account_id", requesterID)
		c.JSON(http.StatusOK, gin.H{"message": "account deleted successfully"})
	}
}

// VerifyToken はトークン検証APIエンドポイントを処理します。
// ヘッダー欠落・不正・トークン無効はすべて403で拒否します（ミドルウェアの
// 403/401の区別とは異なり、このエンドポイントは可否のみを報告します）。
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		c.JSON(http.StatusForbidden, gin.H{"response": "connection refused"})
		return
	}
	if _, err := h.verifier.VerifySubject(strings.TrimPrefix(auth, "Bearer ")); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"response": "connection refused"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": "connection authorized"})
}
