package router

import (
	authhandler "imageshare_backend/internal/feature/auth/transport/handler"
	imageshandler "imageshare_backend/internal/feature/images/transport/handler"
	platformhandler "imageshare_backend/internal/platform/http/handler"
	jwtmw "imageshare_backend/internal/platform/jwt"
	"imageshare_backend/internal/shared/ratelimiter"

	"github.com/gin-gonic/gin"
)

// NewRouter assembles the route table. Route shapes follow the public API:
// anonymous reads for public images, Bearer-token auth for everything that
// mutates or reads private data, and optional auth on the slug routes where
// the resource itself decides whether identity is needed.
func NewRouter(authHandler *authhandler.AuthHandler, imagesHandler *imageshandler.ImagesHandler,
	jwtSecret string, loginLimiter *ratelimiter.RateLimiter) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", platformhandler.Health)
	// 新規アカウント登録
	r.POST("/account", authHandler.Signup)
	// ログイン（トークン発行、レートリミット付き）
	r.POST("/login", loginLimiter.Middleware(), authHandler.Login)
	// 公開画像一覧
	r.GET("/images", imagesHandler.ListPublic)
	// トークン検証（可否のみを報告するため、ミドルウェアを通さない）
	r.GET("/verify-token", authHandler.VerifyToken)

	// スラッグ取得は対象が非公開の場合のみ認証が要るため、OptionalAuthを適用
	slugRoutes := r.Group("/")
	slugRoutes.Use(jwtmw.OptionalAuth(jwtSecret))
	{
		slugRoutes.GET("/image/:slug", imagesHandler.GetBySlug)
		slugRoutes.GET("/image/:slug/file", imagesHandler.Download)
	}

	// 認証必須のルート
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(jwtSecret))
	{
		auth.DELETE("/account", authHandler.DeleteAccount)
		auth.POST("/images", imagesHandler.Upload)
		auth.GET("/imagesUser", imagesHandler.ListOwn)
		auth.PUT("/images/:id", imagesHandler.ToggleVisibility)
		auth.DELETE("/deleteImage/:imageId", imagesHandler.Delete)
	}

	return r
}
