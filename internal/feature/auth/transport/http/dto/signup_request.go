// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// SignupReq は/accountエンドポイントのリクエストボディを表します。
// 必須フィールド、メール形式、パスワード最低文字数のバリデーションを含みます。
type SignupReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}
