package jwtmw

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextUserID is the gin context key under which the authenticated
// account ID is stored.
const ContextUserID = "userID"

var errNoSubject = errors.New("token has no subject claim")

// parseSubject verifies the token signature and expiry and extracts the
// account ID from the subject claim.
func parseSubject(tokenStr string, secret []byte) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is accepted; anything else is a forged header.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, jwt.ErrTokenUnverifiable
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		if sub, ok := claims["sub"].(float64); ok { // JWT numbers are decoded as float64
			return uint(sub), nil
		}
	}
	return 0, errNoSubject
}

// AuthRequired returns a gin middleware that only admits requests carrying a
// valid Bearer token. A missing or malformed Authorization header is rejected
// with 403, an invalid or expired token with 401, and is never treated as
// anonymous.
func AuthRequired(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		accountID, err := parseSubject(tokenStr, key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUserID, accountID)
		c.Next()
	}
}

// OptionalAuth returns a gin middleware that establishes identity when a
// Bearer token is present but lets anonymous requests through. A present but
// invalid token is still rejected with 401 rather than downgraded to
// anonymous. Used by routes whose resources may be public.
func OptionalAuth(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.Next()
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		accountID, err := parseSubject(tokenStr, key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUserID, accountID)
		c.Next()
	}
}

// IdentityFromContext returns the authenticated account ID, or nil when the
// request is anonymous.
func IdentityFromContext(c *gin.Context) *uint {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}
