// Package middleware holds the gin middleware for authentication,
// authorization and TLS redirection.
package middleware

import (
	"net/http"
	"strings"

	"juntos_server/pkg/errorx"
	"juntos_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the context key the authenticated identity uuid is
// stored under.
const UserIDKey = "user_id"

// JWTAuth validates the access token and stores the identity uuid in
// the request context.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  "authentication required",
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  "malformed authorization header, expected a bearer token",
			})
			return
		}

		claims, err := jwt.ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  "token expired or invalid",
			})
			return
		}

		if claims.Subject != "access_token" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  "an access token is required for this endpoint",
			})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}
