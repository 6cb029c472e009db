package middleware

import (
	"net/http"

	"juntos_server/pkg/errorx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoleResolver resolves the role set of an identity. The role service
// satisfies it.
type RoleResolver interface {
	RolesFor(userUuid string) ([]string, error)
}

// RequireRole gates an endpoint on a resolved role. The distinction
// matters: a resolution failure answers 503 so the client retries, only
// a resolved set that lacks the role answers 403. Unresolved roles never
// deny.
func RequireRole(resolver RoleResolver, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userUuid := c.GetString(UserIDKey)
		if userUuid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  "authentication required",
			})
			return
		}

		roles, err := resolver.RolesFor(userUuid)
		if err != nil {
			zap.L().Warn("role resolution unavailable",
				zap.String("user_uuid", userUuid), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"code": errorx.CodeServerBusy,
				"msg":  "role check temporarily unavailable, try again",
			})
			return
		}

		for _, held := range roles {
			if held == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"code": errorx.CodeForbidden,
			"msg":  "operation not allowed for this account",
		})
	}
}
