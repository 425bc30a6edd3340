package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"noteworthy/internal/pkg/jwtutil"
	"noteworthy/internal/transport/http/response"
)

const ContextUserIDKey = "user_id"

// AuthJWT resolves the caller from the Bearer access token once, at the
// boundary; handlers only ever see the user ID.
func AuthJWT(tokens *jwtutil.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "missing authorization header")
			c.Abort()
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			response.Error(c, http.StatusUnauthorized, "invalid authorization scheme")
			c.Abort()
			return
		}

		userID, err := tokens.ParseAccess(strings.TrimSpace(strings.TrimPrefix(authHeader, prefix)))
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// UserID reads the authenticated caller's ID set by AuthJWT.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
