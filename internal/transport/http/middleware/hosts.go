package middleware

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"noteworthy/internal/transport/http/response"
)

// AllowedHosts rejects requests whose Host header is not on the allow-list.
// An empty list disables the check (development mode). "*" allows any host.
func AllowedHosts(hosts []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(hosts))
	for _, h := range hosts {
		allowed[h] = struct{}{}
	}

	return func(c *gin.Context) {
		if len(allowed) == 0 {
			c.Next()
			return
		}
		if _, any := allowed["*"]; any {
			c.Next()
			return
		}

		host := c.Request.Host
		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		}
		if _, ok := allowed[host]; !ok {
			response.Error(c, http.StatusBadRequest, "invalid host header")
			c.Abort()
			return
		}
		c.Next()
	}
}
