package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const hostIDKey = "host_id"

// Middleware rejects requests without a valid "Authorization: Bearer" session
// and stores the host id in the gin context.
func Middleware(issuer *Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		claims, err := issuer.Parse(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(hostIDKey, claims.HostID)
		c.Next()
	}
}

// HostID returns the authenticated host, or "" outside Middleware.
func HostID(c *gin.Context) string {
	return c.GetString(hostIDKey)
}

// WithHostID marks a context as authenticated for hostID. Handler tests use it
// in place of a token.
func WithHostID(c *gin.Context, hostID string) {
	c.Set(hostIDKey, hostID)
}
