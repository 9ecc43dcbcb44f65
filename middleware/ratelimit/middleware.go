package ratelimit

import (
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
)

// KeyFunc extracts the rate-limit key (normally the client IP) from a
// request.
type KeyFunc func(c *gin.Context) string

// ForClass returns a gin middleware enforcing the class budget keyed by
// keyFn. Blacklisted clients receive 403; throttled ones 429 with a
// Retry-After header covering the remaining window.
func (g *Guard) ForClass(class Class, keyFn KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := keyFn(c)
		decision := g.Check(c.Request.Context(), ip, class)

		if decision.Allowed {
			c.Next()
			return
		}
		if decision.Blacklisted {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "access temporarily blocked",
			})
			return
		}

		secs := int(math.Ceil(decision.RetryAfter.Seconds()))
		if secs < 1 {
			secs = 1
		}
		c.Header("Retry-After", fmt.Sprintf("%d", secs))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":       "rate limit exceeded, try again later",
			"retry_after": secs,
		})
	}
}
