package middleware

import (
	"net/http"
	"sync"
	"time"

	"trimly/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// globalLimiterStore holds a map of IP addresses to their catch-all limiters.
// This is the outermost ceiling across all endpoints; the per-class
// fixed-window budgets are enforced separately per route.
type globalLimiterStore struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
}

var limiterStore = &globalLimiterStore{
	limiters: make(map[string]*rate.Limiter),
}

// getLimiter returns the limiter for a given IP, creating one if it doesn't exist.
func (s *globalLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[ip]
	if !exists {
		perMin := config.AppConfig.GlobalRatePerMin
		if perMin <= 0 {
			perMin = 300
		}
		burst := config.AppConfig.GlobalRateBurst
		if burst <= 0 {
			burst = 50
		}
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), burst)
		s.limiters[ip] = limiter
	}
	return limiter
}

// GlobalRateLimit bounds total requests per IP across all endpoints.
func GlobalRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := ClientIP(c)
		limiter := limiterStore.getLimiter(ip)
		if !limiter.Allow() {
			zap.L().Warn("Global rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}
