package middleware

import (
	"net/http"
	"strings"

	"trimly/services/tenant"
	"trimly/utils"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// JWTAuth validates the bearer token and attaches the authenticated actor
// to the request context. Credential issuance lives outside this service;
// only verification happens here.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
			return
		}

		claims, err := utils.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "invalid token")
			return
		}

		sub, _ := claims["sub"].(string)
		role, _ := claims["role"].(string)
		tenantID, _ := claims["tenant"].(string)
		if sub == "" || role == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "incomplete token claims")
			return
		}

		c.Set(actorKey, tenant.Actor{
			ID:       sub,
			Role:     tenant.Role(role),
			TenantID: tenantID,
		})
		c.Next()
	}
}

// ActorFrom returns the authenticated actor attached by JWTAuth.
func ActorFrom(c *gin.Context) (tenant.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return tenant.Actor{}, false
	}
	actor, ok := v.(tenant.Actor)
	return actor, ok
}

// RequireSuperAdmin guards the operator-only surface.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok || actor.Role != tenant.SuperAdminRole {
			utils.JSONError(c, http.StatusForbidden, "Forbidden", "operator access required")
			return
		}
		c.Next()
	}
}
