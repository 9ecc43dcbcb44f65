package middleware

import (
	"errors"
	"net/http"

	"trimly/models"
	"trimly/services/tenant"
	"trimly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const tenantKey = "tenant"

// ResolveTenant maps the :tenant slug in the URL to a tenant account and
// blocks suspended tenants. Writes are always blocked; read-only methods are
// blocked too when the resolver is configured that way.
func ResolveTenant(resolver *tenant.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("tenant")
		t, err := resolver.Resolve(c.Request.Context(), slug)
		if err != nil {
			if errors.Is(err, tenant.ErrTenantNotFound) {
				utils.JSONError(c, http.StatusNotFound, "Not Found", "unknown tenant")
				return
			}
			utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "tenant lookup failed")
			return
		}

		if resolver.AssertActive(t) != nil {
			readOnly := c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead
			if !readOnly || resolver.BlockReadsWhenSuspended {
				utils.JSONError(c, http.StatusForbidden, "Forbidden", "tenant is not available")
				return
			}
		}

		c.Set(tenantKey, t)
		c.Next()
	}
}

// TenantFrom returns the tenant attached by ResolveTenant.
func TenantFrom(c *gin.Context) (*models.Tenant, bool) {
	v, ok := c.Get(tenantKey)
	if !ok {
		return nil, false
	}
	t, ok := v.(*models.Tenant)
	return t, ok
}

// RequireCapability enforces that the authenticated actor may perform the
// action against the resolved tenant. A cross-tenant attempt is an
// authorization failure recorded as a security event; the response does not
// reveal anything about the target tenant.
func RequireCapability(action tenant.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "authentication required")
			return
		}
		t, ok := TenantFrom(c)
		if !ok {
			utils.JSONError(c, http.StatusNotFound, "Not Found", "unknown tenant")
			return
		}

		if !tenant.HasCapability(actor, action, t.ID) {
			if actor.Role != tenant.SuperAdminRole && actor.TenantID != t.ID {
				utils.SecurityEvent("cross_tenant_access_denied",
					zap.String("actorID", actor.ID),
					zap.String("actorTenantID", actor.TenantID),
					zap.String("action", string(action)),
					zap.String("ip", ClientIP(c)),
				)
			}
			utils.JSONError(c, http.StatusForbidden, "Forbidden", "insufficient permissions")
			return
		}
		c.Next()
	}
}
