package routes

import (
	"net/http"
	"time"

	"trimly/handlers"
	"trimly/middleware"
	"trimly/middleware/ratelimit"
	"trimly/services/tenant"
	"trimly/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the wired handlers and middleware dependencies.
type HandlerBundle struct {
	Resolver  *tenant.Resolver
	Guard     *ratelimit.Guard
	Booking   *handlers.BookingHandler
	Schedule  *handlers.ScheduleHandler
	Admin     *handlers.AdminHandler
	Blacklist *handlers.BlacklistHandler
}

// RegisterPublicRoutes registers the tenant-scoped public booking surface.
func RegisterPublicRoutes(r *gin.Engine, hb *HandlerBundle) {
	limit := func(class ratelimit.Class) gin.HandlerFunc {
		return hb.Guard.ForClass(class, middleware.ClientIP)
	}

	api := r.Group("/api/t/:tenant")
	api.Use(middleware.ResolveTenant(hb.Resolver))
	{
		api.GET("/availability", limit(ratelimit.ClassPublicRead), hb.Booking.GetAvailability)

		// Booking creation sits under both the burst budget and the slower
		// per-quarter-hour reservation budget.
		api.POST("/bookings",
			limit(ratelimit.ClassBookingCreate),
			limit(ratelimit.ClassReservation),
			hb.Booking.CreateBooking,
		)
		api.DELETE("/bookings/:id", limit(ratelimit.ClassCancel), hb.Booking.CancelBooking)
	}
}

// RegisterAdminRoutes registers the authenticated tenant dashboard surface.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	limit := func(class ratelimit.Class) gin.HandlerFunc {
		return hb.Guard.ForClass(class, middleware.ClientIP)
	}

	admin := r.Group("/api/t/:tenant/admin")
	admin.Use(middleware.ResolveTenant(hb.Resolver))
	admin.Use(middleware.JWTAuth())
	{
		admin.GET("/barbers/:barberId/schedule",
			limit(ratelimit.ClassAdminRead),
			middleware.RequireCapability(tenant.ActionReadSchedule),
			hb.Schedule.GetSchedule,
		)
		admin.PUT("/barbers/:barberId/schedule",
			limit(ratelimit.ClassAdminWrite),
			middleware.RequireCapability(tenant.ActionManageSchedule),
			hb.Schedule.SetSchedule,
		)
		admin.GET("/reservations",
			limit(ratelimit.ClassAdminRead),
			middleware.RequireCapability(tenant.ActionListReservations),
			hb.Admin.ListReservations,
		)
		admin.POST("/reservations/:id/complete",
			limit(ratelimit.ClassAdminWrite),
			middleware.RequireCapability(tenant.ActionUpdateReservation),
			hb.Admin.CompleteReservation,
		)
		admin.POST("/reservations/:id/cancel",
			limit(ratelimit.ClassAdminWrite),
			middleware.RequireCapability(tenant.ActionUpdateReservation),
			hb.Admin.CancelReservation,
		)
	}
}

// RegisterOperatorRoutes registers the superadmin console surface.
func RegisterOperatorRoutes(r *gin.Engine, hb *HandlerBundle) {
	ops := r.Group("/api/ops")
	ops.Use(middleware.JWTAuth(), middleware.RequireSuperAdmin())
	{
		ops.GET("/blacklist", hb.Blacklist.List)
		ops.POST("/blacklist", hb.Blacklist.Add)
		ops.DELETE("/blacklist/:ip", hb.Blacklist.Remove)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterPublicRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterOperatorRoutes(r, hb)
	RegisterHealthRoute(r)
}
