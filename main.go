// File: trimly/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trimly/config"
	"trimly/cron"
	"trimly/database"
	barberRepo "trimly/database/repository/barber"
	reservationRepo "trimly/database/repository/reservation"
	serviceRepo "trimly/database/repository/service"
	tenantRepo "trimly/database/repository/tenant"
	"trimly/handlers"
	"trimly/middleware"
	"trimly/middleware/ratelimit"
	"trimly/routes"
	"trimly/services/booking"
	"trimly/services/notification"
	"trimly/services/schedule"
	"trimly/services/tenant"
	"trimly/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	defaultLoc, err := time.LoadLocation(config.AppConfig.DefaultTimezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid DEFAULT_TIMEZONE %q: %v", config.AppConfig.DefaultTimezone, err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.GlobalRateLimit())

	// repositories.
	tenants := tenantRepo.NewMongoTenantRepo()
	barbers := barberRepo.NewMongoBarberRepo()
	services := serviceRepo.NewMongoServiceRepo()
	reservations := reservationRepo.NewMongoReservationRepo()

	// Rate-limit store: per-instance by default; redis-backed when limits
	// must hold across instances.
	var store ratelimit.Store
	if config.AppConfig.RateLimitShared {
		utils.InitRateLimitCache()
		store = ratelimit.NewRedisStore(utils.GetRateLimitClient())
	} else {
		store = ratelimit.NewMemoryStore()
	}
	guard := ratelimit.NewGuard(store)
	guard.EscalationThreshold = config.AppConfig.BlacklistThreshold
	guard.EscalationPeriod = time.Duration(config.AppConfig.EscalationPeriodMin) * time.Minute
	guard.BlacklistTTL = time.Duration(config.AppConfig.BlacklistDurationMin) * time.Minute

	// services.
	resolver := &tenant.Resolver{
		Repo:                    tenants,
		Cache:                   utils.GetCacheClient(),
		CacheTTL:                time.Minute,
		BlockReadsWhenSuspended: config.AppConfig.SuspendedBlocksReads,
	}

	allocator := &schedule.Allocator{
		Barbers:         barbers,
		Services:        services,
		Reservations:    reservations,
		Clock:           schedule.SystemClock{},
		Granularity:     config.AppConfig.SlotGranularityMin,
		HorizonDays:     config.AppConfig.BookingHorizonDays,
		DefaultLocation: defaultLoc,
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()

	bookingService := &booking.DefaultBookingService{
		Reservations: reservations,
		Services:     services,
		Allocator:    allocator,
		Resolver:     resolver,
		Tasks:        asynqClient,
		Clock:        schedule.SystemClock{},
		Logger:       logger,
	}

	// Start the notification worker consuming booking confirmations.
	cron.InitConfirmationWorker(notification.LogNotificationService{})

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Resolver:  resolver,
		Guard:     guard,
		Booking:   handlers.NewBookingHandler(allocator, bookingService, logger),
		Schedule:  handlers.NewScheduleHandler(barbers),
		Admin:     handlers.NewAdminHandler(bookingService),
		Blacklist: handlers.NewBlacklistHandler(store),
	}

	routes.RegisterRoutes(router, handlerBundle)
	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient()}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
