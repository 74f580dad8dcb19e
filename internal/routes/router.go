package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecoduino/greenhouse-backend/internal/config"
	"github.com/ecoduino/greenhouse-backend/internal/database"
	"github.com/ecoduino/greenhouse-backend/internal/delivery/http/handler"
	"github.com/ecoduino/greenhouse-backend/internal/infrastructure/database/postgres"
	"github.com/ecoduino/greenhouse-backend/internal/logger"
	"github.com/ecoduino/greenhouse-backend/internal/middleware"
	controlUsecase "github.com/ecoduino/greenhouse-backend/internal/usecase/control"
	deviceUsecase "github.com/ecoduino/greenhouse-backend/internal/usecase/device"
	provisioningUsecase "github.com/ecoduino/greenhouse-backend/internal/usecase/provisioning"
	telemetryUsecase "github.com/ecoduino/greenhouse-backend/internal/usecase/telemetry"
)

// Services bundles the use case layer so the MQTT ingestion path can share
// the exact services the HTTP handlers use.
type Services struct {
	Provisioning *provisioningUsecase.Service
	Device       *deviceUsecase.Service
	Telemetry    *telemetryUsecase.Service
	Control      *controlUsecase.Service
}

// NewServices wires repositories into the use case layer.
func NewServices(db *database.DB) *Services {
	deviceRepository := postgres.NewDeviceRepository(db)
	ownershipRepository := postgres.NewOwnershipRepository(db)
	controlRepository := postgres.NewControlRepository(db)
	telemetryRepository := postgres.NewTelemetryRepository(db)
	provisioningRepository := postgres.NewProvisioningRepository(db)

	return &Services{
		Provisioning: provisioningUsecase.NewService(provisioningRepository),
		Device:       deviceUsecase.NewService(ownershipRepository),
		Telemetry:    telemetryUsecase.NewService(deviceRepository, telemetryRepository, ownershipRepository),
		Control:      controlUsecase.NewService(deviceRepository, controlRepository, ownershipRepository),
	}
}

func SetupRoutes(cfg *config.Config, db *database.DB, services *Services) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	if len(cfg.CORS.AllowedOrigins) > 0 {
		router.Use(middleware.CORSMiddleware(&cfg.CORS))
	}
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	if cfg.RateLimit.GeneralRPS > 0 {
		router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))
	}

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	deviceHandler := handler.NewDeviceHandler(services.Provisioning, services.Device)
	telemetryHandler := handler.NewTelemetryHandler(services.Telemetry)
	controlHandler := handler.NewControlHandler(services.Control)

	v1 := router.Group("/api/v1")
	{
		// Device-facing endpoints authenticate with the opaque device token
		// carried in the request body.
		telemetryHandler.RegisterDeviceRoutes(v1)
		controlHandler.RegisterDeviceRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			deviceHandler.RegisterRoutes(protected)
			telemetryHandler.RegisterUserRoutes(protected)
			controlHandler.RegisterUserRoutes(protected)
		}
	}

	logger.Info("All routes initialized")
	return router
}
