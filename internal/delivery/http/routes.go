package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pantrychef/backend/config"
)

// MetricsCollector records HTTP traffic and serves the scrape endpoint
type MetricsCollector interface {
	HTTPRecorder
	Handler() http.Handler
}

// SetupRouter creates and configures the Gin router. metrics may be nil.
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger, metrics MetricsCollector) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Set Gin mode based on environment
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	if metrics != nil {
		router.Use(MetricsMiddleware(metrics))
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		users := v1.Group("/users/:userId")
		{
			users.GET("/pantry", handler.ListPantry)
			users.POST("/pantry", handler.AddPantryItem)
			users.POST("/ingredients/parse", handler.ParseIngredient)
			users.POST("/availability", handler.CheckAvailability)
			users.POST("/substitutions", handler.FindSubstitutes)

			deductions := users.Group("/deductions")
			{
				deductions.POST("", handler.SubtractIngredients)
				deductions.POST("/plan", handler.PlanDeduction)
				deductions.POST("/confirm", handler.ConfirmDeductions)
			}
		}

		v1.POST("/recipes/substitute", handler.CreateSubstitutedRecipe)
	}

	return router
}
