package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"skillviz-utils/internal/api/handlers"
	"skillviz-utils/internal/api/middleware"
	"skillviz-utils/internal/cache"
	"skillviz-utils/internal/config"
	"skillviz-utils/internal/processor"
	"skillviz-utils/internal/store"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, proc *processor.Processor, categoryStore *store.CategoryStore, analyticsCache *cache.AnalyticsCache, ingestLimiter *middleware.IngestLimiter) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation(cfg))
	e.Use(middleware.TimeoutConfig(cfg.Server.ReadTimeout))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/live", handlers.LivenessHandler)
		health.GET("/ready", handlers.ReadinessHandler(analyticsCache))
	}

	// Status route
	e.GET("/status", handlers.StatusHandler(categoryStore))

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		v1.POST("/data", handlers.IngestHandler(cfg, proc, categoryStore), ingestLimiter.Middleware())

		categories := v1.Group("/categories")
		{
			categories.GET("", handlers.ListCategoriesHandler(categoryStore))
			categories.GET("/:category/records", handlers.CategoryRecordsHandler(categoryStore))
			categories.POST("/:category/clear", handlers.ClearCategoryHandler(categoryStore))
			categories.DELETE("/:category", handlers.RemoveCategoryHandler(categoryStore))
		}

		analytics := v1.Group("/analytics")
		{
			analytics.GET("/skills", handlers.SkillFrequencyHandler(cfg, categoryStore, analyticsCache))
			analytics.GET("/skills/combinations", handlers.SkillCoOccurrenceHandler(cfg, categoryStore, analyticsCache))
			analytics.GET("/skills/locations", handlers.SkillsByLocationHandler(cfg, categoryStore, analyticsCache))
			analytics.GET("/experience-matrix", handlers.ExperienceMatrixHandler(cfg, categoryStore, analyticsCache))
			analytics.GET("/trends/publishing", handlers.PublishingTrendHandler(cfg, categoryStore, analyticsCache))
			analytics.GET("/trends/skills", handlers.SkillTrendHandler(cfg, categoryStore, analyticsCache))
			analytics.GET("/summary", handlers.MarketSummaryHandler(categoryStore, analyticsCache))
		}
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "SkillViz Analytics",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
