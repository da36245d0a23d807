package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"skillviz-utils/internal/cache"
	"skillviz-utils/internal/store"
	"skillviz-utils/pkg/models"
)

var startTime = time.Now()

const version = "1.0.0"

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   version,
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	})
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   version,
		Uptime:    time.Since(startTime),
	})
}

// ReadinessHandler handles readiness probe requests, checking the optional
// cache backend when one is configured
func ReadinessHandler(analyticsCache *cache.AnalyticsCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		checks := map[string]string{
			"api":   "ok",
			"store": "ok",
		}

		status := "ready"
		code := http.StatusOK

		if analyticsCache.Enabled() {
			if err := analyticsCache.Ping(c.Request().Context()); err != nil {
				checks["cache"] = "unreachable"
				status = "degraded"
			} else {
				checks["cache"] = "ok"
			}
		} else {
			checks["cache"] = "disabled"
		}

		return c.JSON(code, models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   version,
			Uptime:    time.Since(startTime),
			Checks:    checks,
		})
	}
}

// StatusHandler provides detailed service status including stored data counts
func StatusHandler(categoryStore *store.CategoryStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		categories := categoryStore.List()
		totalRecords := 0
		for _, info := range categories {
			totalRecords += info.RecordCount
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":        "operational",
			"version":       version,
			"uptime":        time.Since(startTime).String(),
			"categories":    len(categories),
			"total_records": totalRecords,
		})
	}
}
