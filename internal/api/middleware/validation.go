package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"skillviz-utils/internal/config"
	"skillviz-utils/pkg/models"
	"skillviz-utils/pkg/utils"
)

// RequestValidation middleware tags every request with an ID and rejects
// ingestion bodies larger than the configured batch limit before decoding
func RequestValidation(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := utils.GenerateRequestID()
			c.Set("request_id", requestID)
			c.Response().Header().Set("X-Request-ID", requestID)

			if c.Request().Method == http.MethodPost {
				if c.Request().ContentLength > cfg.Ingest.MaxBatchBytes {
					return c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
						Error:     "request_too_large",
						Message:   "Request body too large",
						RequestID: requestID,
						Timestamp: time.Now(),
					})
				}
			}

			return next(c)
		}
	}
}

// RequestID returns the request ID set by RequestValidation, generating a
// fresh one if the middleware did not run
func RequestID(c echo.Context) string {
	if id, ok := c.Get("request_id").(string); ok && id != "" {
		return id
	}
	return utils.GenerateRequestID()
}
