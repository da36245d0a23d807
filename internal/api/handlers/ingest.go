package handlers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"skillviz-utils/internal/api/middleware"
	"skillviz-utils/internal/config"
	"skillviz-utils/internal/logging"
	"skillviz-utils/internal/processor"
	"skillviz-utils/internal/store"
	"skillviz-utils/pkg/models"
	"skillviz-utils/pkg/utils"
)

var validate = validator.New()

// IngestHandler handles data ingestion requests: the batch is normalized,
// validated record by record, deduplicated against the target category and
// merged into the store. Individual bad records are counted, not fatal; a
// malformed payload fails the batch as a whole with no category mutation.
func IngestHandler(cfg *config.Config, proc *processor.Processor, categoryStore *store.CategoryStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		startTime := time.Now()
		requestID := middleware.RequestID(c)
		logger := logging.LogWithRequestID(requestID)

		var req models.IngestRequest
		if err := c.Bind(&req); err != nil {
			logger.Warn("Failed to bind ingest request", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if err := validate.Struct(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   "Both \"category\" and \"data\" fields are required",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		records, report, err := proc.ProcessBatch(req.Data)
		if err != nil {
			logger.Warn("Batch payload rejected", map[string]interface{}{"error": err.Error()})
			message := "Invalid data payload"
			if customErr, ok := err.(*utils.CustomError); ok {
				message = customErr.Error()
			}
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_payload",
				Message:   message,
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		added, duplicates := categoryStore.Append(req.Category, records)

		stats := models.IngestStats{
			TotalRecords:      report.TotalRecords,
			RejectedRecords:   report.RejectedRecords,
			RejectionReasons:  report.RejectionReasons,
			DuplicatesRemoved: duplicates,
			NewRecordsAdded:   added,
		}

		message := "Data added successfully"
		if added == 0 && duplicates > 0 {
			message = "All records were duplicates, no new data added"
		}

		logger.Info("Ingest request completed", map[string]interface{}{
			"category":        req.Category,
			"total":           stats.TotalRecords,
			"added":           stats.NewRecordsAdded,
			"duplicates":      stats.DuplicatesRemoved,
			"rejected":        stats.RejectedRecords,
			"processing_time": time.Since(startTime),
		})

		return c.JSON(http.StatusOK, models.IngestResponse{
			Message:   message,
			Category:  req.Category,
			Stats:     stats,
			RequestID: requestID,
			Timestamp: time.Now(),
		})
	}
}
