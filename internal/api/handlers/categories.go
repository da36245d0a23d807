package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"skillviz-utils/internal/api/middleware"
	"skillviz-utils/internal/logging"
	"skillviz-utils/internal/store"
	"skillviz-utils/pkg/models"
)

// ListCategoriesHandler returns every known category with its metadata
func ListCategoriesHandler(categoryStore *store.CategoryStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		categories := categoryStore.List()
		return c.JSON(http.StatusOK, models.CategoriesResponse{
			Categories: categories,
			Total:      len(categories),
		})
	}
}

// CategoryRecordsHandler returns the full dataset of one category. An
// unknown category yields an empty dataset, not an error.
func CategoryRecordsHandler(categoryStore *store.CategoryStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := c.Param("category")
		records := categoryStore.Get(name)
		if records == nil {
			records = []models.JobRecord{}
		}

		return c.JSON(http.StatusOK, models.DatasetResponse{
			Category: name,
			Records:  records,
			Total:    len(records),
		})
	}
}

// ClearCategoryHandler discards all records under a category but keeps the
// category itself
func ClearCategoryHandler(categoryStore *store.CategoryStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := c.Param("category")
		requestID := middleware.RequestID(c)

		if !categoryStore.Clear(name) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:     "category_not_found",
				Message:   "No such category: " + name,
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		logging.LogWithRequestID(requestID).Info("Category cleared via API", map[string]interface{}{"category": name})
		return c.JSON(http.StatusOK, map[string]string{
			"message":  "Category cleared",
			"category": name,
		})
	}
}

// RemoveCategoryHandler deletes a category and all its records
func RemoveCategoryHandler(categoryStore *store.CategoryStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := c.Param("category")
		requestID := middleware.RequestID(c)

		if !categoryStore.Remove(name) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:     "category_not_found",
				Message:   "No such category: " + name,
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		logging.LogWithRequestID(requestID).Info("Category removed via API", map[string]interface{}{"category": name})
		return c.JSON(http.StatusOK, map[string]string{
			"message":  "Category removed",
			"category": name,
		})
	}
}
