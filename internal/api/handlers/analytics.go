package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"skillviz-utils/internal/analytics"
	"skillviz-utils/internal/api/middleware"
	"skillviz-utils/internal/cache"
	"skillviz-utils/internal/config"
	"skillviz-utils/internal/store"
	"skillviz-utils/pkg/models"
	"skillviz-utils/pkg/utils"
)

// datasetFor resolves the category query parameter to a dataset snapshot.
// Missing parameter or "all" selects every stored record; an unknown
// category is an empty dataset.
func datasetFor(c echo.Context, categoryStore *store.CategoryStore) (string, []models.JobRecord) {
	name := utils.GetStringOrDefault(c.QueryParam("category"), store.AllCategories)
	return name, categoryStore.Get(name)
}

// intParam parses a positive integer query parameter, falling back to def
func intParam(c echo.Context, name string, def int) int {
	if raw := c.QueryParam(name); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// SkillFrequencyHandler returns the top-N skill frequency table
func SkillFrequencyHandler(cfg *config.Config, categoryStore *store.CategoryStore, analyticsCache *cache.AnalyticsCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		category, records := datasetFor(c, categoryStore)
		topN := intParam(c, "top", cfg.Analytics.TopSkills)

		ctx := c.Request().Context()
		key := analyticsCache.Key(category, categoryStore.Revision(category), "skills", strconv.Itoa(topN))

		var skills []models.SkillCount
		if !analyticsCache.Get(ctx, key, &skills) {
			skills = analytics.SkillFrequency(records, topN)
			analyticsCache.Set(ctx, key, skills)
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"category": category,
			"total":    len(records),
			"skills":   skills,
		})
	}
}

// SkillCoOccurrenceHandler returns counts of skill pairs appearing together
func SkillCoOccurrenceHandler(cfg *config.Config, categoryStore *store.CategoryStore, analyticsCache *cache.AnalyticsCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		category, records := datasetFor(c, categoryStore)
		minCount := intParam(c, "min", 2)

		ctx := c.Request().Context()
		key := analyticsCache.Key(category, categoryStore.Revision(category), "combinations", strconv.Itoa(minCount))

		var pairs []models.SkillPairCount
		if !analyticsCache.Get(ctx, key, &pairs) {
			pairs = analytics.SkillCoOccurrence(records, minCount)
			analyticsCache.Set(ctx, key, pairs)
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"category":     category,
			"combinations": pairs,
		})
	}
}

// SkillsByLocationHandler returns each city's own skill frequency table
func SkillsByLocationHandler(cfg *config.Config, categoryStore *store.CategoryStore, analyticsCache *cache.AnalyticsCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		category, records := datasetFor(c, categoryStore)
		perCity := intParam(c, "per_city", cfg.Analytics.LocationSkills)

		ctx := c.Request().Context()
		key := analyticsCache.Key(category, categoryStore.Revision(category), "locations", strconv.Itoa(perCity))

		var locations []models.LocationSkills
		if !analyticsCache.Get(ctx, key, &locations) {
			locations = analytics.SkillsByLocation(records, perCity)
			analyticsCache.Set(ctx, key, locations)
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"category":  category,
			"locations": locations,
		})
	}
}

// ExperienceMatrixHandler returns the experience level x skill matrix
func ExperienceMatrixHandler(cfg *config.Config, categoryStore *store.CategoryStore, analyticsCache *cache.AnalyticsCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		category, records := datasetFor(c, categoryStore)
		topN := intParam(c, "top", cfg.Analytics.MatrixSkills)

		ctx := c.Request().Context()
		key := analyticsCache.Key(category, categoryStore.Revision(category), "experience_matrix", strconv.Itoa(topN))

		var matrix *models.ExperienceSkillMatrix
		if !analyticsCache.Get(ctx, key, &matrix) {
			matrix = analytics.ExperienceSkillMatrix(records, topN)
			analyticsCache.Set(ctx, key, matrix)
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"category": category,
			"matrix":   matrix,
		})
	}
}

// PublishingTrendHandler returns the time-bucketed publication series.
// Records without a parsed publication date are excluded from the series.
func PublishingTrendHandler(cfg *config.Config, categoryStore *store.CategoryStore, analyticsCache *cache.AnalyticsCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		category, records := datasetFor(c, categoryStore)
		requestID := middleware.RequestID(c)

		granularity, err := analytics.ParseGranularity(
			utils.GetStringOrDefault(c.QueryParam("granularity"), cfg.Analytics.Granularity))
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_granularity",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		ctx := c.Request().Context()
		key := analyticsCache.Key(category, categoryStore.Revision(category), "trend", string(granularity))

		var points []models.TrendPoint
		if !analyticsCache.Get(ctx, key, &points) {
			points = analytics.PublishingTrend(records, granularity)
			analyticsCache.Set(ctx, key, points)
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"category":    category,
			"granularity": string(granularity),
			"trend":       points,
		})
	}
}

// SkillTrendHandler returns per-skill counts over time buckets for the
// overall top-N skills
func SkillTrendHandler(cfg *config.Config, categoryStore *store.CategoryStore, analyticsCache *cache.AnalyticsCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		category, records := datasetFor(c, categoryStore)
		requestID := middleware.RequestID(c)
		topN := intParam(c, "top", 5)

		granularity, err := analytics.ParseGranularity(
			utils.GetStringOrDefault(c.QueryParam("granularity"), cfg.Analytics.Granularity))
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_granularity",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		ctx := c.Request().Context()
		key := analyticsCache.Key(category, categoryStore.Revision(category), "skill_trend", string(granularity), strconv.Itoa(topN))

		var points []models.SkillTrendPoint
		if !analyticsCache.Get(ctx, key, &points) {
			points = analytics.SkillTrend(records, granularity, topN)
			analyticsCache.Set(ctx, key, points)
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"category":    category,
			"granularity": string(granularity),
			"trend":       points,
		})
	}
}

// MarketSummaryHandler returns aggregate counts for the dataset
func MarketSummaryHandler(categoryStore *store.CategoryStore, analyticsCache *cache.AnalyticsCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		category, records := datasetFor(c, categoryStore)

		ctx := c.Request().Context()
		key := analyticsCache.Key(category, categoryStore.Revision(category), "summary")

		var summary *models.MarketSummary
		if !analyticsCache.Get(ctx, key, &summary) {
			summary = analytics.MarketSummary(records)
			analyticsCache.Set(ctx, key, summary)
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"category": category,
			"summary":  summary,
		})
	}
}
