package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"skillviz-utils/internal/cache"
	"skillviz-utils/internal/config"
	"skillviz-utils/internal/processor"
	"skillviz-utils/internal/store"
	"skillviz-utils/pkg/models"
)

func handlerConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Ingest.Schema = config.SchemaJustJoin
	cfg.Ingest.MaxRejectionReasons = 5
	cfg.Analytics.TopSkills = 20
	cfg.Analytics.MatrixSkills = 15
	cfg.Analytics.LocationSkills = 5
	cfg.Analytics.Granularity = "month"
	return cfg
}

func postIngest(t *testing.T, handler echo.HandlerFunc, body string) (*httptest.ResponseRecorder, models.IngestResponse) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/data", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := handler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp models.IngestResponse
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("response decode: %v", err)
		}
	}
	return rec, resp
}

func TestIngestHandler(t *testing.T) {
	cfg := handlerConfig()
	proc := processor.New(cfg)
	categoryStore := store.New()
	handler := IngestHandler(cfg, proc, categoryStore)

	body := `{
		"category": "engineering",
		"data": [
			{"title": "Dev", "companyName": "Acme", "city": "warsaw ", "experienceLevel": "JUNIOR", "requiredSkills": ["python", "Python", "sql"]},
			{"title": "Analyst", "companyName": "Globex", "experienceLevel": "Mid", "requiredSkills": ["excel"]}
		]
	}`

	rec, resp := postIngest(t, handler, body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if resp.Category != "engineering" {
		t.Errorf("category = %q", resp.Category)
	}
	if resp.Stats.TotalRecords != 2 || resp.Stats.NewRecordsAdded != 1 || resp.Stats.RejectedRecords != 1 {
		t.Errorf("stats = %+v, want total 2, added 1, rejected 1", resp.Stats)
	}

	stored := categoryStore.Get("engineering")
	if len(stored) != 1 {
		t.Fatalf("stored records = %d, want 1", len(stored))
	}
	if stored[0].City != "Warsaw" || stored[0].ExperienceLevel != "junior" {
		t.Errorf("stored record not normalized: %+v", stored[0])
	}
	if len(stored[0].RequiredSkills) != 2 {
		t.Errorf("stored skills = %v, want deduplicated pair", stored[0].RequiredSkills)
	}
}

func TestIngestHandler_AllDuplicates(t *testing.T) {
	cfg := handlerConfig()
	proc := processor.New(cfg)
	categoryStore := store.New()
	handler := IngestHandler(cfg, proc, categoryStore)

	body := `{
		"category": "engineering",
		"data": [{"title": "Dev", "companyName": "Acme", "city": "Warsaw", "experienceLevel": "Mid", "requiredSkills": ["go"]}]
	}`

	rec, _ := postIngest(t, handler, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("first ingest status = %d", rec.Code)
	}

	rec, resp := postIngest(t, handler, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("second ingest status = %d", rec.Code)
	}
	if resp.Stats.NewRecordsAdded != 0 || resp.Stats.DuplicatesRemoved != 1 {
		t.Errorf("stats = %+v, want added 0, duplicates 1", resp.Stats)
	}
	if resp.Message != "All records were duplicates, no new data added" {
		t.Errorf("message = %q", resp.Message)
	}
	if got := len(categoryStore.Get("engineering")); got != 1 {
		t.Errorf("stored records = %d, want 1", got)
	}
}

func TestIngestHandler_BadRequests(t *testing.T) {
	cfg := handlerConfig()
	proc := processor.New(cfg)
	handler := IngestHandler(cfg, proc, store.New())

	tests := []struct {
		name      string
		body      string
		wantError string
	}{
		{"missing category", `{"data": []}`, "validation_failed"},
		{"missing data", `{"category": "engineering"}`, "validation_failed"},
		{"data is a scalar", `{"category": "engineering", "data": 42}`, "invalid_payload"},
		{"data object without wrapper", `{"category": "engineering", "data": {"title": "Dev"}}`, "invalid_payload"},
		{"not JSON at all", `not json`, "invalid_request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := postIngest(t, handler, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
			var errResp models.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
				t.Fatalf("error decode: %v", err)
			}
			if errResp.Error != tt.wantError {
				t.Errorf("error = %q, want %q", errResp.Error, tt.wantError)
			}
		})
	}
}

func TestIngestHandler_WrappedPayload(t *testing.T) {
	cfg := handlerConfig()
	proc := processor.New(cfg)
	categoryStore := store.New()
	handler := IngestHandler(cfg, proc, categoryStore)

	body := `{
		"category": "engineering",
		"data": {"data": [{"title": "Dev", "companyName": "Acme", "city": "Warsaw", "experienceLevel": "Mid", "requiredSkills": ["go"]}]}
	}`

	rec, resp := postIngest(t, handler, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if resp.Stats.NewRecordsAdded != 1 {
		t.Errorf("stats = %+v, want one record added from wrapped payload", resp.Stats)
	}
}

func TestAnalyticsHandlers_EndToEnd(t *testing.T) {
	cfg := handlerConfig()
	proc := processor.New(cfg)
	categoryStore := store.New()
	analyticsCache := cache.New(cfg) // disabled, behaves as pass-through

	ingest := IngestHandler(cfg, proc, categoryStore)
	body := `{
		"category": "engineering",
		"data": [
			{"title": "Dev", "companyName": "Acme", "city": "Warsaw", "experienceLevel": "Junior", "requiredSkills": ["go", "sql"], "publishedAt": "2025-01-15T10:00:00Z"},
			{"title": "Analyst", "companyName": "Globex", "city": "Krakow", "experienceLevel": "Senior", "requiredSkills": ["sql"], "publishedAt": "2025-03-05T10:00:00Z"}
		]
	}`
	if rec, _ := postIngest(t, ingest, body); rec.Code != http.StatusOK {
		t.Fatalf("ingest failed: %s", rec.Body.String())
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/skills?category=engineering", nil)
	rec := httptest.NewRecorder()
	if err := SkillFrequencyHandler(cfg, categoryStore, analyticsCache)(e.NewContext(req, rec)); err != nil {
		t.Fatalf("skills handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("skills status = %d", rec.Code)
	}

	var skillsResp struct {
		Category string              `json:"category"`
		Total    int                 `json:"total"`
		Skills   []models.SkillCount `json:"skills"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &skillsResp); err != nil {
		t.Fatalf("skills decode: %v", err)
	}
	if skillsResp.Total != 2 || len(skillsResp.Skills) != 2 {
		t.Fatalf("skills response = %+v", skillsResp)
	}
	if skillsResp.Skills[0].Skill != "sql" || skillsResp.Skills[0].Count != 2 {
		t.Errorf("top skill = %+v, want sql:2", skillsResp.Skills[0])
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/analytics/trends/publishing?category=engineering", nil)
	rec = httptest.NewRecorder()
	if err := PublishingTrendHandler(cfg, categoryStore, analyticsCache)(e.NewContext(req, rec)); err != nil {
		t.Fatalf("trend handler error: %v", err)
	}

	var trendResp struct {
		Granularity string             `json:"granularity"`
		Trend       []models.TrendPoint `json:"trend"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &trendResp); err != nil {
		t.Fatalf("trend decode: %v", err)
	}
	if len(trendResp.Trend) != 3 {
		t.Fatalf("trend = %v, want 3 buckets with the gap zero-filled", trendResp.Trend)
	}
	if trendResp.Trend[1].Bucket != "2025-02" || trendResp.Trend[1].Count != 0 {
		t.Errorf("gap bucket = %+v, want 2025-02 with count 0", trendResp.Trend[1])
	}
}

func TestPublishingTrendHandler_InvalidGranularity(t *testing.T) {
	cfg := handlerConfig()
	categoryStore := store.New()
	analyticsCache := cache.New(cfg)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/trends/publishing?granularity=week", nil)
	rec := httptest.NewRecorder()
	if err := PublishingTrendHandler(cfg, categoryStore, analyticsCache)(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCategoryHandlers(t *testing.T) {
	cfg := handlerConfig()
	proc := processor.New(cfg)
	categoryStore := store.New()

	body := `{
		"category": "engineering",
		"data": [{"title": "Dev", "companyName": "Acme", "city": "Warsaw", "experienceLevel": "Mid", "requiredSkills": ["go"]}]
	}`
	if rec, _ := postIngest(t, IngestHandler(cfg, proc, categoryStore), body); rec.Code != http.StatusOK {
		t.Fatalf("ingest failed: %s", rec.Body.String())
	}

	e := echo.New()

	// Records of an unknown category come back as an empty list, not 404
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("category")
	c.SetParamValues("missing")
	if err := CategoryRecordsHandler(categoryStore)(c); err != nil {
		t.Fatalf("records handler error: %v", err)
	}
	var dataset models.DatasetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &dataset); err != nil {
		t.Fatalf("dataset decode: %v", err)
	}
	if rec.Code != http.StatusOK || dataset.Total != 0 || dataset.Records == nil {
		t.Errorf("unknown category response = %d %+v, want 200 with empty records", rec.Code, dataset)
	}

	// Clearing an unknown category is a 404
	req = httptest.NewRequest(http.MethodPost, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("category")
	c.SetParamValues("missing")
	if err := ClearCategoryHandler(categoryStore)(c); err != nil {
		t.Fatalf("clear handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("clear unknown category status = %d, want 404", rec.Code)
	}

	// Removing the real category works once
	req = httptest.NewRequest(http.MethodDelete, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("category")
	c.SetParamValues("engineering")
	if err := RemoveCategoryHandler(categoryStore)(c); err != nil {
		t.Fatalf("remove handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("remove status = %d, want 200", rec.Code)
	}
	if len(categoryStore.List()) != 0 {
		t.Errorf("categories after remove = %+v, want none", categoryStore.List())
	}
}
