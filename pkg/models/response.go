package models

import "time"

// IngestStats reports what happened to each record of an ingested batch
type IngestStats struct {
	TotalRecords      int      `json:"total_records"`
	RejectedRecords   int      `json:"rejected_records"`
	RejectionReasons  []string `json:"rejection_reasons,omitempty"`
	DuplicatesRemoved int      `json:"duplicates_removed"`
	NewRecordsAdded   int      `json:"new_records_added"`
}

// IngestResponse represents the response from a data ingestion request
type IngestResponse struct {
	Message   string      `json:"message"`
	Category  string      `json:"category"`
	Stats     IngestStats `json:"stats"`
	RequestID string      `json:"request_id"`
	Timestamp time.Time   `json:"timestamp"`
}

// CategoriesResponse lists all known categories with their metadata
type CategoriesResponse struct {
	Categories []CategoryInfo `json:"categories"`
	Total      int            `json:"total"`
}

// DatasetResponse returns the full dataset of a category
type DatasetResponse struct {
	Category string      `json:"category"`
	Records  []JobRecord `json:"records"`
	Total    int         `json:"total"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}
