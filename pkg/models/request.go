package models

import "encoding/json"

// IngestRequest represents the request payload for adding job data to a category
type IngestRequest struct {
	Category string          `json:"category" validate:"required"`
	Data     json.RawMessage `json:"data" validate:"required"`
}
