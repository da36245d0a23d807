package models

import "time"

// JobRecord represents a job posting after field normalization, ready for
// validation and storage. Title, company, city, experience level and the
// skill set are the validation-gated fields; everything else is optional.
type JobRecord struct {
	Title           string     `json:"title" validate:"required"`
	Company         string     `json:"company" validate:"required"`
	City            string     `json:"city" validate:"required"`
	ExperienceLevel string     `json:"experience_level" validate:"required"`
	WorkingTime     string     `json:"working_time,omitempty"`
	WorkplaceType   string     `json:"workplace_type,omitempty"`
	RemoteInterview *bool      `json:"remote_interview,omitempty"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	RequiredSkills  []string   `json:"required_skills" validate:"required,min=1"`
	SourceLink      string     `json:"source_link,omitempty"`
}

// CategoryInfo describes a stored category and its metadata
type CategoryInfo struct {
	Name        string    `json:"name"`
	RecordCount int       `json:"record_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BatchReport summarizes the outcome of normalizing and validating one
// ingested batch. Rejection reasons are capped by the caller so a large
// malformed batch cannot flood the response.
type BatchReport struct {
	TotalRecords     int      `json:"total_records"`
	ValidRecords     int      `json:"valid_records"`
	RejectedRecords  int      `json:"rejected_records"`
	RejectionReasons []string `json:"rejection_reasons,omitempty"`
}
