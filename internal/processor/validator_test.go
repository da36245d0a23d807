package processor

import (
	"testing"

	"skillviz-utils/pkg/models"
)

func validRecord() *models.JobRecord {
	return &models.JobRecord{
		Title:           "Data Engineer",
		Company:         "Acme",
		City:            "Warsaw",
		ExperienceLevel: "mid",
		RequiredSkills:  []string{"python", "sql"},
	}
}

func TestValidate(t *testing.T) {
	v := NewRecordValidator()

	tests := []struct {
		name      string
		mutate    func(*models.JobRecord)
		wantField string
	}{
		{
			name:   "complete record passes",
			mutate: func(r *models.JobRecord) {},
		},
		{
			name:      "missing title",
			mutate:    func(r *models.JobRecord) { r.Title = "" },
			wantField: "title",
		},
		{
			name:      "missing company",
			mutate:    func(r *models.JobRecord) { r.Company = "" },
			wantField: "company",
		},
		{
			name:      "missing city",
			mutate:    func(r *models.JobRecord) { r.City = "" },
			wantField: "city",
		},
		{
			name:      "missing experience level",
			mutate:    func(r *models.JobRecord) { r.ExperienceLevel = "" },
			wantField: "experience_level",
		},
		{
			name:      "nil skills",
			mutate:    func(r *models.JobRecord) { r.RequiredSkills = nil },
			wantField: "required_skills",
		},
		{
			name:      "empty skills",
			mutate:    func(r *models.JobRecord) { r.RequiredSkills = []string{} },
			wantField: "required_skills",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(rec)

			err := v.Validate(rec)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Fatal("Validate() = nil, want rejection")
			}
			rejection, ok := err.(*RejectionError)
			if !ok {
				t.Fatalf("Validate() returned %T, want *RejectionError", err)
			}
			if rejection.Field != tt.wantField {
				t.Errorf("rejection field = %q, want %q", rejection.Field, tt.wantField)
			}
		})
	}
}

func TestValidate_OptionalFieldsMayBeAbsent(t *testing.T) {
	v := NewRecordValidator()

	rec := validRecord()
	rec.WorkingTime = ""
	rec.WorkplaceType = ""
	rec.RemoteInterview = nil
	rec.PublishedAt = nil
	rec.SourceLink = ""

	if err := v.Validate(rec); err != nil {
		t.Errorf("record with only required fields rejected: %v", err)
	}
}
