package processor

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"skillviz-utils/pkg/models"
)

// RejectionError describes why a single record failed validation. It names
// the offending field so batch reports can be acted on.
type RejectionError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("field %s %s", e.Field, e.Reason)
}

// RecordValidator checks that a normalized record carries every required
// field and a non-empty skill set
type RecordValidator struct {
	validate *validator.Validate
}

// NewRecordValidator creates a record validator
func NewRecordValidator() *RecordValidator {
	validate := validator.New()

	// Report JSON field names instead of Go struct field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &RecordValidator{validate: validate}
}

// Validate returns nil for a storable record, or a RejectionError naming
// the first field that failed and why
func (v *RecordValidator) Validate(rec *models.JobRecord) error {
	err := v.validate.Struct(rec)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return &RejectionError{Field: "record", Reason: "is not a valid job record"}
	}

	fieldErr := validationErrors[0]
	return &RejectionError{
		Field:  fieldErr.Field(),
		Reason: rejectionReason(fieldErr),
	}
}

// rejectionReason turns a validator tag into a human-readable explanation
func rejectionReason(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is missing"
	case "min":
		return "must contain at least one skill after normalization"
	default:
		return fmt.Sprintf("failed %s validation", fieldErr.Tag())
	}
}
