package processor

import (
	"encoding/json"
	"fmt"

	"skillviz-utils/internal/config"
	"skillviz-utils/internal/logging"
	"skillviz-utils/pkg/models"
	"skillviz-utils/pkg/utils"
)

// wrapperKeys are the conventional keys under which an upstream may wrap
// the record array instead of sending a bare JSON array
var wrapperKeys = []string{"data", "records", "jobs"}

// Processor runs the ingestion pipeline for one batch: decode, normalize,
// validate. Deduplication happens at append time against the target
// category (see the store).
type Processor struct {
	normalizer *Normalizer
	validator  *RecordValidator
	maxReasons int
	logger     logging.Logger
}

// New creates a processor for the configured ingest schema
func New(cfg *config.Config) *Processor {
	return &Processor{
		normalizer: NewNormalizer(cfg.Ingest.Schema),
		validator:  NewRecordValidator(),
		maxReasons: cfg.Ingest.MaxRejectionReasons,
		logger:     logging.GetGlobalLogger(),
	}
}

// ProcessBatch decodes a raw JSON payload and returns the normalized,
// validated records plus a per-batch report. A payload that is not valid
// JSON of the expected shape fails as a whole; individual bad records are
// skipped and counted, never fatal.
func (p *Processor) ProcessBatch(payload []byte) ([]models.JobRecord, *models.BatchReport, error) {
	rawRecords, err := DecodeRecords(payload)
	if err != nil {
		return nil, nil, err
	}

	report := &models.BatchReport{TotalRecords: len(rawRecords)}
	records := make([]models.JobRecord, 0, len(rawRecords))

	for i, raw := range rawRecords {
		rec := p.normalizer.Normalize(raw)

		if err := p.validator.Validate(rec); err != nil {
			report.RejectedRecords++
			if len(report.RejectionReasons) < p.maxReasons {
				report.RejectionReasons = append(report.RejectionReasons, fmt.Sprintf("record %d: %v", i, err))
			}
			p.logger.Debug("Record rejected", map[string]interface{}{
				"index":  i,
				"reason": err.Error(),
			})
			continue
		}

		records = append(records, *rec)
	}

	report.ValidRecords = len(records)
	return records, report, nil
}

// DecodeRecords parses a payload that is either a JSON array of record
// objects or such an array wrapped in an object under a conventional key
func DecodeRecords(payload []byte) ([]map[string]interface{}, error) {
	var rawRecords []map[string]interface{}
	if err := json.Unmarshal(payload, &rawRecords); err == nil {
		return rawRecords, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(payload, &wrapper); err != nil {
		return nil, utils.NewPayloadError("payload is not a JSON array of job objects")
	}

	for _, key := range wrapperKeys {
		inner, ok := wrapper[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(inner, &rawRecords); err != nil {
			return nil, utils.NewPayloadError(fmt.Sprintf("%q is not a JSON array of job objects", key))
		}
		return rawRecords, nil
	}

	return nil, utils.NewPayloadError("payload must be a JSON array or wrap one under a \"data\" key")
}
