package processor

import (
	"strings"

	"skillviz-utils/pkg/models"
)

// Key identifies a job posting for duplicate detection. Skills, dates and
// links may legitimately vary across re-scrapes of the same posting, so
// identity is the normalized (title, company, city) triple only.
type Key string

// DedupKey builds the dedup key for a normalized record. The comparison is
// case-insensitive with whitespace runs collapsed.
func DedupKey(rec *models.JobRecord) Key {
	parts := []string{
		strings.ToLower(CleanString(rec.Title)),
		strings.ToLower(CleanString(rec.Company)),
		strings.ToLower(CleanString(rec.City)),
	}
	return Key(strings.Join(parts, "\x1f"))
}

// FilterDuplicates drops candidates whose dedup key is already present in
// existing, and collapses duplicates within the batch itself (first record
// wins, no field-level merge). Runs in O(existing + incoming) via the
// precomputed key set.
func FilterDuplicates(candidates []models.JobRecord, existing map[Key]struct{}) (unique []models.JobRecord, dropped int) {
	seen := make(map[Key]struct{}, len(existing))
	for key := range existing {
		seen[key] = struct{}{}
	}

	for _, rec := range candidates {
		key := DedupKey(&rec)
		if _, dup := seen[key]; dup {
			dropped++
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, rec)
	}

	return unique, dropped
}
