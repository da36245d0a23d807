package processor

import (
	"testing"

	"skillviz-utils/pkg/models"
)

func record(title, company, city string, skills ...string) models.JobRecord {
	return models.JobRecord{
		Title:           title,
		Company:         company,
		City:            city,
		ExperienceLevel: "mid",
		RequiredSkills:  skills,
	}
}

func TestDedupKey(t *testing.T) {
	tests := []struct {
		name  string
		a, b  models.JobRecord
		equal bool
	}{
		{
			name:  "identical records",
			a:     record("Dev", "Acme", "Warsaw", "go"),
			b:     record("Dev", "Acme", "Warsaw", "go"),
			equal: true,
		},
		{
			name:  "case insensitive",
			a:     record("Dev", "Acme", "Warsaw"),
			b:     record("dev", "ACME", "warsaw"),
			equal: true,
		},
		{
			name:  "whitespace runs collapsed",
			a:     record("Senior  Dev", "Acme", "Warsaw"),
			b:     record("Senior Dev", "Acme", "Warsaw"),
			equal: true,
		},
		{
			name:  "skills do not affect identity",
			a:     record("Dev", "Acme", "Warsaw", "go"),
			b:     record("Dev", "Acme", "Warsaw", "python", "sql"),
			equal: true,
		},
		{
			name:  "different city",
			a:     record("Dev", "Acme", "Warsaw"),
			b:     record("Dev", "Acme", "Krakow"),
			equal: false,
		},
		{
			name:  "different company",
			a:     record("Dev", "Acme", "Warsaw"),
			b:     record("Dev", "Globex", "Warsaw"),
			equal: false,
		},
		{
			name:  "field values cannot collide across positions",
			a:     record("a b", "c", "d"),
			b:     record("a", "b c", "d"),
			equal: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ka, kb := DedupKey(&tt.a), DedupKey(&tt.b)
			if (ka == kb) != tt.equal {
				t.Errorf("DedupKey equality = %v, want %v (%q vs %q)", ka == kb, tt.equal, ka, kb)
			}
		})
	}
}

func TestFilterDuplicates(t *testing.T) {
	existing := map[Key]struct{}{
		DedupKey(&models.JobRecord{Title: "Dev", Company: "Acme", City: "Warsaw"}): {},
	}

	candidates := []models.JobRecord{
		record("Dev", "Acme", "Warsaw", "go"),      // duplicate of existing
		record("Dev", "Globex", "Warsaw", "go"),    // new
		record("dev", "GLOBEX", "warsaw", "rust"),  // duplicate within batch
		record("Analyst", "Acme", "Krakow", "sql"), // new
	}

	unique, dropped := FilterDuplicates(candidates, existing)

	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}
	if len(unique) != 2 {
		t.Fatalf("unique = %d records, want 2", len(unique))
	}
	if unique[0].Company != "Globex" || unique[1].Title != "Analyst" {
		t.Errorf("unexpected survivors: %+v", unique)
	}
	// First occurrence wins within the batch
	if unique[0].RequiredSkills[0] != "go" {
		t.Errorf("batch duplicate resolution kept the later record: %+v", unique[0])
	}
}

func TestFilterDuplicates_DoesNotMutateExisting(t *testing.T) {
	existing := map[Key]struct{}{}
	candidates := []models.JobRecord{record("Dev", "Acme", "Warsaw", "go")}

	FilterDuplicates(candidates, existing)

	if len(existing) != 0 {
		t.Errorf("existing key set mutated: %v", existing)
	}
}

func TestFilterDuplicates_EmptyInputs(t *testing.T) {
	unique, dropped := FilterDuplicates(nil, nil)
	if len(unique) != 0 || dropped != 0 {
		t.Errorf("FilterDuplicates(nil, nil) = %v, %d, want empty", unique, dropped)
	}
}
