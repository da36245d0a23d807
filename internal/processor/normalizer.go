package processor

import (
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	"skillviz-utils/internal/config"
	"skillviz-utils/pkg/models"
)

// dateFormats are tried in order; the first successful parse wins. An
// unparsable date is not an error, the field is simply left absent.
var dateFormats = []string{
	time.RFC3339,
	"02.01.2006",
	"2006-01-02",
}

// experienceSynonyms maps known spellings to the canonical enumerated levels
var experienceSynonyms = map[string]string{
	"jr":           "junior",
	"jun":          "junior",
	"junior":       "junior",
	"trainee":      "junior",
	"mid":          "mid",
	"middle":       "mid",
	"regular":      "mid",
	"intermediate": "mid",
	"sr":           "senior",
	"senior":       "senior",
	"lead":         "lead",
	"expert":       "lead",
	"principal":    "lead",
}

// companySuffixes are trailing legal-form tokens stripped from company names
var companySuffixes = []string{
	"sp. z o.o.",
	"sp. z o. o.",
	"sp z o.o.",
	"s.a.",
	"z o.o.",
	"inc.",
	"inc",
	"llc",
	"ltd.",
	"ltd",
	"gmbh",
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	skillNoise    = regexp.MustCompile(`[^\w\s+#.-]`)
)

// Normalizer canonicalizes raw job records decoded from JSON into the
// uniform JobRecord shape. The field naming schema is fixed per deployment;
// payloads are never inspected to guess which schema they use.
type Normalizer struct {
	schema string
}

// NewNormalizer creates a normalizer for the configured ingest schema
func NewNormalizer(schema string) *Normalizer {
	return &Normalizer{schema: schema}
}

// Normalize converts one raw record into a JobRecord. It is a pure function
// of its input: no lookups, no mutation of the raw map, deterministic output.
// Missing or malformed fields produce zero values for the validator to judge.
func (n *Normalizer) Normalize(raw map[string]interface{}) *models.JobRecord {
	rec := &models.JobRecord{}

	switch n.schema {
	case config.SchemaAPI:
		rec.Title = CleanString(getString(raw, "role"))
		rec.Company = normalizeCompany(getString(raw, "company"))
		rec.City = normalizeCity(getString(raw, "city"))
		rec.ExperienceLevel = normalizeExperience(getString(raw, "seniority"))
		rec.WorkingTime = strings.ToLower(CleanString(getString(raw, "job_time_type")))
		if remote, ok := getBool(raw, "remote"); ok && remote {
			rec.WorkplaceType = "remote"
		}
		rec.PublishedAt = parseDate(getString(raw, "published_date"))
		rec.RequiredSkills = normalizeSkills(raw["skills"])
		rec.SourceLink = CleanString(getString(raw, "url"))
	default: // config.SchemaJustJoin
		rec.Title = CleanString(getString(raw, "title"))
		rec.Company = normalizeCompany(getString(raw, "companyName"))
		rec.City = normalizeCity(getString(raw, "city"))
		rec.ExperienceLevel = normalizeExperience(getString(raw, "experienceLevel"))
		rec.WorkingTime = strings.ToLower(CleanString(getString(raw, "workingTime")))
		rec.WorkplaceType = strings.ToLower(CleanString(getString(raw, "workplaceType")))
		if remote, ok := getBool(raw, "remoteInterview"); ok {
			v := remote
			rec.RemoteInterview = &v
		}
		rec.PublishedAt = parseDate(getString(raw, "publishedAt"))
		rec.RequiredSkills = normalizeSkills(raw["requiredSkills"])
		rec.SourceLink = CleanString(getString(raw, "link"))
	}

	return rec
}

// CleanString trims leading/trailing whitespace and collapses internal
// whitespace runs to a single space
func CleanString(s string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

// normalizeCity canonicalizes a city name to title case
func normalizeCity(s string) string {
	return titleCase(CleanString(s))
}

// normalizeCompany cleans a company name and strips a trailing legal suffix
func normalizeCompany(s string) string {
	s = CleanString(s)
	lower := strings.ToLower(s)

	for _, suffix := range companySuffixes {
		if strings.HasSuffix(lower, " "+suffix) {
			s = strings.TrimRight(s[:len(s)-len(suffix)], " ,")
			break
		}
	}

	return s
}

// normalizeExperience maps known synonyms and casings to a canonical level.
// Unrecognized values are kept lower-cased rather than rejected.
func normalizeExperience(s string) string {
	s = strings.ToLower(CleanString(s))
	if canonical, ok := experienceSynonyms[s]; ok {
		return canonical
	}
	return s
}

// normalizeSkills accepts either a list of skill names or a mapping from
// skill name to proficiency descriptor. Both variants produce the same
// canonical shape: a sorted set of lower-cased skill names with noise
// characters stripped, empties dropped and duplicates collapsed.
func normalizeSkills(value interface{}) []string {
	var names []string

	switch v := value.(type) {
	case []interface{}:
		for _, item := range v {
			if name, ok := item.(string); ok {
				names = append(names, name)
			}
		}
	case map[string]interface{}:
		for name := range v {
			names = append(names, name)
		}
	default:
		return nil
	}

	seen := make(map[string]struct{}, len(names))
	var skills []string
	for _, name := range names {
		skill := normalizeSkillName(name)
		if skill == "" {
			continue
		}
		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}
		skills = append(skills, skill)
	}

	sort.Strings(skills)
	return skills
}

// normalizeSkillName canonicalizes a single skill name
func normalizeSkillName(s string) string {
	s = skillNoise.ReplaceAllString(s, "")
	return strings.ToLower(CleanString(s))
}

// parseDate tries the accepted textual formats in order and returns the
// first successful parse, or nil when every format fails
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			t = t.UTC()
			return &t
		}
	}

	return nil
}

// titleCase upper-cases the first letter of every space-separated word and
// lower-cases the rest
func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func getString(raw map[string]interface{}, key string) string {
	if value, ok := raw[key].(string); ok {
		return value
	}
	return ""
}

func getBool(raw map[string]interface{}, key string) (bool, bool) {
	value, ok := raw[key].(bool)
	return value, ok
}
