package models

// SkillCount is one row of a skill frequency table
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// SkillPairCount counts how many records contain both skills of an
// unordered pair. SkillA sorts lexicographically before SkillB.
type SkillPairCount struct {
	SkillA string `json:"skill_a"`
	SkillB string `json:"skill_b"`
	Count  int    `json:"count"`
}

// LocationSkills is the per-city skill frequency table
type LocationSkills struct {
	City        string       `json:"city"`
	RecordCount int          `json:"record_count"`
	Skills      []SkillCount `json:"skills"`
}

// ExperienceSkillRow is one experience level's counts against the matrix skills
type ExperienceSkillRow struct {
	Level  string `json:"level"`
	Counts []int  `json:"counts"`
}

// ExperienceSkillMatrix is a (experience level x skill) co-occurrence matrix
// restricted to the overall top-N skills. Counts[i] in each row corresponds
// to Skills[i].
type ExperienceSkillMatrix struct {
	Skills []string             `json:"skills"`
	Rows   []ExperienceSkillRow `json:"rows"`
}

// TrendPoint is one time bucket of a publishing trend series
type TrendPoint struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}

// SkillTrendPoint is one time bucket of a per-skill trend series
type SkillTrendPoint struct {
	Bucket string         `json:"bucket"`
	Counts map[string]int `json:"counts"`
}

// MarketSummary aggregates dataset-wide counts in one pass
type MarketSummary struct {
	TotalRecords       int     `json:"total_records"`
	UniqueCompanies    int     `json:"unique_companies"`
	UniqueCities       int     `json:"unique_cities"`
	UniqueSkills       int     `json:"unique_skills"`
	AvgSkillsPerRecord float64 `json:"avg_skills_per_record"`
	TopExperienceLevel string  `json:"top_experience_level,omitempty"`
	TopCity            string  `json:"top_city,omitempty"`
	TopCompany         string  `json:"top_company,omitempty"`
	TopSkill           string  `json:"top_skill,omitempty"`
	// RemoteShare is nil when no record carries a workplace type
	RemoteShare *float64 `json:"remote_share,omitempty"`
}
