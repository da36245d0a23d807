package analytics

import (
	"math"

	"skillviz-utils/pkg/models"
)

// MarketSummary computes aggregate counts over the dataset in a single
// pass: totals, distinct companies/cities/skills, the most common values
// and the remote share. All counts are exact; the remote share is nil when
// no record carries a workplace type, so callers never divide by zero.
func MarketSummary(records []models.JobRecord) *models.MarketSummary {
	summary := &models.MarketSummary{TotalRecords: len(records)}
	if len(records) == 0 {
		return summary
	}

	companies := make(map[string]int)
	cities := make(map[string]int)
	levels := make(map[string]int)
	skills := make(map[string]int)

	totalSkills := 0
	withWorkplace := 0
	remote := 0

	for _, rec := range records {
		companies[rec.Company]++
		cities[rec.City]++
		levels[rec.ExperienceLevel]++
		totalSkills += len(rec.RequiredSkills)
		for _, skill := range rec.RequiredSkills {
			skills[skill]++
		}
		if rec.WorkplaceType != "" {
			withWorkplace++
			if rec.WorkplaceType == "remote" {
				remote++
			}
		}
	}

	summary.UniqueCompanies = len(companies)
	summary.UniqueCities = len(cities)
	summary.UniqueSkills = len(skills)
	summary.AvgSkillsPerRecord = math.Round(float64(totalSkills)/float64(len(records))*10) / 10
	summary.TopCompany = mostCommon(companies)
	summary.TopCity = mostCommon(cities)
	summary.TopExperienceLevel = mostCommon(levels)
	summary.TopSkill = mostCommon(skills)

	if withWorkplace > 0 {
		share := float64(remote) / float64(withWorkplace)
		summary.RemoteShare = &share
	}

	return summary
}

// mostCommon returns the key with the highest count, ties broken by the
// lexicographically smaller key for stable output
func mostCommon(counts map[string]int) string {
	best := ""
	bestCount := 0
	for key, count := range counts {
		if count > bestCount || (count == bestCount && (best == "" || key < best)) {
			best = key
			bestCount = count
		}
	}
	return best
}
