// Package analytics computes derived aggregates over job record datasets.
// Every function is pure: it takes an already-filtered dataset, mutates
// nothing and retains no references past the call.
package analytics

import (
	"sort"

	"skillviz-utils/pkg/models"
)

// SkillFrequency counts how many records contain each skill. Results are
// ordered by count descending with ties broken by skill name, then
// truncated to topN (topN <= 0 keeps everything).
func SkillFrequency(records []models.JobRecord, topN int) []models.SkillCount {
	counts := make(map[string]int)
	for _, rec := range records {
		for _, skill := range rec.RequiredSkills {
			counts[skill]++
		}
	}

	return sortSkillCounts(counts, topN)
}

// SkillCoOccurrence counts, for every unordered pair of skills appearing
// together in at least minCount records, how many records contain both.
// Self-pairs are excluded; within a pair the lexicographically smaller
// skill comes first.
func SkillCoOccurrence(records []models.JobRecord, minCount int) []models.SkillPairCount {
	if minCount < 1 {
		minCount = 1
	}

	type pair struct{ a, b string }
	counts := make(map[pair]int)

	for _, rec := range records {
		skills := rec.RequiredSkills // already sorted and deduplicated by normalization
		for i := 0; i < len(skills); i++ {
			for j := i + 1; j < len(skills); j++ {
				counts[pair{skills[i], skills[j]}]++
			}
		}
	}

	pairs := make([]models.SkillPairCount, 0, len(counts))
	for p, count := range counts {
		if count < minCount {
			continue
		}
		pairs = append(pairs, models.SkillPairCount{SkillA: p.a, SkillB: p.b, Count: count})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Count != pairs[j].Count {
			return pairs[i].Count > pairs[j].Count
		}
		if pairs[i].SkillA != pairs[j].SkillA {
			return pairs[i].SkillA < pairs[j].SkillA
		}
		return pairs[i].SkillB < pairs[j].SkillB
	})

	return pairs
}

// SkillsByLocation partitions the dataset by city and computes each city's
// own skill frequency table, truncated to perCity skills. Cities are
// ordered by record count descending, ties by name.
func SkillsByLocation(records []models.JobRecord, perCity int) []models.LocationSkills {
	byCity := make(map[string][]models.JobRecord)
	for _, rec := range records {
		byCity[rec.City] = append(byCity[rec.City], rec)
	}

	locations := make([]models.LocationSkills, 0, len(byCity))
	for city, cityRecords := range byCity {
		locations = append(locations, models.LocationSkills{
			City:        city,
			RecordCount: len(cityRecords),
			Skills:      SkillFrequency(cityRecords, perCity),
		})
	}

	sort.Slice(locations, func(i, j int) bool {
		if locations[i].RecordCount != locations[j].RecordCount {
			return locations[i].RecordCount > locations[j].RecordCount
		}
		return locations[i].City < locations[j].City
	})

	return locations
}

// ExperienceSkillMatrix builds a (experience level x skill) co-occurrence
// matrix restricted to the overall top-N skills to keep it readable.
// Levels are ordered by record count descending, ties by name.
func ExperienceSkillMatrix(records []models.JobRecord, topN int) *models.ExperienceSkillMatrix {
	top := SkillFrequency(records, topN)
	skills := make([]string, len(top))
	index := make(map[string]int, len(top))
	for i, sc := range top {
		skills[i] = sc.Skill
		index[sc.Skill] = i
	}

	rowCounts := make(map[string][]int)
	levelRecords := make(map[string]int)
	for _, rec := range records {
		counts, exists := rowCounts[rec.ExperienceLevel]
		if !exists {
			counts = make([]int, len(skills))
			rowCounts[rec.ExperienceLevel] = counts
		}
		levelRecords[rec.ExperienceLevel]++
		for _, skill := range rec.RequiredSkills {
			if i, tracked := index[skill]; tracked {
				counts[i]++
			}
		}
	}

	rows := make([]models.ExperienceSkillRow, 0, len(rowCounts))
	for level, counts := range rowCounts {
		rows = append(rows, models.ExperienceSkillRow{Level: level, Counts: counts})
	}

	sort.Slice(rows, func(i, j int) bool {
		if levelRecords[rows[i].Level] != levelRecords[rows[j].Level] {
			return levelRecords[rows[i].Level] > levelRecords[rows[j].Level]
		}
		return rows[i].Level < rows[j].Level
	})

	return &models.ExperienceSkillMatrix{Skills: skills, Rows: rows}
}

// sortSkillCounts orders a frequency map by count descending, ties broken
// by skill name, truncating to topN when positive
func sortSkillCounts(counts map[string]int, topN int) []models.SkillCount {
	result := make([]models.SkillCount, 0, len(counts))
	for skill, count := range counts {
		result = append(result, models.SkillCount{Skill: skill, Count: count})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Skill < result[j].Skill
	})

	if topN > 0 && len(result) > topN {
		result = result[:topN]
	}
	return result
}
