package analytics

import (
	"fmt"
	"time"

	"skillviz-utils/pkg/models"
)

// Granularity is the time bucket size for trend series
type Granularity string

const (
	Daily   Granularity = "day"
	Monthly Granularity = "month"
)

// ParseGranularity maps a query string to a Granularity, defaulting to monthly
func ParseGranularity(s string) (Granularity, error) {
	switch s {
	case "", "month", "monthly":
		return Monthly, nil
	case "day", "daily":
		return Daily, nil
	default:
		return "", fmt.Errorf("unknown granularity %q (expected day or month)", s)
	}
}

// bucket truncates a timestamp to the start of its bucket in UTC
func (g Granularity) bucket(t time.Time) time.Time {
	t = t.UTC()
	if g == Daily {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// next returns the start of the bucket after b
func (g Granularity) next(b time.Time) time.Time {
	if g == Daily {
		return b.AddDate(0, 0, 1)
	}
	return b.AddDate(0, 1, 0)
}

// label formats a bucket start for output
func (g Granularity) label(b time.Time) string {
	if g == Daily {
		return b.Format("2006-01-02")
	}
	return b.Format("2006-01")
}

// PublishingTrend buckets records by publication time and returns an
// ordered series of (bucket, count) points. Records without a parsed
// timestamp are excluded. Empty buckets between the earliest and latest
// observed bucket are filled with zero so trend lines are continuous.
func PublishingTrend(records []models.JobRecord, granularity Granularity) []models.TrendPoint {
	counts := make(map[time.Time]int)
	for _, rec := range records {
		if rec.PublishedAt == nil {
			continue
		}
		counts[granularity.bucket(*rec.PublishedAt)]++
	}

	var points []models.TrendPoint
	for _, b := range bucketRange(counts, granularity) {
		points = append(points, models.TrendPoint{
			Bucket: granularity.label(b),
			Count:  counts[b],
		})
	}
	return points
}

// SkillTrend buckets records by publication time and counts, per bucket,
// how many records mention each of the overall top-N skills. Zero-filled
// like PublishingTrend.
func SkillTrend(records []models.JobRecord, granularity Granularity, topN int) []models.SkillTrendPoint {
	top := SkillFrequency(records, topN)
	tracked := make(map[string]struct{}, len(top))
	for _, sc := range top {
		tracked[sc.Skill] = struct{}{}
	}

	counts := make(map[time.Time]map[string]int)
	for _, rec := range records {
		if rec.PublishedAt == nil {
			continue
		}
		b := granularity.bucket(*rec.PublishedAt)
		if counts[b] == nil {
			counts[b] = make(map[string]int)
		}
		for _, skill := range rec.RequiredSkills {
			if _, ok := tracked[skill]; ok {
				counts[b][skill]++
			}
		}
	}

	present := make(map[time.Time]int, len(counts))
	for b := range counts {
		present[b] = 1
	}

	var points []models.SkillTrendPoint
	for _, b := range bucketRange(present, granularity) {
		perSkill := counts[b]
		if perSkill == nil {
			perSkill = make(map[string]int)
		}
		points = append(points, models.SkillTrendPoint{
			Bucket: granularity.label(b),
			Counts: perSkill,
		})
	}
	return points
}

// bucketRange returns every bucket from the earliest to the latest observed
// one, inclusive, in chronological order
func bucketRange(observed map[time.Time]int, granularity Granularity) []time.Time {
	if len(observed) == 0 {
		return nil
	}

	var min, max time.Time
	first := true
	for b := range observed {
		if first {
			min, max = b, b
			first = false
			continue
		}
		if b.Before(min) {
			min = b
		}
		if b.After(max) {
			max = b
		}
	}

	var buckets []time.Time
	for b := min; !b.After(max); b = granularity.next(b) {
		buckets = append(buckets, b)
	}
	return buckets
}
