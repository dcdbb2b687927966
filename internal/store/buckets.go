package store

import (
	"sort"
	"time"

	"github.com/isdelr/job-portal-be/internal/models"
)

// BucketByMonth counts creation times per (year, month) in UTC.
// The output is ordered by year then month.
func BucketByMonth(times []time.Time) []models.MonthlyCount {
	type key struct {
		year  int
		month time.Month
	}

	counts := make(map[key]int64)
	for _, t := range times {
		u := t.UTC()
		counts[key{u.Year(), u.Month()}]++
	}

	out := make([]models.MonthlyCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, models.MonthlyCount{Year: k.year, Month: int(k.month), Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// CountByStatus groups jobs by status. The output is ordered by status name.
func CountByStatus(jobs []models.Job) []models.StatusCount {
	counts := make(map[models.JobStatus]int64)
	for _, j := range jobs {
		counts[j.Status]++
	}

	out := make([]models.StatusCount, 0, len(counts))
	for status, n := range counts {
		out = append(out, models.StatusCount{Status: status, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out
}
