package store

import (
	"testing"
	"time"

	"github.com/isdelr/job-portal-be/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestBucketByMonth(t *testing.T) {
	t.Parallel()

	ist := time.FixedZone("IST", 5*3600+1800)
	times := []time.Time{
		time.Date(2024, time.January, 3, 10, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 28, 10, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		// 2024-01-01 03:00 IST is still December 2023 in UTC.
		time.Date(2024, time.January, 1, 3, 0, 0, 0, ist),
	}

	got := BucketByMonth(times)

	assert.ElementsMatch(t, []models.MonthlyCount{
		{Year: 2023, Month: 12, Count: 1},
		{Year: 2024, Month: 1, Count: 2},
		{Year: 2024, Month: 3, Count: 1},
	}, got)
}

func TestBucketByMonth_Empty(t *testing.T) {
	t.Parallel()

	got := BucketByMonth(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCountByStatus(t *testing.T) {
	t.Parallel()

	jobs := []models.Job{
		{Status: models.StatusPending},
		{Status: models.StatusInterview},
		{Status: models.StatusPending},
	}

	got := CountByStatus(jobs)

	assert.ElementsMatch(t, []models.StatusCount{
		{Status: models.StatusPending, Count: 2},
		{Status: models.StatusInterview, Count: 1},
	}, got)
}
