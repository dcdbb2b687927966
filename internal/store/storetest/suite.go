// Package storetest holds a conformance suite every store.Store must pass.
package storetest

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isdelr/job-portal-be/internal/models"
	"github.com/isdelr/job-portal-be/internal/store"
)

// Factory returns a fresh, empty store for one subtest.
type Factory func(t *testing.T) store.Store

var base = time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)

// NewUser builds a user ready to insert.
func NewUser(email string) *models.User {
	return &models.User{
		ID:           uuid.New().String(),
		FirstName:    "Test",
		Email:        email,
		PasswordHash: "$2a$04$hash",
		Location:     models.DefaultUserLocation,
		CreatedAt:    base,
		UpdatedAt:    base,
	}
}

// NewJob builds a job owned by owner, created at base plus offset.
func NewJob(owner, position string, status models.JobStatus, workType models.WorkType, offset time.Duration) *models.Job {
	j := &models.Job{
		ID:        uuid.New().String(),
		Company:   "Acme",
		Position:  position,
		Status:    status,
		WorkType:  workType,
		CreatedBy: owner,
		CreatedAt: base.Add(offset),
		UpdatedAt: base.Add(offset),
	}
	j.ApplyDefaults()
	return j
}

// Run executes the suite.
func Run(t *testing.T, newStore Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("DuplicateEmail", func(t *testing.T) { testDuplicateEmail(t, newStore(t)) })
	t.Run("JobCRUD", func(t *testing.T) { testJobCRUD(t, newStore(t)) })
	t.Run("OwnershipIsolation", func(t *testing.T) { testOwnership(t, newStore(t)) })
	t.Run("Pagination", func(t *testing.T) { testPagination(t, newStore(t)) })
	t.Run("ExtremePages", func(t *testing.T) { testExtremePages(t, newStore(t)) })
	t.Run("FilterCombination", func(t *testing.T) { testFilters(t, newStore(t)) })
	t.Run("Stats", func(t *testing.T) { testStats(t, newStore(t)) })
}

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := NewUser("ada@example.com")
	require.NoError(t, s.CreateUser(ctx, u))

	got, err := s.GetUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, u.PasswordHash, got.PasswordHash)

	got, err = s.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", got.Email)

	got.FirstName = "Ada"
	got.Location = "London"
	got.PasswordHash = "ignored"
	got.UpdatedAt = base.Add(time.Hour)
	require.NoError(t, s.UpdateUserProfile(ctx, got))

	got, err = s.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, "London", got.Location)
	assert.Equal(t, u.PasswordHash, got.PasswordHash)

	require.NoError(t, s.UpdateUserPassword(ctx, u.ID, "$2a$04$new", base.Add(2*time.Hour)))
	got, err = s.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "$2a$04$new", got.PasswordHash)

	_, err = s.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetUserByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.UpdateUserPassword(ctx, "missing", "x", base), store.ErrNotFound)
}

func testDuplicateEmail(t *testing.T, s store.Store) {
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, NewUser("dup@example.com")))
	assert.ErrorIs(t, s.CreateUser(ctx, NewUser("dup@example.com")), store.ErrDuplicateEmail)

	other := NewUser("other@example.com")
	require.NoError(t, s.CreateUser(ctx, other))
	other.Email = "dup@example.com"
	assert.ErrorIs(t, s.UpdateUserProfile(ctx, other), store.ErrDuplicateEmail)
}

func testJobCRUD(t *testing.T, s store.Store) {
	ctx := context.Background()
	j := NewJob("owner-a", "Backend Engineer", "", "", 0)
	require.NoError(t, s.CreateJob(ctx, j))

	got, err := s.GetJob(ctx, j.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Equal(t, models.WorkFullTime, got.WorkType)
	assert.Equal(t, models.DefaultWorkLocation, got.WorkLocation)
	assert.True(t, j.CreatedAt.Equal(got.CreatedAt))

	company := "Globex"
	status := models.StatusInterview
	updated, err := s.UpdateOwnedJob(ctx, j.ID, "owner-a", models.JobUpdate{Company: &company, Status: &status}, base.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "Globex", updated.Company)
	assert.Equal(t, "Backend Engineer", updated.Position)
	assert.Equal(t, models.StatusInterview, updated.Status)
	assert.True(t, base.Add(time.Minute).Equal(updated.UpdatedAt))

	require.NoError(t, s.DeleteOwnedJob(ctx, j.ID, "owner-a"))
	_, err = s.GetJob(ctx, j.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.DeleteOwnedJob(ctx, j.ID, "owner-a"), store.ErrNotFound)
}

func testOwnership(t *testing.T, s store.Store) {
	ctx := context.Background()
	bJob := NewJob("owner-b", "Designer", models.StatusPending, models.WorkFullTime, 0)
	require.NoError(t, s.CreateJob(ctx, bJob))

	company := "Hijack"
	_, err := s.UpdateOwnedJob(ctx, bJob.ID, "owner-a", models.JobUpdate{Company: &company}, base)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.DeleteOwnedJob(ctx, bJob.ID, "owner-a"), store.ErrNotFound)

	jobs, err := s.FindJobs(ctx, store.NewJobFilter("owner-a"), store.NewPage(1, 10))
	require.NoError(t, err)
	assert.Empty(t, jobs)

	got, err := s.GetJob(ctx, bJob.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Company)
}

func testPagination(t *testing.T, s store.Store) {
	ctx := context.Background()
	for i := 0; i < 15; i++ {
		j := NewJob("owner-a", fmt.Sprintf("Role %02d", i), models.StatusPending, models.WorkFullTime, time.Duration(i)*time.Minute)
		require.NoError(t, s.CreateJob(ctx, j))
	}
	require.NoError(t, s.CreateJob(ctx, NewJob("owner-b", "Role X", models.StatusPending, models.WorkFullTime, 0)))

	f := store.NewJobFilter("owner-a")
	total, err := s.CountJobs(ctx, f)
	require.NoError(t, err)
	assert.EqualValues(t, 15, total)

	first, err := s.FindJobs(ctx, f, store.NewPage(1, 10))
	require.NoError(t, err)
	require.Len(t, first, 10)
	assert.Equal(t, "Role 14", first[0].Position)

	second, err := s.FindJobs(ctx, f, store.NewPage(2, 10))
	require.NoError(t, err)
	require.Len(t, second, 5)
	assert.Equal(t, "Role 00", second[4].Position)

	for i := 1; i < len(first); i++ {
		assert.False(t, first[i].CreatedAt.After(first[i-1].CreatedAt), "results must be newest first")
	}

	third, err := s.FindJobs(ctx, f, store.NewPage(3, 10))
	require.NoError(t, err)
	assert.Empty(t, third)
}

func testExtremePages(t *testing.T, s store.Store) {
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, s.CreateJob(ctx, NewJob("owner-a", fmt.Sprintf("Role %d", i), models.StatusPending, models.WorkFullTime, time.Duration(i)*time.Minute)))
	}
	f := store.NewJobFilter("owner-a")

	pages := []store.Page{
		store.NewPage(1<<62, 4),
		store.NewPage(math.MaxInt, math.MaxInt),
		{Number: 1, Size: 1 << 62},
	}
	for _, page := range pages {
		jobs, err := s.FindJobs(ctx, f, page)
		require.NoError(t, err, "page %+v", page)
		assert.LessOrEqual(t, len(jobs), 3)
	}

	all, err := s.FindJobs(ctx, f, store.Page{Number: 1, Size: 1 << 62})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func testFilters(t *testing.T, s store.Store) {
	ctx := context.Background()
	seed := []*models.Job{
		NewJob("owner-a", "Software ENGINEER Intern", models.StatusPending, models.WorkInternship, 0),
		NewJob("owner-a", "Data Engineer", models.StatusPending, models.WorkFullTime, time.Minute),
		NewJob("owner-a", "Engineering Intern", models.StatusInterview, models.WorkInternship, 2*time.Minute),
		NewJob("owner-a", "Designer Intern", models.StatusPending, models.WorkInternship, 3*time.Minute),
		NewJob("owner-b", "Engineer Intern", models.StatusPending, models.WorkInternship, 4*time.Minute),
		NewJob("owner-a", "100% remote (eng)", models.StatusPending, models.WorkInternship, 5*time.Minute),
	}
	for _, j := range seed {
		require.NoError(t, s.CreateJob(ctx, j))
	}

	f := store.NewJobFilter("owner-a").
		WithStatus(models.StatusPending).
		WithWorkType(models.WorkInternship).
		WithSearch("eng")

	jobs, err := s.FindJobs(ctx, f, store.NewPage(1, 10))
	require.NoError(t, err)

	positions := make([]string, len(jobs))
	for i, j := range jobs {
		positions[i] = j.Position
	}
	assert.ElementsMatch(t, []string{"Software ENGINEER Intern", "100% remote (eng)"}, positions)

	total, err := s.CountJobs(ctx, f)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	literal, err := s.FindJobs(ctx, store.NewJobFilter("owner-a").WithSearch("100%"), store.NewPage(1, 10))
	require.NoError(t, err)
	require.Len(t, literal, 1)
	assert.Equal(t, "100% remote (eng)", literal[0].Position)
}

func testStats(t *testing.T, s store.Store) {
	ctx := context.Background()
	seed := []*models.Job{
		NewJob("owner-a", "A", models.StatusPending, models.WorkFullTime, 0),
		NewJob("owner-a", "B", models.StatusPending, models.WorkFullTime, 40*24*time.Hour),
		NewJob("owner-a", "C", models.StatusInterview, models.WorkFullTime, time.Hour),
		NewJob("owner-b", "D", models.StatusReject, models.WorkFullTime, 0),
	}
	for _, j := range seed {
		require.NoError(t, s.CreateJob(ctx, j))
	}

	counts, err := s.CountJobsByStatus(ctx, "owner-a")
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.StatusCount{
		{Status: models.StatusPending, Count: 2},
		{Status: models.StatusInterview, Count: 1},
	}, counts)

	times, err := s.JobCreationTimes(ctx, "owner-a")
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.MonthlyCount{
		{Year: 2024, Month: 5, Count: 2},
		{Year: 2024, Month: 6, Count: 1},
	}, store.BucketByMonth(times))

	empty, err := s.CountJobsByStatus(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
