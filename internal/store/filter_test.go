package store

import (
	"testing"

	"github.com/isdelr/job-portal-be/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestJobFilter_BuilderIsImmutable(t *testing.T) {
	t.Parallel()

	base := NewJobFilter("owner-1")
	narrowed := base.WithStatus(models.StatusPending).WithWorkType(models.WorkInternship).WithSearch("  Eng ")

	assert.Equal(t, models.JobStatus(""), base.Status())
	assert.Equal(t, models.WorkType(""), base.WorkType())
	assert.Equal(t, "", base.Search())

	assert.Equal(t, "owner-1", narrowed.Owner())
	assert.Equal(t, models.StatusPending, narrowed.Status())
	assert.Equal(t, models.WorkInternship, narrowed.WorkType())
	assert.Equal(t, "Eng", narrowed.Search())
}

func TestJobFilter_Matches(t *testing.T) {
	t.Parallel()

	job := &models.Job{
		CreatedBy: "owner-1",
		Position:  "Senior Engineer",
		Status:    models.StatusPending,
		WorkType:  models.WorkInternship,
	}

	tests := []struct {
		name   string
		filter JobFilter
		want   bool
	}{
		{"owner only", NewJobFilter("owner-1"), true},
		{"other owner", NewJobFilter("owner-2"), false},
		{"status match", NewJobFilter("owner-1").WithStatus(models.StatusPending), true},
		{"status mismatch", NewJobFilter("owner-1").WithStatus(models.StatusInterview), false},
		{"work type mismatch", NewJobFilter("owner-1").WithWorkType(models.WorkFreelance), false},
		{"search case insensitive", NewJobFilter("owner-1").WithSearch("ENG"), true},
		{"search miss", NewJobFilter("owner-1").WithSearch("manager"), false},
		{
			"all predicates",
			NewJobFilter("owner-1").WithStatus(models.StatusPending).WithWorkType(models.WorkInternship).WithSearch("eng"),
			true,
		},
		{"search is literal", NewJobFilter("owner-1").WithSearch("Sen.*r"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(job))
		})
	}
}
