package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/isdelr/job-portal-be/internal/apperr"
	"github.com/isdelr/job-portal-be/internal/models"
	"github.com/isdelr/job-portal-be/internal/store"
)

// JobServiceProvider defines the interface for job services.
type JobServiceProvider interface {
	CreateJob(ctx context.Context, owner string, in JobInput) (*models.Job, error)
	GetJob(ctx context.Context, id string) (*models.Job, error)
	GetOwnedJob(ctx context.Context, id, owner string) (*models.Job, error)
	ListJobs(ctx context.Context, owner string, q ListQuery) (JobList, error)
	UpdateJob(ctx context.Context, id, owner string, in JobUpdateInput) (*models.Job, error)
	DeleteJob(ctx context.Context, id, owner string) error
	Stats(ctx context.Context, owner string) (models.JobStats, error)
}

// JobInput is the create payload. Any owner sent by the client is ignored.
type JobInput struct {
	Company      string           `json:"company"`
	Position     string           `json:"position" validate:"jobposition"`
	Status       models.JobStatus `json:"status" validate:"omitempty,jobstatus"`
	WorkType     models.WorkType  `json:"work_type" validate:"omitempty,worktype"`
	WorkLocation string           `json:"work_location"`
}

// JobUpdateInput is the update payload. Nil or empty fields are left unchanged.
type JobUpdateInput struct {
	Company      *string           `json:"company"`
	Position     *string           `json:"position" validate:"omitempty,jobposition"`
	Status       *models.JobStatus `json:"status" validate:"omitempty,jobstatus"`
	WorkType     *models.WorkType  `json:"work_type" validate:"omitempty,worktype"`
	WorkLocation *string           `json:"work_location"`
}

// ListQuery carries the optional list parameters.
type ListQuery struct {
	Status   string
	WorkType string
	Search   string
	PageNo   int
	Limit    int
}

// JobList is one page of jobs plus the unpaged total.
type JobList struct {
	Jobs  []models.Job
	Total int64
}

// JobService implements the owner-scoped job queries.
type JobService struct {
	jobs store.JobStore
	now  func() time.Time
}

// NewJobService creates a new JobService.
func NewJobService(jobs store.JobStore) *JobService {
	return &JobService{jobs: jobs, now: func() time.Time { return time.Now().UTC() }}
}

var errJobNotFound = apperr.NotFound("Job not found")

func jobError(msg string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return errJobNotFound
	}
	return apperr.Internal(msg, err)
}

// CreateJob stores a new job owned by owner.
func (s *JobService) CreateJob(ctx context.Context, owner string, in JobInput) (*models.Job, error) {
	in.Company = strings.TrimSpace(in.Company)
	in.Position = strings.TrimSpace(in.Position)
	if in.Company == "" || in.Position == "" {
		return nil, apperr.Validation("Please Provide all information").WithStatus(http.StatusNotFound)
	}
	if err := check(in); err != nil {
		return nil, err
	}

	now := s.now()
	job := &models.Job{
		ID:           uuid.New().String(),
		Company:      in.Company,
		Position:     in.Position,
		Status:       in.Status,
		WorkType:     in.WorkType,
		WorkLocation: strings.TrimSpace(in.WorkLocation),
		CreatedBy:    owner,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	job.ApplyDefaults()

	if err := s.jobs.CreateJob(ctx, job); err != nil {
		return nil, apperr.Internal("failed to create job", err)
	}

	log.Info().Str("job_id", job.ID).Str("user_id", owner).Msg("Job created")
	return job, nil
}

// GetJob looks a job up by id alone, without an ownership check.
func (s *JobService) GetJob(ctx context.Context, id string) (*models.Job, error) {
	job, err := s.jobs.GetJob(ctx, id)
	if err != nil {
		return nil, jobError("failed to load job", err)
	}
	return job, nil
}

// GetOwnedJob looks a job up by id and reports NotFound unless owner owns it.
func (s *JobService) GetOwnedJob(ctx context.Context, id, owner string) (*models.Job, error) {
	job, err := s.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.CreatedBy != owner {
		return nil, errJobNotFound
	}
	return job, nil
}

// ListJobs returns one page of owner's jobs matching q, newest first.
func (s *JobService) ListJobs(ctx context.Context, owner string, q ListQuery) (JobList, error) {
	filter := store.NewJobFilter(owner).
		WithStatus(models.JobStatus(strings.TrimSpace(q.Status))).
		WithWorkType(models.WorkType(strings.TrimSpace(q.WorkType))).
		WithSearch(q.Search)
	page := store.NewPage(q.PageNo, q.Limit)

	jobs, err := s.jobs.FindJobs(ctx, filter, page)
	if err != nil {
		return JobList{}, apperr.Internal("failed to list jobs", err)
	}
	total, err := s.jobs.CountJobs(ctx, filter)
	if err != nil {
		return JobList{}, apperr.Internal("failed to count jobs", err)
	}
	return JobList{Jobs: jobs, Total: total}, nil
}

func nonEmpty(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// UpdateJob changes a job owned by owner. A job that does not exist and a
// job owned by someone else both report NotFound.
func (s *JobService) UpdateJob(ctx context.Context, id, owner string, in JobUpdateInput) (*models.Job, error) {
	in.Company = nonEmpty(in.Company)
	in.Position = nonEmpty(in.Position)
	in.WorkLocation = nonEmpty(in.WorkLocation)
	if in.Status != nil && *in.Status == "" {
		in.Status = nil
	}
	if in.WorkType != nil && *in.WorkType == "" {
		in.WorkType = nil
	}
	if err := check(in); err != nil {
		return nil, err
	}

	upd := models.JobUpdate{
		Company:      in.Company,
		Position:     in.Position,
		Status:       in.Status,
		WorkType:     in.WorkType,
		WorkLocation: in.WorkLocation,
	}
	if upd.Empty() {
		// Nothing to change; still enforce ownership.
		return s.GetOwnedJob(ctx, id, owner)
	}
	job, err := s.jobs.UpdateOwnedJob(ctx, id, owner, upd, s.now())
	if err != nil {
		return nil, jobError("failed to update job", err)
	}
	return job, nil
}

// DeleteJob removes a job owned by owner, with the same NotFound rule as UpdateJob.
func (s *JobService) DeleteJob(ctx context.Context, id, owner string) error {
	if err := s.jobs.DeleteOwnedJob(ctx, id, owner); err != nil {
		return jobError("failed to delete job", err)
	}
	log.Info().Str("job_id", id).Str("user_id", owner).Msg("Job deleted")
	return nil
}

// Stats groups owner's jobs by status and by creation month.
func (s *JobService) Stats(ctx context.Context, owner string) (models.JobStats, error) {
	byStatus, err := s.jobs.CountJobsByStatus(ctx, owner)
	if err != nil {
		return models.JobStats{}, apperr.Internal("failed to aggregate job status", err)
	}
	times, err := s.jobs.JobCreationTimes(ctx, owner)
	if err != nil {
		return models.JobStats{}, apperr.Internal("failed to load job times", err)
	}
	if byStatus == nil {
		byStatus = []models.StatusCount{}
	}

	return models.JobStats{
		Stats:        byStatus,
		Count:        len(byStatus),
		MonthlyStats: store.BucketByMonth(times),
	}, nil
}
