package store

import (
	"strings"

	"github.com/isdelr/job-portal-be/internal/models"
)

// JobFilter is an immutable, owner-scoped job predicate. The With* methods
// return modified copies.
type JobFilter struct {
	owner    string
	status   models.JobStatus
	workType models.WorkType
	search   string
}

// NewJobFilter matches every job owned by owner.
func NewJobFilter(owner string) JobFilter {
	return JobFilter{owner: owner}
}

// WithStatus restricts to an exact status. The empty status is ignored.
func (f JobFilter) WithStatus(status models.JobStatus) JobFilter {
	f.status = status
	return f
}

// WithWorkType restricts to an exact work type. The empty value is ignored.
func (f JobFilter) WithWorkType(workType models.WorkType) JobFilter {
	f.workType = workType
	return f
}

// WithSearch restricts to positions containing term, ignoring case.
func (f JobFilter) WithSearch(term string) JobFilter {
	f.search = strings.TrimSpace(term)
	return f
}

func (f JobFilter) Owner() string { return f.owner }
func (f JobFilter) Status() models.JobStatus { return f.status }
func (f JobFilter) WorkType() models.WorkType { return f.workType }
func (f JobFilter) Search() string { return f.search }

// Matches evaluates the filter against j in memory.
func (f JobFilter) Matches(j *models.Job) bool {
	if j.CreatedBy != f.owner {
		return false
	}
	if f.status != "" && j.Status != f.status {
		return false
	}
	if f.workType != "" && j.WorkType != f.workType {
		return false
	}
	if f.search != "" && !strings.Contains(strings.ToLower(j.Position), strings.ToLower(f.search)) {
		return false
	}
	return true
}
