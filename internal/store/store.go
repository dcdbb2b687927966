// Package store defines the persistence contracts for users and jobs and the
// query values the services hand to them. Implementations live in the
// memory, sqlite and mongo subpackages.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/isdelr/job-portal-be/internal/models"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateUserProfile writes name, email and location. The password hash is untouched.
	UpdateUserProfile(ctx context.Context, user *models.User) error
	UpdateUserPassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error
}

// JobStore persists jobs. Every method except CreateJob and GetJob is owner scoped.
type JobStore interface {
	CreateJob(ctx context.Context, job *models.Job) error
	GetJob(ctx context.Context, id string) (*models.Job, error)
	FindJobs(ctx context.Context, filter JobFilter, page Page) ([]models.Job, error)
	CountJobs(ctx context.Context, filter JobFilter) (int64, error)
	// UpdateOwnedJob applies upd to the job matching both id and owner in one
	// atomic operation and returns the updated record. ErrNotFound otherwise.
	UpdateOwnedJob(ctx context.Context, id, owner string, upd models.JobUpdate, updatedAt time.Time) (*models.Job, error)
	// DeleteOwnedJob removes the job matching both id and owner. ErrNotFound otherwise.
	DeleteOwnedJob(ctx context.Context, id, owner string) error
	CountJobsByStatus(ctx context.Context, owner string) ([]models.StatusCount, error)
	JobCreationTimes(ctx context.Context, owner string) ([]time.Time, error)
}

// Store is a full record store backend.
type Store interface {
	UserStore
	JobStore
	Ping(ctx context.Context) error
	Close() error
}
