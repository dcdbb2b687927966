// Package memory is an in-memory record store for tests and local runs.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/isdelr/job-portal-be/internal/models"
	"github.com/isdelr/job-portal-be/internal/store"
)

var _ store.Store = (*Store)(nil)

type jobRecord struct {
	job models.Job
	seq uint64
}

// Store is safe for concurrent access.
type Store struct {
	mu sync.RWMutex

	users   map[string]*models.User
	byEmail map[string]string // lower-cased email -> user id
	jobs    map[string]*jobRecord
	seq     uint64
}

// New returns a new empty Store.
func New() *Store {
	return &Store{
		users:   make(map[string]*models.User),
		byEmail: make(map[string]string),
		jobs:    make(map[string]*jobRecord),
	}
}

// Ping always succeeds for the memory store.
func (m *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op for the memory store.
func (m *Store) Close() error { return nil }

// ── users ────────────────────────────────────────────────────────

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (m *Store) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.byEmail[emailKey(user.Email)]; taken {
		return store.ErrDuplicateEmail
	}
	cp := *user
	m.users[user.ID] = &cp
	m.byEmail[emailKey(user.Email)] = user.ID
	return nil
}

func (m *Store) GetUserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[emailKey(email)]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *m.users[id]
	return &cp, nil
}

func (m *Store) UpdateUserProfile(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.users[user.ID]
	if !ok {
		return store.ErrNotFound
	}
	oldKey, newKey := emailKey(existing.Email), emailKey(user.Email)
	if oldKey != newKey {
		if _, taken := m.byEmail[newKey]; taken {
			return store.ErrDuplicateEmail
		}
		delete(m.byEmail, oldKey)
		m.byEmail[newKey] = user.ID
	}

	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.Email = user.Email
	existing.Location = user.Location
	existing.UpdatedAt = user.UpdatedAt
	return nil
}

func (m *Store) UpdateUserPassword(_ context.Context, id, passwordHash string, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = updatedAt
	return nil
}

// ── jobs ─────────────────────────────────────────────────────────

func (m *Store) CreateJob(_ context.Context, job *models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	m.jobs[job.ID] = &jobRecord{job: *job, seq: m.seq}
	return nil
}

func (m *Store) GetJob(_ context.Context, id string) (*models.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.jobs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := rec.job
	return &cp, nil
}

// matching returns the jobs matching f, newest first.
func (m *Store) matching(f store.JobFilter) []models.Job {
	recs := make([]*jobRecord, 0)
	for _, rec := range m.jobs {
		if f.Matches(&rec.job) {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if !a.job.CreatedAt.Equal(b.job.CreatedAt) {
			return a.job.CreatedAt.After(b.job.CreatedAt)
		}
		return a.seq > b.seq
	})

	out := make([]models.Job, len(recs))
	for i, rec := range recs {
		out[i] = rec.job
	}
	return out
}

func (m *Store) FindJobs(_ context.Context, f store.JobFilter, page store.Page) ([]models.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.matching(f)
	start, end := page.Window(len(all))
	return all[start:end], nil
}

func (m *Store) CountJobs(_ context.Context, f store.JobFilter) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var n int64
	for _, rec := range m.jobs {
		if f.Matches(&rec.job) {
			n++
		}
	}
	return n, nil
}

func (m *Store) UpdateOwnedJob(_ context.Context, id, owner string, upd models.JobUpdate, updatedAt time.Time) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.jobs[id]
	if !ok || rec.job.CreatedBy != owner {
		return nil, store.ErrNotFound
	}
	upd.Apply(&rec.job)
	rec.job.UpdatedAt = updatedAt
	cp := rec.job
	return &cp, nil
}

func (m *Store) DeleteOwnedJob(_ context.Context, id, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.jobs[id]
	if !ok || rec.job.CreatedBy != owner {
		return store.ErrNotFound
	}
	delete(m.jobs, id)
	return nil
}

func (m *Store) CountJobsByStatus(_ context.Context, owner string) ([]models.StatusCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return store.CountByStatus(m.matching(store.NewJobFilter(owner))), nil
}

func (m *Store) JobCreationTimes(_ context.Context, owner string) ([]time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	jobs := m.matching(store.NewJobFilter(owner))
	times := make([]time.Time, len(jobs))
	for i, j := range jobs {
		times[i] = j.CreatedAt
	}
	return times, nil
}
