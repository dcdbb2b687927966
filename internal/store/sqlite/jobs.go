package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/isdelr/job-portal-be/internal/models"
	"github.com/isdelr/job-portal-be/internal/store"
)

const jobColumns = `id, company, position, status, work_type, work_location, created_by, created_at, updated_at`

func scanJob(scanner interface{ Scan(...any) error }) (*models.Job, error) {
	var j models.Job
	var createdAt, updatedAt string
	if err := scanner.Scan(&j.ID, &j.Company, &j.Position, &j.Status, &j.WorkType, &j.WorkLocation, &j.CreatedBy, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if j.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if j.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &j, nil
}

// where renders f as a WHERE clause with positional arguments.
func where(f store.JobFilter) (string, []any) {
	conds := []string{"created_by = ?"}
	args := []any{f.Owner()}

	if f.Status() != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(f.Status()))
	}
	if f.WorkType() != "" {
		conds = append(conds, "work_type = ?")
		args = append(args, string(f.WorkType()))
	}
	if f.Search() != "" {
		conds = append(conds, `LOWER(position) LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(strings.ToLower(f.Search()))+"%")
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// CreateJob inserts a new job.
func (s *Store) CreateJob(ctx context.Context, j *models.Job) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO jobs (`+jobColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.Company, j.Position, string(j.Status), string(j.WorkType), j.WorkLocation, j.CreatedBy,
		formatTime(j.CreatedAt), formatTime(j.UpdatedAt))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetJob retrieves a job by id regardless of owner.
func (s *Store) GetJob(ctx context.Context, id string) (*models.Job, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	j, err := scanJob(row)
	if err != nil {
		if nf := notFound(err); nf != nil {
			return nil, nf
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return j, nil
}

// FindJobs returns one page of the jobs matching f, newest first.
func (s *Store) FindJobs(ctx context.Context, f store.JobFilter, page store.Page) ([]models.Job, error) {
	clause, args := where(f)
	args = append(args, page.Size, page.Skip())

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs `+clause+` ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	jobs := make([]models.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return jobs, nil
}

// CountJobs counts the jobs matching f.
func (s *Store) CountJobs(ctx context.Context, f store.JobFilter) (int64, error) {
	clause, args := where(f)
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs `+clause, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// UpdateOwnedJob updates the job only when both id and owner match, in a single statement.
func (s *Store) UpdateOwnedJob(ctx context.Context, id, owner string, upd models.JobUpdate, updatedAt time.Time) (*models.Job, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE jobs SET
			company = COALESCE(?, company),
			position = COALESCE(?, position),
			status = COALESCE(?, status),
			work_type = COALESCE(?, work_type),
			work_location = COALESCE(?, work_location),
			updated_at = ?
		 WHERE id = ? AND created_by = ?
		 RETURNING `+jobColumns,
		nullable(upd.Company), nullable(upd.Position), nullable(upd.Status), nullable(upd.WorkType), nullable(upd.WorkLocation),
		formatTime(updatedAt), id, owner)
	j, err := scanJob(row)
	if err != nil {
		if nf := notFound(err); nf != nil {
			return nil, nf
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return j, nil
}

// DeleteOwnedJob deletes the job only when both id and owner match.
func (s *Store) DeleteOwnedJob(ctx context.Context, id, owner string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ? AND created_by = ?`, id, owner)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

// CountJobsByStatus groups the owner's jobs by status.
func (s *Store) CountJobsByStatus(ctx context.Context, owner string) ([]models.StatusCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM jobs WHERE created_by = ? GROUP BY status ORDER BY status`, owner)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	counts := make([]models.StatusCount, 0)
	for rows.Next() {
		var c models.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return counts, nil
}

// JobCreationTimes returns the creation time of every job of owner.
func (s *Store) JobCreationTimes(ctx context.Context, owner string) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT created_at FROM jobs WHERE created_by = ?`, owner)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	times := make([]time.Time, 0)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		t, err := parseTime(raw)
		if err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return times, nil
}

// nullable turns an unset update field into SQL NULL.
func nullable[T ~string](v *T) any {
	if v == nil {
		return nil
	}
	return string(*v)
}
