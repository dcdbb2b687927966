package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isdelr/job-portal-be/internal/database"
	"github.com/isdelr/job-portal-be/internal/models"
	"github.com/isdelr/job-portal-be/internal/store"
	"github.com/isdelr/job-portal-be/internal/store/storetest"
)

func newMigratedStore(t *testing.T) store.Store {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))
	return New(db)
}

func TestConformance(t *testing.T) {
	storetest.Run(t, newMigratedStore)
}

func newRepoWithMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func TestCreateJob_DBError(t *testing.T) {
	s, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+jobs`).WillReturnError(errors.New("disk full"))

	err := s.CreateJob(context.Background(), storetest.NewJob("o", "p", "", "", 0))
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*disk full`), err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	s, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+users`).
		WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"))

	err := s.CreateUser(context.Background(), storetest.NewUser("a@example.com"))
	assert.ErrorIs(t, err, store.ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOwnedJob_NoRowIsNotFound(t *testing.T) {
	s, mock := newRepoWithMock(t)

	company := "Globex"
	mock.ExpectQuery(`(?s)^UPDATE\s+jobs\s+SET.*WHERE\s+id\s*=\s*\?\s+AND\s+created_by\s*=\s*\?.*RETURNING`).
		WithArgs("Globex", nil, nil, nil, nil, sqlmock.AnyArg(), "job-1", "intruder").
		WillReturnError(sql.ErrNoRows)

	_, err := s.UpdateOwnedJob(context.Background(), "job-1", "intruder", models.JobUpdate{Company: &company}, time.Now())
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOwnedJob_ScopedByOwner(t *testing.T) {
	s, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+jobs\s+WHERE\s+id\s*=\s*\?\s+AND\s+created_by\s*=\s*\?$`).
		WithArgs("job-1", "owner-b").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.DeleteOwnedJob(context.Background(), "job-1", "owner-b")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWhere(t *testing.T) {
	t.Parallel()

	clause, args := where(store.NewJobFilter("owner-1"))
	assert.Equal(t, "WHERE created_by = ?", clause)
	assert.Equal(t, []any{"owner-1"}, args)

	clause, args = where(store.NewJobFilter("owner-1").
		WithStatus(models.StatusReject).
		WithWorkType(models.WorkFreelance).
		WithSearch("50%_Dev"))
	assert.Equal(t, `WHERE created_by = ? AND status = ? AND work_type = ? AND LOWER(position) LIKE ? ESCAPE '\'`, clause)
	assert.Equal(t, []any{"owner-1", "reject", "freelance", `%50\%\_dev%`}, args)
}

func TestTimeRoundTrip(t *testing.T) {
	t.Parallel()

	in := time.Date(2024, time.February, 29, 23, 59, 59, 123456789, time.FixedZone("X", 3600))
	out, err := parseTime(formatTime(in))
	require.NoError(t, err)
	assert.True(t, in.Equal(out))
	assert.Equal(t, time.UTC, out.Location())

	_, err = parseTime("yesterday")
	assert.Error(t, err)
}
