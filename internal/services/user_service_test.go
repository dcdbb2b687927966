package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/isdelr/job-portal-be/internal/apperr"
	"github.com/isdelr/job-portal-be/internal/auth"
	"github.com/isdelr/job-portal-be/internal/models"
	"github.com/isdelr/job-portal-be/internal/store/memory"
)

func newUserService(t *testing.T) (*UserService, *memory.Store) {
	t.Helper()
	hasher, err := auth.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	st := memory.New()
	return NewUserService(st, hasher), st
}

func registerAda(t *testing.T, s *UserService) *models.User {
	t.Helper()
	u, err := s.Register(context.Background(), RegisterInput{
		FirstName: "Ada",
		Email:     "Ada@Example.com",
		Password:  "secret123",
	})
	require.NoError(t, err)
	return u
}

func TestRegister_HashesPassword(t *testing.T) {
	t.Parallel()
	s, st := newUserService(t)

	u := registerAda(t, s)

	stored, err := st.GetUserByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.True(t, s.hasher.Verify("secret123", stored.PasswordHash))
	assert.False(t, s.hasher.Verify("wrong-pass", stored.PasswordHash))

	assert.Equal(t, "ada@example.com", stored.Email)
	assert.Equal(t, models.DefaultUserLocation, stored.Location)
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	s, _ := newUserService(t)

	registerAda(t, s)
	_, err := s.Register(context.Background(), RegisterInput{FirstName: "Eve", Email: "ada@example.com", Password: "another1"})

	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
	assert.Equal(t, 400, apperr.StatusOf(err))
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()
	s, _ := newUserService(t)

	tests := []struct {
		name string
		in   RegisterInput
		msg  string
	}{
		{"missing name", RegisterInput{Email: "a@b.co", Password: "secret1"}, "Name is required"},
		{"missing email", RegisterInput{FirstName: "A", Password: "secret1"}, "Email is required"},
		{"missing password", RegisterInput{FirstName: "A", Email: "a@b.co"}, "Password is required and should be at least 6 characters"},
		{"bad email", RegisterInput{FirstName: "A", Email: "not-an-email", Password: "secret1"}, "Please provide a valid email"},
		{"short password", RegisterInput{FirstName: "A", Email: "a@b.co", Password: "12345"}, "Password must be at least 6 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(context.Background(), tt.in)
			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err))
			assert.Equal(t, 400, apperr.StatusOf(err))
			assert.Equal(t, tt.msg, apperr.BodyOf(err).Message)
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()
	s, _ := newUserService(t)
	ada := registerAda(t, s)
	ctx := context.Background()

	u, err := s.Login(ctx, " ADA@example.com ", "secret123")
	require.NoError(t, err)
	assert.Equal(t, ada.ID, u.ID)

	_, err = s.Login(ctx, "ada@example.com", "wrong-pass")
	assert.Equal(t, 400, apperr.StatusOf(err))
	assert.Equal(t, "Invalid password", apperr.BodyOf(err).Message)

	_, err = s.Login(ctx, "nobody@example.com", "secret123")
	assert.True(t, apperr.IsNotFound(err))

	_, err = s.Login(ctx, "", "secret123")
	assert.True(t, apperr.IsValidation(err))
}

func TestUpdateUser(t *testing.T) {
	t.Parallel()
	s, st := newUserService(t)
	ada := registerAda(t, s)
	ctx := context.Background()
	before, err := st.GetUserByID(ctx, ada.ID)
	require.NoError(t, err)

	u, err := s.UpdateUser(ctx, ada.ID, UpdateUserInput{LastName: "Lovelace", Location: "London", Email: "countess@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.FirstName)
	assert.Equal(t, "Lovelace", u.LastName)
	assert.Equal(t, "London", u.Location)
	assert.Equal(t, "countess@example.com", u.Email)

	after, err := st.GetUserByID(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, after.PasswordHash, "profile updates must not re-hash the password")

	_, err = s.Login(ctx, "countess@example.com", "secret123")
	assert.NoError(t, err)
}

func TestUpdateUser_Errors(t *testing.T) {
	t.Parallel()
	s, _ := newUserService(t)
	ada := registerAda(t, s)
	_, err := s.Register(context.Background(), RegisterInput{FirstName: "Bob", Email: "bob@example.com", Password: "secret123"})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.UpdateUser(ctx, ada.ID, UpdateUserInput{Email: "bob@example.com"})
	assert.True(t, apperr.IsConflict(err))

	_, err = s.UpdateUser(ctx, ada.ID, UpdateUserInput{Email: "nope"})
	assert.True(t, apperr.IsValidation(err))

	_, err = s.UpdateUser(ctx, "ghost", UpdateUserInput{FirstName: "X"})
	assert.True(t, apperr.IsNotFound(err))
}

func TestChangePassword(t *testing.T) {
	t.Parallel()
	s, st := newUserService(t)
	ada := registerAda(t, s)
	ctx := context.Background()

	err := s.ChangePassword(ctx, ada.ID, ChangePasswordInput{CurrentPassword: "bad-pass", NewPassword: "newsecret"})
	assert.Equal(t, "Current password is incorrect", apperr.BodyOf(err).Message)

	before, err := st.GetUserByID(ctx, ada.ID)
	require.NoError(t, err)
	require.NoError(t, s.ChangePassword(ctx, ada.ID, ChangePasswordInput{CurrentPassword: "secret123", NewPassword: "secret123"}))
	unchanged, err := st.GetUserByID(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, unchanged.PasswordHash)

	require.NoError(t, s.ChangePassword(ctx, ada.ID, ChangePasswordInput{CurrentPassword: "secret123", NewPassword: "newsecret"}))
	changed, err := st.GetUserByID(ctx, ada.ID)
	require.NoError(t, err)
	assert.NotEqual(t, before.PasswordHash, changed.PasswordHash)

	_, err = s.Login(ctx, "ada@example.com", "newsecret")
	assert.NoError(t, err)

	err = s.ChangePassword(ctx, ada.ID, ChangePasswordInput{CurrentPassword: "newsecret", NewPassword: "123"})
	assert.True(t, apperr.IsValidation(err))
}

func TestPasswordLengthLimits(t *testing.T) {
	t.Parallel()
	s, _ := newUserService(t)
	ada := registerAda(t, s)
	ctx := context.Background()

	tests := []struct {
		name     string
		password string
		msg      string
	}{
		{"too many characters", strings.Repeat("a", 80), "Password must be at most 72 characters"},
		{"too many bytes", strings.Repeat("é", 40), "Password must be at most 72 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(ctx, RegisterInput{FirstName: "Bob", Email: "bob@example.com", Password: tt.password})
			require.Error(t, err)
			assert.Equal(t, 400, apperr.StatusOf(err))
			assert.Equal(t, tt.msg, apperr.BodyOf(err).Message)

			err = s.ChangePassword(ctx, ada.ID, ChangePasswordInput{CurrentPassword: "secret123", NewPassword: tt.password})
			require.Error(t, err)
			assert.Equal(t, 400, apperr.StatusOf(err))
			assert.Equal(t, tt.msg, apperr.BodyOf(err).Message)
		})
	}

	_, err := s.Register(ctx, RegisterInput{FirstName: "Bob", Email: "bob@example.com", Password: strings.Repeat("b", auth.MaxPasswordBytes)})
	assert.NoError(t, err)
}
