package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/isdelr/job-portal-be/internal/apperr"
	"github.com/isdelr/job-portal-be/internal/auth"
	"github.com/isdelr/job-portal-be/internal/models"
	"github.com/isdelr/job-portal-be/internal/store"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*models.User, error)
	ChangePassword(ctx context.Context, id string, in ChangePasswordInput) error
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6,max=72,pwbytes"`
	Location  string `json:"location"`
}

// UpdateUserInput holds profile changes. Empty fields are left unchanged.
type UpdateUserInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Location  string `json:"location"`
	Email     string `json:"email" validate:"omitempty,email"`
}

// ChangePasswordInput is the password change payload.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72,pwbytes"`
}

// UserService provides business logic for user management.
type UserService struct {
	users  store.UserStore
	hasher auth.PasswordHasher
	now    func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(users store.UserStore, hasher auth.PasswordHasher) *UserService {
	return &UserService{users: users, hasher: hasher, now: func() time.Time { return time.Now().UTC() }}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var errEmailTaken = apperr.Conflict("Email already exist please login").WithStatus(400)

// Register creates a new user, hashing their password.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.Email = normalizeEmail(in.Email)
	if err := check(in); err != nil {
		return nil, err
	}

	if _, err := s.users.GetUserByEmail(ctx, in.Email); err == nil {
		return nil, errEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, apperr.Internal("failed to look up email", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	now := s.now()
	user := &models.User{
		ID:           uuid.New().String(),
		FirstName:    in.FirstName,
		LastName:     strings.TrimSpace(in.LastName),
		Email:        in.Email,
		PasswordHash: hash,
		Location:     strings.TrimSpace(in.Location),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if user.Location == "" {
		user.Location = models.DefaultUserLocation
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, errEmailTaken
		}
		return nil, apperr.Internal("failed to create user", err)
	}

	log.Info().Str("user_id", user.ID).Msg("User registered")
	return user, nil
}

// Login verifies a user's credentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperr.Validation("Please provide all fields")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal("failed to load user", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		log.Warn().Str("user_id", user.ID).Msg("Failed authentication attempt")
		return nil, apperr.Validation("Invalid password")
	}
	return user, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal("failed to load user", err)
	}
	return user, nil
}

// UpdateUser applies the non-empty fields of in. The password hash is never touched here.
func (s *UserService) UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*models.User, error) {
	in.Email = normalizeEmail(in.Email)
	if err := check(in); err != nil {
		return nil, err
	}

	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(in.FirstName); v != "" {
		user.FirstName = v
	}
	if v := strings.TrimSpace(in.LastName); v != "" {
		user.LastName = v
	}
	if v := strings.TrimSpace(in.Location); v != "" {
		user.Location = v
	}
	if in.Email != "" && in.Email != user.Email {
		if _, err := s.users.GetUserByEmail(ctx, in.Email); err == nil {
			return nil, errEmailTaken
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, apperr.Internal("failed to look up email", err)
		}
		user.Email = in.Email
	}
	user.UpdatedAt = s.now()

	if err := s.users.UpdateUserProfile(ctx, user); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateEmail):
			return nil, errEmailTaken
		case errors.Is(err, store.ErrNotFound):
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal("failed to update user", err)
	}
	return user, nil
}

// ChangePassword verifies the current password, then hashes and stores the
// new one. A new password equal to the current one keeps the stored hash.
func (s *UserService) ChangePassword(ctx context.Context, id string, in ChangePasswordInput) error {
	if err := check(in); err != nil {
		return err
	}

	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(in.CurrentPassword, user.PasswordHash) {
		return apperr.Validation("Current password is incorrect")
	}
	if in.NewPassword == in.CurrentPassword {
		return nil
	}

	hash, err := s.hasher.Hash(in.NewPassword)
	if err != nil {
		return apperr.Internal("failed to hash password", err)
	}
	if err := s.users.UpdateUserPassword(ctx, id, hash, s.now()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("User not found")
		}
		return apperr.Internal("failed to update password", err)
	}

	log.Info().Str("user_id", id).Msg("Password changed")
	return nil
}
