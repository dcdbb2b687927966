package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/isdelr/job-portal-be/internal/apperr"
	"github.com/isdelr/job-portal-be/internal/auth"
	"github.com/isdelr/job-portal-be/internal/models"
)

// TokenIssuer signs session tokens for authenticated users.
type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	apperr.Write(w, r, err)
}

// decodeJSON reads the request body into dst. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return apperr.Validation("Invalid request body")
	}
	return nil
}

// currentIdentity returns the identity attached by auth.Guard.
func currentIdentity(r *http.Request) (auth.Identity, error) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		return auth.Identity{}, apperr.Unauthenticated("Authorization Failed", nil)
	}
	return id, nil
}

func identityOf(u *models.User) auth.Identity {
	return auth.Identity{UserID: u.ID, Email: u.Email, Name: u.DisplayName()}
}

func issueToken(tokens TokenIssuer, u *models.User) (string, error) {
	token, err := tokens.Issue(identityOf(u))
	if err != nil {
		return "", apperr.Internal("failed to issue token", err)
	}
	return token, nil
}
