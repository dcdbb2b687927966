package handlers

import (
	"net/http"

	"github.com/isdelr/job-portal-be/internal/services"
)

// UserHandler handles the authenticated user's own profile.
type UserHandler struct {
	users  services.UserServiceProvider
	tokens TokenIssuer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users services.UserServiceProvider, tokens TokenIssuer) *UserHandler {
	return &UserHandler{users: users, tokens: tokens}
}

// Update changes profile fields and reissues the token, since it carries the
// email and name.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := currentIdentity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var payload services.UpdateUserInput
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.users.UpdateUser(r.Context(), id.UserID, payload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := issueToken(h.tokens, user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":    user,
		"token":   token,
		"message": "User updated successfully",
	})
}

// Details returns the current user.
func (h *UserHandler) Details(w http.ResponseWriter, r *http.Request) {
	id, err := currentIdentity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.users.GetUserByID(r.Context(), id.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"userDetails": user,
		"message":     "User details fetched successfully",
	})
}

// ChangePassword handles changing the current user's password.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, err := currentIdentity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var payload services.ChangePasswordInput
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.users.ChangePassword(r.Context(), id.UserID, payload); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Password updated successfully",
		"success": true,
	})
}
