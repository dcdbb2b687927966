package apperr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
)

const fallbackMessage = "Something went wrong"

// Body is the JSON shape of every error response.
type Body struct {
	Message    string `json:"message"`
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
}

// BodyOf builds the response body for err. Internal errors never leak their message.
func BodyOf(err error) Body {
	status := StatusOf(err)
	message := fallbackMessage

	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal && e.Message != "" {
		message = e.Message
	}
	return Body{Message: message, Success: false, StatusCode: status}
}

// Write is the single place errors become HTTP responses.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	body := BodyOf(err)

	event := log.Warn()
	if body.StatusCode >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", body.StatusCode).
		Msg("Request failed")

	w.Header().Set("Content-Type", "application/json")
	if IsUnauthenticated(err) {
		w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	}
	w.WriteHeader(body.StatusCode)
	_ = json.NewEncoder(w).Encode(body)
}
