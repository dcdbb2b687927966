package handlers

import (
	"fmt"
	"net/http"
)

// TestHandler serves the connectivity check routes.
type TestHandler struct{}

// NewTestHandler creates a new TestHandler.
func NewTestHandler() *TestHandler {
	return &TestHandler{}
}

// Ping answers without authentication.
func (h *TestHandler) Ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "Inside router")
}

// Echo greets the name from the request body. It sits behind auth.Guard so a
// client can check its token.
func (h *TestHandler) Echo(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "your name is %s", payload.Name)
}
