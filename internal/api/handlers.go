// Package api contains the HTTP handlers for the tokengate service. Handlers
// hold no mutable state; every response is computed from the request alone.
package api

import (
	"net/http"
	"time"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Root answers GET / with a short usage hint. Because it is registered on the
// mux catch-all pattern it also serves as the not-found fallback for every
// path without a dedicated route.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" || r.Method != http.MethodGet {
		h.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Server is running. Visit /public or /protected",
	})
}

// Public answers GET /public without any authentication.
func (h *Handler) Public(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "This is a public route",
	})
}

// Protected answers GET /protected. It is only reachable through the bearer
// authentication middleware; by the time it runs the credential has been
// accepted.
func (h *Handler) Protected(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "Access granted to protected route",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Health answers GET /healthz for liveness probes.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// NotFound is the catch-all response for unmatched routes and methods.
func (h *Handler) NotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not Found"})
}
