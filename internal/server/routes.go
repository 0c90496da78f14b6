package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jackzampolin/timetable/internal/store"
)

// registerRoutes sets up routes that report on the server itself.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /ready", s.handleReady)
}

// ReadyResponse is the response for the readiness endpoint.
type ReadyResponse struct {
	Status   string `json:"status"`
	Store    string `json:"store"`
	Schedule bool   `json:"schedule"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleReady returns readiness including store health.
// A missing schedule is still ready; a failing store is not.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	resp := ReadyResponse{Status: "ok", Store: "ok"}

	_, err := s.services.Store.Get(r.Context())
	switch {
	case err == nil:
		resp.Schedule = true
	case errors.Is(err, store.ErrNotFound):
	default:
		resp.Status = "degraded"
		resp.Store = "unhealthy"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
