package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/confqa/api/internal/core/domain"
	"github.com/confqa/api/internal/core/ports"
	"github.com/go-chi/chi/v5"
)

type SessionHandler struct {
	service ports.SessionService
}

func NewSessionHandler(service ports.SessionService) *SessionHandler {
	return &SessionHandler{
		service: service,
	}
}

func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.service.ListSessions(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch sessions", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, sessions)
}

func (h *SessionHandler) GetActiveSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.GetActiveSession(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveSession) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch active session", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	session, err := h.service.GetSession(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSessionID) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch session", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
