package http

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/confqa/api/internal/core/domain"
	"github.com/confqa/api/internal/core/ports"
	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	sessionService  ports.SessionService
	questionService ports.QuestionService
	adminCode       string
}

func NewAdminHandler(sessionService ports.SessionService, questionService ports.QuestionService, adminCode string) *AdminHandler {
	return &AdminHandler{
		sessionService:  sessionService,
		questionService: questionService,
		adminCode:       adminCode,
	}
}

type authRequest struct {
	Code string `json:"code"`
}

// Auth checks a candidate admin code so the client can unlock its admin
// views. The gate on the admin routes themselves is the AdminOnly
// middleware.
func (h *AdminHandler) Auth(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Code == "" {
		http.Error(w, "Code is required", http.StatusBadRequest)
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Code), []byte(h.adminCode)) != 1 {
		http.Error(w, domain.ErrInvalidAdminCode.Error(), http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessionService.ListSessionsWithQuestionCounts(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch sessions", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, sessions)
}

type createSessionRequest struct {
	Title string `json:"title"`
}

func (h *AdminHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.sessionService.Create(r.Context(), ports.CreateSessionInput{Title: req.Title})
	if err != nil {
		if errors.Is(err, domain.ErrMissingFields) {
			http.Error(w, "Title is required", http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

func (h *AdminHandler) ActivateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionService.Activate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (h *AdminHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if err := h.questionService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, domain.ErrInvalidQuestionID) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if errors.Is(err, domain.ErrQuestionNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidSessionID):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
