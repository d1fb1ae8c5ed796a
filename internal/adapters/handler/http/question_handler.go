package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/confqa/api/internal/core/domain"
	"github.com/confqa/api/internal/core/ports"
	"github.com/go-chi/chi/v5"
)

type QuestionHandler struct {
	questionService ports.QuestionService
	likeService     ports.LikeService
}

func NewQuestionHandler(questionService ports.QuestionService, likeService ports.LikeService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		likeService:     likeService,
	}
}

type createQuestionRequest struct {
	AuthorName string `json:"authorName"`
	Content    string `json:"content"`
	Password   string `json:"password"`
}

func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req createQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.CreateQuestionInput{
		SessionID:  chi.URLParam(r, "id"),
		AuthorName: req.AuthorName,
		Content:    req.Content,
		Password:   req.Password,
	}

	question, err := h.questionService.Create(r.Context(), input)
	if err != nil {
		writeQuestionError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, question)
}

func (h *QuestionHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questionService.ListForSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeQuestionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, questions)
}

type editQuestionRequest struct {
	Content  string `json:"content"`
	Password string `json:"password"`
}

func (h *QuestionHandler) EditQuestion(w http.ResponseWriter, r *http.Request) {
	var req editQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.EditQuestionInput{
		QuestionID: chi.URLParam(r, "id"),
		Content:    req.Content,
		Password:   req.Password,
	}

	question, err := h.questionService.Edit(r.Context(), input)
	if err != nil {
		writeQuestionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, question)
}

type toggleLikeRequest struct {
	BrowserID string `json:"browserId"`
}

func (h *QuestionHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	var req toggleLikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.likeService.Toggle(r.Context(), ports.ToggleLikeInput{
		QuestionID: chi.URLParam(r, "id"),
		BrowserID:  req.BrowserID,
	})
	if err != nil {
		writeQuestionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeQuestionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrPasswordFormat),
		errors.Is(err, domain.ErrInvalidSessionID),
		errors.Is(err, domain.ErrInvalidQuestionID):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrInvalidPassword):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrQuestionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
