package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(
	sessionHandler *SessionHandler,
	questionHandler *QuestionHandler,
	adminHandler *AdminHandler,
	adminCode string,
	allowedOrigins []string,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(CORS(allowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", sessionHandler.ListSessions)
			r.Get("/active", sessionHandler.GetActiveSession)
			r.Get("/{id}", sessionHandler.GetSession)
			r.Get("/{id}/questions", questionHandler.ListQuestions)
			r.Post("/{id}/questions", questionHandler.CreateQuestion)
		})

		r.Route("/questions", func(r chi.Router) {
			r.Put("/{id}", questionHandler.EditQuestion)
			r.Post("/{id}/like", questionHandler.ToggleLike)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/auth", adminHandler.Auth)

			r.Group(func(r chi.Router) {
				r.Use(AdminOnly(adminCode))
				r.Get("/sessions", adminHandler.ListSessions)
				r.Post("/sessions", adminHandler.CreateSession)
				r.Post("/sessions/{id}/activate", adminHandler.ActivateSession)
				r.Delete("/sessions/{id}", adminHandler.DeleteSession)
				r.Delete("/questions/{id}", adminHandler.DeleteQuestion)
			})
		})
	})

	return r
}
