package domain

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionWithCount is the admin projection of a session: the question
// count is derived at query time, never stored.
type SessionWithCount struct {
	Session
	QuestionCount int64 `json:"questionCount"`
}
