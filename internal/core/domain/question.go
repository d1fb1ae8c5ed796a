package domain

import (
	"time"

	"github.com/google/uuid"
)

type Question struct {
	ID         uuid.UUID `json:"id"`
	SessionID  uuid.UUID `json:"sessionId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	// PasswordHash is the bcrypt hash of the attendee's 4-digit edit code.
	// It is write-side data and never serialized.
	PasswordHash string    `json:"-"`
	LikeCount    int64     `json:"likeCount"`
	CreatedAt    time.Time `json:"createdAt"`
}
