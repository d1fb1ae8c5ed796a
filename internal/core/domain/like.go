package domain

import (
	"time"

	"github.com/google/uuid"
)

// Like records that one browser liked one question. The pair
// (QuestionID, BrowserID) is unique: a browser can like a given
// question at most once.
type Like struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"questionId"`
	BrowserID  string    `json:"browserId"`
	CreatedAt  time.Time `json:"createdAt"`
}
