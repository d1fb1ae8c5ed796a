package ports

import (
	"context"

	"github.com/google/uuid"
)

type LikeRepository interface {
	// Toggle atomically inverts the (question, browser) like relation and
	// reports whether a like exists after the call.
	Toggle(ctx context.Context, questionID uuid.UUID, browserID string) (bool, error)
	// CountFor returns the number of like rows for the question, the
	// source of truth the denormalized like_count caches.
	CountFor(ctx context.Context, questionID uuid.UUID) (int64, error)
}

type ToggleLikeInput struct {
	QuestionID string
	BrowserID  string
}

type ToggleLikeResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}

type LikeService interface {
	Toggle(ctx context.Context, input ToggleLikeInput) (*ToggleLikeResult, error)
}
