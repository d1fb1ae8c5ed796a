package services

import (
	"context"

	"github.com/confqa/api/internal/core/domain"
	"github.com/confqa/api/internal/core/ports"
	"github.com/google/uuid"
)

type likeService struct {
	likeRepo ports.LikeRepository
}

func NewLikeService(likeRepo ports.LikeRepository) ports.LikeService {
	return &likeService{
		likeRepo: likeRepo,
	}
}

func (s *likeService) Toggle(ctx context.Context, input ports.ToggleLikeInput) (*ports.ToggleLikeResult, error) {
	if input.BrowserID == "" {
		return nil, domain.ErrMissingFields
	}

	questionID, err := uuid.Parse(input.QuestionID)
	if err != nil {
		return nil, domain.ErrInvalidQuestionID
	}

	liked, err := s.likeRepo.Toggle(ctx, questionID, input.BrowserID)
	if err != nil {
		return nil, err
	}

	// Re-read the authoritative count after commit so the response
	// reflects any concurrent toggle that landed in between.
	count, err := s.likeRepo.CountFor(ctx, questionID)
	if err != nil {
		return nil, err
	}

	return &ports.ToggleLikeResult{
		Liked:     liked,
		LikeCount: count,
	}, nil
}
