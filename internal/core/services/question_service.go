package services

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/confqa/api/internal/core/domain"
	"github.com/confqa/api/internal/core/ports"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Edit codes are exactly 4 decimal digits.
var passwordPattern = regexp.MustCompile(`^\d{4}$`)

type questionService struct {
	sessionRepo  ports.SessionRepository
	questionRepo ports.QuestionRepository
}

func NewQuestionService(sessionRepo ports.SessionRepository, questionRepo ports.QuestionRepository) ports.QuestionService {
	return &questionService{
		sessionRepo:  sessionRepo,
		questionRepo: questionRepo,
	}
}

func (s *questionService) Create(ctx context.Context, input ports.CreateQuestionInput) (*domain.Question, error) {
	if input.AuthorName == "" || input.Content == "" || input.Password == "" {
		return nil, domain.ErrMissingFields
	}
	if !passwordPattern.MatchString(input.Password) {
		return nil, domain.ErrPasswordFormat
	}

	sessionID, err := uuid.Parse(input.SessionID)
	if err != nil {
		return nil, domain.ErrInvalidSessionID
	}

	if _, err := s.sessionRepo.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrInternal
	}

	question := &domain.Question{
		ID:           uuid.New(),
		SessionID:    sessionID,
		AuthorName:   input.AuthorName,
		Content:      input.Content,
		PasswordHash: string(hash),
		LikeCount:    0,
		CreatedAt:    time.Now(),
	}

	if err := s.questionRepo.Save(ctx, question); err != nil {
		return nil, err
	}

	return s.questionRepo.GetByID(ctx, question.ID)
}

func (s *questionService) Edit(ctx context.Context, input ports.EditQuestionInput) (*domain.Question, error) {
	if input.Content == "" || input.Password == "" {
		return nil, domain.ErrMissingFields
	}

	questionID, err := uuid.Parse(input.QuestionID)
	if err != nil {
		return nil, domain.ErrInvalidQuestionID
	}

	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	// bcrypt comparison is constant-time.
	if err := bcrypt.CompareHashAndPassword([]byte(question.PasswordHash), []byte(input.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, domain.ErrInvalidPassword
		}
		return nil, domain.ErrInternal
	}

	if err := s.questionRepo.UpdateContent(ctx, questionID, input.Content); err != nil {
		return nil, err
	}

	return s.questionRepo.GetByID(ctx, questionID)
}

func (s *questionService) Delete(ctx context.Context, id string) error {
	questionID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrInvalidQuestionID
	}

	return s.questionRepo.Delete(ctx, questionID)
}

func (s *questionService) ListForSession(ctx context.Context, sessionID string) ([]*domain.Question, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, domain.ErrInvalidSessionID
	}

	return s.questionRepo.ListBySession(ctx, id)
}
