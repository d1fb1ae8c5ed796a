package services

import (
	"context"
	"strings"
	"time"

	"github.com/confqa/api/internal/core/domain"
	"github.com/confqa/api/internal/core/ports"
	"github.com/google/uuid"
)

type sessionService struct {
	repo ports.SessionRepository
}

func NewSessionService(repo ports.SessionRepository) ports.SessionService {
	return &sessionService{
		repo: repo,
	}
}

func (s *sessionService) Create(ctx context.Context, input ports.CreateSessionInput) (*domain.Session, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.ErrMissingFields
	}

	session := &domain.Session{
		ID:        uuid.New(),
		Title:     input.Title,
		CreatedAt: time.Now(),
	}

	// The repository marks the first-ever session active; the service
	// never flips active flags on create.
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, session.ID)
}

func (s *sessionService) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidSessionID
	}

	return s.repo.GetByID(ctx, sessionID)
}

func (s *sessionService) GetActiveSession(ctx context.Context) (*domain.Session, error) {
	return s.repo.GetActive(ctx)
}

func (s *sessionService) ListSessions(ctx context.Context) ([]*domain.Session, error) {
	return s.repo.GetAll(ctx)
}

func (s *sessionService) ListSessionsWithQuestionCounts(ctx context.Context) ([]*domain.SessionWithCount, error) {
	return s.repo.GetAllWithQuestionCounts(ctx)
}

func (s *sessionService) Activate(ctx context.Context, id string) (*domain.Session, error) {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidSessionID
	}

	if err := s.repo.Activate(ctx, sessionID); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, sessionID)
}

func (s *sessionService) Delete(ctx context.Context, id string) error {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrInvalidSessionID
	}

	return s.repo.Delete(ctx, sessionID)
}
