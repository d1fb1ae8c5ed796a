package ports

import (
	"context"

	"github.com/confqa/api/internal/core/domain"
	"github.com/google/uuid"
)

type SessionRepository interface {
	Save(ctx context.Context, session *domain.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	GetActive(ctx context.Context) (*domain.Session, error)
	GetAll(ctx context.Context) ([]*domain.Session, error)
	GetAllWithQuestionCounts(ctx context.Context) ([]*domain.SessionWithCount, error)
	Activate(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreateSessionInput struct {
	Title string
}

type SessionService interface {
	Create(ctx context.Context, input CreateSessionInput) (*domain.Session, error)
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	GetActiveSession(ctx context.Context) (*domain.Session, error)
	ListSessions(ctx context.Context) ([]*domain.Session, error)
	ListSessionsWithQuestionCounts(ctx context.Context) ([]*domain.SessionWithCount, error)
	Activate(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
