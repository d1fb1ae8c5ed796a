package ports

import (
	"context"

	"github.com/confqa/api/internal/core/domain"
	"github.com/google/uuid"
)

type QuestionRepository interface {
	Save(ctx context.Context, question *domain.Question) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.Question, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string) error
	Delete(ctx context.Context, id uuid.UUID) error
	RecountLikes(ctx context.Context, sessionID uuid.UUID) error
}

type CreateQuestionInput struct {
	SessionID  string
	AuthorName string
	Content    string
	Password   string
}

type EditQuestionInput struct {
	QuestionID string
	Content    string
	Password   string
}

type QuestionService interface {
	Create(ctx context.Context, input CreateQuestionInput) (*domain.Question, error)
	Edit(ctx context.Context, input EditQuestionInput) (*domain.Question, error)
	Delete(ctx context.Context, id string) error
	ListForSession(ctx context.Context, sessionID string) ([]*domain.Question, error)
}
