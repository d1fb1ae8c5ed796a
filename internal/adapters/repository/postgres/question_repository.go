package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/confqa/api/internal/core/domain"
	"github.com/confqa/api/internal/core/ports"
	"github.com/google/uuid"
)

type questionRepository struct {
	db *sql.DB
}

func NewQuestionRepository(db *sql.DB) ports.QuestionRepository {
	return &questionRepository{
		db: db,
	}
}

func (r *questionRepository) Save(ctx context.Context, question *domain.Question) error {
	query := `
		INSERT INTO questions (id, session_id, author_name, content, password_hash, like_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		question.ID, question.SessionID, question.AuthorName, question.Content,
		question.PasswordHash, question.LikeCount, question.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert question: %w", err)
	}
	return nil
}

func (r *questionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	query := `
		SELECT id, session_id, author_name, content, password_hash, like_count, created_at
		FROM questions
		WHERE id = $1
	`

	var question domain.Question
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&question.ID, &question.SessionID, &question.AuthorName, &question.Content,
		&question.PasswordHash, &question.LikeCount, &question.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	return &question, nil
}

// ListBySession returns the session's questions most-liked first, ties
// broken by most recent first. The password hash is left out of the
// projection entirely.
func (r *questionRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.Question, error) {
	query := `
		SELECT id, session_id, author_name, content, like_count, created_at
		FROM questions
		WHERE session_id = $1
		ORDER BY like_count DESC, created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []*domain.Question
	for rows.Next() {
		var question domain.Question
		if err := rows.Scan(
			&question.ID, &question.SessionID, &question.AuthorName, &question.Content,
			&question.LikeCount, &question.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, &question)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}
	return questions, nil
}

func (r *questionRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE questions SET content = $2 WHERE id = $1`, id, content)
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrQuestionNotFound
	}

	return nil
}

func (r *questionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrQuestionNotFound
	}

	return nil
}

// RecountLikes rewrites like_count from the likes table for every
// question in the session.
func (r *questionRepository) RecountLikes(ctx context.Context, sessionID uuid.UUID) error {
	query := `
		UPDATE questions
		SET like_count = (SELECT COUNT(*) FROM likes l WHERE l.question_id = questions.id)
		WHERE session_id = $1
	`
	_, err := r.db.ExecContext(ctx, query, sessionID)
	if err != nil {
		return fmt.Errorf("failed to recount likes for session %s: %w", sessionID, err)
	}

	return nil
}
