package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/confqa/api/internal/core/domain"
	"github.com/confqa/api/internal/core/ports"
	"github.com/google/uuid"
)

type likeRepository struct {
	db *sql.DB
}

func NewLikeRepository(db *sql.DB) ports.LikeRepository {
	return &likeRepository{
		db: db,
	}
}

// Toggle flips the (question, browser) like inside a single transaction.
// The question row is locked first, which serializes concurrent toggles
// against the same question and keeps like_count equal to the number of
// likes rows.
func (r *likeRepository) Toggle(ctx context.Context, questionID uuid.UUID, browserID string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists uuid.UUID
	err = tx.QueryRowContext(ctx, `SELECT id FROM questions WHERE id = $1 FOR UPDATE`, questionID).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, domain.ErrQuestionNotFound
		}
		return false, fmt.Errorf("failed to lock question: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`DELETE FROM likes WHERE question_id = $1 AND browser_id = $2`,
		questionID, browserID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	var liked bool
	if deleted > 0 {
		_, err = tx.ExecContext(ctx,
			`UPDATE questions SET like_count = like_count - 1 WHERE id = $1`,
			questionID,
		)
		if err != nil {
			return false, fmt.Errorf("failed to decrement like count: %w", err)
		}
	} else {
		like := domain.Like{
			ID:         uuid.New(),
			QuestionID: questionID,
			BrowserID:  browserID,
			CreatedAt:  time.Now(),
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO likes (id, question_id, browser_id, created_at) VALUES ($1, $2, $3, $4)`,
			like.ID, like.QuestionID, like.BrowserID, like.CreatedAt,
		)
		if err != nil {
			return false, fmt.Errorf("failed to insert like: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE questions SET like_count = like_count + 1 WHERE id = $1`,
			questionID,
		)
		if err != nil {
			return false, fmt.Errorf("failed to increment like count: %w", err)
		}
		liked = true
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return liked, nil
}

func (r *likeRepository) CountFor(ctx context.Context, questionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM likes WHERE question_id = $1`, questionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}
