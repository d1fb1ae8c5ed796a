package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/confqa/api/internal/core/domain"
	"github.com/confqa/api/internal/core/ports"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type sessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) ports.SessionRepository {
	return &sessionRepository{
		db: db,
	}
}

func (r *sessionRepository) Save(ctx context.Context, session *domain.Session) error {
	// The very first session starts out active; every later one starts
	// inactive.
	query := `
		INSERT INTO sessions (id, title, is_active, created_at)
		SELECT $1, $2, NOT EXISTS (SELECT 1 FROM sessions), $3
	`
	_, err := r.db.ExecContext(ctx, query, session.ID, session.Title, session.CreatedAt)
	if err == nil {
		return nil
	}

	// Two concurrent first-creates can each see an empty table and both
	// claim the active flag; the sessions_one_active index lets only one
	// through, and the loser re-inserts as a regular inactive session.
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" && pqErr.Constraint == "sessions_one_active" {
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO sessions (id, title, is_active, created_at) VALUES ($1, $2, FALSE, $3)`,
			session.ID, session.Title, session.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert session: %w", err)
		}
		return nil
	}

	return fmt.Errorf("failed to insert session: %w", err)
}

func (r *sessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	query := `
		SELECT id, title, is_active, created_at
		FROM sessions
		WHERE id = $1
	`

	var session domain.Session
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID, &session.Title, &session.IsActive, &session.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &session, nil
}

func (r *sessionRepository) GetActive(ctx context.Context) (*domain.Session, error) {
	query := `
		SELECT id, title, is_active, created_at
		FROM sessions
		WHERE is_active
		LIMIT 1
	`

	var session domain.Session
	err := r.db.QueryRowContext(ctx, query).Scan(
		&session.ID, &session.Title, &session.IsActive, &session.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNoActiveSession
		}
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}

	return &session, nil
}

func (r *sessionRepository) GetAll(ctx context.Context) ([]*domain.Session, error) {
	query := `
		SELECT id, title, is_active, created_at
		FROM sessions
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		var session domain.Session
		if err := rows.Scan(&session.ID, &session.Title, &session.IsActive, &session.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, &session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sessions: %w", err)
	}
	return sessions, nil
}

func (r *sessionRepository) GetAllWithQuestionCounts(ctx context.Context) ([]*domain.SessionWithCount, error) {
	query := `
		SELECT s.id, s.title, s.is_active, s.created_at,
			(SELECT COUNT(*) FROM questions q WHERE q.session_id = s.id) AS question_count
		FROM sessions s
		ORDER BY s.created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get sessions with question counts: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.SessionWithCount
	for rows.Next() {
		var session domain.SessionWithCount
		if err := rows.Scan(&session.ID, &session.Title, &session.IsActive, &session.CreatedAt, &session.QuestionCount); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, &session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sessions: %w", err)
	}
	return sessions, nil
}

// Activate flips all active flags in a single statement, so no reader
// ever observes zero or two active sessions. Every session row is
// locked first, in a stable order, which serializes concurrent
// activations instead of letting their row updates interleave (or
// deadlock) at the default isolation level. The sessions_one_active
// index backstops the invariant regardless.
func (r *sessionRepository) Activate(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `SELECT id FROM sessions ORDER BY id FOR UPDATE`)
	if err != nil {
		return fmt.Errorf("failed to lock sessions: %w", err)
	}
	defer rows.Close()

	found := false
	for rows.Next() {
		var rowID uuid.UUID
		if err := rows.Scan(&rowID); err != nil {
			return fmt.Errorf("failed to scan session id: %w", err)
		}
		if rowID == id {
			found = true
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating sessions: %w", err)
	}
	rows.Close()

	if !found {
		return domain.ErrSessionNotFound
	}

	if _, err := tx.ExecContext(ctx, `UPDATE sessions SET is_active = (id = $1)`, id); err != nil {
		return fmt.Errorf("failed to activate session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrSessionNotFound
	}

	return nil
}
