package postgres

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confqa/api/internal/core/domain"
)

func TestSaveSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepository(db)
	session := &domain.Session{ID: uuid.New(), Title: "S1", CreatedAt: time.Now()}

	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(session.ID, session.Title, session.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), session))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveSessionRetriesAsInactiveOnActiveConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepository(db)
	session := &domain.Session{ID: uuid.New(), Title: "S1", CreatedAt: time.Now()}

	// A concurrent first-create already took the active flag: the insert
	// trips the one-active index and is retried as a plain inactive row.
	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(session.ID, session.Title, session.CreatedAt).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "sessions_one_active"})
	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(session.ID, session.Title, session.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), session))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivateSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepository(db)
	sessionID := uuid.New()
	otherID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM sessions ORDER BY id FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).
			AddRow(otherID.String()).
			AddRow(sessionID.String()))
	mock.ExpectExec(`UPDATE sessions SET is_active = \(id = \$1\)`).WithArgs(sessionID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, repo.Activate(context.Background(), sessionID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivateSessionNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepository(db)
	sessionID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM sessions ORDER BY id FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))
	mock.ExpectRollback()

	err = repo.Activate(context.Background(), sessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteSessionNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepository(db)
	sessionID := uuid.New()

	mock.ExpectExec("DELETE FROM sessions").WithArgs(sessionID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Delete(context.Background(), sessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetActiveSessionNone(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepository(db)

	mock.ExpectQuery("SELECT id, title, is_active, created_at").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "is_active", "created_at"}))

	_, err = repo.GetActive(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
	assert.NoError(t, mock.ExpectationsWereMet())
}
