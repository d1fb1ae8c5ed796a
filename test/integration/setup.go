package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/confqa/api/internal/adapters/handler/http"
	repo "github.com/confqa/api/internal/adapters/repository/postgres"
	"github.com/confqa/api/internal/core/domain"
	"github.com/confqa/api/internal/core/services"
)

const testAdminCode = "test-admin-code"

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	DBContainer testcontainers.Container
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		_, err = db.Exec(string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func setupTestApp(t *testing.T) *TestApp {
	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	err = applyMigrations(db)
	require.NoError(t, err)

	sessionRepo := repo.NewSessionRepository(db)
	questionRepo := repo.NewQuestionRepository(db)
	likeRepo := repo.NewLikeRepository(db)

	sessionService := services.NewSessionService(sessionRepo)
	questionService := services.NewQuestionService(sessionRepo, questionRepo)
	likeService := services.NewLikeService(likeRepo)

	sessionHandler := handler.NewSessionHandler(sessionService)
	questionHandler := handler.NewQuestionHandler(questionService, likeService)
	adminHandler := handler.NewAdminHandler(sessionService, questionService, testAdminCode)

	router := handler.NewHandler(sessionHandler, questionHandler, adminHandler, testAdminCode, []string{"*"})

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

// adminDo sends a request with the admin code header set.
func (app *TestApp) adminDo(t *testing.T, method, path string, payload any) *http.Response {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, app.Server.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Code", testAdminCode)

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func (app *TestApp) createSession(t *testing.T, title string) domain.Session {
	t.Helper()

	resp := app.adminDo(t, http.MethodPost, "/api/admin/sessions", map[string]string{"title": title})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var session domain.Session
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&session))
	return session
}

func (app *TestApp) createQuestion(t *testing.T, sessionID, authorName, content, password string) domain.Question {
	t.Helper()

	payload := map[string]string{"authorName": authorName, "content": content, "password": password}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := app.Client.Post(
		app.Server.URL+"/api/sessions/"+sessionID+"/questions",
		"application/json", bytes.NewReader(raw),
	)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var question domain.Question
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&question))
	return question
}

func (app *TestApp) toggleLike(t *testing.T, questionID, browserID string) (bool, int64) {
	t.Helper()

	raw, err := json.Marshal(map[string]string{"browserId": browserID})
	require.NoError(t, err)

	resp, err := app.Client.Post(
		app.Server.URL+"/api/questions/"+questionID+"/like",
		"application/json", bytes.NewReader(raw),
	)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Liked     bool  `json:"liked"`
		LikeCount int64 `json:"likeCount"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result.Liked, result.LikeCount
}
