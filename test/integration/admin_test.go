package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confqa/api/internal/core/domain"
)

func TestAdminAuth(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	body, _ := json.Marshal(map[string]string{"code": testAdminCode})
	resp, err := app.Client.Post(app.Server.URL+"/api/admin/auth", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ = json.Marshal(map[string]string{"code": "wrong"})
	resp, err = app.Client.Post(app.Server.URL+"/api/admin/auth", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminGate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	// Without the header.
	resp, err := app.Client.Get(app.Server.URL + "/api/admin/sessions")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// With a wrong code.
	req, err := http.NewRequest(http.MethodGet, app.Server.URL+"/api/admin/sessions", nil)
	require.NoError(t, err)
	req.Header.Set("X-Admin-Code", "wrong")
	resp, err = app.Client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminSessionListIncludesQuestionCounts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	first := app.createSession(t, "S1")
	second := app.createSession(t, "S2")
	app.createQuestion(t, first.ID.String(), "Kim", "q1", "1234")
	app.createQuestion(t, first.ID.String(), "Lee", "q2", "1234")

	resp := app.adminDo(t, http.MethodGet, "/api/admin/sessions", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sessions []domain.SessionWithCount
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sessions))
	require.Len(t, sessions, 2)

	// Ordered by creation time ascending.
	assert.Equal(t, first.ID, sessions[0].ID)
	assert.Equal(t, int64(2), sessions[0].QuestionCount)
	assert.Equal(t, second.ID, sessions[1].ID)
	assert.Equal(t, int64(0), sessions[1].QuestionCount)
}

func TestSessionActivationIsExclusive(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	first := app.createSession(t, "S1")
	second := app.createSession(t, "S2")
	third := app.createSession(t, "S3")

	resp := app.adminDo(t, http.MethodPost, "/api/admin/sessions/"+second.ID.String()+"/activate", nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Concurrent activations of different sessions must never leave two
	// rows active. Repeat the race to give interleavings a chance to bite.
	for round := 0; round < 10; round++ {
		var wg sync.WaitGroup
		for _, target := range []domain.Session{first, second, third} {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				resp := app.adminDo(t, http.MethodPost, "/api/admin/sessions/"+id+"/activate", nil)
				resp.Body.Close()
			}(target.ID.String())
		}
		wg.Wait()

		var activeCount int
		require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM sessions WHERE is_active").Scan(&activeCount))
		require.Equal(t, 1, activeCount, "round %d", round)
	}
}

func TestConcurrentSessionCreatesSingleActive(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	// Racing first-creates against an empty table: all of them see no
	// existing sessions, but only one may end up holding the active flag.
	const writers = 5
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			resp := app.adminDo(t, http.MethodPost, "/api/admin/sessions",
				map[string]string{"title": fmt.Sprintf("S%d", n)})
			resp.Body.Close()
		}(i)
	}
	wg.Wait()

	var total, activeCount int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&total))
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM sessions WHERE is_active").Scan(&activeCount))
	assert.Equal(t, writers, total)
	assert.Equal(t, 1, activeCount)
}

func TestDeleteSessionCascades(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	session := app.createSession(t, "S1")
	question := app.createQuestion(t, session.ID.String(), "Kim", "hi", "1234")
	app.toggleLike(t, question.ID.String(), "b1")

	resp := app.adminDo(t, http.MethodDelete, "/api/admin/sessions/"+session.ID.String(), nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var questions, likes int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM questions").Scan(&questions))
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM likes").Scan(&likes))
	assert.Equal(t, 0, questions)
	assert.Equal(t, 0, likes)
}

func TestDeleteQuestionCascadesLikes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	session := app.createSession(t, "S1")
	question := app.createQuestion(t, session.ID.String(), "Kim", "hi", "1234")
	app.toggleLike(t, question.ID.String(), "b1")
	app.toggleLike(t, question.ID.String(), "b2")

	resp := app.adminDo(t, http.MethodDelete, "/api/admin/questions/"+question.ID.String(), nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var likes int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM likes").Scan(&likes))
	assert.Equal(t, 0, likes)
}

func TestDeleteMissingSessionReturnsNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp := app.adminDo(t, http.MethodDelete, "/api/admin/sessions/6e7f3f64-7cb0-4f5a-a1ad-111111111111", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
