package integration

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentLikeToggles hammers one question from many browsers at
// once and checks the denormalized counter still matches the likes table.
func TestConcurrentLikeToggles(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	session := app.createSession(t, "S1")
	question := app.createQuestion(t, session.ID.String(), "Kim", "hi", "1234")

	const browsers = 20

	var wg sync.WaitGroup
	for i := 0; i < browsers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			browserID := fmt.Sprintf("browser-%d", i)
			app.toggleLike(t, question.ID.String(), browserID)
			if i%2 == 0 {
				// Half the browsers immediately unlike again.
				app.toggleLike(t, question.ID.String(), browserID)
			}
		}(i)
	}
	wg.Wait()

	var likeCount, likeRows int64
	require.NoError(t, app.DB.QueryRow("SELECT like_count FROM questions WHERE id = $1", question.ID).Scan(&likeCount))
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM likes WHERE question_id = $1", question.ID).Scan(&likeRows))

	assert.Equal(t, likeRows, likeCount)
	assert.Equal(t, int64(browsers/2), likeCount)
}

func TestLikeUniquePerBrowser(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	session := app.createSession(t, "S1")
	question := app.createQuestion(t, session.ID.String(), "Kim", "hi", "1234")

	// A long like/unlike sequence from one browser never produces more
	// than one row.
	for i := 0; i < 5; i++ {
		app.toggleLike(t, question.ID.String(), "b1")
	}

	var rows int
	require.NoError(t, app.DB.QueryRow(
		"SELECT COUNT(*) FROM likes WHERE question_id = $1 AND browser_id = 'b1'", question.ID,
	).Scan(&rows))
	assert.Equal(t, 1, rows)

	var likeCount int64
	require.NoError(t, app.DB.QueryRow("SELECT like_count FROM questions WHERE id = $1", question.ID).Scan(&likeCount))
	assert.Equal(t, int64(1), likeCount)
}
