package db

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests require a running PostgreSQL instance; set TEST_DATABASE_URL to
// run them.
func testDB(t *testing.T) *DB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	database, err := Connect(context.Background(), url)
	require.NoError(t, err)
	require.NoError(t, database.EnsureSchema(context.Background()))
	t.Cleanup(database.Close)
	return database
}

func TestRunLifecycle(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	id, err := database.CreateRun(ctx, "Wharton", 512)
	require.NoError(t, err)

	artifact := map[string]any{"content_suggestions": []string{"add stakes"}}
	require.NoError(t, database.SaveArtifact(ctx, id, ArtifactAnalysis, artifact))
	require.NoError(t, database.CompleteRun(ctx, id, StatusCompleted))

	var loaded map[string]any
	require.NoError(t, database.GetArtifact(ctx, id, ArtifactAnalysis, &loaded))
	assert.Contains(t, loaded, "content_suggestions")

	runs, err := database.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.NotEmpty(t, runs)

	found := false
	for _, r := range runs {
		if r.ID == id {
			found = true
			assert.Equal(t, StatusCompleted, r.Status)
			assert.Equal(t, 512, r.EssayWords)
			assert.NotNil(t, r.CompletedAt)
		}
	}
	assert.True(t, found)
}

func TestSaveArtifactReplaces(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	id, err := database.CreateRun(ctx, "MIT Sloan", 100)
	require.NoError(t, err)

	require.NoError(t, database.SaveArtifact(ctx, id, ArtifactWordCut, map[string]int{"v": 1}))
	require.NoError(t, database.SaveArtifact(ctx, id, ArtifactWordCut, map[string]int{"v": 2}))

	var loaded map[string]int
	require.NoError(t, database.GetArtifact(ctx, id, ArtifactWordCut, &loaded))
	assert.Equal(t, 2, loaded["v"])
}
