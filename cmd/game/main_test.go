package main

import (
	"bytes"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aspects/internal/logging"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestScore(t *testing.T) {
	_, err := run(t, "score", "Joy", "--threshold", "0")
	assert.ErrorContains(t, err, "threshold must be positive")

	out, err := run(t, "score", "Joy", "Anger", "Nostalgia", "--threshold", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Score 1 with threshold 7: GoodEnding")

	_, err = run(t, "score", "Boredom")
	assert.Error(t, err)
}

func TestRules(t *testing.T) {
	out, err := run(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "Nostalgia")
	assert.Contains(t, out, "Forgiveness")
	assert.Contains(t, out, "Starting aspects: Joy (+2), Sadness (+0), Anger (-2), Fear (-1)")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "aspects version dev")
}

func TestReview(t *testing.T) {
	path := filepath.Join(t.TempDir(), "narration.db")

	out, err := run(t, "review", "--log-path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No narration recorded yet.")

	logger, err := logging.NewCompletionLogger(path)
	require.NoError(t, err)
	require.NoError(t, logger.LogCompletion("session-1234567890", "Nostalgia", map[string]string{"state": "gaming"},
		"system", "Ima: The garden remembers.", logging.CompletionMetadata{Model: "test-model"}))
	require.NoError(t, logger.Close())

	out, err = run(t, "review", "--log-path", path, "--full")
	require.NoError(t, err)
	assert.Contains(t, out, "Nostalgia")
	assert.Contains(t, out, "test-model")
	assert.Contains(t, out, "session-")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`UPDATE completions SET metadata = '{broken'`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	out, err = run(t, "review", "--log-path", path, "--full")
	require.NoError(t, err)
	assert.Contains(t, out, "invalid metadata")
	assert.NotContains(t, out, "test-model")
}
