package logging

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger(t *testing.T) *CompletionLogger {
	t.Helper()
	logger, err := NewCompletionLogger(filepath.Join(t.TempDir(), "narration.db"))
	require.NoError(t, err)
	t.Cleanup(func() { logger.Close() })
	return logger
}

func TestLogAndReadBack(t *testing.T) {
	logger := newLogger(t)

	snap := map[string]string{"state": "gaming"}
	require.NoError(t, logger.LogCompletion("s1", "Intro", snap, "system", "first", CompletionMetadata{Model: "m", ResponseTime: time.Second}))
	require.NoError(t, logger.LogCompletion("s2", "Nostalgia", snap, "system", "other", CompletionMetadata{}))
	require.NoError(t, logger.LogCompletion("s1", "Ima", snap, "system", "second", CompletionMetadata{Fallback: true}))

	got, err := logger.Recent("s1", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "second", got[0].Response)
	assert.Equal(t, "Intro", got[1].Node)
	assert.JSONEq(t, `{"state":"gaming"}`, got[1].Snapshot)

	var meta CompletionMetadata
	require.NoError(t, json.Unmarshal([]byte(got[0].Metadata), &meta))
	assert.True(t, meta.Fallback)

	all, err := logger.Recent("", 2)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLogRejectsUnmarshalableSnapshot(t *testing.T) {
	logger := newLogger(t)
	err := logger.LogCompletion("s", "Intro", make(chan int), "", "", CompletionMetadata{})
	assert.Error(t, err)
}
