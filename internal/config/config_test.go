package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aspects.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(NewViper(""))
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Threshold)
	assert.Equal(t, 20, cfg.FPS)
	assert.Equal(t, NarratorStatic, cfg.Narrator.Mode)
	assert.True(t, cfg.Sound)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestFileAndEnvironment(t *testing.T) {
	path := writeConfig(t, `
threshold: 9
skip_intro: true
narrator:
  mode: llm
  model: small-model
tracing:
  enabled: false
`)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ASPECTS_FPS", "30")
	t.Setenv("OTEL_TRACES_ENABLED", "true")

	cfg, err := Load(NewViper(path))
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Threshold)
	assert.True(t, cfg.SkipIntro)
	assert.Equal(t, 30, cfg.FPS)
	assert.Equal(t, "sk-test", cfg.Narrator.APIKey)
	assert.True(t, cfg.Tracing.Enabled)

	assert.Equal(t, "small-model", cfg.LLM().Model)
	obs := cfg.Observability("1.2.3")
	assert.Equal(t, "1.2.3", obs.ServiceVersion)
	assert.True(t, obs.Enabled)
}

func TestValidation(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ASPECTS_NARRATOR_API_KEY", "")

	cases := map[string]string{
		"llm without key": "narrator:\n  mode: llm\n",
		"unknown mode":    "narrator:\n  mode: puppet\n",
		"bad fps":         "fps: 0\n",
		"negative":        "threshold: -1\n",
		"zero threshold":  "threshold: 0\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(NewViper(writeConfig(t, body)))
			assert.Error(t, err)
		})
	}
}

func TestMissingExplicitFileFails(t *testing.T) {
	_, err := Load(NewViper(filepath.Join(t.TempDir(), "nope.yaml")))
	assert.Error(t, err)
}
