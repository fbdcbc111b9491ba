package cmd

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajvimal/scorecard/internal/analysis"
	"github.com/rajvimal/scorecard/internal/audio"
	"github.com/rajvimal/scorecard/internal/review"
)

// testEnv isolates viper and the provider env vars.
func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	viper.Reset()
	t.Cleanup(viper.Reset)
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY", "SCORECARD_DB"} {
		t.Setenv(k, "")
	}
	viper.Set("review.analysis_timeout", 5*time.Second)
	return dir
}

func TestLLMConfigFromViper(t *testing.T) {
	testEnv(t)
	viper.Set("llm.provider", "anthropic")
	viper.Set("llm.anthropic.api_key", "sk-test")
	viper.Set("llm.anthropic.model", "claude-haiku")
	viper.Set("llm.timeout", "12s")

	cfg, ok := llmConfig()
	require.True(t, ok)
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "sk-test", cfg.Anthropic.APIKey)
	assert.Equal(t, "claude-haiku", cfg.Anthropic.Model)
	assert.Equal(t, 12*time.Second, cfg.Timeout)
	assert.True(t, cfg.HasKey())
}

func TestLLMConfigDiscoversEnv(t *testing.T) {
	testEnv(t)

	_, ok := llmConfig()
	assert.False(t, ok)

	t.Setenv("OPENAI_API_KEY", "sk-env")
	cfg, ok := llmConfig()
	require.True(t, ok)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "sk-env", cfg.OpenAI.APIKey)
}

func TestBuildAnalyzerFallsBackToOffline(t *testing.T) {
	testEnv(t)
	assert.IsType(t, analysis.Offline{}, buildAnalyzer(context.Background(), nil))

	viper.Set("llm.provider", "mock")
	assert.IsType(t, analysis.Offline{}, buildAnalyzer(context.Background(), nil))

	// A configured provider without a key cannot be built.
	viper.Set("llm.provider", "gemini")
	assert.IsType(t, analysis.Offline{}, buildAnalyzer(context.Background(), nil))
}

func TestBuildSequencer(t *testing.T) {
	testEnv(t)
	r, err := loadResume()
	require.NoError(t, err)

	seq, err := buildSequencer("quick", r, analysis.Offline{}, nil)
	require.NoError(t, err)
	assert.Equal(t, review.Quick.Name, seq.Script().Name)

	_, err = buildSequencer("highlights", r, analysis.Offline{}, nil)
	assert.ErrorContains(t, err, "unknown review variant")
}

func TestLoadResume(t *testing.T) {
	testEnv(t)
	r, err := loadResume()
	require.NoError(t, err)
	assert.NotEmpty(t, r.Name)

	viper.Set("resume.path", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = loadResume()
	assert.ErrorContains(t, err, "load résumé")
}

func TestOpenStoreUsesConfiguredPath(t *testing.T) {
	dir := testEnv(t)
	p := filepath.Join(dir, "nested", "scorecard.db")
	viper.Set("db", p)

	got, err := resolveDBPath()
	require.NoError(t, err)
	assert.Equal(t, p, got)

	s, err := openStore()
	require.NoError(t, err)
	defer s.Close()

	set, err := s.FlagRepo().IsSet(context.Background(), "intro_seen_v1")
	require.NoError(t, err)
	assert.False(t, set)
}

func TestBuildEngineMuted(t *testing.T) {
	testEnv(t)
	e := buildEngine(true)
	defer e.Close()
	e.PlayTransientCue(audio.CueClick)
}
