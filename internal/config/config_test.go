package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PartialFileGetsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
findings:
  default_path: lib/findings.xlsx
  enforce_sheet: true
ranking:
  top_k: 5
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "lib/findings.xlsx", cfg.Findings.DefaultPath)
	assert.True(t, cfg.Findings.EnforceSheet)
	assert.Equal(t, "Data", cfg.Findings.Sheet)
	assert.Equal(t, 5, cfg.Ranking.TopK)
	assert.Equal(t, 20000, cfg.Index.MaxFeatures)
	assert.Equal(t, 2, cfg.Index.NGramMax)
	assert.Equal(t, "TYPHOON_API_KEY", cfg.Assist.APIKeyEnv)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.InDelta(t, 0.7, cfg.Assist.Temperature, 1e-6)
	assert.False(t, cfg.Index.Stopwords)
}

func TestLoad_ExplicitZeroTemperatureKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
assist:
  model: local-model
  temperature: 0
index:
  stopwords: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "local-model", cfg.Assist.Model)
	assert.Equal(t, float32(0), cfg.Assist.Temperature)
	assert.Equal(t, 60, cfg.Assist.TimeoutSecs)
	assert.True(t, cfg.Index.Stopwords)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: chatty\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte("findings: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Ranking.TopK = 12

	require.NoError(t, Save(path, cfg))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Ranking.TopK)
}

func TestAssistConfig_APIKey(t *testing.T) {
	t.Setenv("PLANNER_TEST_KEY", "secret")
	assert.Equal(t, "secret", AssistConfig{APIKeyEnv: "PLANNER_TEST_KEY"}.APIKey())
	assert.Equal(t, "", AssistConfig{}.APIKey())
}
