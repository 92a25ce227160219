package analysis_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repofit/repofit/internal/analysis"
)

func TestLoadConfig_OverridesMergeOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rules:
  skipFragments: ["generated"]
limits:
  maxFiles: 10
  charBudget: 2000
`), 0o600))

	cfg, err := analysis.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"generated"}, cfg.Rules.SkipFragments)
	// Extensions were not overridden, so the defaults stay.
	assert.Equal(t, analysis.DefaultRules().CodeExtensions, cfg.Rules.CodeExtensions)

	assert.Equal(t, 10, cfg.Limits.MaxFiles)
	assert.Equal(t, 2000, cfg.Limits.CharBudget)
	assert.Equal(t, analysis.DefaultLimits().MaxFileSize, cfg.Limits.MaxFileSize)
	assert.Equal(t, analysis.DefaultLimits().MaxDepth, cfg.Limits.MaxDepth)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := analysis.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules: [not a map"), 0o600))

	_, err := analysis.LoadConfig(path)
	assert.Error(t, err)
}
