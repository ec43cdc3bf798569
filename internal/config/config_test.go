package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GITHUB_USERNAME", "mibao")
	t.Setenv("LOOKBACK_DAYS", "")
	t.Setenv("OUTPUT_DIR", "")
	t.Setenv("OUTPUT_FORMAT", "")
	t.Setenv("GITHUB_EXTRA_REPOS", "")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "mibao", cfg.GitHub.Username)
	assert.Equal(t, 365, cfg.GitHub.LookbackDays)
	assert.Equal(t, "stats", cfg.Output.Directory)
	assert.Equal(t, []string{"json", "markdown", "svg"}, cfg.Output.Format)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("GITHUB_USERNAME", "mibao")
	t.Setenv("LOOKBACK_DAYS", "90")
	t.Setenv("OUTPUT_DIR", "out")
	t.Setenv("OUTPUT_FORMAT", "json,excel")
	t.Setenv("GITHUB_EXTRA_REPOS", "a/b, c/d")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 90, cfg.GitHub.LookbackDays)
	assert.Equal(t, "out", cfg.Output.Directory)
	assert.Equal(t, []string{"json", "excel"}, cfg.Output.Format)
	assert.Equal(t, []string{"a/b", "c/d"}, cfg.GitHub.ExtraRepos)
}

func TestLoadFromEnv_BadLookback(t *testing.T) {
	t.Setenv("LOOKBACK_DAYS", "soon")

	_, err := LoadFromEnv()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	assert.Error(t, cfg.Validate())

	cfg.GitHub.Username = "mibao"
	assert.NoError(t, cfg.Validate())

	cfg.GitHub.ExtraRepos = []string{"a/b"}
	assert.Error(t, cfg.Validate())

	cfg.GitHub.AuthorEmail = "mibao@example.com"
	assert.NoError(t, cfg.Validate())

	cfg.GitHub.ScanOwner = "yqchen0205"
	assert.Error(t, cfg.Validate())

	cfg.GitHub.Token = "ghp_xxx"
	assert.NoError(t, cfg.Validate())
}
