package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dupscan/dupscan/internal/config"
)

func TestLoad_AppliesDocumentedDefaultsWhenNoFileOrEnv(t *testing.T) {
	dir := t.TempDir()

	wd, err := os.Getwd()
	require.NoError(t, err)

	require.NoError(t, os.Chdir(dir))

	defer func() { require.NoError(t, os.Chdir(wd)) }()

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 0.87, cfg.Scan.Threshold)
	assert.Equal(t, 5, cfg.Scan.MinLines)
	assert.Equal(t, 0.3, cfg.Apted.RenameCost)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Report.Format)
}

func TestLoad_ReadsExplicitConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "dupscan.yaml")

	yaml := `
scan:
  threshold: 0.9
  min_lines: 8
apted:
  rename_cost: 0.1
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.9, cfg.Scan.Threshold)
	assert.Equal(t, 8, cfg.Scan.MinLines)
	assert.Equal(t, 0.1, cfg.Apted.RenameCost)
}

func TestLoad_InvalidThresholdIsRejected(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "dupscan.yaml")

	require.NoError(t, os.WriteFile(path, []byte("scan:\n  threshold: 1.5\n"), 0o600))

	_, err := config.Load(path)
	require.ErrorIs(t, err, config.ErrInvalidThreshold)
}

func TestLoad_MinLinesAboveMaxLinesIsRejected(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "dupscan.yaml")

	require.NoError(t, os.WriteFile(path, []byte("scan:\n  min_lines: 50\n  max_lines: 10\n"), 0o600))

	_, err := config.Load(path)
	require.ErrorIs(t, err, config.ErrInvalidLineRange)
}

func TestLoad_NegativeJobsIsRejected(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "dupscan.yaml")

	require.NoError(t, os.WriteFile(path, []byte("scan:\n  jobs: -1\n"), 0o600))

	_, err := config.Load(path)
	require.ErrorIs(t, err, config.ErrInvalidJobs)
}

func TestLoad_EnvironmentVariableOverridesDefault(t *testing.T) {
	dir := t.TempDir()

	wd, err := os.Getwd()
	require.NoError(t, err)

	require.NoError(t, os.Chdir(dir))

	defer func() { require.NoError(t, os.Chdir(wd)) }()

	t.Setenv("DUPSCAN_SCAN_THRESHOLD", "0.95")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 0.95, cfg.Scan.Threshold)
}
