package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequiredPaths(t *testing.T) {
	dir := t.TempDir()
	logfile := filepath.Join(dir, "log.ndjson")
	require.NoError(t, os.WriteFile(logfile, []byte("{}\n"), 0644))

	cfg := New()
	assert.ErrorContains(t, cfg.Validate(), "required")

	cfg.Tag.Source = dir
	cfg.Tag.Dest = dir
	cfg.Tag.LogFile = logfile
	assert.NoError(t, cfg.Validate())
}

func TestValidateMissingPath(t *testing.T) {
	dir := t.TempDir()
	logfile := filepath.Join(dir, "log.ndjson")
	require.NoError(t, os.WriteFile(logfile, []byte("{}\n"), 0644))

	cfg := New()
	cfg.Tag.Source = filepath.Join(dir, "nope")
	cfg.Tag.Dest = dir
	cfg.Tag.LogFile = logfile
	assert.ErrorContains(t, cfg.Validate(), "source path")

	cfg.Tag.Source = dir
	cfg.Tag.Dest = filepath.Join(dir, "nope")
	assert.ErrorContains(t, cfg.Validate(), "destination path")

	cfg.Tag.Dest = dir
	cfg.Tag.LogFile = filepath.Join(dir, "nope.ndjson")
	assert.ErrorContains(t, cfg.Validate(), "log file")
}

func TestValidateArchiveConfig(t *testing.T) {
	dir := t.TempDir()
	logfile := filepath.Join(dir, "log.ndjson")
	require.NoError(t, os.WriteFile(logfile, []byte("{}\n"), 0644))

	cfg := New()
	cfg.Tag.Source = dir
	cfg.Tag.Dest = dir
	cfg.Tag.LogFile = logfile
	cfg.Archive.Endpoint = "localhost:9000"
	assert.ErrorContains(t, cfg.Validate(), "bucket")
}
