package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumika-fab/secscore/logger"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	assert.Equal(":5000", cfg.ListenAddress)
	assert.Equal(DefaultInitialBufferBytes, cfg.InitialBufferBytes)
	assert.Equal(logger.InfoLevel, cfg.LogLevel)
	assert.False(cfg.LogDevelopment)
}

func TestLoad_Overrides(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	path := writeConfig(t, `
listen_address = "0.0.0.0:6000"
initial_buffer_bytes = 8192
log_level = "debug"
log_development = true
`)

	cfg, err := Load(path)
	require.NoError(err)
	assert.Equal("0.0.0.0:6000", cfg.ListenAddress)
	assert.Equal(8192, cfg.InitialBufferBytes)
	assert.Equal(logger.DebugLevel, cfg.LogLevel)
	assert.True(cfg.LogDevelopment)
}

func TestLoad_PartialOverrideKeepsDefaults(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	path := writeConfig(t, `log_level = "warn"`)

	cfg, err := Load(path)
	require.NoError(err)
	assert.Equal(Default().ListenAddress, cfg.ListenAddress)
	assert.Equal(Default().InitialBufferBytes, cfg.InitialBufferBytes)
	assert.Equal(logger.WarnLevel, cfg.LogLevel)
}

func TestLoad_EmptyListenAddressRejected(t *testing.T) {
	path := writeConfig(t, `listen_address = "   "`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_NonPositiveBufferSizeRejected(t *testing.T) {
	path := writeConfig(t, `initial_buffer_bytes = 0`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_UnrecognizedLogLevelRejected(t *testing.T) {
	path := writeConfig(t, `log_level = "verbose"`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
