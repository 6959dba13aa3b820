package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".dw.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile_When_AllFieldsSet(t *testing.T) {
	path := writeConfig(t, `
tool: /opt/bin/duplicacy
notifier: console
user: admin
app_name: Backups
category: Nightly
ping_timeout_seconds: 3
ping_retries: 2
log_file: /var/log/dw.log
log_level: debug
max_line_length: 65536
`)

	cfg, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, "/opt/bin/duplicacy", cfg.Tool)
	assert.Equal(t, "console", cfg.Notifier)
	assert.Equal(t, "admin", cfg.User)
	assert.Equal(t, "Backups", cfg.AppName)
	assert.Equal(t, "Nightly", cfg.Category)
	assert.Equal(t, 3*time.Second, cfg.PingTimeout())
	assert.Equal(t, 2, cfg.PingRetries)
	assert.Equal(t, "/var/log/dw.log", cfg.LogFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 65536, cfg.MaxLineLength)
}

func TestLoadFile_When_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "notifier: console\n")

	cfg, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, "console", cfg.Notifier)
	assert.Equal(t, DefaultTool, cfg.Tool)
	assert.Equal(t, DefaultAppName, cfg.AppName)
	assert.Equal(t, DefaultCategory, cfg.Category)
	assert.Equal(t, DefaultPingRetries, cfg.PingRetries)
	assert.Equal(t, DefaultMaxLineLength, cfg.MaxLineLength)
	assert.Equal(t, DefaultPingTimeout, cfg.PingTimeout())
}

func TestLoadFile_When_BlankedFieldsRestored(t *testing.T) {
	path := writeConfig(t, "tool: \"\"\nping_retries: 0\nmax_line_length: -1\n")

	cfg, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, DefaultTool, cfg.Tool)
	assert.Equal(t, DefaultPingRetries, cfg.PingRetries)
	assert.Equal(t, DefaultMaxLineLength, cfg.MaxLineLength)
}

func TestLoadFile_When_Malformed(t *testing.T) {
	path := writeConfig(t, "tool: [unterminated\n")

	_, err := LoadFile(path)

	assert.Error(t, err)
}

func TestLoadFile_When_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Error(t, err)
}

func TestLoadFile_When_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DW_TOOL", "/usr/local/bin/duplicacy")
	t.Setenv("DW_NOTIFIER", "console")
	t.Setenv("DW_LOG_FILE", "/tmp/dw.log")
	t.Setenv("DW_DEBUG", "1")

	path := writeConfig(t, "tool: /opt/bin/duplicacy\nlog_level: warn\n")
	cfg, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/duplicacy", cfg.Tool)
	assert.Equal(t, "console", cfg.Notifier)
	assert.Equal(t, "/tmp/dw.log", cfg.LogFile)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_When_NoConfigAnywhere(t *testing.T) {
	tempDir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tempDir, "xdg"))
	t.Setenv("HOME", filepath.Join(tempDir, "home"))
	t.Setenv("DW_TOOL", "")
	t.Setenv("DW_NOTIFIER", "")
	t.Setenv("DW_LOG_FILE", "")
	t.Setenv("DW_DEBUG", "")

	cfg := Load()

	assert.Equal(t, DefaultTool, cfg.Tool)
	assert.Equal(t, DefaultNotifier, cfg.Notifier)
	assert.Equal(t, DefaultMaxLineLength, cfg.MaxLineLength)
}

func TestLoad_When_LocalFileMalformed(t *testing.T) {
	tempDir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("DW_TOOL", "")
	require.NoError(t, os.WriteFile(".dw.yaml", []byte("tool: [oops\n"), 0o600))

	cfg := Load()

	// Malformed config degrades to defaults instead of failing the run.
	assert.Equal(t, DefaultTool, cfg.Tool)
}

func TestPingTimeout_When_Unset(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	assert.Equal(t, DefaultPingTimeout, cfg.PingTimeout())

	cfg.PingTimeoutSeconds = -5
	assert.Equal(t, DefaultPingTimeout, cfg.PingTimeout())
}
