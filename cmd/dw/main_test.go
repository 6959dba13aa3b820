package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkoosis/dw/dw"
	"github.com/dkoosis/dw/internal/config"
	"github.com/dkoosis/dw/internal/notify"
)

func TestRun_When_VersionFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"--dw-version"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "dw ")
}

func TestBuildSink_When_ConsoleConfigured(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Notifier: "console"}
	var buf bytes.Buffer

	sink := buildSink(cfg, &buf)

	_, ok := sink.(*notify.Console)
	assert.True(t, ok)
}

func TestBuildSink_When_LogToolConfigured(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Notifier: "logtool", User: "admin"}

	sink := buildSink(cfg, os.Stderr)

	_, ok := sink.(*notify.LogTool)
	assert.True(t, ok)
}

func TestDisplayOperation_When_OperationMissing(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "?", displayOperation(dw.Invocation{}))
	assert.Equal(t, "prune", displayOperation(dw.Invocation{Operation: "prune"}))
}

func TestIsTTYWriter_When_NotAFile(t *testing.T) {
	t.Parallel()

	assert.False(t, isTTYWriter(&bytes.Buffer{}))
}
