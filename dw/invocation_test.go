package dw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInvocation_When_SupervisedOperation(t *testing.T) {
	t.Parallel()

	for _, op := range []string{"backup", "copy", "prune", "check", "restore"} {
		inv := ParseInvocation([]string{op, "-stats"})

		assert.Equal(t, op, inv.Operation)
		assert.False(t, inv.Unwrapped)
		assert.Empty(t, inv.Warning)
	}
}

func TestParseInvocation_When_PassthroughCommand(t *testing.T) {
	t.Parallel()

	for _, cmd := range []string{
		"init", "list", "cat", "diff", "history", "password",
		"add", "set", "info", "benchmark", "help", "h",
	} {
		inv := ParseInvocation([]string{cmd})

		assert.True(t, inv.Unwrapped, cmd)
		assert.Empty(t, inv.Operation, cmd)
		assert.Empty(t, inv.Warning, cmd)
	}
}

func TestParseInvocation_When_GlobalOptionsPrecedeOperation(t *testing.T) {
	t.Parallel()

	inv := ParseInvocation([]string{"-profile", "127.0.0.1:8080", "-log", "backup", "-stats"})

	assert.Equal(t, "backup", inv.Operation)
	assert.False(t, inv.Unwrapped)
}

func TestParseInvocation_When_ValueOptionConsumesOperationToken(t *testing.T) {
	t.Parallel()

	// -suppress swallows "prune" as its value, so the scan runs off the
	// end without a verdict: parse failure, unwrapped pass-through.
	inv := ParseInvocation([]string{"-suppress", "prune"})

	assert.True(t, inv.Unwrapped)
	assert.Empty(t, inv.Operation)
	assert.Contains(t, inv.Warning, "Parse failed")
}

func TestParseInvocation_When_UnrecognizedCommand(t *testing.T) {
	t.Parallel()

	inv := ParseInvocation([]string{"frobnicate", "-stats"})

	assert.True(t, inv.Unwrapped)
	assert.Contains(t, inv.Warning, "Unrecognized command")
	assert.Contains(t, inv.Warning, "frobnicate -stats")
}

func TestParseInvocation_When_EmptyArguments(t *testing.T) {
	t.Parallel()

	inv := ParseInvocation(nil)

	assert.True(t, inv.Unwrapped)
	assert.Contains(t, inv.Warning, "Parse failed")
}

func TestParseInvocation_When_CommentCarriesSubOptions(t *testing.T) {
	t.Parallel()

	inv := ParseInvocation([]string{
		"-comment", "log_at_start,log_verbose,healthchecks=https://hc.example/ping/abc123",
		"backup",
	})

	assert.Equal(t, "backup", inv.Operation)
	assert.True(t, inv.LogAtStart)
	assert.True(t, inv.Verbose)
	assert.Equal(t, "https://hc.example/ping/abc123", inv.HealthchecksURL)
}

func TestParseInvocation_When_CommentHasSpacedHealthchecks(t *testing.T) {
	t.Parallel()

	inv := ParseInvocation([]string{"-comment", "healthchecks = https://hc.example/x", "prune"})

	assert.Equal(t, "https://hc.example/x", inv.HealthchecksURL)
}

func TestParseInvocation_When_HealthchecksValueStopsAtDelimiters(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"healthchecks=https://hc.example/x,log_verbose": "https://hc.example/x",
		`healthchecks="https://hc.example/y"`:           "https://hc.example/y",
		"healthchecks=https://hc.example/z extra":       "https://hc.example/z",
	}
	for comment, want := range cases {
		inv := ParseInvocation([]string{"-comment", comment, "check"})
		assert.Equal(t, want, inv.HealthchecksURL, comment)
	}
}

func TestParseInvocation_When_CommentMissingValue(t *testing.T) {
	t.Parallel()

	inv := ParseInvocation([]string{"-comment"})

	assert.True(t, inv.Unwrapped)
	assert.Contains(t, inv.Warning, "Parse failed")
}

func TestParseInvocation_When_PlainComment(t *testing.T) {
	t.Parallel()

	inv := ParseInvocation([]string{"-comment", "nightly run", "backup"})

	assert.Equal(t, "backup", inv.Operation)
	assert.False(t, inv.LogAtStart)
	assert.False(t, inv.Verbose)
	assert.Empty(t, inv.HealthchecksURL)
}

func TestCommandLine_When_MultipleArgs(t *testing.T) {
	t.Parallel()

	inv := Invocation{Args: []string{"backup", "-stats", "-threads", "4"}}

	assert.Equal(t, "backup -stats -threads 4", inv.CommandLine())
}
