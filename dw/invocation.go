// Package dw supervises one invocation of the duplicacy CLI: it classifies
// the argument list, spawns the tool with its output piped, folds the
// timestamped log stream into counters and fragments, and resolves a single
// severity-tagged summary when the child exits.
package dw

import (
	"regexp"
	"strings"
)

// supervisedOps are the duplicacy commands whose runs produce a summary
// notification.
var supervisedOps = map[string]bool{
	"backup":  true,
	"copy":    true,
	"prune":   true,
	"check":   true,
	"restore": true,
}

// passthroughCmds are executed by duplicacy directly, without supervision
// or notifications.
var passthroughCmds = map[string]bool{
	"init":      true,
	"list":      true,
	"cat":       true,
	"diff":      true,
	"history":   true,
	"password":  true,
	"add":       true,
	"set":       true,
	"info":      true,
	"benchmark": true,
	"help":      true,
	"h":         true,
}

// healthchecksRe captures the ping URL from a -comment value. The capture
// is deliberately permissive (any non-whitespace, non-comma, non-quote run);
// scheme validation is a separate policy in internal/healthcheck.
var healthchecksRe = regexp.MustCompile(`\bhealthchecks\s*=\s*([^,'"\s]+)`)

// Invocation is the classified argument list of one run. Immutable once
// parsed.
type Invocation struct {
	// Args is the full original argument list, program name excluded.
	Args []string

	// Operation is the supervised duplicacy command ("backup", "copy",
	// "prune", "check" or "restore"). Empty when Unwrapped is set.
	Operation string

	// LogAtStart requests an Information notification before the child
	// is spawned.
	LogAtStart bool

	// Verbose mirrors each matched WARN/ERROR line to the sink as it
	// arrives.
	Verbose bool

	// HealthchecksURL is the ping endpoint extracted from -comment,
	// empty when none was configured.
	HealthchecksURL string

	// Unwrapped marks the run for direct pass-through execution.
	Unwrapped bool

	// Warning is a parse diagnostic to deliver at Warning severity before
	// pass-through, or "" when classification was clean.
	Warning string
}

// CommandLine renders the original argument list the way it appears in
// notifications.
func (inv Invocation) CommandLine() string {
	return strings.Join(inv.Args, " ")
}

// ParseInvocation scans the argument list left to right and decides whether
// the run is supervised. Global options that take a value (-profile,
// -suppress, -comment) consume two tokens; any other option token is
// consumed alone. The first non-option token settles the outcome: a
// supervised operation, a pass-through command, or an unrecognized command
// (pass-through with a warning). Exhausting the list without a verdict is a
// parse failure, also handed through unwrapped.
func ParseInvocation(args []string) Invocation {
	inv := Invocation{Args: args}

	i := 0
	for i < len(args) {
		switch {
		case args[i] == "-profile" || args[i] == "-suppress":
			i += 2
		case args[i] == "-comment":
			if i+1 < len(args) {
				inspectComment(args[i+1], &inv)
			}
			i += 2
		case strings.HasPrefix(args[i], "-"):
			i++
		case supervisedOps[args[i]]:
			inv.Operation = args[i]
			return inv
		case passthroughCmds[args[i]]:
			inv.Unwrapped = true
			return inv
		default:
			inv.Unwrapped = true
			inv.Warning = "[duplicacy] Unrecognized command: " + inv.CommandLine()
			return inv
		}
	}

	inv.Unwrapped = true
	inv.Warning = "[duplicacy] Parse failed: " + inv.CommandLine()
	return inv
}

// inspectComment extracts the wrapper's sub-options from a -comment value.
// The signals are independent substrings so they survive the Web UI's
// whitespace restrictions on the comment field.
func inspectComment(comment string, inv *Invocation) {
	if strings.Contains(comment, "log_at_start") {
		inv.LogAtStart = true
	}
	if strings.Contains(comment, "log_verbose") {
		inv.Verbose = true
	}
	if m := healthchecksRe.FindStringSubmatch(comment); m != nil {
		inv.HealthchecksURL = m[1]
	}
}
