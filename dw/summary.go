package dw

import (
	"fmt"
	"strings"
)

// BuildSummary renders the single notification message for a finished run.
// The fragment order is fixed: bracketed tool+operation tag, the original
// command line, storage/repository fragments in arrival order, error count,
// warning count, chunk/snapshot removal counts, the remaining statistics
// fragments in arrival order, and the exit status when it is positive.
//
// The "errors(s)" spelling is kept as-is: existing log consumers match on
// it.
func BuildSummary(inv Invocation, agg *Aggregate, exitCode int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[duplicacy %s] %s", inv.Operation, inv.CommandLine())

	for _, frag := range agg.HeaderFragments() {
		b.WriteString(frag)
	}
	if agg.Errors > 0 {
		fmt.Fprintf(&b, "; %d errors(s)", agg.Errors)
	}
	if agg.Warnings > 0 {
		fmt.Fprintf(&b, "; %d warning(s)", agg.Warnings)
	}
	if agg.ChunksRemoved > 0 {
		fmt.Fprintf(&b, "; %d chunk(s) removed", agg.ChunksRemoved)
	}
	if agg.SnapshotsRemoved > 0 {
		fmt.Fprintf(&b, "; %d snapshot(s) removed", agg.SnapshotsRemoved)
	}
	for _, frag := range agg.StatFragments() {
		b.WriteString("; ")
		b.WriteString(frag)
	}
	if exitCode > 0 {
		fmt.Fprintf(&b, "; Exit status: %d", exitCode)
	}

	return b.String()
}

// StartMessage is the optional Information notification emitted before the
// child is spawned when log_at_start is set.
func StartMessage(inv Invocation) string {
	return fmt.Sprintf("[duplicacy starting %s] %s", inv.Operation, inv.CommandLine())
}

// LineMessage tags a raw output line for the verbose per-line side channel.
func LineMessage(inv Invocation, line string) string {
	return fmt.Sprintf("[duplicacy %s] %s; %s", inv.Operation, inv.CommandLine(), line)
}
