// dw is a drop-in wrapper for the duplicacy CLI. It supervises backup,
// copy, prune, check and restore runs, classifies the tool's log output,
// and appends a single severity-tagged summary to the host's notification
// sink when the run completes — optionally pinging a health-check endpoint.
//
// Usage is identical to duplicacy itself. The wrapper's own switches live
// inside the -comment global option so the argument grammar stays
// untouched:
//
//	log_at_start        notify when the run starts
//	log_verbose         notify each WARN/ERROR line individually
//	healthchecks=<url>  ping <url>/<severity> after the run
//
// The wrapper always exits with the wrapped tool's exit code, except when
// the wrapper itself fails, which exits 1.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/dkoosis/dw/dw"
	"github.com/dkoosis/dw/internal/config"
	"github.com/dkoosis/dw/internal/healthcheck"
	"github.com/dkoosis/dw/internal/logging"
	"github.com/dkoosis/dw/internal/notify"
	"github.com/dkoosis/dw/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	// The one argument dw claims for itself; duplicacy has no such flag,
	// so the drop-in guarantee holds.
	if len(args) == 1 && args[0] == "--dw-version" {
		fmt.Fprintf(stdout, "dw %s (%s, built %s)\n", version.Version, version.CommitHash, version.BuildDate)
		return 0
	}

	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFile)
	sink := buildSink(cfg, stderr)

	inv := dw.ParseInvocation(args)

	if inv.Unwrapped {
		if inv.Warning != "" {
			log.Warn(inv.Warning)
			if err := sink.Append(inv.Warning, dw.SeverityWarning); err != nil {
				log.Errorf("notification failed: %v", err)
				return 1
			}
		}
		if err := dw.ExecUnwrapped(cfg.Tool, args); err != nil {
			msg := fmt.Sprintf("[duplicacy] %s: %v", inv.CommandLine(), err)
			log.Error(msg)
			_ = sink.Append(msg, dw.SeverityError)
			return 1
		}
		return 0
	}

	pinger := healthcheck.New(
		healthcheck.WithTimeout(cfg.PingTimeout()),
		healthcheck.WithRetries(cfg.PingRetries),
	)

	code, err := dw.Run(context.Background(), inv, dw.Options{
		Tool:     cfg.Tool,
		Notifier: sink,
		Pinger:   pinger,
		Supervisor: dw.Supervisor{
			Out:           stdout,
			MaxLineLength: cfg.MaxLineLength,
		},
	})
	if err != nil {
		// One top-level catch: notify at Error severity with operation,
		// command line and failure, then exit 1 regardless of the child.
		msg := fmt.Sprintf("[duplicacy %s] %s: %v", displayOperation(inv), inv.CommandLine(), err)
		log.Error(msg)
		_ = sink.Append(msg, dw.SeverityError)
		return 1
	}
	if code < 0 {
		return 1
	}
	return code
}

// buildSink selects the configured notification sink.
func buildSink(cfg *config.Config, stderr io.Writer) dw.Notifier {
	switch cfg.Notifier {
	case "console":
		return notify.NewConsole(stderr, isTTYWriter(stderr))
	default:
		return notify.NewLogTool(cfg.User, cfg.AppName, cfg.Category)
	}
}

func displayOperation(inv dw.Invocation) string {
	if inv.Operation == "" {
		return "?"
	}
	return inv.Operation
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
