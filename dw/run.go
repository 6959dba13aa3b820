package dw

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// ErrUnwrapped reports an invocation meant for pass-through execution handed
// to Run.
var ErrUnwrapped = errors.New("unwrapped invocation")

// Notifier delivers severity-tagged messages to the host's notification
// sink. A failed Append is a hard error for the caller.
type Notifier interface {
	Append(message string, severity Severity) error
}

// Pinger posts the severity-qualified summary to an external health-check
// endpoint. Delivery failure is non-fatal and must never change the run's
// exit code.
type Pinger interface {
	Ping(ctx context.Context, url string, severity Severity, body string) error
}

// Options configures one supervised run.
type Options struct {
	// Tool is the wrapped binary, normally "duplicacy".
	Tool string

	// Notifier receives the final summary and any verbose per-line
	// messages. Required.
	Notifier Notifier

	// Pinger delivers the optional health-check ping. May be nil when no
	// URL can be configured.
	Pinger Pinger

	// Supervisor overrides for tests; zero value uses defaults.
	Supervisor Supervisor
}

// Run supervises one classified invocation end to end: spawn, stream
// classification, aggregation, severity resolution, notification and the
// optional ping. It returns the child's exit code (-1 when unknown) and an
// error for any fatal condition per the wrapper's error taxonomy
// (spawn failure, output read failure, notification delivery failure).
func Run(ctx context.Context, inv Invocation, opts Options) (int, error) {
	if inv.Unwrapped {
		return -1, ErrUnwrapped
	}

	if inv.LogAtStart {
		if err := opts.Notifier.Append(StartMessage(inv), SeverityInfo); err != nil {
			return -1, fmt.Errorf("start notification: %w", err)
		}
	}

	agg := &Aggregate{}
	classifier := NewClassifier(inv.Operation)

	sup := opts.Supervisor
	sup.Tool = opts.Tool

	exitCode, err := sup.Run(inv.Args, func(line string) error {
		ev := classifier.Classify(line)
		agg.Fold(ev)
		if inv.Verbose {
			if ev.IsWarning {
				if err := opts.Notifier.Append(LineMessage(inv, line), SeverityWarning); err != nil {
					return fmt.Errorf("verbose notification: %w", err)
				}
			}
			if ev.IsError {
				if err := opts.Notifier.Append(LineMessage(inv, line), SeverityError); err != nil {
					return fmt.Errorf("verbose notification: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return exitCode, err
	}

	severity := ResolveSeverity(exitCode, agg.Errors, agg.Warnings)
	message := BuildSummary(inv, agg, exitCode)

	log.WithFields(log.Fields{
		"operation": inv.Operation,
		"exit_code": exitCode,
		"errors":    agg.Errors,
		"warnings":  agg.Warnings,
		"severity":  severity.String(),
	}).Debug("run complete")

	if err := opts.Notifier.Append(message, severity); err != nil {
		return exitCode, fmt.Errorf("summary notification: %w", err)
	}

	if inv.HealthchecksURL != "" && opts.Pinger != nil {
		if err := opts.Pinger.Ping(ctx, inv.HealthchecksURL, severity, message); err != nil {
			// Non-fatal: the run's exit code belongs to the child.
			log.WithField("url", inv.HealthchecksURL).Warnf("health-check ping failed: %v", err)
			pingMsg := fmt.Sprintf("[duplicacy %s] %s ping failed, %v", inv.Operation, inv.HealthchecksURL, err)
			if err := opts.Notifier.Append(pingMsg, SeverityWarning); err != nil {
				return exitCode, fmt.Errorf("ping-failure notification: %w", err)
			}
		}
	}

	return exitCode, nil
}
