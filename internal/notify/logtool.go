// Package notify implements the wrapper's notification sinks: the QNAP
// Notification Center via log_tool, and a styled console fallback for hosts
// without it.
package notify

import (
	"fmt"
	"os/exec"
	"strconv"

	"github.com/dkoosis/dw/dw"
)

// LogTool appends messages to the QNAP Notification Center by exec'ing the
// system log_tool binary.
type LogTool struct {
	User     string
	AppName  string
	Category string

	// run is swapped out in tests.
	run func(name string, args ...string) error
}

// NewLogTool returns a sink writing under the given user, application name
// and category.
func NewLogTool(user, appName, category string) *LogTool {
	return &LogTool{
		User:     user,
		AppName:  appName,
		Category: category,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// Append delivers one severity-tagged message. A non-zero log_tool exit is
// a hard error for the caller.
//
// The category goes through the -G alias: log_tool rejects the long
// --category spelling with an "unrecognized option" error.
func (l *LogTool) Append(message string, severity dw.Severity) error {
	args := []string{
		"--append", message,
		"--type", strconv.Itoa(int(severity)),
		"--user", l.User,
		"--app_name", l.AppName,
		"-G", l.Category,
	}
	if err := l.run("log_tool", args...); err != nil {
		return fmt.Errorf("log_tool append failed: %w", err)
	}
	return nil
}
