package dw

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"
)

// DefaultMaxLineLength bounds a single scanned output line.
const DefaultMaxLineLength = 1 * 1024 * 1024

// Supervisor owns the wrapped tool's process for one run: it spawns the
// child with stdout piped, relays termination signals to it, and drives the
// line-buffered read loop until the child exits.
type Supervisor struct {
	// Tool is the wrapped binary, normally "duplicacy".
	Tool string

	// Out receives every child stdout line verbatim so callers tailing the
	// wrapper keep live visibility. Defaults to os.Stdout.
	Out io.Writer

	// MaxLineLength bounds one scanned line; zero means
	// DefaultMaxLineLength.
	MaxLineLength int
}

// Run spawns the tool with args, echoes each stdout line and hands it to
// onLine, then reports the child's exit code. SIGINT and SIGTERM arriving
// while the child runs are forwarded to its process group; each received
// signal is forwarded immediately, with no grace window before a repeat.
//
// The returned exit code is -1 when the child never reported one (killed
// before a wait status was available). A spawn failure or an unreadable
// output stream is returned as an error; an error from onLine stops
// classification but the pipe is still drained to the child's exit so the
// child cannot block on a full pipe.
func (s *Supervisor) Run(args []string, onLine func(line string) error) (int, error) {
	out := s.Out
	if out == nil {
		out = os.Stdout
	}
	maxLine := s.MaxLineLength
	if maxLine == 0 {
		maxLine = DefaultMaxLineLength
	}

	cmd := exec.Command(s.Tool, args...)
	cmd.Env = os.Environ()
	cmd.Stderr = os.Stderr
	setProcessGroup(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return -1, fmt.Errorf("creating stdout pipe: %w", err)
	}

	// Handlers are installed before the spawn. A signal arriving before the
	// child exists terminates the wrapper itself; afterwards every signal
	// is a best-effort forward to the child's process group.
	sigc := make(chan os.Signal, 2)
	signal.Notify(sigc, interruptSignals()...)
	done := make(chan struct{})
	go func() {
		defer signal.Stop(sigc)
		for {
			select {
			case sig := <-sigc:
				if cmd.Process == nil {
					os.Exit(1)
				}
				_ = forwardSignal(cmd, sig)
			case <-done:
				return
			}
		}
	}()
	defer close(done)

	if err := cmd.Start(); err != nil {
		return -1, fmt.Errorf("starting %s: %w", s.Tool, err)
	}

	scanner := bufio.NewScanner(stdout)
	buf := make([]byte, 0, bufio.MaxScanTokenSize)
	scanner.Buffer(buf, maxLine)

	var lineErr error
	for scanner.Scan() {
		// Invalid byte sequences are replaced, never fatal; duplicacy's
		// output is UTF-8 but file names inside it need not be.
		line := strings.ToValidUTF8(scanner.Text(), "�")
		fmt.Fprintln(out, line)
		if lineErr == nil && onLine != nil {
			lineErr = onLine(line)
		}
	}
	scanErr := scanner.Err()

	waitErr := cmd.Wait()

	if scanErr != nil && !isIgnorableReadError(scanErr) {
		return exitCodeOf(cmd, waitErr), fmt.Errorf("reading %s output: %w", s.Tool, scanErr)
	}
	if lineErr != nil {
		return exitCodeOf(cmd, waitErr), lineErr
	}
	return exitCodeOf(cmd, waitErr), nil
}

// exitCodeOf extracts the child's exit code after Wait has returned.
func exitCodeOf(cmd *exec.Cmd, waitErr error) int {
	if waitErr == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		if code, ok := exitCodeFromError(exitErr); ok {
			return code
		}
	}
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	return -1
}

func isIgnorableReadError(err error) bool {
	if err == io.EOF {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "file already closed") ||
		strings.Contains(msg, "broken pipe")
}
