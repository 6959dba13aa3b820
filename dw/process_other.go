//go:build !unix

package dw

import (
	"errors"
	"os"
	"os/exec"
)

func setProcessGroup(_ *exec.Cmd) {}

func forwardSignal(cmd *exec.Cmd, sig os.Signal) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Signal(sig)
}

func exitCodeFromError(exitErr *exec.ExitError) (int, bool) {
	return exitErr.ExitCode(), true
}

func interruptSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}

// ExecUnwrapped runs the tool with all stdio inherited and exits with its
// code. Process-image replacement is not available off unix, so this is the
// closest drop-in equivalent.
func ExecUnwrapped(tool string, args []string) error {
	cmd := exec.Command(tool, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	if err == nil {
		os.Exit(0)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.ExitCode())
	}
	return err
}
