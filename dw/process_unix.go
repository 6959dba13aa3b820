//go:build unix

package dw

import (
	"os"
	"os/exec"
	"syscall"
)

// setProcessGroup configures the child to run in its own process group so
// forwarded signals reach any helpers it spawns.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// forwardSignal sends a signal to the child's entire process group, falling
// back to the single pid when the group cannot be resolved.
func forwardSignal(cmd *exec.Cmd, sig os.Signal) error {
	if cmd.Process == nil {
		return nil
	}
	pgid, err := syscall.Getpgid(cmd.Process.Pid)
	if err != nil {
		return cmd.Process.Signal(sig)
	}
	sigVal, ok := sig.(syscall.Signal)
	if !ok {
		return cmd.Process.Signal(sig)
	}
	return syscall.Kill(-pgid, sigVal)
}

// exitCodeFromError extracts the exit code from an exec.ExitError.
func exitCodeFromError(exitErr *exec.ExitError) (int, bool) {
	waitStatus, ok := exitErr.Sys().(syscall.WaitStatus)
	if ok {
		return waitStatus.ExitStatus(), true
	}
	return 0, false
}

// interruptSignals returns the termination-request signals relayed to the
// child.
func interruptSignals() []os.Signal {
	return []os.Signal{syscall.SIGINT, syscall.SIGTERM}
}

// ExecUnwrapped replaces the wrapper's process image with the tool, handing
// it the original argument list untouched. It does not return on success.
func ExecUnwrapped(tool string, args []string) error {
	path, err := exec.LookPath(tool)
	if err != nil {
		return err
	}
	argv := append([]string{tool}, args...)
	return syscall.Exec(path, argv, os.Environ())
}
