package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"strings"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *StatusError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *StatusError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// HelperMissing reports that some of the required helper commands cannot be invoked.
// The message names every required helper, the details list the missing ones.
func HelperMissing(required, missing []string) *StatusError {
	quoted := make([]string, len(required))
	for i, n := range required {
		quoted[i] = "`" + n + "`"
	}
	return New(ErrCodeHelperMissing, fmt.Sprintf("%s commands are required", strings.Join(quoted, " and "))).
		WithDetail("required", required).
		WithDetail("missing", missing)
}

// CommandFailed creates a command execution failure error
func CommandFailed(cmd string, err error) *StatusError {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return Wrap(err, ErrCodeCommandTimeout, fmt.Sprintf("command timed out: %s", cmd)).
			WithDetail("command", cmd)
	}

	statusErr := Wrap(err, ErrCodeCommandFailed, fmt.Sprintf("command failed: %s", cmd)).
		WithDetail("command", cmd)

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		statusErr = statusErr.WithDetail("exitCode", exitErr.ExitCode())
	}

	return statusErr
}

// SysfsRead creates an error for an unreadable pseudo-file.
func SysfsRead(path string, err error) *StatusError {
	return Wrap(err, ErrCodeSysfsRead, fmt.Sprintf("failed to read %s", path)).
		WithDetail("path", path)
}

// Parse creates an error for helper output that does not have the expected shape.
func Parse(source, reason string) *StatusError {
	return New(ErrCodeParse, fmt.Sprintf("unexpected %s output: %s", source, reason)).
		WithDetail("source", source)
}

// CollectorFailed wraps a metric read failure with the collector name.
func CollectorFailed(name string, err error) *StatusError {
	return Wrap(err, ErrCodeCollectorFailed, fmt.Sprintf("collector '%s' failed", name)).
		WithDetail("collector", name)
}

// DisplayUnavailable creates an error for a display that cannot be opened.
func DisplayUnavailable(name string) *StatusError {
	if name == "" {
		name = "$DISPLAY"
	}
	return New(ErrCodeDisplayUnavailable, fmt.Sprintf("cannot open display %s", name)).
		WithDetail("display", name)
}

// AlreadyRunning creates an error for a second instance.
func AlreadyRunning(pid int) *StatusError {
	return New(ErrCodeAlreadyRunning, fmt.Sprintf("xstatus already running with PID %d", pid)).
		WithDetail("pid", pid)
}
