// Package command runs the external helpers (mixer, backlight) whose output
// the collectors parse.
package command

import (
	"context"
	"strings"
	"time"

	"github.com/grovetools/xstatus/errors"
)

// Runner returns the standard output of a helper command.
type Runner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs helpers as child processes.
type ExecRunner struct {
	executor Executor
	timeout  time.Duration
}

// NewExecRunner creates a Runner backed by RealExecutor. A zero timeout lets a
// helper run for as long as it likes.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	return NewExecRunnerWithExecutor(&RealExecutor{}, timeout)
}

// NewExecRunnerWithExecutor creates a Runner with a custom Executor.
func NewExecRunnerWithExecutor(exec Executor, timeout time.Duration) *ExecRunner {
	return &ExecRunner{executor: exec, timeout: timeout}
}

// Output runs the command and returns its stdout.
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	out, err := r.executor.CommandContext(ctx, name, args...).Output() //nolint:gosec // helper names are validated by config
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, errors.CommandFailed(commandLine(name, args), err)
	}
	return out, nil
}

func commandLine(name string, args []string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}

// WithTimeout returns a copy of r with a different timeout.
func (r *ExecRunner) WithTimeout(timeout time.Duration) *ExecRunner {
	return &ExecRunner{executor: r.executor, timeout: timeout}
}
