package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/xstatus/errors"
)

// Exit statuses.
const (
	ExitOK            = 0
	ExitHelperMissing = 1
	ExitFailure       = 2
)

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.GetCode(err) == errors.ErrCodeHelperMissing:
		return ExitHelperMissing
	default:
		return ExitFailure
	}
}

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler writing to stderr
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle prints a message for err and returns it unchanged.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	statusErr, _ := errors.As(err)

	switch errors.GetCode(err) {
	case errors.ErrCodeHelperMissing:
		// Plain diagnostic, matching what scripts grep for.
		fmt.Fprintln(h.Out, statusErr.Message)
		return err

	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(h.Out, "❌ Configuration not found: %v\n", statusErr.Details["path"])
		fmt.Fprintf(h.Out, "Run 'xstatus config show' to print the defaults.\n")

	case errors.ErrCodeConfigInvalid, errors.ErrCodeConfigValidation:
		fmt.Fprintf(h.Out, "❌ %s\n", statusErr.Message)
		fmt.Fprintf(h.Out, "Run 'xstatus config schema' to see the accepted keys.\n")

	case errors.ErrCodeDisplayUnavailable:
		fmt.Fprintf(h.Out, "❌ Cannot open X display %v\n", statusErr.Details["display"])
		fmt.Fprintf(h.Out, "Check $DISPLAY or set 'display' in the config. 'xstatus once' works without X.\n")

	case errors.ErrCodeAlreadyRunning:
		fmt.Fprintf(h.Out, "❌ xstatus is already running (PID %v)\n", statusErr.Details["pid"])
		fmt.Fprintf(h.Out, "Stop it with 'xstatus stop'.\n")

	case errors.ErrCodeCollectorFailed:
		fmt.Fprintf(h.Out, "❌ Reading %v failed: %v\n", statusErr.Details["collector"], statusErr.Cause)

	default:
		fmt.Fprintf(h.Out, "❌ Error: %v\n", err)
	}

	if h.Verbose && statusErr != nil {
		fmt.Fprintf(h.Out, "\nError details:\n%s\n", statusErr.ToJSON())
	}
	return err
}
