package command

import (
	"os/exec"

	"github.com/grovetools/xstatus/errors"
)

// LookPathFunc resolves a command name to an executable path.
type LookPathFunc func(file string) (string, error)

// DefaultLookPath is exec.LookPath.
var DefaultLookPath LookPathFunc = exec.LookPath

// Missing returns the required helpers that cannot be resolved.
func Missing(lookPath LookPathFunc, required []string) []string {
	if lookPath == nil {
		lookPath = DefaultLookPath
	}
	var missing []string
	for _, name := range required {
		if _, err := lookPath(name); err != nil {
			missing = append(missing, name)
		}
	}
	return missing
}

// Preflight fails with HELPER_MISSING when any required helper cannot be invoked.
func Preflight(lookPath LookPathFunc, required []string) error {
	if missing := Missing(lookPath, required); len(missing) > 0 {
		return errors.HelperMissing(required, missing)
	}
	return nil
}
