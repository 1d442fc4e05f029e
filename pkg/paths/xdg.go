// Package paths provides XDG-compliant path resolution for xstatus.
//
// Resolution order:
// 1. XSTATUS_HOME (portable root) → $XSTATUS_HOME/{config,state}
// 2. XDG env vars → $XDG_*_HOME/xstatus
// 3. Platform defaults → ~/.config/xstatus, ~/.local/state/xstatus
package paths

import (
	"os"
	"path/filepath"
)

const appName = "xstatus"

// getConfigHome returns the base config home directory.
func getConfigHome() string {
	if home := os.Getenv("XSTATUS_HOME"); home != "" {
		return filepath.Join(home, "config")
	}
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config")
	}
	return ""
}

// getStateHome returns the base state home directory.
func getStateHome() string {
	if home := os.Getenv("XSTATUS_HOME"); home != "" {
		return filepath.Join(home, "state")
	}
	if xdgStateHome := os.Getenv("XDG_STATE_HOME"); xdgStateHome != "" {
		return xdgStateHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "state")
	}
	return ""
}

// ConfigDir returns the xstatus configuration directory.
func ConfigDir() string {
	if home := os.Getenv("XSTATUS_HOME"); home != "" {
		return getConfigHome()
	}
	base := getConfigHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, appName)
}

// StateDir returns the xstatus state directory.
// Used for the pidfile and logs.
func StateDir() string {
	if home := os.Getenv("XSTATUS_HOME"); home != "" {
		return getStateHome()
	}
	base := getStateHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, appName)
}

// LogDir returns the directory holding per-component log files.
func LogDir() string {
	state := StateDir()
	if state == "" {
		return ""
	}
	return filepath.Join(state, "logs")
}

// PidFilePath returns the path to the xstatus PID file.
func PidFilePath() string {
	return filepath.Join(StateDir(), appName+".pid")
}

// ConfigCandidates returns the config file names searched in ConfigDir, in order.
func ConfigCandidates() []string {
	dir := ConfigDir()
	if dir == "" {
		return nil
	}
	return []string{
		filepath.Join(dir, appName+".yml"),
		filepath.Join(dir, appName+".yaml"),
		filepath.Join(dir, appName+".toml"),
	}
}
