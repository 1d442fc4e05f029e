package version

import (
	"fmt"
	"runtime"
)

// Populated by the linker:
//
//	-ldflags "-X github.com/grovetools/xstatus/version.Version=v0.3.0 ..."
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
	X11       bool   `json:"x11"`
}

// GetInfo returns the build information of this binary.
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		X11:       x11Enabled,
	}
}

// String returns a formatted multi-line description.
func (i Info) String() string {
	x11 := "no (stub)"
	if i.X11 {
		x11 = "yes"
	}
	return fmt.Sprintf(
		"Version:\t%s\nCommit:\t\t%s\nBuild Date:\t%s\nGo Version:\t%s\nPlatform:\t%s\nX11:\t\t%s",
		i.Version, i.Commit, i.BuildDate, i.GoVersion, i.Platform, x11,
	)
}
