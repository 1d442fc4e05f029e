// Package statusline formats the metric readings into the root window name.
package statusline

import (
	"fmt"
	"strings"
)

// Line holds one cycle's readings.
type Line struct {
	Volume     string `json:"volume"`
	Brightness string `json:"brightness"`
	Battery    string `json:"battery"`
	Time       string `json:"time"`
}

// String renders the line with embedded newlines removed.
func (l Line) String() string {
	s := fmt.Sprintf("[V: %s] [B: %s] [%s] [%s]", l.Volume, l.Brightness, l.Battery, l.Time)
	return strings.ReplaceAll(s, "\n", "")
}
