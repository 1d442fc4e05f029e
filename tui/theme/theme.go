// Package theme holds the colours shared by the help output and the preview.
package theme

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const defaultThemeName = "kanagawa"

// --- Kanagawa Dragon (dark) palette ---
const (
	kanagawaGreen     = "#98BB6C"
	kanagawaYellow    = "#FF9E3B"
	kanagawaRed       = "#FF5D62"
	kanagawaOrange    = "#FFA066"
	kanagawaCyan      = "#7E9CD8"
	kanagawaViolet    = "#957FB8"
	kanagawaLightText = "#DCD7BA"
	kanagawaMutedText = "#727169"
	kanagawaBorder    = "#363646"
)

// --- Terminal (ANSI-friendly) palette ---
const (
	terminalGreen     = "2"
	terminalYellow    = "3"
	terminalRed       = "1"
	terminalOrange    = "208"
	terminalCyan      = "6"
	terminalViolet    = "5"
	terminalLightText = "7"
	terminalMutedText = "8"
	terminalBorder    = "8"
)

// Colors is the palette of a theme.
type Colors struct {
	Green     lipgloss.TerminalColor
	Yellow    lipgloss.TerminalColor
	Red       lipgloss.TerminalColor
	Orange    lipgloss.TerminalColor
	Cyan      lipgloss.TerminalColor
	Violet    lipgloss.TerminalColor
	LightText lipgloss.TerminalColor
	MutedText lipgloss.TerminalColor
	Border    lipgloss.TerminalColor
}

// Theme bundles a palette with the styles derived from it.
type Theme struct {
	Name   string
	Colors Colors

	Title   lipgloss.Style
	Header  lipgloss.Style
	Command lipgloss.Style
	Flag    lipgloss.Style
	Muted   lipgloss.Style
	Italic  lipgloss.Style
	Error   lipgloss.Style
	Box     lipgloss.Style
}

// DefaultTheme is selected by $XSTATUS_THEME ("kanagawa" or "terminal").
var DefaultTheme = New(os.Getenv("XSTATUS_THEME"))

// New builds the named theme; unknown names get the default.
func New(name string) *Theme {
	name = strings.ToLower(strings.TrimSpace(name))

	var c Colors
	switch name {
	case "terminal":
		c = Colors{
			Green:     lipgloss.Color(terminalGreen),
			Yellow:    lipgloss.Color(terminalYellow),
			Red:       lipgloss.Color(terminalRed),
			Orange:    lipgloss.Color(terminalOrange),
			Cyan:      lipgloss.Color(terminalCyan),
			Violet:    lipgloss.Color(terminalViolet),
			LightText: lipgloss.Color(terminalLightText),
			MutedText: lipgloss.Color(terminalMutedText),
			Border:    lipgloss.Color(terminalBorder),
		}
	default:
		name = defaultThemeName
		c = Colors{
			Green:     lipgloss.Color(kanagawaGreen),
			Yellow:    lipgloss.Color(kanagawaYellow),
			Red:       lipgloss.Color(kanagawaRed),
			Orange:    lipgloss.Color(kanagawaOrange),
			Cyan:      lipgloss.Color(kanagawaCyan),
			Violet:    lipgloss.Color(kanagawaViolet),
			LightText: lipgloss.Color(kanagawaLightText),
			MutedText: lipgloss.Color(kanagawaMutedText),
			Border:    lipgloss.Color(kanagawaBorder),
		}
	}

	return &Theme{
		Name:    name,
		Colors:  c,
		Title:   lipgloss.NewStyle().Bold(true).Foreground(c.Orange),
		Header:  lipgloss.NewStyle().Italic(true).Foreground(c.Orange),
		Command: lipgloss.NewStyle().Bold(true).Foreground(c.Cyan),
		Flag:    lipgloss.NewStyle().Foreground(c.Violet),
		Muted:   lipgloss.NewStyle().Foreground(c.MutedText),
		Italic:  lipgloss.NewStyle().Italic(true),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(c.Red),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.Cyan).
			Padding(0, 1),
	}
}
