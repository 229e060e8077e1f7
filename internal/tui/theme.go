package tui

import "github.com/charmbracelet/lipgloss"

// ────────────────────────────────────────────────────────────
// Color Palette: GitHub Dark aesthetic
// ────────────────────────────────────────────────────────────
//
// All colors are defined here. No ad-hoc color literals anywhere.
// The tree frame itself is drawn unstyled so its column arithmetic
// stays exact; only the chrome around it is colored.

var (
	// Base
	colorBgSurface = lipgloss.Color("#1c2128")

	// Text
	colorText      = lipgloss.Color("#e6edf3")
	colorTextDim   = lipgloss.Color("#8b949e")
	colorTextMuted = lipgloss.Color("#484f58")

	// Accents
	colorBlue   = lipgloss.Color("#58a6ff")
	colorRed    = lipgloss.Color("#f85149")
	colorYellow = lipgloss.Color("#d29922")
)

// ────────────────────────────────────────────────────────────
// Component Styles
// ────────────────────────────────────────────────────────────

// Header bar
var (
	headerBarStyle = lipgloss.NewStyle().
			Background(colorBgSurface).
			Foreground(colorText).
			Padding(0, 1)

	headerBrandStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorBlue)

	headerSepStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	headerMetaStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	headerAttrStyle = lipgloss.NewStyle().
			Foreground(colorYellow)
)

// Prompt line
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	promptMoveStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(colorText)

	cursorStyle = lipgloss.NewStyle().
			Background(colorBlue).
			Foreground(colorText)

	statusErrStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)
