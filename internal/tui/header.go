package tui

import (
	"fmt"
	"strings"
)

// renderHeader produces the top bar:
//
//	TREEPEEK  |  depth 2  |  value:height
func renderHeader(m *Model) string {
	brand := headerBrandStyle.Render("TREEPEEK")
	sep := headerSepStyle.Render(" │ ")

	shown := "value"
	switch {
	case len(m.attrs) > 0:
		shown = strings.Join(m.attrs, ":")
	case m.custom:
		shown = "custom"
	}

	parts := []string{
		brand,
		sep,
		headerMetaStyle.Render(fmt.Sprintf("depth %d", m.depth)),
		sep,
		headerAttrStyle.Render(truncate(shown, maxInt(m.width/2, 10))),
	}

	return headerBarStyle.Width(m.width).Render(strings.Join(parts, ""))
}

// renderPrompt produces the command line:
//
//	q(uit)/attr/adw: value:he█
func renderPrompt(m *Model) string {
	label := promptStyle.Render("q(uit)/attr/") +
		promptMoveStyle.Render(m.moves()) +
		promptStyle.Render(": ")
	return label + inputStyle.Render(m.input) + cursorStyle.Render(" ")
}
