package tui

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/Mr-Dark-debug/treepeek/pkg/fields"
	"github.com/Mr-Dark-debug/treepeek/pkg/layout"
	"github.com/Mr-Dark-debug/treepeek/pkg/rows"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrInvalidAttrs is returned by NewModel when the initial attribute
// selection cannot be read from the root.
var ErrInvalidAttrs = errors.New("invalid attribute selection")

// Config holds the navigator's fixed settings.
type Config struct {
	Accessors fields.Accessors

	// Rows is the number of levels drawn below the root-of-view.
	Rows int
	// CellWidth is the width every token is centered in.
	CellWidth int
	// Width is the terminal width used until the first resize message.
	Width int

	// Attrs selects the attribute paths shown for each node. Ignored when
	// NodeFunc is set.
	Attrs []string
	// NodeFunc overrides how a node is shown.
	NodeFunc rows.NodeFunc
}

// ────────────────────────────────────────────────────────────
// Model
// ────────────────────────────────────────────────────────────

// Model is the BubbleTea model for the tree navigator. All of its state is
// changed in Update; View only reads it.
type Model struct {
	acc       fields.Accessors
	maxRows   int
	cellWidth int

	// Display state
	view      any   // root-of-view, may be absent
	depth     int   // levels below the tree's root
	trail     []any // nodes the view descended from, innermost last
	attrs     []string
	nodeFunc  rows.NodeFunc
	custom    bool // nodeFunc came from Config.NodeFunc
	prevInput string

	// UI state
	input  string
	width  int
	height int
	frame  string

	// Status
	statusMsg string
	quitting  bool
	err       error
}

// NewModel creates a navigator over tree and renders the first frame.
func NewModel(tree any, cfg Config) (Model, error) {
	acc := cfg.Accessors.WithDefaults()
	if err := acc.Validate(); err != nil {
		return Model{}, err
	}

	m := Model{
		acc:       acc,
		maxRows:   cfg.Rows,
		cellWidth: cfg.CellWidth,
		width:     cfg.Width,
		view:      acc.Root(tree),
	}
	if m.maxRows <= 0 {
		m.maxRows = rows.DefaultMaxRows
	}
	if m.cellWidth <= 0 {
		m.cellWidth = layout.DefaultCellWidth
	}

	switch {
	case cfg.NodeFunc != nil:
		m.nodeFunc = cfg.NodeFunc
		m.custom = true
	case len(cfg.Attrs) > 0:
		if err := m.checkAttrs(cfg.Attrs); err != nil {
			return Model{}, errors.Mark(err, ErrInvalidAttrs)
		}
		m.setAttrs(cfg.Attrs)
	default:
		m.nodeFunc = rows.ValueFunc(acc)
	}

	if err := m.render(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// Err returns the fault that ended the loop, if any. A user quit is not a
// fault.
func (m Model) Err() error { return m.err }

// Current returns the root-of-view.
func (m Model) Current() any      { return m.view }
func (m Model) Depth() int        { return m.depth }
func (m Model) Attrs() []string   { return m.attrs }
func (m Model) Frame() string     { return m.frame }
func (m Model) StatusMsg() string { return m.statusMsg }

// ────────────────────────────────────────────────────────────
// Init / Update
// ────────────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if err := m.render(); err != nil {
			return m.fail(err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey edits the prompt line and submits it on enter.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEnter:
		return m.submit()

	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}

	case tea.KeyEsc:
		m.input = ""
		m.statusMsg = ""

	case tea.KeySpace:
		m.input += " "

	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m, nil
}

// submit runs the command on the prompt line.
func (m Model) submit() (tea.Model, tea.Cmd) {
	raw := m.input
	m.input = ""

	c := m.parse(raw)
	switch c.kind {
	case cmdInvalid:
		m.statusMsg = fmt.Sprintf("invalid input %q", c.raw)
		return m, nil
	case cmdQuit:
		m.quitting = true
		return m, tea.Quit
	}

	m.apply(c)
	m.prevInput = c.raw
	m.statusMsg = ""
	if err := m.render(); err != nil {
		return m.fail(err)
	}
	return m, nil
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.err = err
	m.quitting = true
	return m, tea.Quit
}

// ────────────────────────────────────────────────────────────
// Rendering
// ────────────────────────────────────────────────────────────

// render rebuilds the tree frame for the current display state.
func (m *Model) render() error {
	grid := rows.Build(m.view, m.maxRows, m.acc.Children)
	vals, err := rows.Stringify(grid, m.nodeFunc)
	if err != nil {
		return errors.Wrapf(err, "rendering view at depth %d", m.depth)
	}
	m.frame = layout.Format(vals, m.width, m.cellWidth)
	return nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(renderHeader(&m))
	b.WriteString("\n\n")
	b.WriteString(m.frame)
	b.WriteString("\n\n")
	b.WriteString(renderPrompt(&m))
	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(statusErrStyle.Render(m.statusMsg))
	}
	b.WriteString("\n")
	return b.String()
}
