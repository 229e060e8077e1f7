// Package treeview prints binary trees whose shape is not known in advance.
//
// A Renderer is built once per tree type, either from an explicit
// fields.Accessors record or by discovering field names with Resolve, and is
// then used for static renderings (String, RowsFrom) or the interactive
// navigator (Display).
package treeview

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/Mr-Dark-debug/treepeek/internal/tui"
	"github.com/Mr-Dark-debug/treepeek/pkg/fields"
	"github.com/Mr-Dark-debug/treepeek/pkg/layout"
	"github.com/Mr-Dark-debug/treepeek/pkg/rows"
	"github.com/Mr-Dark-debug/treepeek/pkg/termsize"

	tea "github.com/charmbracelet/bubbletea"
)

// Empty is the rendering of a tree without a root.
const Empty = "Empty"

// Renderer draws trees through a fixed set of accessors.
type Renderer struct {
	acc fields.Accessors
}

// New returns a Renderer using acc. A nil acc.Lookup falls back to
// fields.Lookup. New panics if a required accessor is missing.
func New(acc fields.Accessors) *Renderer {
	acc = acc.WithDefaults()
	if err := acc.Validate(); err != nil {
		panic(err)
	}
	return &Renderer{acc: acc}
}

// Resolve discovers the field names of tree's type and returns a Renderer
// reading them. It fails with a *fields.ResolutionError when the type does
// not follow a recognizable naming scheme.
func Resolve(tree any) (*Renderer, error) {
	tbl, err := fields.Resolve(tree)
	if err != nil {
		return nil, err
	}
	return New(tbl.Accessors()), nil
}

// MustResolve is like Resolve but panics on failure.
func MustResolve(tree any) *Renderer {
	return New(fields.MustResolve(tree).Accessors())
}

// Accessors returns the accessors the Renderer reads trees with.
func (r *Renderer) Accessors() fields.Accessors { return r.acc }

// String renders the first levels of tree with the node values, sized to
// the terminal. A tree without a root renders as Empty.
func (r *Renderer) String(tree any) string {
	root := r.acc.Root(tree)
	if fields.IsAbsent(root) {
		return Empty
	}
	s, err := r.RowsFrom(root, rows.DefaultMaxRows, rows.ValueFunc(r.acc), layout.DefaultCellWidth)
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return s
}

// RowsFrom renders numRows levels below root, showing each node through fn
// in cells maxLen wide, across the current terminal width.
func (r *Renderer) RowsFrom(root any, numRows int, fn rows.NodeFunc, maxLen int) (string, error) {
	return r.Format(root, numRows, fn, maxLen, termsize.Columns())
}

// Format is RowsFrom with an explicit width.
func (r *Renderer) Format(root any, numRows int, fn rows.NodeFunc, maxLen, width int) (string, error) {
	if fn == nil {
		fn = rows.ValueFunc(r.acc)
	}
	vals, err := rows.Stringify(rows.Build(root, numRows, r.acc.Children), fn)
	if err != nil {
		return "", errors.Wrap(err, "rendering rows")
	}
	return layout.Format(vals, width, maxLen), nil
}

// Display runs the interactive navigator on tree until the user quits.
//
// Quitting, ctrl+c, SIGINT and cancellation of ctx all end the loop without
// an error. A failure to render a node ends it with that error. The
// terminal is restored in every case before Display returns.
func (r *Renderer) Display(ctx context.Context, tree any, opts ...Option) error {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if fields.IsAbsent(r.acc.Root(tree)) {
		_, err := fmt.Fprintln(o.out, Empty)
		return err
	}

	m, err := tui.NewModel(tree, tui.Config{
		Accessors: r.acc,
		Rows:      o.rows,
		CellWidth: o.cellWidth,
		Width:     termsize.Columns(),
		Attrs:     o.attrs,
		NodeFunc:  o.nodeFunc,
	})
	if err != nil {
		return err
	}

	progOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(o.out)}
	if o.in != nil {
		progOpts = append(progOpts, tea.WithInput(o.in))
	}
	if o.altScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	final, err := tea.NewProgram(m, progOpts...).Run()
	if err := outcome(ctx, final, err); err != nil {
		log.Printf("treeview: display ended with a fault: %v", err)
		return err
	}
	return nil
}

// outcome separates the ways a user ends the loop from genuine faults.
func outcome(ctx context.Context, final tea.Model, err error) error {
	if err != nil {
		switch {
		case errors.Is(err, tea.ErrInterrupted):
			return nil
		case errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil:
			return nil
		}
		return errors.Wrap(err, "running tree display")
	}
	if m, ok := final.(tui.Model); ok {
		return m.Err()
	}
	return nil
}

type options struct {
	rows      int
	cellWidth int
	attrs     []string
	nodeFunc  rows.NodeFunc
	in        io.Reader
	out       io.Writer
	altScreen bool
}

func defaultOptions() options {
	return options{
		rows:      rows.DefaultMaxRows,
		cellWidth: layout.DefaultCellWidth,
		out:       os.Stdout,
	}
}

// Option configures Display.
type Option func(*options)

// WithRows sets the number of levels drawn.
func WithRows(n int) Option { return func(o *options) { o.rows = n } }

// WithCellWidth sets the width each node token is centered in.
func WithCellWidth(n int) Option { return func(o *options) { o.cellWidth = n } }

// WithAttrs starts the navigator showing the given attribute paths.
func WithAttrs(attrs ...string) Option { return func(o *options) { o.attrs = attrs } }

// WithNodeFunc starts the navigator showing nodes through fn.
func WithNodeFunc(fn rows.NodeFunc) Option { return func(o *options) { o.nodeFunc = fn } }

// WithInput reads keys from r instead of the terminal.
func WithInput(r io.Reader) Option { return func(o *options) { o.in = r } }

// WithOutput draws to w instead of standard output.
func WithOutput(w io.Writer) Option { return func(o *options) { o.out = w } }

// WithAltScreen draws in the terminal's alternate screen buffer.
func WithAltScreen(on bool) Option { return func(o *options) { o.altScreen = on } }
