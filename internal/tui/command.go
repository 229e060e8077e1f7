package tui

import (
	"strings"

	"github.com/Mr-Dark-debug/treepeek/pkg/fields"
	"github.com/Mr-Dark-debug/treepeek/pkg/rows"
)

type commandKind int

const (
	cmdInvalid commandKind = iota
	cmdQuit
	cmdLeft
	cmdRight
	cmdUp
	cmdAttrs
)

// command is one parsed prompt line.
type command struct {
	kind  commandKind
	attrs []string
	raw   string // input after empty-line substitution
}

var quitWords = map[string]bool{"q": true, "quit": true, "exit": true}

// parse classifies a prompt line against the current display state. An
// empty line repeats the last accepted one. Anything that is not a quit
// word or an enabled move is read as a colon-separated attribute list,
// which must be readable on the root-of-view.
func (m *Model) parse(input string) command {
	if input == "" {
		input = m.prevInput
	}
	c := command{kind: cmdInvalid, raw: input}
	if input == "" {
		return c
	}
	if quitWords[input] {
		c.kind = cmdQuit
		return c
	}

	present := !fields.IsAbsent(m.view)
	switch {
	case input == "a" && present:
		c.kind = cmdLeft
		return c
	case input == "d" && present:
		c.kind = cmdRight
		return c
	case input == "w" && m.canClimb():
		c.kind = cmdUp
		return c
	}

	attrs := strings.Split(input, ":")
	if err := m.checkAttrs(attrs); err != nil {
		return c
	}
	c.kind = cmdAttrs
	c.attrs = attrs
	return c
}

// apply performs an accepted move or attribute switch.
func (m *Model) apply(c command) {
	switch c.kind {
	case cmdLeft:
		m.descend(m.acc.Left(m.view))
	case cmdRight:
		m.descend(m.acc.Right(m.view))
	case cmdUp:
		m.climb()
	case cmdAttrs:
		m.setAttrs(c.attrs)
	}
}

func (m *Model) descend(child any) {
	m.trail = append(m.trail, m.view)
	m.view = child
	m.depth++
}

// climb follows the parent link of the root-of-view. An absent view has no
// parent link, so it returns to the node it was entered from.
func (m *Model) climb() {
	from := m.trail[len(m.trail)-1]
	m.trail = m.trail[:len(m.trail)-1]
	if fields.IsAbsent(m.view) || m.acc.Parent == nil {
		m.view = from
	} else {
		m.view = m.acc.Parent(m.view)
	}
	m.depth--
}

// canClimb reports whether "w" is currently a move.
func (m *Model) canClimb() bool {
	if m.depth == 0 || len(m.trail) == 0 {
		return false
	}
	return m.acc.Parent != nil || fields.IsAbsent(m.view)
}

// moves lists the move keys currently enabled, for the prompt.
func (m *Model) moves() string {
	s := "ad"
	if m.canClimb() {
		s += "w"
	}
	return s
}

func (m *Model) checkAttrs(attrs []string) error {
	for _, a := range attrs {
		if _, err := m.acc.Lookup(m.view, a); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) setAttrs(attrs []string) {
	m.attrs = append([]string(nil), attrs...)
	m.nodeFunc = rows.AttrsFunc(m.acc, m.attrs)
}
