// Package rows expands a binary tree breadth-first into fixed rows of node
// slots, one row per depth, and turns those slots into display tokens.
package rows

import (
	"fmt"
	"strings"

	"github.com/Mr-Dark-debug/treepeek/pkg/fields"
)

// DefaultMaxRows is the number of levels shown when the caller has no
// preference.
const DefaultMaxRows = 5

// Absent is the token printed for an empty slot.
const Absent = "_"

// ChildrenFunc returns the left and right children of a node.
type ChildrenFunc func(node any) (left, right any)

// NodeFunc turns a present node into its display token.
type NodeFunc func(node any) (string, error)

// Build expands start into at most maxRows rows. Row 0 holds start alone and
// row k+1 holds the left and right child of every slot of row k, with two
// absent slots under an absent one, so row k always has 2^k slots.
// Expansion stops at the first row that would be entirely absent; that row
// is not part of the result.
func Build(start any, maxRows int, children ChildrenFunc) [][]any {
	if maxRows < 1 {
		maxRows = 1
	}
	out := [][]any{{start}}
	for len(out) < maxRows {
		next := expand(out[len(out)-1], children)
		if allAbsent(next) {
			break
		}
		out = append(out, next)
	}
	return out
}

func expand(row []any, children ChildrenFunc) []any {
	next := make([]any, 0, 2*len(row))
	for _, n := range row {
		if fields.IsAbsent(n) {
			next = append(next, nil, nil)
			continue
		}
		l, r := children(n)
		next = append(next, l, r)
	}
	return next
}

func allAbsent(row []any) bool {
	for _, n := range row {
		if !fields.IsAbsent(n) {
			return false
		}
	}
	return true
}

// Stringify maps every slot through fn, using Absent for empty slots. The
// first error from fn aborts the whole conversion.
func Stringify(grid [][]any, fn NodeFunc) ([][]string, error) {
	out := make([][]string, len(grid))
	for depth, row := range grid {
		vals := make([]string, len(row))
		for i, n := range row {
			if fields.IsAbsent(n) {
				vals[i] = Absent
				continue
			}
			s, err := fn(n)
			if err != nil {
				return nil, err
			}
			vals[i] = s
		}
		out[depth] = vals
	}
	return out, nil
}

// ValueFunc shows the node's value field.
func ValueFunc(acc fields.Accessors) NodeFunc {
	return func(node any) (string, error) {
		return fmt.Sprint(acc.Value(node)), nil
	}
}

// AttrsFunc shows the named attribute paths of a node joined by colons,
// e.g. "10:2" for attrs value and height.
func AttrsFunc(acc fields.Accessors, attrs []string) NodeFunc {
	lookup := acc.WithDefaults().Lookup
	return func(node any) (string, error) {
		parts := make([]string, len(attrs))
		for i, a := range attrs {
			v, err := lookup(node, a)
			if err != nil {
				return "", err
			}
			parts[i] = fmt.Sprint(v)
		}
		return strings.Join(parts, ":"), nil
	}
}
