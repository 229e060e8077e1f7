// Package layout lays rows of tree tokens out across a fixed terminal width.
//
// Row k of the output holds 2^k cells. Every cell centers its token in a
// fixed cell width and is flanked by padding so the children of a slot fan
// out underneath it. Padding that cannot split evenly goes floor-left,
// ceil-right, and a running correction keeps the row's length on target
// cell by cell.
package layout

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
)

// DefaultCellWidth is the width every token is centered in.
const DefaultCellWidth = 4

// Format renders rows into a single string, one line per row. width is
// rounded up to an even number. Tokens wider than maxLen are kept whole.
// When every token fits in maxLen and the last row's cells fit in width,
// every line is exactly the rounded width long.
func Format(rows [][]string, width, maxLen int) string {
	if width < 0 {
		width = 0
	}
	width += width % 2

	lines := make([]string, 0, len(rows))
	perRow := 1
	for _, row := range rows {
		lines = append(lines, formatRow(row, perRow, width, maxLen))
		perRow *= 2
	}
	return strings.Join(lines, "\n")
}

func formatRow(row []string, n, width, maxLen int) string {
	eachGets := float64(width) / float64(n)
	split := float64(width-maxLen*n) / float64(2*n)
	left := strings.Repeat(" ", max(0, int(math.Floor(split))))
	right := strings.Repeat(" ", max(0, int(math.Ceil(split))))

	var b lineBuilder
	for x := 0; x < n; x++ {
		var tok string
		if x < len(row) {
			tok = row[x]
		}
		b.WriteString(left)
		b.WriteString(center(tok, maxLen))
		b.WriteString(right)

		current := float64(b.width) / float64(x+1)
		if eachGets < current {
			b.Trim()
		} else if eachGets > current {
			b.WriteString(" ")
		}
	}
	return b.String()
}

// center pads s to width the way Python's str.center does: the extra space
// of an odd margin goes to the left only when width is odd too.
func center(s string, width int) string {
	marg := width - runewidth.StringWidth(s)
	if marg <= 0 {
		return s
	}
	left := marg/2 + (marg & width & 1)
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", marg-left)
}

// lineBuilder accumulates a line and tracks its display width.
type lineBuilder struct {
	buf   []rune
	width int
}

func (b *lineBuilder) WriteString(s string) {
	for _, r := range s {
		b.buf = append(b.buf, r)
		b.width += runewidth.RuneWidth(r)
	}
}

// Trim drops the last rune.
func (b *lineBuilder) Trim() {
	if len(b.buf) == 0 {
		return
	}
	last := b.buf[len(b.buf)-1]
	b.buf = b.buf[:len(b.buf)-1]
	b.width -= runewidth.RuneWidth(last)
}

func (b *lineBuilder) String() string {
	return string(b.buf)
}
