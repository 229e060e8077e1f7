// Package termsize reports the size of the controlling terminal.
//
// The lookup order is the COLUMNS and LINES environment variables, then the
// terminal attached to the given file descriptor, then a fixed fallback of
// 96x20 for output that is not a terminal.
package termsize

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

// Fallback size used when nothing else is known.
const (
	FallbackColumns = 96
	FallbackLines   = 20
)

// Get returns the columns and lines available on fd.
func Get(fd int) (columns, lines int) {
	columns = envInt("COLUMNS")
	lines = envInt("LINES")

	if columns <= 0 || lines <= 0 {
		if w, h, err := term.GetSize(fd); err == nil {
			if columns <= 0 {
				columns = w
			}
			if lines <= 0 {
				lines = h
			}
		}
	}

	if columns <= 0 {
		columns = FallbackColumns
	}
	if lines <= 0 {
		lines = FallbackLines
	}
	return columns, lines
}

// Columns returns the width of standard output.
func Columns() int {
	columns, _ := Get(int(os.Stdout.Fd()))
	return columns
}

func envInt(key string) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}
	return n
}
