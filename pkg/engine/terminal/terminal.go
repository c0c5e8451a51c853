package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// IsInteractive reports whether stdout is attached to a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Fit returns how many map rows and columns fit in a width x height screen
// once reservedRows lines and reservedCols columns are taken by other panes.
// The result never drops below minRows x minCols.
func Fit(width, height, reservedRows, reservedCols, minRows, minCols int) (rows, cols int) {
	return max(minRows, height-reservedRows), max(minCols, width-reservedCols)
}

// Clamp returns the top-left corner of a rows x cols window centred on
// (cx, cy) and kept inside a mapW x mapH map. When the map is smaller than the
// window the map is pinned to the origin.
func Clamp(cx, cy, rows, cols, mapW, mapH int) (x0, y0 int) {
	x0 = min(max(0, cx-cols/2), max(0, mapW-cols))
	y0 = min(max(0, cy-rows/2), max(0, mapH-rows))
	return x0, y0
}
