// Package terminal reports properties of the attached terminal.
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

// IsInteractive returns true when stdout is a terminal rather than a pipe or file.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// FitScale returns the smallest integer step that makes a w×h raster fit into
// the terminal when every character cell shows two vertically stacked pixels.
func FitScale(w, h int) int {
	cols, rows := GetSize()
	rows-- // leave room for the prompt
	scale := 1
	for w/scale > cols || (h/scale+1)/2 > rows {
		scale++
	}
	return scale
}
