// Package exploration tracks which tiles of each map the player has revealed.
package exploration

import (
	"errors"
	"fmt"
)

const (
	// MaxLevel is the highest exploration level a tile can reach
	MaxLevel = 5
	// LevelOpacity converts a level into a 0-255 opacity
	LevelOpacity = 51
	// ExploredOpacity is the opacity at which a tile counts as explored
	ExploredOpacity = 128
)

// ErrMalformedRuns is returned when a persisted run list cannot describe a table
var ErrMalformedRuns = errors.New("malformed exploration runs")

// Table is a width×height grid of exploration levels. It can be packed into
// run-length form for persistence and is unpacked again on first access.
type Table struct {
	width  int
	height int
	data   []uint8
	runs   []int
}

// NewTable creates an unexplored table
func NewTable(width, height int) *Table {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Table{
		width:  width,
		height: height,
		data:   make([]uint8, width*height),
	}
}

// FromRuns restores a packed table. The runs stay packed until first access.
func FromRuns(width, height int, runs []int) (*Table, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrMalformedRuns, width, height)
	}
	if err := validateRuns(runs, width*height); err != nil {
		return nil, err
	}
	packed := make([]int, len(runs))
	copy(packed, runs)
	return &Table{width: width, height: height, runs: packed}, nil
}

// Width returns the number of columns
func (t *Table) Width() int {
	return t.width
}

// Height returns the number of rows
func (t *Table) Height() int {
	return t.height
}

// Matches reports whether the table was built for a map of the given size
func (t *Table) Matches(width, height int) bool {
	return t.width == width && t.height == height
}

// IsValid checks if a position lies inside the table
func (t *Table) IsValid(x, y int) bool {
	return x >= 0 && x < t.width && y >= 0 && y < t.height
}

// IsPacked returns true while the table is held in run-length form
func (t *Table) IsPacked() bool {
	return t.data == nil
}

// Value returns the level at a position, 0 outside the table
func (t *Table) Value(x, y int) int {
	if !t.IsValid(x, y) {
		return 0
	}
	t.unpack()
	return int(t.data[y*t.width+x])
}

// SetValue stores a level. Writes outside the table are ignored.
func (t *Table) SetValue(x, y, level int) {
	if !t.IsValid(x, y) {
		return
	}
	t.unpack()
	t.data[y*t.width+x] = clampLevel(level)
}

// Fill sets every tile to the same level
func (t *Table) Fill(level int) {
	t.runs = nil
	t.data = make([]uint8, t.width*t.height)
	v := clampLevel(level)
	if v == 0 {
		return
	}
	for i := range t.data {
		t.data[i] = v
	}
}

// Opacity returns the tile's 0-255 opacity
func (t *Table) Opacity(x, y int) int {
	return min(t.Value(x, y)*LevelOpacity, 255)
}

// IsExplored returns true once a tile is at least half revealed
func (t *Table) IsExplored(x, y int) bool {
	return t.Opacity(x, y) >= ExploredOpacity
}

// Pack switches the table to run-length form
func (t *Table) Pack() {
	if t.data == nil {
		return
	}
	t.runs = Compress(t.data)
	t.data = nil
}

// Runs returns a copy of the run-length form, packing the table if needed
func (t *Table) Runs() []int {
	t.Pack()
	out := make([]int, len(t.runs))
	copy(out, t.runs)
	return out
}

func (t *Table) unpack() {
	if t.data != nil {
		return
	}
	data, err := Decompress(t.runs, t.width*t.height)
	if err != nil {
		// FromRuns validated the runs; this only happens on an empty table.
		data = make([]uint8, t.width*t.height)
	}
	t.data = data
	t.runs = nil
}

func clampLevel(level int) uint8 {
	if level < 0 {
		return 0
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return uint8(level)
}
