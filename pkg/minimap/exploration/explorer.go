package exploration

import (
	"image"
	"math"
)

// DefaultRadius is the reveal radius used when none is configured
const DefaultRadius = 6

// Explorer reveals tiles of the active map's table around a point and keeps
// the list of tiles whose level rose since the last image update.
type Explorer struct {
	table  *Table
	loopH  bool
	loopV  bool
	radius int
	dirty  []int
}

// NewExplorer binds an explorer to the active map's table
func NewExplorer(table *Table, loopH, loopV bool, radius int) *Explorer {
	return &Explorer{
		table:  table,
		loopH:  loopH,
		loopV:  loopV,
		radius: radius,
	}
}

// Table returns the table the explorer writes to
func (e *Explorer) Table() *Table {
	return e.table
}

// Radius returns the current reveal radius
func (e *Explorer) Radius() int {
	return e.radius
}

// SetRadius changes the reveal radius used by Reveal
func (e *Explorer) SetRadius(r int) {
	e.radius = r
}

// Reveal explores around a point with the current radius
func (e *Explorer) Reveal(x, y int) {
	e.FillRadius(x, y, e.radius)
}

// FillRadius raises the level of every tile within r of (cx, cy). Levels fall
// off with euclidean distance and never decrease. r <= 0 does nothing.
func (e *Explorer) FillRadius(cx, cy, r int) {
	t := e.table
	if t == nil || r <= 0 || t.width == 0 || t.height == 0 {
		return
	}
	minX, maxX := cx-r, cx+r
	minY, maxY := cy-r, cy+r
	if !e.loopH {
		minX, maxX = max(minX, 0), min(maxX, t.width-1)
	}
	if !e.loopV {
		minY, maxY = max(minY, 0), min(maxY, t.height-1)
	}
	for y := minY; y <= maxY; y++ {
		ry := wrap(y, t.height)
		for x := minX; x <= maxX; x++ {
			rx := wrap(x, t.width)
			level := int(math.Floor(3 * (float64(r+1) - math.Hypot(float64(cx-x), float64(cy-y)))))
			if level > MaxLevel {
				level = MaxLevel
			}
			if level > t.Value(rx, ry) {
				t.SetValue(rx, ry, level)
				e.dirty = append(e.dirty, ry*t.width+rx)
			}
		}
	}
}

// Dirty returns the tiles raised since the last ClearDirty, in raise order
func (e *Explorer) Dirty() []image.Point {
	if e.table == nil || len(e.dirty) == 0 {
		return nil
	}
	pts := make([]image.Point, len(e.dirty))
	for i, idx := range e.dirty {
		pts[i] = image.Pt(idx%e.table.width, idx/e.table.width)
	}
	return pts
}

// ClearDirty empties the dirty list after it has been consumed
func (e *Explorer) ClearDirty() {
	e.dirty = e.dirty[:0]
}

// Opacity returns the 0-255 opacity of a tile on the active map
func (e *Explorer) Opacity(x, y int) int {
	if e.table == nil {
		return 255
	}
	return e.table.Opacity(x, y)
}

// IsExplored returns true if the tile on the active map is revealed
func (e *Explorer) IsExplored(x, y int) bool {
	if e.table == nil {
		return true
	}
	return e.table.IsExplored(x, y)
}

func wrap(v, n int) int {
	return ((v % n) + n) % n
}
