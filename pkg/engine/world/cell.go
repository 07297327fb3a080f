// Package world provides generic 2D tile map primitives.
// These are engine-level constructs usable by any tile-based game.
package world

// Tileset flag bits. The low nibble marks the sides a tile cannot be left
// through; the remaining bits are terrain attributes.
const (
	FlagBlockDown  = 0x01
	FlagBlockLeft  = 0x02
	FlagBlockRight = 0x04
	FlagBlockUp    = 0x08
	FlagBlockAll   = 0x0f
	FlagStar       = 0x10 // drawn above characters, never decides passage
	FlagLadder     = 0x20
	FlagBush       = 0x40
	FlagCounter    = 0x80
)

// Auto-tile ids start at TileIDA1 and come in blocks of AutotileBlock shapes.
const (
	TileIDA1      = 2048
	AutotileBlock = 48
)

// Layers is the number of tile layers stored per cell
const Layers = 4

// Cell represents a single tile position in the grid.
type Cell struct {
	X int
	Y int

	// Tiles holds the tile id of each layer, bottom first. 0 means empty.
	Tiles [Layers]int

	// Region is the designer-assigned region id (0 = none)
	Region int
}

// NewCell creates a new cell at the given position
func NewCell(x, y int) *Cell {
	return &Cell{X: x, Y: y}
}

// LayeredTiles returns the non-empty tiles of the cell, top layer first
func (c *Cell) LayeredTiles() []int {
	if c == nil {
		return nil
	}
	tiles := make([]int, 0, Layers)
	for i := Layers - 1; i >= 0; i-- {
		if c.Tiles[i] != 0 {
			tiles = append(tiles, c.Tiles[i])
		}
	}
	return tiles
}

// IsAutotile reports whether a tile id belongs to an auto-tile block
func IsAutotile(tileID int) bool {
	return tileID >= TileIDA1
}

// AutotileKind returns the auto-tile kind of a tile id, or -1 for plain tiles
func AutotileKind(tileID int) int {
	if !IsAutotile(tileID) {
		return -1
	}
	return (tileID - TileIDA1) / AutotileBlock
}

// AutotileID builds the tile id for the given auto-tile kind and shape
func AutotileID(kind, shape int) int {
	return TileIDA1 + kind*AutotileBlock + shape
}
