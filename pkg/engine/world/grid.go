package world

import "fmt"

// Grid represents a map as a fixed-size orthogonal grid of cells
type Grid struct {
	cells  []Cell
	width  int
	height int

	loopH     bool
	loopV     bool
	overworld bool

	tileFlags map[int]int
}

// NewGrid creates a new grid with the given dimensions
func NewGrid(width, height int) *Grid {
	g := &Grid{}
	g.Build(width, height)
	return g
}

// Build (re)allocates the grid with empty cells
func (g *Grid) Build(width, height int) {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("world: invalid grid dimensions %dx%d", width, height))
	}
	g.width = width
	g.height = height
	g.cells = make([]Cell, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.cells[y*width+x] = Cell{X: x, Y: y}
		}
	}
	g.tileFlags = make(map[int]int)
}

// Width returns the number of columns in the grid
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows in the grid
func (g *Grid) Height() int {
	return g.height
}

// IsValidPosition checks if a position is within grid bounds
func (g *Grid) IsValidPosition(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// GetCell returns the cell at the given position, or nil if out of bounds
func (g *Grid) GetCell(x, y int) *Cell {
	if !g.IsValidPosition(x, y) {
		return nil
	}
	return &g.cells[y*g.width+x]
}

// SetTile stores a tile id on one layer of a cell
func (g *Grid) SetTile(x, y, layer, tileID int) {
	c := g.GetCell(x, y)
	if c == nil || layer < 0 || layer >= Layers {
		return
	}
	c.Tiles[layer] = tileID
}

// SetRegion assigns a region id to a cell
func (g *Grid) SetRegion(x, y, region int) {
	if c := g.GetCell(x, y); c != nil {
		c.Region = region
	}
}

// RegionID returns the region id at a position (0 outside the grid)
func (g *Grid) RegionID(x, y int) int {
	if c := g.GetCell(x, y); c != nil {
		return c.Region
	}
	return 0
}

// LayeredTiles returns the non-empty tiles at a position, top layer first
func (g *Grid) LayeredTiles(x, y int) []int {
	return g.GetCell(x, y).LayeredTiles()
}

// SetTileFlag records the tileset flags of a tile id
func (g *Grid) SetTileFlag(tileID, flag int) {
	g.tileFlags[tileID] = flag
}

// TileFlag returns the tileset flags of a tile id. Unknown tiles are fully passable.
func (g *Grid) TileFlag(tileID int) int {
	return g.tileFlags[tileID]
}

// SetLooping configures horizontal and vertical wraparound
func (g *Grid) SetLooping(horizontal, vertical bool) {
	g.loopH = horizontal
	g.loopV = vertical
}

// IsLoopHorizontal returns true if the map wraps left to right
func (g *Grid) IsLoopHorizontal() bool {
	return g.loopH
}

// IsLoopVertical returns true if the map wraps top to bottom
func (g *Grid) IsLoopVertical() bool {
	return g.loopV
}

// SetOverworld marks the grid as an overworld map
func (g *Grid) SetOverworld(overworld bool) {
	g.overworld = overworld
}

// IsOverworld returns true for overworld maps, which classify terrain by auto-tile kind
func (g *Grid) IsOverworld() bool {
	return g.overworld
}

// RoundX wraps an x coordinate when the grid loops horizontally
func (g *Grid) RoundX(x int) int {
	if g.loopH {
		return ((x % g.width) + g.width) % g.width
	}
	return x
}

// RoundY wraps a y coordinate when the grid loops vertically
func (g *Grid) RoundY(y int) int {
	if g.loopV {
		return ((y % g.height) + g.height) % g.height
	}
	return y
}

// CenterPosition returns the x and y of the grid center
func (g *Grid) CenterPosition() (int, int) {
	return g.width / 2, g.height / 2
}

// IsPassable reports whether an entity can step from (x, y) in the given direction
func (g *Grid) IsPassable(x, y int, dir Direction) bool {
	dx, dy := dir.Delta()
	nx, ny := g.RoundX(x+dx), g.RoundY(y+dy)
	if !g.IsValidPosition(x, y) || !g.IsValidPosition(nx, ny) {
		return false
	}
	return g.checkPassage(x, y, blockBit(dir)) && g.checkPassage(nx, ny, blockBit(dir.Opposite()))
}

func (g *Grid) checkPassage(x, y, bit int) bool {
	for _, tile := range g.LayeredTiles(x, y) {
		flag := g.TileFlag(tile)
		if flag&FlagStar != 0 {
			continue
		}
		return flag&bit == 0
	}
	return false
}

func blockBit(dir Direction) int {
	switch dir {
	case North:
		return FlagBlockUp
	case East:
		return FlagBlockRight
	case West:
		return FlagBlockLeft
	default:
		return FlagBlockDown
	}
}

// ForEachCell iterates over all cells in the grid, calling the provided function for each
func (g *Grid) ForEachCell(fn func(x, y int, cell *Cell)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			fn(x, y, &g.cells[y*g.width+x])
		}
	}
}
