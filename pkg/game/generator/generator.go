// Package generator builds the demo maps the minimap is shown on: a BSP
// dungeon, a looping overworld and a small town.
package generator

import (
	"math/rand"

	"mapscope/pkg/engine/world"
)

// Tile ids of the demo tileset
const (
	TileFloor   = 1
	TileWall    = 2
	TileCounter = 3
	TileLadder  = 4
	TileBush    = 5
	TileRoof    = 6
)

// Auto-tile kinds of the demo tileset
const (
	KindShallow  = 0
	KindSea      = 1
	KindGrass    = 16
	KindForest   = 20
	KindHill     = 22
	KindMountain = 23
)

// Room is a carved rectangle with a display name
type Room struct {
	X, Y, Width, Height int
	Name                string
}

// Center returns the middle tile of the room
func (r Room) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Result is a generated map
type Result struct {
	Grid   *world.Grid
	Rooms  []Room
	StartX int
	StartY int
}

// MapGenerator is an interface for map generation algorithms
type MapGenerator interface {
	Generate(rng *rand.Rand, width, height int) *Result
	Name() string
}

// Available generators
var (
	LineWalker = &LineWalkerGenerator{}
	BSP        = &BSPGenerator{}
)

// DefaultGenerator is the default dungeon generator
var DefaultGenerator MapGenerator = BSP

// NewGrid creates a grid filled with tile and registers the demo tileset flags
func NewGrid(width, height, tile int) *world.Grid {
	g := world.NewGrid(width, height)
	setupTileset(g)
	g.ForEachCell(func(x, y int, c *world.Cell) {
		c.Tiles[0] = tile
	})
	return g
}

func setupTileset(g *world.Grid) {
	g.SetTileFlag(TileFloor, 0)
	g.SetTileFlag(TileWall, world.FlagBlockAll)
	g.SetTileFlag(TileCounter, world.FlagCounter)
	g.SetTileFlag(TileLadder, world.FlagLadder)
	g.SetTileFlag(TileBush, world.FlagBush)
	g.SetTileFlag(TileRoof, world.FlagStar)
	for shape := 0; shape < world.AutotileBlock; shape++ {
		g.SetTileFlag(world.AutotileID(KindShallow, shape), 0)
		g.SetTileFlag(world.AutotileID(KindSea, shape), world.FlagBlockAll)
		g.SetTileFlag(world.AutotileID(KindGrass, shape), 0)
		g.SetTileFlag(world.AutotileID(KindForest, shape), 0)
		g.SetTileFlag(world.AutotileID(KindHill, shape), 0)
		g.SetTileFlag(world.AutotileID(KindMountain, shape), world.FlagBlockAll)
	}
}

// Reachable counts the tiles reachable from (x, y) by walking
func Reachable(g *world.Grid, x, y int) int {
	type point struct{ x, y int }
	visited := map[point]bool{{x, y}: true}
	queue := []point{{x, y}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range world.AllDirections() {
			if !g.IsPassable(p.x, p.y, d) {
				continue
			}
			dx, dy := d.Delta()
			n := point{g.RoundX(p.x + dx), g.RoundY(p.y + dy)}
			if !visited[n] {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	return len(visited)
}
