package generator

import (
	"math/rand"

	"mapscope/pkg/engine/world"
)

// LineWalkerGenerator raises a looping overworld continent out of the sea by
// walking lines of land in random directions with branching probability.
type LineWalkerGenerator struct{}

// Name returns the name of this generator
func (g *LineWalkerGenerator) Name() string {
	return "Line Walker"
}

var townNames = []string{"Port Ardel", "Miren", "Stonebridge", "Hollowmere", "Kessa"}

const (
	branchProbability = 0.35
	minWalk           = 4
	maxWalk           = 10
	walkDepth         = 6
)

// Generate creates the overworld
func (g *LineWalkerGenerator) Generate(rng *rand.Rand, width, height int) *Result {
	grid := NewGrid(width, height, world.AutotileID(KindSea, 0))
	grid.SetOverworld(true)
	grid.SetLooping(true, true)

	x, y := grid.CenterPosition()
	land := map[[2]int]bool{}
	for _, d := range world.AllDirections() {
		g.walk(rng, grid, land, x, y, d, branchProbability, walkDepth)
	}
	g.raise(rng, grid, land)

	res := &Result{Grid: grid, StartX: x, StartY: y}
	tiles := make([][2]int, 0, len(land))
	grid.ForEachCell(func(cx, cy int, _ *world.Cell) {
		if land[[2]int{cx, cy}] && grid.IsPassable(cx, cy, world.North) {
			tiles = append(tiles, [2]int{cx, cy})
		}
	})
	for i, name := range townNames {
		if len(tiles) == 0 {
			break
		}
		p := tiles[rng.Intn(len(tiles))]
		res.Rooms = append(res.Rooms, Room{X: p[0], Y: p[1], Width: 1, Height: 1, Name: name})
		if i == 0 {
			grid.SetTile(p[0], p[1], 1, TileRoof)
		}
	}
	return res
}

// walk lays a line of land and may branch off in a random direction
func (g *LineWalkerGenerator) walk(rng *rand.Rand, grid *world.Grid, land map[[2]int]bool, x, y int, dir world.Direction, branch float64, depth int) {
	if depth <= 0 {
		return
	}
	dx, dy := dir.Delta()
	distance := minWalk + rng.Intn(maxWalk-minWalk+1)
	for step := 0; step < distance; step++ {
		g.setLand(grid, land, x, y)
		// thicken the line so the coast is not a single tile wide
		g.setLand(grid, land, x+dy, y+dx)
		if rng.Float64() < branch {
			g.walk(rng, grid, land, x, y, world.Direction(rng.Intn(4)), branch-0.05, depth-1)
		}
		x, y = grid.RoundX(x+dx), grid.RoundY(y+dy)
	}
	g.setLand(grid, land, x, y)
}

func (g *LineWalkerGenerator) setLand(grid *world.Grid, land map[[2]int]bool, x, y int) {
	x, y = grid.RoundX(x), grid.RoundY(y)
	land[[2]int{x, y}] = true
	grid.SetTile(x, y, 0, world.AutotileID(KindGrass, 0))
}

// raise turns some land into forest, hills and mountains, and the sea next
// to the coast into shallows.
func (g *LineWalkerGenerator) raise(rng *rand.Rand, grid *world.Grid, land map[[2]int]bool) {
	kinds := []int{KindForest, KindForest, KindHill, KindMountain}
	cx, cy := grid.CenterPosition()
	grid.ForEachCell(func(x, y int, c *world.Cell) {
		if !land[[2]int{x, y}] {
			for _, d := range world.AllDirections() {
				dx, dy := d.Delta()
				if land[[2]int{grid.RoundX(x + dx), grid.RoundY(y + dy)}] && rng.Intn(3) == 0 {
					c.Tiles[0] = world.AutotileID(KindShallow, 0)
					break
				}
			}
			return
		}
		// the start tile stays walkable
		if (x == cx && y == cy) || rng.Intn(4) != 0 {
			return
		}
		c.Tiles[0] = world.AutotileID(kinds[rng.Intn(len(kinds))], 0)
	})
}
