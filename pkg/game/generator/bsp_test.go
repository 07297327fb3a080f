// Package generator tests map generation: named rooms, corridors, connectivity
// and the looping overworld.
package generator

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"mapscope/pkg/engine/world"
)

// countPassable returns the number of cells that can be left in at least one direction.
func countPassable(grid *world.Grid) int {
	n := 0
	grid.ForEachCell(func(x, y int, _ *world.Cell) {
		for _, d := range world.AllDirections() {
			if grid.IsPassable(x, y, d) {
				n++
				return
			}
		}
	})
	return n
}

func TestBSPRoomsAreNamed(t *testing.T) {
	res := BSP.Generate(rand.New(rand.NewSource(1)), 48, 36)
	if len(res.Rooms) < 2 {
		t.Fatalf("expected at least 2 rooms, got %d", len(res.Rooms))
	}
	for _, r := range res.Rooms {
		if len(strings.Fields(r.Name)) < 2 {
			t.Errorf("room %+v should have an adjective and a noun", r)
		}
	}
}

func TestBSPAllFloorReachable(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		res := BSP.Generate(rand.New(rand.NewSource(seed)), 48, 36)
		total := countPassable(res.Grid)
		got := Reachable(res.Grid, res.StartX, res.StartY)
		if got != total {
			t.Errorf("seed %d: reached %d of %d walkable cells", seed, got, total)
		}
	}
}

func TestBSPPerimeterIsWall(t *testing.T) {
	res := BSP.Generate(rand.New(rand.NewSource(3)), 40, 30)
	g := res.Grid
	for x := 0; x < g.Width(); x++ {
		if g.GetCell(x, 0).Tiles[0] != TileWall || g.GetCell(x, g.Height()-1).Tiles[0] != TileWall {
			t.Fatalf("column %d has an open perimeter", x)
		}
	}
	if g.IsOverworld() || g.IsLoopHorizontal() {
		t.Error("dungeons neither loop nor count as overworld")
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := BSP.Generate(rand.New(rand.NewSource(42)), 48, 36)
	b := BSP.Generate(rand.New(rand.NewSource(42)), 48, 36)
	if a.StartX != b.StartX || a.StartY != b.StartY || len(a.Rooms) != len(b.Rooms) {
		t.Fatal("same seed produced different dungeons")
	}
	a.Grid.ForEachCell(func(x, y int, c *world.Cell) {
		if c.Tiles != b.Grid.GetCell(x, y).Tiles {
			t.Fatalf("tile mismatch at %d,%d", x, y)
		}
	})
}

func TestLineWalkerOverworld(t *testing.T) {
	res := LineWalker.Generate(rand.New(rand.NewSource(7)), 64, 48)
	g := res.Grid
	if !g.IsOverworld() || !g.IsLoopHorizontal() || !g.IsLoopVertical() {
		t.Fatal("overworld should loop on both axes")
	}
	start := g.GetCell(res.StartX, res.StartY)
	if k := world.AutotileKind(start.Tiles[0]); k != KindGrass {
		t.Errorf("start tile kind = %d, want grass", k)
	}
	if Reachable(g, res.StartX, res.StartY) < 2 {
		t.Error("start should not be an island of one tile")
	}
	if len(res.Rooms) != len(townNames) {
		t.Errorf("expected %d towns, got %d", len(townNames), len(res.Rooms))
	}
}

func TestDemoExits(t *testing.T) {
	d := BuildDemo(5, zerolog.Nop())
	if len(d.Maps) != 3 {
		t.Fatalf("expected 3 maps, got %d", len(d.Maps))
	}
	if _, ok := d.Map(d.StartMap); !ok {
		t.Fatal("start map missing")
	}
	e, ok := d.ExitAt(MapTown, townLadderX, townLadderY)
	if !ok || e.MapID != MapOverworld {
		t.Errorf("town ladder should lead to the overworld, got %+v %v", e, ok)
	}
	if _, ok := d.ExitAt(MapTown, 5, 5); ok {
		t.Error("plain floor is not an exit")
	}
	kinds := map[string]bool{}
	for _, v := range d.Vehicles {
		kinds[string(v.Kind)] = true
	}
	if !kinds["airship"] {
		t.Error("airship should always be parked")
	}
}
