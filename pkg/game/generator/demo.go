package generator

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"mapscope/pkg/engine/world"
	"mapscope/pkg/game/entities"
	"mapscope/pkg/game/session"
	"mapscope/pkg/minimap/marker"
)

// Demo map ids
const (
	MapDungeon   = 1
	MapOverworld = 2
	MapTown      = 3
)

// VehicleSpot is where a vehicle starts parked
type VehicleSpot struct {
	Kind  marker.VehicleKind
	MapID int
	X, Y  int
}

// Demo is the set of maps the demo host runs on
type Demo struct {
	Maps     map[int]*session.Map
	StartMap int
	StartX   int
	StartY   int
	Vehicles []VehicleSpot

	exits   map[spot]Exit
	entries map[int]Exit
}

type spot struct{ mapID, x, y int }

// Exit is where the player lands after stepping onto a transfer tile
type Exit struct {
	MapID int
	X, Y  int
}

// eventMarkers cycles through every marker shape
var eventMarkers = []string{"I0", "S2M", "T4B", "C3-6", "X5", "R1H", "P7"}

// BuildDemo generates the demo maps from a seed
func BuildDemo(seed int64, log zerolog.Logger) *Demo {
	rng := rand.New(rand.NewSource(seed))
	d := &Demo{Maps: make(map[int]*session.Map), exits: make(map[spot]Exit), entries: make(map[int]Exit)}

	dungeon := DefaultGenerator.Generate(rng, 48, 36)
	d.Maps[MapDungeon] = &session.Map{
		ID:     MapDungeon,
		Grid:   dungeon.Grid,
		Events: roomEvents(MapDungeon, dungeon.Rooms, log),
	}
	d.StartMap, d.StartX, d.StartY = MapDungeon, dungeon.StartX, dungeon.StartY

	overworld := LineWalker.Generate(rng, 96, 64)
	d.Maps[MapOverworld] = &session.Map{
		ID:     MapOverworld,
		Grid:   overworld.Grid,
		Events: roomEvents(MapOverworld, overworld.Rooms, log),
	}

	town := buildTown()
	d.Maps[MapTown] = town

	// the first dungeon room holds the ladder up to the overworld
	if len(dungeon.Rooms) > 0 {
		r := dungeon.Rooms[0]
		d.exits[spot{MapDungeon, r.X, r.Y}] = Exit{MapID: MapOverworld, X: overworld.StartX, Y: overworld.StartY}
		if len(overworld.Rooms) > 1 {
			cave := overworld.Rooms[1]
			d.exits[spot{MapOverworld, cave.X, cave.Y}] = Exit{MapID: MapDungeon, X: r.X + 1, Y: r.Y}
		}
	}
	if len(overworld.Rooms) > 0 {
		home := overworld.Rooms[0]
		d.exits[spot{MapOverworld, home.X, home.Y}] = Exit{MapID: MapTown, X: townLadderX + 1, Y: townLadderY}
		d.exits[spot{MapTown, townLadderX, townLadderY}] = Exit{MapID: MapOverworld, X: home.X, Y: home.Y}
	}

	d.entries[MapDungeon] = Exit{MapID: MapDungeon, X: dungeon.StartX, Y: dungeon.StartY}
	d.entries[MapOverworld] = Exit{MapID: MapOverworld, X: overworld.StartX, Y: overworld.StartY}
	d.entries[MapTown] = Exit{MapID: MapTown, X: townLadderX + 1, Y: townLadderY}

	d.Vehicles = parkVehicles(overworld)
	return d
}

// Map returns a demo map by id
func (d *Demo) Map(id int) (*session.Map, bool) {
	m, ok := d.Maps[id]
	return m, ok
}

// Entry returns where the player appears when jumping straight to a map
func (d *Demo) Entry(mapID int) (Exit, bool) {
	e, ok := d.entries[mapID]
	return e, ok
}

// ExitAt returns the transfer destination of the tile (x, y) on a map
func (d *Demo) ExitAt(mapID, x, y int) (Exit, bool) {
	e, ok := d.exits[spot{mapID, x, y}]
	if !ok {
		return Exit{}, false
	}
	if _, known := d.Maps[e.MapID]; !known {
		return Exit{}, false
	}
	return e, true
}

func roomEvents(mapID int, rooms []Room, log zerolog.Logger) []*entities.Event {
	events := make([]*entities.Event, 0, len(rooms))
	for i, r := range rooms {
		pages := []entities.Page{{}}
		// every third event switches marker with its page
		if i%3 == 2 {
			pages = []entities.Page{
				{Comments: []string{"MinimapMarker P2B"}},
				{Transparent: true},
			}
		}
		e := entities.NewEvent(mapID, i+1, r.Name, eventMarkers[i%len(eventMarkers)], pages, log)
		e.Locate(r.Center())
		events = append(events, e)
	}
	return events
}

func parkVehicles(overworld *Result) []VehicleSpot {
	g := overworld.Grid
	spots := []VehicleSpot{{Kind: marker.VehicleAirship, MapID: MapOverworld, X: overworld.StartX, Y: overworld.StartY}}
	boat, ship := false, false
	g.ForEachCell(func(x, y int, c *world.Cell) {
		if world.AutotileKind(c.Tiles[0]) != KindShallow {
			return
		}
		switch {
		case !boat:
			spots = append(spots, VehicleSpot{Kind: marker.VehicleBoat, MapID: MapOverworld, X: x, Y: y})
			boat = true
		case !ship && (x+y)%7 == 0:
			spots = append(spots, VehicleSpot{Kind: marker.VehicleShip, MapID: MapOverworld, X: x, Y: y})
			ship = true
		}
	})
	return spots
}

const townLadderX, townLadderY = 1, 13

// townLayout is drawn one character per tile
var townLayout = []string{
	"####################",
	"#..................#",
	"#.####.....####....#",
	"#.#==#.....#..#.,,.#",
	"#.#..#.....#..#.,,.#",
	"#.##.#.....##.#....#",
	"#..................#",
	"#......~~~.........#",
	"#......~~~....####.#",
	"#.............#==#.#",
	"#.,,..........#..#.#",
	"#.,,..........##.#.#",
	"#..................#",
	"#H.................#",
	"####################",
}

var townShops = []struct {
	name, spec string
	x, y       int
}{
	{"Inn", "I1", 4, 4},
	{"Weapon Shop", "I2", 12, 4},
	{"Item Shop", "I3", 16, 10},
	{"Well", "C2-3M", 8, 7},
}

func buildTown() *session.Map {
	h, w := len(townLayout), len(townLayout[0])
	g := NewGrid(w, h, TileFloor)
	for y, row := range townLayout {
		for x, ch := range row {
			switch ch {
			case '#':
				g.SetTile(x, y, 0, TileWall)
			case '=':
				g.SetTile(x, y, 1, TileCounter)
			case ',':
				g.SetTile(x, y, 1, TileBush)
			case '~':
				g.SetTile(x, y, 0, world.AutotileID(KindShallow, 0))
			case 'H':
				g.SetTile(x, y, 1, TileLadder)
			}
		}
	}
	m := &session.Map{ID: MapTown, Grid: g}
	for i, s := range townShops {
		e := entities.NewEvent(MapTown, i+1, s.name, s.spec, []entities.Page{{}}, zerolog.Nop())
		e.Locate(s.x, s.y)
		m.Events = append(m.Events, e)
	}
	return m
}

// String describes the demo for logs
func (d *Demo) String() string {
	return fmt.Sprintf("%d maps, start map %d at %d,%d", len(d.Maps), d.StartMap, d.StartX, d.StartY)
}
