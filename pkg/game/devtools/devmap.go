package devtools

import (
	"fmt"

	"github.com/rs/zerolog"

	"mapscope/pkg/engine/world"
	"mapscope/pkg/game/entities"
	"mapscope/pkg/game/generator"
	"mapscope/pkg/game/session"
)

// DevMapID is the map id of the developer test map
const DevMapID = 4

// DevMapSize is the width and height of the developer test map
const DevMapSize = 40

// DevMarkerSpecs is one marker of every shape and flag, placed as events
var DevMarkerSpecs = []string{
	"P0", "A2", "I0", "T4", "S5", "R6", "X7", "C2-3", "!10",
	"P1B", "T2T", "S3H", "R4M", "C1-9H",
}

// DevMap builds a hard-coded developer testing map. Every spot kind sits in
// its own row of samples with a 3-tile margin, followed by a row of events
// carrying every marker shape. The player starts in the top-left corner.
func DevMap(log zerolog.Logger) (m *session.Map, startX, startY int) {
	g := generator.NewGrid(DevMapSize, DevMapSize, generator.TileFloor)

	// Perimeter walls
	for i := 0; i < DevMapSize; i++ {
		g.SetTile(i, 0, 0, generator.TileWall)
		g.SetTile(i, DevMapSize-1, 0, generator.TileWall)
		g.SetTile(0, i, 0, generator.TileWall)
		g.SetTile(DevMapSize-1, i, 0, generator.TileWall)
	}

	const margin = 3
	rows := []func(x, y int){
		func(x, y int) { g.SetTile(x, y, 0, generator.TileWall) },
		func(x, y int) { g.SetTile(x, y, 1, generator.TileLadder) },
		func(x, y int) { g.SetTile(x, y, 1, generator.TileBush) },
		func(x, y int) { g.SetTile(x, y, 1, generator.TileCounter) },
		func(x, y int) { g.SetTile(x, y, 0, world.AutotileID(generator.KindShallow, 0)) },
		func(x, y int) { g.SetTile(x, y, 0, world.AutotileID(generator.KindSea, 0)) },
		func(x, y int) { g.SetTile(x, y, 0, 0) },
		// roof over floor still reads as floor
		func(x, y int) { g.SetTile(x, y, 2, generator.TileRoof) },
	}
	y := 2
	for _, place := range rows {
		for x := 2 + margin; x < DevMapSize-2; x += margin + 1 {
			place(x, y)
		}
		y += 2
	}

	m = &session.Map{ID: DevMapID, Grid: g}
	y += 2
	x := 2
	for i, spec := range DevMarkerSpecs {
		e := entities.NewEvent(DevMapID, i+1, fmt.Sprintf("Marker %s", spec), spec, []entities.Page{{}}, log)
		e.Locate(x, y)
		m.Events = append(m.Events, e)
		x += margin + 1
		if x >= DevMapSize-2 {
			x = 2
			y += margin + 1
		}
	}
	return m, 2, 2
}

// SwitchToDevMap switches the session to the developer testing map
func SwitchToDevMap(s *session.Session, log zerolog.Logger) {
	m, x, y := DevMap(log)
	s.SetupMap(m, x, y)
	log.Info().Int("map", DevMapID).Int("events", len(m.Events)).Msg("Switched to developer map")
}
