package entities

import (
	"testing"

	"github.com/rs/zerolog"

	"mapscope/pkg/engine/world"
	"mapscope/pkg/minimap/marker"
)

func openGrid(w, h int) *world.Grid {
	g := world.NewGrid(w, h)
	g.SetTileFlag(1, 0)
	g.ForEachCell(func(x, y int, c *world.Cell) {
		c.Tiles[0] = 1
	})
	return g
}

func TestStepAnimatesRealPosition(t *testing.T) {
	g := openGrid(5, 5)
	p := NewPlayer("A3", zerolog.Nop())
	p.Locate(1, 1)

	if !p.Step(g, world.East) {
		t.Fatal("step east blocked on an open grid")
	}
	if p.X() != 2 || p.RealX() != 1 {
		t.Fatalf("after step: tile %d real %v, want tile 2 real 1", p.X(), p.RealX())
	}
	if p.Step(g, world.East) {
		t.Error("a second step started while still moving")
	}
	for i := 0; i < 16; i++ {
		p.Update()
	}
	if p.IsMoving() || p.RealX() != 2 {
		t.Errorf("real x = %v after 16 ticks, want 2", p.RealX())
	}
	if p.Facing() != world.East {
		t.Errorf("facing = %v, want East", p.Facing())
	}
}

func TestStepBlockedTurnsOnly(t *testing.T) {
	g := openGrid(3, 3)
	p := NewPlayer("A3", zerolog.Nop())
	p.Locate(0, 0)
	if p.Step(g, world.West) {
		t.Error("stepped off the map")
	}
	if p.Facing() != world.West {
		t.Errorf("facing = %v, want West", p.Facing())
	}
}

func TestStepAcrossSeamSnaps(t *testing.T) {
	g := openGrid(4, 4)
	g.SetLooping(true, false)
	p := NewPlayer("A3", zerolog.Nop())
	p.Locate(0, 2)
	if !p.Step(g, world.West) {
		t.Fatal("looping step blocked")
	}
	if p.X() != 3 || p.RealX() != 3 || p.IsMoving() {
		t.Errorf("tile %d real %v moving %v, want 3 3 false", p.X(), p.RealX(), p.IsMoving())
	}
}

func TestPlayerMarker(t *testing.T) {
	p := NewPlayer("A3h", zerolog.Nop())
	m := p.Marker()
	if m == nil || !m.IsPlayer() || !m.IsHighlighted() {
		t.Fatalf("player marker = %+v", m)
	}
	if NewPlayer("nonsense", zerolog.Nop()).Marker() != nil {
		t.Error("malformed spec produced a marker")
	}
	if NewPlayer("", zerolog.Nop()).Marker() != nil {
		t.Error("blank spec produced a marker")
	}
}

func TestRidingHidesPlayerAndVehicle(t *testing.T) {
	g := openGrid(5, 5)
	p := NewPlayer("A3", zerolog.Nop())
	p.Locate(2, 2)
	boat := NewVehicle(marker.VehicleBoat, "P3", zerolog.Nop())
	boat.Park(1, 2, 3)

	if !p.MinimapVisible() || !boat.MinimapVisible() {
		t.Fatal("both should be visible before boarding")
	}
	if p.Board(NewVehicle(marker.VehicleShip, "P3", zerolog.Nop())) {
		t.Error("boarded a vehicle far away")
	}
	if !p.Board(boat) {
		t.Fatal("could not board adjacent boat")
	}
	if p.MinimapVisible() || boat.MinimapVisible() {
		t.Error("rider and driven vehicle should both be hidden")
	}

	p.Step(g, world.East)
	for i := 0; i < 16; i++ {
		p.Update()
	}
	if boat.X() != 3 || boat.RealX() != 3 || boat.Facing() != world.East {
		t.Errorf("boat at %d (%v) facing %v, want 3 East", boat.X(), boat.RealX(), boat.Facing())
	}

	p.Leave()
	if !boat.MinimapVisible() || boat.IsDriven() {
		t.Error("parked boat should be visible")
	}
	boat.SetTransparent(true)
	if boat.MinimapVisible() {
		t.Error("transparent boat should be hidden")
	}
}

func TestVehicleMarkerSubject(t *testing.T) {
	v := NewVehicle(marker.VehicleAirship, "S4", zerolog.Nop())
	got := v.Marker().Subject()
	if got != marker.VehicleSubject(marker.VehicleAirship) {
		t.Errorf("subject = %+v", got)
	}
	if v.MinimapName() == "" {
		t.Error("vehicle name is empty")
	}
}

func TestEventPagesRebuildMarker(t *testing.T) {
	pages := []Page{
		{Comments: []string{"MinimapMarker I5"}},
		{Comments: []string{"just a note"}},
		{Comments: []string{"マーカー T2b"}, Transparent: true},
	}
	e := NewEvent(4, 9, "Inn", "P1", pages, zerolog.Nop())

	first := e.Marker()
	if first == nil || first.Shape() != marker.ShapeIcon {
		t.Fatalf("page 0 marker = %+v", first)
	}
	if first.Subject() != marker.EventSubject(4, 9) {
		t.Errorf("subject = %+v", first.Subject())
	}

	e.SetPage(1)
	if e.Marker() == first {
		t.Error("page change kept the old marker")
	}
	if e.Marker().Shape() != marker.ShapePoint {
		t.Errorf("page without comment should fall back to the note, got %v", e.Marker().Shape())
	}

	e.SetPage(2)
	if e.Marker().Shape() != marker.ShapeTriangle || !e.Marker().IsBlink() {
		t.Errorf("page 2 marker = %+v", e.Marker().Spec())
	}
	if e.MinimapVisible() {
		t.Error("transparent page should hide the event")
	}

	e.SetPage(5)
	if e.Page() != -1 || e.Marker() != nil {
		t.Error("inactive event should have no marker")
	}
}

func TestEventNames(t *testing.T) {
	tests := map[string]string{
		"Inn":    "Inn",
		"EV001":  "",
		"#spawn": "",
		"":       "",
	}
	for name, want := range tests {
		e := NewEvent(1, 1, name, "", nil, zerolog.Nop())
		if got := e.MinimapName(); got != want {
			t.Errorf("MinimapName(%q) = %q, want %q", name, got, want)
		}
	}
}
