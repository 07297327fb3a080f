package marker

import (
	"bytes"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapscope/pkg/engine/world"
)

type fakeEntity struct {
	x, y    float64
	facing  world.Direction
	visible bool
	name    string
}

func (e *fakeEntity) RealX() float64 { return e.x }
func (e *fakeEntity) RealY() float64 { return e.y }
func (e *fakeEntity) X() int { return int(math.Round(e.x)) }
func (e *fakeEntity) Y() int { return int(math.Round(e.y)) }
func (e *fakeEntity) Facing() world.Direction { return e.facing }
func (e *fakeEntity) MinimapVisible() bool { return e.visible }
func (e *fakeEntity) MinimapName() string { return e.name }

type fakeWorld struct {
	mapID    int
	player   *fakeEntity
	vehicles map[VehicleKind]*fakeEntity
	events   map[int]*fakeEntity
	explored map[[2]int]bool
}

func newFakeWorld(mapID int) *fakeWorld {
	return &fakeWorld{
		mapID:    mapID,
		player:   &fakeEntity{x: 5, y: 5, visible: true, name: "Hero"},
		vehicles: map[VehicleKind]*fakeEntity{},
		events:   map[int]*fakeEntity{},
	}
}

func (w *fakeWorld) MapID() int { return w.mapID }

func (w *fakeWorld) Resolve(s Subject) Trackable {
	switch s.Kind {
	case SubjectPlayer:
		return w.player
	case SubjectVehicle:
		if v, ok := w.vehicles[s.Vehicle]; ok {
			return v
		}
	case SubjectEvent:
		if e, ok := w.events[s.EventID]; ok {
			return e
		}
	}
	return nil
}

func (w *fakeWorld) IsExplored(x, y int) bool {
	if w.explored == nil {
		return true
	}
	return w.explored[[2]int{x, y}]
}

func TestParseSpec_Grammar(t *testing.T) {
	cases := []struct {
		in   string
		want Spec
	}{
		{"A3", Spec{Shape: ShapeArrow, Index: 3, Directional: true}},
		{"a3h", Spec{Shape: ShapeArrow, Index: 3, Directional: true, Highlighted: true}},
		{"P0", Spec{Shape: ShapePoint}},
		{"I12T", Spec{Shape: ShapeIcon, Index: 12, Directional: true}},
		{"C5-2h", Spec{Shape: ShapeCircle, Radius: 5, Index: 2, Highlighted: true}},
		{"x7bm", Spec{Shape: ShapeCross, Index: 7, Blink: true, Gated: true}},
		{"!0h", Spec{Shape: ShapePin, Highlighted: true}},
	}
	for _, c := range cases {
		got, err := ParseSpec(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestParseSpec_Malformed(t *testing.T) {
	for _, s := range []string{"Z3", "A", "C5", "C-2", "P3Q", "", "3A", "P-1"} {
		_, err := ParseSpec(s)
		assert.ErrorIs(t, err, ErrMalformedSpec, "%q", s)
	}
}

func TestSpec_StringRoundTrip(t *testing.T) {
	for _, s := range []string{"A3H", "C5-2B", "I12TM", "!0H", "S4"} {
		spec, err := ParseSpec(s)
		require.NoError(t, err)
		assert.Equal(t, s, spec.String())
	}
}

func TestMarker_CircleNeverHighlighted(t *testing.T) {
	m, err := Parse("C5-2h")
	require.NoError(t, err)
	assert.True(t, m.Spec().Highlighted)
	assert.False(t, m.IsHighlighted())
}

func TestMarker_SetSpecMalformedLeavesMarker(t *testing.T) {
	m := New()
	assert.False(t, m.IsValid())
	assert.Error(t, m.SetSpec("nope"))
	assert.False(t, m.IsValid())
	require.NoError(t, m.SetSpec("P1"))
	assert.Error(t, m.SetSpec("nope"))
	assert.Equal(t, ShapePoint, m.Shape())
}

func TestMarker_BindingIsExclusive(t *testing.T) {
	m, _ := Parse("P1")
	m.SetPosition(2, 4, 4)
	assert.True(t, m.IsFixed())
	m.SetPlayer()
	assert.False(t, m.IsFixed())
	assert.True(t, m.IsPlayer())
	m.SetPosition(2, 1, 1)
	assert.Equal(t, SubjectNone, m.Subject().Kind)
	m.ClearPosition()
	assert.False(t, m.IsBound())
}

func TestMarker_VisibilityRules(t *testing.T) {
	w := newFakeWorld(1)
	w.vehicles[VehicleShip] = &fakeEntity{x: 3, y: 3, visible: false}
	w.events[7] = &fakeEntity{x: 8, y: 2, visible: true}

	player, _ := Parse("A3")
	player.SetPlayer()
	assert.True(t, player.IsVisible(w))
	w.player.visible = false
	assert.False(t, player.IsVisible(w))

	ship, _ := Parse("P3")
	ship.SetVehicle(VehicleShip)
	assert.False(t, ship.IsVisible(w), "driven vehicles are hidden")

	ev, _ := Parse("S2")
	ev.SetEvent(1, 7)
	assert.True(t, ev.IsVisible(w))
	other, _ := Parse("S2")
	other.SetEvent(4, 7)
	assert.False(t, other.IsVisible(w), "events of other maps never resolve")

	fixed, _ := Parse("R1")
	fixed.SetPosition(1, 2, 2)
	assert.True(t, fixed.IsVisible(w))
	fixed.SetPosition(9, 2, 2)
	assert.False(t, fixed.IsVisible(w))

	unbound, _ := Parse("R1")
	assert.False(t, unbound.IsVisible(w))
	assert.False(t, New().IsVisible(w))
}

func TestMarker_ExplorationGated(t *testing.T) {
	w := newFakeWorld(1)
	w.explored = map[[2]int]bool{{3, 4}: true}
	m, _ := Parse("P1M")
	m.SetPosition(1, 3, 4)
	assert.True(t, m.IsVisible(w))
	m.SetPosition(1, 3, 5)
	assert.False(t, m.IsVisible(w))

	plain, _ := Parse("P1")
	plain.SetPosition(1, 3, 5)
	assert.True(t, plain.IsVisible(w))
}

func TestMarker_AngleFollowsFacing(t *testing.T) {
	w := newFakeWorld(1)
	arrow, _ := Parse("A1")
	arrow.SetPlayer()
	cases := map[world.Direction]float64{
		world.South: 0,
		world.West:  90,
		world.East:  270,
		world.North: 180,
	}
	for dir, want := range cases {
		w.player.facing = dir
		assert.Equal(t, want, arrow.Angle(w), dir.String())
	}

	point, _ := Parse("P1")
	point.SetPlayer()
	w.player.facing = world.West
	assert.Equal(t, 0.0, point.Angle(w), "non-directional markers never rotate")

	fixed, _ := Parse("I4T")
	fixed.SetPosition(1, 0, 0)
	assert.Equal(t, 0.0, fixed.Angle(w))
}

func TestMarker_PositionAndName(t *testing.T) {
	w := newFakeWorld(1)
	w.player.x, w.player.y = 2.5, 7.25
	m, _ := Parse("A1")
	m.SetPlayer()
	x, y := m.Position(w)
	assert.Equal(t, 2.5, x)
	assert.Equal(t, 7.25, y)
	assert.Equal(t, "Hero", m.Name(w))

	fixed, _ := Parse("P1")
	fixed.SetPosition(1, 4, 6)
	assert.Equal(t, "", fixed.Name(w))
}

func TestMarker_Overlaps(t *testing.T) {
	w := newFakeWorld(1)
	circle, _ := Parse("C3-1")
	circle.SetPosition(1, 10, 10)
	assert.True(t, circle.Overlaps(w, 12, 12, 1, 1))
	assert.False(t, circle.Overlaps(w, 13, 13, 1, 1))

	point, _ := Parse("P1")
	point.SetPosition(1, 10, 10)
	assert.True(t, point.Overlaps(w, 11, 10, 12, 12))
	assert.False(t, point.Overlaps(w, 11.5, 10, 12, 12))

	point.SetPosition(2, 10, 10)
	assert.False(t, point.Overlaps(w, 10, 10, 12, 12), "hidden markers never overlap")
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "", DisplayName("EV001"))
	assert.Equal(t, "", DisplayName("#door"))
	assert.Equal(t, "Inn", DisplayName("Inn"))
	assert.Equal(t, "EVE", DisplayName("EVE"))
}

func TestTextPalette_OutOfRange(t *testing.T) {
	p := DefaultPalette()
	assert.Equal(t, p[0], p.Color(-1))
	assert.Equal(t, p[0], p.Color(PaletteSize))
	assert.Equal(t, p[18], p.Color(18))
}

func TestCollection_AddAndRemove(t *testing.T) {
	var buf bytes.Buffer
	c := NewCollection(zerolog.New(&buf))

	assert.NotNil(t, c.Add(1, 10, 10, "P3", 7))
	assert.NotNil(t, c.Add(1, 11, 10, "S2", 7))
	assert.NotNil(t, c.Add(1, 10, 10, "T1", 2))
	assert.Nil(t, c.Add(1, 4, 4, "Q9", 1))
	assert.Equal(t, 3, c.Len())
	assert.Contains(t, buf.String(), "Q9", "malformed spec is logged")

	assert.Equal(t, 2, c.RemoveByTag(7))
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 0, c.RemoveAt(2, 10, 10))
	assert.Equal(t, 1, c.RemoveAt(1, 10, 10))
	assert.Equal(t, 0, c.Len())
}
