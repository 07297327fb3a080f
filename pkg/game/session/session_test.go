package session

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapscope/pkg/engine/input"
	"mapscope/pkg/engine/world"
	"mapscope/pkg/game/config"
	"mapscope/pkg/game/entities"
	"mapscope/pkg/minimap/exploration"
	"mapscope/pkg/minimap/marker"
	"mapscope/pkg/minimap/viewport"
)

func testConfig() *config.Config {
	return &config.Config{
		Minimap: config.Minimap{
			MapIDs:         "1-2",
			Profiles:       []viewport.Profile{{Width: 60, Height: 60, Opacity: 255, Zoom: 100}},
			Profile:        1,
			TileSize:       3,
			BlinkDuration:  80,
			MarkerSize:     4,
			PlayerMarker:   "A3h",
			VehicleMarkers: map[string]string{"boat": "P3"},
		},
		Exploration: config.Exploration{Enabled: true, Radius: 2, FogMode: "color", FogColor: "0,0,0,0.5"},
		Browse: config.Browse{
			Profile:    viewport.Profile{Width: 120, Height: 120, Opacity: 255, Zoom: viewport.FullZoom},
			MarkerSize: 6,
			MaxZoom:    800,
			PinEnabled: true,
		},
		Maps: map[string]config.MapSettings{"2": {Zoom: "v[1]"}},
	}
}

func openMap(id, w, h int, events ...*entities.Event) *Map {
	g := world.NewGrid(w, h)
	g.SetTileFlag(1, 0)
	g.ForEachCell(func(x, y int, c *world.Cell) {
		c.Tiles[0] = 1
	})
	return &Map{ID: id, Grid: g, Events: events}
}

func newSession(t *testing.T, vars Variables) *Session {
	t.Helper()
	s, err := New(testConfig(), nil, vars, zerolog.Nop())
	require.NoError(t, err)
	return s
}

func tick(s *Session, n int, in *input.State) {
	for i := 0; i < n; i++ {
		s.Update(in)
	}
}

func TestSetupMapExploresAroundPlayer(t *testing.T) {
	s := newSession(t, nil)
	s.SetupMap(openMap(1, 20, 20), 5, 5)
	require.True(t, s.Ready())
	require.NotNil(t, s.Explorer())

	assert.True(t, s.IsExplored(5, 5))
	assert.True(t, s.IsExplored(6, 5))
	assert.False(t, s.IsExplored(15, 15))

	s.Update(nil)
	assert.Empty(t, s.Explorer().Dirty(), "the image consumed the dirty tiles")
	assert.NotZero(t, s.Image().Version())
}

func TestMapWithoutMinimap(t *testing.T) {
	s := newSession(t, nil)
	s.SetupMap(openMap(3, 10, 10), 1, 1)
	assert.False(t, s.Ready())
	assert.Nil(t, s.Explorer())
	assert.True(t, s.IsExplored(9, 9), "no fog without exploration")
	s.Update(nil)

	s.OpenBrowseMode()
	assert.False(t, s.Browse().IsActive())
}

func TestStepRevealsAndRepaints(t *testing.T) {
	s := newSession(t, nil)
	s.SetupMap(openMap(1, 20, 20), 5, 5)
	assert.False(t, s.IsExplored(9, 5))

	in := input.NewState()
	in.Press(input.ActionMoveEast)
	s.Update(in)
	assert.Equal(t, 6, s.Player().X())
	assert.True(t, s.IsExplored(8, 5))

	tick(s, 20, nil)
	assert.Equal(t, 6.0, s.Player().RealX())
	cx, _ := s.View().Center()
	assert.Equal(t, 6.5, cx, "view follows the player")

	found := false
	up := s.Renderer().Upper()
	for i := 3; i < len(up.Pix); i += 4 {
		if up.Pix[i] != 0 {
			found = true
			break
		}
	}
	assert.True(t, found, "highlighted player marker painted on the upper layer")
}

func TestStaleTableRebuilt(t *testing.T) {
	s := newSession(t, nil)
	a := exploration.NewArchive()
	old := exploration.NewTable(5, 5)
	old.Fill(5)
	a.Put(1, old)
	s.SetArchive(a)

	s.SetupMap(openMap(1, 20, 20), 10, 10)
	table, ok := s.Archive().Table(1)
	require.True(t, ok)
	assert.Equal(t, 20, table.Width())
	assert.False(t, s.IsExplored(0, 0))
}

func TestMapZoomFromVariable(t *testing.T) {
	s := newSession(t, Variables{1: 200})
	s.SetupMap(openMap(2, 20, 20), 0, 0)
	assert.Equal(t, 200.0, s.View().Zoom())

	s.SetupMap(openMap(1, 20, 20), 0, 0)
	assert.Equal(t, 100.0, s.View().Zoom(), "profile zoom without a map zoom")
}

func TestCommands(t *testing.T) {
	s := newSession(t, Variables{4: 9})
	s.SetupMap(openMap(1, 20, 20), 5, 5)
	exec := s.Commands()

	require.NoError(t, exec.ExecuteLine("AddMarker 3 v[4] P2 7"))
	require.NoError(t, exec.ExecuteLine("AddMarker 4 4 S1 7"))
	assert.Equal(t, 2, s.UserMarkers().Len())
	assert.True(t, s.UserMarkers().All()[0].At(1, 3, 9))
	assert.Error(t, exec.ExecuteLine("AddMarker 4 4"))

	require.NoError(t, exec.ExecuteLine("RemoveMarkerXy 4 4"))
	assert.Equal(t, 1, s.UserMarkers().Len())
	require.NoError(t, exec.ExecuteLine("RemoveMarker 7"))
	assert.Equal(t, 0, s.UserMarkers().Len())

	require.NoError(t, exec.ExecuteLine("SetZoom 300"))
	assert.Equal(t, 300.0, s.View().Zoom())
	require.NoError(t, exec.ExecuteLine("SetZoom full"))
	assert.Equal(t, 100.0, s.View().Zoom())

	require.NoError(t, exec.ExecuteLine("FillAllMapping 0"))
	assert.True(t, s.IsExplored(19, 19))
	require.NoError(t, exec.ExecuteLine("ClearMapping 0"))
	assert.False(t, s.IsExplored(19, 19))
	assert.True(t, s.IsExplored(5, 5), "clearing re-explores around the player")

	require.NoError(t, exec.ExecuteLine("FillMappingXy 15 15 1"))
	assert.True(t, s.IsExplored(15, 15))

	require.NoError(t, exec.ExecuteLine("SetMappingRadius 4"))
	assert.True(t, s.IsExplored(8, 5))

	require.NoError(t, exec.ExecuteLine("FillAllMapping 42"), "unknown maps are ignored")

	require.NoError(t, exec.ExecuteLine("ShowMinimapAt 0"))
	assert.False(t, s.Ready())
	require.NoError(t, exec.ExecuteLine("ShowMinimap 1"))
	assert.True(t, s.Ready())
}

func TestFillOtherMap(t *testing.T) {
	s := newSession(t, nil)
	s.SetupMap(openMap(2, 8, 8), 0, 0)
	s.SetupMap(openMap(1, 20, 20), 5, 5)

	s.FillExploration(2)
	other, _ := s.Archive().Table(2)
	assert.True(t, other.IsExplored(7, 7))
	assert.False(t, s.IsExplored(19, 19), "active map untouched")
}

func TestResolve(t *testing.T) {
	inn := entities.NewEvent(1, 3, "Inn", "I1", []entities.Page{{}}, zerolog.Nop())
	s := newSession(t, nil)
	s.SetupMap(openMap(1, 20, 20, inn), 5, 5)

	assert.Equal(t, marker.Trackable(s.Player()), s.Resolve(marker.PlayerSubject()))
	assert.Equal(t, marker.Trackable(inn), s.Resolve(marker.EventSubject(1, 3)))
	assert.Nil(t, s.Resolve(marker.EventSubject(2, 3)))
	assert.Nil(t, s.Resolve(marker.EventSubject(1, 4)))

	assert.Nil(t, s.Resolve(marker.VehicleSubject(marker.VehicleBoat)), "boat parked elsewhere")
	boat := s.Vehicle(marker.VehicleBoat)
	boat.Park(1, 7, 7)
	assert.Equal(t, marker.Trackable(boat), s.Resolve(marker.VehicleSubject(marker.VehicleBoat)))

	ms := s.Markers()
	require.NotEmpty(t, ms)
	assert.Same(t, inn.Marker(), ms[0], "events first")
	assert.Same(t, s.Browse().Pin(), ms[len(ms)-1], "pin last")
	assert.Same(t, s.Player().Marker(), ms[len(ms)-2])
}

func TestBrowseModeSwitchesMarkerSize(t *testing.T) {
	s := newSession(t, nil)
	s.SetupMap(openMap(1, 20, 20), 5, 5)

	require.NoError(t, s.Commands().ExecuteLine("CallMenuMap"))
	require.True(t, s.Browse().IsActive())
	assert.Equal(t, 6, s.Renderer().MarkerSize())
	p, _ := s.View().Profile()
	assert.Equal(t, 120, p.Width)

	in := input.NewState()
	in.Trigger(input.ActionCancel)
	s.Update(in)
	assert.False(t, s.Browse().IsActive())
	assert.Equal(t, 4, s.Renderer().MarkerSize())
	p, _ = s.View().Profile()
	assert.Equal(t, 60, p.Width)
}

func TestWalkingOntoPinClearsIt(t *testing.T) {
	s := newSession(t, nil)
	s.SetupMap(openMap(1, 20, 20), 5, 5)
	pin := s.Browse().Pin()
	pin.SetPosition(1, 7, 5)
	require.True(t, pin.IsVisible(s))

	in := input.NewState()
	in.Press(input.ActionMoveEast)
	s.Update(in)
	assert.False(t, pin.IsBound())
}

func TestSetupMapClosesBrowse(t *testing.T) {
	s := newSession(t, nil)
	s.SetupMap(openMap(1, 20, 20), 5, 5)
	s.OpenBrowseMode()
	require.True(t, s.Browse().IsActive())

	s.SetupMap(openMap(2, 10, 10), 1, 1)
	assert.False(t, s.Browse().IsActive())
	assert.Equal(t, 4, s.Renderer().MarkerSize())
}
