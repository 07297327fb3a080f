// Package session runs the minimap of the active map. It owns every minimap
// component and advances them once per tick in a fixed order: exploration,
// image refresh, viewport, marker repaint.
package session

import (
	"fmt"
	"image"

	"github.com/rs/zerolog"
	"github.com/zyedidia/generic/mapset"

	"mapscope/pkg/engine/input"
	"mapscope/pkg/engine/world"
	"mapscope/pkg/game/assets"
	"mapscope/pkg/game/config"
	"mapscope/pkg/game/entities"
	"mapscope/pkg/minimap/browse"
	"mapscope/pkg/minimap/command"
	"mapscope/pkg/minimap/exploration"
	"mapscope/pkg/minimap/mapimage"
	"mapscope/pkg/minimap/marker"
	"mapscope/pkg/minimap/render"
	"mapscope/pkg/minimap/viewport"
)

// Map is the host data of one map
type Map struct {
	ID     int
	Grid   *world.Grid
	Events []*entities.Event
}

// Variables is a simple numbered variable store
type Variables map[int]int

// Variable returns slot n, 0 when unset
func (v Variables) Variable(n int) int {
	return v[n]
}

// Session holds the minimap state of the active map
type Session struct {
	cfg    *config.Config
	log    zerolog.Logger
	loader *assets.Loader
	vars   command.Variables

	enabled mapset.Set[int]
	genOpts mapimage.Options
	archive *exploration.Archive
	radius  int

	player   *entities.Player
	vehicles []*entities.Vehicle
	markers  *marker.Collection

	current     *Map
	explorer    *exploration.Explorer
	image       *mapimage.Generator
	browseImage *mapimage.Generator
	view        *viewport.Controller
	renderer    *render.Renderer
	browse      *browse.Mode
	exec        *command.Executor

	icons    *assets.Picture
	pinImage *assets.Picture

	lastX, lastY int
	ready        bool
}

// New builds a session from the configuration. vars may be nil.
func New(cfg *config.Config, loader *assets.Loader, vars command.Variables, log zerolog.Logger) (*Session, error) {
	enabled, err := cfg.MinimapMaps()
	if err != nil {
		return nil, fmt.Errorf("minimap.mapIds: %w", err)
	}
	genOpts, err := cfg.GeneratorOptions()
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:     cfg,
		log:     log,
		loader:  loader,
		vars:    vars,
		enabled: enabled,
		genOpts: genOpts,
		archive: exploration.NewArchive(),
		radius:  cfg.Exploration.Radius,
		player:  entities.NewPlayer(cfg.Minimap.PlayerMarker, log),
		markers: marker.NewCollection(log),
		view:    viewport.New(cfg.Minimap.Profiles, cfg.Minimap.Profile),
		renderer: render.New(render.Options{
			MarkerSize:    cfg.Minimap.MarkerSize,
			BlinkDuration: cfg.Minimap.BlinkDuration,
		}, log),
		browse: browse.New(cfg.BrowseOptions(), log),
	}
	for _, kind := range []marker.VehicleKind{marker.VehicleBoat, marker.VehicleShip, marker.VehicleAirship} {
		s.vehicles = append(s.vehicles, entities.NewVehicle(kind, cfg.VehicleMarker(kind), log))
	}
	s.exec = command.New(s, vars, log)
	if loader != nil {
		s.icons = loader.Load(cfg.Minimap.IconImage)
		s.pinImage = loader.Load(cfg.Browse.PinImage)
	}
	return s, nil
}

// SetArchive replaces the exploration archive, usually with one loaded from a save
func (s *Session) SetArchive(a *exploration.Archive) {
	if a != nil {
		s.archive = a
	}
}

// Archive returns the exploration archive of every visited map
func (s *Session) Archive() *exploration.Archive {
	return s.archive
}

// SetupMap switches to a map and places the player. Image, exploration
// table and viewport are replaced together; nothing is drawn until the
// switch is complete.
func (s *Session) SetupMap(m *Map, x, y int) {
	s.CloseBrowseMode()
	s.ready = false
	s.current = m
	s.explorer = nil
	s.image = nil
	s.browseImage = nil
	s.player.Locate(x, y)
	s.lastX, s.lastY = x, y

	if !s.enabled.Has(m.ID) {
		s.log.Info().Int("map", m.ID).Msg("Map has no minimap")
		return
	}

	if s.cfg.Exploration.Enabled {
		table, stale := s.archive.Setup(m.ID, m.Grid.Width(), m.Grid.Height())
		if stale {
			s.log.Debug().Int("map", m.ID).Msg("Exploration table size changed, rebuilt")
		}
		s.explorer = exploration.NewExplorer(table, m.Grid.IsLoopHorizontal(), m.Grid.IsLoopVertical(), s.radius)
		s.explorer.Reveal(x, y)
	}

	settings, _ := s.cfg.Map(m.ID)
	s.image = s.newGenerator(m, settings.Image)
	if settings.BrowseImage != "" {
		s.browseImage = s.newGenerator(m, settings.BrowseImage)
	}

	s.view.Setup(m.Grid, s.image, settings.ZoomValue(s.vars))
	s.view.SetCenter(s.player.RealX()+0.5, s.player.RealY()+0.5)
	s.ready = true
	s.log.Info().Int("map", m.ID).Int("w", m.Grid.Width()).Int("h", m.Grid.Height()).Msg("Minimap set up")
}

func (s *Session) newGenerator(m *Map, picture string) *mapimage.Generator {
	var src mapimage.PictureSource
	if s.loader != nil {
		if p := s.loader.Load(picture); p != nil {
			src = p
		}
	}
	g := mapimage.New(m.Grid, src, s.genOpts, s.log)
	if s.explorer != nil {
		g.SetFog(s.explorer)
	}
	return g
}

// Ready returns true when the minimap can be composited this frame
func (s *Session) Ready() bool {
	if !s.ready {
		return false
	}
	img := s.Image()
	_, shown := s.view.Profile()
	return img != nil && img.IsReady() && shown
}

// Update advances the session by one tick
func (s *Session) Update(in *input.State) {
	if s.current == nil {
		return
	}
	s.pollAssets()

	if s.browse.IsActive() {
		if !s.browse.Update(in) {
			s.leaveBrowse()
		}
	} else {
		s.handleMapInput(in)
	}
	s.updateCharacters()

	s.explore()
	s.refreshImages()
	if !s.browse.IsActive() {
		s.view.SetCenter(s.player.RealX()+0.5, s.player.RealY()+0.5)
	}
	s.view.Update()
	s.repaintMarkers()
}

func (s *Session) pollAssets() {
	if img, ok := s.icons.Image(); ok {
		s.renderer.SetIcons(img)
		s.icons = nil
	}
	if img, ok := s.pinImage.Image(); ok {
		s.renderer.SetPinImage(img)
		s.pinImage = nil
	}
}

var moves = []struct {
	action input.Action
	dir    world.Direction
}{
	{input.ActionMoveSouth, world.South},
	{input.ActionMoveWest, world.West},
	{input.ActionMoveEast, world.East},
	{input.ActionMoveNorth, world.North},
}

func (s *Session) handleMapInput(in *input.State) {
	if in == nil {
		return
	}
	for _, mv := range moves {
		if in.IsPressed(mv.action) {
			s.player.Step(s.current.Grid, mv.dir)
			break
		}
	}
	switch {
	case in.IsTriggered(input.ActionCycleMinimap):
		s.ShowMinimapAt((s.view.ProfileIndex() + 1) % (len(s.view.Profiles()) + 1))
	case in.IsTriggered(input.ActionOpenMap):
		s.OpenBrowseMode()
	case in.IsTriggered(input.ActionZoomIn):
		s.view.SmoothZoomTo(s.view.TargetZoom() * browse.ZoomStep)
	case in.IsTriggered(input.ActionZoomOut):
		s.view.SmoothZoomTo(s.view.TargetZoom() / browse.ZoomStep)
	}
}

func (s *Session) updateCharacters() {
	s.player.Update()
	for _, v := range s.vehicles {
		if !v.IsDriven() {
			v.Update()
		}
	}
	for _, e := range s.current.Events {
		e.Update()
	}
}

// explore reveals around the player after each completed step and clears a reached pin
func (s *Session) explore() {
	px, py := s.player.X(), s.player.Y()
	if px == s.lastX && py == s.lastY {
		return
	}
	s.lastX, s.lastY = px, py
	if s.explorer != nil {
		s.explorer.Reveal(px, py)
	}
	s.browse.CheckPin(s, s.current.Grid, float64(px), float64(py))
}

func (s *Session) refreshImages() {
	var dirty []image.Point
	if s.explorer != nil {
		dirty = s.explorer.Dirty()
	}
	if s.image != nil {
		s.image.Update(dirty)
	}
	if s.browseImage != nil {
		s.browseImage.Update(dirty)
	}
	if s.explorer != nil {
		s.explorer.ClearDirty()
	}
}

func (s *Session) repaintMarkers() {
	p, ok := s.view.Profile()
	if !ok || !s.Ready() {
		return
	}
	s.renderer.Resize(p.Width, p.Height)
	s.renderer.Paint(s.view, s, s.Markers())
	s.renderer.Tick()
}

// Markers returns every marker of the active map in drawing order
func (s *Session) Markers() []*marker.Marker {
	var out []*marker.Marker
	if s.current != nil {
		for _, e := range s.current.Events {
			out = appendMarker(out, e.Marker())
		}
	}
	out = append(out, s.markers.All()...)
	for _, v := range s.vehicles {
		out = appendMarker(out, v.Marker())
	}
	out = appendMarker(out, s.player.Marker())
	return appendMarker(out, s.browse.Pin())
}

func appendMarker(list []*marker.Marker, m *marker.Marker) []*marker.Marker {
	if m == nil {
		return list
	}
	return append(list, m)
}

// Image returns the raster shown this frame, the browse picture while browsing if one is set
func (s *Session) Image() *mapimage.Generator {
	if s.browse.IsActive() && s.browseImage != nil {
		return s.browseImage
	}
	return s.image
}

// View returns the viewport controller
func (s *Session) View() *viewport.Controller {
	return s.view
}

// Renderer returns the marker renderer
func (s *Session) Renderer() *render.Renderer {
	return s.renderer
}

// Browse returns the browse mode
func (s *Session) Browse() *browse.Mode {
	return s.browse
}

// Commands returns the command executor bound to this session
func (s *Session) Commands() *command.Executor {
	return s.exec
}

// Player returns the player
func (s *Session) Player() *entities.Player {
	return s.player
}

// Vehicle returns the vehicle of a kind
func (s *Session) Vehicle(kind marker.VehicleKind) *entities.Vehicle {
	for _, v := range s.vehicles {
		if v.Kind() == kind {
			return v
		}
	}
	return nil
}

// Current returns the active map, nil before the first SetupMap
func (s *Session) Current() *Map {
	return s.current
}

// Explorer returns the exploration state of the active map, nil when disabled
func (s *Session) Explorer() *exploration.Explorer {
	return s.explorer
}

// UserMarkers returns the markers placed by commands
func (s *Session) UserMarkers() *marker.Collection {
	return s.markers
}
