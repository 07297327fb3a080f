// Package browse implements the full screen map mode: a free cursor over the
// minimap, drag and inertia scrolling, zoom paging and pin placement.
package browse

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"mapscope/pkg/engine/input"
	"mapscope/pkg/minimap/marker"
	"mapscope/pkg/minimap/viewport"
)

const (
	// ZoomStep is the ratio between neighbouring zoom levels
	ZoomStep = 1.75
	// WheelThreshold is the wheel delta that counts as one page
	WheelThreshold = 20
	// PinClearDistance is how close (in tiles) the player must walk to clear the pin
	PinClearDistance = 2

	cursorSpeed       = 4
	accelerateRate    = 2
	scrollTicks       = 8
	inertiaDecay      = 0.92
	arrowPeriod       = 96
	defaultCursorRate = 30
)

// View is the viewport surface browse mode drives
type View interface {
	Rect() viewport.Rect
	XRate() float64
	YRate() float64
	AdjustX(x float64) float64
	AdjustY(y float64) float64
	CorrectionX() float64
	CorrectionY() float64
	BackdropSize() (w, h float64)
	Center() (x, y float64)
	SetCenter(x, y float64)
	ZoomTo(z float64)
	SmoothZoomTo(z float64)
	TargetZoom() float64
	MinZoom() int
	SetOverride(p *viewport.Profile)
	SetLoopDisabled(disabled bool)
	SetZoomFloor(z int)
}

// Options configures browse mode
type Options struct {
	Profile      viewport.Profile
	MarkerSize   int
	MinZoom      int
	MaxZoom      int
	PinEnabled   bool
	PinColor     int
	CursorFrames int
	CursorRate   int
}

// DefaultOptions returns the stock full screen layout
func DefaultOptions() Options {
	return Options{
		Profile:      viewport.Profile{X: 32, Y: 32, Width: 752, Height: 560, Opacity: 255, Zoom: viewport.FullZoom},
		MarkerSize:   6,
		MinZoom:      0,
		MaxZoom:      800,
		PinEnabled:   true,
		CursorFrames: 1,
		CursorRate:   defaultCursorRate,
	}
}

// ScrollHints tells which edges have more map beyond them
type ScrollHints struct {
	Up, Down, Left, Right bool
	Opacity               uint8
}

// Mode is the browse mode state machine
type Mode struct {
	opts Options
	log  zerolog.Logger
	pin  *marker.Marker

	view    View
	terrain viewport.MapInfo
	world   marker.World
	markers func() []*marker.Marker

	active   bool
	lastZoom float64

	cursorX, cursorY float64

	scrollX, scrollY float64
	scrollRemaining  int
	accelX, accelY   float64
	dragging         bool
	lastTouchX       float64
	lastTouchY       float64
	tapping          bool

	arrowCount    int
	cursorCount   int
	cursorPattern int
}

// New creates an inactive browse mode and its pin marker
func New(opts Options, log zerolog.Logger) *Mode {
	if opts.CursorFrames <= 0 {
		opts.CursorFrames = 1
	}
	if opts.CursorRate <= 0 {
		opts.CursorRate = defaultCursorRate
	}
	pin := marker.New()
	_ = pin.SetSpec(fmt.Sprintf("!%dh", max(opts.PinColor, 0)))
	return &Mode{opts: opts, log: log, pin: pin}
}

// Options returns the configured options
func (m *Mode) Options() Options {
	return m.opts
}

// Pin returns the pin marker. It is unplaced until the player sets it.
func (m *Mode) Pin() *marker.Marker {
	return m.pin
}

// IsActive returns true while browse mode is open
func (m *Mode) IsActive() bool {
	return m.active
}

// Open enters browse mode centred on the player
func (m *Mode) Open(view View, terrain viewport.MapInfo, world marker.World, markers func() []*marker.Marker) {
	m.view = view
	m.terrain = terrain
	m.world = world
	m.markers = markers
	m.active = true
	m.lastZoom = view.TargetZoom()

	profile := m.opts.Profile
	view.SetOverride(&profile)
	view.SetLoopDisabled(true)
	view.SetZoomFloor(m.opts.MinZoom)
	view.ZoomTo(float64(profile.Zoom))

	m.clearScroll()
	m.cursorCount, m.cursorPattern = 0, 0
	m.cursorX, m.cursorY = 0, 0
	if p := world.Resolve(marker.PlayerSubject()); p != nil {
		m.cursorX, m.cursorY = p.RealX(), p.RealY()
	}
	m.setCenter(m.cursorX+0.5, m.cursorY+0.5)
	m.log.Debug().Float64("zoom", view.TargetZoom()).Msg("Browse mode opened")
}

// Close leaves browse mode and restores the zoom it was opened with
func (m *Mode) Close() {
	if !m.active {
		return
	}
	m.active = false
	m.view.SetOverride(nil)
	m.view.SetLoopDisabled(false)
	m.view.SetZoomFloor(0)
	m.view.ZoomTo(m.lastZoom)
	m.clearScroll()
	m.log.Debug().Msg("Browse mode closed")
}

func (m *Mode) clearScroll() {
	m.scrollX, m.scrollY, m.scrollRemaining = 0, 0, 0
	m.accelX, m.accelY = 0, 0
	m.dragging = false
	m.tapping = false
}

// Cursor returns the cursor position in tiles
func (m *Mode) Cursor() (x, y float64) {
	return m.cursorX, m.cursorY
}

// SetCursor moves the cursor, clamped to the map
func (m *Mode) SetCursor(x, y float64) {
	m.cursorX = clamp(x, 0, float64(m.terrain.Width()-1))
	m.cursorY = clamp(y, 0, float64(m.terrain.Height()-1))
}

// Update runs one tick of browse mode. It returns false once the mode has closed.
func (m *Mode) Update(in *input.State) bool {
	if !m.active {
		return false
	}
	m.processCursorMove(in)
	m.processHandling(in)
	if !m.active {
		return false
	}
	m.processTouch(in)
	m.processWheel(in)
	if !m.active {
		return false
	}
	m.arrowCount = (m.arrowCount + 1) % arrowPeriod
	m.processDrag(in)
	m.updateSmoothScroll()
	m.updateInertia()
	m.updateCursorAnimation()
	return true
}

func (m *Mode) processCursorMove(in *input.State) {
	lx, ly := m.cursorX, m.cursorY
	dash := 1.0
	if in.IsPressed(input.ActionAccelerate) {
		dash = accelerateRate
	}
	dx := cursorSpeed / m.view.XRate() * dash
	dy := cursorSpeed / m.view.YRate() * dash
	if in.IsPressed(input.ActionCursorDown) {
		m.cursorY = math.Min(ly+dy, float64(m.terrain.Height()-1))
	}
	if in.IsPressed(input.ActionCursorUp) {
		m.cursorY = math.Max(ly-dy, 0)
	}
	if in.IsPressed(input.ActionCursorRight) {
		m.cursorX = math.Min(lx+dx, float64(m.terrain.Width()-1))
	}
	if in.IsPressed(input.ActionCursorLeft) {
		m.cursorX = math.Max(lx-dx, 0)
	}
	if lx != m.cursorX || ly != m.cursorY {
		m.SmoothScrollTo(m.cursorX+0.5, m.cursorY+0.5)
	}
}

func (m *Mode) processHandling(in *input.State) {
	switch {
	case in.IsTriggered(input.ActionZoomOut):
		m.ZoomOut()
	case in.IsTriggered(input.ActionZoomIn):
		m.ZoomIn()
	case in.IsTriggered(input.ActionOK):
		m.TogglePin()
	case in.IsTriggered(input.ActionCancel):
		m.Close()
	}
}

func (m *Mode) processTouch(in *input.State) {
	if in == nil {
		return
	}
	p := in.Pointer
	if p.Hovered {
		m.touchSelect(p.X, p.Y, false)
	} else if p.Triggered {
		m.touchSelect(p.X, p.Y, true)
	}
	if m.tapping && p.Released {
		m.tapping = false
		m.TogglePin()
	} else if p.Cancelled {
		m.Close()
	}
}

func (m *Mode) touchSelect(sx, sy float64, trigger bool) {
	x, y, ok := m.ScreenToTile(sx, sy)
	if !ok {
		return
	}
	if trigger {
		m.tapping = true
	}
	m.cursorX, m.cursorY = x, y
}

func (m *Mode) processWheel(in *input.State) {
	if in == nil || !m.insideFrame(in.Pointer.X, in.Pointer.Y) {
		return
	}
	if in.WheelY >= WheelThreshold {
		m.ZoomOut()
	}
	if in.WheelY <= -WheelThreshold {
		m.ZoomIn()
	}
}

func (m *Mode) processDrag(in *input.State) {
	if in == nil {
		return
	}
	p := in.Pointer
	if p.Triggered && m.insideFrame(p.X, p.Y) {
		m.dragging = true
		m.lastTouchX, m.lastTouchY = p.X, p.Y
		m.accelX, m.accelY = 0, 0
	}
	if !m.dragging {
		return
	}
	if p.Released {
		m.dragging = false
	} else if p.Moved {
		m.accelX = (m.lastTouchX - p.X) / m.view.XRate()
		m.accelY = (m.lastTouchY - p.Y) / m.view.YRate()
		m.lastTouchX, m.lastTouchY = p.X, p.Y
		// a drag is not a tap
		m.tapping = false
	}
}

// SmoothScrollTo eases the view centre to a tile position over 8 ticks
func (m *Mode) SmoothScrollTo(x, y float64) {
	m.scrollX = clamp(x, 0, float64(m.terrain.Width()))
	m.scrollY = clamp(y, 0, float64(m.terrain.Height()))
	m.scrollRemaining = scrollTicks
}

func (m *Mode) updateSmoothScroll() {
	if m.scrollRemaining <= 0 {
		return
	}
	d := float64(m.scrollRemaining)
	m.scrollRemaining--
	cx, cy := m.view.Center()
	m.setCenter(cx+(m.scrollX-cx)/d, cy+(m.scrollY-cy)/d)
}

// SetInertia starts a decaying scroll in tiles per tick
func (m *Mode) SetInertia(x, y float64) {
	m.accelX, m.accelY = x, y
}

// Inertia returns the outstanding scroll velocity
func (m *Mode) Inertia() (x, y float64) {
	return m.accelX, m.accelY
}

func (m *Mode) updateInertia() {
	if m.accelX == 0 && m.accelY == 0 {
		return
	}
	m.scrollBy(m.accelX, m.accelY)
	m.accelX *= inertiaDecay
	m.accelY *= inertiaDecay
	if math.Abs(m.accelX) < 1 {
		m.accelX = 0
	}
	if math.Abs(m.accelY) < 1 {
		m.accelY = 0
	}
}

func (m *Mode) scrollBy(dx, dy float64) {
	r := m.view.Rect()
	m.setCenter(r.X+r.W/2+dx, r.Y+r.H/2+dy)
}

func (m *Mode) setCenter(x, y float64) {
	m.view.SetCenter(mod(x, float64(m.terrain.Width())), mod(y, float64(m.terrain.Height())))
}

// ZoomList returns the zoom levels from MaxZoom down to the minimum
func (m *Mode) ZoomList() []float64 {
	lo := float64(m.view.MinZoom())
	var list []float64
	for z := float64(m.opts.MaxZoom); z > lo*ZoomStep; z /= ZoomStep {
		list = append(list, z)
	}
	return append(list, lo)
}

func (m *Mode) zoomIndex(list []float64) int {
	target := m.view.TargetZoom()
	for i, z := range list {
		if target >= z {
			return i
		}
	}
	return -1
}

// ZoomIn steps to the next larger zoom level
func (m *Mode) ZoomIn() {
	list := m.ZoomList()
	if i := m.zoomIndex(list); i > 0 {
		m.view.SmoothZoomTo(list[i-1])
	}
}

// ZoomOut steps to the next smaller zoom level
func (m *Mode) ZoomOut() {
	list := m.ZoomList()
	if i := m.zoomIndex(list); i < len(list)-1 {
		m.view.SmoothZoomTo(list[i+1])
	}
}

// HitTest returns every visible marker overlapping a tile position, top-most first
func (m *Mode) HitTest(x, y float64) []*marker.Marker {
	all := m.allMarkers()
	var hits []*marker.Marker
	xr, yr := m.view.XRate(), m.view.YRate()
	for i := len(all) - 1; i >= 0; i-- {
		if all[i] != nil && all[i].Overlaps(m.world, x, y, xr, yr) {
			hits = append(hits, all[i])
		}
	}
	return hits
}

func (m *Mode) allMarkers() []*marker.Marker {
	var all []*marker.Marker
	if m.markers != nil {
		all = m.markers()
	}
	return append(all, m.pin)
}

// Hovered returns the marker under the cursor other than the pin, or nil
func (m *Mode) Hovered() *marker.Marker {
	for _, h := range m.HitTest(m.cursorX, m.cursorY) {
		if h != m.pin {
			return h
		}
	}
	return nil
}

// HoverName returns the label of the marker under the cursor
func (m *Mode) HoverName() string {
	if h := m.Hovered(); h != nil {
		return h.Name(m.world)
	}
	return ""
}

// TogglePin clears, binds or places the pin at the cursor
func (m *Mode) TogglePin() {
	if !m.opts.PinEnabled {
		return
	}
	hits := m.HitTest(m.cursorX, m.cursorY)
	var target *marker.Marker
	for _, h := range hits {
		if h == m.pin {
			m.pin.ClearPosition()
			return
		}
		if target == nil && !h.IsPlayer() {
			target = h
		}
	}
	mapID := m.world.MapID()
	switch {
	case target == nil:
		m.pin.SetPosition(mapID, m.cursorX, m.cursorY)
	case target.Subject().Kind != marker.SubjectNone:
		m.pin.SetSubject(target.Subject())
	default:
		x, y := target.Position(m.world)
		m.pin.SetPosition(mapID, x, y)
	}
}

// CheckPin clears the pin once the player stands near it
func (m *Mode) CheckPin(world marker.World, terrain viewport.MapInfo, px, py float64) {
	if !m.pin.IsVisible(world) {
		return
	}
	x, y := m.pin.Position(world)
	dx := delta(px, x, float64(terrain.Width()), terrain.IsLoopHorizontal())
	dy := delta(py, y, float64(terrain.Height()), terrain.IsLoopVertical())
	if math.Abs(dx) < PinClearDistance && math.Abs(dy) < PinClearDistance {
		m.pin.ClearPosition()
		m.log.Debug().Msg("Pin reached")
	}
}

func delta(a, b, size float64, loop bool) float64 {
	d := a - b
	if loop && math.Abs(d) > size/2 {
		if d < 0 {
			d += size
		} else {
			d -= size
		}
	}
	return d
}

// ScreenToTile converts a screen pixel inside the map frame into a cursor position
func (m *Mode) ScreenToTile(sx, sy float64) (x, y float64, ok bool) {
	if !m.insideFrame(sx, sy) {
		return 0, 0, false
	}
	p := m.opts.Profile
	r := m.view.Rect()
	lx := sx - float64(p.X) - m.view.CorrectionX()
	ly := sy - float64(p.Y) - m.view.CorrectionY()
	return lx/m.view.XRate() + r.X - 0.5, ly/m.view.YRate() + r.Y - 0.5, true
}

func (m *Mode) insideFrame(sx, sy float64) bool {
	if m.view == nil {
		return false
	}
	p := m.opts.Profile
	lx := sx - float64(p.X) - m.view.CorrectionX()
	ly := sy - float64(p.Y) - m.view.CorrectionY()
	w, h := m.view.BackdropSize()
	return lx >= 0 && ly >= 0 && lx < w && ly < h
}

// CursorScreen returns the cursor centre relative to the map box and whether it is in view
func (m *Mode) CursorScreen() (x, y float64, visible bool) {
	cx, cy := m.cursorX+0.5, m.cursorY+0.5
	r := m.view.Rect()
	visible = cx >= r.X && cy >= r.Y && cx < r.X+r.W && cy < r.Y+r.H
	return m.view.AdjustX(cx) * m.view.XRate(), m.view.AdjustY(cy) * m.view.YRate(), visible
}

// CursorPattern returns the animation frame of the cursor sprite
func (m *Mode) CursorPattern() int {
	return m.cursorPattern
}

func (m *Mode) updateCursorAnimation() {
	m.cursorCount++
	if m.cursorCount >= m.opts.CursorRate {
		m.cursorCount = 0
		m.cursorPattern = (m.cursorPattern + 1) % m.opts.CursorFrames
	}
}

// ScrollHints reports the pulsing edge arrows
func (m *Mode) ScrollHints() ScrollHints {
	r := m.view.Rect()
	w, h := float64(m.terrain.Width()), float64(m.terrain.Height())
	half := arrowPeriod / 2
	return ScrollHints{
		Up:      r.Y > 0,
		Down:    r.Y+r.H < h,
		Left:    r.X > 0,
		Right:   r.X+r.W < w,
		Opacity: uint8(192 - absInt(m.arrowCount-half)*2),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func mod(v, n float64) float64 {
	if n <= 0 {
		return v
	}
	return math.Mod(math.Mod(v, n)+n, n)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
