// Package viewport computes which part of the map the minimap shows and how
// map coordinates translate into minimap pixels.
package viewport

import "math"

const (
	// SmoothZoomTicks is the length of an eased zoom animation
	SmoothZoomTicks = 24
	// FullZoom requests the smallest zoom that fits the whole map
	FullZoom = -1
	// DefaultZoom requests the map's or profile's configured zoom
	DefaultZoom = 0
)

// Profile is one configured on-screen placement of the minimap
type Profile struct {
	X       int    `mapstructure:"x"`
	Y       int    `mapstructure:"y"`
	Width   int    `mapstructure:"width"`
	Height  int    `mapstructure:"height"`
	Opacity int    `mapstructure:"opacity"`
	Zoom    int    `mapstructure:"zoom"`
	Frame   string `mapstructure:"frame"`
}

// Rect is a rectangle in tile units
type Rect struct {
	X, Y, W, H float64
}

// MapInfo is the map geometry the controller needs
type MapInfo interface {
	Width() int
	Height() int
	IsLoopHorizontal() bool
	IsLoopVertical() bool
}

// Raster is the minimap image geometry the controller needs
type Raster interface {
	TileWidth() float64
	TileHeight() float64
	MinZoom(boxW, boxH int) int
}

// Controller owns zoom, scroll and coordinate transforms for the active map
type Controller struct {
	profiles []Profile
	index    int
	override *Profile

	terrain  MapInfo
	raster   Raster
	metaZoom int

	zoom      float64
	target    float64
	remaining int

	rect             Rect
	centerX, centerY float64

	loopDisabled bool
	zoomFloor    int
}

// New creates a controller with the configured display profiles. Profile
// indexes are 1-based; index 0 hides the minimap.
func New(profiles []Profile, initialIndex int) *Controller {
	c := &Controller{
		profiles: profiles,
		zoom:     100,
		target:   100,
	}
	if initialIndex >= 0 && initialIndex <= len(profiles) {
		c.index = initialIndex
	}
	return c
}

// Setup resets the controller for a newly entered map. metaZoom is the
// map's own initial zoom (0 when unset).
func (c *Controller) Setup(terrain MapInfo, raster Raster, metaZoom int) {
	c.terrain = terrain
	c.raster = raster
	c.metaZoom = max(metaZoom, 0)
	c.rect = Rect{}
	c.zoom = c.resolveZoom(DefaultZoom)
	c.target = c.zoom
	c.remaining = 0
}

// SetRaster swaps the image geometry source, for example when a picture finishes loading
func (c *Controller) SetRaster(raster Raster) {
	c.raster = raster
}

// Profiles returns the configured profiles
func (c *Controller) Profiles() []Profile {
	return c.profiles
}

// ProfileIndex returns the 1-based index of the shown profile, 0 when hidden
func (c *Controller) ProfileIndex() int {
	return c.index
}

// Profile returns the active placement. An override (browse mode) wins over the indexed profile.
func (c *Controller) Profile() (Profile, bool) {
	if c.override != nil {
		return *c.override, true
	}
	if c.index > 0 && c.index <= len(c.profiles) {
		return c.profiles[c.index-1], true
	}
	return Profile{}, false
}

// ShowProfile selects a profile (0 hides) and re-applies the default zoom if it changed
func (c *Controller) ShowProfile(index int) {
	if index < 0 || index > len(c.profiles) {
		return
	}
	if c.index != index {
		c.index = index
		c.ZoomTo(DefaultZoom)
	}
}

// SetOverride forces a placement regardless of the selected profile. nil removes it.
func (c *Controller) SetOverride(p *Profile) {
	c.override = p
}

// SetLoopDisabled suppresses map wraparound
func (c *Controller) SetLoopDisabled(disabled bool) {
	c.loopDisabled = disabled
}

// SetZoomFloor raises the minimum zoom, 0 removes the floor
func (c *Controller) SetZoomFloor(z int) {
	c.zoomFloor = z
}

// Zoom returns the current zoom percentage
func (c *Controller) Zoom() float64 {
	return c.zoom
}

// TargetZoom returns the zoom percentage being eased towards
func (c *Controller) TargetZoom() float64 {
	return c.target
}

// IsAnimating returns true while a smooth zoom is running
func (c *Controller) IsAnimating() bool {
	return c.remaining > 0
}

// MinZoom returns the smallest allowed zoom for the active profile
func (c *Controller) MinZoom() int {
	z := 1
	if p, ok := c.Profile(); ok && c.raster != nil {
		z = c.raster.MinZoom(p.Width, p.Height)
	}
	return max(z, c.zoomFloor)
}

func (c *Controller) resolveZoom(z float64) float64 {
	switch {
	case z != DefaultZoom:
		return z
	case c.metaZoom > 0:
		return float64(c.metaZoom)
	}
	if p, ok := c.Profile(); ok && p.Zoom != 0 {
		return float64(p.Zoom)
	}
	return c.target
}

// ZoomTo jumps to a zoom percentage. DefaultZoom uses the map or profile zoom;
// FullZoom (or anything below the minimum) clamps to the minimum.
func (c *Controller) ZoomTo(z float64) {
	c.zoom = c.resolveZoom(z)
	c.target = c.zoom
	c.remaining = 0
	c.clampZoom()
	c.updateScroll()
}

// SmoothZoomTo eases to a zoom percentage over SmoothZoomTicks ticks
func (c *Controller) SmoothZoomTo(z float64) {
	c.target = c.resolveZoom(z)
	c.clampZoom()
	c.remaining = SmoothZoomTicks
}

func (c *Controller) clampZoom() {
	floor := float64(c.MinZoom())
	c.zoom = math.Max(c.zoom, floor)
	c.target = math.Max(c.target, floor)
}

// XRate returns display pixels per map tile horizontally
func (c *Controller) XRate() float64 {
	tw := 1.0
	if c.raster != nil {
		tw = c.raster.TileWidth()
	}
	return tw * c.zoom / 100
}

// YRate returns display pixels per map tile vertically
func (c *Controller) YRate() float64 {
	th := 1.0
	if c.raster != nil {
		th = c.raster.TileHeight()
	}
	return th * c.zoom / 100
}

// IsZoomBottom returns true when the target zoom is the minimum
func (c *Controller) IsZoomBottom() bool {
	return c.target == float64(c.MinZoom())
}

// IsLoopHorizontal returns true if the view wraps horizontally
func (c *Controller) IsLoopHorizontal() bool {
	return c.terrain != nil && c.terrain.IsLoopHorizontal() && !c.loopDisabled && !c.IsZoomBottom()
}

// IsLoopVertical returns true if the view wraps vertically
func (c *Controller) IsLoopVertical() bool {
	return c.terrain != nil && c.terrain.IsLoopVertical() && !c.loopDisabled && !c.IsZoomBottom()
}

// SetCenter sets the map position the view is centred on
func (c *Controller) SetCenter(x, y float64) {
	c.centerX, c.centerY = x, y
}

// Center returns the map position the view is centred on
func (c *Controller) Center() (x, y float64) {
	return c.centerX, c.centerY
}

// Update advances the zoom animation and recomputes the display rectangle
func (c *Controller) Update() {
	c.updateZoom()
	c.clampZoom()
	c.updateScroll()
}

func (c *Controller) updateZoom() {
	if c.remaining <= 0 {
		return
	}
	d := float64(c.remaining)
	c.remaining--
	c.zoom += (c.target - c.zoom) * (d*d - (d-1)*(d-1)) / (d * d)
}

func (c *Controller) updateScroll() {
	if c.terrain == nil {
		return
	}
	if p, ok := c.Profile(); ok {
		c.rect.W = float64(p.Width) / c.XRate()
		c.rect.H = float64(p.Height) / c.YRate()
	}
	mw, mh := float64(c.terrain.Width()), float64(c.terrain.Height())
	c.rect.X = origin(c.centerX-c.rect.W/2, mw, c.rect.W, c.IsLoopHorizontal())
	c.rect.Y = origin(c.centerY-c.rect.H/2, mh, c.rect.H, c.IsLoopVertical())
}

func origin(v, size, span float64, loop bool) float64 {
	if loop {
		return mod(v, size)
	}
	// lower bound wins when the map is smaller than the view
	return math.Max(math.Min(v, size-span), 0)
}

func mod(v, n float64) float64 {
	return math.Mod(math.Mod(v, n)+n, n)
}

// Rect returns the visible rectangle in tiles
func (c *Controller) Rect() Rect {
	return c.rect
}

// AdjustX converts a map x into view-relative tiles, unwrapping across the seam
func (c *Controller) AdjustX(x float64) float64 {
	mw := c.mapWidth()
	if c.IsLoopHorizontal() && x < c.rect.X-(mw-c.rect.W)/2 {
		return x - c.rect.X + mw
	}
	return x - c.rect.X
}

// AdjustY converts a map y into view-relative tiles, unwrapping across the seam
func (c *Controller) AdjustY(y float64) float64 {
	mh := c.mapHeight()
	if c.IsLoopVertical() && y < c.rect.Y-(mh-c.rect.H)/2 {
		return y - c.rect.Y + mh
	}
	return y - c.rect.Y
}

func (c *Controller) mapWidth() float64 {
	if c.terrain == nil {
		return 0
	}
	return float64(c.terrain.Width())
}

func (c *Controller) mapHeight() float64 {
	if c.terrain == nil {
		return 0
	}
	return float64(c.terrain.Height())
}

// CorrectionX is the pixel offset that centres a map narrower than the view
func (c *Controller) CorrectionX() float64 {
	sx := (c.mapWidth() - c.rect.W) / 2
	if sx < 0 {
		return -sx * c.XRate()
	}
	return 0
}

// CorrectionY is the pixel offset that centres a map shorter than the view
func (c *Controller) CorrectionY() float64 {
	sy := (c.mapHeight() - c.rect.H) / 2
	if sy < 0 {
		return -sy * c.YRate()
	}
	return 0
}

// BackdropSize returns the on-screen size in pixels of the visible map part
func (c *Controller) BackdropSize() (w, h float64) {
	return math.Min(c.rect.W, c.mapWidth()) * c.XRate(), math.Min(c.rect.H, c.mapHeight()) * c.YRate()
}

// EdgeProject pulls a view-relative point onto the view border along the
// line from the view centre. The angle (radians) points from the centre
// towards the original point and is NaN when no clamping was needed.
func (c *Controller) EdgeProject(x, y float64) (cx, cy, angle float64) {
	hw, hh := c.rect.W/2, c.rect.H/2
	ox, oy := x-hw, y-hh
	sx, sy := ox, oy
	if sx < -hw {
		sy *= -hw / sx
		sx = -hw
	} else if sx > hw {
		sy *= hw / sx
		sx = hw
	}
	if sy < -hh {
		sx *= -hh / sy
		sy = -hh
	} else if sy > hh {
		sx *= hh / sy
		sy = hh
	}
	angle = math.NaN()
	if sx != ox || sy != oy {
		angle = math.Atan2(sy, sx)
	}
	return sx + hw, sy + hh, angle
}

// Span is one piece of the visible rectangle. Src lies inside the map; Dst is
// the offset of the piece from the view origin, both in tiles.
type Span struct {
	Src        Rect
	DstX, DstY float64
}

type segment struct {
	src, length, dst float64
}

// Spans splits the visible rectangle at the looping seams. A view that does
// not wrap yields a single span.
func (c *Controller) Spans() []Span {
	if c.terrain == nil {
		return nil
	}
	xs := segments(c.rect.X, c.rect.W, c.mapWidth(), c.IsLoopHorizontal())
	ys := segments(c.rect.Y, c.rect.H, c.mapHeight(), c.IsLoopVertical())
	spans := make([]Span, 0, len(xs)*len(ys))
	for _, y := range ys {
		for _, x := range xs {
			spans = append(spans, Span{
				Src:  Rect{X: x.src, Y: y.src, W: x.length, H: y.length},
				DstX: x.dst,
				DstY: y.dst,
			})
		}
	}
	return spans
}

func segments(origin, span, size float64, loop bool) []segment {
	if size <= 0 || span <= 0 {
		return nil
	}
	if !loop {
		return []segment{{src: origin, length: math.Min(span, size-origin)}}
	}
	var out []segment
	src, covered := mod(origin, size), 0.0
	for covered < span {
		n := math.Min(span-covered, size-src)
		out = append(out, segment{src: src, length: n, dst: covered})
		covered += n
		src = 0
	}
	return out
}
