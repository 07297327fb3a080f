// Package render paints minimap markers onto two layered canvases: a lower
// layer at the box size and a padded upper layer for highlighted markers.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/rs/zerolog"
	"github.com/zyedidia/generic/cache"

	"mapscope/pkg/minimap/marker"
	"mapscope/pkg/minimap/viewport"
)

const (
	// DefaultMarkerSize is the marker radius in pixels
	DefaultMarkerSize = 4
	arrowCacheSize    = 64
)

// Viewport is the coordinate transform the renderer paints through
type Viewport interface {
	Rect() viewport.Rect
	XRate() float64
	YRate() float64
	AdjustX(x float64) float64
	AdjustY(y float64) float64
	EdgeProject(x, y float64) (cx, cy, angle float64)
}

// Options configures a Renderer
type Options struct {
	MarkerSize    int
	BlinkDuration int
	Palette       marker.Palette
}

type arrowKey struct {
	col  color.NRGBA
	size int
}

// Renderer owns the marker layers and everything animated on them
type Renderer struct {
	size    int
	palette marker.Palette
	width   int
	height  int

	lower *Canvas
	upper *Canvas

	arrows   *cache.Cache[arrowKey, *image.RGBA]
	blink    *Blinker
	pinFrame int

	icons image.Image
	pin   image.Image

	log zerolog.Logger
}

// New creates a renderer with empty layers
func New(opts Options, log zerolog.Logger) *Renderer {
	if opts.MarkerSize <= 0 {
		opts.MarkerSize = DefaultMarkerSize
	}
	if opts.Palette == nil {
		opts.Palette = marker.DefaultPalette()
	}
	r := &Renderer{
		size:    opts.MarkerSize,
		palette: opts.Palette,
		blink:   NewBlinker(opts.BlinkDuration),
		log:     log,
	}
	r.allocate()
	return r
}

func (r *Renderer) allocate() {
	r.lower = NewCanvas(r.width, r.height, 0)
	r.upper = NewCanvas(r.width, r.height, r.Padding())
	r.arrows = cache.New[arrowKey, *image.RGBA](arrowCacheSize)
}

// Resize matches the layers to a display box. Changing size drops cached sprites.
func (r *Renderer) Resize(w, h int) {
	if w == r.width && h == r.height {
		return
	}
	r.width, r.height = w, h
	r.allocate()
}

// Size returns the display box the layers were allocated for
func (r *Renderer) Size() (w, h int) {
	return r.width, r.height
}

// SetMarkerSize changes the marker radius and drops cached sprites
func (r *Renderer) SetMarkerSize(size int) {
	if size <= 0 || size == r.size {
		return
	}
	r.size = size
	r.allocate()
	r.log.Debug().Int("size", size).Msg("Marker size changed")
}

// MarkerSize returns the marker radius in pixels
func (r *Renderer) MarkerSize() int {
	return r.size
}

// Padding returns the overhang of the upper layer, three marker sizes
func (r *Renderer) Padding() int {
	return r.size * 3
}

// SetIcons sets the icon sheet used by icon markers. nil disables them.
func (r *Renderer) SetIcons(sheet image.Image) {
	r.icons = sheet
}

// SetPinImage replaces the drawn pin with a picture. nil restores the default.
func (r *Renderer) SetPinImage(img image.Image) {
	r.pin = img
}

// Lower returns the layer for ordinary markers, drawn at the box origin
func (r *Renderer) Lower() *image.RGBA {
	return r.lower.Image()
}

// Upper returns the padded layer for highlighted markers, drawn Padding
// pixels above and left of the box origin
func (r *Renderer) Upper() *image.RGBA {
	return r.upper.Image()
}

// Blinker returns the shared blink phase
func (r *Renderer) Blinker() *Blinker {
	return r.blink
}

// Tick advances blink and pin animation by one frame
func (r *Renderer) Tick() {
	r.blink.Tick()
	r.pinFrame++
}

// Paint clears both layers and draws every visible marker
func (r *Renderer) Paint(v Viewport, w marker.World, markers []*marker.Marker) {
	r.lower.Clear()
	r.upper.Clear()
	xRate, yRate := v.XRate(), v.YRate()
	for _, m := range markers {
		if m == nil || !m.IsVisible(w) {
			continue
		}
		mx, my := m.Position(w)
		x := v.AdjustX(mx) + 0.5
		y := v.AdjustY(my) + 0.5
		if m.IsHighlighted() {
			cx, cy, rad := v.EdgeProject(x, y)
			dx, dy := cx*xRate, cy*yRate
			r.paintMarker(r.upper, m, w, dx, dy, xRate)
			paintWedge(r.upper, dx, dy, r.size, rad)
			continue
		}
		r.paintMarker(r.lower, m, w, x*xRate, y*yRate, xRate)
	}
}

func (r *Renderer) paintMarker(c *Canvas, m *marker.Marker, w marker.World, x, y, xRate float64) {
	opacity := uint8(255)
	if m.IsBlink() {
		opacity = r.blink.Opacity()
	}
	c.SetOpacity(opacity)
	col := r.palette.Color(m.ColorIndex())
	switch m.Shape() {
	case marker.ShapePoint:
		paintPoint(c, x, y, r.size, col)
	case marker.ShapeArrow:
		sprite := r.arrow(col)
		c.DrawImage(sprite, sprite.Bounds(), x, y, radians(m.Angle(w)))
	case marker.ShapeIcon:
		if r.icons == nil {
			return
		}
		if sr := iconRect(r.icons.Bounds(), m.IconIndex()); !sr.Empty() {
			c.DrawImage(r.icons, sr, x, y, radians(m.Angle(w)))
		}
	case marker.ShapeTriangle:
		paintTriangle(c, x, y, r.size, col)
	case marker.ShapeSquare:
		paintSquare(c, x, y, r.size, col)
	case marker.ShapeRhombus:
		paintRhombus(c, x, y, r.size, col)
	case marker.ShapeCross:
		paintCross(c, x, y, r.size, col)
	case marker.ShapeCircle:
		paintCircle(c, x, y, float64(m.Radius())*xRate, col)
	case marker.ShapePin:
		if r.pin != nil {
			c.DrawImage(r.pin, r.pin.Bounds(), x, y, 0)
			return
		}
		paintPin(c, x, y, r.size, col, r.pinFrame)
	}
}

func (r *Renderer) arrow(col color.NRGBA) *image.RGBA {
	key := arrowKey{col: col, size: r.size}
	if sprite, ok := r.arrows.Get(key); ok {
		return sprite
	}
	sprite := arrowSprite(r.size, col)
	r.arrows.Put(key, sprite)
	return sprite
}

// CachedArrows returns the number of arrow sprites held
func (r *Renderer) CachedArrows() int {
	return r.arrows.Size()
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
