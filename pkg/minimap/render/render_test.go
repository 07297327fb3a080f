package render

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapscope/pkg/minimap/marker"
	"mapscope/pkg/minimap/viewport"
)

type fakeWorld struct{ mapID int }

func (w fakeWorld) MapID() int { return w.mapID }
func (w fakeWorld) Resolve(marker.Subject) marker.Trackable { return nil }
func (w fakeWorld) IsExplored(_, _ int) bool { return true }

type fakeMap struct{ w, h int }

func (m fakeMap) Width() int { return m.w }
func (m fakeMap) Height() int { return m.h }
func (m fakeMap) IsLoopHorizontal() bool { return false }
func (m fakeMap) IsLoopVertical() bool { return false }

type fakeRaster struct{}

func (fakeRaster) TileWidth() float64 { return 10 }
func (fakeRaster) TileHeight() float64 { return 10 }
func (fakeRaster) MinZoom(_, _ int) int { return 1 }

// newView shows a 10x10 tile window at 10px per tile, origin at (0,0)
func newView(mapW int) *viewport.Controller {
	v := viewport.New([]viewport.Profile{{Width: 100, Height: 100, Opacity: 255, Zoom: 100}}, 1)
	v.Setup(fakeMap{w: mapW, h: 10}, fakeRaster{}, 0)
	v.SetCenter(5, 5)
	v.Update()
	return v
}

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r := New(Options{MarkerSize: 4, BlinkDuration: 4}, zerolog.Nop())
	r.Resize(100, 100)
	return r
}

func fixed(t *testing.T, spec string, x, y float64) *marker.Marker {
	t.Helper()
	m, err := marker.Parse(spec)
	require.NoError(t, err)
	m.SetPosition(1, x, y)
	return m
}

func TestBlinker(t *testing.T) {
	b := NewBlinker(4)
	assert.Equal(t, uint8(255), b.Opacity())
	b.Tick()
	assert.Equal(t, uint8(191), b.Opacity())
	b.Tick()
	b.Tick()
	assert.Equal(t, uint8(63), b.Opacity())
	b.Tick()
	assert.Equal(t, uint8(255), b.Opacity(), "wraps to the full period")

	assert.Equal(t, uint8(255), NewBlinker(0).Opacity())
}

func TestLayerSizes(t *testing.T) {
	r := newRenderer(t)
	assert.Equal(t, image.Rect(0, 0, 100, 100), r.Lower().Bounds())
	assert.Equal(t, 12, r.Padding())
	assert.Equal(t, image.Rect(0, 0, 124, 124), r.Upper().Bounds())
}

func TestPaintPoint(t *testing.T) {
	r := newRenderer(t)
	r.Paint(newView(10), fakeWorld{mapID: 1}, []*marker.Marker{fixed(t, "P3", 4, 4)})

	want := marker.DefaultPalette().Color(3)
	got := r.Lower().RGBAAt(45, 45)
	assert.Equal(t, color.RGBA{R: want.R, G: want.G, B: want.B, A: 255}, got)
	assert.Equal(t, uint8(0), r.Lower().RGBAAt(30, 45).A, "outside the point")
	assert.Equal(t, uint8(0), r.Upper().RGBAAt(57, 57).A, "upper layer untouched")
}

func TestPaintSkipsHiddenMarkers(t *testing.T) {
	r := newRenderer(t)
	other := fixed(t, "S1", 4, 4)
	other.SetPosition(2, 4, 4)
	r.Paint(newView(10), fakeWorld{mapID: 1}, []*marker.Marker{other, nil})
	for _, px := range r.Lower().Pix {
		require.Zero(t, px)
	}
}

func TestPaintHighlightedGoesToUpperLayer(t *testing.T) {
	r := newRenderer(t)
	r.Paint(newView(10), fakeWorld{mapID: 1}, []*marker.Marker{fixed(t, "S2H", 4, 4)})
	assert.Equal(t, uint8(0), r.Lower().RGBAAt(45, 45).A)
	assert.Equal(t, uint8(255), r.Upper().RGBAAt(45+12, 45+12).A)
}

func TestPaintHighlightedClampsToEdge(t *testing.T) {
	r := newRenderer(t)
	// marker far right of the 10 tile window, on its centre row
	r.Paint(newView(40), fakeWorld{mapID: 1}, []*marker.Marker{fixed(t, "S2H", 30, 4.5)})
	up := r.Upper()
	pad := 12
	assert.Equal(t, uint8(255), up.RGBAAt(100+pad, 50+pad).A, "square pulled onto the right edge")
	// white wedge between 4 and 8 pixels beyond the marker, pointing right
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, up.RGBAAt(100+pad+6, 50+pad))
}

func TestPaintBlinkUsesSharedPhase(t *testing.T) {
	r := newRenderer(t)
	view := newView(10)
	markers := []*marker.Marker{fixed(t, "P3B", 4, 4)}
	r.Paint(view, fakeWorld{mapID: 1}, markers)
	full := r.Lower().RGBAAt(45, 45).A

	r.Tick()
	r.Tick()
	r.Paint(view, fakeWorld{mapID: 1}, markers)
	dim := r.Lower().RGBAAt(45, 45).A
	assert.Equal(t, uint8(255), full)
	assert.Less(t, dim, full)
	assert.Greater(t, dim, uint8(0))
}

func TestPaintCircleFadesToRim(t *testing.T) {
	r := newRenderer(t)
	r.Paint(newView(10), fakeWorld{mapID: 1}, []*marker.Marker{fixed(t, "C2-5", 5, 5)})
	centre := r.Lower().RGBAAt(55, 55).A
	rim := r.Lower().RGBAAt(55+18, 55).A
	assert.Greater(t, centre, uint8(240))
	assert.Greater(t, rim, uint8(80))
	assert.Less(t, rim, uint8(140))
	assert.Equal(t, uint8(0), r.Lower().RGBAAt(55+25, 55).A, "outside the radius")
}

func TestArrowCache(t *testing.T) {
	r := newRenderer(t)
	view := newView(10)
	w := fakeWorld{mapID: 1}
	r.Paint(view, w, []*marker.Marker{fixed(t, "A1", 2, 2), fixed(t, "A1", 6, 6)})
	assert.Equal(t, 1, r.CachedArrows())
	assert.NotZero(t, r.Lower().RGBAAt(25, 25).A)

	r.Paint(view, w, []*marker.Marker{fixed(t, "A1", 2, 2), fixed(t, "A2", 6, 6)})
	assert.Equal(t, 2, r.CachedArrows())

	r.SetMarkerSize(6)
	assert.Equal(t, 0, r.CachedArrows(), "marker size change drops sprites")
	r.Paint(view, w, []*marker.Marker{fixed(t, "A1", 2, 2)})
	assert.Equal(t, 1, r.CachedArrows())

	r.Resize(200, 100)
	assert.Equal(t, 0, r.CachedArrows(), "box change drops sprites")
}

func TestPaintIcon(t *testing.T) {
	sheet := image.NewRGBA(image.Rect(0, 0, 80, 20))
	red := color.RGBA{R: 255, A: 255}
	draw.Draw(sheet, image.Rect(10, 10, 20, 20), image.NewUniform(red), image.Point{}, draw.Src)

	r := newRenderer(t)
	view := newView(10)
	r.Paint(view, fakeWorld{mapID: 1}, []*marker.Marker{fixed(t, "I9", 4, 4)})
	assert.Equal(t, uint8(0), r.Lower().RGBAAt(45, 45).A, "no sheet, no icon")

	r.SetIcons(sheet)
	r.Paint(view, fakeWorld{mapID: 1}, []*marker.Marker{fixed(t, "I9", 4, 4)})
	assert.Equal(t, red, r.Lower().RGBAAt(45, 45))

	r.Paint(view, fakeWorld{mapID: 1}, []*marker.Marker{fixed(t, "I40", 4, 4)})
	assert.Equal(t, uint8(0), r.Lower().RGBAAt(45, 45).A, "index beyond the sheet")
}

func TestPaintPin(t *testing.T) {
	r := newRenderer(t)
	view := newView(10)
	r.Paint(view, fakeWorld{mapID: 1}, []*marker.Marker{fixed(t, "!3", 5, 5)})
	assert.Equal(t, uint8(0), r.Lower().RGBAAt(55, 55).A, "pin is an outline")
	assert.NotZero(t, r.Lower().RGBAAt(59, 59).A, "corner of the outline")

	pic := image.NewRGBA(image.Rect(0, 0, 4, 4))
	draw.Draw(pic, pic.Bounds(), image.NewUniform(color.RGBA{B: 255, A: 255}), image.Point{}, draw.Src)
	r.SetPinImage(pic)
	r.Paint(view, fakeWorld{mapID: 1}, []*marker.Marker{fixed(t, "!3", 5, 5)})
	assert.Equal(t, color.RGBA{B: 255, A: 255}, r.Lower().RGBAAt(55, 55))
}

func TestPathCapsuleUnion(t *testing.T) {
	c := NewCanvas(20, 20, 0)
	c.SetShadow(false)
	p := NewPath()
	p.Capsule(4, 4, 16, 16, 2)
	p.Capsule(16, 4, 4, 16, 2)
	c.FillColor(p, color.NRGBA{G: 255, A: 255})
	assert.Equal(t, uint8(255), c.Image().RGBAAt(10, 10).A, "overlap stays filled")
	assert.Equal(t, uint8(255), c.Image().RGBAAt(5, 5).A)
	assert.Equal(t, uint8(0), c.Image().RGBAAt(10, 2).A)
}
