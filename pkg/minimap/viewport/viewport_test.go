package viewport

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMap struct {
	w, h         int
	loopH, loopV bool
}

func (m fakeMap) Width() int { return m.w }
func (m fakeMap) Height() int { return m.h }
func (m fakeMap) IsLoopHorizontal() bool { return m.loopH }
func (m fakeMap) IsLoopVertical() bool { return m.loopV }

type fakeRaster struct {
	tile float64
	min  int
}

func (r fakeRaster) TileWidth() float64 { return r.tile }
func (r fakeRaster) TileHeight() float64 { return r.tile }
func (r fakeRaster) MinZoom(_, _ int) int { return r.min }

func newController(m fakeMap, meta int) *Controller {
	c := New([]Profile{
		{X: 0, Y: 0, Width: 120, Height: 60, Opacity: 255, Zoom: 200},
		{X: 10, Y: 10, Width: 60, Height: 60, Opacity: 128},
	}, 1)
	c.Setup(m, fakeRaster{tile: 3, min: 50}, meta)
	return c
}

func TestSetupZoomPrecedence(t *testing.T) {
	c := newController(fakeMap{w: 20, h: 10}, 0)
	assert.Equal(t, 200.0, c.Zoom(), "profile zoom applies without map zoom")

	c = newController(fakeMap{w: 20, h: 10}, 300)
	assert.Equal(t, 300.0, c.Zoom(), "map zoom wins over profile zoom")
}

func TestZoomToFullClampsToMinimum(t *testing.T) {
	c := newController(fakeMap{w: 20, h: 10}, 0)
	c.ZoomTo(FullZoom)
	assert.Equal(t, 50.0, c.Zoom())
	assert.True(t, c.IsZoomBottom())

	c.ZoomTo(10)
	assert.Equal(t, 50.0, c.Zoom(), "explicit zoom below minimum is raised")
}

func TestZoomFloor(t *testing.T) {
	c := newController(fakeMap{w: 20, h: 10}, 0)
	c.SetZoomFloor(150)
	assert.Equal(t, 150, c.MinZoom())
	c.ZoomTo(100)
	assert.Equal(t, 150.0, c.Zoom())
}

func TestSmoothZoomReachesTarget(t *testing.T) {
	c := newController(fakeMap{w: 20, h: 10}, 0)
	c.SmoothZoomTo(400)
	assert.True(t, c.IsAnimating())
	assert.Equal(t, 200.0, c.Zoom(), "smooth zoom does not jump")

	prev := c.Zoom()
	for i := 0; i < SmoothZoomTicks; i++ {
		c.Update()
		assert.GreaterOrEqual(t, c.Zoom(), prev)
		prev = c.Zoom()
	}
	assert.False(t, c.IsAnimating())
	assert.InDelta(t, 400.0, c.Zoom(), 1e-9)
}

func TestRectFollowsCenter(t *testing.T) {
	c := newController(fakeMap{w: 40, h: 40}, 0)
	// xRate = 3*200/100 = 6 -> 20x10 tiles
	c.SetCenter(20, 20)
	c.Update()
	assert.InDelta(t, 6.0, c.XRate(), 1e-9)
	r := c.Rect()
	assert.InDelta(t, 20.0, r.W, 1e-9)
	assert.InDelta(t, 10.0, r.H, 1e-9)
	assert.InDelta(t, 10.0, r.X, 1e-9)
	assert.InDelta(t, 15.0, r.Y, 1e-9)

	c.SetCenter(39, 1)
	c.Update()
	r = c.Rect()
	assert.InDelta(t, 20.0, r.X, 1e-9, "clamped to the right edge")
	assert.InDelta(t, 0.0, r.Y, 1e-9, "clamped to the top edge")
}

func TestRectSmallMapPrefersLowerBound(t *testing.T) {
	c := newController(fakeMap{w: 10, h: 4}, 0)
	c.SetCenter(5, 2)
	c.Update()
	r := c.Rect()
	assert.Equal(t, 0.0, r.X)
	assert.Equal(t, 0.0, r.Y)
	// map is 10 tiles, view 20 -> 5 tiles of padding each side at 6px per tile
	assert.InDelta(t, 30.0, c.CorrectionX(), 1e-9)
	assert.InDelta(t, 18.0, c.CorrectionY(), 1e-9)
	w, h := c.BackdropSize()
	assert.InDelta(t, 60.0, w, 1e-9)
	assert.InDelta(t, 24.0, h, 1e-9)
}

func TestLoopingWrapsOrigin(t *testing.T) {
	c := newController(fakeMap{w: 40, h: 40, loopH: true, loopV: true}, 0)
	c.SetCenter(2, 1)
	c.Update()
	require.True(t, c.IsLoopHorizontal())
	r := c.Rect()
	assert.InDelta(t, 32.0, r.X, 1e-9)
	assert.InDelta(t, 36.0, r.Y, 1e-9)

	// a tile just right of the seam is drawn after the view origin
	assert.InDelta(t, 9.0, c.AdjustX(1), 1e-9)
	assert.InDelta(t, 2.0, c.AdjustX(34), 1e-9)
	assert.InDelta(t, 6.0, c.AdjustY(2), 1e-9)
}

func TestLoopingSuppressed(t *testing.T) {
	c := newController(fakeMap{w: 40, h: 40, loopH: true}, 0)
	c.SetLoopDisabled(true)
	assert.False(t, c.IsLoopHorizontal())

	c.SetLoopDisabled(false)
	c.ZoomTo(FullZoom)
	assert.False(t, c.IsLoopHorizontal(), "no wrap at minimum zoom")
}

func TestShowProfile(t *testing.T) {
	c := newController(fakeMap{w: 40, h: 40}, 0)
	c.ShowProfile(0)
	_, ok := c.Profile()
	assert.False(t, ok)
	assert.Equal(t, 0, c.ProfileIndex())

	c.ShowProfile(5)
	assert.Equal(t, 0, c.ProfileIndex(), "out of range index is ignored")

	c.ShowProfile(2)
	p, ok := c.Profile()
	require.True(t, ok)
	assert.Equal(t, 128, p.Opacity)

	c.SetOverride(&Profile{Width: 300, Height: 200})
	p, _ = c.Profile()
	assert.Equal(t, 300, p.Width)
	c.SetOverride(nil)
	p, _ = c.Profile()
	assert.Equal(t, 60, p.Width)
}

func TestEdgeProject(t *testing.T) {
	c := newController(fakeMap{w: 40, h: 40}, 0)
	c.SetCenter(20, 20)
	c.Update()

	x, y, a := c.EdgeProject(5, 5)
	assert.Equal(t, 5.0, x)
	assert.Equal(t, 5.0, y)
	assert.True(t, math.IsNaN(a))

	// 20x10 view, point far to the right on the centre line
	x, y, a = c.EdgeProject(40, 5)
	assert.InDelta(t, 20.0, x, 1e-9)
	assert.InDelta(t, 5.0, y, 1e-9)
	assert.InDelta(t, 0.0, a, 1e-9)

	// far below: y clamps to the bottom edge and x scales with it
	x, y, a = c.EdgeProject(10, 25)
	assert.InDelta(t, 10.0, x, 1e-9)
	assert.InDelta(t, 10.0, y, 1e-9)
	assert.InDelta(t, math.Pi/2, a, 1e-9)

	// diagonal: x first, then y
	x, y, _ = c.EdgeProject(30, 25)
	assert.InDelta(t, 10.0, y, 1e-9)
	assert.InDelta(t, 15.0, x, 1e-9)
}

func TestSpansSplitAtSeam(t *testing.T) {
	c := newController(fakeMap{w: 20, h: 10, loopH: true}, 300)
	c.SetCenter(1, 5)
	c.Update()

	spans := c.Spans()
	require.Len(t, spans, 2)
	r := c.Rect()
	assert.InDelta(t, 20-r.X, spans[0].Src.W, 1e-9)
	assert.Equal(t, 0.0, spans[1].Src.X)
	assert.InDelta(t, spans[0].Src.W, spans[1].DstX, 1e-9)
	assert.InDelta(t, r.W, spans[0].Src.W+spans[1].Src.W, 1e-9)
}

func TestSpansWithoutLoop(t *testing.T) {
	c := newController(fakeMap{w: 20, h: 10}, 300)
	c.SetCenter(1, 5)
	c.Update()

	spans := c.Spans()
	require.Len(t, spans, 1)
	assert.Equal(t, 0.0, spans[0].Src.X)
	assert.Equal(t, 0.0, spans[0].DstX)
}
