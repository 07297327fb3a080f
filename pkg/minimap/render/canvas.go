package render

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"
)

// shadowAlpha is the strength of the drop shadow under filled markers
const shadowAlpha = 0x80

// Canvas is an RGBA layer that markers are painted onto. Coordinates passed
// to its methods exclude the padding border, which lets highlighted markers
// overhang the visible box.
type Canvas struct {
	img     *image.RGBA
	pad     int
	opacity uint8
	shadow  bool
	z       *vector.Rasterizer
}

// NewCanvas creates a w×h canvas with pad extra pixels on every side
func NewCanvas(w, h, pad int) *Canvas {
	return &Canvas{
		img:     image.NewRGBA(image.Rect(0, 0, max(w, 0)+pad*2, max(h, 0)+pad*2)),
		pad:     pad,
		opacity: 255,
		shadow:  true,
		z:       vector.NewRasterizer(0, 0),
	}
}

// Image returns the backing pixels, padding included
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Padding returns the border width in pixels
func (c *Canvas) Padding() int {
	return c.pad
}

// Clear makes every pixel transparent
func (c *Canvas) Clear() {
	clear(c.img.Pix)
}

// SetOpacity sets the alpha multiplier applied to everything painted next
func (c *Canvas) SetOpacity(a uint8) {
	c.opacity = a
}

// Opacity returns the current paint opacity
func (c *Canvas) Opacity() uint8 {
	return c.opacity
}

// SetShadow toggles the drop shadow under filled shapes
func (c *Canvas) SetShadow(on bool) {
	c.shadow = on
}

func (c *Canvas) fade(col color.NRGBA) color.NRGBA {
	col.A = uint8(uint32(col.A) * uint32(c.opacity) / 255)
	return col
}

// FillColor fills a path with a solid colour
func (c *Canvas) FillColor(p *Path, col color.NRGBA) {
	if c.shadow {
		c.fill(p, image.NewUniform(c.fade(color.NRGBA{A: shadowAlpha})), 1, 1)
	}
	c.fill(p, image.NewUniform(c.fade(col)), 0, 0)
}

// FillGradient fills a path with a radial gradient centred at (x,y). Colour
// from applies at radius r0 and inside, colour to at r1 and beyond.
func (c *Canvas) FillGradient(p *Path, x, y, r0, r1 float64, from, to color.NRGBA) {
	pad := float64(c.pad)
	g := &radialGradient{
		cx: x + pad, cy: y + pad,
		r0: r0, r1: r1,
		from: c.fade(from), to: c.fade(to),
	}
	c.fill(p, g, 0, 0)
}

func (c *Canvas) fill(p *Path, src image.Image, dx, dy float64) {
	minX, minY, maxX, maxY, ok := p.Bounds()
	if !ok {
		return
	}
	pad := float64(c.pad)
	dx += pad
	dy += pad
	r := image.Rect(
		int(math.Floor(minX+dx))-1, int(math.Floor(minY+dy))-1,
		int(math.Ceil(maxX+dx))+1, int(math.Ceil(maxY+dy))+1,
	).Intersect(c.img.Bounds())
	if r.Empty() {
		return
	}
	c.z.Reset(r.Dx(), r.Dy())
	p.replay(c.z, dx-float64(r.Min.X), dy-float64(r.Min.Y))
	c.z.Draw(c.img, r, src, r.Min)
}

// DrawImage draws the sr part of src centred on (x,y), rotated clockwise by rad
func (c *Canvas) DrawImage(src image.Image, sr image.Rectangle, x, y, rad float64) {
	if sr.Empty() {
		return
	}
	pad := float64(c.pad)
	x += pad
	y += pad
	s, co := math.Sincos(rad)
	hx := float64(sr.Min.X) + float64(sr.Dx())/2
	hy := float64(sr.Min.Y) + float64(sr.Dy())/2
	m := f64.Aff3{
		co, -s, x - (co*hx - s*hy),
		s, co, y - (s*hx + co*hy),
	}
	var opts *xdraw.Options
	if c.opacity < 255 {
		opts = &xdraw.Options{SrcMask: image.NewUniform(color.Alpha{A: c.opacity})}
	}
	xdraw.BiLinear.Transform(c.img, m, src, sr, xdraw.Over, opts)
}

// radialGradient is an image source whose colour depends on the distance
// from a centre point.
type radialGradient struct {
	cx, cy, r0, r1 float64
	from, to       color.NRGBA
}

func (g *radialGradient) ColorModel() color.Model {
	return color.NRGBAModel
}

func (g *radialGradient) Bounds() image.Rectangle {
	return image.Rect(-1<<20, -1<<20, 1<<20, 1<<20)
}

func (g *radialGradient) At(x, y int) color.Color {
	d := math.Hypot(float64(x)+0.5-g.cx, float64(y)+0.5-g.cy)
	t := 0.0
	if g.r1 > g.r0 {
		t = math.Max(0, math.Min(1, (d-g.r0)/(g.r1-g.r0)))
	} else if d > g.r0 {
		t = 1
	}
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	return color.NRGBA{
		R: mix(g.from.R, g.to.R),
		G: mix(g.from.G, g.to.G),
		B: mix(g.from.B, g.to.B),
		A: mix(g.from.A, g.to.A),
	}
}
