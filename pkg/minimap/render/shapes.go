package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/math/f64"
)

// iconColumns is the number of icons per row in the icon sheet
const iconColumns = 8

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

func paintPoint(c *Canvas, x, y float64, size int, col color.NRGBA) {
	p := NewPath()
	p.Circle(x, y, float64(size))
	c.FillColor(p, col)
}

func paintTriangle(c *Canvas, x, y float64, size int, col color.NRGBA) {
	s := float64(size + 1)
	h := s * math.Sqrt(3)
	r := s * 2 / math.Sqrt(3)
	p := NewPath()
	p.Polygon(f64.Vec2{x, y - r}, f64.Vec2{x + s, y - r + h}, f64.Vec2{x - s, y - r + h})
	c.FillColor(p, col)
}

func paintSquare(c *Canvas, x, y float64, size int, col color.NRGBA) {
	s := float64(size)
	p := NewPath()
	p.Rect(x-s, y-s, s*2, s*2)
	c.FillColor(p, col)
}

func paintRhombus(c *Canvas, x, y float64, size int, col color.NRGBA) {
	s := float64(size + 1)
	p := NewPath()
	p.Polygon(f64.Vec2{x, y - s}, f64.Vec2{x + s, y}, f64.Vec2{x, y + s}, f64.Vec2{x - s, y})
	c.FillColor(p, col)
}

func paintCross(c *Canvas, x, y float64, size int, col color.NRGBA) {
	s := float64(size)
	w := s * 2 / 3
	r := s - w/2 + 0.25
	p := NewPath()
	p.Capsule(x-r, y-r, x+r, y+r, w/2)
	p.Capsule(x+r, y-r, x-r, y+r, w/2)
	c.FillColor(p, col)
}

// paintCircle draws an area marker. It has no shadow and fades towards its rim.
func paintCircle(c *Canvas, x, y, radius float64, col color.NRGBA) {
	if radius <= 0 {
		return
	}
	p := NewPath()
	p.Circle(x, y, radius)
	rim := col
	rim.A = uint8(uint32(col.A) * 0x60 / 255)
	c.FillGradient(p, x, y, 0, radius, col, rim)
}

// arrowSprite draws the arrow pointing down (south) in a (2c)² square
func arrowSprite(size int, col color.NRGBA) *image.RGBA {
	s := float64(size)
	cc := s + 1
	sprite := NewCanvas(int(cc*2), int(cc*2), 0)
	sprite.SetShadow(false)
	pts := []f64.Vec2{
		{cc, cc + s},
		{cc + s, cc - s},
		{cc, cc - s/2},
		{cc - s, cc - s},
	}
	body := NewPath()
	body.Polygon(pts...)
	sprite.FillColor(body, col)
	// 2px outline, joins left bevelled
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		edge := NewPath()
		edge.Polygon(strokeQuad(a, b, 1)...)
		sprite.FillColor(edge, col)
	}
	return sprite.Image()
}

func strokeQuad(a, b f64.Vec2, hw float64) []f64.Vec2 {
	dx, dy := b[0]-a[0], b[1]-a[1]
	l := math.Hypot(dx, dy)
	if l == 0 {
		return nil
	}
	nx, ny := -dy/l*hw, dx/l*hw
	return []f64.Vec2{
		{a[0] + nx, a[1] + ny},
		{b[0] + nx, b[1] + ny},
		{b[0] - nx, b[1] - ny},
		{a[0] - nx, a[1] - ny},
	}
}

func iconRect(sheet image.Rectangle, index int) image.Rectangle {
	n := sheet.Dx() / iconColumns
	if n <= 0 || index < 0 {
		return image.Rectangle{}
	}
	x := sheet.Min.X + (index%iconColumns)*n
	y := sheet.Min.Y + (index/iconColumns)*n
	r := image.Rect(x, y, x+n, y+n)
	if !r.In(sheet) {
		return image.Rectangle{}
	}
	return r
}

// paintPin draws a spinning square outline whose stroke brightens towards the corners
func paintPin(c *Canvas, x, y float64, size int, col color.NRGBA, frame int) {
	r1 := float64(size + 2)
	deg := 90 * float64(frame%24) / 24
	rad := deg * math.Pi / 180
	r3 := r1 - 1
	p := NewPath()
	ring := func(h float64, clockwise bool) {
		corners := []f64.Vec2{{-h, -h}, {h, -h}, {h, h}, {-h, h}}
		if !clockwise {
			corners[1], corners[3] = corners[3], corners[1]
		}
		for i, v := range corners {
			corners[i] = rotate(v, rad, x, y)
		}
		p.Polygon(corners...)
	}
	ring(r3+1, true)
	ring(r3-1, false)
	faded := col
	faded.A = 0
	c.FillGradient(p, x, y, r1, math.Hypot(r1, r1), faded, col)
}

// paintWedge draws the white pointer beside an edge-clamped highlighted marker
func paintWedge(c *Canvas, x, y float64, size int, rad float64) {
	if math.IsNaN(rad) {
		return
	}
	s := float64(size)
	p := NewPath()
	p.Polygon(
		rotate(f64.Vec2{s * 2, 0}, rad, x, y),
		rotate(f64.Vec2{s, s}, rad, x, y),
		rotate(f64.Vec2{s, -s}, rad, x, y),
	)
	c.FillColor(p, white)
}
