package render

import (
	"math"

	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"
)

const (
	opMove = iota
	opLine
	opCube
	opClose
)

type segment struct {
	op  int
	pts [3]f64.Vec2
}

// Path is a resolution independent outline in canvas pixels.
// Subpaths that share a winding direction are unioned when filled;
// opposite windings cut holes.
type Path struct {
	segs                   []segment
	minX, minY, maxX, maxY float64
	empty                  bool
}

// NewPath creates an empty path
func NewPath() *Path {
	return &Path{empty: true}
}

func (p *Path) grow(v f64.Vec2) {
	if p.empty {
		p.minX, p.maxX, p.minY, p.maxY = v[0], v[0], v[1], v[1]
		p.empty = false
		return
	}
	p.minX = math.Min(p.minX, v[0])
	p.maxX = math.Max(p.maxX, v[0])
	p.minY = math.Min(p.minY, v[1])
	p.maxY = math.Max(p.maxY, v[1])
}

// MoveTo starts a new subpath
func (p *Path) MoveTo(x, y float64) {
	v := f64.Vec2{x, y}
	p.grow(v)
	p.segs = append(p.segs, segment{op: opMove, pts: [3]f64.Vec2{v}})
}

// LineTo adds a straight edge
func (p *Path) LineTo(x, y float64) {
	v := f64.Vec2{x, y}
	p.grow(v)
	p.segs = append(p.segs, segment{op: opLine, pts: [3]f64.Vec2{v}})
}

// CubeTo adds a cubic Bézier edge
func (p *Path) CubeTo(bx, by, cx, cy, dx, dy float64) {
	b, c, d := f64.Vec2{bx, by}, f64.Vec2{cx, cy}, f64.Vec2{dx, dy}
	p.grow(b)
	p.grow(c)
	p.grow(d)
	p.segs = append(p.segs, segment{op: opCube, pts: [3]f64.Vec2{b, c, d}})
}

// Close closes the current subpath
func (p *Path) Close() {
	p.segs = append(p.segs, segment{op: opClose})
}

// Polygon adds a closed polygon
func (p *Path) Polygon(pts ...f64.Vec2) {
	if len(pts) == 0 {
		return
	}
	p.MoveTo(pts[0][0], pts[0][1])
	for _, v := range pts[1:] {
		p.LineTo(v[0], v[1])
	}
	p.Close()
}

// Rect adds an axis aligned rectangle
func (p *Path) Rect(x, y, w, h float64) {
	p.Polygon(f64.Vec2{x, y}, f64.Vec2{x, y + h}, f64.Vec2{x + w, y + h}, f64.Vec2{x + w, y})
}

// arc appends an arc from angle a0 to a1 (radians, y down) to the current
// subpath, split into quarter turns.
func (p *Path) arc(cx, cy, r, a0, a1 float64) {
	n := int(math.Ceil(math.Abs(a1-a0) / (math.Pi / 2)))
	if n == 0 {
		return
	}
	step := (a1 - a0) / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	for i := 0; i < n; i++ {
		s, e := a0+step*float64(i), a0+step*float64(i+1)
		sx, sy := cx+r*math.Cos(s), cy+r*math.Sin(s)
		ex, ey := cx+r*math.Cos(e), cy+r*math.Sin(e)
		p.CubeTo(
			sx-k*r*math.Sin(s), sy+k*r*math.Cos(s),
			ex+k*r*math.Sin(e), ey-k*r*math.Cos(e),
			ex, ey,
		)
	}
}

// Circle adds a closed circle
func (p *Path) Circle(cx, cy, r float64) {
	p.MoveTo(cx+r, cy)
	p.arc(cx, cy, r, 0, -2*math.Pi)
	p.Close()
}

// Capsule adds a line from (x0,y0) to (x1,y1) of width 2*hw with round caps
func (p *Path) Capsule(x0, y0, x1, y1, hw float64) {
	t := math.Atan2(y1-y0, x1-x0)
	nx, ny := math.Cos(t+math.Pi/2)*hw, math.Sin(t+math.Pi/2)*hw
	p.MoveTo(x0+nx, y0+ny)
	p.LineTo(x1+nx, y1+ny)
	p.arc(x1, y1, hw, t+math.Pi/2, t-math.Pi/2)
	p.LineTo(x0-nx, y0-ny)
	p.arc(x0, y0, hw, t-math.Pi/2, t-3*math.Pi/2)
	p.Close()
}

// Bounds returns the control point bounding box
func (p *Path) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	return p.minX, p.minY, p.maxX, p.maxY, !p.empty
}

func (p *Path) replay(z *vector.Rasterizer, dx, dy float64) {
	pt := func(v f64.Vec2) (float32, float32) {
		return float32(v[0] + dx), float32(v[1] + dy)
	}
	for _, s := range p.segs {
		switch s.op {
		case opMove:
			z.MoveTo(pt(s.pts[0]))
		case opLine:
			z.LineTo(pt(s.pts[0]))
		case opCube:
			bx, by := pt(s.pts[0])
			cx, cy := pt(s.pts[1])
			ex, ey := pt(s.pts[2])
			z.CubeTo(bx, by, cx, cy, ex, ey)
		case opClose:
			z.ClosePath()
		}
	}
}

// rotate turns v by rad around the origin and moves it to (x,y)
func rotate(v f64.Vec2, rad, x, y float64) f64.Vec2 {
	s, c := math.Sincos(rad)
	return f64.Vec2{x + v[0]*c - v[1]*s, y + v[0]*s + v[1]*c}
}
