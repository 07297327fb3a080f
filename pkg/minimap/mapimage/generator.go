// Package mapimage renders the terrain raster shown behind the minimap markers.
package mapimage

import (
	"image"
	"image/color"

	"github.com/rs/zerolog"
	"golang.org/x/image/draw"
)

// DefaultTileSize is the edge in pixels of one procedurally drawn tile
const DefaultTileSize = 3

// Opacity reports the exploration opacity (0-255) of a tile
type Opacity interface {
	Opacity(x, y int) int
}

// PictureSource supplies a user picture that may still be loading
type PictureSource interface {
	Image() (image.Image, bool)
}

// Options configures a Generator
type Options struct {
	TileSize int
	Regions  Regions
	Palette  Palette
	Fog      FogMode
	FogColor color.NRGBA
}

// Generator owns the minimap raster of the active map. Changes are batched:
// Refresh and exploration only mark work, Update performs it once per tick.
type Generator struct {
	terrain Terrain
	opts    Options
	picture PictureSource
	fog     Opacity
	log     zerolog.Logger

	img     *image.RGBA
	base    *image.RGBA
	scratch *image.RGBA
	tileW   int
	tileH   int

	needsRefresh bool
	version      uint64
}

// New creates a generator for a map. A nil picture selects procedural drawing.
func New(terrain Terrain, picture PictureSource, opts Options, log zerolog.Logger) *Generator {
	if opts.TileSize <= 0 {
		opts.TileSize = DefaultTileSize
	}
	g := &Generator{
		terrain:      terrain,
		opts:         opts,
		picture:      picture,
		log:          log,
		needsRefresh: true,
	}
	if picture == nil {
		g.tileW, g.tileH = opts.TileSize, opts.TileSize
		g.img = image.NewRGBA(image.Rect(0, 0, terrain.Width()*g.tileW, terrain.Height()*g.tileH))
		g.scratch = image.NewRGBA(image.Rect(0, 0, g.tileW, g.tileH))
	}
	return g
}

// SetFog attaches the exploration opacity source. nil shows every tile.
func (g *Generator) SetFog(fog Opacity) {
	g.fog = fog
	g.Refresh()
}

// IsUserImage returns true when the raster comes from a picture
func (g *Generator) IsUserImage() bool {
	return g.picture != nil
}

// IsReady returns true once the raster can be displayed
func (g *Generator) IsReady() bool {
	return g.img != nil
}

// Image returns the current raster, nil until ready
func (g *Generator) Image() *image.RGBA {
	return g.img
}

// Version increases whenever raster pixels change
func (g *Generator) Version() uint64 {
	return g.version
}

// TileWidth returns the raster width of one map tile in pixels
func (g *Generator) TileWidth() float64 {
	if g.img == nil || g.tileW == 0 {
		return 1
	}
	return float64(g.tileW)
}

// TileHeight returns the raster height of one map tile in pixels
func (g *Generator) TileHeight() float64 {
	if g.img == nil || g.tileH == 0 {
		return 1
	}
	return float64(g.tileH)
}

// MinZoom returns the smallest zoom percentage at which the whole raster
// still fills the box in at least one dimension.
func (g *Generator) MinZoom(boxW, boxH int) int {
	if g.img == nil || boxW <= 0 || boxH <= 0 {
		return 1
	}
	b := g.img.Bounds()
	rate := min(float64(boxW)/float64(b.Dx()), float64(boxH)/float64(b.Dy()))
	return max(int(rate*100), 1)
}

// Refresh schedules a full repaint on the next Update
func (g *Generator) Refresh() {
	g.needsRefresh = true
}

// Update performs pending work: adopting a freshly loaded picture, a full
// repaint if one was requested, then repainting the given dirty tiles.
// It returns true if any pixel changed.
func (g *Generator) Update(dirty []image.Point) bool {
	if g.img == nil && !g.adoptPicture() {
		return false
	}
	changed := false
	if g.needsRefresh {
		g.repaintAll()
		g.needsRefresh = false
		changed = true
	} else {
		for _, p := range dirty {
			if p.X < 0 || p.Y < 0 || p.X >= g.terrain.Width() || p.Y >= g.terrain.Height() {
				continue
			}
			g.repaintTile(p.X, p.Y)
			changed = true
		}
	}
	if changed {
		g.version++
	}
	return changed
}

func (g *Generator) adoptPicture() bool {
	pic, ok := g.picture.Image()
	if !ok || pic == nil {
		return false
	}
	mw, mh := g.terrain.Width(), g.terrain.Height()
	pb := pic.Bounds()
	g.tileW = max(pb.Dx()/mw, 1)
	g.tileH = max(pb.Dy()/mh, 1)
	g.base = image.NewRGBA(image.Rect(0, 0, mw*g.tileW, mh*g.tileH))
	if g.base.Bounds().Size() == pb.Size() {
		draw.Draw(g.base, g.base.Bounds(), pic, pb.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(g.base, g.base.Bounds(), pic, pb, draw.Src, nil)
	}
	g.img = image.NewRGBA(g.base.Bounds())
	g.needsRefresh = true
	g.log.Debug().
		Int("tileWidth", g.tileW).
		Int("tileHeight", g.tileH).
		Msg("Minimap picture ready")
	return true
}

func (g *Generator) repaintAll() {
	clearRect(g.img, g.img.Bounds())
	for y := 0; y < g.terrain.Height(); y++ {
		for x := 0; x < g.terrain.Width(); x++ {
			g.paintTile(x, y)
		}
	}
}

func (g *Generator) repaintTile(x, y int) {
	clearRect(g.img, g.tileRect(x, y))
	g.paintTile(x, y)
}

func (g *Generator) tileRect(x, y int) image.Rectangle {
	return image.Rect(x*g.tileW, y*g.tileH, (x+1)*g.tileW, (y+1)*g.tileH)
}

func (g *Generator) opacity(x, y int) int {
	if g.fog == nil {
		return 255
	}
	return g.fog.Opacity(x, y)
}

func (g *Generator) paintTile(x, y int) {
	r := g.tileRect(x, y)
	var src *image.RGBA
	var sp image.Point
	if g.base != nil {
		src, sp = g.base, r.Min
	} else {
		clearRect(g.scratch, g.scratch.Bounds())
		g.paintSpot(g.scratch, x, y)
		src = g.scratch
	}
	if g.fog == nil {
		draw.Draw(g.img, r, src, sp, draw.Over)
		return
	}
	compose(g.img, r, src, sp, g.opacity(x, y), g.opts.Fog, g.opts.FogColor)
}

// paintSpot draws the procedural tile for (x, y) at the origin of dst.
func (g *Generator) paintSpot(dst *image.RGBA, x, y int) {
	size := g.opts.TileSize
	r := image.Rect(0, 0, size, size)
	p := g.opts.Palette
	if g.terrain.IsOverworld() {
		fillRect(dst, r, p.WorldColor(AutotileKind(g.terrain, x, y)))
		return
	}
	flag := SpotFlag(g.terrain, g.opts.Regions, x, y)
	fillRect(dst, r, p.AreaColor(flag))
	paintPassage(dst, r, flag, p.Wall)
}

// paintPassage marks the blocked sides of a partially passable tile with
// wall-coloured thirds along each blocked edge.
func paintPassage(dst *image.RGBA, r image.Rectangle, flag int, wall color.NRGBA) {
	sides := flag & SpotWall
	if sides == 0 || sides == SpotWall {
		return
	}
	w := r.Dx() / 3
	if w == 0 {
		return
	}
	x1, x2, x3 := r.Min.X, r.Min.X+w, r.Max.X-w
	y1, y2, y3 := r.Min.Y, r.Min.Y+w, r.Max.Y-w
	down := sides&0x01 != 0
	left := sides&0x02 != 0
	right := sides&0x04 != 0
	up := sides&0x08 != 0
	cell := func(x, y int) {
		fillRect(dst, image.Rect(x, y, x+w, y+w), wall)
	}
	if left || up {
		cell(x1, y1)
	}
	if up {
		cell(x2, y1)
	}
	if right || up {
		cell(x3, y1)
	}
	if left {
		cell(x1, y2)
	}
	if right {
		cell(x3, y2)
	}
	if down || left {
		cell(x1, y3)
	}
	if down {
		cell(x2, y3)
	}
	if down || right {
		cell(x3, y3)
	}
}
