// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"mapscope/pkg/game/session"
	"mapscope/pkg/minimap/marker"
)

const captionHeight = 18

var (
	snapshotBackground = color.RGBA{15, 15, 26, 255}
	captionColor       = color.RGBA{200, 210, 245, 255}
)

// SavePNG writes img to dir as <prefix>-<timestamp>.png and returns the path
func SavePNG(dir, prefix string, img image.Image) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	timestamp := time.Now().Format("20060102-150405")
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.png", prefix, timestamp))

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	return path, f.Close()
}

// Snapshot renders the whole minimap raster of the active map, scaled up by
// scale, with a dot for every visible marker and a caption line underneath.
// It returns nil while the session has no raster.
func Snapshot(s *session.Session, scale int) *image.RGBA {
	gen := s.Image()
	if gen == nil || gen.Image() == nil {
		return nil
	}
	scale = max(scale, 1)
	raster := gen.Image()
	rb := raster.Bounds()
	w, h := rb.Dx()*scale, rb.Dy()*scale

	dst := image.NewRGBA(image.Rect(0, 0, w, h+captionHeight))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(snapshotBackground), image.Point{}, draw.Src)
	draw.NearestNeighbor.Scale(dst, image.Rect(0, 0, w, h), raster, rb, draw.Over, nil)

	tw := gen.TileWidth() * float64(scale)
	th := gen.TileHeight() * float64(scale)
	palette := marker.DefaultPalette()
	dot := max(int(min(tw, th)/2), 2)
	for _, m := range s.Markers() {
		if !m.IsVisible(s) {
			continue
		}
		mx, my := m.Position(s)
		cx := int((mx + 0.5) * tw)
		cy := int((my + 0.5) * th)
		r := image.Rect(cx-dot/2, cy-dot/2, cx-dot/2+dot, cy-dot/2+dot).Intersect(image.Rect(0, 0, w, h))
		draw.Draw(dst, r, image.NewUniform(palette.Color(m.ColorIndex())), image.Point{}, draw.Over)
	}

	p := s.Player()
	drawCaption(dst, fmt.Sprintf("map %d  player %d,%d  markers %d", s.MapID(), p.X(), p.Y(), len(s.Markers())), h)
	return dst
}

func drawCaption(dst *image.RGBA, str string, top int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(captionColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(4, top+captionHeight-5),
	}
	d.DrawString(str)
}
