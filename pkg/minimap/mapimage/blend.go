package mapimage

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// FogMode selects how unexplored tiles are drawn
type FogMode int

const (
	// FogTinted draws the tile at its exploration opacity and adds the fog colour for the remainder
	FogTinted FogMode = iota
	// FogDarken draws every tile, fading unexplored ones to a quarter opacity
	FogDarken
)

// ParseFogMode maps a configured out-tile type to a FogMode
func ParseFogMode(name string) FogMode {
	if name == "translucent" {
		return FogDarken
	}
	return FogTinted
}

// String returns the configuration name of the mode
func (m FogMode) String() string {
	if m == FogDarken {
		return "translucent"
	}
	return "color"
}

// compose draws a fully painted tile (scratch) into r of dst at the given
// exploration opacity. dst must already be cleared in r.
func compose(dst *image.RGBA, r image.Rectangle, scratch *image.RGBA, sp image.Point, opacity int, mode FogMode, fog color.NRGBA) {
	switch mode {
	case FogDarken:
		alpha := 0.25 + 0.75*float64(opacity)/255
		drawAlpha(dst, r, scratch, sp, alpha)
	default:
		if opacity > 0 {
			drawAlpha(dst, r, scratch, sp, float64(opacity)/255)
		}
		if opacity < 255 {
			addColor(dst, r, fog, float64(255-opacity)/255)
		}
	}
}

func drawAlpha(dst *image.RGBA, r image.Rectangle, src image.Image, sp image.Point, alpha float64) {
	if alpha >= 1 {
		draw.Draw(dst, r, src, sp, draw.Over)
		return
	}
	mask := image.NewUniform(color.Alpha{A: uint8(alpha*255 + 0.5)})
	draw.DrawMask(dst, r, src, sp, mask, image.Point{}, draw.Over)
}

// addColor composites c onto r with additive ("lighter") blending at alpha.
func addColor(dst *image.RGBA, r image.Rectangle, c color.NRGBA, alpha float64) {
	r = r.Intersect(dst.Bounds())
	a := float64(c.A) / 255 * alpha
	if a <= 0 {
		return
	}
	add := [4]float64{float64(c.R) * a, float64(c.G) * a, float64(c.B) * a, 255 * a}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := dst.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			for k := 0; k < 4; k++ {
				dst.Pix[i+k] = addChannel(dst.Pix[i+k], add[k])
			}
			i += 4
		}
	}
}

func addChannel(v uint8, add float64) uint8 {
	s := float64(v) + add + 0.5
	if s >= 255 {
		return 255
	}
	return uint8(s)
}

func clearRect(dst *image.RGBA, r image.Rectangle) {
	draw.Draw(dst, r, image.Transparent, image.Point{}, draw.Src)
}

func fillRect(dst *image.RGBA, r image.Rectangle, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
}
