package ebiten

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"mapscope/pkg/game/devtools"
)

// takeScreenshot copies the finished frame into a PNG under the shot directory
func (e *EbitenRenderer) takeScreenshot(screen *ebiten.Image) {
	b := screen.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	screen.ReadPixels(img.Pix)

	path, err := devtools.SavePNG(e.opts.ShotDir, "screenshot", img)
	if err != nil {
		e.log.Error().Err(err).Msg("Screenshot failed")
		e.showMessage("SCREENSHOT_FAILED")
		return
	}
	e.log.Info().Str("path", path).Msg("Screenshot saved")
	e.showMessage("SCREENSHOT_SAVED")
}
