package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// getTileFontSize returns the font size for map tiles, scaled to the current tile size
func (e *EbitenRenderer) getTileFontSize() float64 {
	return baseFontSize * float64(e.opts.TileSize) / defaultTileSize
}

// getUIFontSize returns the font size for UI text (50% of tile size)
func (e *EbitenRenderer) getUIFontSize() float64 {
	size := e.getTileFontSize() * 0.5
	if size < 12 {
		size = 12
	}
	return size
}

// getMonoFontFace returns a cached monospace font face for map tiles
func (e *EbitenRenderer) getMonoFontFace() *text.GoTextFace {
	if e.cachedMonoFace == nil {
		e.cachedMonoFace = &text.GoTextFace{
			Source: e.monoFontSource,
			Size:   e.getTileFontSize(),
		}
	}
	return e.cachedMonoFace
}

// getSansFontFace returns a cached sans-serif font face for UI text
func (e *EbitenRenderer) getSansFontFace() *text.GoTextFace {
	size := e.getUIFontSize()
	if e.cachedSansFace == nil || e.cachedUIFontSize != size {
		e.cachedUIFontSize = size
		e.cachedSansFace = &text.GoTextFace{
			Source: e.sansFontSource,
			Size:   size,
		}
	}
	return e.cachedSansFace
}

// getMonoUIFontFace returns a monospace font face with UI font size (for console)
func (e *EbitenRenderer) getMonoUIFontFace() *text.GoTextFace {
	return &text.GoTextFace{
		Source: e.monoFontSource,
		Size:   e.getUIFontSize(),
	}
}
