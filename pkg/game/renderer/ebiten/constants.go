package ebiten

import (
	"image/color"

	"mapscope/pkg/minimap/mapimage"
)

// Color palette for the window
var (
	colorBackground      = color.RGBA{26, 26, 46, 255}    // Dark blue-gray
	colorMapBackground   = color.RGBA{15, 15, 26, 255}    // Darker for the void around a map
	colorPlayer          = color.RGBA{0, 255, 0, 255}     // Bright green
	colorVehicle         = color.RGBA{255, 200, 100, 255} // Orange
	colorEvent           = color.RGBA{220, 170, 255, 255} // Bright purple
	colorText            = color.RGBA{200, 210, 245, 255} // Soft off-white with blue-purple tint
	colorSubtle          = color.RGBA{120, 130, 180, 255} // Soft blue-purple-gray
	colorAction          = color.RGBA{180, 150, 250, 255} // Blue-purple
	colorDenied          = color.RGBA{255, 100, 100, 255} // Bright red
	colorPanelBackground = color.RGBA{30, 30, 50, 220}    // Semi-transparent dark
	colorBrowseDim       = color.RGBA{0, 0, 0, 160}
	colorMinimapBackdrop = color.RGBA{0, 0, 0, 96}
	colorCursor          = color.RGBA{255, 255, 255, 255}
	colorScrollHint      = color.RGBA{255, 255, 255, 255}
)

// hostPalette colours the host map tiles with the minimap's terrain classes
var hostPalette = mapimage.Palette{
	Land:     color.NRGBA{90, 160, 80, 255},
	Sea:      color.NRGBA{20, 40, 110, 255},
	Ford:     color.NRGBA{80, 140, 200, 255},
	Mountain: color.NRGBA{120, 110, 100, 255},
	Hill:     color.NRGBA{150, 140, 90, 255},
	Forest:   color.NRGBA{40, 110, 50, 255},
	River:    color.NRGBA{40, 80, 160, 255},
	Shallow:  color.NRGBA{80, 140, 200, 255},
	Ladder:   color.NRGBA{200, 200, 60, 255},
	Bush:     color.NRGBA{70, 140, 70, 255},
	Counter:  color.NRGBA{150, 110, 70, 255},
	Wall:     color.NRGBA{60, 60, 80, 255},
	Floor:    color.NRGBA{100, 100, 120, 255},
	None:     color.NRGBA{15, 15, 26, 255},
}

// Icon constants - characters drawn with the mono font on the host map
const (
	PlayerIcon  = "@"
	EventIcon   = "!"
	BoatIcon    = "b"
	ShipIcon    = "S"
	AirshipIcon = "A"
)

// Window defaults
const (
	defaultWindowWidth  = 1024
	defaultWindowHeight = 720
	defaultTileSize     = 24
	baseFontSize        = 16.0 // Base font size at default tile size
	messageDuration     = 2500 // milliseconds
	consoleMaxLines     = 50
	consoleMaxHistory   = 100
	scrollHintSize      = 8
	scrollHintMargin    = 6
)
