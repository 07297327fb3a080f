// Package ebiten provides the Ebiten-based window for mapscope: the host map,
// the minimap overlay, browse mode and the developer console.
package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog"

	engineinput "mapscope/pkg/engine/input"
	"mapscope/pkg/game/assets"
	"mapscope/pkg/game/generator"
	"mapscope/pkg/game/session"
	"mapscope/pkg/minimap/mapimage"
)

// Options configures the window
type Options struct {
	Title        string
	Width        int
	Height       int
	TileSize     int    // host map tile size in pixels
	CursorImage  string // browse cursor sprite sheet, frames side by side
	CursorWidth  int    // width of one cursor frame
	FrameImage   string // picture drawn behind the minimap box
	ShotDir      string // where F12 screenshots go
	HelpOnScreen bool
}

// SaveFunc persists the exploration state, called on quit and by the console
type SaveFunc func() error

// EbitenRenderer is the Ebiten game driving a minimap session
type EbitenRenderer struct {
	opts Options
	log  zerolog.Logger

	session *session.Session
	demo    *generator.Demo
	save    SaveFunc

	// Input snapshot rebuilt every tick
	input      *engineinput.State
	lastMouseX int
	lastMouseY int
	touchID    ebiten.TouchID
	touching   bool

	// Tile position of the last transfer check
	lastTileX, lastTileY int

	// Font sources for text rendering
	monoFontSource *text.GoTextFaceSource
	sansFontSource *text.GoTextFaceSource

	// Cached font faces
	cachedUIFontSize float64
	cachedSansFace   *text.GoTextFace
	cachedMonoFace   *text.GoTextFace

	// GPU copies of the minimap raster and marker layers
	raster        *ebiten.Image
	rasterSource  *mapimage.Generator
	rasterVersion uint64
	lower         *ebiten.Image
	upper         *ebiten.Image

	// Offscreen minimap box - spans are drawn here at box coordinates, then
	// blitted with the profile opacity in one pass.
	mapBuffer *ebiten.Image

	cursorPicture *assets.Picture
	cursorSheet   *ebiten.Image
	framePicture  *assets.Picture
	frameImage    *ebiten.Image

	// Console state
	consoleActive       bool
	consoleText         string
	consoleHistory      []string
	consoleHistoryIndex int
	consoleOutput       []string
	consoleScrollOffset int
	consoleAnimProgress float64
	consoleAnimating    bool
	consoleAnimStart    int64

	screenshotPending bool
	quitting          bool
	lastMessage       string
	lastMessageTime   int64
}
