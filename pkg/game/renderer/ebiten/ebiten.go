package ebiten

import (
	"bytes"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	engineinput "mapscope/pkg/engine/input"
	"mapscope/pkg/game/assets"
	"mapscope/pkg/game/generator"
	"mapscope/pkg/game/session"
)

// New creates the window renderer. loader may be nil when no pictures are configured.
func New(opts Options, s *session.Session, demo *generator.Demo, loader *assets.Loader, save SaveFunc, log zerolog.Logger) (*EbitenRenderer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = defaultWindowWidth, defaultWindowHeight
	}
	if opts.TileSize <= 0 {
		opts.TileSize = defaultTileSize
	}
	if opts.Title == "" {
		opts.Title = "mapscope"
	}

	mono, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("loading mono font: %w", err)
	}
	sans, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("loading sans font: %w", err)
	}

	e := &EbitenRenderer{
		opts:           opts,
		log:            log,
		session:        s,
		demo:           demo,
		save:           save,
		input:          engineinput.NewState(),
		monoFontSource: mono,
		sansFontSource: sans,
	}
	if loader != nil {
		if opts.CursorImage != "" {
			e.cursorPicture = loader.Load(opts.CursorImage)
		}
		if opts.FrameImage != "" {
			e.framePicture = loader.Load(opts.FrameImage)
		}
	}
	p := s.Player()
	e.lastTileX, e.lastTileY = p.X(), p.Y()
	return e, nil
}

// Run opens the window and blocks until it is closed
func (e *EbitenRenderer) Run() error {
	ebiten.SetWindowSize(e.opts.Width, e.opts.Height)
	ebiten.SetWindowTitle(e.opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	e.log.Info().Int("w", e.opts.Width).Int("h", e.opts.Height).Msg("Opening window")
	if err := ebiten.RunGame(e); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}

// Update handles input and advances the session (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	if e.quitting {
		return ebiten.Termination
	}
	if ebiten.IsWindowBeingClosed() {
		e.shutdown()
		return ebiten.Termination
	}
	e.pollPictures()

	if e.toggleConsolePressed() {
		e.ToggleConsole()
	}
	if e.IsConsoleActive() {
		e.HandleConsoleInput()
		// the session keeps animating, without input
		e.session.Update(nil)
		return nil
	}

	e.pollInput()
	browsing := e.session.Browse().IsActive()
	if !browsing {
		if e.handleHostInput() {
			return ebiten.Termination
		}
	}
	e.session.Update(e.input)
	e.checkTransfer()
	return nil
}

// handleHostInput processes actions the host owns. It returns true on quit.
func (e *EbitenRenderer) handleHostInput() bool {
	switch {
	case e.input.IsTriggered(engineinput.ActionQuit):
		e.shutdown()
		return true
	case e.input.IsTriggered(engineinput.ActionScreenshot):
		e.screenshotPending = true
	case e.input.IsTriggered(engineinput.ActionOK):
		e.toggleVehicle()
	}
	return false
}

// toggleVehicle leaves the ridden vehicle, or boards one parked next to the player
func (e *EbitenRenderer) toggleVehicle() {
	p := e.session.Player()
	if p.IsRiding() {
		p.Leave()
		e.showMessage("VEHICLE_LEFT")
		return
	}
	for _, spot := range e.demo.Vehicles {
		v := e.session.Vehicle(spot.Kind)
		if v == nil || v.MapID() != e.session.MapID() {
			continue
		}
		if p.Board(v) {
			e.showMessage("VEHICLE_BOARDED")
			return
		}
	}
}

// checkTransfer moves the player to another map after stepping onto a transfer tile
func (e *EbitenRenderer) checkTransfer() {
	p := e.session.Player()
	if p.IsMoving() || (p.X() == e.lastTileX && p.Y() == e.lastTileY) {
		return
	}
	e.lastTileX, e.lastTileY = p.X(), p.Y()
	exit, ok := e.demo.ExitAt(e.session.MapID(), p.X(), p.Y())
	if !ok {
		return
	}
	e.transfer(exit)
}

func (e *EbitenRenderer) transfer(exit generator.Exit) {
	m, ok := e.demo.Map(exit.MapID)
	if !ok {
		return
	}
	p := e.session.Player()
	p.Leave()
	e.log.Info().Int("from", e.session.MapID()).Int("to", exit.MapID).Msg("Transfer")
	e.session.SetupMap(m, exit.X, exit.Y)
	e.lastTileX, e.lastTileY = exit.X, exit.Y
}

func (e *EbitenRenderer) shutdown() {
	e.quitting = true
	if e.save == nil {
		return
	}
	if err := e.save(); err != nil {
		e.log.Error().Err(err).Msg("Could not save exploration")
	}
}

// showMessage shows a translated status message for a few seconds
func (e *EbitenRenderer) showMessage(key string) {
	e.lastMessage = key
	e.lastMessageTime = time.Now().UnixMilli()
}

// pollPictures picks up asynchronously loaded pictures once they are decoded
func (e *EbitenRenderer) pollPictures() {
	if img, ok := e.cursorPicture.Image(); ok {
		e.cursorSheet = ebiten.NewImageFromImage(img)
		e.cursorPicture = nil
	}
	if img, ok := e.framePicture.Image(); ok {
		e.frameImage = ebiten.NewImageFromImage(img)
		e.framePicture = nil
	}
}

// Draw renders one frame (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	e.drawHostMap(screen)
	if e.session.Browse().IsActive() {
		e.drawBrowseBackdrop(screen)
	}
	e.drawMinimap(screen)
	if e.session.Browse().IsActive() {
		e.drawBrowseOverlay(screen)
	}
	e.drawStatus(screen)
	e.drawConsole(screen)

	if e.screenshotPending {
		e.screenshotPending = false
		e.takeScreenshot(screen)
	}
}

// Layout returns the logical screen size (Ebiten interface)
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
