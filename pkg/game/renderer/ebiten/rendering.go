package ebiten

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leonelquinteros/gotext"

	"mapscope/pkg/engine/world"
	"mapscope/pkg/minimap/mapimage"
	"mapscope/pkg/minimap/marker"
)

// unexploredAlpha dims host tiles the player has not explored yet
const unexploredAlpha = 0.45

// drawHostMap draws the active map around the player, one coloured tile per cell
func (e *EbitenRenderer) drawHostMap(screen *ebiten.Image) {
	m := e.session.Current()
	if m == nil {
		return
	}
	g := m.Grid
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	ts := float64(e.opts.TileSize)
	vector.DrawFilledRect(screen, 0, 0, float32(sw), float32(sh), colorMapBackground, false)

	p := e.session.Player()
	px, py := p.RealX(), p.RealY()
	cols := sw/e.opts.TileSize + 2
	rows := sh/e.opts.TileSize + 2
	startX := int(math.Floor(px)) - cols/2
	startY := int(math.Floor(py)) - rows/2

	for ty := startY; ty <= startY+rows; ty++ {
		for tx := startX; tx <= startX+cols; tx++ {
			x, y := tx, ty
			if g.IsLoopHorizontal() {
				x = g.RoundX(x)
			}
			if g.IsLoopVertical() {
				y = g.RoundY(y)
			}
			if !g.IsValidPosition(x, y) {
				continue
			}
			var c color.Color = hostTileColor(g, x, y)
			if !e.session.IsExplored(x, y) {
				c = applyAlpha(c, unexploredAlpha)
			}
			sx, sy := e.tileScreen(float64(tx), float64(ty), px, py, sw, sh)
			vector.DrawFilledRect(screen, float32(sx), float32(sy), float32(ts)-1, float32(ts)-1, c, false)
		}
	}

	for _, ev := range m.Events {
		if ev.IsTransparent() {
			continue
		}
		e.drawEntityIcon(screen, EventIcon, ev.RealX(), ev.RealY(), colorEvent)
	}
	for _, spot := range e.demo.Vehicles {
		v := e.session.Vehicle(spot.Kind)
		if v == nil || v.IsDriven() || v.MapID() != m.ID {
			continue
		}
		e.drawEntityIcon(screen, vehicleIcon(spot.Kind), v.RealX(), v.RealY(), colorVehicle)
	}
	icon := PlayerIcon
	if v := p.Vehicle(); v != nil {
		icon = vehicleIcon(v.Kind())
	}
	e.drawEntityIcon(screen, icon, px, py, e.getPulsingPlayerColor())
}

// hostTileColor classifies a cell the way the minimap does and returns its host colour
func hostTileColor(g *world.Grid, x, y int) color.NRGBA {
	if g.IsOverworld() {
		return hostPalette.WorldColor(mapimage.AutotileKind(g, x, y))
	}
	return hostPalette.AreaColor(mapimage.SpotFlag(g, mapimage.Regions{}, x, y))
}

// drawEntityIcon draws a character icon at a real map position, unwrapping across looping seams
func (e *EbitenRenderer) drawEntityIcon(screen *ebiten.Image, icon string, x, y float64, col color.Color) {
	m := e.session.Current()
	p := e.session.Player()
	px, py := p.RealX(), p.RealY()
	if m.Grid.IsLoopHorizontal() {
		x = px + wrapDelta(x-px, float64(m.Grid.Width()))
	}
	if m.Grid.IsLoopVertical() {
		y = py + wrapDelta(y-py, float64(m.Grid.Height()))
	}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	sx, sy := e.tileScreen(x, y, px, py, sw, sh)
	if sx < -float64(e.opts.TileSize) || sy < -float64(e.opts.TileSize) || sx > float64(sw) || sy > float64(sh) {
		return
	}
	e.drawColoredChar(screen, icon, sx, sy, col)
}

// tileScreen returns the top-left pixel of a tile with the camera centred on (px, py)
func (e *EbitenRenderer) tileScreen(x, y, px, py float64, sw, sh int) (float64, float64) {
	ts := float64(e.opts.TileSize)
	return (x-px)*ts + float64(sw)/2 - ts/2, (y-py)*ts + float64(sh)/2 - ts/2
}

// wrapDelta folds a distance on a looping axis into [-size/2, size/2)
func wrapDelta(d, size float64) float64 {
	d = math.Mod(d+size/2, size)
	if d < 0 {
		d += size
	}
	return d - size/2
}

func vehicleIcon(kind marker.VehicleKind) string {
	switch kind {
	case marker.VehicleShip:
		return ShipIcon
	case marker.VehicleAirship:
		return AirshipIcon
	default:
		return BoatIcon
	}
}

// syncRaster uploads the minimap raster when the generator or its version changed
func (e *EbitenRenderer) syncRaster(gen *mapimage.Generator) bool {
	img := gen.Image()
	if img == nil {
		return false
	}
	if e.raster != nil && e.rasterSource == gen && e.rasterVersion == gen.Version() {
		return true
	}
	e.raster = uploadRGBA(e.raster, img)
	e.rasterSource = gen
	e.rasterVersion = gen.Version()
	return e.raster != nil
}

// uploadRGBA copies an RGBA image into dst, reallocating dst when the size changed
func uploadRGBA(dst *ebiten.Image, src *image.RGBA) *ebiten.Image {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	if dst == nil || dst.Bounds().Dx() != w || dst.Bounds().Dy() != h {
		if dst != nil {
			dst.Deallocate()
		}
		dst = ebiten.NewImage(w, h)
	}
	if src.Stride == w*4 && src.Rect.Min == (image.Point{}) {
		dst.WritePixels(src.Pix)
	} else {
		dst.Clear()
		dst.DrawImage(ebiten.NewImageFromImage(src), nil)
	}
	return dst
}

// boxBuffer returns the offscreen minimap box, reallocated when the profile size changes
func (e *EbitenRenderer) boxBuffer(w, h int) *ebiten.Image {
	if e.mapBuffer == nil || e.mapBuffer.Bounds().Dx() != w || e.mapBuffer.Bounds().Dy() != h {
		if e.mapBuffer != nil {
			e.mapBuffer.Deallocate()
		}
		e.mapBuffer = ebiten.NewImage(w, h)
	}
	e.mapBuffer.Clear()
	return e.mapBuffer
}

// drawMinimap composites the minimap: backdrop or frame, the raster split at
// looping seams, the lower marker layer, then the padded upper layer.
func (e *EbitenRenderer) drawMinimap(screen *ebiten.Image) {
	s := e.session
	if !s.Ready() {
		return
	}
	p, _ := s.View().Profile()
	if p.Width <= 0 || p.Height <= 0 {
		return
	}
	gen := s.Image()
	if !e.syncRaster(gen) {
		return
	}
	view := s.View()
	cx, cy := view.CorrectionX(), view.CorrectionY()
	bw, bh := view.BackdropSize()
	alpha := float32(p.Opacity) / 255

	if e.frameImage != nil {
		const border = 6
		fb := e.frameImage.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale((float64(p.Width)+border*2)/float64(fb.Dx()), (float64(p.Height)+border*2)/float64(fb.Dy()))
		op.GeoM.Translate(float64(p.X-border), float64(p.Y-border))
		op.ColorScale.ScaleAlpha(alpha)
		screen.DrawImage(e.frameImage, op)
	}

	box := e.boxBuffer(p.Width, p.Height)
	if e.frameImage == nil {
		vector.DrawFilledRect(box, float32(cx), float32(cy), float32(bw), float32(bh), colorMinimapBackdrop, false)
	}

	tw, th := gen.TileWidth(), gen.TileHeight()
	xRate, yRate := view.XRate(), view.YRate()
	scaleX, scaleY := xRate/tw, yRate/th
	for _, sp := range view.Spans() {
		x0, y0 := sp.Src.X*tw, sp.Src.Y*th
		x1, y1 := (sp.Src.X+sp.Src.W)*tw, (sp.Src.Y+sp.Src.H)*th
		r := image.Rect(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Ceil(x1)), int(math.Ceil(y1))).Intersect(e.raster.Bounds())
		if r.Empty() {
			continue
		}
		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterNearest}
		op.GeoM.Scale(scaleX, scaleY)
		op.GeoM.Translate(
			cx+sp.DstX*xRate-(x0-float64(r.Min.X))*scaleX,
			cy+sp.DstY*yRate-(y0-float64(r.Min.Y))*scaleY,
		)
		box.DrawImage(e.raster.SubImage(r).(*ebiten.Image), op)
	}

	rend := s.Renderer()
	e.lower = uploadRGBA(e.lower, rend.Lower())
	if e.lower != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(cx, cy)
		box.DrawImage(e.lower, op)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(p.X), float64(p.Y))
	op.ColorScale.ScaleAlpha(alpha)
	screen.DrawImage(box, op)

	e.upper = uploadRGBA(e.upper, rend.Upper())
	if e.upper != nil {
		pad := float64(rend.Padding())
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(p.X)-pad+cx, float64(p.Y)-pad+cy)
		op.ColorScale.ScaleAlpha(alpha)
		screen.DrawImage(e.upper, op)
	}
}

// drawBrowseBackdrop dims the host map behind the full screen map
func (e *EbitenRenderer) drawBrowseBackdrop(screen *ebiten.Image) {
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	vector.DrawFilledRect(screen, 0, 0, float32(sw), float32(sh), colorBrowseDim, false)
}

// drawBrowseOverlay draws scroll hints, the cursor, the hovered marker name and the help line
func (e *EbitenRenderer) drawBrowseOverlay(screen *ebiten.Image) {
	s := e.session
	if !s.Ready() {
		return
	}
	b := s.Browse()
	view := s.View()
	p, _ := view.Profile()
	ox := float64(p.X) + view.CorrectionX()
	oy := float64(p.Y) + view.CorrectionY()
	bw, bh := view.BackdropSize()

	e.drawScrollHints(screen, ox, oy, bw, bh)

	if x, y, visible := b.CursorScreen(); visible {
		e.drawCursor(screen, ox+x, oy+y, math.Max(view.XRate(), 8))
	}

	if name := b.HoverName(); name != "" {
		e.drawLabel(screen, name, float64(e.lastMouseX), float64(e.lastMouseY)+20, colorText)
	}

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	help := gotext.Get("BROWSE_HELP")
	e.drawColoredText(screen, help, (float64(sw)-e.getTextWidth(help))/2, float64(sh)-e.getUIFontSize()*2, colorSubtle)
}

// drawScrollHints draws a pulsing chevron on every edge with more map beyond it
func (e *EbitenRenderer) drawScrollHints(screen *ebiten.Image, x, y, w, h float64) {
	hints := e.session.Browse().ScrollHints()
	col := applyAlpha(colorScrollHint, float64(hints.Opacity)/255)
	const s = scrollHintSize
	mx, my := float32(x+w/2), float32(y+h/2)
	top, bottom := float32(y-scrollHintMargin), float32(y+h+scrollHintMargin)
	left, right := float32(x-scrollHintMargin), float32(x+w+scrollHintMargin)

	chevron := func(ax, ay, bx, by, cx, cy float32) {
		vector.StrokeLine(screen, ax, ay, bx, by, 2, col, true)
		vector.StrokeLine(screen, bx, by, cx, cy, 2, col, true)
	}
	if hints.Up {
		chevron(mx-s, top, mx, top-s, mx+s, top)
	}
	if hints.Down {
		chevron(mx-s, bottom, mx, bottom+s, mx+s, bottom)
	}
	if hints.Left {
		chevron(left, my-s, left-s, my, left, my+s)
	}
	if hints.Right {
		chevron(right, my-s, right+s, my, right, my+s)
	}
}

// drawCursor draws the cursor sprite frame centred on (x, y), or a square outline without a sprite
func (e *EbitenRenderer) drawCursor(screen *ebiten.Image, x, y, size float64) {
	if e.cursorSheet != nil && e.opts.CursorWidth > 0 {
		sb := e.cursorSheet.Bounds()
		frames := max(sb.Dx()/e.opts.CursorWidth, 1)
		f := e.session.Browse().CursorPattern() % frames
		r := image.Rect(f*e.opts.CursorWidth, 0, (f+1)*e.opts.CursorWidth, sb.Dy())
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(x-float64(e.opts.CursorWidth)/2, y-float64(sb.Dy())/2)
		screen.DrawImage(e.cursorSheet.SubImage(r).(*ebiten.Image), op)
		return
	}
	vector.StrokeRect(screen, float32(x-size/2), float32(y-size/2), float32(size), float32(size), 2, colorCursor, false)
}

// drawStatus draws the map and zoom line and the last status message
func (e *EbitenRenderer) drawStatus(screen *ebiten.Image) {
	s := e.session
	if s.Current() == nil {
		return
	}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	p := s.Player()
	status := gotext.Get("STATUS_LINE", s.MapID(), p.X(), p.Y(), s.View().Zoom())
	e.drawColoredText(screen, status, float64(sw)-e.getTextWidth(status)-12, 8, colorText)

	if a := e.messageAlpha(); a > 0 {
		e.drawLabel(screen, e.lastMessage, float64(sw)/2, float64(sh)/2-float64(e.opts.TileSize)*2, applyAlpha(colorAction, a))
	}
	if e.opts.HelpOnScreen && !s.Browse().IsActive() {
		help := gotext.Get("MAP_HELP")
		e.drawColoredText(screen, help, 12, float64(sh)-e.getUIFontSize()*2, colorSubtle)
	}
}

// formatTile formats a tile position for console output
func formatTile(x, y int) string {
	return fmt.Sprintf("%d,%d", x, y)
}
