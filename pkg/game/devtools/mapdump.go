package devtools

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gookit/color"

	"mapscope/pkg/engine/terminal"
	"mapscope/pkg/game/session"
	"mapscope/pkg/minimap/mapimage"
	"mapscope/pkg/minimap/marker"
)

const mapDumpFilename = "map.txt"

// spotSymbol returns the single-character symbol for a map tile
func spotSymbol(m *session.Map, x, y int) rune {
	g := m.Grid
	if g.IsOverworld() {
		kind := mapimage.AutotileKind(g, x, y)
		switch {
		case kind == 1:
			return '~'
		case kind >= 0 && kind < 16:
			return '-'
		case kind < 0:
			return ' '
		}
		return '.'
	}
	switch mapimage.SpotFlag(g, mapimage.Regions{}, x, y) {
	case mapimage.SpotWall:
		return '#'
	case mapimage.SpotNone:
		return ' '
	case mapimage.SpotLadder:
		return 'H'
	case mapimage.SpotBush:
		return ','
	case mapimage.SpotCounter:
		return '='
	case mapimage.SpotShallow:
		return '-'
	case mapimage.SpotRiver:
		return '~'
	}
	return '.'
}

// markerCells indexes visible markers by their tile
func markerCells(s *session.Session) map[image.Point]*marker.Marker {
	cells := make(map[image.Point]*marker.Marker)
	for _, m := range s.Markers() {
		if !m.IsVisible(s) {
			continue
		}
		x, y := m.Position(s)
		cells[image.Pt(int(x), int(y))] = m
	}
	return cells
}

// writeMapGrid writes the active map with the player and marker overlay.
// With exploredOnly set, unexplored tiles print as '?'.
func writeMapGrid(w io.Writer, s *session.Session, exploredOnly bool) {
	m := s.Current()
	p := s.Player()
	markers := markerCells(s)
	for y := 0; y < m.Grid.Height(); y++ {
		var line strings.Builder
		for x := 0; x < m.Grid.Width(); x++ {
			switch {
			case x == p.X() && y == p.Y():
				line.WriteRune('@')
			case exploredOnly && !s.IsExplored(x, y):
				line.WriteRune('?')
			case markers[image.Pt(x, y)] != nil:
				line.WriteRune('*')
			default:
				line.WriteRune(spotSymbol(m, x, y))
			}
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
}

// DumpMap writes a debug dump of the active map: metadata, legend, the
// explored map, the full map and the marker list.
func DumpMap(w io.Writer, s *session.Session) error {
	m := s.Current()
	if m == nil || m.Grid == nil {
		return fmt.Errorf("no map")
	}
	p := s.Player()
	view := s.View()

	fmt.Fprintln(w, "=== MAP DUMP ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "map_id: %d\n", m.ID)
	fmt.Fprintf(w, "width: %d\n", m.Grid.Width())
	fmt.Fprintf(w, "height: %d\n", m.Grid.Height())
	fmt.Fprintf(w, "overworld: %v\n", m.Grid.IsOverworld())
	fmt.Fprintf(w, "loop: %v,%v\n", m.Grid.IsLoopHorizontal(), m.Grid.IsLoopVertical())
	fmt.Fprintf(w, "player: %d,%d\n", p.X(), p.Y())
	fmt.Fprintf(w, "riding: %v\n", p.IsRiding())
	fmt.Fprintf(w, "minimap_ready: %v\n", s.Ready())
	fmt.Fprintf(w, "zoom: %.0f\n", view.Zoom())
	if e := s.Explorer(); e != nil {
		explored := 0
		for y := 0; y < m.Grid.Height(); y++ {
			for x := 0; x < m.Grid.Width(); x++ {
				if e.IsExplored(x, y) {
					explored++
				}
			}
		}
		fmt.Fprintf(w, "explored: %d/%d\n", explored, m.Grid.Width()*m.Grid.Height())
		fmt.Fprintf(w, "exploration_radius: %d\n", e.Radius())
	} else {
		fmt.Fprintln(w, "explored: disabled")
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Legend ---")
	fmt.Fprintln(w, ". = floor or land  # = wall  ' ' = nothing  H = ladder  , = bush  = = counter  - = shallow  ~ = deep water  * = marker  @ = player  ? = unexplored")
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Map (explored tiles only) ---")
	writeMapGrid(w, s, true)
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Map (full layout) ---")
	writeMapGrid(w, s, false)
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Markers ---")
	for _, mk := range s.Markers() {
		x, y := mk.Position(s)
		tag := "-"
		if t, ok := mk.Tag(); ok {
			tag = fmt.Sprint(t)
		}
		fmt.Fprintf(w, "  spec: %q at: %.1f,%.1f visible: %v tag: %s name: %q\n",
			mk.Spec().String(), x, y, mk.IsVisible(s), tag, mk.Name(s))
	}
	fmt.Fprintln(w, "")

	if a := s.Archive(); a != nil {
		ids := a.MapIDs()
		slices.Sort(ids)
		fmt.Fprintf(w, "--- Archive ---\nmaps: %v\n\n", ids)
	}

	fmt.Fprintln(w, "=== END MAP DUMP ===")
	return nil
}

// DumpMapToFile writes DumpMap output to map.txt in dir and returns its path
func DumpMapToFile(s *session.Session, dir string) (string, error) {
	absPath, err := filepath.Abs(filepath.Join(dir, mapDumpFilename))
	if err != nil {
		return "", err
	}
	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := DumpMap(f, s); err != nil {
		return absPath, err
	}
	return absPath, f.Sync()
}

var (
	styleWall    = color.Style{color.FgGray}
	styleFloor   = color.Style{color.FgWhite}
	styleWater   = color.Style{color.FgBlue}
	styleUnknown = color.Style{color.FgGray, color.OpBold}
	styleMarker  = color.Style{color.FgMagenta, color.OpBold}
	stylePlayer  = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
)

// PrintMap writes the explored map with terminal colours
func PrintMap(w io.Writer, s *session.Session) {
	m := s.Current()
	if m == nil {
		return
	}
	p := s.Player()
	markers := markerCells(s)
	for y := 0; y < m.Grid.Height(); y++ {
		var line strings.Builder
		for x := 0; x < m.Grid.Width(); x++ {
			switch {
			case x == p.X() && y == p.Y():
				line.WriteString(stylePlayer.Sprint("@"))
			case !s.IsExplored(x, y):
				line.WriteString(styleUnknown.Sprint("?"))
			case markers[image.Pt(x, y)] != nil:
				line.WriteString(styleMarker.Sprint("*"))
			default:
				sym := spotSymbol(m, x, y)
				switch sym {
				case '#':
					line.WriteString(styleWall.Sprint(string(sym)))
				case '~', '-':
					line.WriteString(styleWater.Sprint(string(sym)))
				default:
					line.WriteString(styleFloor.Sprint(string(sym)))
				}
			}
		}
		fmt.Fprintln(w, line.String())
	}
}

// PrintRaster writes img as true-colour half blocks, two pixel rows per
// terminal line. scale <= 0 picks the largest step that fits the terminal.
func PrintRaster(w io.Writer, img image.Image, scale int) {
	if img == nil {
		return
	}
	b := img.Bounds()
	if scale <= 0 {
		scale = terminal.FitScale(b.Dx(), b.Dy())
	}
	sample := func(x, y int) color.RGBColor {
		if y >= b.Max.Y {
			return color.RGB(0, 0, 0)
		}
		r, g, bl, _ := img.At(x, y).RGBA()
		return color.RGB(uint8(r>>8), uint8(g>>8), uint8(bl>>8))
	}
	for y := b.Min.Y; y < b.Max.Y; y += scale * 2 {
		var line strings.Builder
		for x := b.Min.X; x < b.Max.X; x += scale {
			top := sample(x, y)
			bottom := sample(x, y+scale)
			line.WriteString(color.NewRGBStyle(top, bottom).Sprint("▀"))
		}
		fmt.Fprintln(w, line.String())
	}
}
