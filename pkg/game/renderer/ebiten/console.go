package ebiten

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	engineinput "mapscope/pkg/engine/input"
	"mapscope/pkg/game/devtools"
	"mapscope/pkg/minimap/command"
)

// ToggleConsole toggles the console open/closed state
func (e *EbitenRenderer) ToggleConsole() {
	if e.consoleAnimating {
		// Don't toggle while animating
		return
	}

	e.consoleActive = !e.consoleActive
	e.consoleAnimating = true
	e.consoleAnimStart = time.Now().UnixMilli()

	if !e.consoleActive {
		e.consoleText = ""
		e.consoleHistoryIndex = len(e.consoleHistory)
	}
}

// IsConsoleActive returns whether the console is open or animating
func (e *EbitenRenderer) IsConsoleActive() bool {
	return e.consoleActive || e.consoleAnimating
}

// HandleConsoleInput processes input when console is active
func (e *EbitenRenderer) HandleConsoleInput() {
	if !e.consoleActive {
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		e.ToggleConsole()
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		if len(e.consoleText) > 0 {
			r := []rune(e.consoleText)
			e.consoleText = string(r[:len(r)-1])
		}
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyKPEnter) {
		if strings.TrimSpace(e.consoleText) != "" {
			e.consoleHistory = append(e.consoleHistory, e.consoleText)
			if len(e.consoleHistory) > consoleMaxHistory {
				e.consoleHistory = e.consoleHistory[1:]
			}
			e.consoleHistoryIndex = len(e.consoleHistory)

			line := e.consoleText
			e.consoleText = ""
			e.consoleScrollOffset = 0
			e.addConsoleOutput("> " + line)
			e.executeCommand(line)
		}
		return
	}

	// History navigation
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		if e.consoleHistoryIndex > 0 {
			e.consoleHistoryIndex--
			e.consoleText = e.consoleHistory[e.consoleHistoryIndex]
		}
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		if e.consoleHistoryIndex < len(e.consoleHistory)-1 {
			e.consoleHistoryIndex++
			e.consoleText = e.consoleHistory[e.consoleHistoryIndex]
		} else {
			e.consoleHistoryIndex = len(e.consoleHistory)
			e.consoleText = ""
		}
		return
	}

	// Scrollback
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		e.consoleScrollOffset = min(e.consoleScrollOffset+10, len(e.consoleOutput))
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) {
		e.consoleScrollOffset = max(e.consoleScrollOffset-10, 0)
		return
	}

	for _, r := range ebiten.AppendInputChars(nil) {
		// the toggle key itself never reaches the input line
		if r == '`' {
			continue
		}
		e.consoleText += string(r)
	}
}

// executeCommand runs a console line: built-ins first, then minimap commands
func (e *EbitenRenderer) executeCommand(line string) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return
	}

	switch strings.ToLower(parts[0]) {
	case "clear":
		e.consoleOutput = nil
		e.consoleScrollOffset = 0

	case "help":
		e.addConsoleOutput("Built-in commands:")
		e.addConsoleOutput("  map <id>      - Jump to a map")
		e.addConsoleOutput("  where         - Show the player position")
		e.addConsoleOutput("  save          - Save exploration now")
		e.addConsoleOutput("  bindings      - List key bindings")
		e.addConsoleOutput("  devmap        - Switch to the developer test map")
		e.addConsoleOutput("  dump          - Write map.txt for the active map")
		e.addConsoleOutput("  clear         - Clear console output")
		e.addConsoleOutput("Minimap commands:")
		e.addConsoleOutput("  " + strings.Join(command.Names(), ", "))

	case "map":
		if len(parts) < 2 {
			e.addConsoleOutput("Usage: map <id>")
			return
		}
		id, err := strconv.Atoi(parts[1])
		if err != nil {
			e.addConsoleError(fmt.Errorf("invalid map id %q", parts[1]))
			return
		}
		entry, ok := e.demo.Entry(id)
		if !ok {
			e.addConsoleError(fmt.Errorf("unknown map %d", id))
			return
		}
		e.transfer(entry)
		e.addConsoleOutput(fmt.Sprintf("Map %d at %s", id, formatTile(entry.X, entry.Y)))

	case "where":
		p := e.session.Player()
		e.addConsoleOutput(fmt.Sprintf("Map %d at %s", e.session.MapID(), formatTile(p.X(), p.Y())))

	case "save":
		if e.save == nil {
			e.addConsoleOutput("Saving is disabled")
			return
		}
		if err := e.save(); err != nil {
			e.addConsoleError(err)
			return
		}
		e.addConsoleOutput("Exploration saved")

	case "devmap":
		devtools.SwitchToDevMap(e.session, e.log)
		e.addConsoleOutput(fmt.Sprintf("Map %d at %s", devtools.DevMapID, formatTile(2, 2)))

	case "dump":
		path, err := devtools.DumpMapToFile(e.session, e.opts.ShotDir)
		if err != nil {
			e.addConsoleError(err)
			return
		}
		e.addConsoleOutput("Map dumped to " + path)

	case "bindings":
		e.listBindings(false)
		e.listBindings(true)

	default:
		if err := e.session.Commands().ExecuteLine(line); err != nil {
			e.addConsoleError(err)
		}
	}
}

// listBindings prints the bindings of the map or browse screen
func (e *EbitenRenderer) listBindings(browsing bool) {
	if browsing {
		e.addConsoleOutput("Browse mode:")
	} else {
		e.addConsoleOutput("Map:")
	}
	bindings := engineinput.GetBindingsByAction(browsing)
	actions := make([]engineinput.Action, 0, len(bindings))
	for a := range bindings {
		actions = append(actions, a)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })
	for _, a := range actions {
		e.addConsoleOutput(fmt.Sprintf("  %-14s %s", engineinput.ActionName(a), strings.Join(bindings[a], ", ")))
	}
}

// addConsoleOutput adds a line to the console output
func (e *EbitenRenderer) addConsoleOutput(line string) {
	e.consoleOutput = append(e.consoleOutput, line)
	if len(e.consoleOutput) > consoleMaxLines {
		e.consoleOutput = e.consoleOutput[len(e.consoleOutput)-consoleMaxLines:]
	}
}

func (e *EbitenRenderer) addConsoleError(err error) {
	e.addConsoleOutput("! " + err.Error())
}

// updateConsoleAnimation advances the open/close slide and returns its progress
func (e *EbitenRenderer) updateConsoleAnimation() float64 {
	const animDuration = 200 // milliseconds
	if !e.consoleAnimating {
		return e.consoleAnimProgress
	}
	elapsed := time.Now().UnixMilli() - e.consoleAnimStart
	if elapsed >= animDuration {
		e.consoleAnimating = false
		e.consoleAnimProgress = 0
		if e.consoleActive {
			e.consoleAnimProgress = 1
		}
		return e.consoleAnimProgress
	}
	eased := easeInOut(float64(elapsed) / animDuration)
	if e.consoleActive {
		e.consoleAnimProgress = eased
	} else {
		e.consoleAnimProgress = 1 - eased
	}
	return e.consoleAnimProgress
}

// drawConsole draws the console overlay with animation
func (e *EbitenRenderer) drawConsole(screen *ebiten.Image) {
	progress := e.updateConsoleAnimation()
	if progress <= 0 {
		return
	}

	screenWidth, screenHeight := screen.Bounds().Dx(), screen.Bounds().Dy()

	// Console takes up bottom 40% of the screen, animated
	consoleHeight := int(float64(screenHeight) * 0.4 * progress)
	consoleY := screenHeight - consoleHeight

	bgColor := color.RGBA{0, 0, 0, uint8(220 * progress)}
	vector.DrawFilledRect(screen, 0, float32(consoleY), float32(screenWidth), float32(consoleHeight), bgColor, false)
	borderColor := color.RGBA{100, 100, 150, uint8(255 * progress)}
	vector.DrawFilledRect(screen, 0, float32(consoleY), float32(screenWidth), 2, borderColor, false)

	if consoleHeight <= 20 {
		return
	}
	face := e.getMonoUIFontFace()
	fontSize := e.getUIFontSize()
	lineHeight := int(fontSize) + 6
	const paddingX, paddingY = 10, 10

	outputY := consoleY + paddingY
	linesToShow := (consoleHeight - paddingY*2 - lineHeight*2) / lineHeight
	if linesToShow > 0 && len(e.consoleOutput) > 0 {
		startIdx := max(len(e.consoleOutput)-linesToShow-e.consoleScrollOffset, 0)
		for i := startIdx; i < len(e.consoleOutput) && i < startIdx+linesToShow; i++ {
			line := e.consoleOutput[i]
			col := color.Color(colorText)
			if strings.HasPrefix(line, "! ") {
				col = colorDenied
			}
			op := &text.DrawOptions{}
			op.GeoM.Translate(paddingX, float64(outputY))
			op.ColorScale.ScaleWithColor(applyAlpha(col, progress))
			text.Draw(screen, line, face, op)
			outputY += lineHeight
		}
	}

	// Blinking cursor on the input line
	cursor := "_"
	if time.Now().UnixMilli()/500%2 == 0 {
		cursor = " "
	}
	inputY := consoleY + consoleHeight - paddingY - lineHeight
	op := &text.DrawOptions{}
	op.GeoM.Translate(paddingX, float64(inputY))
	op.ColorScale.ScaleWithColor(applyAlpha(color.White, progress))
	text.Draw(screen, "> "+e.consoleText+cursor, face, op)
}
