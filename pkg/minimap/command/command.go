// Package command exposes the minimap to a scripting layer as named verbs
// with plain string arguments.
package command

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrArgCount       = errors.New("wrong number of arguments")
	ErrBadArgument    = errors.New("bad argument")
)

// FullZoom is passed to SetZoom for the zoom that fits the whole map
const FullZoom = -1

// Target is the minimap surface commands act on
type Target interface {
	ShowMinimapAt(index int)
	SetZoom(zoom float64, smooth bool)
	AddMarker(x, y float64, spec string, tag int) bool
	RemoveMarkersByTag(tag int) int
	RemoveMarkerAt(x, y float64) int
	SetExplorationRadius(radius int)
	ExploreAt(x, y, radius int)
	FillExploration(mapID int)
	ClearExploration(mapID int)
	OpenBrowseMode()
	CloseBrowseMode()
}

// Variables resolves numbered variable slots referenced as v[N]
type Variables interface {
	Variable(n int) int
}

type handler struct {
	minArgs int
	maxArgs int
	run     func(e *Executor, args []string) error
}

var handlers = map[string]handler{
	"ShowMinimapAt": {1, 1, func(e *Executor, a []string) error {
		i, err := e.Int(a[0])
		if err != nil {
			return err
		}
		e.target.ShowMinimapAt(i)
		return nil
	}},
	"SetZoom": {1, 1, func(e *Executor, a []string) error {
		return e.zoom(a[0], false)
	}},
	"SmoothSetZoom": {1, 1, func(e *Executor, a []string) error {
		return e.zoom(a[0], true)
	}},
	"AddMarker": {3, 4, func(e *Executor, a []string) error {
		x, y, err := e.pair(a[0], a[1])
		if err != nil {
			return err
		}
		tag := 0
		if len(a) > 3 {
			if tag, err = e.Int(a[3]); err != nil {
				return err
			}
		}
		e.target.AddMarker(float64(x), float64(y), a[2], tag)
		return nil
	}},
	"RemoveMarkersByTag": {1, 1, func(e *Executor, a []string) error {
		tag, err := e.Int(a[0])
		if err != nil {
			return err
		}
		e.target.RemoveMarkersByTag(tag)
		return nil
	}},
	"RemoveMarkerAt": {2, 2, func(e *Executor, a []string) error {
		x, y, err := e.pair(a[0], a[1])
		if err != nil {
			return err
		}
		e.target.RemoveMarkerAt(float64(x), float64(y))
		return nil
	}},
	"SetExplorationRadius": {1, 1, func(e *Executor, a []string) error {
		r, err := e.Int(a[0])
		if err != nil {
			return err
		}
		e.target.SetExplorationRadius(r)
		return nil
	}},
	"ExploreAt": {3, 3, func(e *Executor, a []string) error {
		x, y, err := e.pair(a[0], a[1])
		if err != nil {
			return err
		}
		r, err := e.Int(a[2])
		if err != nil {
			return err
		}
		e.target.ExploreAt(x, y, r)
		return nil
	}},
	"FillExploration": {0, 1, func(e *Executor, a []string) error {
		id, err := e.optionalInt(a)
		if err != nil {
			return err
		}
		e.target.FillExploration(id)
		return nil
	}},
	"ClearExploration": {0, 1, func(e *Executor, a []string) error {
		id, err := e.optionalInt(a)
		if err != nil {
			return err
		}
		e.target.ClearExploration(id)
		return nil
	}},
	"OpenBrowseMode": {0, 0, func(e *Executor, _ []string) error {
		e.target.OpenBrowseMode()
		return nil
	}},
	"CloseBrowseMode": {0, 0, func(e *Executor, _ []string) error {
		e.target.CloseBrowseMode()
		return nil
	}},
}

// aliases maps older and localized command names to current ones
var aliases = map[string]string{
	"ShowMinimap":      "ShowMinimapAt",
	"SetMinimapZoom":   "SmoothSetZoom",
	"RemoveMarker":     "RemoveMarkersByTag",
	"RemoveMarkerXy":   "RemoveMarkerAt",
	"SetMappingRadius": "SetExplorationRadius",
	"FillMappingXy":    "ExploreAt",
	"FillAllMapping":   "FillExploration",
	"ClearMapping":     "ClearExploration",
	"CallMenuMap":      "OpenBrowseMode",

	"ミニマップ表示":     "ShowMinimapAt",
	"ミニマップ拡大率設定":  "SmoothSetZoom",
	"マーカー追加":      "AddMarker",
	"マーカー削除":      "RemoveMarkersByTag",
	"座標マーカー削除":    "RemoveMarkerAt",
	"メニューマップ呼び出し": "OpenBrowseMode",
}

var variableRef = regexp.MustCompile(`(?i)^v\[(\d+)\]$`)

// Executor runs commands against a target
type Executor struct {
	target Target
	vars   Variables
	log    zerolog.Logger
}

// New creates an executor. vars may be nil, in which case v[N] resolves to 0.
func New(target Target, vars Variables, log zerolog.Logger) *Executor {
	return &Executor{target: target, vars: vars, log: log}
}

// Names returns every accepted command name, aliases included, sorted
func Names() []string {
	names := make([]string, 0, len(handlers)+len(aliases))
	for n := range handlers {
		names = append(names, n)
	}
	for n := range aliases {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Resolve maps an alias to its command name
func Resolve(name string) (string, bool) {
	if _, ok := handlers[name]; ok {
		return name, true
	}
	if n, ok := aliases[name]; ok {
		return n, true
	}
	return "", false
}

// Execute runs a single command
func (e *Executor) Execute(name string, args ...string) error {
	canonical, ok := Resolve(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	h := handlers[canonical]
	if len(args) < h.minArgs || len(args) > h.maxArgs {
		return fmt.Errorf("%w: %s takes %d to %d, got %d", ErrArgCount, canonical, h.minArgs, h.maxArgs, len(args))
	}
	if err := h.run(e, args); err != nil {
		return fmt.Errorf("%s: %w", canonical, err)
	}
	e.log.Debug().Str("command", canonical).Strs("args", args).Msg("Command executed")
	return nil
}

// ExecuteLine splits a whitespace separated line into a command and its arguments
func (e *Executor) ExecuteLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	return e.Execute(fields[0], fields[1:]...)
}

// Int parses a numeric argument, resolving v[N] through the variable slots
func (e *Executor) Int(s string) (int, error) {
	return Value(s, e.vars)
}

// Value parses an integer or a v[N] reference. A nil vars resolves every slot to 0.
func Value(s string, vars Variables) (int, error) {
	if m := variableRef.FindStringSubmatch(strings.TrimSpace(s)); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrBadArgument, s)
		}
		if vars == nil {
			return 0, nil
		}
		return vars.Variable(n), nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadArgument, s)
	}
	return v, nil
}

func (e *Executor) pair(a, b string) (int, int, error) {
	x, err := e.Int(a)
	if err != nil {
		return 0, 0, err
	}
	y, err := e.Int(b)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func (e *Executor) optionalInt(args []string) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}
	return e.Int(args[0])
}

func (e *Executor) zoom(arg string, smooth bool) error {
	z := FullZoom
	if !strings.EqualFold(arg, "full") {
		v, err := e.Int(arg)
		if err != nil {
			return err
		}
		z = v
	}
	e.target.SetZoom(float64(z), smooth)
	return nil
}
