package command

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) ShowMinimapAt(index int) { r.add("show %d", index) }
func (r *recorder) SetZoom(zoom float64, smooth bool) { r.add("zoom %v %v", zoom, smooth) }
func (r *recorder) AddMarker(x, y float64, spec string, tag int) bool {
	r.add("add %v %v %s %d", x, y, spec, tag)
	return true
}
func (r *recorder) RemoveMarkersByTag(tag int) int {
	r.add("rmtag %d", tag)
	return 0
}

func (r *recorder) RemoveMarkerAt(x, y float64) int {
	r.add("rmat %v %v", x, y)
	return 0
}

func (r *recorder) SetExplorationRadius(radius int) { r.add("radius %d", radius) }
func (r *recorder) ExploreAt(x, y, radius int) { r.add("explore %d %d %d", x, y, radius) }
func (r *recorder) FillExploration(mapID int) { r.add("fill %d", mapID) }
func (r *recorder) ClearExploration(mapID int) { r.add("clear %d", mapID) }
func (r *recorder) OpenBrowseMode() { r.add("open") }
func (r *recorder) CloseBrowseMode() { r.add("close") }

type slots map[int]int

func (s slots) Variable(n int) int { return s[n] }

func TestExecute(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"ShowMinimapAt 2", "show 2"},
		{"SetZoom 300", "zoom 300 false"},
		{"SmoothSetZoom full", "zoom -1 true"},
		{"SetZoom FULL", "zoom -1 false"},
		{"AddMarker 3 4 P2B", "add 3 4 P2B 0"},
		{"AddMarker 3 4 C3-1 9", "add 3 4 C3-1 9"},
		{"RemoveMarkersByTag 9", "rmtag 9"},
		{"RemoveMarkerAt 3 4", "rmat 3 4"},
		{"SetExplorationRadius 8", "radius 8"},
		{"ExploreAt 10 12 3", "explore 10 12 3"},
		{"FillExploration", "fill 0"},
		{"ClearExploration 4", "clear 4"},
		{"OpenBrowseMode", "open"},
		{"CloseBrowseMode", "close"},
		// aliases
		{"ShowMinimap 1", "show 1"},
		{"SetMinimapZoom 200", "zoom 200 true"},
		{"RemoveMarker 5", "rmtag 5"},
		{"RemoveMarkerXy 1 2", "rmat 1 2"},
		{"SetMappingRadius 4", "radius 4"},
		{"FillMappingXy 1 2 3", "explore 1 2 3"},
		{"FillAllMapping 2", "fill 2"},
		{"ClearMapping", "clear 0"},
		{"CallMenuMap", "open"},
		{"マーカー追加 1 1 S0", "add 1 1 S0 0"},
		// variable slots
		{"ShowMinimapAt v[3]", "show 2"},
		{"AddMarker V[1] v[2] A1 v[9]", "add 7 11 A1 0"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			r := &recorder{}
			e := New(r, slots{1: 7, 2: 11, 3: 2}, zerolog.Nop())
			require.NoError(t, e.ExecuteLine(tt.line))
			require.Len(t, r.calls, 1)
			assert.Equal(t, tt.want, r.calls[0])
		})
	}
}

func TestExecuteErrors(t *testing.T) {
	r := &recorder{}
	e := New(r, nil, zerolog.Nop())

	assert.ErrorIs(t, e.Execute("Explode"), ErrUnknownCommand)
	assert.ErrorIs(t, e.Execute("ShowMinimapAt"), ErrArgCount)
	assert.ErrorIs(t, e.Execute("OpenBrowseMode", "1"), ErrArgCount)
	assert.ErrorIs(t, e.Execute("SetZoom", "huge"), ErrBadArgument)
	assert.ErrorIs(t, e.Execute("ExploreAt", "1", "v[x]", "2"), ErrBadArgument)
	assert.Empty(t, r.calls)

	assert.NoError(t, e.ExecuteLine("   "))
	assert.NoError(t, e.Execute("ShowMinimapAt", "v[4]"), "missing variables resolve to zero")
	assert.Equal(t, []string{"show 0"}, r.calls)
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "SetZoom")
	assert.Contains(t, names, "FillAllMapping")
	for _, n := range names {
		canonical, ok := Resolve(n)
		assert.True(t, ok, n)
		_, isCommand := handlers[canonical]
		assert.True(t, isCommand, n)
	}
	_, ok := Resolve(strings.ToLower("SetZoom"))
	assert.False(t, ok, "names are case sensitive")
}

func TestValue(t *testing.T) {
	v, err := Value(" V[2] ", slots{2: 150})
	require.NoError(t, err)
	assert.Equal(t, 150, v)

	v, err = Value("-1", nil)
	require.NoError(t, err)
	assert.Equal(t, -1, v)

	_, err = Value("v[]", nil)
	assert.ErrorIs(t, err, ErrBadArgument)
}
