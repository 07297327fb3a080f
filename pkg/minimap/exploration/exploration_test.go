package exploration

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompress_RoundTrip(t *testing.T) {
	cases := [][]uint8{
		{},
		{0},
		{5, 5, 5, 5},
		{0, 0, 3, 3, 3, 5, 0},
		{1, 2, 3, 4, 5, 4, 3, 2, 1},
	}
	for _, values := range cases {
		runs := Compress(values)
		got, err := Decompress(runs, len(values))
		require.NoError(t, err)
		assert.Equal(t, values, got, "runs %v", runs)
	}
}

func TestCompress_Format(t *testing.T) {
	assert.Equal(t, []int{0, 0}, Compress(nil))
	assert.Equal(t, []int{2, 0, 5, 3, 6, 0}, Compress([]uint8{0, 0, 3, 3, 3, 0}))
}

func TestDecompress_RejectsMalformed(t *testing.T) {
	cases := map[string][]int{
		"odd length":     {4, 0, 5},
		"short coverage": {2, 0, 3, 1},
		"overrun":        {2, 0, 9, 1},
		"decreasing":     {3, 0, 2, 1, 4, 0},
		"level too high": {4, 6},
		"negative level": {4, -1},
		"empty":          {},
	}
	for name, runs := range cases {
		_, err := Decompress(runs, 4)
		assert.ErrorIs(t, err, ErrMalformedRuns, name)
	}
}

func TestTable_PackIsLazy(t *testing.T) {
	tbl := NewTable(4, 3)
	tbl.SetValue(1, 1, 4)
	tbl.SetValue(3, 2, 2)

	restored, err := FromRuns(4, 3, tbl.Runs())
	require.NoError(t, err)
	assert.True(t, restored.IsPacked())

	assert.Equal(t, 4, restored.Value(1, 1))
	assert.False(t, restored.IsPacked(), "first read unpacks")
	assert.Equal(t, 2, restored.Value(3, 2))
	assert.Equal(t, 0, restored.Value(0, 0))
}

func TestTable_OutOfBounds(t *testing.T) {
	tbl := NewTable(3, 3)
	tbl.SetValue(-1, 0, 5)
	tbl.SetValue(3, 0, 5)
	tbl.SetValue(0, 3, 5)
	assert.Equal(t, []int{9, 0}, tbl.Runs(), "out of bounds writes are ignored")
	assert.Equal(t, 0, tbl.Value(10, 10))
}

func TestTable_OpacityAndExplored(t *testing.T) {
	tbl := NewTable(6, 1)
	for x := 0; x < 6; x++ {
		tbl.SetValue(x, 0, x)
	}
	assert.Equal(t, 0, tbl.Opacity(0, 0))
	assert.Equal(t, 102, tbl.Opacity(2, 0))
	assert.Equal(t, 153, tbl.Opacity(3, 0))
	assert.Equal(t, 255, tbl.Opacity(5, 0))
	assert.False(t, tbl.IsExplored(2, 0))
	assert.True(t, tbl.IsExplored(3, 0))

	tbl.SetValue(0, 0, 12)
	assert.Equal(t, MaxLevel, tbl.Value(0, 0), "levels clamp to the maximum")
}

func TestFillRadius_RevealsWithinRadius(t *testing.T) {
	tbl := NewTable(20, 20)
	e := NewExplorer(tbl, false, false, 3)
	e.Reveal(10, 10)

	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			d := math.Hypot(float64(x-10), float64(y-10))
			if d <= 3 {
				assert.GreaterOrEqual(t, tbl.Value(x, y), 3, "tile %d,%d at distance %.2f", x, y, d)
			}
		}
	}
	assert.Equal(t, MaxLevel, tbl.Value(10, 10))
	assert.Equal(t, 1, tbl.Value(13, 12))
	assert.Equal(t, 0, tbl.Value(14, 10))
}

func TestFillRadius_Monotonic(t *testing.T) {
	tbl := NewTable(10, 10)
	e := NewExplorer(tbl, false, false, 2)
	e.FillRadius(5, 5, 4)
	before := tbl.Value(7, 5)
	e.FillRadius(0, 0, 1)
	e.FillRadius(5, 5, 1)
	assert.Equal(t, before, tbl.Value(7, 5), "a smaller reveal never lowers a level")
}

func TestFillRadius_DirtyOncePerRaise(t *testing.T) {
	tbl := NewTable(10, 10)
	e := NewExplorer(tbl, false, false, 1)
	e.Reveal(0, 0)
	first := e.Dirty()
	require.NotEmpty(t, first)
	assert.Equal(t, image.Pt(0, 0), first[0])
	assert.NotContains(t, first, image.Pt(-1, 0))

	e.ClearDirty()
	e.Reveal(0, 0)
	assert.Empty(t, e.Dirty(), "nothing new to raise")
}

func TestFillRadius_NonPositiveRadius(t *testing.T) {
	tbl := NewTable(5, 5)
	e := NewExplorer(tbl, false, false, 0)
	e.Reveal(2, 2)
	e.FillRadius(2, 2, -3)
	assert.Equal(t, 0, tbl.Value(2, 2))
	assert.Empty(t, e.Dirty())
}

func TestFillRadius_WrapsWhenLooping(t *testing.T) {
	tbl := NewTable(10, 10)
	e := NewExplorer(tbl, true, false, 2)
	e.Reveal(0, 5)
	assert.Equal(t, MaxLevel, tbl.Value(9, 5), "left neighbour wraps to the last column")
	assert.Equal(t, 0, tbl.Value(5, 0))

	flat := NewTable(10, 10)
	NewExplorer(flat, false, false, 2).Reveal(0, 5)
	assert.Equal(t, 0, flat.Value(9, 5))
}

func TestExplorer_NilTableIsFullyVisible(t *testing.T) {
	e := NewExplorer(nil, false, false, 4)
	e.Reveal(1, 1)
	assert.Equal(t, 255, e.Opacity(1, 1))
	assert.True(t, e.IsExplored(1, 1))
}

func TestArchive_SetupDiscardsStale(t *testing.T) {
	a := NewArchive()
	tbl, stale := a.Setup(3, 10, 8)
	assert.False(t, stale)
	tbl.SetValue(1, 1, 5)

	same, stale := a.Setup(3, 10, 8)
	assert.False(t, stale)
	assert.Same(t, tbl, same)

	fresh, stale := a.Setup(3, 12, 8)
	assert.True(t, stale)
	assert.Equal(t, 0, fresh.Value(1, 1))
	assert.Equal(t, 12, fresh.Width())

	a.Setup(1, 2, 2)
	assert.Equal(t, []int{1, 3}, a.MapIDs())
	a.Pack()
	assert.True(t, fresh.IsPacked())
}
