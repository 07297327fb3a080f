package save

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"mapscope/pkg/minimap/exploration"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "save.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndLoadArchive(t *testing.T) {
	s := openTestStore(t)

	a := exploration.NewArchive()
	town, _ := a.Setup(3, 10, 8)
	town.SetValue(2, 2, 5)
	town.SetValue(9, 7, 3)
	a.Setup(7, 4, 4)

	require.NoError(t, s.SaveArchive(DefaultSlot, a))

	loaded, err := s.LoadArchive(DefaultSlot)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 7}, loaded.MapIDs())

	got, ok := loaded.Table(3)
	require.True(t, ok)
	assert.True(t, got.IsPacked(), "tables stay packed until first access")
	assert.Equal(t, 10, got.Width())
	assert.Equal(t, 5, got.Value(2, 2))
	assert.Equal(t, 3, got.Value(9, 7))
	assert.Equal(t, 0, got.Value(0, 0))

	empty, _ := loaded.Table(7)
	assert.Equal(t, []int{16, 0}, empty.Runs())
}

func TestSaveReplacesSlot(t *testing.T) {
	s := openTestStore(t)

	first := exploration.NewArchive()
	first.Setup(1, 2, 2)
	first.Setup(2, 2, 2)
	require.NoError(t, s.SaveArchive("a", first))

	second := exploration.NewArchive()
	second.Setup(5, 3, 3)
	require.NoError(t, s.SaveArchive("a", second))
	require.NoError(t, s.SaveArchive("b", first))

	loaded, err := s.LoadArchive("a")
	require.NoError(t, err)
	assert.Equal(t, []int{5}, loaded.MapIDs())

	slots, err := s.Slots()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, slots)
}

func TestLoadDiscardsMalformedRuns(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.db.Create(&[]ExplorationRecord{
		{Slot: DefaultSlot, MapID: 1, Width: 2, Height: 2, Runs: datatypes.JSON(`[4,1]`)},
		{Slot: DefaultSlot, MapID: 2, Width: 2, Height: 2, Runs: datatypes.JSON(`[3,1]`)},
		{Slot: DefaultSlot, MapID: 3, Width: 2, Height: 2, Runs: datatypes.JSON(`"oops"`)},
	}).Error)

	loaded, err := s.LoadArchive(DefaultSlot)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, loaded.MapIDs())
}

func TestLoadUnknownSlotIsEmpty(t *testing.T) {
	s := openTestStore(t)
	loaded, err := s.LoadArchive("missing")
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
}

func TestClosedStore(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "save.db"), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Close(), ErrClosed)
	assert.ErrorIs(t, s.SaveArchive(DefaultSlot, exploration.NewArchive()), ErrClosed)
	_, err = s.LoadArchive(DefaultSlot)
	assert.ErrorIs(t, err, ErrClosed)
}
