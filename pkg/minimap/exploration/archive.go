package exploration

import "sort"

// Archive holds the exploration table of every visited map
type Archive struct {
	tables map[int]*Table
}

// NewArchive creates an empty archive
func NewArchive() *Archive {
	return &Archive{tables: make(map[int]*Table)}
}

// Table returns the table stored for a map
func (a *Archive) Table(mapID int) (*Table, bool) {
	t, ok := a.tables[mapID]
	return t, ok
}

// Put stores a table for a map, replacing any previous one
func (a *Archive) Put(mapID int, t *Table) {
	a.tables[mapID] = t
}

// Setup returns the table for a map of the given size. A missing table, or one
// whose dimensions no longer match the map, is replaced by an empty one; stale
// reports that an existing table was discarded.
func (a *Archive) Setup(mapID, width, height int) (t *Table, stale bool) {
	if existing, ok := a.tables[mapID]; ok {
		if existing.Matches(width, height) {
			return existing, false
		}
		stale = true
	}
	t = NewTable(width, height)
	a.tables[mapID] = t
	return t, stale
}

// MapIDs returns the stored map ids in ascending order
func (a *Archive) MapIDs() []int {
	ids := make([]int, 0, len(a.tables))
	for id := range a.tables {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Len returns the number of stored tables
func (a *Archive) Len() int {
	return len(a.tables)
}

// Pack switches every table to run-length form before persisting
func (a *Archive) Pack() {
	for _, t := range a.tables {
		t.Pack()
	}
}
