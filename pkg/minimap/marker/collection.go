package marker

import (
	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog"
)

// Collection holds the markers placed by commands rather than by entities
type Collection struct {
	markers []*Marker
	log     zerolog.Logger
}

// NewCollection creates an empty collection
func NewCollection(log zerolog.Logger) *Collection {
	return &Collection{log: log}
}

// Check reports whether s is a usable marker string, logging malformed ones.
// An empty string is silently rejected.
func Check(log zerolog.Logger, s string) bool {
	if s == "" {
		return false
	}
	if _, err := ParseSpec(s); err != nil {
		log.Warn().Str("marker", s).Msg(gotext.Get("MARKER_ERROR"))
		return false
	}
	return true
}

// Add places a fixed marker. It returns nil if the spec is malformed.
func (c *Collection) Add(mapID int, x, y float64, spec string, tag int) *Marker {
	if !Check(c.log, spec) {
		return nil
	}
	m, err := Parse(spec)
	if err != nil {
		return nil
	}
	m.SetPosition(mapID, x, y)
	m.SetTag(tag)
	c.markers = append(c.markers, m)
	return m
}

// RemoveByTag removes every marker carrying the tag and returns how many went
func (c *Collection) RemoveByTag(tag int) int {
	return c.removeIf(func(m *Marker) bool {
		t, ok := m.Tag()
		return ok && t == tag
	})
}

// RemoveAt removes every marker fixed at the coordinate and returns how many went
func (c *Collection) RemoveAt(mapID int, x, y float64) int {
	return c.removeIf(func(m *Marker) bool {
		return m.At(mapID, x, y)
	})
}

func (c *Collection) removeIf(match func(*Marker) bool) int {
	kept := c.markers[:0]
	removed := 0
	for _, m := range c.markers {
		if match(m) {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	for i := len(kept); i < len(c.markers); i++ {
		c.markers[i] = nil
	}
	c.markers = kept
	return removed
}

// All returns the markers in placement order
func (c *Collection) All() []*Marker {
	return c.markers
}

// Len returns the number of markers
func (c *Collection) Len() int {
	return len(c.markers)
}

// Clear removes every marker
func (c *Collection) Clear() {
	c.markers = nil
}
