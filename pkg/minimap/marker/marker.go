package marker

import (
	"math"
)

// HitSize is the half-extent in display pixels used to hit-test non-circle markers
const HitSize = 12

// Marker is one point of interest. It either follows a Subject or sits at a
// fixed coordinate of one map; binding one clears the other.
type Marker struct {
	spec  Spec
	valid bool

	tag    int
	tagged bool

	subject Subject
	mapID   int
	x, y    float64
	fixed   bool
}

// New creates an invalid, unbound marker
func New() *Marker {
	return &Marker{}
}

// Parse creates a marker from a marker string
func Parse(s string) (*Marker, error) {
	m := New()
	if err := m.SetSpec(s); err != nil {
		return nil, err
	}
	return m, nil
}

// SetSpec replaces the marker's appearance. A malformed string leaves the marker untouched.
func (m *Marker) SetSpec(s string) error {
	spec, err := ParseSpec(s)
	if err != nil {
		return err
	}
	m.spec = spec
	m.valid = true
	return nil
}

// Spec returns the parsed appearance
func (m *Marker) Spec() Spec {
	return m.spec
}

// IsValid returns true once the marker has a shape
func (m *Marker) IsValid() bool {
	return m != nil && m.valid && m.spec.Shape != ShapeNone
}

// Shape returns the glyph
func (m *Marker) Shape() Shape {
	return m.spec.Shape
}

// Radius returns a circle marker's radius in tiles
func (m *Marker) Radius() int {
	return m.spec.Radius
}

// ColorIndex returns the palette index of the marker colour
func (m *Marker) ColorIndex() int {
	return m.spec.Index
}

// IconIndex returns the icon sheet index for icon markers
func (m *Marker) IconIndex() int {
	return m.spec.Index
}

// IsBlink returns true if the marker pulses
func (m *Marker) IsBlink() bool {
	return m.spec.Blink
}

// IsDirectional returns true if the marker rotates with its subject's facing
func (m *Marker) IsDirectional() bool {
	return m.spec.Directional
}

// IsHighlighted returns true if the marker is kept on screen at the viewport edge.
// Circles are never highlighted.
func (m *Marker) IsHighlighted() bool {
	return m.spec.Highlighted && m.spec.Shape != ShapeCircle
}

// IsExplorationGated returns true if the marker shows only on explored tiles
func (m *Marker) IsExplorationGated() bool {
	return m.spec.Gated
}

// SetTag attaches a removal tag
func (m *Marker) SetTag(tag int) {
	m.tag = tag
	m.tagged = true
}

// Tag returns the removal tag and whether one was set
func (m *Marker) Tag() (int, bool) {
	return m.tag, m.tagged
}

// SetSubject binds the marker to an entity and clears any fixed coordinate
func (m *Marker) SetSubject(s Subject) {
	m.ClearPosition()
	m.subject = s
}

// SetPlayer binds the marker to the player
func (m *Marker) SetPlayer() {
	m.SetSubject(PlayerSubject())
}

// SetVehicle binds the marker to a vehicle
func (m *Marker) SetVehicle(kind VehicleKind) {
	m.SetSubject(VehicleSubject(kind))
}

// SetEvent binds the marker to an event of a map
func (m *Marker) SetEvent(mapID, eventID int) {
	m.SetSubject(EventSubject(mapID, eventID))
}

// SetPosition pins the marker to a coordinate of a map and clears any subject
func (m *Marker) SetPosition(mapID int, x, y float64) {
	m.ClearPosition()
	m.mapID = mapID
	m.x, m.y = x, y
	m.fixed = true
}

// ClearPosition unbinds both subject and coordinate
func (m *Marker) ClearPosition() {
	m.subject = Subject{}
	m.mapID = 0
	m.x, m.y = 0, 0
	m.fixed = false
}

// Subject returns the bound subject (Kind SubjectNone for fixed markers)
func (m *Marker) Subject() Subject {
	return m.subject
}

// IsPlayer returns true for the player's marker
func (m *Marker) IsPlayer() bool {
	return m.subject.Kind == SubjectPlayer
}

// IsFixed returns true when the marker sits at a coordinate
func (m *Marker) IsFixed() bool {
	return m.fixed
}

// IsBound returns true when the marker has either a subject or a coordinate
func (m *Marker) IsBound() bool {
	return m.fixed || m.subject.Kind != SubjectNone
}

// MapID returns the map of a fixed marker
func (m *Marker) MapID() int {
	return m.mapID
}

// At returns true if the marker is fixed at exactly this coordinate
func (m *Marker) At(mapID int, x, y float64) bool {
	return m.fixed && m.mapID == mapID && m.x == x && m.y == y
}

// Target resolves the live entity the marker follows, or nil
func (m *Marker) Target(w World) Trackable {
	if m.subject.Kind == SubjectNone || w == nil {
		return nil
	}
	if m.subject.Kind == SubjectEvent && m.subject.MapID != w.MapID() {
		return nil
	}
	return w.Resolve(m.subject)
}

// Position returns the marker's continuous tile position
func (m *Marker) Position(w World) (x, y float64) {
	if t := m.Target(w); t != nil {
		return t.RealX(), t.RealY()
	}
	return m.x, m.y
}

func (m *Marker) tile(w World) (x, y int) {
	if t := m.Target(w); t != nil {
		return t.X(), t.Y()
	}
	return int(math.Floor(m.x)), int(math.Floor(m.y))
}

// IsVisible decides whether the marker is drawn this frame
func (m *Marker) IsVisible(w World) bool {
	if !m.IsValid() {
		return false
	}
	var visible bool
	if t := m.Target(w); t != nil {
		visible = t.MinimapVisible()
	} else {
		visible = m.fixed && w != nil && m.mapID == w.MapID()
	}
	if visible && m.spec.Gated && w != nil {
		visible = w.IsExplored(m.tile(w))
	}
	return visible
}

// Angle returns the clockwise rotation in degrees for directional markers
func (m *Marker) Angle(w World) float64 {
	if !m.spec.Directional {
		return 0
	}
	if t := m.Target(w); t != nil {
		return t.Facing().Angle()
	}
	return 0
}

// Name returns the label shown for the marker in browse mode
func (m *Marker) Name(w World) string {
	if t := m.Target(w); t != nil {
		return t.MinimapName()
	}
	return ""
}

// Overlaps hit-tests a tile position against the marker. Circles use their
// radius in tiles; other shapes use a fixed box in display pixels, so the
// rates convert tile distance to pixels.
func (m *Marker) Overlaps(w World, x, y, xRate, yRate float64) bool {
	if !m.IsVisible(w) {
		return false
	}
	mx, my := m.Position(w)
	sx, sy := math.Abs(x-mx), math.Abs(y-my)
	if m.spec.Shape == ShapeCircle {
		return math.Hypot(sx, sy) <= float64(m.spec.Radius)
	}
	return sx*xRate <= HitSize && sy*yRate <= HitSize
}
