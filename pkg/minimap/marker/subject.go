package marker

import (
	"regexp"

	"mapscope/pkg/engine/world"
)

// SubjectKind tells what kind of entity a marker follows
type SubjectKind int

const (
	SubjectNone SubjectKind = iota
	SubjectPlayer
	SubjectVehicle
	SubjectEvent
)

// VehicleKind names one of the host's vehicles
type VehicleKind string

// Vehicle kinds
const (
	VehicleBoat    VehicleKind = "boat"
	VehicleShip    VehicleKind = "ship"
	VehicleAirship VehicleKind = "airship"
)

// Subject identifies the entity a marker follows. It is resolved through a
// World every time it is needed, never held as a pointer.
type Subject struct {
	Kind    SubjectKind
	Vehicle VehicleKind
	MapID   int
	EventID int
}

// PlayerSubject returns the subject for the player
func PlayerSubject() Subject {
	return Subject{Kind: SubjectPlayer}
}

// VehicleSubject returns the subject for a vehicle
func VehicleSubject(kind VehicleKind) Subject {
	return Subject{Kind: SubjectVehicle, Vehicle: kind}
}

// EventSubject returns the subject for an event on a map
func EventSubject(mapID, eventID int) Subject {
	return Subject{Kind: SubjectEvent, MapID: mapID, EventID: eventID}
}

// Trackable is implemented by every entity that can carry a marker
type Trackable interface {
	RealX() float64
	RealY() float64
	X() int
	Y() int
	Facing() world.Direction
	MinimapVisible() bool
	MinimapName() string
}

// World resolves subjects and exploration state for the active map
type World interface {
	MapID() int
	Resolve(Subject) Trackable
	IsExplored(x, y int) bool
}

var placeholderName = regexp.MustCompile(`^EV\d|^#`)

// DisplayName hides editor placeholder names such as "EV001" or "#spawn".
func DisplayName(name string) string {
	if placeholderName.MatchString(name) {
		return ""
	}
	return name
}
