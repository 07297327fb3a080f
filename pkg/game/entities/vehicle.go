package entities

import (
	"strings"

	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog"

	"mapscope/pkg/minimap/marker"
)

// Vehicle is a boat, ship or airship parked on some map
type Vehicle struct {
	Character
	kind   marker.VehicleKind
	mapID  int
	driven bool
}

// NewVehicle creates a vehicle of the given kind with its configured marker string
func NewVehicle(kind marker.VehicleKind, spec string, log zerolog.Logger) *Vehicle {
	v := &Vehicle{Character: newCharacter(), kind: kind}
	v.setupMarker(spec, log, func(m *marker.Marker) { m.SetVehicle(kind) })
	return v
}

// Kind returns the vehicle kind
func (v *Vehicle) Kind() marker.VehicleKind {
	return v.kind
}

// MapID returns the map the vehicle is parked on
func (v *Vehicle) MapID() int {
	return v.mapID
}

// Park moves the vehicle to a tile of a map
func (v *Vehicle) Park(mapID, x, y int) {
	v.mapID = mapID
	v.Locate(x, y)
}

// IsDriven returns true while the player rides the vehicle
func (v *Vehicle) IsDriven() bool {
	return v.driven
}

// MinimapName returns the localized vehicle name
func (v *Vehicle) MinimapName() string {
	return gotext.Get("VEHICLE_" + strings.ToUpper(string(v.kind)))
}

// MinimapVisible hides the vehicle while driven or transparent
func (v *Vehicle) MinimapVisible() bool {
	return !v.driven && !v.transparent
}
