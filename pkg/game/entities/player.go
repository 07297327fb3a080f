package entities

import (
	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog"

	"mapscope/pkg/engine/world"
	"mapscope/pkg/minimap/marker"
)

// Player is the character the user controls
type Player struct {
	Character
	name    string
	vehicle *Vehicle
}

// NewPlayer creates the player with the configured marker string
func NewPlayer(spec string, log zerolog.Logger) *Player {
	p := &Player{Character: newCharacter()}
	p.setupMarker(spec, log, (*marker.Marker).SetPlayer)
	return p
}

// SetName overrides the localized default name
func (p *Player) SetName(name string) {
	p.name = name
}

// MinimapName returns the label shown in browse mode
func (p *Player) MinimapName() string {
	if p.name != "" {
		return p.name
	}
	return gotext.Get("PLAYER_NAME")
}

// MinimapVisible hides the player while riding; the vehicle stands in for it
func (p *Player) MinimapVisible() bool {
	return p.vehicle == nil
}

// Vehicle returns the vehicle being ridden, or nil
func (p *Player) Vehicle() *Vehicle {
	return p.vehicle
}

// IsRiding returns true while the player is in a vehicle
func (p *Player) IsRiding() bool {
	return p.vehicle != nil
}

// Board gets into a vehicle standing on the player's tile or next to it
func (p *Player) Board(v *Vehicle) bool {
	if p.vehicle != nil || v == nil || v.driven {
		return false
	}
	dx, dy := v.x-p.x, v.y-p.y
	if dx*dx+dy*dy > 1 {
		return false
	}
	p.vehicle = v
	v.driven = true
	p.Locate(v.x, v.y)
	return true
}

// Leave gets out of the current vehicle, which stays where it is
func (p *Player) Leave() {
	if p.vehicle == nil {
		return
	}
	p.vehicle.driven = false
	p.vehicle.SetFacing(p.facing)
	p.vehicle = nil
}

// Step moves the player, carrying the vehicle along while riding
func (p *Player) Step(g *world.Grid, dir world.Direction) bool {
	moved := p.Character.Step(g, dir)
	if p.vehicle != nil {
		p.vehicle.x, p.vehicle.y = p.x, p.y
		p.vehicle.SetFacing(dir)
		if !moved {
			return false
		}
		p.vehicle.realX, p.vehicle.realY = p.realX, p.realY
	}
	return moved
}

// Update advances movement and keeps a ridden vehicle under the player
func (p *Player) Update() {
	p.Character.Update()
	if p.vehicle != nil {
		p.vehicle.realX, p.vehicle.realY = p.realX, p.realY
	}
}
