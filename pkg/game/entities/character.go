// Package entities contains the characters of the demo host: the player,
// vehicles and map events. Each one carries its own minimap marker.
package entities

import (
	"math"

	"github.com/rs/zerolog"

	"mapscope/pkg/engine/world"
	"mapscope/pkg/minimap/marker"
)

// DefaultSpeed is the distance in tiles a character covers per tick while walking
const DefaultSpeed = 0.0625

// Character holds the position state shared by every map character. The tile
// position changes at once on a step; the real position follows it over
// several ticks.
type Character struct {
	x, y         int
	realX, realY float64
	facing       world.Direction
	transparent  bool
	speed        float64

	marker *marker.Marker
}

func newCharacter() Character {
	return Character{facing: world.South, speed: DefaultSpeed}
}

// X returns the tile column
func (c *Character) X() int {
	return c.x
}

// Y returns the tile row
func (c *Character) Y() int {
	return c.y
}

// RealX returns the column including movement in progress
func (c *Character) RealX() float64 {
	return c.realX
}

// RealY returns the row including movement in progress
func (c *Character) RealY() float64 {
	return c.realY
}

// Facing returns the direction the character looks in
func (c *Character) Facing() world.Direction {
	return c.facing
}

// SetFacing turns the character
func (c *Character) SetFacing(d world.Direction) {
	if d.IsValid() {
		c.facing = d
	}
}

// IsTransparent returns true while the character is not drawn
func (c *Character) IsTransparent() bool {
	return c.transparent
}

// SetTransparent hides or shows the character
func (c *Character) SetTransparent(t bool) {
	c.transparent = t
}

// SetSpeed changes the walking speed in tiles per tick
func (c *Character) SetSpeed(speed float64) {
	if speed > 0 {
		c.speed = speed
	}
}

// Locate places the character on a tile without moving animation
func (c *Character) Locate(x, y int) {
	c.x, c.y = x, y
	c.realX, c.realY = float64(x), float64(y)
}

// IsMoving returns true until the real position has caught up with the tile
func (c *Character) IsMoving() bool {
	return c.realX != float64(c.x) || c.realY != float64(c.y)
}

// Step moves one tile in dir if the grid allows it. The facing changes even
// when the step is blocked. A step across a looping seam skips the animation.
func (c *Character) Step(g *world.Grid, dir world.Direction) bool {
	c.SetFacing(dir)
	if c.IsMoving() || !g.IsPassable(c.x, c.y, dir) {
		return false
	}
	dx, dy := dir.Delta()
	nx, ny := g.RoundX(c.x+dx), g.RoundY(c.y+dy)
	wrapped := nx != c.x+dx || ny != c.y+dy
	c.x, c.y = nx, ny
	if wrapped {
		c.realX, c.realY = float64(nx), float64(ny)
	}
	return true
}

// Update advances movement in progress by one tick
func (c *Character) Update() {
	c.realX = approach(c.realX, float64(c.x), c.speed)
	c.realY = approach(c.realY, float64(c.y), c.speed)
}

func approach(from, to, step float64) float64 {
	if math.Abs(to-from) <= step {
		return to
	}
	if to > from {
		return from + step
	}
	return from - step
}

// Marker returns the character's minimap marker, nil if it has none
func (c *Character) Marker() *marker.Marker {
	return c.marker
}

// setupMarker replaces the marker with one parsed from spec. A blank or
// malformed spec leaves the character without a marker.
func (c *Character) setupMarker(spec string, log zerolog.Logger, bind func(*marker.Marker)) {
	c.marker = nil
	if !marker.Check(log, spec) {
		return
	}
	m, err := marker.Parse(spec)
	if err != nil {
		return
	}
	bind(m)
	c.marker = m
}
