// Package marker models the points of interest drawn on the minimap.
package marker

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Shape is the marker glyph, identified by its letter in a marker string
type Shape byte

// Marker shapes
const (
	ShapeNone     Shape = 0
	ShapePoint    Shape = 'P'
	ShapeArrow    Shape = 'A'
	ShapeIcon     Shape = 'I'
	ShapeTriangle Shape = 'T'
	ShapeSquare   Shape = 'S'
	ShapeRhombus  Shape = 'R'
	ShapeCross    Shape = 'X'
	ShapeCircle   Shape = 'C'
	ShapePin      Shape = '!'
)

// String returns the shape letter
func (s Shape) String() string {
	if s == ShapeNone {
		return ""
	}
	return string(rune(s))
}

// ErrMalformedSpec is returned for marker strings outside the marker grammar
var ErrMalformedSpec = errors.New("malformed marker spec")

var specPattern = regexp.MustCompile(`(?i)^(P|A|I|T|S|R|X|C(\d+)-|!)(\d+)([BTHM]*)$`)

// Spec is a parsed marker string such as "A3h" or "C5-2".
type Spec struct {
	Shape  Shape
	Radius int // circle radius in tiles
	Index  int // colour index, or icon index for ShapeIcon

	Blink       bool // B
	Directional bool // T, always set for arrows
	Highlighted bool // H, as written; circles ignore it when drawn
	Gated       bool // M, shown only on explored tiles
}

// ParseSpec parses a marker string. Letters are case-insensitive.
func ParseSpec(s string) (Spec, error) {
	m := specPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Spec{}, fmt.Errorf("%w: %q", ErrMalformedSpec, s)
	}
	spec := Spec{Shape: Shape(strings.ToUpper(m[1])[0])}
	if m[2] != "" {
		r, err := strconv.Atoi(m[2])
		if err != nil {
			return Spec{}, fmt.Errorf("%w: radius %q", ErrMalformedSpec, m[2])
		}
		spec.Radius = r
	}
	idx, err := strconv.Atoi(m[3])
	if err != nil {
		return Spec{}, fmt.Errorf("%w: index %q", ErrMalformedSpec, m[3])
	}
	spec.Index = idx
	flags := strings.ToUpper(m[4])
	spec.Blink = strings.Contains(flags, "B")
	spec.Directional = spec.Shape == ShapeArrow || strings.Contains(flags, "T")
	spec.Highlighted = strings.Contains(flags, "H")
	spec.Gated = strings.Contains(flags, "M")
	return spec, nil
}

// String formats the spec back into marker-string form
func (s Spec) String() string {
	if s.Shape == ShapeNone {
		return ""
	}
	var b strings.Builder
	b.WriteByte(byte(s.Shape))
	if s.Shape == ShapeCircle {
		b.WriteString(strconv.Itoa(s.Radius))
		b.WriteByte('-')
	}
	b.WriteString(strconv.Itoa(s.Index))
	if s.Blink {
		b.WriteByte('B')
	}
	if s.Directional && s.Shape != ShapeArrow {
		b.WriteByte('T')
	}
	if s.Highlighted {
		b.WriteByte('H')
	}
	if s.Gated {
		b.WriteByte('M')
	}
	return b.String()
}
