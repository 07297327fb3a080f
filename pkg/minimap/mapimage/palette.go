package mapimage

import (
	"image/color"
	"strings"
)

// Palette holds the colour of every terrain class
type Palette struct {
	Land     color.NRGBA
	Sea      color.NRGBA
	Ford     color.NRGBA
	Mountain color.NRGBA
	Hill     color.NRGBA
	Forest   color.NRGBA
	River    color.NRGBA
	Shallow  color.NRGBA
	Ladder   color.NRGBA
	Bush     color.NRGBA
	Counter  color.NRGBA
	Wall     color.NRGBA
	Floor    color.NRGBA
	None     color.NRGBA
}

// DefaultPalette returns the stock greyscale palette
func DefaultPalette() Palette {
	return Palette{
		Land:     color.NRGBA{255, 255, 255, 255},
		Sea:      color.NRGBA{0, 0, 0, 128},
		Ford:     color.NRGBA{64, 64, 64, 191},
		Mountain: color.NRGBA{128, 128, 128, 255},
		Hill:     color.NRGBA{160, 160, 160, 255},
		Forest:   color.NRGBA{192, 192, 192, 255},
		River:    color.NRGBA{128, 128, 128, 128},
		Shallow:  color.NRGBA{160, 160, 160, 191},
		Ladder:   color.NRGBA{160, 160, 160, 255},
		Bush:     color.NRGBA{192, 192, 192, 255},
		Counter:  color.NRGBA{160, 160, 160, 128},
		Wall:     color.NRGBA{64, 64, 64, 64},
		Floor:    color.NRGBA{255, 255, 255, 255},
		None:     color.NRGBA{0, 0, 0, 0},
	}
}

// Set overrides a colour by its case-insensitive terrain name.
// It returns false for unknown names.
func (p *Palette) Set(name string, c color.NRGBA) bool {
	slot := p.slot(name)
	if slot == nil {
		return false
	}
	*slot = c
	return true
}

func (p *Palette) slot(name string) *color.NRGBA {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "land":
		return &p.Land
	case "sea":
		return &p.Sea
	case "ford":
		return &p.Ford
	case "mountain":
		return &p.Mountain
	case "hill":
		return &p.Hill
	case "forest":
		return &p.Forest
	case "river":
		return &p.River
	case "shallow":
		return &p.Shallow
	case "ladder":
		return &p.Ladder
	case "bush":
		return &p.Bush
	case "counter":
		return &p.Counter
	case "wall":
		return &p.Wall
	case "floor":
		return &p.Floor
	case "none":
		return &p.None
	default:
		return nil
	}
}
