package marker

import "image/color"

// PaletteSize is the number of selectable marker colours
const PaletteSize = 32

// Palette maps a marker colour index to a colour
type Palette interface {
	Color(index int) color.NRGBA
}

// TextPalette is the stock 32 entry text colour palette
type TextPalette [PaletteSize]color.NRGBA

// DefaultPalette returns the stock text colours
func DefaultPalette() TextPalette {
	return TextPalette{
		{0xff, 0xff, 0xff, 0xff}, {0x20, 0xa0, 0xd6, 0xff}, {0xff, 0x78, 0x4c, 0xff}, {0x66, 0xcc, 0x40, 0xff},
		{0x99, 0xcc, 0xff, 0xff}, {0xcc, 0xc0, 0xff, 0xff}, {0xff, 0xff, 0xa0, 0xff}, {0x80, 0x80, 0x80, 0xff},
		{0xc0, 0xc0, 0xc0, 0xff}, {0x20, 0x80, 0xcc, 0xff}, {0xff, 0x38, 0x10, 0xff}, {0x00, 0xa0, 0x10, 0xff},
		{0x3e, 0x9a, 0xde, 0xff}, {0xa0, 0x98, 0xff, 0xff}, {0xff, 0xcc, 0x20, 0xff}, {0x00, 0x00, 0x00, 0xff},
		{0x84, 0xaa, 0xff, 0xff}, {0xff, 0xff, 0x40, 0xff}, {0xff, 0x20, 0x20, 0xff}, {0x20, 0x20, 0x40, 0xff},
		{0xe0, 0x80, 0x40, 0xff}, {0xf0, 0xc0, 0x40, 0xff}, {0x40, 0x80, 0xc0, 0xff}, {0x40, 0xc0, 0xf0, 0xff},
		{0x80, 0xff, 0x80, 0xff}, {0xc0, 0x80, 0x80, 0xff}, {0x80, 0x80, 0xff, 0xff}, {0xff, 0x80, 0xff, 0xff},
		{0x00, 0xa0, 0x40, 0xff}, {0x00, 0xe0, 0x60, 0xff}, {0xa0, 0x60, 0xe0, 0xff}, {0xc0, 0x80, 0xff, 0xff},
	}
}

// Color returns the colour at index. Out of range indexes use entry 0.
func (p TextPalette) Color(index int) color.NRGBA {
	if index < 0 || index >= PaletteSize {
		return p[0]
	}
	return p[index]
}
