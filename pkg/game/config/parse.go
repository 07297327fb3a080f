package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

var (
	ErrBadRange = errors.New("bad range")
	ErrBadColor = errors.New("bad color")
)

// ParseRange reads a list such as "1-5,8" into a set. Blank input yields an empty set.
func ParseRange(s string) (mapset.Set[int], error) {
	set := mapset.New[int]()
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		from, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return set, fmt.Errorf("%w: %q", ErrBadRange, part)
		}
		to := from
		if isRange {
			if to, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
				return set, fmt.Errorf("%w: %q", ErrBadRange, part)
			}
		}
		if to < from {
			return set, fmt.Errorf("%w: %q", ErrBadRange, part)
		}
		for id := from; id <= to; id++ {
			set.Put(id)
		}
	}
	return set, nil
}

// ParseColor reads "r,g,b,a" with channels 0-255 and alpha 0.0-1.0
func ParseColor(s string) (color.NRGBA, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		rgb[i] = uint8(v)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
	if err != nil || a < 0 || a > 1 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: uint8(math.Round(a * 255))}, nil
}
