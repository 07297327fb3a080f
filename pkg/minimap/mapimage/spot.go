package mapimage

import (
	"image/color"
	"slices"

	"github.com/zyedidia/generic/mapset"

	"mapscope/pkg/engine/world"
)

// Spot flags beyond the tileset's own bits
const (
	SpotFloor   = 0x00
	SpotWall    = world.FlagBlockAll
	SpotNone    = world.FlagStar
	SpotLadder  = world.FlagLadder
	SpotBush    = world.FlagBush
	SpotCounter = world.FlagCounter
	SpotShallow = 0x200
	SpotRiver   = 0x400
)

// water auto-tile kinds are the first sixteen blocks
const waterKinds = 16

var (
	forestKinds   = []int{20, 21, 28, 36, 44}
	hillKinds     = []int{22, 30, 38, 46}
	mountainKinds = []int{23, 31, 39, 47}
)

// Terrain is the map data the generator reads
type Terrain interface {
	Width() int
	Height() int
	IsOverworld() bool
	RegionID(x, y int) int
	LayeredTiles(x, y int) []int
	TileFlag(tileID int) int
}

// Regions lists region ids that force a tile to wall or floor
type Regions struct {
	Wall  mapset.Set[int]
	Floor mapset.Set[int]
}

func (r Regions) isWall(id int) bool {
	return r.Wall.Size() > 0 && r.Wall.Has(id)
}

func (r Regions) isFloor(id int) bool {
	return r.Floor.Size() > 0 && r.Floor.Has(id)
}

// SpotFlag classifies a tile of a non-overworld map. Forced wall regions win
// over forced floor regions, which win over the tiles themselves.
func SpotFlag(t Terrain, regions Regions, x, y int) int {
	region := t.RegionID(x, y)
	if regions.isWall(region) {
		return SpotWall
	}
	if regions.isFloor(region) {
		return SpotFloor
	}
	tiles := t.LayeredTiles(x, y)
	for _, tile := range tiles {
		flag := t.TileFlag(tile)
		switch {
		case flag&world.FlagLadder != 0:
			return SpotLadder
		case flag&world.FlagBush != 0:
			return SpotBush
		case flag&world.FlagCounter != 0:
			return SpotCounter
		}
	}
	for _, tile := range tiles {
		flag := t.TileFlag(tile)
		if flag&world.FlagStar != 0 {
			continue
		}
		if kind := world.AutotileKind(tile); kind >= 0 && kind < waterKinds {
			if flag&world.FlagBlockAll == world.FlagBlockAll {
				return SpotRiver
			}
			return SpotShallow
		}
		return flag & world.FlagBlockAll
	}
	return SpotNone
}

// AutotileKind returns the auto-tile kind of the topmost non-star tile, or -1
func AutotileKind(t Terrain, x, y int) int {
	for _, tile := range t.LayeredTiles(x, y) {
		if t.TileFlag(tile)&world.FlagStar != 0 || !world.IsAutotile(tile) {
			continue
		}
		return world.AutotileKind(tile)
	}
	return -1
}

// AreaColor returns the colour for a spot flag
func (p Palette) AreaColor(flag int) color.NRGBA {
	switch flag {
	case SpotRiver:
		return p.River
	case SpotShallow:
		return p.Shallow
	case SpotNone:
		return p.None
	case SpotLadder:
		return p.Ladder
	case SpotBush:
		return p.Bush
	case SpotCounter:
		return p.Counter
	case SpotWall:
		return p.Wall
	default:
		return p.Floor
	}
}

// WorldColor returns the colour for an overworld auto-tile kind
func (p Palette) WorldColor(kind int) color.NRGBA {
	switch {
	case kind == 1:
		return p.Sea
	case kind >= 0 && kind < waterKinds:
		return p.Ford
	case slices.Contains(forestKinds, kind):
		return p.Forest
	case slices.Contains(hillKinds, kind):
		return p.Hill
	case slices.Contains(mountainKinds, kind):
		return p.Mountain
	default:
		return p.Land
	}
}
