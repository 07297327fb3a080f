// Package config loads the minimap settings from a YAML file and the command line.
package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/zyedidia/generic/mapset"

	"mapscope/pkg/minimap/browse"
	"mapscope/pkg/minimap/command"
	"mapscope/pkg/minimap/exploration"
	"mapscope/pkg/minimap/mapimage"
	"mapscope/pkg/minimap/marker"
	"mapscope/pkg/minimap/viewport"
)

// FileName is the configuration file searched for when no path is given
const FileName = "mapscope"

// Config is the decoded configuration
type Config struct {
	LogLevel string `mapstructure:"logLevel"`
	Language string `mapstructure:"language"`
	SavePath string `mapstructure:"savePath"`
	AssetDir string `mapstructure:"assetDir"`
	StartMap int    `mapstructure:"startMap"`

	Minimap     Minimap                `mapstructure:"minimap"`
	Exploration Exploration            `mapstructure:"exploration"`
	Browse      Browse                 `mapstructure:"browse"`
	Colors      map[string]string      `mapstructure:"colors"`
	Maps        map[string]MapSettings `mapstructure:"maps"`
}

// Minimap holds the overlay settings shared by every map
type Minimap struct {
	MapIDs         string             `mapstructure:"mapIds"`
	Profiles       []viewport.Profile `mapstructure:"profiles"`
	Profile        int                `mapstructure:"profile"`
	TileSize       int                `mapstructure:"tileSize"`
	BlinkDuration  int                `mapstructure:"blinkDuration"`
	WallRegions    string             `mapstructure:"wallRegions"`
	FloorRegions   string             `mapstructure:"floorRegions"`
	IconImage      string             `mapstructure:"iconImage"`
	MarkerSize     int                `mapstructure:"markerSize"`
	PlayerMarker   string             `mapstructure:"playerMarker"`
	VehicleMarkers map[string]string  `mapstructure:"vehicleMarkers"`
}

// Exploration holds the fog of exploration settings
type Exploration struct {
	Enabled  bool   `mapstructure:"enabled"`
	Radius   int    `mapstructure:"radius"`
	FogMode  string `mapstructure:"fogMode"`
	FogColor string `mapstructure:"fogColor"`
}

// Browse holds the full screen map settings
type Browse struct {
	Profile     viewport.Profile `mapstructure:"profile"`
	MarkerSize  int              `mapstructure:"markerSize"`
	MinZoom     int              `mapstructure:"minZoom"`
	MaxZoom     int              `mapstructure:"maxZoom"`
	PinEnabled  bool             `mapstructure:"pinEnabled"`
	PinImage    string           `mapstructure:"pinImage"`
	PinColor    int              `mapstructure:"pinColor"`
	CursorImage string           `mapstructure:"cursorImage"`
	CursorWidth int              `mapstructure:"cursorWidth"`
	CursorRate  int              `mapstructure:"cursorRate"`
}

// MapSettings overrides the minimap of one map
type MapSettings struct {
	Image       string `mapstructure:"image"`
	BrowseImage string `mapstructure:"browseImage"`
	Zoom        string `mapstructure:"zoom"`
}

// SetDefaults registers the default value of every key
func SetDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("language", "en_US")
	viper.SetDefault("savePath", "mapscope.db")
	viper.SetDefault("assetDir", "assets")
	viper.SetDefault("startMap", 1)

	viper.SetDefault("minimap.mapIds", "1-5")
	viper.SetDefault("minimap.profiles", []map[string]any{
		{"x": 32, "y": 32, "width": 160, "height": 120, "opacity": 192, "zoom": 150, "frame": ""},
	})
	viper.SetDefault("minimap.profile", 1)
	viper.SetDefault("minimap.tileSize", mapimage.DefaultTileSize)
	viper.SetDefault("minimap.blinkDuration", 80)
	viper.SetDefault("minimap.wallRegions", "63")
	viper.SetDefault("minimap.floorRegions", "")
	viper.SetDefault("minimap.iconImage", "")
	viper.SetDefault("minimap.markerSize", 4)
	viper.SetDefault("minimap.playerMarker", "A3h")
	viper.SetDefault("minimap.vehicleMarkers", map[string]string{
		string(marker.VehicleBoat):    "P3",
		string(marker.VehicleShip):    "P3",
		string(marker.VehicleAirship): "P3",
	})

	viper.SetDefault("exploration.enabled", true)
	viper.SetDefault("exploration.radius", exploration.DefaultRadius)
	viper.SetDefault("exploration.fogMode", mapimage.FogTinted.String())
	viper.SetDefault("exploration.fogColor", "0,0,0,0.375")

	def := browse.DefaultOptions()
	viper.SetDefault("browse.profile", map[string]any{
		"x": def.Profile.X, "y": def.Profile.Y, "width": def.Profile.Width, "height": def.Profile.Height,
		"opacity": def.Profile.Opacity, "zoom": def.Profile.Zoom, "frame": "",
	})
	viper.SetDefault("browse.markerSize", def.MarkerSize)
	viper.SetDefault("browse.minZoom", def.MinZoom)
	viper.SetDefault("browse.maxZoom", def.MaxZoom)
	viper.SetDefault("browse.pinEnabled", def.PinEnabled)
	viper.SetDefault("browse.pinImage", "")
	viper.SetDefault("browse.pinColor", 0)
	viper.SetDefault("browse.cursorImage", "")
	viper.SetDefault("browse.cursorWidth", 10)
	viper.SetDefault("browse.cursorRate", def.CursorRate)
}

// Flags registers the command line flags and binds the ones that map onto keys
func Flags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to the configuration file")
	fs.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	fs.String("lang", "en_US", "message catalog language")
	fs.String("save", "mapscope.db", "exploration save file")
	fs.Int("map", 1, "map id to start on")
	fs.Bool("dump", false, "print the minimap to the terminal and exit")
	fs.String("snapshot", "", "write a PNG of the minimap to this path and exit")

	_ = viper.BindPFlag("logLevel", fs.Lookup("log-level"))
	_ = viper.BindPFlag("language", fs.Lookup("lang"))
	_ = viper.BindPFlag("savePath", fs.Lookup("save"))
	_ = viper.BindPFlag("startMap", fs.Lookup("map"))
}

// Load sets defaults and reads the configuration file. With an empty path the
// working directory is searched for mapscope.yaml and a missing file is not an error.
func Load(path string) error {
	SetDefaults()

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName(FileName)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Decode unmarshals the loaded keys into a Config
func Decode() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return &cfg, nil
}

// MinimapMaps returns the ids of maps that show the minimap
func (c *Config) MinimapMaps() (mapset.Set[int], error) {
	return ParseRange(c.Minimap.MapIDs)
}

// Regions returns the forced wall and floor region sets
func (c *Config) Regions() (mapimage.Regions, error) {
	wall, err := ParseRange(c.Minimap.WallRegions)
	if err != nil {
		return mapimage.Regions{}, fmt.Errorf("wallRegions: %w", err)
	}
	floor, err := ParseRange(c.Minimap.FloorRegions)
	if err != nil {
		return mapimage.Regions{}, fmt.Errorf("floorRegions: %w", err)
	}
	return mapimage.Regions{Wall: wall, Floor: floor}, nil
}

// Palette returns the stock terrain palette with the configured colours applied
func (c *Config) Palette() (mapimage.Palette, error) {
	p := mapimage.DefaultPalette()
	for name, value := range c.Colors {
		col, err := ParseColor(value)
		if err != nil {
			return p, fmt.Errorf("colors.%s: %w", name, err)
		}
		if !p.Set(name, col) {
			return p, fmt.Errorf("colors.%s: unknown terrain", name)
		}
	}
	return p, nil
}

// GeneratorOptions assembles the minimap image options
func (c *Config) GeneratorOptions() (mapimage.Options, error) {
	regions, err := c.Regions()
	if err != nil {
		return mapimage.Options{}, err
	}
	palette, err := c.Palette()
	if err != nil {
		return mapimage.Options{}, err
	}
	fog, err := ParseColor(c.Exploration.FogColor)
	if err != nil {
		return mapimage.Options{}, fmt.Errorf("exploration.fogColor: %w", err)
	}
	return mapimage.Options{
		TileSize: c.Minimap.TileSize,
		Regions:  regions,
		Palette:  palette,
		Fog:      mapimage.ParseFogMode(c.Exploration.FogMode),
		FogColor: fog,
	}, nil
}

// BrowseOptions assembles the browse mode options
func (c *Config) BrowseOptions() browse.Options {
	return browse.Options{
		Profile:      c.Browse.Profile,
		MarkerSize:   c.Browse.MarkerSize,
		MinZoom:      c.Browse.MinZoom,
		MaxZoom:      c.Browse.MaxZoom,
		PinEnabled:   c.Browse.PinEnabled,
		PinColor:     c.Browse.PinColor,
		CursorFrames: 1,
		CursorRate:   c.Browse.CursorRate,
	}
}

// VehicleMarker returns the marker string configured for a vehicle
func (c *Config) VehicleMarker(kind marker.VehicleKind) string {
	return c.Minimap.VehicleMarkers[string(kind)]
}

// Map returns the overrides of one map
func (c *Config) Map(mapID int) (MapSettings, bool) {
	s, ok := c.Maps[strconv.Itoa(mapID)]
	return s, ok
}

// ZoomValue resolves the configured initial zoom. An empty or invalid value is 0,
// which leaves the display profile's zoom in effect.
func (s MapSettings) ZoomValue(vars command.Variables) int {
	if s.Zoom == "" {
		return 0
	}
	z, err := command.Value(s.Zoom, vars)
	if err != nil {
		return 0
	}
	return z
}
