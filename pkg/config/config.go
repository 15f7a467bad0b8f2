package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"globelabels/pkg/model"
)

// Environment overrides applied by Load after the file is read.
const (
	EnvAddress  = "GLOBELABELS_ADDR"
	EnvLogLevel = "GLOBELABELS_LOG_LEVEL"
)

// Config holds the application configuration.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Fade    FadeConfig    `yaml:"fade"`
	Data    DataConfig    `yaml:"data"`
	Toggles TogglesConfig `yaml:"toggles"`
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
}

// EngineConfig holds the collision model tuning.
type EngineConfig struct {
	ComfortableSpacing  float64            `yaml:"comfortable_spacing"`
	ShrinkFactor        float64            `yaml:"shrink_factor"`         // Continent, lake and feature labels
	MaxOffsetFactor     float64            `yaml:"max_offset_factor"`     // Cuddle bound in country label heights
	CuddleMargin        float64            `yaml:"cuddle_margin"`         // Overlap multiplier for cuddle pushes
	ContinentZoomCutoff float64            `yaml:"continent_zoom_cutoff"` // Zoom percentage hiding continents
	PlanetRadius        Distance           `yaml:"planet_radius"`
	DefaultRadius       float64            `yaml:"default_radius"` // Radians
	PixelSizes          map[string]float64 `yaml:"pixel_sizes"`    // Label height in pixels by type
	ZoomStep            float64            `yaml:"zoom_step"`      // Minimum zoom change that recomputes
}

// FadeConfig holds label animation settings.
type FadeConfig struct {
	Duration      Duration `yaml:"duration"`
	FrameInterval Duration `yaml:"frame_interval"`
}

// DataConfig lists the label inputs.
type DataConfig struct {
	LabelFile string            `yaml:"label_file"`
	Layers    map[string]string `yaml:"layers"` // Vector layer GeoJSON or .shp by layer name
	Empires   string            `yaml:"empires"`
}

// TogglesConfig holds the startup toggle state.
type TogglesConfig struct {
	Types          map[string]bool `yaml:"types"`
	Layers         map[string]bool `yaml:"layers"`
	EmpireLabels   bool            `yaml:"empire_labels"`
	AncientCities  bool            `yaml:"ancient_cities"`
	VisibleEmpires []string        `yaml:"visible_empires"`
	ZoomPercent    float64         `yaml:"zoom_percent"`
	KmPerPixel     float64         `yaml:"km_per_pixel"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Server   LogSettings `yaml:"server"`
	Requests LogSettings `yaml:"requests"`
	Trace    bool        `yaml:"trace"` // Per-label collision decisions at DEBUG
}

// LogSettings holds settings for a specific logger.
type LogSettings struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address string `yaml:"address"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	types := make(map[string]bool, len(model.AllLabelTypes))
	for _, t := range model.AllLabelTypes {
		types[string(t)] = true
	}
	layers := make(map[string]bool, len(model.AllFeatureLayers))
	layerFiles := make(map[string]string, len(model.AllFeatureLayers))
	for _, l := range model.AllFeatureLayers {
		layers[string(l)] = true
		layerFiles[string(l)] = "data/layers/" + string(l) + ".geojson"
	}

	return &Config{
		Engine: EngineConfig{
			ComfortableSpacing:  1.2,
			ShrinkFactor:        0.3,
			MaxOffsetFactor:     1.5,
			CuddleMargin:        1.1,
			ContinentZoomCutoff: 26,
			PlanetRadius:        Distance(6371000), // 6371km
			DefaultRadius:       0.005,
			PixelSizes: map[string]float64{
				string(model.TypeContinent):   28,
				string(model.TypeOcean):       22,
				string(model.TypeCountry):     16,
				string(model.TypeCapital):     12,
				string(model.TypeSea):         14,
				string(model.TypeMountain):    12,
				string(model.TypeDesert):      13,
				string(model.TypeLake):        11,
				string(model.TypeRiver):       11,
				string(model.TypeCity):        10,
				string(model.TypePlate):       14,
				string(model.TypeGlacier):     11,
				string(model.TypeCoralReef):   11,
				string(model.TypeEmpire):      20,
				string(model.TypeRegion):      15,
				string(model.TypeAncientCity): 12,
			},
			ZoomStep: 1,
		},
		Fade: FadeConfig{
			Duration:      Duration(400 * time.Millisecond),
			FrameInterval: Duration(16 * time.Millisecond),
		},
		Data: DataConfig{
			LabelFile: "data/labels.json",
			Layers:    layerFiles,
			Empires:   "data/empires.geojson",
		},
		Toggles: TogglesConfig{
			Types:         types,
			Layers:        layers,
			EmpireLabels:  true,
			AncientCities: true,
			ZoomPercent:   0,
			KmPerPixel:    40,
		},
		Log: LogConfig{
			Server: LogSettings{
				Path:  "./logs/server.log",
				Level: "INFO",
			},
			Requests: LogSettings{
				Path:  "./logs/requests.log",
				Level: "INFO",
			},
		},
		Server: ServerConfig{
			Address: "localhost:1921",
		},
	}
}

// Load loads the configuration from the given path.
// If the file does not exist, it is created with default values.
// An existing file is merged over the defaults but never written back, so user comments survive.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if err := Save(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config file: %w", err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if addr := os.Getenv(EnvAddress); addr != "" {
		cfg.Server.Address = addr
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.Log.Server.Level = strings.ToUpper(level)
	}
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	for name := range c.Engine.PixelSizes {
		if _, ok := model.ParseLabelType(name); !ok {
			return fmt.Errorf("engine.pixel_sizes: unknown label type %q", name)
		}
	}
	for name := range c.Toggles.Types {
		if _, ok := model.ParseLabelType(name); !ok {
			return fmt.Errorf("toggles.types: unknown label type %q", name)
		}
	}
	if c.Engine.PlanetRadius < 0 {
		return fmt.Errorf("engine.planet_radius must be positive, got %v", float64(c.Engine.PlanetRadius))
	}
	if c.Data.LabelFile == "" {
		return fmt.Errorf("data.label_file is required")
	}
	return nil
}

// Save writes the configuration to the path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Globe Labels Configuration
# --------------------------
# Supported Units:
#   Duration: ns, us (or µs), ms, s, m, h, d (day)
#   Distance: m (meters), km (kilometers), nm (nautical miles)

`)
	data = append(header, data...)

	reLayers := regexp.MustCompile(`(?m)^(\s+)layers:`)
	data = reLayers.ReplaceAll(data, []byte("${1}# Keys: lakes, rivers, plates, glaciers, coralReefs\n${1}layers:"))

	reZoom := regexp.MustCompile(`(?m)^(\s+)continent_zoom_cutoff:`)
	data = reZoom.ReplaceAll(data, []byte("${1}# Continents are hidden at or above this zoom percentage\n${1}continent_zoom_cutoff:"))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateDefault creates a default config file at the given path.
// Returns nil if the file already exists.
func GenerateDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return Save(path, DefaultConfig())
}
