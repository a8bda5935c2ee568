package config

import (
	"encoding/json"
	"os"
)

// Config holds runtime configuration for the annotation editor. Fields may
// be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Viewport parameters
	MinZoom   float64 `json:"min_zoom"`
	MaxZoom   float64 `json:"max_zoom"`
	WheelStep float64 `json:"wheel_step"`

	// Interaction parameters
	DoubleClickMs  int     `json:"double_click_ms"`
	MinBoxPx       float64 `json:"min_box_px"`
	HandleRadiusPx float64 `json:"handle_radius_px"`

	// Rendering parameters
	StrokeWidth  float64 `json:"stroke_width"`
	MarkerRadius float64 `json:"marker_radius"`

	// Label applied to new boxes until the operator picks another.
	DefaultLabel string `json:"default_label"`

	// Fallback georeference used for export when the raster carries none.
	FallbackMinLng float64 `json:"fallback_min_lng"`
	FallbackMinLat float64 `json:"fallback_min_lat"`
	FallbackMaxLng float64 `json:"fallback_max_lng"`
	FallbackMaxLat float64 `json:"fallback_max_lat"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:          false,
		MinZoom:        0.1,
		MaxZoom:        10,
		WheelStep:      1.1,
		DoubleClickMs:  300,
		MinBoxPx:       20,
		HandleRadiusPx: 8,
		StrokeWidth:    2,
		MarkerRadius:   4,
		DefaultLabel:   "vine",
		FallbackMinLng: 0,
		FallbackMinLat: 0,
		FallbackMaxLng: 1,
		FallbackMaxLat: 1,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.MinZoom <= 0 {
		c.MinZoom = 0.1
	}
	if c.MaxZoom <= 0 || c.MaxZoom < c.MinZoom {
		c.MaxZoom = c.MinZoom * 100
	}
	if c.WheelStep <= 1 {
		c.WheelStep = 1.1
	}
	if c.DoubleClickMs <= 0 {
		c.DoubleClickMs = 300
	}
	if c.MinBoxPx <= 0 {
		c.MinBoxPx = 20
	}
	if c.HandleRadiusPx <= 0 {
		c.HandleRadiusPx = 8
	}
	if c.StrokeWidth <= 0 {
		c.StrokeWidth = 2
	}
	if c.MarkerRadius <= 0 {
		c.MarkerRadius = 4
	}
	if c.DefaultLabel == "" {
		c.DefaultLabel = "vine"
	}
	if c.FallbackMaxLng <= c.FallbackMinLng {
		c.FallbackMinLng, c.FallbackMaxLng = 0, 1
	}
	if c.FallbackMaxLat <= c.FallbackMinLat {
		c.FallbackMinLat, c.FallbackMaxLat = 0, 1
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
