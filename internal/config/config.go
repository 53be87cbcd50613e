// Package config holds the tunable settings of the overlay pipeline.
//
// Settings come from three layers, each overriding the previous one: the
// built-in defaults, an optional JSON file, and HOUGH_OVERLAY_* environment
// variables.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ironsheep/hough-overlay/internal/detection"
	"github.com/ironsheep/hough-overlay/internal/overlay"
)

// DefaultRecomputePeriod is the number of frames between detection passes.
const DefaultRecomputePeriod = 20

// maxFileSize bounds config files read by Load.
const maxFileSize = 1 * 1024 * 1024

// Config is the complete pipeline configuration.
type Config struct {
	// RecomputePeriod runs detection on every frame whose counter is a
	// multiple of it. Must be > 0.
	RecomputePeriod int `json:"recompute_period"`

	// Backend names the detector backend ("hough", or "opencv" in gocv
	// builds).
	Backend string `json:"backend"`

	// Detection holds the blur and transform parameters.
	Detection detection.Params `json:"detection"`

	// Overlay holds the drawing style.
	Overlay OverlayConfig `json:"overlay"`
}

// OverlayConfig is the serializable form of overlay.Style.
type OverlayConfig struct {
	OutlineColor string `json:"outline_color"`
	CenterColor  string `json:"center_color"`
	Thickness    int    `json:"thickness"`
	CenterRadius int    `json:"center_radius"`
}

// Default returns the stock configuration: recompute every 20 frames with the
// default detection parameters, green outlines and red center markers.
func Default() Config {
	return Config{
		RecomputePeriod: DefaultRecomputePeriod,
		Backend:         detection.DefaultBackend,
		Detection:       detection.DefaultParams(),
		Overlay: OverlayConfig{
			OutlineColor: "#00FF00",
			CenterColor:  "#FF0000",
			Thickness:    1,
			CenterRadius: 3,
		},
	}
}

// Load reads a JSON config file on top of Default. Fields omitted from the
// file keep their default values, so partial configs are safe. Unknown
// fields are rejected to catch typos. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return cfg, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return cfg, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", cleanPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", cleanPath, err)
	}
	return cfg, nil
}

// Environment variables recognized by ApplyEnv.
const (
	EnvPeriod          = "HOUGH_OVERLAY_PERIOD"
	EnvBackend         = "HOUGH_OVERLAY_BACKEND"
	EnvEdgeThreshold   = "HOUGH_OVERLAY_EDGE_THRESHOLD"
	EnvCenterThreshold = "HOUGH_OVERLAY_CENTER_THRESHOLD"
	EnvMinRadius       = "HOUGH_OVERLAY_MIN_RADIUS"
	EnvMaxRadius       = "HOUGH_OVERLAY_MAX_RADIUS"
)

// ApplyEnv overrides fields from HOUGH_OVERLAY_* environment variables.
// Unset or empty variables leave the field alone; unparsable values are
// reported together.
func (c *Config) ApplyEnv() error {
	var errs []error

	if v, ok := lookupEnv(EnvPeriod); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvPeriod, err))
		} else {
			c.RecomputePeriod = n
		}
	}
	if v, ok := lookupEnv(EnvBackend); ok {
		c.Backend = v
	}

	floatVars := []struct {
		name string
		dst  *float64
	}{
		{EnvEdgeThreshold, &c.Detection.EdgeThreshold},
		{EnvCenterThreshold, &c.Detection.CenterThreshold},
		{EnvMinRadius, &c.Detection.MinRadius},
		{EnvMaxRadius, &c.Detection.MaxRadius},
	}
	for _, fv := range floatVars {
		v, ok := lookupEnv(fv.name)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", fv.name, err))
			continue
		}
		*fv.dst = f
	}

	return errors.Join(errs...)
}

func lookupEnv(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Validate reports every out-of-range setting.
func (c Config) Validate() error {
	var errs []error
	if c.RecomputePeriod <= 0 {
		errs = append(errs, fmt.Errorf("recompute_period must be > 0, got %d", c.RecomputePeriod))
	}
	if err := c.Detection.Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Style(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Style converts the overlay settings into an overlay.Style.
func (c Config) Style() (overlay.Style, error) {
	return overlay.ParseStyle(c.Overlay.OutlineColor, c.Overlay.CenterColor,
		c.Overlay.Thickness, c.Overlay.CenterRadius)
}
