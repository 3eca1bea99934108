// Package config provides configuration loading and access for the vortex engine.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("invalid config")

// Config holds all engine configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen" toml:"screen"`
	Vortex    VortexConfig    `yaml:"vortex" toml:"vortex"`
	Noise     NoiseConfig     `yaml:"noise" toml:"noise"`
	Glow      GlowConfig      `yaml:"glow" toml:"glow"`
	Overlay   OverlayConfig   `yaml:"overlay" toml:"overlay"`
	Telemetry TelemetryConfig `yaml:"telemetry" toml:"telemetry"`
	Headless  HeadlessConfig  `yaml:"headless" toml:"headless"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-" toml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width" toml:"width"`
	Height    int    `yaml:"height" toml:"height"`
	TargetFPS int    `yaml:"target_fps" toml:"target_fps"`
	Title     string `yaml:"title" toml:"title"`
}

// VortexConfig holds the particle population and spawn ranges.
// Every spawn-time attribute is drawn uniformly from [base, base+range).
type VortexConfig struct {
	ParticleCount   int     `yaml:"particle_count" toml:"particle_count"`
	RangeY          float64 `yaml:"range_y" toml:"range_y"` // Vertical spawn spread around center
	BaseTTL         float64 `yaml:"base_ttl" toml:"base_ttl"`
	RangeTTL        float64 `yaml:"range_ttl" toml:"range_ttl"`
	BaseSpeed       float64 `yaml:"base_speed" toml:"base_speed"`
	RangeSpeed      float64 `yaml:"range_speed" toml:"range_speed"`
	BaseRadius      float64 `yaml:"base_radius" toml:"base_radius"`
	RangeRadius     float64 `yaml:"range_radius" toml:"range_radius"`
	BaseHue         float64 `yaml:"base_hue" toml:"base_hue"`
	RangeHue        float64 `yaml:"range_hue" toml:"range_hue"`
	BackgroundColor string  `yaml:"background_color" toml:"background_color"`
}

// NoiseConfig holds flow field noise parameters.
type NoiseConfig struct {
	Kind    string  `yaml:"kind" toml:"kind"` // simplex, perlin or fbm
	Seed    int64   `yaml:"seed" toml:"seed"` // 0 = time based
	XOff    float64 `yaml:"x_off" toml:"x_off"`
	YOff    float64 `yaml:"y_off" toml:"y_off"`
	ZOff    float64 `yaml:"z_off" toml:"z_off"` // Drift of the field per tick
	Steps   float64 `yaml:"steps" toml:"steps"` // Turns per unit of noise
	Octaves int     `yaml:"octaves" toml:"octaves"`
	Alpha   float64 `yaml:"alpha" toml:"alpha"` // fbm only
	Beta    float64 `yaml:"beta" toml:"beta"`   // fbm only
}

// GlowPassConfig is one blur + brightness self-composite.
type GlowPassConfig struct {
	Blur       float64 `yaml:"blur" toml:"blur"`
	Brightness float64 `yaml:"brightness" toml:"brightness"`
}

// GlowConfig holds the compositing passes run after particles are drawn.
type GlowConfig struct {
	Passes  []GlowPassConfig `yaml:"passes" toml:"passes"`
	Present bool             `yaml:"present" toml:"present"` // Final unfiltered additive copy
}

// OverlayConfig holds the text content layered above the effect.
type OverlayConfig struct {
	Enabled bool     `yaml:"enabled" toml:"enabled"`
	Lines   []string `yaml:"lines" toml:"lines"`
	Size    float64  `yaml:"size" toml:"size"`
	Color   string   `yaml:"color" toml:"color"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window" toml:"stats_window"` // Frames per stats record
	PerfWindow  int `yaml:"perf_window" toml:"perf_window"`
}

// HeadlessConfig holds settings for runs without a window.
type HeadlessConfig struct {
	SnapshotEvery int `yaml:"snapshot_every" toml:"snapshot_every"` // 0 = never
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Background   color.RGBA
	OverlayColor color.RGBA
	ScreenW      float64
	ScreenH      float64
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns the embedded default configuration.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are broken: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML or TOML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		switch strings.ToLower(filepath.Ext(path)) {
		case ".toml":
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalid, c.Screen.Width, c.Screen.Height)
	}
	if c.Vortex.ParticleCount < 0 {
		return fmt.Errorf("%w: particle_count %d", ErrInvalid, c.Vortex.ParticleCount)
	}
	ranges := map[string]float64{
		"range_y":      c.Vortex.RangeY,
		"range_ttl":    c.Vortex.RangeTTL,
		"range_speed":  c.Vortex.RangeSpeed,
		"range_radius": c.Vortex.RangeRadius,
		"range_hue":    c.Vortex.RangeHue,
	}
	for name, v := range ranges {
		if v < 0 {
			return fmt.Errorf("%w: %s %v", ErrInvalid, name, v)
		}
	}
	for i, p := range c.Glow.Passes {
		if p.Blur < 0 || p.Brightness < 0 {
			return fmt.Errorf("%w: glow pass %d", ErrInvalid, i)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	bg, err := ParseColor(c.Vortex.BackgroundColor)
	if err != nil {
		return fmt.Errorf("background_color: %w", err)
	}
	c.Derived.Background = bg

	fg := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if c.Overlay.Color != "" {
		if fg, err = ParseColor(c.Overlay.Color); err != nil {
			return fmt.Errorf("overlay color: %w", err)
		}
	}
	c.Derived.OverlayColor = fg

	c.Derived.ScreenW = float64(c.Screen.Width)
	c.Derived.ScreenH = float64(c.Screen.Height)
	if c.Screen.TargetFPS <= 0 {
		c.Screen.TargetFPS = 60
	}
	return nil
}

// ParseColor parses a #rrggbb hex colour into an opaque RGBA value.
func ParseColor(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
