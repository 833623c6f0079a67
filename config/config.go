// Package config provides configuration loading and access for particle fields.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrUnknownField is returned when a field preset name is not configured.
var ErrUnknownField = errors.New("unknown field preset")

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Fields    []FieldConfig   `yaml:"fields"`
	Layout    []LayoutConfig  `yaml:"layout"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Terminal  TerminalConfig  `yaml:"terminal"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds window settings for the graphical host.
type ScreenConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TargetFPS  int    `yaml:"target_fps"`
	Resizable  bool   `yaml:"resizable"`
	Background RGB    `yaml:"background"`
}

// LayoutConfig places a field inside the host window.
// Rect values are fractions of the window size.
type LayoutConfig struct {
	Field  string  `yaml:"field"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"`          // frames per aggregated stats row
	PerfCollectorWindow int `yaml:"perf_collector_window"` // frames in the rolling perf window
}

// TerminalConfig holds settings for the terminal host.
type TerminalConfig struct {
	Field      string  `yaml:"field"`
	CellWidth  float64 `yaml:"cell_width"`  // pixels per terminal column
	CellHeight float64 `yaml:"cell_height"` // pixels per terminal row
	TickMS     int     `yaml:"tick_ms"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FieldIndex map[string]int // name -> index into Fields
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

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Field presets are matched by name so a user file can override a single knob
		if err := cfg.merge(data); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge overlays user YAML onto the loaded defaults.
// Top-level sections overwrite field by field; field presets merge by name.
func (c *Config) merge(data []byte) error {
	defaults := c.Fields
	c.Fields = nil
	if err := yaml.Unmarshal(data, c); err != nil {
		return err
	}
	if c.Fields == nil {
		c.Fields = defaults
		return nil
	}

	// Re-decode presets on top of their defaults so omitted keys keep default values
	var overlay struct {
		Fields []yaml.Node `yaml:"fields"`
	}
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return err
	}
	merged := append([]FieldConfig(nil), defaults...)
	for _, node := range overlay.Fields {
		var named struct {
			Name string `yaml:"name"`
		}
		if err := node.Decode(&named); err != nil {
			return err
		}
		idx := -1
		for i := range merged {
			if merged[i].Name == named.Name {
				idx = i
				break
			}
		}
		if idx < 0 {
			merged = append(merged, FieldConfig{})
			idx = len(merged) - 1
		}
		if err := node.Decode(&merged[idx]); err != nil {
			return err
		}
	}
	c.Fields = merged
	return nil
}

// computeDerived validates presets and computes lookup tables.
func (c *Config) computeDerived() error {
	c.Derived.FieldIndex = make(map[string]int, len(c.Fields))
	for i := range c.Fields {
		f := &c.Fields[i]
		f.ApplyDefaults()
		if err := f.Validate(); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
		c.Derived.FieldIndex[f.Name] = i
	}
	if c.Telemetry.StatsWindow < 1 {
		c.Telemetry.StatsWindow = 60
	}
	if c.Terminal.TickMS < 1 {
		c.Terminal.TickMS = 33
	}
	return nil
}

// Field returns the preset with the given name.
func (c *Config) Field(name string) (*FieldConfig, error) {
	idx, ok := c.Derived.FieldIndex[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return &c.Fields[idx], nil
}

// LayoutFor returns the window placement for the named field.
// Fields without a layout entry fill the window.
func (c *Config) LayoutFor(name string) LayoutConfig {
	for _, l := range c.Layout {
		if l.Field == name {
			return l
		}
	}
	return LayoutConfig{Field: name, Width: 1, Height: 1}
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
