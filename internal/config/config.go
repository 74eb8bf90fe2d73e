package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/galleryvr/internal/layout"
)

const (
	DefaultDataDir   = ".galleryvr"
	DefaultLogLevel  = "info"
	DefaultArchetype = layout.Circular
	DefaultCount     = 8
	DefaultAddr      = ":8080"
)

var (
	// ErrUnsupportedFormat indicates a config file extension with no decoder.
	ErrUnsupportedFormat = errors.New("config: unsupported file format")

	// ErrUnknownPreset indicates a preset name absent for the archetype.
	ErrUnknownPreset = errors.New("config: unknown preset")
)

type Config struct {
	DataDir  string          `yaml:"data_dir" toml:"data_dir"`
	LogLevel string          `yaml:"log_level" toml:"log_level"`
	Layout   LayoutConfig    `yaml:"layout" toml:"layout"`
	Defaults layout.Defaults `yaml:"defaults" toml:"defaults"`
	Server   ServerConfig    `yaml:"server" toml:"server"`
}

// LayoutConfig is the on-disk form of a layout request. Count is a float so
// hand-edited files with fractional or negative values still load; it is
// normalized by Request.
type LayoutConfig struct {
	Archetype string  `yaml:"archetype" toml:"archetype"`
	Count     float64 `yaml:"count" toml:"count"`
	Radius    float64 `yaml:"radius" toml:"radius"`
	Spacing   float64 `yaml:"spacing" toml:"spacing"`
	Height    float64 `yaml:"height" toml:"height"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" toml:"addr"`
}

func DefaultConfig() *Config {
	p := ArchetypePreset(DefaultArchetype)
	return &Config{
		DataDir:  DefaultDataDir,
		LogLevel: DefaultLogLevel,
		Layout: LayoutConfig{
			Archetype: string(DefaultArchetype),
			Count:     DefaultCount,
			Radius:    p.Radius,
			Spacing:   p.Spacing,
			Height:    p.Height,
		},
		Defaults: layout.StandardDefaults(),
		Server:   ServerConfig{Addr: DefaultAddr},
	}
}

// Load reads a YAML (.yaml, .yml) or TOML (.toml) file on top of
// DefaultConfig.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	case ".toml":
		var sb strings.Builder
		err = toml.NewEncoder(&sb).Encode(cfg)
		data = []byte(sb.String())
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Request converts the layout section into an engine request.
func (c *Config) Request() layout.Request {
	return c.Layout.Request()
}

func (l LayoutConfig) Request() layout.Request {
	return layout.Request{
		Archetype: layout.Archetype(strings.ToLower(strings.TrimSpace(l.Archetype))),
		Count:     layout.ValidCount(l.Count),
		Radius:    l.Radius,
		Spacing:   l.Spacing,
		Height:    l.Height,
	}
}

// Engine returns a layout engine using the configured fallbacks.
func (c *Config) Engine() *layout.Engine {
	return layout.NewEngine(c.Defaults)
}
