// Package config loads imgembed settings from an optional YAML or JSON file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AnyUserName/imgembed-cli/internal/codec"
	"github.com/AnyUserName/imgembed-cli/internal/literal"
)

// DefaultPath is looked up in the working directory when no path is given.
const DefaultPath = ".imgembed.yaml"

var (
	// ErrConfigNotFound is returned when an explicitly named file is missing.
	ErrConfigNotFound = errors.New("config: file not found")

	// ErrUnsupportedFormat is returned for extensions other than yaml/yml/json.
	ErrUnsupportedFormat = errors.New("config: unsupported format")

	// ErrInvalid is returned when a loaded value fails validation.
	ErrInvalid = errors.New("config: invalid value")
)

// Config is the full settings tree.
type Config struct {
	Literal LiteralConfig `yaml:"literal" json:"literal"`
	Decode  DecodeConfig  `yaml:"decode" json:"decode"`
	Report  ReportConfig  `yaml:"report" json:"report"`
	Log     LogConfig     `yaml:"log" json:"log"`
}

// LiteralConfig controls how literals are rendered.
type LiteralConfig struct {
	Name  string `yaml:"name" json:"name"`
	Style string `yaml:"style" json:"style"`
	// Wrap is the payload line width; 0 disables wrapping.
	Wrap int `yaml:"wrap" json:"wrap"`
}

// DecodeConfig controls the image back ends.
type DecodeConfig struct {
	DisabledFormats []string `yaml:"disabled_formats" json:"disabled_formats"`
	// SVGSize is the rendered length of an SVG's longest side; 0 keeps
	// the intrinsic size.
	SVGSize int `yaml:"svg_size" json:"svg_size"`
	// MaxPixels caps width*height of a decoded image; 0 uses the
	// built-in limit.
	MaxPixels int64 `yaml:"max_pixels" json:"max_pixels"`
}

// ReportConfig controls report output.
type ReportConfig struct {
	Format string `yaml:"format" json:"format"`
}

// LogConfig controls diagnostics.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Literal: LiteralConfig{
			Name:  literal.DefaultName,
			Style: literal.DefaultStyle,
			Wrap:  codec.DefaultWrap,
		},
		Report: ReportConfig{Format: "text"},
		Log:    LogConfig{Level: "warn", Format: "console"},
	}
}

// Load reads settings from path. An empty path tries DefaultPath and
// falls back to Default when that file does not exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if !explicit {
				return Default(), nil
			}
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("access config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return Parse(f, false)
	case ".json":
		return Parse(f, true)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Parse decodes settings over the defaults and validates them.
func Parse(r io.Reader, isJSON bool) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if isJSON {
		err = json.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Literal.Wrap < 0 {
		return fmt.Errorf("%w: literal.wrap must be >= 0, got %d", ErrInvalid, c.Literal.Wrap)
	}
	if c.Decode.SVGSize < 0 {
		return fmt.Errorf("%w: decode.svg_size must be >= 0, got %d", ErrInvalid, c.Decode.SVGSize)
	}
	if c.Decode.MaxPixels < 0 {
		return fmt.Errorf("%w: decode.max_pixels must be >= 0, got %d", ErrInvalid, c.Decode.MaxPixels)
	}
	switch c.Report.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: report.format must be text or json, got %q", ErrInvalid, c.Report.Format)
	}
	return nil
}
