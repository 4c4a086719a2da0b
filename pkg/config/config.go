// Package config holds the visual style options of a rendered diagram.
//
// A configuration file (YAML or TOML) overrides the built-in [Default];
// EXCALIDOCKER_* environment variables override both:
//
//	font:
//	  size: 20
//	  family: 1
//	services:
//	  background_color: "#b2f2bb"
//	  fill: hachure
//	  edge: round
//	ports:
//	  background_color: "#a5d8ff"
//	  fill: solid
//	connections:
//	  visible: true
//	  edge: sharp
//	alignment:
//	  mode: stepped
package config

import (
	"slices"

	errs "github.com/excalidocker/excalidocker/pkg/errors"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "excalidocker-config.yaml"

// Alignment modes.
const (
	ModeStepped    = "stepped"
	ModeHorizontal = "horizontal"
	ModeVertical   = "vertical"
)

// Edge styles.
const (
	EdgeSharp = "sharp"
	EdgeRound = "round"
)

// Config is the effective style configuration.
type Config struct {
	Font        Font        `mapstructure:"font" yaml:"font" toml:"font"`
	Services    Services    `mapstructure:"services" yaml:"services" toml:"services"`
	Ports       Ports       `mapstructure:"ports" yaml:"ports" toml:"ports"`
	Connections Connections `mapstructure:"connections" yaml:"connections" toml:"connections"`
	Alignment   Alignment   `mapstructure:"alignment" yaml:"alignment" toml:"alignment"`
}

// Font selects the text size (which also picks the width tier) and family.
type Font struct {
	Size   int `mapstructure:"size" yaml:"size" toml:"size"`
	Family int `mapstructure:"family" yaml:"family" toml:"family"`
}

// Services styles the container rectangles.
type Services struct {
	BackgroundColor string `mapstructure:"background_color" yaml:"background_color" toml:"background_color"`
	Fill            string `mapstructure:"fill" yaml:"fill" toml:"fill"`
	Edge            string `mapstructure:"edge" yaml:"edge" toml:"edge"`
}

// Ports styles the host port ellipses.
type Ports struct {
	BackgroundColor string `mapstructure:"background_color" yaml:"background_color" toml:"background_color"`
	Fill            string `mapstructure:"fill" yaml:"fill" toml:"fill"`
}

// Connections styles the depends_on arrows.
type Connections struct {
	Visible bool   `mapstructure:"visible" yaml:"visible" toml:"visible"`
	Edge    string `mapstructure:"edge" yaml:"edge" toml:"edge"`
}

// Alignment picks how containers advance across the canvas.
type Alignment struct {
	Mode string `mapstructure:"mode" yaml:"mode" toml:"mode"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Font: Font{Size: 20, Family: 1},
		Services: Services{
			BackgroundColor: "#b2f2bb",
			Fill:            "hachure",
			Edge:            EdgeRound,
		},
		Ports: Ports{
			BackgroundColor: "#a5d8ff",
			Fill:            "solid",
		},
		Connections: Connections{Visible: true, Edge: EdgeSharp},
		Alignment:   Alignment{Mode: ModeStepped},
	}
}

var fillStyles = []string{"hachure", "cross-hatch", "solid", "zigzag", "dots", "dashed", "zigzag-line"}

// Validate rejects values the renderer cannot use. Unknown alignment modes
// and edge styles are not errors; they fall back to stepped and sharp.
func (c Config) Validate() error {
	if c.Font.Size <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "font.size must be positive, got %d", c.Font.Size)
	}
	if c.Font.Family <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "font.family must be positive, got %d", c.Font.Family)
	}
	if !slices.Contains(fillStyles, c.Services.Fill) {
		return errs.New(errs.ErrCodeInvalidConfig, "services.fill %q is not a known fill style", c.Services.Fill)
	}
	if !slices.Contains(fillStyles, c.Ports.Fill) {
		return errs.New(errs.ErrCodeInvalidConfig, "ports.fill %q is not a known fill style", c.Ports.Fill)
	}
	return nil
}
