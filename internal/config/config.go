// Package config loads and validates console2svg's run configuration: the
// input source, terminal geometry, crop/theme/chrome selection, and the
// animation knobs that drive internal/svgrender.
//
// A user YAML file at ~/.console2svg.yaml can add themes to the built-in
// set and override default settings, merged over the package defaults the
// same way the teacher merges ~/.multiterminal.yaml over DefaultConfig.
// Chrome styles cannot be extended by it.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/arika0093/console2svg/internal/chrome"
	"github.com/arika0093/console2svg/internal/crop"
	"github.com/arika0093/console2svg/internal/theme"
)

// InputMode selects where Convert reads terminal output from.
type InputMode int

const (
	// InputCommand spawns Command under a PTY and records it live.
	InputCommand InputMode = iota
	// InputCast replays a pre-recorded asciicast v2 file at CastPath.
	InputCast
	// InputPipe records whatever arrives on stdin until EOF, timestamping
	// each read.
	InputPipe
)

// Config is the fully-resolved set of options for one conversion.
type Config struct {
	Mode     InputMode
	Command  []string
	CastPath string

	Output   string
	Animated bool

	Cols, Rows int

	ThemeName  string
	ChromeName string
	Background string
	Padding    float64
	FontFamily string
	Opacity    float64

	CropTop, CropBottom, CropLeft, CropRight string
	MinRows                                 int

	FPS     float64
	Loop    bool
	Sleep   float64
	FadeOut float64

	// FrameIndex, when non-nil, renders a single static frame instead of
	// the whole recording (spec section 4.6, StaticSvgRenderer frame pick).
	FrameIndex *int

	SaveReplayPath  string
	ReplayInputPath string
	Deadline        float64 // seconds; 0 means no deadline
}

// DefaultConfig returns console2svg's built-in defaults.
func DefaultConfig() Config {
	return Config{
		Mode:       InputCommand,
		Output:     "out.svg",
		Cols:       80,
		Rows:       24,
		ThemeName:  "dark",
		ChromeName: "none",
		Padding:    0,
		FontFamily: "",
		Opacity:    1,
		FPS:        10,
		Loop:       false,
		Sleep:      1,
		FadeOut:    0,
		MinRows:    0,
	}
}

// Crop returns the parsed crop spec for this config.
func (c Config) Crop() crop.Spec {
	return crop.Spec{
		Top:    crop.ParseSide(c.CropTop),
		Bottom: crop.ParseSide(c.CropBottom),
		Left:   crop.ParseSide(c.CropLeft),
		Right:  crop.ParseSide(c.CropRight),
	}
}

// Validate checks structural requirements and returns the first violation
// as a *ConfigError (spec section 7). Unknown theme/chrome names are not
// validation errors: they fall back silently the way theme.Resolve and
// chrome.Resolve do, mirroring the teacher's "validate, then clamp" pattern
// in config.Load for out-of-range numeric settings.
func (c Config) Validate() error {
	switch c.Mode {
	case InputCommand:
		if len(c.Command) == 0 {
			return &ConfigError{Msg: "a command is required when no --cast or --pipe input is given"}
		}
	case InputCast:
		if c.CastPath == "" {
			return &ConfigError{Msg: "--cast requires a path to an asciicast file"}
		}
	case InputPipe:
	default:
		return &ConfigError{Msg: "unknown input mode"}
	}

	if c.Output == "" {
		return &ConfigError{Msg: "an output path is required"}
	}
	if c.Cols <= 0 || c.Rows <= 0 {
		return &ConfigError{Msg: "terminal geometry must be positive (--cols/--rows)"}
	}
	if c.Padding < 0 {
		return &ConfigError{Msg: "--padding must not be negative"}
	}
	if c.Opacity < 0 || c.Opacity > 1 {
		return &ConfigError{Msg: "--opacity must be between 0 and 1"}
	}
	if c.Animated {
		if c.FPS <= 0 {
			return &ConfigError{Msg: "--fps must be positive for animated output"}
		}
		if c.Sleep < 0 || c.FadeOut < 0 {
			return &ConfigError{Msg: "--sleep and --fade-out must not be negative"}
		}
	}
	if c.MinRows < 0 {
		return &ConfigError{Msg: "--min-rows must not be negative"}
	}
	if c.Deadline < 0 {
		return &ConfigError{Msg: "--deadline must not be negative"}
	}
	return nil
}

// ConfigError is a user-facing configuration mistake (spec section 7: exit
// code 1, no partial output attempted).
type ConfigError struct{ Msg string }

func (e *ConfigError) Error() string { return "config: " + e.Msg }

// userOverrides is the shape of ~/.console2svg.yaml: additional named
// themes and default flag values a user wants without retyping them every
// invocation.
type userOverrides struct {
	Defaults struct {
		ThemeName  string  `yaml:"theme"`
		ChromeName string  `yaml:"chrome"`
		Padding    float64 `yaml:"padding"`
		FPS        float64 `yaml:"fps"`
		Loop       bool    `yaml:"loop"`
	} `yaml:"defaults"`
	Themes []struct {
		Name       string     `yaml:"name"`
		Background string     `yaml:"background"`
		Foreground string     `yaml:"foreground"`
		ANSI       [16]string `yaml:"ansi"`
	} `yaml:"themes"`
}

// overridesPath returns the path to ~/.console2svg.yaml.
func overridesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".console2svg.yaml")
}

// LoadOverrides merges a user's ~/.console2svg.yaml into cfg and the
// package-level theme catalog (theme.Register), returning cfg unchanged if
// no override file exists. Malformed files are ignored rather than
// rejected, mirroring the teacher's tolerant config.Load.
func LoadOverrides(cfg Config) Config {
	p := overridesPath()
	if p == "" {
		return cfg
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return cfg
	}
	var ov userOverrides
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return cfg
	}

	for _, t := range ov.Themes {
		if t.Name == "" {
			continue
		}
		theme.Register(theme.Theme{
			Name:       t.Name,
			Background: t.Background,
			Foreground: t.Foreground,
			ANSI:       t.ANSI,
		})
	}

	if ov.Defaults.ThemeName != "" {
		cfg.ThemeName = ov.Defaults.ThemeName
	}
	if ov.Defaults.ChromeName != "" {
		cfg.ChromeName = ov.Defaults.ChromeName
	}
	if ov.Defaults.Padding > 0 {
		cfg.Padding = ov.Defaults.Padding
	}
	if ov.Defaults.FPS > 0 {
		cfg.FPS = ov.Defaults.FPS
	}
	cfg.Loop = cfg.Loop || ov.Defaults.Loop

	return cfg
}

// ResolvedChromeName normalizes c.ChromeName the way chrome.Resolve would,
// used by callers that want to log what chrome was actually picked.
func (c Config) ResolvedChromeName() string {
	return string(chrome.Resolve(c.ChromeName))
}
