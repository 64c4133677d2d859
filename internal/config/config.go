package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"
)

const defaultConfigRelPath = "configs/iso-tactics.yml"

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Window  WindowConfig  `mapstructure:"window"`
	Match   MatchConfig   `mapstructure:"match"`
	Map     MapConfig     `mapstructure:"map"`
	Log     LogConfig     `mapstructure:"log"`
	Journal JournalConfig `mapstructure:"journal"`
}

type WindowConfig struct {
	Title  string `mapstructure:"title"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
}

// MatchConfig is the rule set a new match starts with. Participants are
// "me" (human) or "bot", in turn order.
type MatchConfig struct {
	Participants        []string      `mapstructure:"participants"`
	UnitsPerParticipant int           `mapstructure:"units_per_participant"`
	BotThinkDelay       time.Duration `mapstructure:"bot_think_delay"`
	Verbose             bool          `mapstructure:"verbose"`
}

// MapConfig picks the board source: a Tiled .tmj file when Path is set,
// otherwise generated terrain.
type MapConfig struct {
	Path     string         `mapstructure:"path"`
	Generate GenerateConfig `mapstructure:"generate"`
}

type GenerateConfig struct {
	Cols       int     `mapstructure:"cols"`
	Rows       int     `mapstructure:"rows"`
	Layers     int     `mapstructure:"layers"`
	Seed       int64   `mapstructure:"seed"`
	Frequency  float64 `mapstructure:"frequency"`
	Octaves    int     `mapstructure:"octaves"`
	TileWidth  int     `mapstructure:"tile_width"`
	TileHeight int     `mapstructure:"tile_height"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`     // rotated log file path; empty logs to stderr only
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
	Dev        bool   `mapstructure:"dev"`
}

type JournalConfig struct {
	Path string `mapstructure:"path"` // sqlite file; empty disables the journal
}

var current atomic.Pointer[Config]

// Current returns the most recently loaded config, or the defaults if nothing
// has been loaded yet. The watcher swaps it when the file changes.
func Current() *Config {
	if c := current.Load(); c != nil {
		return c
	}
	d := Default()
	return &d
}

// Default is the config used when no file is found.
func Default() Config {
	return Config{
		Window: WindowConfig{Title: "Iso Tactics", Width: 960, Height: 640},
		Match: MatchConfig{
			Participants:        []string{"me", "bot"},
			UnitsPerParticipant: 3,
			BotThinkDelay:       400 * time.Millisecond,
		},
		Map: MapConfig{
			Generate: GenerateConfig{
				Cols: 10, Rows: 10, Layers: 3,
				Frequency: 0.12, Octaves: 3,
				TileWidth: 64, TileHeight: 32,
			},
		},
		Log: LogConfig{Level: "info", MaxSize: 16, MaxBackups: 3, MaxAge: 7},
	}
}

// Validate reports the first setting a match cannot start with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if len(c.Match.Participants) == 0 {
		return fmt.Errorf("%w: no participants", ErrInvalid)
	}
	for _, p := range c.Match.Participants {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "me", "human", "bot":
		default:
			return fmt.Errorf("%w: unknown participant %q", ErrInvalid, p)
		}
	}
	if c.Match.UnitsPerParticipant <= 0 {
		return fmt.Errorf("%w: units_per_participant must be positive", ErrInvalid)
	}
	if c.Match.BotThinkDelay < 0 {
		return fmt.Errorf("%w: negative bot_think_delay", ErrInvalid)
	}
	if c.Map.Path == "" {
		g := c.Map.Generate
		if g.Cols <= 0 || g.Rows <= 0 || g.Layers <= 0 {
			return fmt.Errorf("%w: generated board %dx%d with %d layers", ErrInvalid, g.Cols, g.Rows, g.Layers)
		}
		if g.TileWidth <= 0 || g.TileHeight <= 0 {
			return fmt.Errorf("%w: tile size %dx%d", ErrInvalid, g.TileWidth, g.TileHeight)
		}
		if need := len(c.Match.Participants) * c.Match.UnitsPerParticipant; g.Cols*g.Rows < need {
			return fmt.Errorf("%w: generated board %dx%d cannot hold %d units", ErrInvalid, g.Cols, g.Rows, need)
		}
	}
	return nil
}

// Resolve turns a -config flag into a file path. An explicit name is used as
// given (relative to the working directory); otherwise configs/iso-tactics.yml
// is searched for from the working directory upward. It returns "" when no
// file exists, in which case the defaults apply.
func Resolve(name string) (string, error) {
	curDir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if name != "" {
		if !filepath.IsAbs(name) {
			name = filepath.Join(curDir, name)
		}
		if !fileExist(name) {
			return "", fmt.Errorf("config file not found: %s", name)
		}
		return name, nil
	}
	return findConfigUpward(curDir), nil
}

func findConfigUpward(startDir string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, defaultConfigRelPath)
		if fileExist(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
