package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

func newViper(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("ISO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path == "" {
		return v, nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("match.participants", d.Match.Participants)
	v.SetDefault("match.units_per_participant", d.Match.UnitsPerParticipant)
	v.SetDefault("match.bot_think_delay", d.Match.BotThinkDelay)
	v.SetDefault("match.verbose", d.Match.Verbose)
	v.SetDefault("map.path", d.Map.Path)
	v.SetDefault("map.generate.cols", d.Map.Generate.Cols)
	v.SetDefault("map.generate.rows", d.Map.Generate.Rows)
	v.SetDefault("map.generate.layers", d.Map.Generate.Layers)
	v.SetDefault("map.generate.seed", d.Map.Generate.Seed)
	v.SetDefault("map.generate.frequency", d.Map.Generate.Frequency)
	v.SetDefault("map.generate.octaves", d.Map.Generate.Octaves)
	v.SetDefault("map.generate.tile_width", d.Map.Generate.TileWidth)
	v.SetDefault("map.generate.tile_height", d.Map.Generate.TileHeight)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size", d.Log.MaxSize)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age", d.Log.MaxAge)
	v.SetDefault("log.compress", d.Log.Compress)
	v.SetDefault("log.dev", d.Log.Dev)
	v.SetDefault("journal.path", d.Journal.Path)
}

func decode(v *viper.Viper) (*Config, error) {
	var c Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&c, hook); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if path := v.ConfigFileUsed(); path != "" {
		c.resolvePaths(filepath.Dir(path))
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// resolvePaths makes file settings relative to the config file's directory.
func (c *Config) resolvePaths(base string) {
	for _, p := range []*string{&c.Map.Path, &c.Journal.Path, &c.Log.File} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}

// Load reads the YAML file at path (defaults only when path is empty),
// validates it and publishes it as Current.
func Load(path string) (*Config, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}
	c, err := decode(v)
	if err != nil {
		return nil, err
	}
	current.Store(c)
	return c, nil
}

// LoadAndWatch is Load plus a file watcher. Each valid edit replaces Current;
// onChange sees every reload attempt, with the error when the new file is
// rejected (Current then keeps the previous config).
func LoadAndWatch(path string, onChange func(*Config, error)) (*Config, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}
	c, err := decode(v)
	if err != nil {
		return nil, err
	}
	current.Store(c)
	if path == "" {
		return c, nil
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		next, err := decode(v)
		if err == nil {
			current.Store(next)
		}
		if onChange != nil {
			onChange(next, err)
		}
	})
	v.WatchConfig()
	return c, nil
}
