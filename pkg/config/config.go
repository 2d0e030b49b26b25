// Package config loads the touring configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/touring/config.toml
// (falling back to ~/.config/touring/config.toml). Every key is optional:
//
//	mode = "all"
//	width = 800.0
//	height = 600.0
//	dedupe_radius = 0.0
//
//	[cache]
//	dir = "/var/cache/touring"
//	redis_url = "redis://localhost:6379/0"
//	disabled = false
//
//	[styles.nearest]
//	stroke = "#1f77b4"
//	width = 2.0
//
// A missing file at the default location yields [Default]. Unknown keys are
// rejected so typos do not pass silently.
package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/touring/pkg/board"
	"github.com/matzehuels/touring/pkg/errors"
	"github.com/matzehuels/touring/pkg/render/styles"
	"github.com/matzehuels/touring/pkg/tour"
)

const (
	appName  = "touring"
	fileName = "config.toml"
)

// Config is the decoded configuration file.
type Config struct {
	Mode         string  `toml:"mode,omitempty"`
	Width        float64 `toml:"width,omitempty"`
	Height       float64 `toml:"height,omitempty"`
	DedupeRadius float64 `toml:"dedupe_radius,omitempty"`

	Cache  CacheConfig            `toml:"cache"`
	Styles map[string]StyleConfig `toml:"styles,omitempty"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	Dir      string `toml:"dir,omitempty"`       // file cache directory, default XDG cache dir
	RedisURL string `toml:"redis_url,omitempty"` // use Redis instead of the file cache
	Disabled bool   `toml:"disabled,omitempty"`
}

// StyleConfig overrides the stroke of one tour.
type StyleConfig struct {
	Stroke string  `toml:"stroke,omitempty"`
	Width  float64 `toml:"width,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{Mode: "all"}
}

// Path returns the default configuration file path.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the configuration at path. An empty path means [Path]; in that
// case a missing file is not an error. An explicit path must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) && !explicit {
			return Default(), nil
		}
		if stderrors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Config{}, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return cfg, nil
}

// Decode parses TOML from r on top of [Default] and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if c.Mode != "" {
		if _, err := board.ParseMode(c.Mode); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "mode")
		}
	}
	if err := errors.ValidateCanvasSize(c.Width, c.Height); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "width/height")
	}
	if c.DedupeRadius < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "dedupe_radius must not be negative")
	}
	if c.Cache.RedisURL != "" {
		if err := errors.ValidateRedisURL(c.Cache.RedisURL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache.redis_url")
		}
	}
	if c.Cache.Dir != "" {
		if err := errors.ValidatePath(c.Cache.Dir); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache.dir")
		}
	}
	_, err := c.StyleOverrides()
	return err
}

// StyleOverrides resolves the [styles.<strategy>] tables to tour styles.
// Strategy names accept the same aliases as the command line.
func (c Config) StyleOverrides() (map[tour.Strategy]styles.Style, error) {
	if len(c.Styles) == 0 {
		return nil, nil
	}
	out := make(map[tour.Strategy]styles.Style, len(c.Styles))
	for _, name := range slices.Sorted(maps.Keys(c.Styles)) {
		sc := c.Styles[name]
		s, err := tour.ParseStrategy(name)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "styles.%s", name)
		}
		if sc.Stroke != "" {
			if err := errors.ValidateColor(sc.Stroke); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "styles.%s.stroke", name)
			}
		}
		if sc.Width < 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "styles.%s.width must not be negative", name)
		}
		out[s] = styles.Default(s).Override(sc.Stroke, sc.Width)
	}
	return out, nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
