// Package config loads gdlkit's configuration file.
//
// The file is TOML and is looked up in order at $GDLKIT_CONFIG,
// ./gdlkit.toml and $XDG_CONFIG_HOME/gdlkit/config.toml. Missing keys keep
// their defaults; unknown keys are an error so that typos do not go
// unnoticed. Command-line flags override the file.
//
//	viewer = "vcgview"
//	output_dir = "out"
//
//	[cache]
//	redis_url = "redis://localhost:6379/0"
//	ttl = "24h"
//	namespace = "staging:"
//
//	[store]
//	mongo_uri = "mongodb://localhost:27017"
//
//	[server]
//	addr = ":8080"
package config

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gdlkit/pkg/errors"
)

const appName = "gdlkit"

// EnvConfig names the environment variable holding an explicit config path.
const EnvConfig = "GDLKIT_CONFIG"

// Config is the complete configuration.
type Config struct {
	// Viewer is the program "gdlkit view" launches with the document path.
	Viewer string `toml:"viewer"`

	// OutputDir is where dump and render write when no -o is given.
	OutputDir string `toml:"output_dir"`

	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`

	// Path is the file the configuration was loaded from, empty for defaults.
	Path string `toml:"-"`
}

// CacheConfig selects and tunes the artifact cache.
type CacheConfig struct {
	Disabled  bool     `toml:"disabled"`
	Dir       string   `toml:"dir"`
	RedisURL  string   `toml:"redis_url"`
	TTL       Duration `toml:"ttl"`
	Namespace string   `toml:"namespace"`
}

// StoreConfig selects the document store. With a MongoURI documents go to
// MongoDB, otherwise to JSON files under Dir.
type StoreConfig struct {
	Dir        string `toml:"dir"`
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig configures "gdlkit serve".
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	Timeout      Duration `toml:"timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
}

// Duration is a time.Duration written as a string such as "90s" or "24h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Viewer:    "vcgview",
		OutputDir: ".",
		Cache: CacheConfig{
			TTL: Duration{7 * 24 * time.Hour},
		},
		Store: StoreConfig{
			Database:   "gdlkit",
			Collection: "documents",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			Timeout:      Duration{30 * time.Second},
			MaxBodyBytes: 1 << 20,
		},
	}
}

// Load reads the file at path on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidFormat, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	return cfg, nil
}

// Find returns the first configuration file that exists, or "" if there is
// none. A path named by $GDLKIT_CONFIG must exist.
func Find() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", errors.Wrap(errors.ErrCodeNotFound, err, "%s", EnvConfig)
		}
		return p, nil
	}

	candidates := []string{appName + ".toml"}
	if dir, err := configHome(); err == nil {
		candidates = append(candidates, filepath.Join(dir, appName, "config.toml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

// LoadDefault loads the file found by [Find], or the defaults.
func LoadDefault() (*Config, error) {
	path, err := Find()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Write encodes c as TOML.
func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// CacheDir returns the file cache directory: the configured one, or the XDG
// standard (~/.cache/gdlkit/).
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// StoreDir returns the file store directory: the configured one, or the XDG
// standard (~/.local/share/gdlkit/documents/).
func (c *Config) StoreDir() (string, error) {
	if c.Store.Dir != "" {
		return c.Store.Dir, nil
	}
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName, "documents"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName, "documents"), nil
}

func configHome() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config"), nil
}
