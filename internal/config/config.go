// Package config loads recipecost settings from a TOML file, a .env file and
// RECIPECOST_* environment variables, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/recipecost/pkg/cost"
	"github.com/matzehuels/recipecost/pkg/errors"
	"github.com/matzehuels/recipecost/pkg/recipe"
)

// AppName names the config and cache directories.
const AppName = "recipecost"

// FileName is the config file name inside ConfigDir.
const FileName = "config.toml"

// Cache backends.
const (
	CacheFile   = "file"
	CacheRedis  = "redis"
	CacheMemory = "memory"
	CacheNone   = "none"
)

// Preference backends.
const (
	PrefsFile   = "file"
	PrefsRedis  = "redis"
	PrefsMongo  = "mongo"
	PrefsMemory = "memory"
)

// Config is the full application configuration.
type Config struct {
	Defaults Defaults `toml:"defaults"`
	Cache    Cache    `toml:"cache"`
	Prefs    Prefs    `toml:"prefs"`
	Redis    Redis    `toml:"redis"`
	Mongo    Mongo    `toml:"mongo"`
	Server   Server   `toml:"server"`
}

// Defaults seed new recipes.
type Defaults struct {
	Servings string `toml:"servings"`
	Markup   string `toml:"markup"`
	VAT      string `toml:"vat"`
	Currency string `toml:"currency"`
}

// Settings returns the defaults as recipe settings.
func (d Defaults) Settings() cost.Settings {
	return cost.Settings{Servings: d.Servings, MarkupPercent: d.Markup, VATPercent: d.VAT}
}

type Cache struct {
	Backend string        `toml:"backend"`
	TTL     time.Duration `toml:"ttl"`
	Prefix  string        `toml:"prefix"` // namespaces keys in a shared Redis
}

type Prefs struct {
	Backend string `toml:"backend"`
}

type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type Mongo struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Defaults: Defaults{
			Servings: recipe.DefaultServings,
			Markup:   recipe.DefaultMarkup,
			VAT:      recipe.DefaultVAT,
			Currency: cost.DefaultCurrency,
		},
		Cache:  Cache{Backend: CacheFile, TTL: 7 * 24 * time.Hour},
		Prefs:  Prefs{Backend: PrefsFile},
		Redis:  Redis{Addr: "localhost:6379"},
		Mongo:  Mongo{URI: "mongodb://localhost:27017", Database: AppName},
		Server: Server{Addr: ":8080"},
	}
}

// Load reads the config file at path over the defaults, then applies
// environment overrides. An empty path means RECIPECOST_CONFIG or
// ConfigDir()/config.toml. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("RECIPECOST_CONFIG")
	}
	if path == "" {
		if dir, err := ConfigDir(); err == nil {
			path = filepath.Join(dir, FileName)
		}
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadEnv loads .env files into the process environment without overriding
// variables that are already set. Missing files are skipped.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// applyEnv overrides fields from RECIPECOST_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"RECIPECOST_SERVINGS":       &c.Defaults.Servings,
		"RECIPECOST_MARKUP":         &c.Defaults.Markup,
		"RECIPECOST_VAT":            &c.Defaults.VAT,
		"RECIPECOST_CURRENCY":       &c.Defaults.Currency,
		"RECIPECOST_CACHE_BACKEND":  &c.Cache.Backend,
		"RECIPECOST_CACHE_PREFIX":   &c.Cache.Prefix,
		"RECIPECOST_PREFS_BACKEND":  &c.Prefs.Backend,
		"RECIPECOST_REDIS_ADDR":     &c.Redis.Addr,
		"RECIPECOST_REDIS_PASSWORD": &c.Redis.Password,
		"RECIPECOST_MONGO_URI":      &c.Mongo.URI,
		"RECIPECOST_MONGO_DATABASE": &c.Mongo.Database,
		"RECIPECOST_SERVER_ADDR":    &c.Server.Addr,
	}
	for key, dst := range str {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("RECIPECOST_CACHE_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "RECIPECOST_CACHE_TTL")
		}
		c.Cache.TTL = d
	}
	if v, ok := lookup("RECIPECOST_REDIS_DB"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "RECIPECOST_REDIS_DB")
		}
		c.Redis.DB = n
	}
	return nil
}

// Validate checks backend names.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheMemory, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (must be file, redis, memory or none)", c.Cache.Backend)
	}
	switch c.Prefs.Backend {
	case PrefsFile, PrefsRedis, PrefsMongo, PrefsMemory:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown prefs backend %q (must be file, redis, mongo or memory)", c.Prefs.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl must not be negative")
	}
	return nil
}

// ConfigDir returns the config directory using XDG standard (~/.config/recipecost/).
func ConfigDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// CacheDir returns the cache directory using XDG standard (~/.cache/recipecost/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
