package config

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/recipecost/pkg/cache"
	"github.com/matzehuels/recipecost/pkg/prefs"
)

// OpenCache builds the configured cache backend. A file cache whose
// directory cannot be determined degrades to no caching.
func (c Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case CacheNone:
		return cache.NewNullCache(), nil
	case CacheMemory:
		return cache.NewMemoryCache(), nil
	case CacheRedis:
		rc, err := cache.NewRedisCache(ctx, c.redisCacheConfig())
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir, err := CacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// Keyer returns the cache keyer for the configured prefix, or nil for the
// default keys.
func (c Config) Keyer() cache.Keyer {
	if c.Cache.Prefix == "" {
		return nil
	}
	return cache.NewScopedKeyer(nil, c.Cache.Prefix)
}

func (c Config) redisCacheConfig() cache.RedisConfig {
	return cache.RedisConfig{Addr: c.Redis.Addr, Password: c.Redis.Password, DB: c.Redis.DB}
}

// OpenPrefs builds the configured preference store.
func (c Config) OpenPrefs(ctx context.Context) (prefs.Store, error) {
	switch c.Prefs.Backend {
	case PrefsMemory:
		return prefs.NewMemoryStore(), nil
	case PrefsRedis:
		return prefs.NewRedisStore(redis.NewClient(&redis.Options{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		})), nil
	case PrefsMongo:
		ms, err := prefs.NewMongoStore(ctx, c.Mongo.URI, c.Mongo.Database)
		if err != nil {
			return nil, err
		}
		return ms, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	fs, err := prefs.NewFileStore(dir)
	if err != nil {
		return nil, err
	}
	return fs, nil
}
