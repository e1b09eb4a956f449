package phrasebook

import (
	"context"
	"fmt"
)

// Backend names accepted by Open
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config selects and configures a phrasebook backend
type Config struct {
	Backend     string
	Path        string // SQLite database file
	RedisURL    string
	RedisPrefix string
}

// Open creates the configured store
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", BackendSQLite:
		if cfg.Path == "" {
			return nil, fmt.Errorf("phrasebook path not configured")
		}
		return OpenSQLite(cfg.Path)
	case BackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("phrasebook Redis URL not configured")
		}
		return OpenRedis(ctx, cfg.RedisURL, cfg.RedisPrefix)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown phrasebook backend: %s", cfg.Backend)
	}
}
