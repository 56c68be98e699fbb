// Package querylog persists a record of every processed query. The store
// is a write-only sink in the hot path; reads exist for inspection only.
package querylog

import (
	"context"
	"fmt"
	"time"

	"github.com/krishisetu/krishisetu/config"
)

// Record captures one processed query.
type Record struct {
	ID         string    `json:"id"`
	Query      string    `json:"query"`
	Language   string    `json:"language"`
	QueryType  string    `json:"query_type"`
	Location   string    `json:"location"`
	Crop       string    `json:"crop"`
	Mode       string    `json:"mode"`
	Source     string    `json:"source"`
	Confidence float64   `json:"confidence"`
	Success    bool      `json:"success"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store persists query records.
type Store interface {
	// Append writes one record. It must never block query processing
	// beyond its context deadline.
	Append(ctx context.Context, rec *Record) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]*Record, error)

	// Close releases the store's resources.
	Close() error
}

// NewStore builds the store selected by the configuration.
func NewStore(cfg config.Store) (Store, error) {
	switch cfg.Backend {
	case "memory", "":
		return NewInMemoryStore(), nil
	case "postgres":
		return NewPostgresStore(&PostgresConfig{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			DBName:   cfg.Postgres.DBName,
			SSLMode:  cfg.Postgres.SSLMode,
		})
	case "redis":
		return NewRedisStore(&RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		}), nil
	case "mongo":
		return NewMongoStore(&MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	default:
		return nil, fmt.Errorf("querylog: unknown store backend %q", cfg.Backend)
	}
}

func newID() string {
	return fmt.Sprintf("qry:%d", time.Now().UnixNano())
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
