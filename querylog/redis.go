package querylog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists query records in Redis as a capped list.
type RedisStore struct {
	client *redis.Client
	prefix string
	maxLen int64
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	MaxLen   int64
}

// NewRedisStore creates a Redis-backed query log.
func NewRedisStore(config *RedisConfig) *RedisStore {
	if config == nil {
		config = &RedisConfig{Addr: "localhost:6379"}
	}
	prefix := config.Prefix
	if prefix == "" {
		prefix = "krishisetu:querylog"
	}
	maxLen := config.MaxLen
	if maxLen <= 0 {
		maxLen = 10000
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return &RedisStore{client: client, prefix: prefix, maxLen: maxLen}
}

// Append writes one record to the head of the list and trims the tail.
func (s *RedisStore) Append(ctx context.Context, rec *Record) error {
	if rec == nil {
		return fmt.Errorf("querylog: record cannot be nil")
	}
	if rec.ID == "" {
		rec.ID = newID()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("querylog: marshal record: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, s.prefix, data)
	pipe.LTrim(ctx, s.prefix, 0, s.maxLen-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("querylog: store record in redis: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *RedisStore) Recent(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 100
	}
	raw, err := s.client.LRange(ctx, s.prefix, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("querylog: read records from redis: %w", err)
	}

	out := make([]*Record, 0, len(raw))
	for _, item := range raw {
		rec := &Record{}
		if err := json.Unmarshal([]byte(item), rec); err != nil {
			return nil, fmt.Errorf("querylog: unmarshal record: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
