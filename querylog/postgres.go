package querylog

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresStore persists query records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DefaultPostgresConfig returns the default PostgreSQL configuration.
func DefaultPostgresConfig() *PostgresConfig {
	return &PostgresConfig{
		Host:    "localhost",
		Port:    5432,
		User:    "postgres",
		DBName:  "krishisetu",
		SSLMode: "disable",
	}
}

// NewPostgresStore connects to PostgreSQL and ensures the query log table
// exists.
func NewPostgresStore(config *PostgresConfig) (*PostgresStore, error) {
	if config == nil {
		config = DefaultPostgresConfig()
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("querylog: connect to postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("querylog: ping postgres: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.createTable(context.Background()); err != nil {
		return nil, fmt.Errorf("querylog: create table: %w", err)
	}
	return store, nil
}

func (s *PostgresStore) createTable(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS query_log (
		id VARCHAR(255) PRIMARY KEY,
		query TEXT NOT NULL,
		language VARCHAR(8) NOT NULL,
		query_type VARCHAR(32) NOT NULL,
		location VARCHAR(64) NOT NULL DEFAULT '',
		crop VARCHAR(64) NOT NULL DEFAULT '',
		mode VARCHAR(32) NOT NULL,
		source VARCHAR(64) NOT NULL,
		confidence DOUBLE PRECISION NOT NULL,
		success BOOLEAN NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_query_log_created_at ON query_log(created_at);
	`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

// Append writes one record.
func (s *PostgresStore) Append(ctx context.Context, rec *Record) error {
	if rec == nil {
		return fmt.Errorf("querylog: record cannot be nil")
	}
	if rec.ID == "" {
		rec.ID = newID()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = nowUTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO query_log (id, query, language, query_type, location, crop, mode, source, confidence, success, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		rec.ID, rec.Query, rec.Language, rec.QueryType, rec.Location, rec.Crop,
		rec.Mode, rec.Source, rec.Confidence, rec.Success, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("querylog: insert record: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, query, language, query_type, location, crop, mode, source, confidence, success, created_at
		FROM query_log ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querylog: query records: %w", err)
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		rec := &Record{}
		if err := rows.Scan(&rec.ID, &rec.Query, &rec.Language, &rec.QueryType,
			&rec.Location, &rec.Crop, &rec.Mode, &rec.Source, &rec.Confidence,
			&rec.Success, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("querylog: scan record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
