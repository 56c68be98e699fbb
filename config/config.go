package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the full service configuration. Values come from an optional
// TOML file overlaid with KRISHISETU_* environment variables.
type Config struct {
	Server    Server    `toml:"server"`
	LLM       LLM       `toml:"llm"`
	External  External  `toml:"external"`
	Store     Store     `toml:"store"`
	Telemetry Telemetry `toml:"telemetry"`
}

// Server configures the HTTP API.
type Server struct {
	Host           string `toml:"host"`
	Port           int    `toml:"port"`
	RequestTimeout int    `toml:"request_timeout_seconds"`
}

// LLM selects and configures the text-completion backend. Provider "none"
// disables comprehensive-mode synthesis; the crew then runs advisors
// directly.
type LLM struct {
	Provider string `toml:"provider"` // openai | claude | gemini | none
	APIKey   string `toml:"api_key"`
	Model    string `toml:"model"`
	BaseURL  string `toml:"base_url"`
}

// External configures the external data collaborators.
type External struct {
	MCPEndpoint    string `toml:"mcp_endpoint"`
	WeatherBaseURL string `toml:"weather_base_url"`
	WeatherAPIKey  string `toml:"weather_api_key"`
}

// Store selects the query-log persistence backend.
type Store struct {
	Backend  string `toml:"backend"` // memory | postgres | redis | mongo
	Postgres Postgres `toml:"postgres"`
	Redis    Redis    `toml:"redis"`
	Mongo    Mongo    `toml:"mongo"`
}

// Postgres holds PostgreSQL connection settings.
type Postgres struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DBName   string `toml:"dbname"`
	SSLMode  string `toml:"sslmode"`
}

// Redis holds Redis connection settings.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// Mongo holds MongoDB connection settings.
type Mongo struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Telemetry configures tracing.
type Telemetry struct {
	Disable     bool   `toml:"disable"`
	Environment string `toml:"environment"`
}

// Default returns the configuration used when no file or env overrides exist.
func Default() *Config {
	return &Config{
		Server: Server{
			Host:           "0.0.0.0",
			Port:           8000,
			RequestTimeout: 30,
		},
		LLM: LLM{
			Provider: "none",
		},
		External: External{
			WeatherBaseURL: "http://api.openweathermap.org/data/2.5",
		},
		Store: Store{
			Backend: "memory",
			Postgres: Postgres{
				Host:    "localhost",
				Port:    5432,
				User:    "postgres",
				DBName:  "krishisetu",
				SSLMode: "disable",
			},
			Redis: Redis{
				Addr:   "localhost:6379",
				Prefix: "krishisetu:querylog:",
			},
			Mongo: Mongo{
				URI:        "mongodb://localhost:27017",
				Database:   "krishisetu",
				Collection: "query_log",
			},
		},
	}
}

// Load reads configuration from the given TOML file (skipped when path is
// empty or missing), applies environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		} else if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setString("KRISHISETU_HOST", &c.Server.Host)
	setInt("KRISHISETU_PORT", &c.Server.Port)
	setString("KRISHISETU_LLM_PROVIDER", &c.LLM.Provider)
	setString("KRISHISETU_LLM_API_KEY", &c.LLM.APIKey)
	setString("KRISHISETU_LLM_MODEL", &c.LLM.Model)
	setString("KRISHISETU_MCP_ENDPOINT", &c.External.MCPEndpoint)
	setString("KRISHISETU_WEATHER_API_KEY", &c.External.WeatherAPIKey)
	setString("KRISHISETU_STORE_BACKEND", &c.Store.Backend)
	setString("KRISHISETU_POSTGRES_PASSWORD", &c.Store.Postgres.Password)
	setString("KRISHISETU_REDIS_ADDR", &c.Store.Redis.Addr)
	setString("KRISHISETU_MONGO_URI", &c.Store.Mongo.URI)
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	v := NewValidator()
	v.RequireNonEmpty("server.host", c.Server.Host)
	v.ValidatePort("server.port", c.Server.Port)
	v.RequirePositive("server.request_timeout_seconds", c.Server.RequestTimeout)
	v.ValidateOneOf("llm.provider", c.LLM.Provider, "openai", "claude", "gemini", "none")
	v.ValidateOneOf("store.backend", c.Store.Backend, "memory", "postgres", "redis", "mongo")
	if c.Store.Backend == "postgres" {
		v.RequireNonEmpty("store.postgres.host", c.Store.Postgres.Host)
		v.ValidatePort("store.postgres.port", c.Store.Postgres.Port)
		v.ValidateOneOf("store.postgres.sslmode", c.Store.Postgres.SSLMode,
			"disable", "require", "verify-ca", "verify-full")
	}
	if c.Store.Backend == "redis" {
		v.RequireNonEmpty("store.redis.addr", c.Store.Redis.Addr)
	}
	if c.Store.Backend == "mongo" {
		v.RequireNonEmpty("store.mongo.uri", c.Store.Mongo.URI)
	}
	return v.Error()
}
