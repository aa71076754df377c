package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds all runtime configuration for the CMS backend
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Server settings
	Port         string        `env:"PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"180s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"180s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT" envDefault:"180s"`

	AcceptedOrigins []string `env:"ACCEPTED_ORIGINS" envSeparator:","`

	// Base URLs used by server-side callers of the API
	LocalAPIURL  string `env:"LOCAL_API_URL" envDefault:"http://localhost:8080"`
	PublicAPIURL string `env:"PUBLIC_API_URL"`

	// Database. DB_TYPE is one of supa, postgres, sqlite.
	DBType                  string   `env:"DB_TYPE" envDefault:"supa"`
	DatabaseURL             string   `env:"DATABASE_URL"`
	DatabaseURLSSMParameter string   `env:"DATABASE_URL_SSM_PARAMETER"`
	DatabaseReplicaURLs     []string `env:"DATABASE_REPLICA_URLS" envSeparator:","`
	SQLitePath              string   `env:"SQLITE_PATH" envDefault:"cms.db"`
	Supabase                SupabaseConfig

	Storage StorageConfig

	PlaceholderImageURL string `env:"PLACEHOLDER_IMAGE_URL" envDefault:"/images/placeholder.jpg"`

	// Maintenance modes; the process exits when done
	GenerateModels       bool `env:"GENERATE_MODELS"`
	GenerateColumnReport bool `env:"GENERATE_COLUMN_REPORT"`
}

type SupabaseConfig struct {
	Host     string `env:"SUPABASE_DB_HOST"`
	User     string `env:"SUPABASE_DB_USER"`
	Password string `env:"SUPABASE_DB_PASSWORD"`
	Name     string `env:"SUPABASE_DB_NAME"`
	Port     string `env:"SUPABASE_DB_PORT" envDefault:"5432"`
}

// StorageConfig describes the S3-compatible bucket that holds uploaded media
type StorageConfig struct {
	Bucket         string `env:"STORAGE_BUCKET"`
	Region         string `env:"STORAGE_REGION" envDefault:"us-east-1"`
	Endpoint       string `env:"STORAGE_ENDPOINT"`
	PublicURL      string `env:"STORAGE_PUBLIC_URL"`
	PresignMinutes int    `env:"STORAGE_PRESIGN_MINUTES" envDefault:"60"`
}

// Load parses the process environment into a Config
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("config: unsupported ENVIRONMENT %q", c.Environment)
	}
	switch c.DBType {
	case "supa", "postgres", "sqlite":
	default:
		return fmt.Errorf("config: unsupported DB_TYPE %q", c.DBType)
	}
	if c.Storage.PresignMinutes < 0 {
		return fmt.Errorf("config: STORAGE_PRESIGN_MINUTES must not be negative")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// DSN builds the connection string for the configured DB_TYPE
func (c *Config) DSN() string {
	switch c.DBType {
	case "supa":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			c.Supabase.Host,
			c.Supabase.User,
			c.Supabase.Password,
			c.Supabase.Name,
			c.Supabase.Port,
		)
	case "sqlite":
		return c.SQLitePath
	default:
		return c.DatabaseURL
	}
}

// APIBaseURL picks the base URL for calls to this API. Browser calls use
// relative paths; server-side calls need an absolute URL for the environment.
func (c *Config) APIBaseURL(serverSide bool) string {
	if !serverSide {
		return ""
	}
	if c.IsProduction() && c.PublicAPIURL != "" {
		return strings.TrimSuffix(c.PublicAPIURL, "/")
	}
	return strings.TrimSuffix(c.LocalAPIURL, "/")
}

// PresignTTL is how long presigned media URLs stay valid
func (c *Config) PresignTTL() time.Duration {
	return time.Duration(c.Storage.PresignMinutes) * time.Minute
}

// UsesStorage reports whether bucket paths can be turned into URLs
func (c *Config) UsesStorage() bool {
	return c.Storage.Bucket != "" || c.Storage.PublicURL != ""
}
