package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all configuration for clipforge-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values. When no config.yaml is
// present the environment alone is used.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8787"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	BaseURL  string `yaml:"base_url" env:"BASE_URL" env-default:""` // Auto-derived from Port if empty
	Version  string `yaml:"-"`                                     // Set at load time, not from config

	// UIDir is the directory of built editor UI files served for every
	// request the asset gateway does not intercept.
	UIDir string `yaml:"ui_dir" env:"UI_DIR" env-default:"./ui/dist"`

	// DefaultProject is the project seeded on first load if absent.
	DefaultProject DefaultProjectConfig `yaml:"default_project"`

	// Database configuration (embedded SQLite)
	Database DatabaseConfig `yaml:"database"`

	// Log configuration, including the injectable suppression filter.
	Log LogConfig `yaml:"log"`

	// CORS configuration for the browser editor's dev origin.
	CORS CORSConfig `yaml:"cors"`
}

// DefaultProjectConfig identifies the well-known editing session the UI opens.
type DefaultProjectConfig struct {
	ID   string `yaml:"id" env:"DEFAULT_PROJECT_ID" env-default:"project-1"`
	Name string `yaml:"name" env:"DEFAULT_PROJECT_NAME" env-default:"My Video Project"`
}

// DatabaseConfig holds embedded SQLite configuration.
type DatabaseConfig struct {
	// Path is the database file location. ":memory:" gives a throwaway
	// in-process database, useful in tests.
	Path string `yaml:"path" env:"DB_PATH" env-default:"clipforge.db"`

	// BusyTimeoutMS bounds how long a write waits on a lock held by a
	// concurrent transaction before failing.
	BusyTimeoutMS int `yaml:"busy_timeout_ms" env:"DB_BUSY_TIMEOUT_MS" env-default:"5000"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`

	// Suppress lists message substrings to drop entirely. This replaces the
	// original console.log monkey-patch with explicit, injectable filter
	// configuration.
	Suppress []string `yaml:"suppress" env:"LOG_SUPPRESS" env-separator:","`
}

// CORSConfig holds allowed browser origins for the editor API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:5173"`
}

// Load reads configuration from config.yaml with environment variable
// overrides, falling back to environment-only when the file is absent.
// A .env file is honored for local development. The version parameter is
// injected at build time and set on the returned Config.
func Load(version string) (*Config, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		Version: version,
	}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	// Auto-derive BaseURL from Port if not explicitly set
	if cfg.BaseURL == "" {
		cfg.BaseURL = (&url.URL{
			Scheme: "http",
			Host:   "localhost:" + cfg.Port,
		}).String()
	}

	return cfg, nil
}
