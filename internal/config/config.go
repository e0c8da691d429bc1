// Package config loads the application configuration from environment
// variables and an optional .env file using Viper.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/sevigo/page-warden/internal/logger"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port string
	// ReviewDomain is the DNS suffix stripped from inbound review hosts,
	// e.g. "reviews.example.com".
	ReviewDomain string
}

// DBConfig holds the Postgres connection settings.
type DBConfig struct {
	Host            string
	Port            int
	Username        string
	Password        string
	Database        string
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// GateConfig points at the upstream content-authorization surface. An empty
// URL disables the gate.
type GateConfig struct {
	URL     string
	Timeout time.Duration
}

// GitHubConfig holds the credentials for the change notifier. Either a token
// or an App ID with a private key and installation must be set; with neither,
// notifications are disabled.
type GitHubConfig struct {
	Token          string
	AppID          int64
	PrivateKeyPath string
	InstallationID int64
	// EventType is the repository_dispatch event type reported for review
	// changes.
	EventType string
}

// Config holds the application's configuration values.
type Config struct {
	Server     ServerConfig
	Database   DBConfig
	Logging    logger.Config
	Gate       GateConfig
	GitHub     GitHubConfig
	MaxWorkers int
	PolicyPath string
}

// LoadConfig reads configuration from environment variables and a .env file,
// sets sensible defaults, and validates required fields.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REVIEW_DOMAIN", "")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("LOG_OUTPUT", "stdout")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_USER", "page_warden")
	viper.SetDefault("DB_NAME", "page_warden")
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	viper.SetDefault("DB_CONN_MAX_IDLE_TIME", "5m")
	viper.SetDefault("GATE_TIMEOUT", "5s")
	viper.SetDefault("GITHUB_DISPATCH_EVENT_TYPE", "page-review")
	viper.SetDefault("MAX_WORKERS", 4)
	viper.SetDefault("POLICY_PATH", "")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			ReviewDomain: viper.GetString("REVIEW_DOMAIN"),
		},
		Database: DBConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			Username:        viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Database:        viper.GetString("DB_NAME"),
			ConnMaxLifetime: viper.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: viper.GetDuration("DB_CONN_MAX_IDLE_TIME"),
		},
		Logging: logger.Config{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
			Output: viper.GetString("LOG_OUTPUT"),
		},
		Gate: GateConfig{
			URL:     viper.GetString("GATE_URL"),
			Timeout: viper.GetDuration("GATE_TIMEOUT"),
		},
		GitHub: GitHubConfig{
			Token:          viper.GetString("GITHUB_TOKEN"),
			AppID:          viper.GetInt64("GITHUB_APP_ID"),
			PrivateKeyPath: viper.GetString("GITHUB_PRIVATE_KEY_PATH"),
			InstallationID: viper.GetInt64("GITHUB_INSTALLATION_ID"),
			EventType:      viper.GetString("GITHUB_DISPATCH_EVENT_TYPE"),
		},
		MaxWorkers: viper.GetInt("MAX_WORKERS"),
		PolicyPath: viper.GetString("POLICY_PATH"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks for inconsistent settings that would only fail at runtime.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT must not be empty")
	}
	if c.Database.Host == "" || c.Database.Database == "" {
		return fmt.Errorf("DB_HOST and DB_NAME must be set")
	}
	if c.GitHub.AppID != 0 {
		if c.GitHub.PrivateKeyPath == "" {
			return fmt.Errorf("GITHUB_PRIVATE_KEY_PATH must be set when GITHUB_APP_ID is set")
		}
		if c.GitHub.InstallationID == 0 {
			return fmt.Errorf("GITHUB_INSTALLATION_ID must be set when GITHUB_APP_ID is set")
		}
	}
	return nil
}

// NotificationsEnabled reports whether any notifier credentials are configured.
func (c *Config) NotificationsEnabled() bool {
	return c.GitHub.Token != "" || c.GitHub.AppID != 0
}
