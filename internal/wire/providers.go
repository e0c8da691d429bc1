package wire

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/sevigo/page-warden/internal/config"
	"github.com/sevigo/page-warden/internal/core"
	"github.com/sevigo/page-warden/internal/db"
	"github.com/sevigo/page-warden/internal/gate"
	gh "github.com/sevigo/page-warden/internal/github"
	"github.com/sevigo/page-warden/internal/jobs"
	"github.com/sevigo/page-warden/internal/logger"
	"github.com/sevigo/page-warden/internal/storage"
)

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return cfg.Logging
}

func provideLogWriter() io.Writer {
	return os.Stdout
}

func provideSlogLogger(loggerConfig logger.Config, writer io.Writer) *slog.Logger {
	return logger.NewLogger(loggerConfig, writer)
}

func provideDBConfig(cfg *config.Config) *config.DBConfig {
	return &cfg.Database
}

func provideStore(dbConn *db.DB) core.ReviewStore {
	return storage.NewStore(dbConn.DB)
}

func provideGate(cfg *config.Config, log *slog.Logger) gate.Gate {
	return gate.NewGate(cfg.Gate, log)
}

// provideNotifier builds the change notifier, falling back to a no-op when no
// GitHub credentials are configured.
func provideNotifier(ctx context.Context, cfg *config.Config, log *slog.Logger) (core.Notifier, error) {
	if !cfg.NotificationsEnabled() {
		log.Warn("no GitHub credentials configured, review notifications are disabled")
		return gh.NewNoopNotifier(log), nil
	}
	client, err := gh.NewClient(ctx, cfg.GitHub, log)
	if err != nil {
		return nil, err
	}
	return gh.NewDispatchNotifier(client, cfg.GitHub.EventType, log), nil
}

// providePolicies loads the per-repo review policies; a missing file is fine
// and falls back to defaults.
func providePolicies(cfg *config.Config, log *slog.Logger) (*config.Policies, error) {
	policies, err := config.LoadPolicies(cfg.PolicyPath)
	if err != nil {
		if errors.Is(err, config.ErrPolicyNotFound) {
			log.Warn("policy file not found, using defaults", "path", cfg.PolicyPath)
			return policies, nil
		}
		return nil, err
	}
	return policies, nil
}

func provideDispatcher(notifier core.Notifier, cfg *config.Config, log *slog.Logger) core.EventDispatcher {
	return jobs.NewDispatcher(notifier, cfg.MaxWorkers, log)
}
