// Package app initializes and orchestrates the main components of the
// page-warden application.
package app

import (
	"context"
	"log/slog"

	"github.com/sevigo/page-warden/internal/config"
	"github.com/sevigo/page-warden/internal/core"
	"github.com/sevigo/page-warden/internal/server"
)

// App holds the main application components.
type App struct {
	ctx        context.Context
	cfg        *config.Config
	server     *server.Server
	dispatcher core.EventDispatcher
	logger     *slog.Logger
}

// NewApp assembles the application from its wired components.
func NewApp(ctx context.Context, cfg *config.Config, srv *server.Server, dispatcher core.EventDispatcher, logger *slog.Logger) *App {
	return &App{
		ctx:        ctx,
		cfg:        cfg,
		server:     srv,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Start runs the HTTP server and blocks until shutdown.
func (a *App) Start() error {
	a.logger.Info("starting page-warden",
		"server_port", a.cfg.Server.Port,
		"review_domain", a.cfg.Server.ReviewDomain,
		"notifications", a.cfg.NotificationsEnabled(),
		"max_workers", a.cfg.MaxWorkers)

	if err := a.server.Start(); err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts down the application cleanly: the HTTP server first so no new
// mutations arrive, then the notification dispatcher so queued events drain.
func (a *App) Stop() error {
	a.logger.Info("shutting down page-warden services")

	serverErr := a.server.Stop()
	if serverErr != nil {
		a.logger.Error("error during HTTP server shutdown", "error", serverErr)
	}

	a.dispatcher.Stop()

	if serverErr != nil {
		return serverErr
	}
	a.logger.Info("page-warden stopped successfully")
	return nil
}
