//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"github.com/sevigo/page-warden/internal/app"
	"github.com/sevigo/page-warden/internal/config"
	"github.com/sevigo/page-warden/internal/db"
	"github.com/sevigo/page-warden/internal/review"
	"github.com/sevigo/page-warden/internal/server"
	"github.com/sevigo/page-warden/internal/server/handler"
)

func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	wire.Build(
		app.NewApp,
		server.NewServer,
		handler.NewReviewHandler,
		config.LoadConfig,
		db.NewDatabase,
		review.NewEngine,
		provideStore,
		provideGate,
		provideNotifier,
		providePolicies,
		provideDispatcher,
		provideLoggerConfig,
		provideLogWriter,
		provideSlogLogger,
		provideDBConfig,
	)
	return &app.App{}, nil, nil
}
