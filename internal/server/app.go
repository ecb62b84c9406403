// Package server wires configuration, storage, services and the gRPC
// transport into a runnable Asklee server.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/asklee/internal/logging"
	"github.com/dmitrijs2005/asklee/internal/server/config"
	"github.com/dmitrijs2005/asklee/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/asklee/internal/server/services"

	gs "github.com/dmitrijs2005/asklee/internal/server/grpc"
)

type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server runner
}

// NewApp opens the database, applies migrations and builds the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.NewLogger(c.LogLevel, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	return newApp(c, logger, db, m), nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, m repomanager.RepositoryManager) *App {
	srv := gs.NewGRPCServer(c.EndpointAddrGRPC, logger, c.SecretKey, gs.Services{
		Users:     services.NewUserService(db, m, c),
		Questions: services.NewQuestionService(db, m),
		Answers:   services.NewAnswerService(db, m),
		Votes:     services.NewVoteService(db, m),
	})
	return &App{config: c, logger: logger, db: db, server: srv}
}

// Run serves until SIGINT, SIGTERM or SIGQUIT arrives or ctx is done, then
// closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "address", app.config.EndpointAddrGRPC)

	err := app.server.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, "gRPC server error", "error", err)
	}

	if app.db != nil {
		if cerr := app.db.Close(); cerr != nil {
			app.logger.Error(ctx, "db close error", "error", cerr)
		}
	}

	app.logger.Info(ctx, "App stopped")
	return err
}
