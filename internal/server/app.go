// Package server initializes and runs the bookmark manager backend. It
// wires the config, database, services and HTTP transport together and
// handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/natekim416/tuckserver/internal/logging"
	"github.com/natekim416/tuckserver/internal/server/config"
	"github.com/natekim416/tuckserver/internal/server/httpapi"
	"github.com/natekim416/tuckserver/internal/server/repositories/repomanager"
	"github.com/natekim416/tuckserver/internal/server/services"
	"github.com/natekim416/tuckserver/internal/server/smartsort"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	router http.Handler
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	db := rm.Conn()
	classifier := smartsort.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)

	userService := services.NewUserService(db, rm, cfg)
	folderService := services.NewFolderService(db, rm)
	bookmarkService := services.NewBookmarkService(db, rm, folderService, classifier)

	httpServer := httpapi.NewServer(userService, folderService, bookmarkService, classifier, []byte(cfg.SecretKey), logger)

	return &App{config: cfg, logger: logger, router: httpServer.InitRoutes()}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddrHTTP)

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:    app.config.EndpointAddrHTTP,
		Handler: app.router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, "http server error", "error", err)
			cancelFunc()
		}
	}()

	<-ctx.Done()

	app.logger.Info(ctx, "Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "shutdown error", "error", err)
	}
}
