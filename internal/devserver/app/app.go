package app

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

	httpapi "github.com/aussiebroadwan/climblog/internal/devserver/http"
	"github.com/aussiebroadwan/climblog/internal/devserver/service"
	"github.com/aussiebroadwan/climblog/internal/devserver/store"
	"github.com/aussiebroadwan/climblog/internal/devserver/store/drivers/sqlite"
	"github.com/aussiebroadwan/climblog/pkg/cryptox"
	"github.com/aussiebroadwan/climblog/pkg/httpx"
	"github.com/aussiebroadwan/climblog/pkg/slogx"
)

const (
	// BuildVersion is overridden at build time with -ldflags "-X ...".
	BuildVersion = "v0.1.0"
)

// Application is the development backend with all of its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db      store.Store
	keys    Keys
	metrics *httpx.Metrics

	authService    *service.AuthService
	climbService   *service.ClimbService
	attemptService *service.AttemptService
	catalogService *service.CatalogService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "climblog-devserver",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := cryptox.LoadPepper(cfg.PepperFile); err != nil {
		return nil, err
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keys, err := InitKeys(cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize signing key: %w", err)
	}
	app.keys = keys

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler is the fully wired HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("devserver starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down devserver...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("devserver stopped")
	return nil
}

// initDatabase opens the database, applies migrations and seeds the catalog
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}
	app.logger.Info("database migrations applied successfully")

	if app.cfg.Seed {
		if _, err := service.Seed(context.Background(), db, app.logger); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to seed database: %w", err)
		}
	}
	return nil
}

func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:     app.db,
		Signer:    app.keys.Signer,
		Issuer:    app.cfg.Issuer,
		AccessTTL: app.cfg.TokenTTL,
	}
	app.climbService = &service.ClimbService{Store: app.db}
	app.attemptService = &service.AttemptService{Store: app.db}
	app.catalogService = &service.CatalogService{Store: app.db}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	app.metrics = httpx.NewMetrics("climblog")

	router := httpapi.NewRouter(
		app.keys.KeySet,
		app.keys.Verifier,
		BuildVersion,
		app.db,
		app.metrics,
		httpapi.DefaultLimits(),
		app.logger,
	)

	router.AuthService = app.authService
	router.ClimbService = app.climbService
	router.AttemptService = app.attemptService
	router.CatalogService = app.catalogService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
