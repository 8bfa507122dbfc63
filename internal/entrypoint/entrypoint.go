package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	http_controllers "github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/logging"
	"github.com/mrlokans/bookshelf/internal/readonly"
	"github.com/mrlokans/bookshelf/internal/security"
	"github.com/mrlokans/bookshelf/internal/sessions"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds the wired application.
type App struct {
	Router   *gin.Engine
	Database *database.Database
}

// Close releases the database connection.
func (a *App) Close() error {
	return a.Database.Close()
}

// Build wires configuration, storage and HTTP layers together.
func Build(cfg *config.Config, logger *zap.Logger, version string) (*App, error) {
	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.Info("database ready",
		zap.String("driver", db.Driver),
		zap.String("path", cfg.Database.Path))

	repo := books.NewRepository(db.DB)

	sessionManager, err := newSessionManager(db, cfg)
	if err != nil {
		closeDatabase(db, logger)
		return nil, err
	}

	csrfSecret, err := resolveCSRFSecret(cfg.Security, logger)
	if err != nil {
		closeDatabase(db, logger)
		return nil, err
	}

	var readOnly *readonly.Middleware
	if cfg.ReadOnly.Enabled {
		logger.Info("read-only mode enabled, save and delete are blocked")
		readOnly = readonly.NewMiddleware(true, http_controllers.DeleteBookPathPrefix)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		BookStore:      repo,
		Database:       db,
		Logger:         logger,
		TemplatesPath:  cfg.UI.TemplatesPath,
		StaticPath:     cfg.UI.StaticPath,
		Version:        version,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Security.SecureCookies,
		SessionManager: sessionManager,
		ReadOnly:       readOnly,
	})

	return &App{Router: router, Database: db}, nil
}

// closeDatabase releases db on a failed Build.
func closeDatabase(db *database.Database, logger *zap.Logger) {
	if err := db.Close(); err != nil {
		logger.Warn("error closing database", zap.Error(err))
	}
}

// newSessionManager stores sessions next to the books when running on
// sqlite and in memory otherwise.
func newSessionManager(db *database.Database, cfg *config.Config) (*sessions.Manager, error) {
	opts := sessions.Options{
		Lifetime:      cfg.Session.Lifetime,
		SecureCookies: cfg.Security.SecureCookies,
	}

	if db.Driver != config.DriverSQLite {
		return sessions.NewMemoryManager(opts), nil
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get SQL DB for sessions: %w", err)
	}
	manager, err := sessions.NewSQLiteManager(sqlDB, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session manager: %w", err)
	}
	return manager, nil
}

func resolveCSRFSecret(cfg config.Security, logger *zap.Logger) ([]byte, error) {
	if !cfg.CSRFEnabled {
		logger.Warn("CSRF protection disabled")
		return nil, nil
	}
	if cfg.CSRFSecret != "" {
		return security.DecodeSecret(cfg.CSRFSecret), nil
	}

	secret, err := security.GenerateSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSRF secret: %w", err)
	}
	logger.Info("generated CSRF secret (set CSRF_SECRET to persist)")
	return security.DecodeSecret(secret), nil
}

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down
// within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, logger *zap.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// kill -9 can't be caught, so only SIGINT and SIGTERM are handled
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-quit:
	}

	logger.Info("shutting down server", zap.Duration("timeout", timeout))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server exiting")
	return nil
}

// Run starts the bookshelf web application and blocks until shutdown.
func Run(cfg *config.Config, version string) error {
	logger, flush, err := logging.New(cfg.Log, version)
	if err != nil {
		return err
	}
	defer flush()

	gin.SetMode(cfg.HTTP.GinMode)
	logger.Info("starting bookshelf")

	app, err := Build(cfg, logger, version)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("error closing database", zap.Error(err))
		}
	}()

	return Serve(app.Router, cfg, logger, nil)
}
