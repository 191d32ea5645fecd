package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/openvenue/eventgate/internal/eventgate/http"
	"github.com/openvenue/eventgate/internal/eventgate/notify"
	"github.com/openvenue/eventgate/internal/eventgate/service"
	"github.com/openvenue/eventgate/internal/eventgate/store"
	"github.com/openvenue/eventgate/internal/eventgate/store/drivers/sqlite"
	"github.com/openvenue/eventgate/pkg/cryptox"
	"github.com/openvenue/eventgate/pkg/jwtx"
	"github.com/openvenue/eventgate/pkg/slogx"
	"github.com/openvenue/eventgate/pkg/tokenx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the eventgate service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	notifier notify.Notifier
	sessions *jwtx.Signer

	accountService      *service.AccountService
	rsvpService         *service.RSVPService
	eventService        *service.EventService
	categoryService     *service.CategoryService
	rolesService        *service.RolesService
	bootstrapService    *service.BootstrapService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized, runs the
// startup bootstrap, but does not open the listener.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "eventgate",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()

	// Bootstrap must succeed before the listener opens: serving without
	// the built-in roles would break every signup.
	ctx := slogx.WithContext(context.Background(), app.logger)
	if err := app.bootstrapService.Run(ctx); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("bootstrap failed: %w", err)
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("eventgate starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down eventgate...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("eventgate stopped")
	return nil
}

// initDatabase initializes the database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	if app.cfg.SMTPAddr != "" {
		app.notifier = &notify.SMTPNotifier{
			Addr:   app.cfg.SMTPAddr,
			Sender: app.cfg.SMTPSender,
		}
		app.logger.Info("email delivery via smtp", "addr", app.cfg.SMTPAddr)
	} else {
		app.notifier = &notify.LogNotifier{Logger: app.logger}
		app.logger.Warn("no SMTP address configured, emails will be logged only")
	}

	app.sessions = &jwtx.Signer{
		Secret: []byte(app.cfg.SessionSecret),
		Issuer: app.cfg.Issuer,
	}

	app.accountService = &service.AccountService{
		Store:    app.db,
		Notifier: app.notifier,
		Tokens: &tokenx.Minter{
			Secret: []byte(app.cfg.ActivationSecret),
			TTL:    app.cfg.ActivationTTL,
		},
		Sessions:     app.sessions,
		DefaultRole:  app.cfg.DefaultRole,
		AutoActivate: app.cfg.AutoActivate,
		PublicURL:    app.cfg.PublicURL,
	}
	app.rsvpService = &service.RSVPService{Store: app.db, Notifier: app.notifier}
	app.eventService = &service.EventService{Store: app.db}
	app.categoryService = &service.CategoryService{Store: app.db}
	app.rolesService = &service.RolesService{Store: app.db}
	app.bootstrapService = &service.BootstrapService{
		Store:         app.db,
		DefaultRole:   app.cfg.DefaultRole,
		AdminUsername: app.cfg.AdminUsername,
		AdminEmail:    app.cfg.AdminEmail,
		AdminPassword: app.cfg.AdminPassword,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.PendingTTL,
	)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.sessions,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.AccountService = app.accountService
	router.RSVPService = app.rsvpService
	router.EventService = app.eventService
	router.CategoryService = app.categoryService
	router.RolesService = app.rolesService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
