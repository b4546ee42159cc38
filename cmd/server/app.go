package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/gtask-api/internal/config"
	"github.com/phrazzld/gtask-api/internal/jobs"
	"github.com/phrazzld/gtask-api/internal/platform/postgres"
	"github.com/phrazzld/gtask-api/internal/service"
	"github.com/phrazzld/gtask-api/internal/service/auth"
	"github.com/phrazzld/gtask-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	taskStore store.TaskStore

	jwtService     auth.JWTService
	passwordHasher auth.PasswordHasher
	authService    service.AuthService
	taskService    service.TaskService
	userService    service.UserService

	// scheduler is nil when guest cleanup is disabled.
	scheduler *jobs.Scheduler
}

// newApplication creates a new application instance with all dependencies
// initialized. The database connection must already be established.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Duration("token_lifetime", cfg.Auth.TokenLifetime))

	app.passwordHasher = auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	app.authService = service.NewAuthService(
		app.userStore,
		app.passwordHasher,
		app.jwtService,
		logger,
		service.WithGuestTTL(cfg.Guest.TTL),
	)
	app.taskService = service.NewTaskService(app.taskStore, logger)
	app.userService = service.NewUserService(app.userStore, db, logger)

	if cfg.Guest.CleanupEnabled {
		app.scheduler = jobs.NewScheduler(logger)
		if err := app.scheduler.Register(cfg.Guest.CleanupSchedule, jobs.NewGuestCleanupJob(app.authService)); err != nil {
			return nil, fmt.Errorf("failed to schedule guest cleanup: %w", err)
		}
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is canceled, then shuts everything down.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if app.scheduler != nil {
		app.scheduler.Start()
	}

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup stops background work and closes the database.
func (app *application) cleanup(ctx context.Context) {
	if app.scheduler != nil {
		if err := app.scheduler.Stop(ctx); err != nil {
			app.logger.Warn("scheduler did not stop cleanly", slog.String("error", err.Error()))
		}
	}

	if app.db != nil {
		closeDB(app.db, app.logger)
	}

	app.logger.Info("application shutdown completed")
}
