// Package main implements the entry point for the gtask API server, a
// multi-tenant task manager with password, guest and JWT authentication.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/gtask-api/internal/config"
	"github.com/phrazzld/gtask-api/internal/platform/logger"
	"github.com/phrazzld/gtask-api/internal/platform/postgres"
	"github.com/spf13/pflag"
)

// Migration flag names
const (
	flagMigrate     = "migrate"
	flagMigrateOnly = "migrate-only"
)

// options are the command-line settings that are not configuration.
type options struct {
	// migrate names a goose command to run before exiting.
	migrate string
	// migrateOnly applies pending migrations and exits.
	migrateOnly bool
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags defines and parses the server's flags. The returned flag set is
// passed to config.LoadWithFlags.
func parseFlags(args []string) (*pflag.FlagSet, options, error) {
	var opts options

	fs := pflag.NewFlagSet("gtask-server", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	fs.StringVar(&opts.migrate, flagMigrate, "",
		"run a migration command (up, up-by-one, down, redo, reset, status, version) and exit")
	fs.BoolVar(&opts.migrateOnly, flagMigrateOnly, false, "apply pending migrations and exit")

	if err := fs.Parse(args); err != nil {
		return nil, opts, err
	}
	if opts.migrate != "" && opts.migrateOnly {
		return nil, opts, fmt.Errorf("--%s and --%s are mutually exclusive", flagMigrate, flagMigrateOnly)
	}
	return fs, opts, nil
}

func run(args []string) error {
	fs, opts, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.LoadWithFlags(fs)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("guest_cleanup", cfg.Guest.CleanupEnabled))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := setupAppDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	if opts.migrate != "" {
		defer closeDB(db, log)
		return postgres.Migrate(ctx, db, opts.migrate, log)
	}

	if err := postgres.Migrate(ctx, db, "up", log); err != nil {
		closeDB(db, log)
		return err
	}
	if opts.migrateOnly {
		closeDB(db, log)
		return nil
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		closeDB(db, log)
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}
