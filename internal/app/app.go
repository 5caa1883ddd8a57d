package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/clinic-api/internal/api"
	"github.com/phrazzld/clinic-api/internal/config"
	"github.com/phrazzld/clinic-api/internal/platform/logger"
	"github.com/phrazzld/clinic-api/internal/platform/metrics"
	"github.com/phrazzld/clinic-api/internal/platform/postgres"
	"github.com/phrazzld/clinic-api/internal/redact"
)

// application holds all the shared dependencies of one running service and
// ensures they are released on shutdown.
type application struct {
	service Service
	config  *config.Config
	logger  *slog.Logger
	db      *sql.DB
	metrics *metrics.Metrics

	handlers []Routable
	health   *api.HealthHandler
}

// Run loads configuration for svc, serves HTTP until ctx is canceled, then
// shuts down gracefully.
func Run(ctx context.Context, svc Service) error {
	cfg, err := config.Load(svc.Defaults)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("data_source", cfg.Data.Source),
		slog.Bool("database_url_present", cfg.Database.URL != ""))

	app, err := newApplication(ctx, svc, cfg, log)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}

// newApplication creates the application with all dependencies initialized.
//
// A database that is unreachable at start, or a failed schema bootstrap, is
// logged and the service keeps starting: requests that need the database
// then fail individually and /db/health reports the problem.
func newApplication(ctx context.Context, svc Service, cfg *config.Config, log *slog.Logger) (*application, error) {
	if !svc.supports(cfg.Data.Source) {
		return nil, fmt.Errorf("%w %q for %s", ErrUnsupportedSource, cfg.Data.Source, cfg.Server.Name)
	}

	app := &application{
		service: svc,
		config:  cfg,
		logger:  log,
		metrics: metrics.New(cfg.Server.Name),
	}

	driver := "static"
	var pinger api.Pinger
	if cfg.Data.Source == config.SourcePostgres {
		db, err := setupAppDatabase(ctx, cfg.Database, svc.Schema, log)
		if err != nil {
			return nil, err
		}
		app.db = db
		driver = "pg"
		pinger = postgres.NewAdapter(db)
	}

	handlers, err := svc.Handlers(app)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to initialize %s: %w", cfg.Server.Name, err)
	}
	app.handlers = handlers
	app.health = api.NewHealthHandler(cfg.Server.Name, driver, pinger, cfg.Database.ConnectTimeout)

	log.Info("application initialized", slog.String("driver", driver))
	return app, nil
}

// setupAppDatabase opens the pool, checks connectivity and bootstraps schema.
// Only a pool that cannot be created at all is an error.
func setupAppDatabase(
	ctx context.Context,
	cfg config.DatabaseConfig,
	schema *postgres.Schema,
	log *slog.Logger,
) (*sql.DB, error) {
	db, err := postgres.Open(cfg)
	if err != nil {
		return nil, err
	}

	if err := postgres.Ping(ctx, db, cfg.ConnectTimeout, log); err != nil {
		log.Error("database unavailable at startup, continuing",
			slog.String("error", redact.Error(err)))
		return db, nil
	}

	if schema != nil {
		if err := postgres.Bootstrap(ctx, db, *schema, log); err != nil {
			log.Error("schema bootstrap failed, continuing",
				slog.String("schema", schema.Name),
				slog.String("error", redact.Error(err)))
		}
	}
	return db, nil
}

func (app *application) errorPolicy() api.ErrorPolicy {
	return api.ErrorPolicy{StrictConflicts: app.config.API.StrictConflicts}
}

// Run starts the HTTP server and blocks until it has shut down.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}
