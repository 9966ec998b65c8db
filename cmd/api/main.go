package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/vukovuko/football-rag/config"
	"github.com/vukovuko/football-rag/internal/repositories/competition"
	"github.com/vukovuko/football-rag/internal/repositories/match"
	"github.com/vukovuko/football-rag/internal/repositories/player"
	"github.com/vukovuko/football-rag/internal/repositories/team"
	"github.com/vukovuko/football-rag/pkg/database"
	"github.com/vukovuko/football-rag/pkg/logging"
	"github.com/vukovuko/football-rag/pkg/middleware"
	"github.com/vukovuko/football-rag/pkg/routes/competitions"
	"github.com/vukovuko/football-rag/pkg/routes/health"
	"github.com/vukovuko/football-rag/pkg/routes/matches"
	"github.com/vukovuko/football-rag/pkg/routes/players"
	"github.com/vukovuko/football-rag/pkg/routes/query"
	"github.com/vukovuko/football-rag/pkg/routes/schema"
	"github.com/vukovuko/football-rag/pkg/routes/teams"
	"github.com/vukovuko/football-rag/pkg/sandbox"
	"github.com/vukovuko/football-rag/pkg/schemainfo"
	"github.com/vukovuko/football-rag/pkg/tracing"
)

var version = "dev"

type requestValidator struct {
	validate *validator.Validate
}

func (rv *requestValidator) Validate(i any) error {
	return rv.validate.Struct(i)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, flush, err := logging.New(cfg.IsProduction(), cfg.PrettyLogs)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, logger, cfg.DatabaseDriver, cfg.DSN(), cfg.DatabaseMaxOpenConns, cfg.DatabaseMaxIdleConns, cfg.DatabaseConnMaxLifetime)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db.Unsafe().DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("prepare migrations: %w", err)
	}
	migrations := database.NewMigrationService(logger, &database.MigrationConfig{
		MigrationFolderPath: cfg.DatabaseMigrationFolderPath,
		Version:             uint(cfg.DatabaseMigrationVersion),
		Force:               cfg.DatabaseMigrationForce,
	})
	if err := migrations.Migrate(cfg.DatabaseName, driver); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	if cfg.TracingEnabled {
		tp := sdktrace.NewTracerProvider()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = tp.Shutdown(shutdownCtx)
		}()
		otel.SetTracerProvider(tp)
		tracing.SetTracer(tp.Tracer(cfg.AppName))
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.Error(logger, cfg.IsProduction())
	e.Validator = &requestValidator{validate: validator.New()}

	e.Use(middleware.Context())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: cfg.AllowMethods,
	}))
	if cfg.TracingEnabled {
		e.Use(otelecho.Middleware(cfg.AppName))
	}

	e.Server.ReadTimeout = time.Duration(cfg.HttpServerReadTimeoutSeconds) * time.Second
	e.Server.WriteTimeout = time.Duration(cfg.HttpServerWriteTimeoutSeconds) * time.Second
	e.Server.IdleTimeout = time.Duration(cfg.HttpServerIdleTimeoutSeconds) * time.Second
	e.Server.MaxHeaderBytes = cfg.MaxHeaderBytes

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	checker := health.NewChecker(db, version)
	checker.RegisterRoutes(e)

	api := e.Group("/api/v1")
	players.NewHandler(player.NewRepository(db, logger)).Register(api.Group("/players"))
	matches.NewHandler(match.NewRepository(db, logger)).Register(api.Group("/matches"))
	teams.NewHandler(team.NewRepository(db, logger)).Register(api.Group("/teams"))
	competitions.NewHandler(competition.NewRepository(db, logger)).Register(api.Group("/competitions"))
	schema.NewHandler(schemainfo.NewService(db, logger, cfg.SchemaCacheTTL)).Register(api.Group("/schema"))
	query.NewHandler(sandbox.NewExecutor(db, logger, cfg.QueryTimeout, cfg.QueryRowLimit)).Register(api.Group("/query"))

	checker.SetReady(true)

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.WithField("addr", addr).Info("Starting API server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	checker.SetReady(false)
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
