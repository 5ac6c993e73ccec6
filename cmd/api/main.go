// @title                       ClubHub API
// @version                     1.0
// @description                 Clubs, events and accounts for the ClubHub platform.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/clubhub/clubhub-api/internal/api"
	"github.com/clubhub/clubhub-api/internal/api/handler"
	"github.com/clubhub/clubhub-api/internal/core/ports"
	"github.com/clubhub/clubhub-api/internal/core/service"
	"github.com/clubhub/clubhub-api/internal/infrastructure/config"
	"github.com/clubhub/clubhub-api/internal/infrastructure/db/postgres"
	"github.com/clubhub/clubhub-api/internal/infrastructure/db/redis"
	"github.com/clubhub/clubhub-api/internal/infrastructure/queue"
	"github.com/clubhub/clubhub-api/internal/infrastructure/security"
	"github.com/clubhub/clubhub-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not configured yet.
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "clubhub-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	tokens := security.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if !tokens.Configured() {
		log.Warn().Msg("JWT_SECRET is not set; login and protected routes will answer 500")
	}

	// --- Postgres ---
	dsn := postgres.WithSSLMode(cfg.Database.URL)
	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(dsn); err != nil {
			return err
		}
		log.Info().Msg("database migrations applied")
	}

	db, err := postgres.Connect(ctx, postgres.Config{URL: dsn, MaxOpenConns: cfg.Database.MaxOpenConns})
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info().Msg("connected to postgres")

	checks := map[string]handler.DependencyCheck{"postgres": db.PingContext}

	// --- Redis (optional) ---
	var idem ports.IdempotencyStore
	if cfg.Redis.Addr != "" {
		var client *goredis.Client
		client, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer client.Close()
		idem = redis.NewIdempotencyStore(client)
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	} else {
		log.Info().Msg("REDIS_ADDR not set; idempotency keys are ignored")
	}

	// --- Audit trail ---
	audit := queue.NewDispatcher(cfg.Audit.Workers, postgres.NewAuditRepository(db), log)
	auditCtx, stopAudit := context.WithCancel(context.Background())
	audit.Start(auditCtx)

	// --- Services ---
	users := postgres.NewUserRepository(db)
	clubs := postgres.NewClubRepository(db)
	events := postgres.NewEventRepository(db)

	e := api.NewRouter(api.Deps{
		Log:          log,
		Auth:         service.NewAuthService(users, security.NewBcryptHasher(cfg.Auth.BcryptCost), tokens, audit, log),
		Clubs:        service.NewClubService(clubs, idem, log),
		Events:       service.NewEventService(events, clubs, idem, log),
		Tokens:       tokens,
		HealthChecks: checks,
		CORSOrigins:  cfg.CORSOrigins,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err = <-errCh:
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if serr := e.Shutdown(shutdownCtx); serr != nil {
		log.Error().Err(serr).Msg("graceful shutdown failed")
	}

	// Stop the audit workers only after in-flight requests have recorded.
	stopAudit()
	audit.Wait()
	return err
}
