// @title        Taskboard API
// @version      1.0
// @description  Task statistics with session and bearer-token authentication.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/api"
	"github.com/taskboard/taskboard-api/internal/api/handler"
	"github.com/taskboard/taskboard-api/internal/api/websession"
	"github.com/taskboard/taskboard-api/internal/core/service"
	"github.com/taskboard/taskboard-api/internal/infrastructure/config"
	"github.com/taskboard/taskboard-api/internal/infrastructure/db/postgres"
	"github.com/taskboard/taskboard-api/internal/infrastructure/db/redis"
	"github.com/taskboard/taskboard-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.New(logger.Options{})
		boot.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "taskboard-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	db, err := postgres.Connect(ctx, postgres.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Database: cfg.Database.Name,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		SSLMode:  cfg.Database.SSLMode,
		Timeout:  cfg.Database.Timeout,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.Migrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		log.Info().Msg("database migrated")
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	secret, err := sessionSecret(cfg, log)
	if err != nil {
		return err
	}
	sessions, err := websession.NewManager(
		redis.NewWebSessionStore(rdb, cfg.Session.TTL),
		websession.Options{
			CookieName: cfg.Session.CookieName,
			Secret:     secret,
			TTL:        cfg.Session.TTL,
			Secure:     cfg.IsProduction(),
		},
	)
	if err != nil {
		return err
	}

	users := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	tasks := postgres.NewTaskRepository(db)

	e := api.NewRouter(api.Deps{
		Log:          log,
		Resolver:     service.NewResolver(sessionRepo, log),
		Sessions:     sessions,
		AuthService:  service.NewAuthService(users, sessionRepo, cfg.Session.TTL, log),
		StatsService: service.NewStatsService(tasks, users, redis.NewStatsCache(rdb, cfg.Stats.CacheKey, cfg.Stats.CacheTTL), log),
		Readiness:    readiness(db, rdb),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func readiness(db *sql.DB, rdb *goredis.Client) []handler.Dependency {
	return []handler.Dependency{
		{Name: "postgres", Ping: db.PingContext},
		{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
	}
}

// sessionSecret returns the configured cookie key. Outside production an empty
// key is replaced by a random one, which invalidates cookies on restart.
func sessionSecret(cfg *config.Config, log zerolog.Logger) ([]byte, error) {
	if cfg.Session.Secret != "" {
		return []byte(cfg.Session.Secret), nil
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	log.Warn().Msg("SESSION_SECRET not set, using an ephemeral key")
	return b, nil
}
