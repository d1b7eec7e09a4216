// @title          Portfolio API
// @version        1.0
// @description    Authentication, testimonials, contact messages and admin dashboard for the portfolio site.
// @BasePath       /
// @securityDefinitions.apikey BearerAuth
// @in             header
// @name           Authorization
package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/rasulmamishov/portfolio-api/internal/api"
	"github.com/rasulmamishov/portfolio-api/internal/core/domain"
	"github.com/rasulmamishov/portfolio-api/internal/core/ports"
	"github.com/rasulmamishov/portfolio-api/internal/core/service"
	"github.com/rasulmamishov/portfolio-api/internal/infrastructure/db/redis"
	"github.com/rasulmamishov/portfolio-api/internal/infrastructure/db/storage"
	"github.com/rasulmamishov/portfolio-api/internal/infrastructure/http/handlers"
	"github.com/rasulmamishov/portfolio-api/internal/pkg/config"
	"github.com/rasulmamishov/portfolio-api/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic("load .env: " + err.Error())
	}

	cfg := config.Load()
	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: cfg.TokenIssuer,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	st, err := storage.Open(ctx, cfg, logger.Component(log, "storage"))
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("close storage")
		}
	}()

	if err := bootstrap(ctx, cfg, st.Users, logger.Component(log, "bootstrap")); err != nil {
		return err
	}

	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, cfg.TokenIssuer)
	if err != nil {
		return err
	}

	proxies, err := cfg.ProxyNetworks()
	if err != nil {
		return err
	}

	readyChecks := map[string]handlers.Check{"database": st.Ping}
	authOpts := []service.AuthOption{service.WithBcryptCost(cfg.BcryptCost)}

	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			ClientName: cfg.TokenIssuer,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()

		authOpts = append(authOpts, service.WithLoginThrottle(
			redis.NewLoginThrottle(rdb, cfg.Login.MaxAttempts, cfg.Login.Lockout, logger.Component(log, "throttle")),
		))
		readyChecks["redis"] = redisCheck(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("login throttle enabled")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, login throttle disabled")
	}

	authService := service.NewAuthService(st.Users, tokens, log, authOpts...)
	gate := service.NewAccessGate(tokens, st.Users, log)

	e := api.NewRouter(api.Deps{
		Log:            log,
		Auth:           authService,
		Gate:           gate,
		Testimonials:   service.NewTestimonialService(st.Testimonials, log),
		Contacts:       service.NewContactService(st.Contacts, log),
		Admin:          service.NewAdminService(st.Users, st.Testimonials, st.Contacts),
		DatabaseCheck:  st.Ping,
		ReadyChecks:    readyChecks,
		CORSOrigins:    cfg.CORSOrigins,
		EnableSwagger:  !cfg.IsProduction(),
		TrustedProxies: proxies,
		Registerer:     prometheus.DefaultRegisterer,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Str("storage", cfg.Storage.Driver).Msg("starting server")
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func bootstrap(ctx context.Context, cfg *config.Config, users ports.UserRepository, log zerolog.Logger) error {
	b := service.NewBootstrapper(users, cfg.BcryptCost, log)

	seeds := []service.SeedUser{{
		Username: cfg.Seed.AdminUsername,
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
		Role:     domain.RoleAdmin,
	}}
	if cfg.Seed.DemoUser {
		seeds = append(seeds, service.SeedUser{
			Username: "testuser",
			Email:    "test@example.com",
			Password: "password123",
			Role:     domain.RoleUser,
		})
	}
	if cfg.Seed.AdminPassword == "" {
		log.Warn().Msg("SEED_ADMIN_PASSWORD not set, admin account not seeded")
	}

	n, err := b.SeedUsers(ctx, seeds...)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info().Int("created", n).Msg("seeded users")
	}

	if cfg.Seed.MigrateLegacyPasswords {
		migrated, err := b.MigrateLegacyPasswords(ctx)
		if err != nil {
			return err
		}
		log.Info().Int("migrated", migrated).Msg("legacy password migration finished")
	}
	return nil
}

func redisCheck(rdb *goredis.Client) handlers.Check {
	return func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
}
