// Command server runs the portfolio chatbot HTTP API.
//
// @title                       Portfolio Chatbot API
// @version                     1.0
// @description                 Keyword-matching chatbot, Q&A administration and chat log for a portfolio site.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the admin JWT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-portfolio-backend/internal/config"
	httpapi "github.com/tbourn/go-portfolio-backend/internal/http"
	"github.com/tbourn/go-portfolio-backend/internal/observability"
	"github.com/tbourn/go-portfolio-backend/internal/repo"
	"github.com/tbourn/go-portfolio-backend/internal/services"
	"github.com/tbourn/go-portfolio-backend/internal/sysutil"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const (
	shutdownTimeout     = 15 * time.Second
	idempotencyPurgeInt = time.Hour
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	logger, logCloser := sysutil.NewLogger(sysutil.LogOptions{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		File:    cfg.LogFile,
		Service: cfg.OTEL.ServiceName,
	})
	defer logCloser.Close()
	log.Logger = logger
	zerolog.DefaultContextLogger = &log.Logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		logCloser.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := repo.Open(cfg.DBDSN)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if cfg.OTEL.Enabled {
		if err := repo.EnableTracing(db); err != nil {
			return err
		}
	}
	if err := prepareDatabase(ctx, db, cfg); err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, httpapi.NewDependencies(db, cfg), cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go purgeIdempotency(ctx, db, idempotencyPurgeInt)

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("version", version).
			Str("dialect", repo.DetectDialect(cfg.DBDSN)).
			Str("api_base_path", cfg.APIBasePath).
			Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}

// prepareDatabase migrates the schema, applies the seed to an empty store
// and creates the first admin.
func prepareDatabase(ctx context.Context, db *gorm.DB, cfg config.Config) error {
	if err := repo.AutoMigrate(db); err != nil {
		return err
	}

	seed, err := repo.LoadSeed(cfg.SeedFile)
	if err != nil {
		return err
	}
	res, err := repo.Seed(ctx, db, seed)
	if err != nil {
		return err
	}
	if res.ConfigCreated || res.RulesCreated > 0 {
		log.Info().
			Bool("config_created", res.ConfigCreated).
			Int("rules_created", res.RulesCreated).
			Msg("seeded chatbot store")
	}

	auth := &services.AuthService{DB: db, Secret: cfg.Auth.JWTSecret, TTL: cfg.Auth.JWTTTL}
	created, err := auth.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword)
	if err != nil {
		return err
	}
	if created {
		ev := log.Info()
		if cfg.UsesDefaultAdmin() {
			ev = log.Warn().Bool("default_credentials", true)
		}
		ev.Str("username", cfg.Auth.AdminUsername).Msg("created admin account")
	}
	return nil
}

// purgeIdempotency removes expired idempotency records every interval until
// ctx is done.
func purgeIdempotency(ctx context.Context, db *gorm.DB, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := repo.PurgeExpiredIdempotency(ctx, db, now.UTC())
			if err != nil {
				log.Warn().Err(err).Msg("purge idempotency records")
				continue
			}
			if n > 0 {
				log.Debug().Int64("deleted", n).Msg("purged idempotency records")
			}
		}
	}
}
