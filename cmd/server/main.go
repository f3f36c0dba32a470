package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sportsfed/federation-api/internal/api"
	"github.com/sportsfed/federation-api/internal/core/ports"
	"github.com/sportsfed/federation-api/internal/core/service"
	"github.com/sportsfed/federation-api/internal/infrastructure/codes"
	"github.com/sportsfed/federation-api/internal/infrastructure/config"
	mongodb "github.com/sportsfed/federation-api/internal/infrastructure/db/mongo"
	redisdb "github.com/sportsfed/federation-api/internal/infrastructure/db/redis"
	"github.com/sportsfed/federation-api/internal/infrastructure/mail"
	"github.com/sportsfed/federation-api/pkg/logger"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	accountRepo := mongodb.NewAccountRepository(db)
	if err := accountRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("account index creation failed")
	}
	clubRepo := mongodb.NewClubRepository(db)

	// --- Verification code registry ---
	var (
		registry    ports.CodeRegistry
		redisClient *redis.Client
	)
	switch cfg.Codes.Backend {
	case "redis":
		redisClient, err = redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() {
			_ = redisClient.Close()
		}()
		registry = redisdb.NewCodeRegistry(redisClient, cfg.Codes.TTL)
	default:
		registry = codes.NewMemoryRegistry(cfg.Codes.TTL)
	}

	sweeper := codes.NewSweeper(registry, cfg.Codes.SweepInterval, log)
	sweeper.Start(ctx)

	// --- Services ---
	mailer := mail.NewSMTPDispatcher(
		cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, log)
	hasher := service.NewPasswordHasher(bcrypt.DefaultCost)
	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(
		accountRepo, hasher, registry, mailer, tokens, cfg.Codes.TTL, log)
	managerService := service.NewManagerService(accountRepo, clubRepo, mailer, log)

	if cfg.Seed.AdminEmail != "" && cfg.Seed.AdminPassword != "" {
		if err := service.SeedAdministrator(ctx, accountRepo, hasher,
			cfg.Seed.AdminEmail, cfg.Seed.AdminName, cfg.Seed.AdminPassword, log); err != nil {
			log.Fatal().Err(err).Msg("administrator seeding failed")
		}
	}

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		AuthService:    authService,
		ManagerService: managerService,
		Tokens:         tokens,
		Mongo:          db,
		Redis:          redisClient,
		Log:            log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server stopped")
			cancel()
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	// --- Graceful shutdown ---
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigs:
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	cancel() // stops the code sweeper

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
