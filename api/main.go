package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/fakturan-app/pricelist-api/internal/auth"
	"github.com/fakturan-app/pricelist-api/internal/config"
	"github.com/fakturan-app/pricelist-api/internal/db"
	api "github.com/fakturan-app/pricelist-api/internal/http"
	"github.com/fakturan-app/pricelist-api/internal/http/ratelimit"
	"github.com/fakturan-app/pricelist-api/internal/lockout"
	"github.com/fakturan-app/pricelist-api/internal/logger"
	"github.com/fakturan-app/pricelist-api/internal/repo"
)

// @title Price List API
// @version 1.0
// @description REST API for the multi-tenant invoicing price list.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to database")
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		log.Fatal().Err(err).Msg("could not migrate database")
	}

	// Login lockout tracking is optional; without Redis every attempt
	// still pays the fixed failure delay and the per-IP rate limit.
	var loginLockout *lockout.Tracker
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal().Err(err).Msg("could not connect to Redis")
		}
		defer rdb.Close()
		loginLockout = lockout.New(rdb)
	}

	authLimiter := ratelimit.New(cfg.AuthRateRPS, cfg.AuthRateBurst)
	go authLimiter.CleanupLoop()

	r := api.NewRouter(api.RouterConfig{
		Tokens:         auth.NewService(cfg.JWTSecret, cfg.TokenTTL),
		Users:          repo.NewPostgresUserRepository(database),
		Products:       repo.NewPostgresProductRepository(database),
		Translations:   repo.NewPostgresTranslationRepository(database),
		Lockout:        loginLockout,
		AuthLimiter:    authLimiter,
		LoginFailDelay: cfg.LoginFailDelay,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info().Str("addr", addr).Msg("server up and running")
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
