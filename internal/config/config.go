package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is loaded once at startup and passed by injection; nothing reads
// configuration from ambient globals after main.
type Config struct {
	Port           int           `mapstructure:"PORT"`
	DatabaseURL    string        `mapstructure:"DATABASE_URL"`
	JWTSecret      string        `mapstructure:"JWT_SECRET"`
	TokenTTL       time.Duration `mapstructure:"TOKEN_TTL"`
	LoginFailDelay time.Duration `mapstructure:"LOGIN_FAIL_DELAY"`
	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	AuthRateRPS    float64       `mapstructure:"AUTH_RATE_RPS"`
	AuthRateBurst  int           `mapstructure:"AUTH_RATE_BURST"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("PORT", 3000)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", 24*time.Hour)
	v.SetDefault("LOGIN_FAIL_DELAY", 100*time.Millisecond)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("AUTH_RATE_RPS", 1.0)
	v.SetDefault("AUTH_RATE_BURST", 3)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("environment variable DATABASE_URL not found")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("environment variable JWT_SECRET not found")
	}
	return &cfg, nil
}
