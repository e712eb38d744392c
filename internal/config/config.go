// Package config reads configuration from a .env file, environment
// variables and defaults, in that order of precedence (env wins).
package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Market   MarketConfig   `mapstructure:"market"`
	Searches SearchesConfig `mapstructure:"searches"`
}

type AppConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"` // "local" or "release"
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MarketConfig struct {
	TickMS int `mapstructure:"tick_ms"` // price simulator interval
}

type SearchesConfig struct {
	MaxRecent int `mapstructure:"max_recent"`
}

// Load reads the configuration. Dot-notation keys map to underscore env
// vars (app.port -> APP_PORT).
func Load() (*Config, error) {
	v := viper.New()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables and defaults")
	}

	v.SetDefault("app.port", ":8080")
	v.SetDefault("app.env", "local")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("market.tick_ms", 1000)
	v.SetDefault("searches.max_recent", 5)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindEnv(v, "app.port", "app.env")
	bindEnv(v, "redis.addr", "redis.password", "redis.db")
	bindEnv(v, "market.tick_ms", "searches.max_recent")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if cfg.Market.TickMS <= 0 {
		return nil, fmt.Errorf("market.tick_ms must be positive, got %d", cfg.Market.TickMS)
	}

	return &cfg, nil
}

func bindEnv(v *viper.Viper, keys ...string) {
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			log.Printf("Could not bind env var for key %s: %v", key, err)
		}
	}
}
