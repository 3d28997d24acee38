package config

import (
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ClientConfig holds what the helipad CLI needs to reach an account.
type ClientConfig struct {
	Email    string
	Password string
	BaseURL  string
	Timeout  time.Duration
	LogLevel string
}

// ServerConfig holds padserver configuration
type ServerConfig struct {
	Host         string
	Port         string
	Email        string
	Password     string
	LogLevel     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// AuthCacheTTL is how long a verified credential skips the bcrypt check;
	// zero disables the cache.
	AuthCacheTTL time.Duration
	MongoDB      MongoDBConfig
	Redis        RedisConfig
	RateLimit    RateLimitConfig
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns host:port, or "" when Redis is not configured.
func (r RedisConfig) Addr() string {
	if r.Host == "" {
		return ""
	}
	return r.Host + ":" + r.Port
}

type RateLimitConfig struct {
	Enabled  bool
	RPS      float64
	Burst    int
	UseRedis bool
	Window   time.Duration
}

func load() *viper.Viper {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HELIPAD_BASE_URL", "http://pad.helicoid.net")
	v.SetDefault("HELIPAD_TIMEOUT", 30)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PADSERVER_HOST", "0.0.0.0")
	v.SetDefault("PADSERVER_PORT", "5080")
	v.SetDefault("AUTH_CACHE_TTL_SECONDS", 300)
	v.SetDefault("MONGODB_DATABASE", "helipad")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("RATE_LIMIT_USE_REDIS", false)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)
	return v
}

// Client loads the CLI configuration from the environment and an optional
// .env file. Email and password are required.
func Client() (*ClientConfig, error) {
	v := load()
	cfg := &ClientConfig{
		Email:    v.GetString("HELIPAD_EMAIL"),
		Password: v.GetString("HELIPAD_PASSWORD"),
		BaseURL:  v.GetString("HELIPAD_BASE_URL"),
		Timeout:  time.Duration(v.GetInt("HELIPAD_TIMEOUT")) * time.Second,
		LogLevel: v.GetString("LOG_LEVEL"),
	}
	err := validation.ValidateStruct(cfg,
		validation.Field(&cfg.Email, validation.Required.Error("HELIPAD_EMAIL is required")),
		validation.Field(&cfg.Password, validation.Required.Error("HELIPAD_PASSWORD is required")),
		validation.Field(&cfg.BaseURL, validation.Required, is.URL),
		validation.Field(&cfg.Timeout, validation.Min(time.Second)),
	)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Server loads padserver configuration. MongoDB and Redis are optional;
// without them padserver keeps data in memory and limits per process.
func Server() (*ServerConfig, error) {
	v := load()
	cfg := &ServerConfig{
		Host:         v.GetString("PADSERVER_HOST"),
		Port:         v.GetString("PADSERVER_PORT"),
		Email:        v.GetString("PADSERVER_EMAIL"),
		Password:     v.GetString("PADSERVER_PASSWORD"),
		LogLevel:     v.GetString("LOG_LEVEL"),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		AuthCacheTTL: time.Duration(v.GetInt("AUTH_CACHE_TTL_SECONDS")) * time.Second,
		MongoDB: MongoDBConfig{
			URI:      v.GetString("MONGODB_URI"),
			Database: v.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       0,
		},
		RateLimit: RateLimitConfig{
			Enabled:  v.GetBool("RATE_LIMIT_ENABLED"),
			RPS:      v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:    v.GetInt("RATE_LIMIT_BURST"),
			UseRedis: v.GetBool("RATE_LIMIT_USE_REDIS"),
			Window:   time.Duration(v.GetInt("RATE_LIMIT_WINDOW_SECONDS")) * time.Second,
		},
	}
	err := validation.ValidateStruct(cfg,
		validation.Field(&cfg.Port, validation.Required, is.Port),
		validation.Field(&cfg.Email, validation.Required.Error("PADSERVER_EMAIL is required")),
		validation.Field(&cfg.Password, validation.Required.Error("PADSERVER_PASSWORD is required")),
	)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.RateLimit.UseRedis && cfg.Redis.Addr() == "" {
		return nil, errors.New("config: RATE_LIMIT_USE_REDIS needs REDIS_HOST")
	}
	return cfg, nil
}
