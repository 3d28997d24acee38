// Command padserver is a local stand-in for the Helipad XML API. It serves the
// same endpoints as the hosted service so the helipad client and CLI can be
// exercised offline.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/padkit/helipad/internal/config"
	"github.com/padkit/helipad/internal/database"
	"github.com/padkit/helipad/internal/document/handler"
	"github.com/padkit/helipad/internal/document/service"
	"github.com/padkit/helipad/internal/sessions"
	"github.com/padkit/helipad/internal/users"
	"github.com/padkit/helipad/pkg/logger"
	"github.com/padkit/helipad/pkg/metrics"
	"github.com/padkit/helipad/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.Server()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	log := logger.Named("padserver")
	log.Info("config loaded", "mongo", cfg.MongoDB.URI != "", "redis", cfg.Redis.Addr() != "", "rate_limit", cfg.RateLimit.Enabled)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Mongo when configured, memory otherwise
	docs := service.NewMemoryService()
	var userRepo users.UserRepository = users.NewMemoryUserRepository()
	if cfg.MongoDB.URI != "" {
		db, err := connectMongo(ctx, cfg.MongoDB)
		if err != nil {
			log.Warn("could not connect to MongoDB, using memory-backed repositories", "error", err)
		} else {
			defer func() { _ = db.Client().Disconnect(context.Background()) }()
			docs = service.NewMongoService(db)
			userRepo = users.NewMongoUserRepository(db.Collection("users"))
		}
	}

	accounts := users.NewService(userRepo)
	if _, err := accounts.Register(ctx, cfg.Email, cfg.Password); err != nil {
		logger.Fatalf("failed to seed account %s: %v", cfg.Email, err)
	}

	// Redis backs the shared rate limiter and the auth cache when configured
	var rdb *redis.Client
	if cfg.Redis.Addr() != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis ping failed, using in-memory limiter and auth cache", "addr", cfg.Redis.Addr(), "error", err)
			_ = rdb.Close()
			rdb = nil
		} else {
			defer func() { _ = rdb.Close() }()
		}
	}

	var verifier middleware.Verifier = accounts
	if cfg.AuthCacheTTL > 0 {
		var store sessions.Repository = sessions.NewMemoryRepository()
		if rdb != nil {
			store = sessions.NewRedisRepository(rdb, "padserver:auth:")
		}
		cache, err := sessions.NewService(store, accounts, cfg.AuthCacheTTL)
		if err != nil {
			logger.Fatalf("failed to create auth cache: %v", err)
		}
		verifier = cache
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handler.RegisterSwagger(r)

	// the limiter runs after auth so buckets are per account
	mw := []gin.HandlerFunc{middleware.AuthMiddleware(verifier)}
	if cfg.RateLimit.Enabled {
		limiterClient := rdb
		if !cfg.RateLimit.UseRedis {
			limiterClient = nil
		}
		mw = append(mw, middleware.RedisRateLimitMiddleware(limiterClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.Window))
	}
	handler.RegisterDocumentRoutes(r, docs, mw...)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	go func() {
		log.Info("listening", "addr", srv.Addr, "account", cfg.Email)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}

// connectMongo retries with backoff to tolerate startup races.
func connectMongo(ctx context.Context, cfg config.MongoDBConfig) (*mongo.Database, error) {
	const maxAttempts = 5
	backoff := time.Second
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Connect(ctx, cfg.URI, cfg.Database, cfg.Timeout)
		if err == nil {
			return db, nil
		}
		lastErr = err
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, err)
		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}
	return nil, fmt.Errorf("could not connect to MongoDB after %d attempts: %w", maxAttempts, lastErr)
}
