package database

import (
	"context"
	"fmt"
	"time"

	"Backend-UniClub/src/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient returns nil when Redis is not configured; callers treat a nil
// client as "cache and background jobs disabled".
func NewRedisClient(ctx context.Context, cfg config.Redis, logger *zap.Logger) (*redis.Client, error) {
	if !cfg.Enabled() {
		logger.Warn("redis not configured, caching and scheduled jobs disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))
	return client, nil
}
