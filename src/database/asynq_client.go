package database

import (
	"Backend-UniClub/src/config"

	"github.com/hibiken/asynq"
)

// RedisClientOpt converts the Redis settings into asynq's connection options.
func RedisClientOpt(cfg config.Redis) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// NewAsynqClient returns nil when Redis is not configured.
func NewAsynqClient(cfg config.Redis) *asynq.Client {
	if !cfg.Enabled() {
		return nil
	}
	return asynq.NewClient(RedisClientOpt(cfg))
}
