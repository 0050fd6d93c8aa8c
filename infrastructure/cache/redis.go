package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"yt-dashboard/infrastructure/configuration"

	"github.com/redis/go-redis/v9"
)

// NewCache connects to redis and pings it once so a bad address fails at startup
func NewCache(ctx context.Context, cfg configuration.RedisClient) (*redis.Client, error) {
	db, err := strconv.Atoi(cfg.DatabaseName)
	if err != nil {
		db = 0
	}
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}
