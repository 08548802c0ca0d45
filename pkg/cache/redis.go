package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/uni-timetable-api/pkg/config"
)

const (
	dialTimeout = 3 * time.Second
	ioTimeout   = time.Second
	pingTimeout = 5 * time.Second
)

// NewRedis connects to the analysis cache. It returns a nil client when caching is
// disabled so callers can fall back to an uncached service.
func NewRedis(cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	client := redis.NewClient(options(cfg))

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", client.Options().Addr, err)
	}
	return client, nil
}

func options(cfg config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:         cfg.Host + ":" + strconv.Itoa(cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		ClientName:   cfg.KeyPrefix,
		DialTimeout:  dialTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
	}
}
