package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil when REDIS_URL is empty or the server does not
// answer; the statistics are then computed on every request.
func ConnectRedis(cfg *Config) *redis.Client {
	if cfg.RedisURL == "" {
		log.Println("[CACHE] REDIS_URL not set, statistics cache disabled")
		return nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		// Plain host:port.
		opts = &redis.Options{Addr: cfg.RedisURL}
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}
	if cfg.RedisDB != 0 {
		opts.DB = cfg.RedisDB
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[CACHE] redis unreachable, statistics cache disabled: %v", err)
		client.Close()
		return nil
	}
	log.Println("[CACHE] connected to redis")
	return client
}
