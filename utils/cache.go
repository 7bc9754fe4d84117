package utils

import (
	"context"
	"log"
	"time"

	"coccigo/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the generic cache client, used for offer listings.
var CacheClient *redis.Client

// InitCache initializes the Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Printf("WARNING: Redis cache unavailable, falling back to DB lookups: %v", err)
		CacheClient = nil
	}
}

// GetCacheClient returns the cache client, or nil when caching is disabled.
func GetCacheClient() *redis.Client {
	return CacheClient
}
