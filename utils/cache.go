package utils

import (
	"context"
	"log"
	"time"

	"spacehive/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client.
	CacheClient *redis.Client
	// RealtimeClient is the dedicated client for realtime pub/sub pushes.
	RealtimeClient *redis.Client
)

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitRealtime initializes the Redis client used for realtime pushes.
func InitRealtime() {
	RealtimeClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisRealtimeDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := RealtimeClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Realtime): %v", err)
	}
}

// GetRealtimeClient returns the Redis client for realtime pushes.
func GetRealtimeClient() *redis.Client {
	if RealtimeClient == nil {
		InitRealtime()
	}
	return RealtimeClient
}
