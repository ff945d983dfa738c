package database

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis connects the client used by the rate limiter. Redis is optional:
// when it is unreachable the limiter lets everything through.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := RedisClient.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unavailable, rate limiting disabled: %v", err)
		RedisClient = nil
		return
	}
	log.Println("connected to Redis")
}
