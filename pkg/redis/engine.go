package redis

import (
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/kunal8987/Astrape-assignment/pkg/global"
)

var (
	clientOnce sync.Once
	client     *redis.Client
)

func RedisClient() *redis.Client {
	clientOnce.Do(func() {
		client = redis.NewClient(&redis.Options{
			Addr:     global.GetEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
			Password: global.GetEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       0,
			Protocol: 2,
		})
	})
	return client
}
