package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"task_portal/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

func ConnectRedis() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	ctx := context.Background()
	_, err := RDB.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	fmt.Println("Successfully connected to Redis!")
}

func CloseRedis() {
	if RDB != nil {
		RDB.Close()
		fmt.Println("Redis connection closed.")
	}
}

// RevocationStore remembers revoked token ids until the tokens would have
// expired anyway. Logout writes to it; the Authenticator middleware reads it.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) bool
}

const revokedKeyPrefix = "revoked_token:"

type redisRevocations struct {
	rdb *redis.Client
}

func NewRedisRevocations(rdb *redis.Client) RevocationStore {
	return &redisRevocations{rdb: rdb}
}

func (s *redisRevocations) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err()
}

func (s *redisRevocations) IsRevoked(ctx context.Context, tokenID string) bool {
	n, err := s.rdb.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		log.Printf("redis revocation check failed: %v", err)
		return false
	}
	return n > 0
}
