package services

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/manjito26/ESTOP-System/internal/infrastructure/config"
)

// InterfaceRedisService defines the logout token blacklist
type InterfaceRedisService interface {
	BlacklistToken(jti string, ttl time.Duration) error
	IsTokenBlacklisted(jti string) (bool, error)
}

// RedisService handles Redis operations. Its one domain job is the
// logout token blacklist: revoked token ids live in Redis until the
// token would have expired anyway.
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) *RedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: "", // No password set
		DB:       cfg.RedisDB,
	})

	return &RedisService{
		Client: client,
		Ctx:    context.Background(),
	}
}

// BlacklistToken marks a token id as revoked for ttl
func (s *RedisService) BlacklistToken(jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// token already expired, nothing to revoke
		return nil
	}
	return s.Client.Set(s.Ctx, "token_blacklist:"+jti, "1", ttl).Err()
}

// IsTokenBlacklisted reports whether a token id has been revoked
func (s *RedisService) IsTokenBlacklisted(jti string) (bool, error) {
	n, err := s.Client.Exists(s.Ctx, "token_blacklist:"+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
