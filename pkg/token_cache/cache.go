package token_cache

//go:generate mockgen -source=cache.go -destination=mock_cache.go -package=token_cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"auth-api/pkg/cerror"
	"auth-api/pkg/config"
)

const refreshTokenKeyPrefix = "refresh_token:"

type TokenCache interface {
	StoreRefreshToken(ctx context.Context, userId, refreshToken string) error
	GetRefreshToken(ctx context.Context, userId string) (string, bool, error)
	DeleteRefreshToken(ctx context.Context, userId string) error
}

type tokenCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTokenCache(client *redis.Client, ttl time.Duration) TokenCache {
	if ttl <= 0 {
		ttl = config.RefreshTokenLifetime
	}

	return &tokenCache{
		client: client,
		ttl:    ttl,
	}
}

func NewRedisClient(ctx context.Context, redisConfig config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisConfig.Addr,
		Password: redisConfig.Password,
		DB:       redisConfig.Db,
	})

	err := client.Ping(ctx).Err()
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}

// StoreRefreshToken overwrites whatever token the user had before, so only
// the most recently issued refresh token stays valid.
func (c *tokenCache) StoreRefreshToken(ctx context.Context, userId, refreshToken string) error {
	err := c.client.Set(ctx, refreshTokenKey(userId), refreshToken, c.ttl).Err()
	if err != nil {
		return cerror.ErrorStoreUnavailable.WithFields(
			zap.String("operation", "store refresh token"),
			zap.Error(err),
		)
	}

	return nil
}

func (c *tokenCache) GetRefreshToken(ctx context.Context, userId string) (string, bool, error) {
	refreshToken, err := c.client.Get(ctx, refreshTokenKey(userId)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}

		return "", false, cerror.ErrorStoreUnavailable.WithFields(
			zap.String("operation", "get refresh token"),
			zap.Error(err),
		)
	}

	return refreshToken, true, nil
}

func (c *tokenCache) DeleteRefreshToken(ctx context.Context, userId string) error {
	err := c.client.Del(ctx, refreshTokenKey(userId)).Err()
	if err != nil {
		return cerror.ErrorStoreUnavailable.WithFields(
			zap.String("operation", "delete refresh token"),
			zap.Error(err),
		)
	}

	return nil
}

func refreshTokenKey(userId string) string {
	return refreshTokenKeyPrefix + userId
}
