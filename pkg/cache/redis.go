package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/link-services/link-gateway-backend/pkg/api"
	"github.com/link-services/link-gateway-backend/pkg/config"
	"github.com/redis/go-redis/v9"
)

type redisCache struct {
	client *redis.Client
}

func NewRedisCache() *redisCache {
	c := config.Get()
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisUrl(),
		Username: c.Clients.Redis.Username,
		Password: c.Clients.Redis.Password,
		DB:       c.Clients.Redis.DB,
	})
	return &redisCache{
		client: client,
	}
}

// linkKey constructs the cache key for a (domain, key) link lookup
func linkKey(domain string, key string) string {
	return fmt.Sprintf("link:%v/%v", domain, key)
}

func (c *redisCache) get(ctx context.Context, key string) ([]byte, error) {
	cmd := c.client.Get(ctx, key)
	if errors.Is(cmd.Err(), redis.Nil) {
		return nil, NotFound
	}
	return cmd.Bytes()
}

func (c *redisCache) GetLink(ctx context.Context, domain string, key string) (*api.LinkResponse, error) {
	buf, err := c.get(ctx, linkKey(domain, key))
	if err != nil {
		if errors.Is(err, NotFound) {
			return nil, NotFound
		}
		return nil, fmt.Errorf("redis get error: %w", err)
	}

	var link api.LinkResponse
	err = json.Unmarshal(buf, &link)
	if err != nil {
		return nil, fmt.Errorf("redis unmarshal error: %w", err)
	}
	return &link, nil
}

func (c *redisCache) SetLink(ctx context.Context, link api.LinkResponse) error {
	buf, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("unable to marshal for Redis cache: %w", err)
	}

	c.client.Set(ctx, linkKey(link.Domain, link.Key), string(buf), config.Get().Clients.Redis.Expiration)
	return nil
}

func (c *redisCache) InvalidateLink(ctx context.Context, domain string, key string) error {
	return c.client.Del(ctx, linkKey(domain, key)).Err()
}
