package cache

import (
	"context"

	"github.com/link-services/link-gateway-backend/pkg/api"
)

type noOpCache struct{}

func NewNoOpCache() *noOpCache {
	return &noOpCache{}
}

func (c *noOpCache) GetLink(ctx context.Context, domain string, key string) (*api.LinkResponse, error) {
	return nil, NotFound
}

func (c *noOpCache) SetLink(ctx context.Context, link api.LinkResponse) error {
	return nil
}

func (c *noOpCache) InvalidateLink(ctx context.Context, domain string, key string) error {
	return nil
}
