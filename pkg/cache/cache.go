// Package cache provides the application cache for hot link lookups.
package cache

import (
	"context"
	"errors"

	"github.com/link-services/link-gateway-backend/pkg/api"
	"github.com/link-services/link-gateway-backend/pkg/config"
	"github.com/rs/zerolog/log"
)

var NotFound = errors.New("not found in cache")

type Cache interface {
	GetLink(ctx context.Context, domain string, key string) (*api.LinkResponse, error)
	SetLink(ctx context.Context, link api.LinkResponse) error
	InvalidateLink(ctx context.Context, domain string, key string) error
}

func Initialize() Cache {
	if config.Get().Clients.Redis.Host != "" {
		return NewRedisCache()
	} else {
		log.Logger.Warn().Msg("No application cache in use")
		return NewNoOpCache()
	}
}
