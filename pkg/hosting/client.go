// Package hosting is the client for the external DNS/hosting provider API
// that domain verification reconciles against.
package hosting

import (
	"context"
	"net/http"
	"time"

	"github.com/link-services/link-gateway-backend/pkg/config"
)

type Client interface {
	// GetDomain looks up the registration and verification state of a domain.
	GetDomain(ctx context.Context, slug string) (DomainStatus, int, error)
	// GetDomainConfig looks up whether DNS for the domain points at the platform.
	GetDomainConfig(ctx context.Context, slug string) (DomainConfig, int, error)
	// VerifyDomain asks the provider to re-check the domain's verification records.
	VerifyDomain(ctx context.Context, slug string) (DomainStatus, int, error)
}

type DomainStatus struct {
	Name     string    `json:"name"`
	Verified bool      `json:"verified"`
	Error    *APIError `json:"error,omitempty"`
}

type DomainConfig struct {
	Misconfigured bool `json:"misconfigured"`
}

type APIError struct {
	Code string `json:"code"`
}

const ErrorCodeNotFound = "not_found"

// NotFound reports whether the provider has no record of the domain.
func (s DomainStatus) NotFound() bool {
	return s.Error != nil && s.Error.Code == ErrorCodeNotFound
}

type hostingImpl struct {
	client http.Client
	server string
	token  string
}

func NewHostingClient() Client {
	conf := config.Get().Clients.Hosting
	return hostingImpl{
		client: http.Client{Timeout: time.Duration(conf.Timeout) * time.Second},
		server: conf.Server,
		token:  conf.Token,
	}
}
