package dao

import (
	"context"

	"github.com/link-services/link-gateway-backend/pkg/api"
	"github.com/link-services/link-gateway-backend/pkg/models"
	"gorm.io/gorm"
)

type DaoRegistry struct {
	Domain DomainDao
	Link   LinkDao
}

func GetDaoRegistry(db *gorm.DB) *DaoRegistry {
	reg := DaoRegistry{
		Domain: domainDaoImpl{db: db},
		Link:   linkDaoImpl{db: db},
	}
	return &reg
}

type DomainDao interface {
	Create(ctx context.Context, request api.DomainRequest) (api.DomainResponse, error)
	Fetch(ctx context.Context, slug string) (api.DomainResponse, error)
	List(ctx context.Context, pagination api.PaginationData) (api.DomainCollectionResponse, int64, error)
	// Delete removes the domain and all of its links. The owning project
	// is never touched.
	Delete(ctx context.Context, slug string) error
	// ListForVerification returns up to limit domains ordered oldest-checked
	// first, never-checked domains leading, so repeated sweeps round-robin
	// the whole table.
	ListForVerification(ctx context.Context, limit int) ([]models.Domain, error)
	// UpdateVerification applies a point-update of the verification columns.
	UpdateVerification(ctx context.Context, slug string, update map[string]interface{}) error
	AppendSentNotification(ctx context.Context, slug string, notice string) error
}

type LinkDao interface {
	Create(ctx context.Context, request api.LinkRequest) (api.LinkResponse, error)
	Fetch(ctx context.Context, domain string, key string) (api.LinkResponse, error)
	List(ctx context.Context, domain string, pagination api.PaginationData) (api.LinkCollectionResponse, int64, error)
	Delete(ctx context.Context, domain string, key string) error
	IncrementClicks(ctx context.Context, domain string, key string) error
}
