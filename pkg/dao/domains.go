package dao

import (
	"context"
	"fmt"

	"github.com/link-services/link-gateway-backend/pkg/api"
	ce "github.com/link-services/link-gateway-backend/pkg/errors"
	"github.com/link-services/link-gateway-backend/pkg/models"
	"gorm.io/gorm"
)

type domainDaoImpl struct {
	db *gorm.DB
}

func GetDomainDao(db *gorm.DB) DomainDao {
	return domainDaoImpl{db: db}
}

func (d domainDaoImpl) Create(ctx context.Context, request api.DomainRequest) (api.DomainResponse, error) {
	domain := models.Domain{
		Slug:      request.Slug,
		ProjectID: request.ProjectID,
	}
	result := d.db.WithContext(ctx).Create(&domain)
	if result.Error != nil {
		return api.DomainResponse{}, DBErrorToApi(result.Error)
	}
	return domainToResponse(domain), nil
}

func (d domainDaoImpl) Fetch(ctx context.Context, slug string) (api.DomainResponse, error) {
	domain, err := d.fetchModel(ctx, slug)
	if err != nil {
		return api.DomainResponse{}, err
	}
	return domainToResponse(domain), nil
}

func (d domainDaoImpl) fetchModel(ctx context.Context, slug string) (models.Domain, error) {
	var domain models.Domain
	result := d.db.WithContext(ctx).Where("slug = ?", models.NormalizeSlug(slug)).First(&domain)
	if result.Error != nil {
		return models.Domain{}, DBErrorToApi(result.Error)
	}
	return domain, nil
}

func (d domainDaoImpl) List(ctx context.Context, pagination api.PaginationData) (api.DomainCollectionResponse, int64, error) {
	var total int64
	var domains []models.Domain

	filtered := d.db.WithContext(ctx).Model(&models.Domain{})
	if err := filtered.Count(&total).Error; err != nil {
		return api.DomainCollectionResponse{}, 0, DBErrorToApi(err)
	}
	result := filtered.
		Order("slug asc").
		Limit(pagination.Limit).
		Offset(pagination.Offset).
		Find(&domains)
	if result.Error != nil {
		return api.DomainCollectionResponse{}, 0, DBErrorToApi(result.Error)
	}

	responses := make([]api.DomainResponse, len(domains))
	for i := range domains {
		responses[i] = domainToResponse(domains[i])
	}
	return api.DomainCollectionResponse{Data: responses}, total, nil
}

func (d domainDaoImpl) Delete(ctx context.Context, slug string) error {
	slug = models.NormalizeSlug(slug)
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var domain models.Domain
		if err := tx.Where("slug = ?", slug).First(&domain).Error; err != nil {
			return DBErrorToApi(err)
		}
		if err := tx.Where("domain_slug = ?", slug).Delete(&models.Link{}).Error; err != nil {
			return DBErrorToApi(err)
		}
		if err := tx.Delete(&domain).Error; err != nil {
			return DBErrorToApi(err)
		}
		return nil
	})
}

func (d domainDaoImpl) ListForVerification(ctx context.Context, limit int) ([]models.Domain, error) {
	var domains []models.Domain
	result := d.db.WithContext(ctx).
		Order("last_checked_at asc nulls first").
		Limit(limit).
		Find(&domains)
	if result.Error != nil {
		return nil, DBErrorToApi(result.Error)
	}
	return domains, nil
}

func (d domainDaoImpl) UpdateVerification(ctx context.Context, slug string, update map[string]interface{}) error {
	result := d.db.WithContext(ctx).
		Model(&models.Domain{}).
		Where("slug = ?", models.NormalizeSlug(slug)).
		Updates(update)
	if result.Error != nil {
		return DBErrorToApi(result.Error)
	}
	if result.RowsAffected == 0 {
		return &ce.DaoError{Message: fmt.Sprintf("domain %s not found", slug), NotFound: true}
	}
	return nil
}

func (d domainDaoImpl) AppendSentNotification(ctx context.Context, slug string, notice string) error {
	result := d.db.WithContext(ctx).
		Model(&models.Domain{}).
		Where("slug = ?", models.NormalizeSlug(slug)).
		Update("sent_notifications", gorm.Expr("array_append(coalesce(sent_notifications, '{}'), ?)", notice))
	if result.Error != nil {
		return DBErrorToApi(result.Error)
	}
	if result.RowsAffected == 0 {
		return &ce.DaoError{Message: fmt.Sprintf("domain %s not found", slug), NotFound: true}
	}
	return nil
}

func domainToResponse(domain models.Domain) api.DomainResponse {
	response := api.DomainResponse{
		UUID:              domain.UUID,
		Slug:              domain.Slug,
		ProjectID:         domain.ProjectID,
		Verified:          domain.Verified,
		Status:            domain.Status,
		LastCheckedAt:     domain.LastCheckedAt,
		SentNotifications: domain.SentNotifications,
		CreatedAt:         domain.CreatedAt,
	}
	if domain.LastCheckError != nil {
		response.LastCheckError = *domain.LastCheckError
	}
	return response
}
