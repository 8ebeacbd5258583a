package dao

import (
	"context"
	"fmt"

	"github.com/link-services/link-gateway-backend/pkg/api"
	ce "github.com/link-services/link-gateway-backend/pkg/errors"
	"github.com/link-services/link-gateway-backend/pkg/models"
	"gorm.io/gorm"
)

type linkDaoImpl struct {
	db *gorm.DB
}

func GetLinkDao(db *gorm.DB) LinkDao {
	return linkDaoImpl{db: db}
}

func (l linkDaoImpl) Create(ctx context.Context, request api.LinkRequest) (api.LinkResponse, error) {
	link := models.Link{
		DomainSlug:  request.Domain,
		Key:         request.Key,
		URL:         request.URL,
		Title:       request.Title,
		Description: request.Description,
		Image:       request.Image,
		ExpiresAt:   request.ExpiresAt,
		ProjectID:   request.ProjectID,
	}
	result := l.db.WithContext(ctx).Create(&link)
	if result.Error != nil {
		return api.LinkResponse{}, DBErrorToApi(result.Error)
	}
	return linkToResponse(link), nil
}

func (l linkDaoImpl) Fetch(ctx context.Context, domain string, key string) (api.LinkResponse, error) {
	var link models.Link
	result := l.db.WithContext(ctx).
		Where("domain_slug = ? AND key = ?", models.NormalizeSlug(domain), models.NormalizeKey(key)).
		First(&link)
	if result.Error != nil {
		return api.LinkResponse{}, DBErrorToApi(result.Error)
	}
	return linkToResponse(link), nil
}

func (l linkDaoImpl) List(ctx context.Context, domain string, pagination api.PaginationData) (api.LinkCollectionResponse, int64, error) {
	var total int64
	var links []models.Link

	filtered := l.db.WithContext(ctx).Model(&models.Link{})
	if domain != "" {
		filtered = filtered.Where("domain_slug = ?", models.NormalizeSlug(domain))
	}
	if err := filtered.Count(&total).Error; err != nil {
		return api.LinkCollectionResponse{}, 0, DBErrorToApi(err)
	}
	result := filtered.
		Order("created_at desc").
		Limit(pagination.Limit).
		Offset(pagination.Offset).
		Find(&links)
	if result.Error != nil {
		return api.LinkCollectionResponse{}, 0, DBErrorToApi(result.Error)
	}

	responses := make([]api.LinkResponse, len(links))
	for i := range links {
		responses[i] = linkToResponse(links[i])
	}
	return api.LinkCollectionResponse{Data: responses}, total, nil
}

func (l linkDaoImpl) Delete(ctx context.Context, domain string, key string) error {
	result := l.db.WithContext(ctx).
		Where("domain_slug = ? AND key = ?", models.NormalizeSlug(domain), models.NormalizeKey(key)).
		Delete(&models.Link{})
	if result.Error != nil {
		return DBErrorToApi(result.Error)
	}
	if result.RowsAffected == 0 {
		return &ce.DaoError{Message: fmt.Sprintf("link %s/%s not found", domain, key), NotFound: true}
	}
	return nil
}

func (l linkDaoImpl) IncrementClicks(ctx context.Context, domain string, key string) error {
	result := l.db.WithContext(ctx).
		Model(&models.Link{}).
		Where("domain_slug = ? AND key = ?", models.NormalizeSlug(domain), models.NormalizeKey(key)).
		Update("clicks", gorm.Expr("clicks + 1"))
	if result.Error != nil {
		return DBErrorToApi(result.Error)
	}
	return nil
}

func linkToResponse(link models.Link) api.LinkResponse {
	return api.LinkResponse{
		UUID:        link.UUID,
		Domain:      link.DomainSlug,
		Key:         link.Key,
		URL:         link.URL,
		Title:       link.Title,
		Description: link.Description,
		Image:       link.Image,
		Banned:      link.Banned,
		ExpiresAt:   link.ExpiresAt,
		Clicks:      link.Clicks,
		ProjectID:   link.ProjectID,
		CreatedAt:   link.CreatedAt,
	}
}
