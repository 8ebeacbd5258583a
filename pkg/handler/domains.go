package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/link-services/link-gateway-backend/pkg/api"
	"github.com/link-services/link-gateway-backend/pkg/cache"
	"github.com/link-services/link-gateway-backend/pkg/dao"
	ce "github.com/link-services/link-gateway-backend/pkg/errors"
	"github.com/rs/zerolog"
)

type DomainHandler struct {
	DaoRegistry dao.DaoRegistry
	Checker     DomainChecker
	Cache       cache.Cache
}

func RegisterDomainRoutes(engine *echo.Group, daoReg *dao.DaoRegistry, checker DomainChecker, linkCache cache.Cache) {
	dh := DomainHandler{DaoRegistry: *daoReg, Checker: checker, Cache: linkCache}
	engine.GET("/domains/", dh.listDomains)
	engine.POST("/domains/", dh.createDomain)
	engine.GET("/domains/:slug", dh.fetchDomain)
	engine.DELETE("/domains/:slug", dh.deleteDomain)
	engine.POST("/domains/:slug/verify", dh.verifyDomain)
}

func (dh *DomainHandler) listDomains(c echo.Context) error {
	pageData := ParsePagination(c)

	domains, total, err := dh.DaoRegistry.Domain.List(c.Request().Context(), pageData)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error listing domains", err.Error())
	}

	return c.JSON(200, setCollectionResponseMetadata(&domains, c, total))
}

func (dh *DomainHandler) createDomain(c echo.Context) error {
	var newDomain api.DomainRequest
	if err := c.Bind(&newDomain); err != nil {
		return ce.NewErrorResponse(http.StatusBadRequest, "Error binding parameters", err.Error())
	}

	response, err := dh.DaoRegistry.Domain.Create(c.Request().Context(), newDomain)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error creating domain", err.Error())
	}

	return c.JSON(http.StatusCreated, response)
}

func (dh *DomainHandler) fetchDomain(c echo.Context) error {
	slug := c.Param("slug")

	response, err := dh.DaoRegistry.Domain.Fetch(c.Request().Context(), slug)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error fetching domain", err.Error())
	}

	return c.JSON(http.StatusOK, response)
}

func (dh *DomainHandler) deleteDomain(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")

	// Links have to be listed before the cascade delete removes them.
	dh.evictDomainLinks(ctx, slug)

	if err := dh.DaoRegistry.Domain.Delete(ctx, slug); err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error deleting domain", err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// evictDomainLinks drops every cached link of the domain so deleted
// links stop resolving immediately. Eviction failures only shorten the
// window to the cache expiration, they never block the delete.
func (dh *DomainHandler) evictDomainLinks(ctx context.Context, slug string) {
	pagination := api.PaginationData{Limit: MaxLimit}
	for {
		links, total, err := dh.DaoRegistry.Link.List(ctx, slug, pagination)
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("slug", slug).Msg("failed to list links for cache eviction")
			return
		}
		for _, link := range links.Data {
			if err := dh.Cache.InvalidateLink(ctx, link.Domain, link.Key); err != nil {
				zerolog.Ctx(ctx).Error().Err(err).Str("domain", link.Domain).Str("key", link.Key).Msg("link cache eviction failed")
			}
		}
		pagination.Offset += pagination.Limit
		if len(links.Data) == 0 || pagination.Offset >= int(total) {
			return
		}
	}
}

// verifyDomain runs an immediate verification check, outside the
// scheduled sweep ordering.
func (dh *DomainHandler) verifyDomain(c echo.Context) error {
	slug := c.Param("slug")

	result := dh.Checker.CheckDomains(c.Request().Context(), []string{slug})

	return c.JSON(http.StatusOK, sweepResultResponse(result))
}
