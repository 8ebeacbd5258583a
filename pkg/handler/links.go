package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/link-services/link-gateway-backend/pkg/api"
	"github.com/link-services/link-gateway-backend/pkg/cache"
	"github.com/link-services/link-gateway-backend/pkg/dao"
	ce "github.com/link-services/link-gateway-backend/pkg/errors"
	"github.com/link-services/link-gateway-backend/pkg/models"
	"github.com/rs/zerolog"
)

type LinkHandler struct {
	DaoRegistry dao.DaoRegistry
	Cache       cache.Cache
}

func RegisterLinkRoutes(engine *echo.Group, daoReg *dao.DaoRegistry, linkCache cache.Cache) {
	lh := LinkHandler{DaoRegistry: *daoReg, Cache: linkCache}
	engine.GET("/domains/:slug/links/", lh.listLinks)
	engine.POST("/domains/:slug/links/", lh.createLink)
	engine.GET("/domains/:slug/links/:key", lh.fetchLink)
	engine.DELETE("/domains/:slug/links/:key", lh.deleteLink)
}

func (lh *LinkHandler) listLinks(c echo.Context) error {
	domain := c.Param("slug")
	pageData := ParsePagination(c)

	links, total, err := lh.DaoRegistry.Link.List(c.Request().Context(), domain, pageData)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error listing links", err.Error())
	}

	return c.JSON(200, setCollectionResponseMetadata(&links, c, total))
}

func (lh *LinkHandler) createLink(c echo.Context) error {
	var newLink api.LinkRequest
	if err := c.Bind(&newLink); err != nil {
		return ce.NewErrorResponse(http.StatusBadRequest, "Error binding parameters", err.Error())
	}
	newLink.Domain = c.Param("slug")

	response, err := lh.DaoRegistry.Link.Create(c.Request().Context(), newLink)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error creating link", err.Error())
	}

	return c.JSON(http.StatusCreated, response)
}

func (lh *LinkHandler) fetchLink(c echo.Context) error {
	domain := c.Param("slug")
	key := c.Param("key")

	response, err := lh.DaoRegistry.Link.Fetch(c.Request().Context(), domain, key)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error fetching link", err.Error())
	}

	return c.JSON(http.StatusOK, response)
}

func (lh *LinkHandler) deleteLink(c echo.Context) error {
	ctx := c.Request().Context()
	domain := c.Param("slug")
	key := c.Param("key")

	if err := lh.DaoRegistry.Link.Delete(ctx, domain, key); err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error deleting link", err.Error())
	}

	// Evict the cached lookup, otherwise the deleted link keeps
	// resolving until the cache entry expires.
	if err := lh.Cache.InvalidateLink(ctx, models.NormalizeSlug(domain), models.NormalizeKey(key)); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("domain", domain).Str("key", key).Msg("link cache eviction failed")
	}

	return c.NoContent(http.StatusNoContent)
}
