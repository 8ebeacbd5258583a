package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/link-services/link-gateway-backend/pkg/api"
	"github.com/link-services/link-gateway-backend/pkg/cache"
	"github.com/link-services/link-gateway-backend/pkg/config"
	"github.com/link-services/link-gateway-backend/pkg/dao"
	"github.com/link-services/link-gateway-backend/pkg/middleware"
	"github.com/link-services/link-gateway-backend/pkg/verification"
	"github.com/rs/zerolog/log"
)

const DefaultOffset = 0
const DefaultLimit = 100
const MaxLimit = 200

// DomainChecker runs on-demand and scheduled verification batches.
// Satisfied by verification.Sweeper.
type DomainChecker interface {
	SweepBatch(ctx context.Context) (verification.SweepResult, error)
	CheckDomains(ctx context.Context, slugs []string) verification.SweepResult
}

func RegisterRoutes(engine *echo.Echo, daoReg *dao.DaoRegistry, checker DomainChecker, linkCache cache.Cache) {
	paths := []string{api.FullRootPath(), api.MajorRootPath()}
	for i := 0; i < len(paths); i++ {
		group := engine.Group(paths[i])
		group.Use(middleware.EnforceJSONContentType)
		RegisterDomainRoutes(group, daoReg, checker, linkCache)
		RegisterLinkRoutes(group, daoReg, linkCache)
		RegisterCronRoutes(group, checker, config.Get().Cron.Secret)
	}

	data, err := json.MarshalIndent(engine.Routes(), "", "  ")
	if err == nil {
		log.Debug().Msg(string(data))
	}
}

func RegisterPing(engine *echo.Echo) {
	engine.GET("/ping", ping)
	engine.GET("/ping/", ping)
}

func ping(c echo.Context) error {
	return c.JSON(200, echo.Map{
		"message": "pong",
	})
}

func createLink(c echo.Context, offset int) string {
	req := c.Request()
	q := req.URL.Query()
	page := ParsePagination(c)

	q.Set("limit", strconv.Itoa(page.Limit))
	q.Set("offset", strconv.Itoa(offset))

	params, _ := url.PathUnescape(q.Encode())
	return fmt.Sprintf("%v?%v", req.URL.Path, params)
}

// setCollectionResponseMetadata determines metadata of collection response based on context and collection size.
// Returns collection response with updated metadata.
func setCollectionResponseMetadata(collection api.CollectionMetadataSettable, c echo.Context, totalCount int64) api.CollectionMetadataSettable {
	page := ParsePagination(c)
	var lastPage int
	if int(totalCount) > 0 && (int(totalCount)%page.Limit) == 0 {
		lastPage = int(totalCount) - page.Limit
	} else {
		lastPage = int(totalCount) - int(totalCount)%page.Limit
	}
	links := api.Links{
		First: createLink(c, 0),
		Last:  createLink(c, lastPage),
	}
	if page.Offset+page.Limit < int(totalCount) {
		links.Next = createLink(c, page.Offset+page.Limit)
	}
	if page.Offset-page.Limit >= 0 {
		links.Prev = createLink(c, page.Offset-page.Limit)
	}

	collection.SetMetadata(api.ResponseMetadata{
		Count:  totalCount,
		Limit:  page.Limit,
		Offset: page.Offset,
	}, links)
	return collection
}

func ParsePagination(c echo.Context) api.PaginationData {
	pageData := api.PaginationData{Limit: DefaultLimit, Offset: DefaultOffset}
	err := echo.QueryParamsBinder(c).
		Int("limit", &pageData.Limit).
		Int("offset", &pageData.Offset).
		BindError()
	if err != nil {
		log.Error().Err(err).Msg("Failed to bind pagination.")
	}

	if pageData.Limit < 1 {
		pageData.Limit = DefaultLimit
	} else if pageData.Limit > MaxLimit {
		pageData.Limit = MaxLimit
	}
	return pageData
}

func sweepResultResponse(result verification.SweepResult) api.SweepResultResponse {
	return api.SweepResultResponse{
		Checked:   result.Checked,
		Verified:  result.Verified,
		Failed:    result.Failed,
		Failures:  result.Failures,
		StartedAt: result.StartedAt,
		Elapsed:   result.Elapsed.String(),
	}
}
