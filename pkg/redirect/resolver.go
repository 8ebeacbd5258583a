// Package redirect resolves a (domain, key) pair to its destination and
// writes the response: a plain redirect, a social-preview interstitial,
// or one of the terminal banned/expired/not-found pages.
package redirect

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/link-services/link-gateway-backend/pkg/api"
	"github.com/link-services/link-gateway-backend/pkg/cache"
	"github.com/link-services/link-gateway-backend/pkg/dao"
	ce "github.com/link-services/link-gateway-backend/pkg/errors"
	"github.com/link-services/link-gateway-backend/pkg/event"
	"github.com/link-services/link-gateway-backend/pkg/instrumentation"
	"github.com/link-services/link-gateway-backend/pkg/models"
	"github.com/rs/zerolog"
)

// previewCacheControl lets edge caches hold the interstitial briefly,
// link metadata changes rarely.
const previewCacheControl = "public, s-maxage=300, stale-while-revalidate=60"

// Submitter queues a click event without blocking. Satisfied by
// clicks.Recorder.
type Submitter interface {
	Submit(click event.ClickEvent)
}

type Resolver struct {
	linkDao dao.LinkDao
	cache   cache.Cache
	clicks  Submitter
	metrics *instrumentation.Metrics
}

func NewResolver(linkDao dao.LinkDao, linkCache cache.Cache, clicks Submitter, metrics *instrumentation.Metrics) *Resolver {
	return &Resolver{
		linkDao: linkDao,
		cache:   linkCache,
		clicks:  clicks,
		metrics: metrics,
	}
}

// Resolve looks up the link and writes the matching response. The click
// event is queued before the response goes out and never awaited.
func (r *Resolver) Resolve(c echo.Context, domain string, key string) error {
	ctx := c.Request().Context()
	domain = models.NormalizeSlug(domain)
	key = models.NormalizeKey(key)

	link, err := r.lookup(ctx, domain, key)
	if err != nil {
		if ce.HttpCodeForDaoError(err) == http.StatusNotFound {
			r.metrics.RecordRedirectOutcome("not_found")
			return ce.NewErrorResponse(http.StatusNotFound, "", "Short link not found.")
		}
		return ce.NewErrorResponseFromError("Error resolving short link", err)
	}

	if link.Banned {
		r.metrics.RecordRedirectOutcome("banned")
		return c.HTML(http.StatusOK, renderBanned(link))
	}
	if expired(link) {
		r.metrics.RecordRedirectOutcome("expired")
		return c.HTML(http.StatusGone, renderExpired(link))
	}

	r.clicks.Submit(event.ClickEvent{
		Domain:    domain,
		Key:       key,
		URL:       link.URL,
		Referrer:  c.Request().Referer(),
		UserAgent: c.Request().UserAgent(),
		IP:        c.RealIP(),
		Timestamp: time.Now(),
	})

	if link.Image == "" {
		r.metrics.RecordRedirectOutcome("redirect")
		return c.Redirect(http.StatusFound, link.URL)
	}

	r.metrics.RecordRedirectOutcome("preview")
	c.Response().Header().Set("Cache-Control", previewCacheControl)
	return c.HTML(http.StatusOK, renderPreview(link))
}

// lookup goes cache first, then storage. Storage hits are written back
// best effort.
func (r *Resolver) lookup(ctx context.Context, domain string, key string) (api.LinkResponse, error) {
	if cached, err := r.cache.GetLink(ctx, domain, key); err == nil {
		return *cached, nil
	} else if err != cache.NotFound {
		zerolog.Ctx(ctx).Error().Err(err).Msg("link cache read failed")
	}

	link, err := r.linkDao.Fetch(ctx, domain, key)
	if err != nil {
		return api.LinkResponse{}, err
	}
	if err := r.cache.SetLink(ctx, link); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("link cache write failed")
	}
	return link, nil
}

func expired(link api.LinkResponse) bool {
	return link.ExpiresAt != nil && link.ExpiresAt.Before(time.Now())
}

// faviconFor derives a favicon location from the destination's apex.
func faviconFor(destination string) string {
	u, err := url.Parse(destination)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return u.Scheme + "://" + u.Hostname() + "/favicon.ico"
}
