package proxy

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/link-services/link-gateway-backend/pkg/config"
	"github.com/link-services/link-gateway-backend/pkg/instrumentation"
	"github.com/rs/zerolog"
)

// HandlerFunc handles one dispatched request.
type HandlerFunc func(c echo.Context, req ParsedRequest) error

// Rule pairs a predicate with the handler that serves matching requests.
// Rules are evaluated in order, first match wins.
type Rule struct {
	Name   string
	Match  func(req ParsedRequest) bool
	Handle HandlerFunc
}

// Targets are the downstream surfaces the dispatcher can route to. The
// app, api, admin and partner surfaces live elsewhere; their handlers
// here only acknowledge the dispatch.
type Targets struct {
	App        HandlerFunc
	API        HandlerFunc
	Admin      HandlerFunc
	Partners   HandlerFunc
	Stats      HandlerFunc
	WellKnown  HandlerFunc
	CreateLink HandlerFunc
	Resolve    HandlerFunc
}

// DefaultRedirects maps reserved keys on the canonical short domain to
// platform destinations.
var DefaultRedirects = map[string]string{
	"":        "https://linkgw.io",
	"home":    "https://linkgw.io",
	"signin":  "https://app.linkgw.io/login",
	"login":   "https://app.linkgw.io/login",
	"signup":  "https://app.linkgw.io/register",
	"app":     "https://app.linkgw.io",
	"docs":    "https://linkgw.io/docs",
	"pricing": "https://linkgw.io/pricing",
	"help":    "https://linkgw.io/help",
	"terms":   "https://linkgw.io/legal/terms",
	"privacy": "https://linkgw.io/legal/privacy",
}

// wellKnownFiles is the allow-list served under /.well-known/.
var wellKnownFiles = []string{
	"apple-app-site-association",
	"assetlinks.json",
	"security.txt",
}

type Dispatcher struct {
	hosts   config.Hosts
	targets Targets
	metrics *instrumentation.Metrics
	rules   []Rule
}

func NewDispatcher(hosts config.Hosts, targets Targets, metrics *instrumentation.Metrics) *Dispatcher {
	d := &Dispatcher{hosts: hosts, targets: targets, metrics: metrics}
	d.rules = []Rule{
		{
			Name:   "app",
			Match:  func(req ParsedRequest) bool { return hostIn(req.Domain, hosts.App) },
			Handle: targets.App,
		},
		{
			Name:   "api",
			Match:  func(req ParsedRequest) bool { return hostIn(req.Domain, hosts.API) },
			Handle: targets.API,
		},
		{
			Name:   "stats",
			Match:  func(req ParsedRequest) bool { return strings.HasPrefix(req.Path, "/stats/") },
			Handle: targets.Stats,
		},
		{
			Name: "well-known",
			Match: func(req ParsedRequest) bool {
				file, ok := strings.CutPrefix(req.Path, "/.well-known/")
				if !ok {
					return false
				}
				for _, supported := range wellKnownFiles {
					if file == supported {
						return true
					}
				}
				return false
			},
			Handle: targets.WellKnown,
		},
		{
			Name: "default-redirect",
			Match: func(req ParsedRequest) bool {
				if req.Domain != hosts.ShortDomain {
					return false
				}
				_, ok := DefaultRedirects[req.Key]
				return ok
			},
			Handle: func(c echo.Context, req ParsedRequest) error {
				return c.Redirect(http.StatusFound, DefaultRedirects[req.Key])
			},
		},
		{
			Name:   "admin",
			Match:  func(req ParsedRequest) bool { return hostIn(req.Domain, hosts.Admin) },
			Handle: targets.Admin,
		},
		{
			Name:   "partners",
			Match:  func(req ParsedRequest) bool { return hostIn(req.Domain, hosts.Partners) },
			Handle: targets.Partners,
		},
		{
			Name:   "create-link",
			Match:  func(req ParsedRequest) bool { return isDestinationURL(req.FullKey) },
			Handle: targets.CreateLink,
		},
		{
			Name:   "resolve",
			Match:  func(req ParsedRequest) bool { return true },
			Handle: targets.Resolve,
		},
	}
	return d
}

// Dispatch routes one request through the rule table. Parse failures
// still resolve: whatever could be extracted goes to the fallback rule.
func (d *Dispatcher) Dispatch(c echo.Context) error {
	request := c.Request()
	if excluded(request.URL.Path) {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	parsed, err := ParseRequest(request, d.hosts.ShortDomain)
	logger := zerolog.Ctx(request.Context())
	if err != nil {
		logger.Warn().Err(err).Str("path", request.URL.Path).Msg("malformed proxy request")
		d.accessLog(logger, parsed, "resolve")
		d.metrics.RecordDispatch("resolve")
		return d.targets.Resolve(c, parsed)
	}

	for _, rule := range d.rules {
		if rule.Match(parsed) {
			d.accessLog(logger, parsed, rule.Name)
			d.metrics.RecordDispatch(rule.Name)
			return rule.Handle(c, parsed)
		}
	}
	// Unreachable, the last rule matches everything.
	return echo.NewHTTPError(http.StatusNotFound)
}

func (d *Dispatcher) accessLog(logger *zerolog.Logger, req ParsedRequest, target string) {
	logger.Info().
		Str("domain", req.Domain).
		Str("path", req.Path).
		Str("key", req.Key).
		Str("target", target).
		Msg("dispatch")
}

func hostIn(host string, hosts []string) bool {
	for _, h := range hosts {
		if host == h {
			return true
		}
	}
	return false
}

// AcknowledgeTarget returns a placeholder handler for surfaces served by
// other deployments. It reports where the request would have gone.
func AcknowledgeTarget(name string) HandlerFunc {
	return func(c echo.Context, req ParsedRequest) error {
		return c.JSON(http.StatusOK, map[string]string{
			"target": name,
			"domain": req.Domain,
			"path":   req.Path,
		})
	}
}
