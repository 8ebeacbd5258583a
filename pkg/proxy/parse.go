// Package proxy dispatches inbound requests to the right surface: app,
// api, admin, partner portal, link creation, or the redirect resolver.
package proxy

import (
	"net"
	"net/http"
	"net/url"
	"strings"
)

// ParsedRequest is the normalized view of an inbound request the rule
// table matches against.
type ParsedRequest struct {
	// Domain is the request host, lowercased and with any port stripped.
	Domain string
	Path   string
	// Key is the first path segment, unescaped.
	Key string
	// FullKey is the whole path plus query, reassembled so it can be
	// tested as a candidate destination URL.
	FullKey string
}

// ParseRequest extracts the routing facts from a raw request. A "www."
// prefix on the canonical short domain is treated as the apex.
func ParseRequest(r *http.Request, shortDomain string) (ParsedRequest, error) {
	host := strings.ToLower(r.Host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	if host == "www."+shortDomain {
		host = shortDomain
	}

	path := r.URL.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	trimmed := strings.TrimPrefix(path, "/")
	rawKey := trimmed
	if i := strings.Index(trimmed, "/"); i >= 0 {
		rawKey = trimmed[:i]
	}
	key, err := url.PathUnescape(rawKey)
	if err != nil {
		return ParsedRequest{Domain: host, Path: path, Key: rawKey, FullKey: trimmed}, err
	}
	fullKey, err := url.PathUnescape(trimmed)
	if err != nil {
		return ParsedRequest{Domain: host, Path: path, Key: key, FullKey: trimmed}, err
	}
	if r.URL.RawQuery != "" {
		fullKey += "?" + r.URL.RawQuery
	}

	return ParsedRequest{
		Domain:  host,
		Path:    path,
		Key:     key,
		FullKey: fullKey,
	}, nil
}

// isDestinationURL reports whether the full key is itself a usable
// absolute URL, which turns the request into an implicit create-link.
func isDestinationURL(fullKey string) bool {
	u, err := url.Parse(fullKey)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// excluded paths are served by the framework or as static assets and are
// never intercepted by the rule table.
func excluded(path string) bool {
	for _, prefix := range []string{"/api/", "/_next/", "/_proxy/"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	switch path {
	case "/favicon.ico", "/sitemap.xml", "/robots.txt", "/manifest.webmanifest":
		return true
	}
	return false
}
