package models

import (
	"net/url"
	"strings"
	"time"

	"github.com/link-services/link-gateway-backend/pkg/config"
	"gorm.io/gorm"
)

// Link maps a (domain, key) pair to a destination URL plus optional
// social-preview metadata. Keys are stored lowercase so lookups are
// case-insensitive.
type Link struct {
	Base
	DomainSlug  string     `gorm:"not null;default:null;uniqueIndex:idx_links_domain_key"`
	Key         string     `gorm:"not null;default:null;uniqueIndex:idx_links_domain_key"`
	URL         string     `gorm:"not null;default:null"`
	Title       string     `gorm:"default:''"`
	Description string     `gorm:"default:''"`
	Image       string     `gorm:"default:''"`
	Banned      bool       `gorm:"default:false;not null"`
	ExpiresAt   *time.Time `gorm:"default:null"`
	Clicks      int64      `gorm:"default:0;not null"`
	ProjectID   string     `gorm:"not null;default:null;index"`
}

func (l *Link) BeforeCreate(tx *gorm.DB) error {
	if err := l.Base.BeforeCreate(tx); err != nil {
		return err
	}
	l.DomainSlug = NormalizeSlug(l.DomainSlug)
	if l.DomainSlug == "" {
		// links without an explicit domain land on the platform short domain
		l.DomainSlug = NormalizeSlug(config.Get().Hosts.ShortDomain)
	}
	l.Key = NormalizeKey(l.Key)
	return l.validate()
}

func (l *Link) validate() error {
	if l.DomainSlug == "" {
		return Error{Message: "Link domain cannot be blank.", Validation: true}
	}
	if l.Key == "" {
		return Error{Message: "Link key cannot be blank.", Validation: true}
	}
	if strings.ContainsAny(l.Key, " \t\n\v\r\f/?#") {
		return Error{Message: "Link key contains invalid characters.", Validation: true}
	}
	if l.URL == "" {
		return Error{Message: "Destination URL cannot be blank.", Validation: true}
	}
	parsed, err := url.Parse(l.URL)
	if err != nil || !parsed.IsAbs() || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return Error{Message: "Destination must be an absolute http(s) URL.", Validation: true}
	}
	return nil
}

// NormalizeKey lowercases a short-link key and trims surrounding whitespace.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// HasPreview reports whether resolving the link should render the social
// preview interstitial instead of a direct redirect.
func (l *Link) HasPreview() bool {
	return l.Image != ""
}

// Expired reports whether the link has an expiry in the past.
func (l *Link) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && l.ExpiresAt.Before(now)
}
