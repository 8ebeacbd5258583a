package models

import (
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/link-services/link-gateway-backend/pkg/config"
	"gorm.io/gorm"
)

// Domain is a custom hostname a tenant attaches to serve short links.
// The verified flag is only ever written by the verification engine.
type Domain struct {
	Base
	Slug              string         `gorm:"unique;not null;default:null"`
	ProjectID         string         `gorm:"not null;default:null;index"`
	Verified          bool           `gorm:"default:false;not null"`
	Status            string         `gorm:"default:Pending;not null"`
	LastCheckedAt     *time.Time     `gorm:"default:null"`
	LastCheckError    *string        `gorm:"default:null"`
	SentNotifications pq.StringArray `gorm:"type:text[]"`
	Links             []Link         `gorm:"foreignKey:DomainSlug;references:Slug"`
}

func (d *Domain) BeforeCreate(tx *gorm.DB) error {
	if err := d.Base.BeforeCreate(tx); err != nil {
		return err
	}
	d.Slug = NormalizeSlug(d.Slug)
	return d.validate()
}

func (d *Domain) validate() error {
	if d.Slug == "" {
		return Error{Message: "Domain slug cannot be blank.", Validation: true}
	}
	if strings.ContainsAny(d.Slug, " \t\n\v\r\f") {
		return Error{Message: "Domain slug cannot contain whitespace.", Validation: true}
	}
	if strings.Contains(d.Slug, "://") || strings.Contains(d.Slug, "/") {
		return Error{Message: "Domain slug must be a bare hostname.", Validation: true}
	}
	if !strings.Contains(d.Slug, ".") {
		return Error{Message: "Domain slug must be a fully qualified hostname.", Validation: true}
	}
	if d.ProjectID == "" {
		return Error{Message: "Domain must belong to a project.", Validation: true}
	}
	if d.Status != "" && !config.ValidDomainStatus(d.Status) {
		return Error{Message: "Unknown domain status.", Validation: true}
	}
	return nil
}

// NormalizeSlug lowercases a hostname and strips surrounding whitespace,
// a trailing dot, and any port suffix.
func NormalizeSlug(slug string) string {
	slug = strings.ToLower(strings.TrimSpace(slug))
	slug = strings.TrimSuffix(slug, ".")
	if i := strings.LastIndex(slug, ":"); i != -1 {
		slug = slug[:i]
	}
	return slug
}

// MapForUpdate returns the column set the verification engine is allowed to touch.
func (d *Domain) MapForUpdate() map[string]interface{} {
	forUpdate := make(map[string]interface{})
	forUpdate["verified"] = d.Verified
	forUpdate["status"] = d.Status
	forUpdate["last_checked_at"] = d.LastCheckedAt
	forUpdate["last_check_error"] = d.LastCheckError
	return forUpdate
}
