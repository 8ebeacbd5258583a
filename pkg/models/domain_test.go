package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainValidation(t *testing.T) {
	cases := []struct {
		name   string
		domain Domain
		valid  bool
	}{
		{name: "valid", domain: Domain{Slug: "links.example.com", ProjectID: "proj-1"}, valid: true},
		{name: "blank slug", domain: Domain{Slug: "", ProjectID: "proj-1"}, valid: false},
		{name: "whitespace", domain: Domain{Slug: "bad domain.com", ProjectID: "proj-1"}, valid: false},
		{name: "scheme included", domain: Domain{Slug: "https://example.com", ProjectID: "proj-1"}, valid: false},
		{name: "path included", domain: Domain{Slug: "example.com/foo", ProjectID: "proj-1"}, valid: false},
		{name: "no dot", domain: Domain{Slug: "localhost", ProjectID: "proj-1"}, valid: false},
		{name: "no project", domain: Domain{Slug: "example.com"}, valid: false},
		{name: "unknown status", domain: Domain{Slug: "example.com", ProjectID: "proj-1", Status: "Sideways"}, valid: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.domain.BeforeCreate(nil)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNormalizeSlug(t *testing.T) {
	assert.Equal(t, "example.com", NormalizeSlug(" Example.COM "))
	assert.Equal(t, "example.com", NormalizeSlug("example.com."))
	assert.Equal(t, "example.com", NormalizeSlug("example.com:8080"))
	assert.Equal(t, "sub.example.com", NormalizeSlug("Sub.Example.com"))
}

func TestDomainMapForUpdate(t *testing.T) {
	d := Domain{Slug: "example.com", Verified: true, Status: "Verified"}
	forUpdate := d.MapForUpdate()
	assert.Equal(t, true, forUpdate["verified"])
	assert.Equal(t, "Verified", forUpdate["status"])
	assert.Contains(t, forUpdate, "last_checked_at")
	assert.Contains(t, forUpdate, "last_check_error")
	assert.NotContains(t, forUpdate, "slug")
	assert.NotContains(t, forUpdate, "sent_notifications")
}
