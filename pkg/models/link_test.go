package models

import (
	"testing"
	"time"

	"github.com/link-services/link-gateway-backend/pkg/config"
	"github.com/link-services/link-gateway-backend/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func TestLinkValidation(t *testing.T) {
	valid := Link{DomainSlug: "lgw.sh", Key: "abc", URL: "https://example.com", ProjectID: "proj-1"}
	assert.NoError(t, valid.BeforeCreate(nil))

	cases := []struct {
		name string
		link Link
	}{
		{name: "blank key", link: Link{DomainSlug: "lgw.sh", URL: "https://example.com"}},
		{name: "key with slash", link: Link{DomainSlug: "lgw.sh", Key: "a/b", URL: "https://example.com"}},
		{name: "key with space", link: Link{DomainSlug: "lgw.sh", Key: "a b", URL: "https://example.com"}},
		{name: "blank url", link: Link{DomainSlug: "lgw.sh", Key: "abc"}},
		{name: "relative url", link: Link{DomainSlug: "lgw.sh", Key: "abc", URL: "/foo"}},
		{name: "bad scheme", link: Link{DomainSlug: "lgw.sh", Key: "abc", URL: "ftp://example.com"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.link.BeforeCreate(nil))
		})
	}
}

func TestLinkBlankDomainDefaultsToShortDomain(t *testing.T) {
	link := Link{Key: "abc", URL: "https://example.com"}
	assert.NoError(t, link.BeforeCreate(nil))
	assert.Equal(t, config.Get().Hosts.ShortDomain, link.DomainSlug)
}

func TestLinkKeyNormalized(t *testing.T) {
	link := Link{DomainSlug: "LGW.sh", Key: " MyKey ", URL: "https://example.com"}
	assert.NoError(t, link.BeforeCreate(nil))
	assert.Equal(t, "mykey", link.Key)
	assert.Equal(t, "lgw.sh", link.DomainSlug)
}

func TestLinkExpired(t *testing.T) {
	now := time.Now()
	assert.False(t, (&Link{}).Expired(now))
	assert.False(t, (&Link{ExpiresAt: utils.Ptr(now.Add(time.Hour))}).Expired(now))
	assert.True(t, (&Link{ExpiresAt: utils.Ptr(now.Add(-time.Hour))}).Expired(now))
}

func TestLinkHasPreview(t *testing.T) {
	assert.False(t, (&Link{}).HasPreview())
	assert.True(t, (&Link{Image: "https://cdn.example.com/og.png"}).HasPreview())
}
