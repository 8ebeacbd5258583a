package api

import "time"

type LinkRequest struct {
	Domain      string     `json:"domain"` // Short-link domain, platform default when blank
	Key         string     `json:"key"`    // Path segment, unique per domain
	URL         string     `json:"url"`    // Destination URL
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Image       string     `json:"image,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	ProjectID   string     `json:"project_id"`
}

type LinkResponse struct {
	UUID        string     `json:"uuid"`
	Domain      string     `json:"domain"`
	Key         string     `json:"key"`
	URL         string     `json:"url"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Image       string     `json:"image,omitempty"`
	Banned      bool       `json:"banned"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Clicks      int64      `json:"clicks"`
	ProjectID   string     `json:"project_id"`
	CreatedAt   time.Time  `json:"created_at"`
}

type LinkCollectionResponse struct {
	Data  []LinkResponse   `json:"data"`
	Meta  ResponseMetadata `json:"meta"`
	Links Links            `json:"links"`
}

func (l *LinkCollectionResponse) SetMetadata(meta ResponseMetadata, links Links) {
	l.Meta = meta
	l.Links = links
}
