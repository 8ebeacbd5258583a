package api

import "time"

type DomainRequest struct {
	Slug      string `json:"slug"`       // Custom hostname to attach
	ProjectID string `json:"project_id"` // Owning project
}

type DomainResponse struct {
	UUID              string     `json:"uuid"`
	Slug              string     `json:"slug"`
	ProjectID         string     `json:"project_id"`
	Verified          bool       `json:"verified"`
	Status            string     `json:"status"`
	LastCheckedAt     *time.Time `json:"last_checked_at,omitempty"`
	LastCheckError    string     `json:"last_check_error,omitempty"`
	SentNotifications []string   `json:"sent_notifications,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

type DomainCollectionResponse struct {
	Data  []DomainResponse `json:"data"`
	Meta  ResponseMetadata `json:"meta"`
	Links Links            `json:"links"`
}

func (d *DomainCollectionResponse) SetMetadata(meta ResponseMetadata, links Links) {
	d.Meta = meta
	d.Links = links
}
