package event

import "time"

// ClickEvent is the analytics record emitted for every resolved short link.
// It is produced fire-and-forget, the redirect response never waits on it.
type ClickEvent struct {
	Domain    string    `json:"domain"`
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Referrer  string    `json:"referrer,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	IP        string    `json:"ip,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// LifecycleNotice is emitted when the lifecycle handler warns about or
// deletes an invalid domain. Downstream consumers turn these into tenant
// emails.
type LifecycleNotice struct {
	Slug        string    `json:"slug"`
	ProjectID   string    `json:"project_id"`
	Status      string    `json:"status"`
	Notice      string    `json:"notice"`
	DaysInvalid int       `json:"days_invalid"`
	Timestamp   time.Time `json:"timestamp"`
}
