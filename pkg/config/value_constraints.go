package config

const (
	StatusVerified = "Verified" // Domain verified and DNS points at us
	StatusPending  = "Pending"  // Domain registered but verification records not confirmed yet
	StatusInvalid  = "Invalid"  // Domain verified but DNS is misconfigured
	StatusNotFound = "NotFound" // Hosting provider has no record of the domain
)

// Lifecycle notification types recorded on a domain so warnings are sent only once.
const (
	NoticeFirstWarning = "domain.invalid-warning"
	NoticeFinalWarning = "domain.final-warning"
	NoticeDeleted      = "domain.deleted"
)

func ValidDomainStatus(status string) bool {
	switch status {
	case StatusVerified, StatusPending, StatusInvalid, StatusNotFound:
		return true
	}
	return false
}
