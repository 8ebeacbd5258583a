// Package verification reconciles stored domain verification state with
// the external hosting provider.
package verification

import (
	"context"

	"github.com/link-services/link-gateway-backend/pkg/config"
	"github.com/link-services/link-gateway-backend/pkg/hosting"
	"github.com/link-services/link-gateway-backend/pkg/models"
)

// CheckResult is the ephemeral outcome of one domain reconciliation. It is
// never persisted, only the derived columns are written back.
type CheckResult struct {
	Slug     string
	Status   string
	Verified bool
	// Changed is true when the stored verified flag flipped this run.
	Changed bool
	Err     error
}

// Reconcile determines the current state of one domain. The registration
// lookup and the DNS configuration lookup run concurrently, the active
// verification attempt only fires when the provider reports the domain
// as registered but unverified.
func Reconcile(ctx context.Context, client hosting.Client, domain models.Domain) CheckResult {
	result := CheckResult{Slug: domain.Slug}

	type statusLookup struct {
		status hosting.DomainStatus
		err    error
	}
	type configLookup struct {
		conf hosting.DomainConfig
		err  error
	}

	statusCh := make(chan statusLookup, 1)
	configCh := make(chan configLookup, 1)
	go func() {
		status, _, err := client.GetDomain(ctx, domain.Slug)
		statusCh <- statusLookup{status: status, err: err}
	}()
	go func() {
		conf, _, err := client.GetDomainConfig(ctx, domain.Slug)
		configCh <- configLookup{conf: conf, err: err}
	}()
	status := <-statusCh
	dnsConf := <-configCh

	if status.err != nil {
		result.Err = status.err
		return result
	}

	switch {
	case status.status.NotFound():
		result.Status = config.StatusNotFound
		result.Verified = false
	case !status.status.Verified:
		attempted, _, err := client.VerifyDomain(ctx, domain.Slug)
		if err != nil {
			result.Err = err
			return result
		}
		if attempted.Verified {
			result.Status = config.StatusVerified
			result.Verified = true
		} else {
			result.Status = config.StatusPending
			result.Verified = false
		}
	default:
		// Registered and verified, DNS decides the rest.
		if dnsConf.err != nil {
			result.Err = dnsConf.err
			return result
		}
		if dnsConf.conf.Misconfigured {
			result.Status = config.StatusInvalid
			result.Verified = false
		} else {
			result.Status = config.StatusVerified
			result.Verified = true
		}
	}

	result.Changed = result.Verified != domain.Verified
	return result
}
