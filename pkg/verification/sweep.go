package verification

import (
	"context"
	"sync"
	"time"

	"github.com/link-services/link-gateway-backend/pkg/config"
	"github.com/link-services/link-gateway-backend/pkg/dao"
	"github.com/link-services/link-gateway-backend/pkg/hosting"
	"github.com/link-services/link-gateway-backend/pkg/instrumentation"
	"github.com/link-services/link-gateway-backend/pkg/lifecycle"
	"github.com/link-services/link-gateway-backend/pkg/models"
	"github.com/rs/zerolog"
)

// SweepResult summarizes one verification batch. Failures are per-domain,
// one broken domain never aborts the run.
type SweepResult struct {
	Checked   int
	Verified  int
	Failed    int
	Failures  map[string]string
	StartedAt time.Time
	Elapsed   time.Duration
}

type Sweeper struct {
	daoReg      *dao.DaoRegistry
	client      hosting.Client
	lifecycle   lifecycle.Handler
	metrics     *instrumentation.Metrics
	batchSize   int
	workerCount int
}

func NewSweeper(daoReg *dao.DaoRegistry, client hosting.Client, handler lifecycle.Handler, metrics *instrumentation.Metrics) *Sweeper {
	options := config.Get().Options
	return &Sweeper{
		daoReg:      daoReg,
		client:      client,
		lifecycle:   handler,
		metrics:     metrics,
		batchSize:   options.SweepBatchSize,
		workerCount: options.SweepWorkerCount,
	}
}

// SweepBatch reconciles one batch of domains, oldest-checked first. Domains
// are processed by a bounded worker pool so a large batch cannot stampede
// the provider API.
func (s *Sweeper) SweepBatch(ctx context.Context) (SweepResult, error) {
	result := SweepResult{
		Failures:  map[string]string{},
		StartedAt: time.Now(),
	}

	domains, err := s.daoReg.Domain.ListForVerification(ctx, s.batchSize)
	if err != nil {
		return result, err
	}
	result.Checked = len(domains)

	jobs := make(chan models.Domain)
	results := make(chan CheckResult, len(domains))

	workers := s.workerCount
	if workers < 1 {
		workers = 1
	}
	wg := sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for domain := range jobs {
				results <- s.checkDomain(ctx, domain)
			}
		}()
	}
	for _, domain := range domains {
		jobs <- domain
	}
	close(jobs)
	wg.Wait()
	close(results)

	for check := range results {
		if check.Err != nil {
			result.Failed++
			result.Failures[check.Slug] = check.Err.Error()
		} else if check.Verified {
			result.Verified++
		}
	}
	result.Elapsed = time.Since(result.StartedAt)
	return result, nil
}

// checkDomain reconciles a single domain and applies the outcome. The
// last-checked timestamp moves forward on every outcome, including upstream
// failures, so repeated sweeps round-robin the whole table.
func (s *Sweeper) checkDomain(ctx context.Context, domain models.Domain) CheckResult {
	logger := zerolog.Ctx(ctx)
	now := time.Now()

	check := Reconcile(ctx, s.client, domain)
	s.metrics.RecordDomainCheck(check.Status, check.Err != nil)

	update := map[string]interface{}{
		"last_checked_at": &now,
	}
	if check.Err != nil {
		errMsg := check.Err.Error()
		update["last_check_error"] = &errMsg
	} else {
		domain.Verified = check.Verified
		domain.Status = check.Status
		domain.LastCheckedAt = &now
		domain.LastCheckError = nil
		update = domain.MapForUpdate()
	}
	if err := s.daoReg.Domain.UpdateVerification(ctx, domain.Slug, update); err != nil {
		logger.Error().Err(err).Str("slug", domain.Slug).Msg("failed to store verification outcome")
		if check.Err == nil {
			check.Err = err
		}
		return check
	}
	if check.Err != nil {
		logger.Warn().Err(check.Err).Str("slug", domain.Slug).Msg("domain reconciliation failed")
		return check
	}

	err := s.lifecycle.Handle(ctx, lifecycle.DomainFact{
		Slug:              domain.Slug,
		ProjectID:         domain.ProjectID,
		Status:            check.Status,
		Verified:          check.Verified,
		Changed:           check.Changed,
		CreatedAt:         domain.CreatedAt,
		SentNotifications: domain.SentNotifications,
	})
	if err != nil {
		logger.Error().Err(err).Str("slug", domain.Slug).Msg("lifecycle handling failed")
		check.Err = err
	}
	return check
}

// CheckDomains reconciles the named domains immediately, outside the normal
// batch ordering. Used by the admin CLI and the on-demand verify endpoint.
func (s *Sweeper) CheckDomains(ctx context.Context, slugs []string) SweepResult {
	result := SweepResult{
		Failures:  map[string]string{},
		StartedAt: time.Now(),
	}
	for _, slug := range slugs {
		slug = models.NormalizeSlug(slug)
		fetched, err := s.daoReg.Domain.Fetch(ctx, slug)
		if err != nil {
			result.Checked++
			result.Failed++
			result.Failures[slug] = err.Error()
			continue
		}
		domain := models.Domain{
			Base:              models.Base{UUID: fetched.UUID, CreatedAt: fetched.CreatedAt},
			Slug:              fetched.Slug,
			ProjectID:         fetched.ProjectID,
			Verified:          fetched.Verified,
			Status:            fetched.Status,
			SentNotifications: fetched.SentNotifications,
		}
		check := s.checkDomain(ctx, domain)
		result.Checked++
		if check.Err != nil {
			result.Failed++
			result.Failures[check.Slug] = check.Err.Error()
		} else if check.Verified {
			result.Verified++
		}
	}
	result.Elapsed = time.Since(result.StartedAt)
	return result
}
