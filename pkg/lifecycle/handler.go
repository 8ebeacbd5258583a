// Package lifecycle decides what happens to domains that stay invalid:
// warning notices at policy thresholds and deletion after the final one.
// The verification engine supplies the facts, the policy lives here.
package lifecycle

import (
	"context"
	"time"

	"github.com/link-services/link-gateway-backend/pkg/config"
	"github.com/link-services/link-gateway-backend/pkg/dao"
	"github.com/link-services/link-gateway-backend/pkg/event"
	"github.com/link-services/link-gateway-backend/pkg/utils"
	"github.com/rs/zerolog"
)

// DomainFact is the reconciled state the verification engine hands over.
// The handler never re-checks the provider.
type DomainFact struct {
	Slug              string
	ProjectID         string
	Status            string
	Verified          bool
	Changed           bool
	CreatedAt         time.Time
	SentNotifications []string
}

type Handler interface {
	Handle(ctx context.Context, fact DomainFact) error
}

type handlerImpl struct {
	domainDao        dao.DomainDao
	producer         event.Producer
	firstWarningDays int
	finalWarningDays int
	deleteAfterDays  int
}

func NewHandler(domainDao dao.DomainDao, producer event.Producer) Handler {
	options := config.Get().Options
	return &handlerImpl{
		domainDao:        domainDao,
		producer:         producer,
		firstWarningDays: options.FirstWarningDays,
		finalWarningDays: options.FinalWarningDays,
		deleteAfterDays:  options.DeleteAfterDays,
	}
}

func (h *handlerImpl) Handle(ctx context.Context, fact DomainFact) error {
	logger := zerolog.Ctx(ctx)

	if fact.Verified {
		if fact.Changed {
			logger.Info().Str("slug", fact.Slug).Msg("domain became verified")
		}
		return nil
	}

	days := daysSince(fact.CreatedAt, time.Now())
	switch {
	case days >= h.deleteAfterDays:
		// Deletes the domain and its links only. The owning project stays.
		if err := h.domainDao.Delete(ctx, fact.Slug); err != nil {
			return err
		}
		h.notify(ctx, fact, config.NoticeDeleted, days)
		logger.Warn().Str("slug", fact.Slug).Int("days_invalid", days).Msg("invalid domain deleted")
	case days >= h.finalWarningDays:
		return h.sendOnce(ctx, fact, config.NoticeFinalWarning, days)
	case days >= h.firstWarningDays:
		return h.sendOnce(ctx, fact, config.NoticeFirstWarning, days)
	}
	return nil
}

// sendOnce records the notice before emitting so repeated sweeps with
// unchanged provider state never duplicate a warning.
func (h *handlerImpl) sendOnce(ctx context.Context, fact DomainFact, notice string, days int) error {
	if utils.Contains(fact.SentNotifications, notice) {
		return nil
	}
	if err := h.domainDao.AppendSentNotification(ctx, fact.Slug, notice); err != nil {
		return err
	}
	h.notify(ctx, fact, notice, days)
	return nil
}

func (h *handlerImpl) notify(ctx context.Context, fact DomainFact, notice string, days int) {
	err := h.producer.SendLifecycle(ctx, event.LifecycleNotice{
		Slug:        fact.Slug,
		ProjectID:   fact.ProjectID,
		Status:      fact.Status,
		Notice:      notice,
		DaysInvalid: days,
		Timestamp:   time.Now(),
	})
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("slug", fact.Slug).Str("notice", notice).Msg("failed to emit lifecycle notice")
	}
}

func daysSince(t time.Time, now time.Time) int {
	if t.IsZero() {
		return 0
	}
	return int(now.Sub(t).Hours() / 24)
}
