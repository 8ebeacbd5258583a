// Package clicks records short-link click events off the request path.
// Submission never blocks and never fails the redirect, a full buffer
// drops the event with a log line.
package clicks

import (
	"context"
	"sync"
	"time"

	"github.com/link-services/link-gateway-backend/pkg/dao"
	"github.com/link-services/link-gateway-backend/pkg/event"
	"github.com/link-services/link-gateway-backend/pkg/instrumentation"
	"github.com/rs/zerolog/log"
)

const recordTimeout = 5 * time.Second

type Recorder struct {
	events   chan event.ClickEvent
	linkDao  dao.LinkDao
	producer event.Producer
	metrics  *instrumentation.Metrics
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewRecorder(linkDao dao.LinkDao, producer event.Producer, metrics *instrumentation.Metrics, bufferSize int) *Recorder {
	return &Recorder{
		events:   make(chan event.ClickEvent, bufferSize),
		linkDao:  linkDao,
		producer: producer,
		metrics:  metrics,
	}
}

// Start launches the background consumer.
func (r *Recorder) Start() {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		for click := range r.events {
			r.record(click)
		}
	}()
}

// Submit queues a click event without blocking. Events submitted after
// Stop, or while the buffer is full, are dropped.
func (r *Recorder) Submit(click event.ClickEvent) {
	defer func() {
		// send on closed channel after Stop
		if recover() != nil {
			log.Warn().Str("domain", click.Domain).Str("key", click.Key).Msg("click recorder stopped, event dropped")
		}
	}()
	select {
	case r.events <- click:
	default:
		r.metrics.ClickDropped()
		log.Warn().Str("domain", click.Domain).Str("key", click.Key).Msg("click buffer full, event dropped")
	}
}

func (r *Recorder) record(click event.ClickEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	if err := r.linkDao.IncrementClicks(ctx, click.Domain, click.Key); err != nil {
		log.Error().Err(err).Str("domain", click.Domain).Str("key", click.Key).Msg("failed to increment click counter")
	}
	if err := r.producer.SendClick(ctx, click); err != nil {
		log.Error().Err(err).Str("domain", click.Domain).Str("key", click.Key).Msg("failed to emit click event")
	}
}

// Stop drains the buffer and waits for the consumer to exit.
func (r *Recorder) Stop() {
	r.stopOnce.Do(func() {
		close(r.events)
	})
	r.wg.Wait()
}
