package instrumentation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameSpace                = "link_gateway"
	HttpStatusHistogram      = "http_status_histogram"
	DispatchedRequestsTotal  = "dispatched_requests_total"
	RedirectOutcomesTotal    = "redirect_outcomes_total"
	DomainsCheckedTotal      = "domains_checked_total"
	DomainCheckFailuresTotal = "domain_check_failures_total"
	ClickEventsDroppedTotal  = "click_events_dropped_total"
)

type Metrics struct {
	HttpStatusHistogram prometheus.HistogramVec

	// Custom metrics
	DispatchedRequestsTotal  prometheus.CounterVec
	RedirectOutcomesTotal    prometheus.CounterVec
	DomainsCheckedTotal      prometheus.CounterVec
	DomainCheckFailuresTotal prometheus.Counter
	ClickEventsDroppedTotal  prometheus.Counter

	reg *prometheus.Registry
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		panic("reg cannot be nil")
	}
	metrics := &Metrics{
		reg: reg,
		HttpStatusHistogram: *promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: NameSpace,
			Name:      HttpStatusHistogram,
			Help:      "Duration of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status", "method", "path"}),

		DispatchedRequestsTotal: *promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: NameSpace,
			Name:      DispatchedRequestsTotal,
			Help:      "Requests routed by the proxy, labelled by target surface",
		}, []string{"target"}),
		RedirectOutcomesTotal: *promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: NameSpace,
			Name:      RedirectOutcomesTotal,
			Help:      "Resolved short links, labelled by outcome",
		}, []string{"outcome"}),
		DomainsCheckedTotal: *promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: NameSpace,
			Name:      DomainsCheckedTotal,
			Help:      "Domains reconciled against the hosting provider, labelled by resulting status",
		}, []string{"status"}),
		DomainCheckFailuresTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: NameSpace,
			Name:      DomainCheckFailuresTotal,
			Help:      "Domain reconciliations that failed",
		}),
		ClickEventsDroppedTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: NameSpace,
			Name:      ClickEventsDroppedTotal,
			Help:      "Click events dropped because the buffer was full",
		}),
	}

	reg.MustRegister(collectors.NewBuildInfoCollector())

	return metrics
}

func (m *Metrics) RecordDispatch(target string) {
	if m != nil {
		m.DispatchedRequestsTotal.With(prometheus.Labels{"target": target}).Inc()
	}
}

func (m *Metrics) RecordRedirectOutcome(outcome string) {
	if m != nil {
		m.RedirectOutcomesTotal.With(prometheus.Labels{"outcome": outcome}).Inc()
	}
}

func (m *Metrics) RecordDomainCheck(status string, failed bool) {
	if m == nil {
		return
	}
	if failed {
		m.DomainCheckFailuresTotal.Inc()
		return
	}
	m.DomainsCheckedTotal.With(prometheus.Labels{"status": status}).Inc()
}

func (m *Metrics) ClickDropped() {
	if m != nil {
		m.ClickEventsDroppedTotal.Inc()
	}
}

func (m Metrics) Registry() *prometheus.Registry {
	return m.reg
}
