package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	transactionsCreated       *prometheus.CounterVec
	transactionsDeleted       prometheus.Counter
	transactionAmount         prometheus.Histogram
	operationDuration         *prometheus.HistogramVec
	entitiesCreated           *prometheus.CounterVec
	entitiesDeleted           *prometheus.CounterVec
	businessRuleViolations    *prometheus.CounterVec
	authenticationEventsTotal *prometheus.CounterVec
	eventsPublished           *prometheus.CounterVec
}

// NewPrometheusMetrics registers the finance metrics with reg. A nil reg
// uses the default registerer.
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsRecorderInterface {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		transactionsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finance_transactions_created_total",
				Help: "Total number of transactions recorded",
			},
			[]string{"type", "method"},
		),
		transactionsDeleted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "finance_transactions_deleted_total",
				Help: "Total number of transactions deleted",
			},
		),
		transactionAmount: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "finance_transaction_amount",
				Help:    "Transaction amount in currency units",
				Buckets: prometheus.ExponentialBuckets(1, 10, 8),
			},
		),
		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finance_operation_duration_seconds",
				Help:    "Duration of finance operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		entitiesCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finance_entities_created_total",
				Help: "Total number of accounts and categories created",
			},
			[]string{"entity"},
		),
		entitiesDeleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finance_entities_deleted_total",
				Help: "Total number of accounts and categories deleted",
			},
			[]string{"entity"},
		),
		businessRuleViolations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finance_business_rule_violations_total",
				Help: "Total number of operations refused by a business rule",
			},
			[]string{"operation"},
		),
		authenticationEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
		eventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finance_events_published_total",
				Help: "Total number of domain events published",
			},
			[]string{"event", "status"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "transaction_created":
		m.transactionsCreated.WithLabelValues(tags["type"], tags["method"]).Inc()
	case "transaction_deleted":
		m.transactionsDeleted.Inc()
	case "entity_created":
		if entity := tags["entity"]; entity != "" {
			m.entitiesCreated.WithLabelValues(entity).Inc()
		}
	case "entity_deleted":
		if entity := tags["entity"]; entity != "" {
			m.entitiesDeleted.WithLabelValues(entity).Inc()
		}
	case "business_rule_violation":
		m.businessRuleViolations.WithLabelValues(tags["operation"]).Inc()
	case "authentication_event":
		if eventType := tags["event_type"]; eventType != "" {
			m.authenticationEventsTotal.WithLabelValues(eventType).Inc()
		}
	case "event_published":
		m.eventsPublished.WithLabelValues(tags["event"], tags["status"]).Inc()
	}
}

// RecordProcessingTime observes duration under the operation label name
func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	m.operationDuration.WithLabelValues(name).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	if name == "transaction_amount" {
		m.transactionAmount.Observe(value)
	}
}

// NoopMetrics discards every measurement
type NoopMetrics struct{}

func (NoopMetrics) IncrementCounter(string, map[string]string) {}

func (NoopMetrics) RecordProcessingTime(string, time.Duration) {}

func (NoopMetrics) RecordGauge(string, float64, map[string]string) {}
