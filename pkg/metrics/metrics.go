// Package metrics содержит счетчики prometheus для операций хранилища.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Результаты операции хранилища (значения метки outcome)
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// StoreMetrics хранит метрики операций репозиториев.
// Нулевой указатель допустим: все методы тогда ничего не делают.
type StoreMetrics struct {
	Operations *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
}

// NewStoreMetrics регистрирует метрики в reg. При reg == nil используется
// prometheus.DefaultRegisterer.
func NewStoreMetrics(namespace string, reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &StoreMetrics{
		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "operations_total",
				Help:      "Total number of store operations",
			},
			[]string{"repo", "op", "outcome"},
		),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "operation_duration_seconds",
				Help:      "Store operation duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"repo", "op"},
		),
	}
}

// Observe учитывает одну операцию репозитория
func (m *StoreMetrics) Observe(repo, op string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.Operations.WithLabelValues(repo, op, outcome).Inc()
	m.Duration.WithLabelValues(repo, op).Observe(elapsed.Seconds())
}
