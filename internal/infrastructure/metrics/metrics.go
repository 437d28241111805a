package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusFailure = "failure"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// Account metrics
	AccountsCreated   prometheus.Counter
	AccountOperations *prometheus.CounterVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec

	// Storage metrics
	StoreSaves        *prometheus.CounterVec
	StoreSaveDuration prometheus.Histogram
}

// New creates all metrics on a private registry. The process is short-lived
// and has no scrape endpoint; WriteToFile exports the registry instead.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "gobank_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_account_operations_total",
				Help: "Total account operations by type and outcome",
			},
			[]string{"operation", "status"},
		),

		AuthAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),

		StoreSaves: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_store_saves_total",
				Help: "Total data file rewrites by outcome",
			},
			[]string{"status"},
		),
		StoreSaveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gobank_store_save_duration_seconds",
			Help:    "Duration of data file rewrites",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Registry exposes the private registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordAccountCreated counts a newly opened account.
func (m *Metrics) RecordAccountCreated() {
	m.AccountsCreated.Inc()
}

// RecordOperation counts an account operation such as "deposit".
func (m *Metrics) RecordOperation(operation string, err error) {
	m.AccountOperations.WithLabelValues(operation, status(err)).Inc()
}

// RecordAuthAttempt counts a login attempt.
func (m *Metrics) RecordAuthAttempt(err error) {
	m.AuthAttempts.WithLabelValues(status(err)).Inc()
}

// RecordSave counts a data file rewrite and observes its duration.
func (m *Metrics) RecordSave(elapsed time.Duration, err error) {
	m.StoreSaves.WithLabelValues(status(err)).Inc()
	m.StoreSaveDuration.Observe(elapsed.Seconds())
}

// WriteToFile writes the registry in the Prometheus text format, suitable for
// the node_exporter textfile collector.
func (m *Metrics) WriteToFile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func status(err error) string {
	if err != nil {
		return statusFailure
	}
	return statusSuccess
}
