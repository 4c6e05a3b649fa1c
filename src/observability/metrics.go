// Package observability provides Prometheus metrics for the bot.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Command outcomes recorded in CommandsTotal.
const (
	OutcomeSuccess         = "success"
	OutcomeChannelRejected = "channel_rejected"
	OutcomeBusy            = "busy"
	OutcomeUnknownCommand  = "unknown_command"
	OutcomeMissingID       = "missing_id"
	OutcomeAckFailed       = "ack_failed"
	OutcomeFetchError      = "fetch_error"
	OutcomeNoData          = "no_data"
	OutcomeError           = "error"
)

// Metrics holds all Prometheus metrics for the bot. Each instance owns its
// registry so several bots (or tests) can live in one process.
type Metrics struct {
	Registry *prometheus.Registry

	CommandsTotal *prometheus.CounterVec
	FetchDuration *prometheus.HistogramVec
	GateBusy      prometheus.Gauge
	ReplyFailures *prometheus.CounterVec
	ReportsBuilt  prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "progress_report_bot"
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		CommandsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dispatcher",
			Name:      "commands_total",
			Help:      "Slash commands handled, by command and outcome",
		}, []string{"command", "outcome"}),

		FetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "stats_api",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of stats API fetches",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"command"}),

		GateBusy: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dispatcher",
			Name:      "gate_busy",
			Help:      "1 while a command holds the processing gate",
		}),

		ReplyFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "reply_failures_total",
			Help:      "Failed calls to the chat platform, by call",
		}, []string{"call"}),

		ReportsBuilt: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "built_total",
			Help:      "Reports rendered",
		}),
	}
}

// Handler returns the HTTP handler exposing this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
