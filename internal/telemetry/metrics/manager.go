package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests            *prometheus.CounterVec
	CounterHandleRequestPanic  prometheus.Counter
	CounterRateLimitedRequests prometheus.Counter
	CounterSignups             prometheus.Counter
	CounterLogins              *prometheus.CounterVec
	CounterSessionsStarted     prometheus.Counter
	CounterSessionsEnded       prometheus.Counter
	CounterSetsLogged          prometheus.Counter
	CounterCardioLogged        *prometheus.CounterVec
	CounterBodyWeightLogged    prometheus.Counter

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge

	// histograms
	HistogramRequestDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("ironlog", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("ironlog", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterOpts := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		}
	}

	return &Manager{
		CounterRequests: factory.NewCounterVec(
			counterOpts("request", "The total number of incoming requests"),
			[]string{"method", "status"},
		),
		CounterHandleRequestPanic: factory.NewCounter(
			counterOpts("handle_request_panic", "The total number of serve request panics"),
		),
		CounterRateLimitedRequests: factory.NewCounter(
			counterOpts("rate_limited_requests", "The total number of rate limited requests"),
		),
		CounterSignups: factory.NewCounter(
			counterOpts("signups", "The total number of created accounts"),
		),
		CounterLogins: factory.NewCounterVec(
			counterOpts("logins", "The total number of login attempts"),
			[]string{"result"},
		),
		CounterSessionsStarted: factory.NewCounter(
			counterOpts("workout_sessions_started", "The total number of started workout sessions"),
		),
		CounterSessionsEnded: factory.NewCounter(
			counterOpts("workout_sessions_ended", "The total number of end session calls"),
		),
		CounterSetsLogged: factory.NewCounter(
			counterOpts("workout_sets_logged", "The total number of logged strength sets"),
		),
		CounterCardioLogged: factory.NewCounterVec(
			counterOpts("cardio_logged", "The total number of logged cardio entries"),
			[]string{"activity"},
		),
		CounterBodyWeightLogged: factory.NewCounter(
			counterOpts("body_weight_logged", "The total number of body weight entries"),
		),

		GaugeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "current_requests",
			Help:      "Current number of open client connections",
		}),
		GaugeLifeSignal: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "life_signal",
			Help:      "Shows whether the service is alive",
		}),

		HistogramRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Histogram of response time for requests in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"route", "method", "status_code"}),
	}
}
