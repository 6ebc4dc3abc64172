// Package telemetry provides Prometheus metrics and OpenTelemetry tracing setup.
package telemetry

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// Counters
	GatewayEvents     *prometheus.CounterVec
	CommandsProcessed *prometheus.CounterVec
	HTTPRequests      *prometheus.CounterVec
	RendersSucceeded  prometheus.Counter
	RendersFailed     prometheus.Counter

	// Histograms (seconds)
	RenderDuration prometheus.Observer
	UploadDuration prometheus.Observer

	// Gauges
	ReplayQueueDepth   prometheus.Gauge
	PaginationSessions prometheus.Gauge
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		GatewayEvents = promauto.NewCounterVec(prometheus.CounterOpts{Name: "shisha_gateway_events_total", Help: "Gateway events received, by event type"}, []string{"event"})
		CommandsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{Name: "shisha_commands_processed_total", Help: "Commands dispatched, by invocation kind, name and result"}, []string{"kind", "name", "result"})
		HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{Name: "shisha_http_requests_total", Help: "Outbound HTTP requests, by site and status"}, []string{"site", "status"})
		RendersSucceeded = promauto.NewCounter(prometheus.CounterOpts{Name: "shisha_renders_succeeded_total", Help: "Number of replay renders completed"})
		RendersFailed = promauto.NewCounter(prometheus.CounterOpts{Name: "shisha_renders_failed_total", Help: "Number of replay renders failed"})
		RenderDuration = promauto.NewHistogram(prometheus.HistogramOpts{Name: "shisha_render_duration_seconds", Help: "Replay render duration seconds", Buckets: prometheus.DefBuckets})
		UploadDuration = promauto.NewHistogram(prometheus.HistogramOpts{Name: "shisha_upload_duration_seconds", Help: "Rendered video upload duration seconds", Buckets: prometheus.DefBuckets})
		ReplayQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{Name: "shisha_replay_queue_depth", Help: "Current number of queued replay jobs"})
		PaginationSessions = promauto.NewGauge(prometheus.GaugeOpts{Name: "shisha_pagination_sessions", Help: "Currently active pagination sessions"})
	})
}

// CountEvent records a received gateway event (no-op before Init).
func CountEvent(event string) {
	if GatewayEvents != nil {
		GatewayEvents.WithLabelValues(event).Inc()
	}
}

// CountCommand records a dispatched command outcome (no-op before Init).
func CountCommand(kind, name, result string) {
	if CommandsProcessed != nil {
		CommandsProcessed.WithLabelValues(kind, name, result).Inc()
	}
}

// CountHTTPRequest records an outbound request (no-op before Init).
func CountHTTPRequest(site, status string) {
	if HTTPRequests != nil {
		HTTPRequests.WithLabelValues(site, status).Inc()
	}
}

// CountRenderSucceeded records a completed replay render (no-op before Init).
func CountRenderSucceeded() {
	if RendersSucceeded != nil {
		RendersSucceeded.Inc()
	}
}

// CountRenderFailed records a failed replay render (no-op before Init).
func CountRenderFailed() {
	if RendersFailed != nil {
		RendersFailed.Inc()
	}
}

// SetReplayQueueDepth records the current queued replay job count.
func SetReplayQueueDepth(n int) {
	if ReplayQueueDepth != nil {
		ReplayQueueDepth.Set(float64(n))
	}
}

// SetPaginationSessions records the active pagination session count.
func SetPaginationSessions(n int) {
	if PaginationSessions != nil {
		PaginationSessions.Set(float64(n))
	}
}

// TimeFunc measures the duration of fn and records it in obs if non-nil.
func TimeFunc(obs prometheus.Observer, fn func()) time.Duration {
	start := time.Now()
	fn()
	d := time.Since(start)
	if obs != nil {
		obs.Observe(d.Seconds())
	}
	return d
}
