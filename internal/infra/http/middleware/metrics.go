package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/xavierca1/leadtrack/internal/usecase"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	leadMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_mutations_total",
			Help: "Total number of lead store mutations",
		},
		[]string{"kind"},
	)

	leadSaveFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_save_failures_total",
			Help: "Total number of failed blob store saves",
		},
	)

	followUpDigestsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "followup_digests_sent_total",
			Help: "Total number of follow-up digest e-mails sent",
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

// MutationCounter is registered as a store listener so every mutation
// kind shows up in /metrics.
func MutationCounter() usecase.MutationListener {
	return func(ev usecase.MutationEvent) {
		leadMutationsTotal.WithLabelValues(ev.Kind).Inc()
	}
}

func RecordSaveFailure() {
	leadSaveFailures.Inc()
}

func RecordDigestSent() {
	followUpDigestsSent.Inc()
}
