package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	gamesStartedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "games_started_total",
			Help: "Total number of game sessions started",
		},
		[]string{"mode", "difficulty"},
	)

	gamesCompletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "games_completed_total",
			Help: "Total number of game sessions completed",
		},
		[]string{"result"},
	)

	llmCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_calls_total",
			Help: "Total number of LLM calls",
		},
		[]string{"status"},
	)

	llmCallDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "llm_call_duration_seconds",
			Help:    "LLM call duration in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
	)
)

// MetricsMiddleware collects Prometheus metrics for each HTTP request.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		httpRequestsInFlight.Inc()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}

		c.Next()

		httpRequestsInFlight.Dec()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(duration)
	}
}

// RecordGameStarted counts a new session.
func RecordGameStarted(mode, difficulty string) {
	gamesStartedTotal.WithLabelValues(mode, difficulty).Inc()
}

// RecordGameCompleted counts a terminated session by result.
func RecordGameCompleted(won bool) {
	result := "lost"
	if won {
		result = "won"
	}
	gamesCompletedTotal.WithLabelValues(result).Inc()
}

// RecordLLMCall records one upstream model call.
func RecordLLMCall(success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	llmCallsTotal.WithLabelValues(status).Inc()
	llmCallDuration.Observe(duration.Seconds())
}
