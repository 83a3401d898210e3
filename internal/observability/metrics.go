package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	lotteryRequestsTotal  *prometheus.CounterVec
	lotteryLatencySeconds *prometheus.HistogramVec
	lotteryErrorsTotal    *prometheus.CounterVec
	drawsTotal            *prometheus.CounterVec
	winnersDrawnTotal     prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors used for lottery observability.
func RegisterMetrics() {
	registerOnce.Do(func() {
		lotteryRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lottery_requests_total",
			Help: "Total number of lottery API requests served.",
		}, []string{"method", "route", "status"})

		lotteryLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lottery_latency_seconds",
			Help:    "Latency distribution for lottery API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		lotteryErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lottery_errors_total",
			Help: "Total number of error responses returned by lottery endpoints.",
		}, []string{"method", "route", "status"})

		drawsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "raffle_draws_total",
			Help: "Total number of draw executions by outcome.",
		}, []string{"outcome"})

		winnersDrawnTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "raffle_winners_drawn_total",
			Help: "Total number of winners selected across all committed draws.",
		})

		prometheus.MustRegister(lotteryRequestsTotal, lotteryLatencySeconds, lotteryErrorsTotal, drawsTotal, winnersDrawnTotal)
	})
}

// LotteryRequests exposes the counter for lottery requests.
func LotteryRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return lotteryRequestsTotal
}

// LotteryLatency exposes the latency histogram for lottery requests.
func LotteryLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return lotteryLatencySeconds
}

// LotteryErrors exposes the counter for lottery error responses.
func LotteryErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return lotteryErrorsTotal
}

// Draws exposes the per-outcome draw execution counter.
func Draws() *prometheus.CounterVec {
	RegisterMetrics()
	return drawsTotal
}

// WinnersDrawn exposes the committed winner counter.
func WinnersDrawn() prometheus.Counter {
	RegisterMetrics()
	return winnersDrawnTotal
}
