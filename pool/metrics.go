package pool

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/farmpool/poold/types"
)

var (
	partialsReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pool",
		Name:      "partials_received_total",
		Help:      "Partials received, by result.",
	}, []string{"result"})

	sharesCredited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pool",
		Name:      "shares_credited_total",
		Help:      "Partials credited after confirmation.",
	})

	pointsCredited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pool",
		Name:      "points_credited_total",
		Help:      "Points credited after confirmation.",
	})

	sharesDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pool",
		Name:      "shares_dropped_total",
		Help:      "Admitted partials that were not credited, by reason.",
	}, []string{"reason"})

	confirmationQueue = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "pool",
		Name:      "confirmation_queue_depth",
		Help:      "Partials waiting for confirmation.",
	})

	difficultyChanges = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pool",
		Name:      "difficulty_changes_total",
		Help:      "Farmer difficulty adjustments.",
	})

	farmerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pool",
		Name:      "farmer_requests_total",
		Help:      "Farmer registration, update and lookup requests, by method and result.",
	}, []string{"method", "result"})

	peakHeight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "pool",
		Name:      "chain_peak_height",
		Help:      "Latest chain height seen by the pool.",
	})
)

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	return types.AsPoolError(err).Code.String()
}
