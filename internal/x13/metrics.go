package x13

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	adjustmentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "x13_adjustments_total",
		Help: "Seasonal adjustment runs that produced an adjusted series.",
	})

	fallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "x13_fallbacks_total",
		Help: "Seasonal adjustment runs that returned the input unchanged.",
	}, []string{"reason"})
)

func recordOutcome(o *Outcome) {
	if o.Adjusted {
		adjustmentsTotal.Inc()
		return
	}
	fallbacksTotal.WithLabelValues(string(o.Reason)).Inc()
}
