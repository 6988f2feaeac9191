package prediction

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"diagnosis_api/internal/domain"
)

const (
	outcomeOK            = "ok"
	outcomeInvalidInput  = "invalid_input"
	outcomeShapeMismatch = "shape_mismatch"
	outcomeModelError    = "model_error"
)

//nolint:gochecknoglobals
var (
	predictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictions_total",
			Help: "Prediction requests by outcome and predicted label.",
		},
		[]string{"outcome", "label"},
	)

	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prediction_cache_hits_total",
		Help: "Predictions answered from the cache.",
	})
)

func observe(outcome, label string) {
	predictionsTotal.WithLabelValues(outcome, label).Inc()
}

func outcomeOf(err error) string {
	switch domain.KindOf(err) {
	case domain.KindInvalidInput:
		return outcomeInvalidInput
	case domain.KindShapeMismatch:
		return outcomeShapeMismatch
	default:
		return outcomeModelError
	}
}
