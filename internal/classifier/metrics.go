package classifier

import "github.com/prometheus/client_golang/prometheus"

var (
	predictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leafd",
			Name:      "predictions_total",
			Help:      "Successful predictions by class",
		},
		[]string{"class"},
	)

	predictionFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leafd",
			Name:      "prediction_failures_total",
			Help:      "Failed predictions by reason (unavailable, decode, inference)",
		},
		[]string{"reason"},
	)

	inferenceDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "leafd",
			Name:      "inference_duration_seconds",
			Help:      "Duration of model forward passes in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	modelLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "leafd",
			Name:      "model_loaded",
			Help:      "1 when the model artifact is loaded, 0 in degraded mode",
		},
	)
)

func init() {
	prometheus.MustRegister(predictionsTotal, predictionFailuresTotal, inferenceDuration, modelLoaded)
}

func failureReason(err error) string {
	switch {
	case IsModelUnavailable(err):
		return "unavailable"
	case IsDecodeFailure(err):
		return "decode"
	default:
		return "inference"
	}
}
