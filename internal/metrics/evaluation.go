package metrics

import "github.com/prometheus/client_golang/prometheus"

// Evaluation Prometheus metrics.
var (
	EvaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ragscore",
			Name:      "evaluations_total",
			Help:      "Total number of metric evaluations",
		},
		[]string{"metric"},
	)

	EvaluationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ragscore",
			Name:      "evaluation_duration_seconds",
			Help:      "Record evaluation duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"endpoint"},
	)

	BatchRecordsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ragscore",
			Name:      "batch_records_total",
			Help:      "Total records processed through batch evaluation",
		},
	)

	MetricScores = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ragscore",
			Name:      "metric_score",
			Help:      "Distribution of computed metric scores",
			Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1},
		},
		[]string{"metric"},
	)
)

var evalMetricsRegistered bool

// RegisterEvaluationMetrics registers Prometheus evaluation metrics. Must be called once from main.
func RegisterEvaluationMetrics() {
	if evalMetricsRegistered {
		return
	}
	prometheus.MustRegister(EvaluationsTotal)
	prometheus.MustRegister(EvaluationDuration)
	prometheus.MustRegister(BatchRecordsTotal)
	prometheus.MustRegister(MetricScores)
	evalMetricsRegistered = true
}
