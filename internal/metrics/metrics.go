package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AnalysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "insightflow_analysis_duration_seconds",
			Help:    "End-to-end analysis duration in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
		},
	)

	AnalysisTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insightflow_analysis_total",
			Help: "Total analyses processed",
		},
		[]string{"status"},
	)

	LLMTokensUsed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insightflow_llm_tokens_used",
			Help: "Total LLM tokens consumed",
		},
		[]string{"model"},
	)

	LLMLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "insightflow_llm_latency_seconds",
			Help:    "Provider call latency in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30},
		},
	)

	ReportsExported = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "insightflow_reports_exported_total",
			Help: "Total reports exported to object storage",
		},
	)
)

func Init() {
	prometheus.MustRegister(AnalysisDuration)
	prometheus.MustRegister(AnalysisTotal)
	prometheus.MustRegister(LLMTokensUsed)
	prometheus.MustRegister(LLMLatency)
	prometheus.MustRegister(ReportsExported)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
