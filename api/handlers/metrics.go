package handlers

import (
	"github.com/aria-lang/seqdiff-go/internal/alignment"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// comparisonsTotal counts comparisons by operation and result
	comparisonsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seqdiff_comparisons_total",
		Help: "Total comparisons by operation and result",
	}, []string{"operation", "result"})

	// alignmentCells tracks the edit graph size per comparison
	alignmentCells = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "seqdiff_alignment_cells",
		Help:    "Edit graph cells per comparison",
		Buckets: prometheus.ExponentialBuckets(64, 4, 12), // 64 to ~268M
	})

	// alignmentPenalty tracks the optimal penalty per comparison
	alignmentPenalty = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "seqdiff_alignment_penalty",
		Help:    "Minimum alignment penalty per comparison",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
	})
)

func observe(operation string, len1, len2 int, cost alignment.Cost, err error) {
	if err != nil {
		result := "invalid"
		if kind, ok := alignment.KindOf(err); ok {
			result = kind.String()
		}
		comparisonsTotal.WithLabelValues(operation, result).Inc()
		return
	}

	comparisonsTotal.WithLabelValues(operation, "ok").Inc()
	alignmentCells.Observe(float64((len1 + 1) * (len2 + 1)))
	alignmentPenalty.Observe(float64(cost.Penalty))
}
