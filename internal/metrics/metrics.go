package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "vulndash"
)

var (
	renderDurationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

	// Dataset Metrics
	DatasetRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "dataset_records",
		Help:      "Number of records in the loaded dataset.",
	})

	FilteredRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "filtered_records",
		Help:      "Number of records matching the current filter selection.",
	})

	LoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loads_total",
		Help:      "Count of dataset load attempts.",
	}, []string{"source", "status"})

	// Dashboard Metrics
	FilterTogglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "filter_toggles_total",
		Help:      "Count of filter toggle and reset operations.",
	}, []string{"kind"})

	RenderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "render_duration_seconds",
		Help:      "Time taken to recompute every chart for the current selection.",
		Buckets:   renderDurationBuckets,
	})

	EmptyChartsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "empty_charts_total",
		Help:      "Count of chart renders that produced the empty-state placeholder.",
	}, []string{"chart"})
)

// Load statuses.
const (
	LoadStatusOK          = "ok"
	LoadStatusUnavailable = "unavailable"
	LoadStatusParseError  = "parse_error"
)

// Load sources.
const (
	SourceFetch  = "fetch"
	SourceFile   = "file"
	SourceUpload = "upload"
)
