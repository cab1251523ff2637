// Package metrics defines the Prometheus collectors recorded while loading a
// corpus and answering a query, and writes them out in the node-exporter
// textfile format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultAnswered   = "answered"
	ResultZeroResult = "zero_result"
	ResultError      = "error"
)

// Metrics holds all Prometheus collectors for one process.
type Metrics struct {
	Registry           *prometheus.Registry
	DocumentsLoaded    prometheus.Gauge
	CorpusBytes        prometheus.Gauge
	VocabularySize     prometheus.Gauge
	IndexBuildSeconds  prometheus.Gauge
	QueriesTotal       *prometheus.CounterVec
	QueryLatency       prometheus.Histogram
	SentenceCandidates prometheus.Histogram
}

// New creates all collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		DocumentsLoaded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "questions_corpus_documents",
				Help: "Number of documents in the loaded corpus.",
			},
		),
		CorpusBytes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "questions_corpus_bytes",
				Help: "Total size of the loaded corpus text in bytes.",
			},
		),
		VocabularySize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "questions_vocabulary_size",
				Help: "Number of distinct words in the document-level IDF table.",
			},
		),
		IndexBuildSeconds: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "questions_index_build_seconds",
				Help: "Time spent tokenizing the corpus and computing document IDFs.",
			},
		),
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "questions_queries_total",
				Help: "Total queries by result type (answered, zero_result, error).",
			},
			[]string{"result_type"},
		),
		QueryLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "questions_query_latency_seconds",
				Help:    "End-to-end query latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
		),
		SentenceCandidates: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "questions_sentence_candidates",
				Help:    "Number of sentences ranked per query.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
			},
		),
	}

	m.Registry.MustRegister(
		m.DocumentsLoaded,
		m.CorpusBytes,
		m.VocabularySize,
		m.IndexBuildSeconds,
		m.QueriesTotal,
		m.QueryLatency,
		m.SentenceCandidates,
	)

	return m
}

// WriteTextfile writes every registered metric to path, atomically replacing
// any existing file.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
