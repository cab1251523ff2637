package executor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/corpus-questions/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/corpus-questions/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/corpus-questions/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/corpus-questions/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/corpus-questions/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/corpus-questions/internal/searcher/ranker"
	apperrors "github.com/Adithya-Monish-Kumar-K/corpus-questions/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/corpus-questions/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/corpus-questions/pkg/metrics"
)

// Answer is the outcome of one question.
type Answer struct {
	Query      string        `json:"query"`
	Terms      []string      `json:"terms"`
	Files      []string      `json:"files"`
	Sentences  []string      `json:"sentences"`
	Candidates int           `json:"candidates"`
	Latency    time.Duration `json:"latency"`
}

// Limits caps the two ranking stages.
type Limits struct {
	FileMatches     int
	SentenceMatches int
}

type Executor struct {
	engine    *indexer.Engine
	limits    Limits
	metrics   *metrics.Metrics
	collector *analytics.Collector
	logger    *slog.Logger
}

// New returns an Executor over engine. m and collector may be nil.
func New(engine *indexer.Engine, limits Limits, m *metrics.Metrics, collector *analytics.Collector) *Executor {
	return &Executor{
		engine:    engine,
		limits:    limits,
		metrics:   m,
		collector: collector,
		logger:    logger.WithComponent("query-executor"),
	}
}

// Execute ranks documents, then ranks the sentences of the top documents
// against sentence-level IDFs computed for this call only.
func (e *Executor) Execute(ctx context.Context, plan *parser.QueryPlan) (*Answer, error) {
	start := time.Now()
	answer, err := e.execute(ctx, plan)
	latency := time.Since(start)
	if err != nil {
		e.observe(metrics.ResultError, latency, 0)
		return nil, err
	}
	answer.Latency = latency

	resultType := metrics.ResultAnswered
	eventType := analytics.EventQuery
	if len(answer.Sentences) == 0 {
		resultType = metrics.ResultZeroResult
		eventType = analytics.EventZeroResult
	}
	e.observe(resultType, latency, answer.Candidates)
	e.collector.Track(analytics.QueryEvent{
		Type:       eventType,
		Query:      answer.Query,
		Terms:      answer.Terms,
		Files:      answer.Files,
		Returned:   len(answer.Sentences),
		Candidates: answer.Candidates,
		LatencyMs:  latency.Milliseconds(),
		Timestamp:  time.Now().UTC(),
	})
	e.logger.Info("query executed",
		"query", answer.Query,
		"terms", answer.Terms,
		"files", answer.Files,
		"candidates", answer.Candidates,
		"results", len(answer.Sentences),
		"latency", latency,
	)
	return answer, nil
}

func (e *Executor) execute(ctx context.Context, plan *parser.QueryPlan) (*Answer, error) {
	if plan.IsEmpty() {
		e.logger.Warn("query has no content words, every score will be zero", "query", plan.RawQuery)
	}
	ix := e.engine.Index()
	files, err := ranker.TopFiles(plan.Terms, ix.Documents(), ix.IDFs(), e.limits.FileMatches)
	if err != nil {
		return nil, fmt.Errorf("ranking documents: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sentences, err := e.sentenceCorpus(files)
	if err != nil {
		return nil, err
	}
	sentenceIDFs := index.ComputeIDFs(sentences)
	matches, err := ranker.TopSentences(plan.Terms, sentences, sentenceIDFs, e.limits.SentenceMatches)
	if err != nil {
		return nil, fmt.Errorf("ranking sentences: %w", err)
	}
	return &Answer{
		Query:      plan.RawQuery,
		Terms:      plan.SortedTerms(),
		Files:      files,
		Sentences:  matches,
		Candidates: len(sentences),
	}, nil
}

// sentenceCorpus maps each sentence of the given documents to its tokens.
// Sentences without content words are skipped. The sentence text is the key,
// so identical sentences collapse into one entry and the last one wins.
func (e *Executor) sentenceCorpus(docIDs []string) (map[string][]string, error) {
	tok := e.engine.Tokenizer()
	sentences := make(map[string][]string)
	for _, docID := range docIDs {
		text, ok := e.engine.Text(docID)
		if !ok {
			return nil, fmt.Errorf("%w: ranked document %q not in corpus", apperrors.ErrInternal, docID)
		}
		for _, sentence := range tokenizer.SplitSentences(text) {
			tokens := tok.Tokenize(sentence)
			if len(tokens) == 0 {
				continue
			}
			sentences[sentence] = tokens
		}
	}
	return sentences, nil
}

func (e *Executor) observe(resultType string, latency time.Duration, candidates int) {
	if e.metrics == nil {
		return
	}
	e.metrics.QueriesTotal.WithLabelValues(resultType).Inc()
	e.metrics.QueryLatency.Observe(latency.Seconds())
	if resultType != metrics.ResultError {
		e.metrics.SentenceCandidates.Observe(float64(candidates))
	}
}
