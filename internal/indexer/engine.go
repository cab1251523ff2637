package indexer

import (
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/corpus-questions/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/corpus-questions/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/corpus-questions/internal/ingestion"
	"github.com/Adithya-Monish-Kumar-K/corpus-questions/pkg/logger"
)

// Engine holds the loaded corpus, its per-document token sequences and the
// document-level IDF table. Everything is computed once in NewEngine and is
// read-only afterwards.
type Engine struct {
	corpus    ingestion.Corpus
	tokenizer *tokenizer.Tokenizer
	index     *index.Index
	buildTime time.Duration
	logger    *slog.Logger
}

func NewEngine(corpus ingestion.Corpus, tok *tokenizer.Tokenizer) *Engine {
	e := &Engine{
		corpus:    corpus,
		tokenizer: tok,
		logger:    logger.WithComponent("indexer"),
	}
	start := time.Now()
	docTokens := make(map[string][]string, len(corpus))
	for _, docID := range corpus.IDs() {
		tokens := tok.Tokenize(corpus[docID])
		docTokens[docID] = tokens
		e.logger.Debug("document tokenized",
			"doc_id", docID,
			"token_count", len(tokens),
		)
	}
	e.index = index.Build(docTokens)
	e.buildTime = time.Since(start)
	e.logger.Info("corpus indexed",
		"documents", e.index.DocCount(),
		"tokens", e.index.TotalTokens(),
		"vocabulary", e.index.VocabularySize(),
		"duration", e.buildTime,
	)
	if e.index.DocCount() == 0 {
		e.logger.Warn("corpus is empty, queries will return no answers")
	}
	return e
}

func (e *Engine) Index() *index.Index {
	return e.index
}

func (e *Engine) Tokenizer() *tokenizer.Tokenizer {
	return e.tokenizer
}

// Text returns the raw text of a document.
func (e *Engine) Text(docID string) (string, bool) {
	text, ok := e.corpus[docID]
	return text, ok
}

func (e *Engine) BuildTime() time.Duration {
	return e.buildTime
}
