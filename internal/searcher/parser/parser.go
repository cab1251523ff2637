package parser

import (
	"sort"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/corpus-questions/internal/indexer/tokenizer"
)

// QueryPlan is a tokenized question. Terms is a set; word order and
// repetition in the raw question do not matter.
type QueryPlan struct {
	Terms    map[string]struct{}
	RawQuery string
}

func Parse(tok *tokenizer.Tokenizer, query string) *QueryPlan {
	plan := &QueryPlan{
		Terms:    make(map[string]struct{}),
		RawQuery: strings.TrimSpace(query),
	}
	if plan.RawQuery == "" {
		return plan
	}
	for _, term := range tok.Tokenize(plan.RawQuery) {
		plan.Terms[term] = struct{}{}
	}
	return plan
}

// IsEmpty reports whether the question has no content words.
func (p *QueryPlan) IsEmpty() bool {
	return len(p.Terms) == 0
}

// SortedTerms returns the query terms in ascending order.
func (p *QueryPlan) SortedTerms() []string {
	terms := make([]string, 0, len(p.Terms))
	for term := range p.Terms {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
