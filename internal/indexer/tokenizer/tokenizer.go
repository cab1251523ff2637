// Package tokenizer provides text normalisation for question answering.
// It lower-cases input, splits it on Unicode word boundaries (hyphens and
// slashes join rather than split), deletes ASCII
// punctuation from every segment, and drops empty segments and English
// stop-words. Stemming is available but off by default.
package tokenizer

import (
	_ "embed"
	"strings"

	"github.com/clipperhouse/uax29/v2/words"
	"github.com/kljensen/snowball/english"
)

// asciiPunctuation is the full printable ASCII punctuation set.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

//go:embed stopwords_english.txt
var englishStopwords string

// defaultStopWords is parsed once at process start and never mutated.
var defaultStopWords = parseWordList(englishStopwords)

var defaultTokenizer = New()

// wordJoiners keeps hyphenated and slashed words such as "e-mail" and
// "and/or" in one segment so punctuation stripping fuses them.
var wordJoiners = &words.Joiners[string]{Middle: []rune{'-', '/'}}

// Tokenizer turns raw text into an ordered sequence of content words.
// A Tokenizer is immutable after New and safe for concurrent use.
type Tokenizer struct {
	stopWords map[string]struct{}
	stem      bool
}

// Option configures a Tokenizer.
type Option func(*tokenizerOptions)

type tokenizerOptions struct {
	stem  bool
	extra []string
}

// WithStemming reduces every kept term to its snowball English stem.
func WithStemming(enabled bool) Option {
	return func(o *tokenizerOptions) {
		o.stem = enabled
	}
}

// WithStopWords adds words to the embedded English stop-word list.
func WithStopWords(extra ...string) Option {
	return func(o *tokenizerOptions) {
		o.extra = append(o.extra, extra...)
	}
}

func New(opts ...Option) *Tokenizer {
	var o tokenizerOptions
	for _, opt := range opts {
		opt(&o)
	}
	stopWords := defaultStopWords
	if len(o.extra) > 0 {
		stopWords = make(map[string]struct{}, len(defaultStopWords)+len(o.extra))
		for w := range defaultStopWords {
			stopWords[w] = struct{}{}
		}
		for _, w := range o.extra {
			if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
				stopWords[w] = struct{}{}
			}
		}
	}
	return &Tokenizer{
		stopWords: stopWords,
		stem:      o.stem,
	}
}

// Tokenize normalises text with the default tokenizer.
func Tokenize(text string) []string {
	return defaultTokenizer.Tokenize(text)
}

// Tokenize returns the content words of text in order, duplicates kept.
func (t *Tokenizer) Tokenize(text string) []string {
	segments := words.FromString(strings.ToLower(text))
	segments.Joiners(wordJoiners)
	terms := make([]string, 0, len(text)/8)
	for segments.Next() {
		term := stripPunctuation(segments.Value())
		if strings.TrimSpace(term) == "" {
			continue
		}
		if t.isStopWord(term) {
			continue
		}
		if t.stem {
			term = english.Stem(term, true)
			if term == "" {
				continue
			}
		}
		terms = append(terms, term)
	}
	return terms
}

func (t *Tokenizer) isStopWord(word string) bool {
	_, ok := t.stopWords[word]
	return ok
}

func stripPunctuation(segment string) string {
	if !strings.ContainsAny(segment, asciiPunctuation) {
		return segment
	}
	return strings.Map(func(r rune) rune {
		if r < 0x80 && strings.ContainsRune(asciiPunctuation, r) {
			return -1
		}
		return r
	}, segment)
}

func parseWordList(raw string) map[string]struct{} {
	list := make(map[string]struct{})
	for _, line := range strings.Split(raw, "\n") {
		if w := strings.TrimSpace(line); w != "" {
			list[w] = struct{}{}
		}
	}
	return list
}
