package ranker

import (
	"fmt"
	"sort"

	apperrors "github.com/Adithya-Monish-Kumar-K/corpus-questions/pkg/errors"
)

// ScoredDoc is a document and its summed TF-IDF score for one query.
type ScoredDoc struct {
	DocID string  `json:"doc_id"`
	Score float64 `json:"score"`
}

// ScoredSentence is a sentence with its summed IDF over matched query words
// and the share of its tokens that are query words.
type ScoredSentence struct {
	Text     string  `json:"text"`
	IDFScore float64 `json:"idf_score"`
	Density  float64 `json:"density"`
}

// RankFiles scores every document against query. A document's score is the
// sum, over distinct query words it contains, of the word's raw count in the
// document times its IDF. Equal scores are ordered by DocID; that order is an
// implementation choice, not part of the ranking.
func RankFiles(query map[string]struct{}, files map[string][]string, idfs map[string]float64) ([]ScoredDoc, error) {
	result := make([]ScoredDoc, 0, len(files))
	for docID, tokens := range files {
		termFreqs := make(map[string]int)
		for _, token := range tokens {
			if _, ok := query[token]; ok {
				termFreqs[token]++
			}
		}
		var score float64
		for term, tf := range termFreqs {
			idf, ok := idfs[term]
			if !ok {
				return nil, fmt.Errorf("scoring %s: %w: %q", docID, apperrors.ErrUnknownTerm, term)
			}
			score += float64(tf) * idf
		}
		result = append(result, ScoredDoc{DocID: docID, Score: score})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].DocID < result[j].DocID
	})
	return result, nil
}

// TopFiles returns the identifiers of the n highest-scoring documents, or all
// of them when there are fewer than n.
func TopFiles(query map[string]struct{}, files map[string][]string, idfs map[string]float64, n int) ([]string, error) {
	if err := checkLimit(n); err != nil {
		return nil, err
	}
	ranked, err := RankFiles(query, files, idfs)
	if err != nil {
		return nil, err
	}
	ranked = truncate(ranked, n)
	ids := make([]string, len(ranked))
	for i, doc := range ranked {
		ids[i] = doc.DocID
	}
	return ids, nil
}

// RankSentences scores every sentence against query and orders the result
// with lessSentence. Every token sequence must be non-empty.
func RankSentences(query map[string]struct{}, sentences map[string][]string, idfs map[string]float64) ([]ScoredSentence, error) {
	result := make([]ScoredSentence, 0, len(sentences))
	for text, tokens := range sentences {
		if len(tokens) == 0 {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrEmptySentence, text)
		}
		matched := 0
		distinct := make(map[string]struct{})
		for _, token := range tokens {
			if _, ok := query[token]; ok {
				matched++
				distinct[token] = struct{}{}
			}
		}
		var idfScore float64
		for term := range distinct {
			idf, ok := idfs[term]
			if !ok {
				return nil, fmt.Errorf("scoring sentence %q: %w: %q", text, apperrors.ErrUnknownTerm, term)
			}
			idfScore += idf
		}
		result = append(result, ScoredSentence{
			Text:     text,
			IDFScore: idfScore,
			Density:  float64(matched) / float64(len(tokens)),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return lessSentence(result[i], result[j])
	})
	return result, nil
}

// TopSentences returns the texts of the n best sentences, or all of them when
// there are fewer than n.
func TopSentences(query map[string]struct{}, sentences map[string][]string, idfs map[string]float64, n int) ([]string, error) {
	if err := checkLimit(n); err != nil {
		return nil, err
	}
	ranked, err := RankSentences(query, sentences, idfs)
	if err != nil {
		return nil, err
	}
	ranked = truncate(ranked, n)
	texts := make([]string, len(ranked))
	for i, s := range ranked {
		texts[i] = s.Text
	}
	return texts, nil
}

// lessSentence orders by IDF score descending, then density descending. The
// final comparison on text only makes the order total.
func lessSentence(a, b ScoredSentence) bool {
	if a.IDFScore != b.IDFScore {
		return a.IDFScore > b.IDFScore
	}
	if a.Density != b.Density {
		return a.Density > b.Density
	}
	return a.Text < b.Text
}

func checkLimit(n int) error {
	if n < 1 {
		return apperrors.Newf(apperrors.ErrInvalidInput, apperrors.ExitFailure,
			"result limit must be at least 1, got %d", n)
	}
	return nil
}

func truncate[T any](ranked []T, n int) []T {
	if len(ranked) > n {
		return ranked[:n]
	}
	return ranked
}
