package ranker

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Adithya-Monish-Kumar-K/corpus-questions/pkg/errors"
)

func querySet(words ...string) map[string]struct{} {
	q := make(map[string]struct{}, len(words))
	for _, w := range words {
		q[w] = struct{}{}
	}
	return q
}

func repeat(word string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = word
	}
	return out
}

func TestTopFilesPrefersMatchingDocument(t *testing.T) {
	files := map[string][]string{
		"match.txt": {"python", "language", "python", "snake", "language"},
		"other.txt": {"cat", "sat", "mat"},
	}
	idfs := map[string]float64{
		"python": math.Log(2), "language": math.Log(2), "snake": math.Log(2),
		"cat": math.Log(2), "sat": math.Log(2), "mat": math.Log(2),
	}
	got, err := TopFiles(querySet("python", "language"), files, idfs, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"match.txt"}, got)
}

func TestRankFilesScores(t *testing.T) {
	files := map[string][]string{
		"a": {"whale", "whale", "ship"},
		"b": {"whale", "ocean"},
	}
	idfs := map[string]float64{"whale": 0.5, "ship": 2.0, "ocean": 1.0}

	ranked, err := RankFiles(querySet("whale", "ship", "harpoon"), files, idfs)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].DocID)
	assert.InDelta(t, 2*0.5+2.0, ranked[0].Score, 1e-12)
	assert.Equal(t, "b", ranked[1].DocID)
	assert.InDelta(t, 0.5, ranked[1].Score, 1e-12)
}

func TestRankFilesTieOrderDeterministic(t *testing.T) {
	files := map[string][]string{
		"c.txt": {"x"},
		"a.txt": {"x"},
		"b.txt": {"x"},
	}
	idfs := map[string]float64{"x": 0}
	for i := 0; i < 10; i++ {
		got, err := TopFiles(querySet("x"), files, idfs, 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, got)
	}
}

func TestTopFilesTruncates(t *testing.T) {
	files := map[string][]string{"only.txt": {"word"}}
	got, err := TopFiles(querySet("word"), files, map[string]float64{"word": 0}, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"only.txt"}, got)

	got, err = TopFiles(querySet("word"), nil, nil, 1)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTopFilesUnknownTerm(t *testing.T) {
	files := map[string][]string{"doc": {"python"}}

	// An unseen query word absent from every document is harmless.
	_, err := TopFiles(querySet("ruby"), files, map[string]float64{"python": 0}, 1)
	require.NoError(t, err)

	_, err = TopFiles(querySet("python"), files, map[string]float64{}, 1)
	assert.ErrorIs(t, err, apperrors.ErrUnknownTerm)
}

func TestTopFilesInvalidLimit(t *testing.T) {
	_, err := TopFiles(querySet("x"), map[string][]string{"d": {"x"}}, map[string]float64{"x": 0}, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestTopSentencesIDFBeatsDensity(t *testing.T) {
	sentences := map[string][]string{
		"A": append([]string{"alpha"}, repeat("filler", 9)...),
		"B": append(repeat("beta", 9), "filler"),
	}
	idfs := map[string]float64{"alpha": 5.0, "beta": 4.9, "filler": 0.1}

	ranked, err := RankSentences(querySet("alpha", "beta"), sentences, idfs)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, ScoredSentence{Text: "A", IDFScore: 5.0, Density: 0.1}, ranked[0])
	assert.Equal(t, "B", ranked[1].Text)
	assert.InDelta(t, 4.9, ranked[1].IDFScore, 1e-12)
	assert.InDelta(t, 0.9, ranked[1].Density, 1e-12)

	got, err := TopSentences(querySet("alpha", "beta"), sentences, idfs, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, got)
}

func TestTopSentencesDensityBreaksTies(t *testing.T) {
	sentences := map[string][]string{
		"A": {"word", "filler"},
		"B": {"word", "word", "word", "word", "filler"},
	}
	idfs := map[string]float64{"word": 3.0, "filler": 1.0}

	ranked, err := RankSentences(querySet("word"), sentences, idfs)
	require.NoError(t, err)
	assert.Equal(t, "B", ranked[0].Text)
	assert.Equal(t, 3.0, ranked[0].IDFScore)
	assert.InDelta(t, 0.8, ranked[0].Density, 1e-12)
	assert.Equal(t, "A", ranked[1].Text)
	assert.InDelta(t, 0.5, ranked[1].Density, 1e-12)
}

func TestTopSentencesDistinctWordsCountOnce(t *testing.T) {
	sentences := map[string][]string{
		"repeats": {"go", "go", "go"},
		"both":    {"go", "rust", "filler", "filler"},
	}
	idfs := map[string]float64{"go": 1.0, "rust": 1.5, "filler": 0.2}

	ranked, err := RankSentences(querySet("go", "rust"), sentences, idfs)
	require.NoError(t, err)
	assert.Equal(t, "both", ranked[0].Text)
	assert.InDelta(t, 2.5, ranked[0].IDFScore, 1e-12)
	assert.Equal(t, 1.0, ranked[1].IDFScore)
	assert.Equal(t, 1.0, ranked[1].Density)
}

func TestTopSentencesTruncates(t *testing.T) {
	sentences := map[string][]string{
		"one": {"x"},
		"two": {"y"},
	}
	got, err := TopSentences(querySet("x"), sentences, map[string]float64{"x": 1, "y": 1}, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, got)
}

func TestTopSentencesEmptySentence(t *testing.T) {
	_, err := TopSentences(querySet("x"), map[string][]string{"": {}}, nil, 1)
	assert.ErrorIs(t, err, apperrors.ErrEmptySentence)
}

func TestTopSentencesUnknownTerm(t *testing.T) {
	_, err := TopSentences(querySet("x"), map[string][]string{"s": {"x"}}, map[string]float64{}, 1)
	assert.ErrorIs(t, err, apperrors.ErrUnknownTerm)
}

func TestLessSentence(t *testing.T) {
	a := ScoredSentence{Text: "a", IDFScore: 1, Density: 0.2}
	b := ScoredSentence{Text: "b", IDFScore: 1, Density: 0.2}
	c := ScoredSentence{Text: "c", IDFScore: 1, Density: 0.3}
	d := ScoredSentence{Text: "d", IDFScore: 1.0000001, Density: 0}

	assert.True(t, lessSentence(a, b))
	assert.False(t, lessSentence(b, a))
	assert.True(t, lessSentence(c, a))
	assert.True(t, lessSentence(d, c))
}
