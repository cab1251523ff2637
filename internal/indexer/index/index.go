package index

// Index pairs per-document token sequences with the IDF table computed over
// them. It is built once and never mutated, so concurrent readers need no
// locking.
type Index struct {
	documents map[string][]string
	idfs      map[string]float64
	tokens    int
}

func Build(documents map[string][]string) *Index {
	tokens := 0
	for _, terms := range documents {
		tokens += len(terms)
	}
	return &Index{
		documents: documents,
		idfs:      ComputeIDFs(documents),
		tokens:    tokens,
	}
}

// Documents returns the document-id to token-sequence mapping. Callers must
// treat it as read-only.
func (ix *Index) Documents() map[string][]string {
	return ix.documents
}

// IDFs returns the word to IDF table. Callers must treat it as read-only.
func (ix *Index) IDFs() map[string]float64 {
	return ix.idfs
}

func (ix *Index) DocCount() int {
	return len(ix.documents)
}

func (ix *Index) VocabularySize() int {
	return len(ix.idfs)
}

func (ix *Index) TotalTokens() int {
	return ix.tokens
}
