// Package ingestion defines the corpus types shared by the loaders and the
// indexing engine.
package ingestion

import "sort"

// Corpus maps a document identifier (a file name or a row name) to the
// document's full text. It is loaded once and read-only afterwards.
type Corpus map[string]string

// IDs returns the document identifiers in ascending order.
func (c Corpus) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Size returns the total text size in bytes.
func (c Corpus) Size() int {
	total := 0
	for _, text := range c {
		total += len(text)
	}
	return total
}
