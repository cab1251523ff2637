package index

import "math"

// ComputeIDFs maps every word that occurs in at least one document to
// ln(total documents / documents containing the word). Only set membership
// per document matters; token order and repeat counts are ignored.
func ComputeIDFs(documents map[string][]string) map[string]float64 {
	docFreq := make(map[string]int)
	for _, tokens := range documents {
		seen := make(map[string]struct{}, len(tokens))
		for _, token := range tokens {
			if _, dup := seen[token]; dup {
				continue
			}
			seen[token] = struct{}{}
			docFreq[token]++
		}
	}
	totalDocs := float64(len(documents))
	idfs := make(map[string]float64, len(docFreq))
	for term, df := range docFreq {
		idfs[term] = math.Log(totalDocs / float64(df))
	}
	return idfs
}
