package embeddings

import (
	"math"
	"sort"
)

// TermFrequency returns the share of tokens equal to term.
func TermFrequency(term string, tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	count := 0
	for _, token := range tokens {
		if token == term {
			count++
		}
	}
	return float64(count) / float64(len(tokens))
}

// InverseDocumentFrequency returns log(N / (1 + df)) where df is the number of
// tokenized documents containing term.
func InverseDocumentFrequency(term string, documents [][]string) float64 {
	if len(documents) == 0 {
		return 0
	}
	containing := 0
	for _, doc := range documents {
		for _, token := range doc {
			if token == term {
				containing++
				break
			}
		}
	}
	return math.Log(float64(len(documents)) / float64(1+containing))
}

// CalculateTFIDF scores every distinct token of text against corpus.
//
// The live embedding path uses plain term frequency; this is used for corpus inspection.
func CalculateTFIDF(text string, corpus []string) map[string]float64 {
	tokens := Tokenize(text)
	documents := make([][]string, len(corpus))
	for i, doc := range corpus {
		documents[i] = Tokenize(doc)
	}

	scores := make(map[string]float64)
	for _, token := range tokens {
		if _, seen := scores[token]; seen {
			continue
		}
		scores[token] = TermFrequency(token, tokens) * InverseDocumentFrequency(token, documents)
	}
	return scores
}

// TermScore pairs a term with its TF-IDF weight.
type TermScore struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

// TopTerms returns the n highest scoring terms, ties broken alphabetically.
func TopTerms(scores map[string]float64, n int) []TermScore {
	ranked := make([]TermScore, 0, len(scores))
	for term, score := range scores {
		ranked = append(ranked, TermScore{Term: term, Score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Term < ranked[j].Term
	})
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
