package embeddings

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ErrDimensionMismatch is returned when two vectors of different length are compared.
// It means the vectors were built from different vocabularies.
var ErrDimensionMismatch = errors.New("vectors must have the same length")

// TextToEmbedding builds a length-normalized term-frequency vector for text over vocab.
func TextToEmbedding(text string, vocab *Vocabulary) []float64 {
	tokens := Tokenize(text)
	counts := make(map[string]int, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}

	denominator := float64(max(len(tokens), 1))
	vector := make([]float64, vocab.Len())
	for i, term := range vocab.terms {
		vector[i] = float64(counts[term]) / denominator
	}
	return vector
}

// CosineSimilarity returns the cosine of the angle between a and b.
// It returns 0 when either vector has zero norm.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(a), len(b))
	}
	if len(a) == 0 {
		return 0, nil
	}

	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return floats.Dot(a, b) / (normA * normB), nil
}
