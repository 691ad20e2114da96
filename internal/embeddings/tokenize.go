// Package embeddings provides the text vectorization utilities used by the matcher:
// tokenization, vocabulary construction, term-frequency vectors, cosine similarity
// and keyword extraction.
//
// Vectors produced by TextToEmbedding are positional: element i is the weight of the
// i-th vocabulary term. Two vectors are only comparable when built from the same
// Vocabulary value.
package embeddings

import (
	"regexp"
	"strings"
)

// minTokenLength is the shortest token kept by Tokenize.
const minTokenLength = 3

var nonWordRegex = regexp.MustCompile(`[^\w\s]`)

// Tokenize lower-cases text, replaces punctuation with spaces, splits on whitespace
// and drops tokens of two characters or fewer.
func Tokenize(text string) []string {
	if text == "" {
		return []string{}
	}

	cleaned := nonWordRegex.ReplaceAllString(strings.ToLower(text), " ")
	fields := strings.Fields(cleaned)

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if len(field) >= minTokenLength {
			tokens = append(tokens, field)
		}
	}
	return tokens
}

// Vocabulary is an insertion-ordered set of terms.
type Vocabulary struct {
	terms []string
	index map[string]int
}

// NewVocabulary returns an empty vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{index: make(map[string]int)}
}

// Add inserts a term if not already present.
func (v *Vocabulary) Add(term string) {
	if _, ok := v.index[term]; ok {
		return
	}
	v.index[term] = len(v.terms)
	v.terms = append(v.terms, term)
}

// Contains reports whether term is in the vocabulary.
func (v *Vocabulary) Contains(term string) bool {
	_, ok := v.index[term]
	return ok
}

// Len returns the number of terms, which is also the embedding dimension.
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Terms returns the terms in insertion order.
func (v *Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// BuildVocabulary tokenizes every text and unions the tokens.
func BuildVocabulary(texts []string) *Vocabulary {
	vocab := NewVocabulary()
	for _, text := range texts {
		for _, token := range Tokenize(text) {
			vocab.Add(token)
		}
	}
	return vocab
}
