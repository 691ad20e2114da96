package embeddings

import "strings"

const (
	// DefaultKeywordMinLength is the length at which a token is kept regardless of frequency.
	DefaultKeywordMinLength = 3
	maxKeywords             = 20
)

// ExtractKeywords returns up to 20 tokens that occur at least twice or are at least
// minLength long, in order of first appearance.
func ExtractKeywords(text string, minLength int) []string {
	if minLength <= 0 {
		minLength = DefaultKeywordMinLength
	}

	tokens := Tokenize(text)
	frequency := make(map[string]int, len(tokens))
	order := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if frequency[token] == 0 {
			order = append(order, token)
		}
		frequency[token]++
	}

	keywords := make([]string, 0, min(len(order), maxKeywords))
	for _, token := range order {
		if frequency[token] >= 2 || len(token) >= minLength {
			keywords = append(keywords, token)
		}
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

// KeywordOverlapScore counts the elements of a found in b and divides by the size of
// the union of both sets. Comparison is case-insensitive.
//
// This is not a symmetric Jaccard index; downstream weights are tuned against it.
func KeywordOverlapScore(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	setA := lowerSet(a)
	setB := lowerSet(b)

	matches := 0
	union := make(map[string]struct{}, len(setA)+len(setB))
	for term := range setA {
		union[term] = struct{}{}
		if _, ok := setB[term]; ok {
			matches++
		}
	}
	for term := range setB {
		union[term] = struct{}{}
	}

	return float64(matches) / float64(len(union))
}

func lowerSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = struct{}{}
	}
	return set
}
