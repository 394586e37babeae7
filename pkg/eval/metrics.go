package eval

import (
	"math"
	"strings"
)

// NormalizeText lowercases and trims surrounding whitespace before
// comparison, so "4", " 4 " and "4\n" all match.
func NormalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Tokenize splits normalized text on whitespace, dropping empties.
func Tokenize(s string) []string {
	fields := strings.Fields(NormalizeText(s))
	return fields
}

// ExactMatch scores 1.0 when prediction and reference normalize to the
// same string, else 0.0.
func ExactMatch(pred, ref string) float64 {
	if NormalizeText(pred) == NormalizeText(ref) {
		return 1.0
	}
	return 0.0
}

// TokenF1Score holds set-based token overlap metrics. Duplicate tokens
// are not double-counted.
type TokenF1Score struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// TokenF1 computes precision/recall/F1 over the distinct-token overlap
// of prediction and reference. Two empty strings count as a perfect
// match; one empty side scores zero.
func TokenF1(pred, ref string) TokenF1Score {
	pTokens := Tokenize(pred)
	rTokens := Tokenize(ref)

	if len(pTokens) == 0 && len(rTokens) == 0 {
		return TokenF1Score{Precision: 1.0, Recall: 1.0, F1: 1.0}
	}
	if len(pTokens) == 0 || len(rTokens) == 0 {
		return TokenF1Score{}
	}

	pSet := make(map[string]struct{}, len(pTokens))
	for _, t := range pTokens {
		pSet[t] = struct{}{}
	}
	rSet := make(map[string]struct{}, len(rTokens))
	for _, t := range rTokens {
		rSet[t] = struct{}{}
	}

	inter := 0
	for t := range pSet {
		if _, ok := rSet[t]; ok {
			inter++
		}
	}

	precision := float64(inter) / float64(len(pSet))
	recall := float64(inter) / float64(len(rSet))

	var f1 float64
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}
	return TokenF1Score{Precision: precision, Recall: recall, F1: f1}
}

// Cosine computes the cosine similarity of two vectors. Inputs are
// re-normalized so the result is a plain dot product of unit vectors.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0.0
	}

	var normA, normB, dot float64
	for i := range a {
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
