package embedding

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatVector serializes a vector as a bracketed comma-separated list
// with fixed 6-decimal precision, e.g. [0.123456,-0.654321]. The fixed
// precision keeps vector literals stable for storage and comparison.
func FormatVector(vec []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range vec {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'f', 6, 32))
	}
	b.WriteByte(']')
	return b.String()
}

// ParseVector is the inverse of FormatVector.
func ParseVector(s string) ([]float32, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("vector literal must be bracketed: %q", s)
	}
	s = strings.Trim(s, "[]")
	if s == "" {
		return []float32{}, nil
	}
	parts := strings.Split(s, ",")
	vec := make([]float32, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("parse vector component %q: %w", p, err)
		}
		vec[i] = float32(f)
	}
	return vec, nil
}

// Normalize scales a vector to unit length. Cosine similarity over the
// pgvector <=> operator expects magnitude 1.
func Normalize(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	if magnitude == 0 {
		return vec
	}

	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / magnitude)
	}
	return normalized
}
