package embedding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatVector(t *testing.T) {
	assert.Equal(t, "[0.123456,-0.654321]", FormatVector([]float32{0.123456, -0.654321}))
	assert.Equal(t, "[]", FormatVector(nil))
	assert.Equal(t, "[1.000000]", FormatVector([]float32{1}))
}

func TestParseVectorRoundTrip(t *testing.T) {
	original := []float32{0.125, -0.5, 0.75}
	parsed, err := ParseVector(FormatVector(original))
	require.NoError(t, err)
	require.Len(t, parsed, 3)
	for i := range original {
		assert.InDelta(t, original[i], parsed[i], 1e-6)
	}
}

func TestParseVectorEmpty(t *testing.T) {
	parsed, err := ParseVector("[]")
	require.NoError(t, err)
	assert.Empty(t, parsed)
}

func TestParseVectorMalformed(t *testing.T) {
	_, err := ParseVector("0.1,0.2")
	assert.Error(t, err)

	_, err = ParseVector("[0.1,abc]")
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	normalized := Normalize([]float32{3, 4})

	var magnitude float64
	for _, v := range normalized {
		magnitude += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(magnitude), 1e-6)
	assert.InDelta(t, 0.6, normalized[0], 1e-6)
	assert.InDelta(t, 0.8, normalized[1], 1e-6)
}

func TestNormalizeZeroVector(t *testing.T) {
	zero := []float32{0, 0, 0}
	assert.Equal(t, zero, Normalize(zero))
}
