package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDot(t *testing.T) {
	assert.Equal(t, float32(32), Dot([]float32{1, 2, 3}, []float32{4, 5, 6}))
	assert.Equal(t, float32(0), Dot([]float32{1, 0}, []float32{0, 1}))
}

func TestSquaredL2(t *testing.T) {
	assert.Equal(t, float32(0), SquaredL2([]float32{1, 2}, []float32{1, 2}))
	assert.Equal(t, float32(25), SquaredL2([]float32{0, 0}, []float32{3, 4}))
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float32{1, 2, 3}, []float32{2, 4, 6}), 1e-6)
	assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-6)
	assert.InDelta(t, -1.0, Cosine([]float32{1, 0}, []float32{-1, 0}), 1e-6)

	// Degenerate inputs degrade to 0.
	assert.Equal(t, float32(0), Cosine([]float32{0, 0}, []float32{1, 1}))
	assert.Equal(t, float32(0), Cosine([]float32{1}, []float32{1, 2}))
	assert.Equal(t, float32(0), Cosine(nil, nil))
}

func TestNormalizeL2(t *testing.T) {
	t.Run("InPlace", func(t *testing.T) {
		v := []float32{3, 4}
		ok := NormalizeL2InPlace(v)
		assert.True(t, ok)
		assert.InDelta(t, 0.6, v[0], 1e-6)
		assert.InDelta(t, 0.8, v[1], 1e-6)
	})

	t.Run("ZeroNorm", func(t *testing.T) {
		assert.False(t, NormalizeL2InPlace([]float32{0, 0}))
		assert.False(t, NormalizeL2InPlace(nil))
	})

	t.Run("Copy", func(t *testing.T) {
		src := []float32{0, 5}
		dst, ok := NormalizeL2Copy(src)
		assert.True(t, ok)
		assert.Equal(t, []float32{0, 5}, src)
		assert.InDelta(t, 1.0, dst[1], 1e-6)
	})
}
