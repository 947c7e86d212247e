package index

import "math"

// Epsilon is the floor applied to a vector's L2 norm before dividing by it.
// Degenerate (all-zero) embeddings therefore stay zero instead of dividing by zero.
const Epsilon = 1e-12

// Normalize returns a copy of v scaled to unit L2 norm.
// Vectors whose norm is at most Epsilon are divided by Epsilon instead.
func Normalize(v []float32) []float32 {
	var sumSquares float64
	for _, x := range v {
		sumSquares += float64(x) * float64(x)
	}
	norm := math.Max(math.Sqrt(sumSquares), Epsilon)

	result := make([]float32, len(v))
	for i, x := range v {
		result[i] = float32(float64(x) / norm)
	}
	return result
}

// NormalizeBatch normalizes every row of vectors. The input is not modified.
func NormalizeBatch(vectors [][]float32) [][]float32 {
	result := make([][]float32, len(vectors))
	for i, v := range vectors {
		result[i] = Normalize(v)
	}
	return result
}

// dot computes the inner product in float64.
func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
