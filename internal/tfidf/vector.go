package tfidf

import "math"

// Vector is a sparse vector with ascending indices.
type Vector struct {
	Indices []int
	Values  []float64
}

// IsZero reports whether the vector has no non-zero entries.
func (a Vector) IsZero() bool {
	for _, v := range a.Values {
		if v != 0 {
			return false
		}
	}
	return true
}

// Norm returns the L2 norm.
func (a Vector) Norm() float64 {
	sum := 0.0
	for _, v := range a.Values {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product of two sparse vectors.
func (a Vector) Dot(b Vector) float64 {
	sum := 0.0
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			sum += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Cosine returns the cosine similarity of a and b, 0 when either is zero.
func Cosine(a, b Vector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	s := a.Dot(b) / (na * nb)
	// guard rounding drift outside [0,1] for non-negative inputs
	return math.Max(0, math.Min(1, s))
}

func (a *Vector) normalize() {
	norm := a.Norm()
	if norm == 0 {
		return
	}
	for i := range a.Values {
		a.Values[i] /= norm
	}
}
