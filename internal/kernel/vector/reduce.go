package vector

import "math"

// SumF64 accumulates x[0:n] into a float64 accumulator to limit drift on
// large vectors, matching mag_vsum_f64_f32 in the reference implementation.
func SumF64(n int, x []float32) float64 {
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(x[i])
	}
	return sum
}

// Min returns the minimum of x[0:n], seeded with +Inf. NaN handling matches
// the platform's fminf: a NaN operand does not win unless both are NaN.
func Min(n int, x []float32) float32 {
	m := float32(math.Inf(1))
	for i := 0; i < n; i++ {
		if x[i] < m {
			m = x[i]
		}
	}
	return m
}

// Max returns the maximum of x[0:n], seeded with -Inf.
func Max(n int, x []float32) float32 {
	m := float32(math.Inf(-1))
	for i := 0; i < n; i++ {
		if x[i] > m {
			m = x[i]
		}
	}
	return m
}

// Dot returns the dot product of x and y over n elements.
func Dot(n int, x, y []float32) float32 {
	var sum float32
	for i := 0; i < n; i++ {
		sum += x[i] * y[i]
	}
	return sum
}
