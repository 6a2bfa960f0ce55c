package vector

// Add computes o[i] = x[i] + y[i] over a contiguous run of n elements.
func Add(n int, o, x, y []float32) { binary(n, o, x, y, addOp) }

// Sub computes o[i] = x[i] - y[i].
func Sub(n int, o, x, y []float32) { binary(n, o, x, y, subOp) }

// Mul computes o[i] = x[i] * y[i].
func Mul(n int, o, x, y []float32) { binary(n, o, x, y, mulOp) }

// Div computes o[i] = x[i] / y[i].
func Div(n int, o, x, y []float32) { binary(n, o, x, y, divOp) }

// AddS computes o[i] = x[i] + s.
func AddS(n int, o, x []float32, s float32) { scalar(n, o, x, s, addOp) }

// SubS computes o[i] = x[i] - s.
func SubS(n int, o, x []float32, s float32) { scalar(n, o, x, s, subOp) }

// MulS computes o[i] = x[i] * s.
func MulS(n int, o, x []float32, s float32) { scalar(n, o, x, s, mulOp) }

// DivS computes o[i] = x[i] / s.
func DivS(n int, o, x []float32, s float32) { scalar(n, o, x, s, divOp) }

func addOp(a, b float32) float32 { return a + b }
func subOp(a, b float32) float32 { return a - b }
func mulOp(a, b float32) float32 { return a * b }
func divOp(a, b float32) float32 { return a / b }

func binary(n int, o, x, y []float32, op func(float32, float32) float32) {
	if n <= 0 {
		return
	}
	if width == WidthScalar || n < 4 {
		for i := 0; i < n; i++ {
			o[i] = op(x[i], y[i])
		}
		return
	}

	// Wide path: four lanes per iteration. Bounds-check elimination hint.
	_ = o[n-1]
	_ = x[n-1]
	_ = y[n-1]
	i := 0
	for ; i+4 <= n; i += 4 {
		o[i] = op(x[i], y[i])
		o[i+1] = op(x[i+1], y[i+1])
		o[i+2] = op(x[i+2], y[i+2])
		o[i+3] = op(x[i+3], y[i+3])
	}
	for ; i < n; i++ {
		o[i] = op(x[i], y[i])
	}
}

func scalar(n int, o, x []float32, s float32, op func(float32, float32) float32) {
	if n <= 0 {
		return
	}
	if width == WidthScalar || n < 4 {
		for i := 0; i < n; i++ {
			o[i] = op(x[i], s)
		}
		return
	}

	_ = o[n-1]
	_ = x[n-1]
	i := 0
	for ; i+4 <= n; i += 4 {
		o[i] = op(x[i], s)
		o[i+1] = op(x[i+1], s)
		o[i+2] = op(x[i+2], s)
		o[i+3] = op(x[i+3], s)
	}
	for ; i < n; i++ {
		o[i] = op(x[i], s)
	}
}
