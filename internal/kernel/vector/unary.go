package vector

import "github.com/chewxy/math32"

func unary(n int, o, x []float32, op func(float32) float32) {
	if n <= 0 {
		return
	}
	if width == WidthScalar || n < 4 {
		for i := 0; i < n; i++ {
			o[i] = op(x[i])
		}
		return
	}

	_ = o[n-1]
	_ = x[n-1]
	i := 0
	for ; i+4 <= n; i += 4 {
		o[i] = op(x[i])
		o[i+1] = op(x[i+1])
		o[i+2] = op(x[i+2])
		o[i+3] = op(x[i+3])
	}
	for ; i < n; i++ {
		o[i] = op(x[i])
	}
}

// Abs computes o[i] = |x[i]|.
func Abs(n int, o, x []float32) { unary(n, o, x, math32.Abs) }

// Neg computes o[i] = -x[i].
func Neg(n int, o, x []float32) { unary(n, o, x, func(v float32) float32 { return -v }) }

// Log computes o[i] = ln(x[i]). NaN propagates for negative inputs, matching
// ordinary float32 semantics.
func Log(n int, o, x []float32) {
	if mathMode == Approximate {
		unary(n, o, x, approxLog)
		return
	}
	unary(n, o, x, math32.Log)
}

// Sqr computes o[i] = x[i]*x[i].
func Sqr(n int, o, x []float32) { unary(n, o, x, func(v float32) float32 { return v * v }) }

// Sqrt computes o[i] = sqrt(x[i]); negative inputs yield NaN.
func Sqrt(n int, o, x []float32) { unary(n, o, x, math32.Sqrt) }

// Sin computes o[i] = sin(x[i]).
func Sin(n int, o, x []float32) {
	if mathMode == Approximate {
		unary(n, o, x, approxSin)
		return
	}
	unary(n, o, x, math32.Sin)
}

// Cos computes o[i] = cos(x[i]).
func Cos(n int, o, x []float32) {
	if mathMode == Approximate {
		unary(n, o, x, approxCos)
		return
	}
	unary(n, o, x, math32.Cos)
}

// Step computes o[i] = 1 if x[i] >= 0 else 0.
func Step(n int, o, x []float32) {
	unary(n, o, x, func(v float32) float32 {
		if v >= 0 {
			return 1
		}
		return 0
	})
}

// SoftmaxPointwise computes the per-element component of softmax,
// o[i] = exp(x[i]), with no cross-element normalization. The tensor-level
// SOFTMAX kernel combines this with a per-row (axis0) sum to normalize.
func SoftmaxPointwise(n int, o, x []float32) { Exp(n, o, x) }

// Exp computes o[i] = exp(x[i]).
func Exp(n int, o, x []float32) {
	if mathMode == Approximate {
		unary(n, o, x, approxExp)
		return
	}
	unary(n, o, x, math32.Exp)
}

// Sigmoid computes o[i] = 1 / (1 + exp(-x[i])).
func Sigmoid(n int, o, x []float32) { unary(n, o, x, sigmoidScalar) }

func sigmoidScalar(v float32) float32 {
	if mathMode == Approximate {
		return 1.0 / (1.0 + approxExp(-v))
	}
	return 1.0 / (1.0 + math32.Exp(-v))
}

// SigmoidDv computes the sigmoid derivative directly from the pre-activation
// input: sigmoid(x) * (1 - sigmoid(x)).
func SigmoidDv(n int, o, x []float32) {
	unary(n, o, x, func(v float32) float32 {
		s := sigmoidScalar(v)
		return s * (1 - s)
	})
}

// HardSigmoid computes o[i] = min(1, max(0, (x[i]+3)/6)).
func HardSigmoid(n int, o, x []float32) {
	unary(n, o, x, func(v float32) float32 {
		v = (v + 3) / 6
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	})
}

// Silu computes o[i] = x[i] / (1 + exp(-x[i])) (SiLU / swish).
func Silu(n int, o, x []float32) {
	unary(n, o, x, func(v float32) float32 { return v * sigmoidScalar(v) })
}

// SiluDv computes silu'(x) = sigmoid(x) * (1 + x*(1 - sigmoid(x))).
func SiluDv(n int, o, x []float32) {
	unary(n, o, x, func(v float32) float32 {
		s := sigmoidScalar(v)
		return s * (1 + v*(1-s))
	})
}

// Tanh computes o[i] = tanh(x[i]).
func Tanh(n int, o, x []float32) {
	if mathMode == Approximate {
		unary(n, o, x, approxTanh)
		return
	}
	unary(n, o, x, math32.Tanh)
}

func tanhScalar(v float32) float32 {
	if mathMode == Approximate {
		return approxTanh(v)
	}
	return math32.Tanh(v)
}

// TanhDv computes tanh'(x) = 1 - tanh(x)^2.
func TanhDv(n int, o, x []float32) {
	unary(n, o, x, func(v float32) float32 {
		t := tanhScalar(v)
		return 1 - t*t
	})
}

// Relu computes o[i] = max(0, x[i]).
func Relu(n int, o, x []float32) {
	unary(n, o, x, func(v float32) float32 {
		if v > 0 {
			return v
		}
		return 0
	})
}

// ReluDv computes relu'(x); by policy relu'(0) = 0, though the true
// derivative is undefined there.
func ReluDv(n int, o, x []float32) {
	unary(n, o, x, func(v float32) float32 {
		if v > 0 {
			return 1
		}
		return 0
	})
}

// geluCoeff is the fixed tanh-approximation coefficient reproduced exactly
// from the reference behavioral contract.
const geluCoeff = 0.044715

// Gelu computes the tanh-approximation GELU:
// 0.5 * x * (1 + tanh(sqrt(2/pi) * x * (1 + geluCoeff*x^2))).
func Gelu(n int, o, x []float32) { unary(n, o, x, geluScalar) }

func geluScalar(v float32) float32 {
	const sqrt2OverPi = 0.7978845608028654
	inner := sqrt2OverPi * v * (1 + geluCoeff*v*v)
	return 0.5 * v * (1 + tanhScalar(inner))
}

// GeluDv computes the standard tanh-based GELU derivative.
func GeluDv(n int, o, x []float32) {
	const sqrt2OverPi = 0.7978845608028654
	unary(n, o, x, func(v float32) float32 {
		inner := sqrt2OverPi * v * (1 + geluCoeff*v*v)
		t := tanhScalar(inner)
		dInner := sqrt2OverPi * (1 + 3*geluCoeff*v*v)
		return 0.5*(1+t) + 0.5*v*(1-t*t)*dInner
	})
}

// SoftmaxDv is intentionally identical to SoftmaxPointwise: the source wires
// the softmax derivative slot to the forward kernel rather than the full
// Jacobian. Preserved as-is; see the dispatch table's documentation of this
// defect.
func SoftmaxDv(n int, o, x []float32) { SoftmaxPointwise(n, o, x) }
