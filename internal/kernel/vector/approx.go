package vector

import "math"

// Approximate-math transcendentals. These are scalar ports of magnetron's
// NEON/AVX/SSE "approxmath" kernels (magnetron_cpu.c: mag_simd_expf,
// mag_vlog_f32, mag_simd_sincos), not independently-derived polynomials: the
// bit-trick constants and minimax coefficients below are the literal values
// from that source, since spec.md's behavioral contract requires reproducing
// them exactly rather than regenerating an equivalent approximation from
// first principles.

const (
	expLowerBound = -103.97
	expUpperBound = 88.38
)

// approxExp ports mag_simd_expf: a Schraudolph-style range reduction (via the
// float/int reinterpret "magic number" trick) followed by a degree-5 minimax
// polynomial on the reduced remainder, with the source's extended-range
// correction for |n| > 126 so very negative/positive inputs still saturate
// through the same two branches the source takes rather than through an
// early clamp alone.
func approxExp(x float32) float32 {
	if x <= expLowerBound {
		return 0
	}
	if x >= expUpperBound {
		return float32(math.Inf(1))
	}

	const (
		magic  float32 = 0x1.8p23
		log2ef float32 = 0x1.715476p+0
		c1     float32 = 0x1.62e4p-1
		c2     float32 = 0x1.7f7d1cp-20
	)
	r := magic
	z := x*log2ef + r
	n := z - r
	b := x - n*c1 - n*c2

	e := math.Float32bits(z) << 23
	k := math.Float32frombits(e + math.Float32bits(1))

	absN := n
	if absN < 0 {
		absN = -absN
	}

	const (
		p1 float32 = 0x1.ffffecp-1
		p2 float32 = 0x1.fffdb6p-2
		p3 float32 = 0x1.555e66p-3
		p4 float32 = 0x1.573e2ep-5
		p5 float32 = 0x1.0e4020p-7
	)
	u := b * b
	t1 := p4 + p5*b
	t2 := (p2 + p3*b) + u*t1
	j := p1*b + u*t2

	if absN <= 126 {
		return k + j*k
	}

	var d uint32
	if n <= 0 {
		d = 0x82000000
	}
	s1 := math.Float32frombits(d + 0x7f000000)
	s2 := math.Float32frombits(e - d)
	if absN > 192 {
		return s1 * s1
	}
	return (s2 + s2*j) * s1
}

// reciprocalNewton refines an initial reciprocal guess y0 of v with two
// Newton-Raphson iterations: y <- y*(2 - v*y), the same refinement count
// mag_simd_tanh applies on top of its hardware reciprocal-estimate
// instruction (vrecpeq_f32/_mm_rcp_ps). Scalar Go has no such estimate
// instruction, so fastReciprocalGuess substitutes the classic integer
// bit-hack initial guess in its place.
func reciprocalNewton(v, y0 float32) float32 {
	y := y0
	y = y * (2 - v*y)
	y = y * (2 - v*y)
	return y
}

// fastReciprocalGuess produces a coarse initial reciprocal estimate via the
// classic bit-level trick (the reciprocal analogue of the fast inverse
// square root constant), refined afterwards by Newton iterations.
func fastReciprocalGuess(v float32) float32 {
	if v == 0 {
		return float32(math.Inf(1))
	}
	i := math.Float32bits(v)
	i = 0x7EF311C3 - i
	return math.Float32frombits(i)
}

// approxTanh computes tanh(x) = 2/(1+exp(-2x)) - 1, mirroring
// mag_simd_tanh's structure (expf, then a reciprocal sharpened by two
// Newton refinements) with approxExp standing in for mag_simd_expf and
// fastReciprocalGuess standing in for the hardware reciprocal estimate.
func approxTanh(x float32) float32 {
	e := approxExp(-2 * x)
	denom := 1 + e
	recip := reciprocalNewton(denom, fastReciprocalGuess(denom))
	return 2*recip - 1
}

// sincos ports mag_simd_sincos's Cephes-style quadrant reduction and
// polynomial evaluation (an odd degree-7 polynomial for sin, an even
// degree-8 polynomial for cos), returning both sin and cos of x
// from the shared reduction (the source computes both from one reduction
// since most callers, e.g. GELU-adjacent kernels, only need one but the
// reduction cost is shared in the original SIMD kernel).
func sincos(x float32) (sinv, cosv float32) {
	signMaskSin := x < 0
	if x < 0 {
		x = -x
	}

	y := x * 1.27323954473516
	emm2 := int32(math.Round(float64(y)))
	emm2 += 1
	emm2 &^= 1
	y = float32(emm2)

	polyMask := emm2&2 != 0

	x += y * -0.78515625
	x += y * -2.4187564849853515625e-4
	x += y * -3.77489497744594108e-8

	signMaskSin = signMaskSin != (emm2&4 != 0)
	signMaskCos := (emm2-2)&4 != 0

	z := x * x

	y1 := float32(-1.388731625493765e-3) + z*2.443315711809948e-5
	y2 := float32(8.3321608736e-3) + z*(-1.9515295891e-4)
	y1 = 4.166664568298827e-2 + y1*z
	y2 = -1.6666654611e-1 + y2*z
	y1 *= z
	y2 *= z
	y1 *= z
	y1 -= z * 0.5
	y2 = x + y2*x
	y1 += 1

	var ys, yc float32
	if polyMask {
		ys, yc = y1, y2
	} else {
		ys, yc = y2, y1
	}

	if signMaskSin {
		sinv = -ys
	} else {
		sinv = ys
	}
	if signMaskCos {
		cosv = yc
	} else {
		cosv = -yc
	}
	return sinv, cosv
}

// approxSin computes sin(x) via the ported Cephes-style reduction.
func approxSin(x float32) float32 {
	s, _ := sincos(x)
	return s
}

// approxCos computes cos(x) via the ported Cephes-style reduction.
func approxCos(x float32) float32 {
	_, c := sincos(x)
	return c
}

// approxLog ports mag_vlog_f32's NEON/SSE approxmath path: IEEE-754
// exponent/mantissa extraction followed by the source's nine-term minimax
// polynomial on the mantissa, with ln2 deliberately split into
// 0.693359375 + (-2.12194440e-4) the way the source splits it for
// precision. NaN/zero inputs are handled as ordinary log edge cases rather
// than reproducing the source's bit-OR-in-NaN mechanism, since spec.md's
// contract is the polynomial coefficients, not this incidental bit pattern.
func approxLog(x float32) float32 {
	if x != x {
		return x
	}
	if x < 0 {
		return float32(math.NaN())
	}
	if x == 0 {
		return float32(math.Inf(-1))
	}

	bits := math.Float32bits(x)
	emm0 := int32(bits>>23) - 0x7f
	bits = (bits &^ 0x7f800000) | math.Float32bits(0.5)
	xi := math.Float32frombits(bits)
	e := float32(emm0) + 1

	mask := xi < 0.707106781186547524
	var tmp float32
	if mask {
		tmp = xi
	}
	xi -= 1
	if mask {
		e -= 1
	}
	xi += tmp

	z := xi * xi
	y := float32(7.0376836292e-2)
	y = -1.1514610310e-1 + y*xi
	y = 1.1676998740e-1 + y*xi
	y = -1.2420140846e-1 + y*xi
	y = 1.4249322787e-1 + y*xi
	y = -1.6668057665e-1 + y*xi
	y = 2.0000714765e-1 + y*xi
	y = -2.4999993993e-1 + y*xi
	y = 3.3333331174e-1 + y*xi
	y *= xi
	y *= z
	y += e * -2.12194440e-4
	y -= z * 0.5
	xi += y
	xi += e * 0.693359375
	return xi
}
