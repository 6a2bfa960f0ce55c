package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddSubMulDiv(t *testing.T) {
	x := []float32{1, 2, 3, 4, 5, 6, 7}
	y := []float32{10, 20, 30, 40, 50, 60, 70}
	o := make([]float32, len(x))

	Add(len(x), o, x, y)
	assert.Equal(t, []float32{11, 22, 33, 44, 55, 66, 77}, o)

	Sub(len(x), o, y, x)
	assert.Equal(t, []float32{9, 18, 27, 36, 45, 54, 63}, o)

	Mul(len(x), o, x, y)
	assert.Equal(t, []float32{10, 40, 90, 160, 250, 360, 490}, o)

	Div(len(x), o, y, x)
	assert.Equal(t, []float32{10, 10, 10, 10, 10, 10, 10}, o)
}

func TestScalarVariants(t *testing.T) {
	x := []float32{1, 2, 3}
	o := make([]float32, len(x))
	MulS(len(x), o, x, 2.5)
	assert.Equal(t, []float32{2.5, 5.0, 7.5}, o)
}

func TestWideMatchesScalarWidth(t *testing.T) {
	x := make([]float32, 37)
	y := make([]float32, 37)
	for i := range x {
		x[i] = float32(i) - 10
		y[i] = float32(i)*0.5 + 1
	}

	oWide := make([]float32, len(x))
	oScalar := make([]float32, len(x))

	SetWidth(WidthWide)
	Add(len(x), oWide, x, y)
	SetWidth(WidthScalar)
	Add(len(x), oScalar, x, y)
	SetWidth(WidthWide)

	assert.Equal(t, oScalar, oWide)
}

func TestRelu(t *testing.T) {
	x := []float32{-1, 0, 1}
	o := make([]float32, len(x))
	Relu(len(x), o, x)
	assert.Equal(t, []float32{0, 0, 1}, o)
}

func TestReluDvZeroPolicy(t *testing.T) {
	o := make([]float32, 1)
	ReluDv(1, o, []float32{0})
	assert.Equal(t, float32(0), o[0])
}

func TestStepAndHardSigmoid(t *testing.T) {
	x := []float32{-10, -3, 0, 3, 10}
	o := make([]float32, len(x))
	Step(len(x), o, x)
	assert.Equal(t, []float32{0, 0, 1, 1, 1}, o)

	HardSigmoid(len(x), o, x)
	assert.InDeltaSlice(t, []float64{0, 0, 0.5, 1, 1}, toF64(o), 1e-6)
}

func TestVSumF64Precision(t *testing.T) {
	x := make([]float32, 1000)
	for i := range x {
		x[i] = 1
	}
	sum := SumF64(len(x), x)
	assert.Equal(t, float64(1000), sum)
}

func TestVMinVMax(t *testing.T) {
	x := []float32{3, -1, 7, 2, -9}
	assert.Equal(t, float32(-9), Min(len(x), x))
	assert.Equal(t, float32(7), Max(len(x), x))
}

func TestVDot(t *testing.T) {
	x := []float32{1, 2, 3}
	y := []float32{4, 5, 6}
	assert.Equal(t, float32(32), Dot(len(x), x, y))
}

func TestSigmoidBounds(t *testing.T) {
	o := make([]float32, 3)
	Sigmoid(3, o, []float32{-100, 0, 100})
	assert.InDelta(t, 0, o[0], 1e-6)
	assert.InDelta(t, 0.5, o[1], 1e-6)
	assert.InDelta(t, 1, o[2], 1e-6)
}

func TestApproxExpAgainstLibrary(t *testing.T) {
	prev := mathMode
	defer func() { mathMode = prev }()

	for _, v := range []float32{-50, -1, 0, 1, 10, 50} {
		want := math.Exp(float64(v))
		got := approxExp(v)
		assert.InDelta(t, want, float64(got), math.Abs(want)*1e-3+1e-4)
	}
}

func TestApproxExpSaturates(t *testing.T) {
	assert.Equal(t, float32(0), approxExp(-200))
	assert.True(t, math.IsInf(float64(approxExp(200)), 1))
}

func TestApproxTanhAgainstLibrary(t *testing.T) {
	for _, v := range []float32{-5, -1, 0, 1, 5} {
		want := math.Tanh(float64(v))
		got := approxTanh(v)
		assert.InDelta(t, want, float64(got), 1e-3)
	}
}

func TestApproxSinCosAgainstLibrary(t *testing.T) {
	for _, v := range []float32{-10, -3, -1, 0, 1, 3, 10} {
		assert.InDelta(t, math.Sin(float64(v)), float64(approxSin(v)), 1e-3)
		assert.InDelta(t, math.Cos(float64(v)), float64(approxCos(v)), 1e-3)
	}
}

func TestGeluMatchesFormula(t *testing.T) {
	x := []float32{-2, -1, 0, 1, 2}
	o := make([]float32, len(x))
	Gelu(len(x), o, x)
	for i, v := range x {
		vv := float64(v)
		inner := math.Sqrt(2/math.Pi) * vv * (1 + float64(geluCoeff)*vv*vv)
		want := 0.5 * vv * (1 + math.Tanh(inner))
		assert.InDelta(t, want, float64(o[i]), 1e-5)
	}
}

func TestSoftmaxDvEqualsSoftmaxPointwise(t *testing.T) {
	x := []float32{0.1, 0.2, 0.3}
	a := make([]float32, len(x))
	b := make([]float32, len(x))
	SoftmaxDv(len(x), a, x)
	SoftmaxPointwise(len(x), b, x)
	assert.Equal(t, b, a)
}

func toF64(x []float32) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = float64(v)
	}
	return out
}
