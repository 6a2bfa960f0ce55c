package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itohio/cputensor/tensor"
)

func TestForwardTableCoversEveryOperator(t *testing.T) {
	ops := []tensor.Op{
		tensor.NOP, tensor.CLONE, tensor.VIEW, tensor.TRANSPOSE, tensor.PERMUTE,
		tensor.MEAN, tensor.MIN, tensor.MAX, tensor.SUM,
		tensor.ABS, tensor.NEG, tensor.LOG, tensor.SQR, tensor.SQRT, tensor.SIN, tensor.COS, tensor.STEP,
		tensor.SOFTMAX, tensor.SOFTMAX_DV, tensor.SIGMOID, tensor.SIGMOID_DV, tensor.HARD_SIGMOID,
		tensor.SILU, tensor.SILU_DV, tensor.TANH, tensor.TANH_DV, tensor.RELU, tensor.RELU_DV, tensor.GELU, tensor.GELU_DV,
		tensor.ADD, tensor.SUB, tensor.MUL, tensor.DIV, tensor.ADDS, tensor.SUBS, tensor.MULS, tensor.DIVS,
		tensor.MATMUL,
	}
	for _, op := range ops {
		_, ok := ForwardTable[op]
		assert.True(t, ok, "missing forward entry for %s", op)
	}
}

func TestAddViaForwardTable(t *testing.T) {
	x := tensor.FromSlice(tensor.DimsFrom(4), []float32{1, 2, 3, 4})
	y := tensor.FromSlice(tensor.DimsFrom(4), []float32{10, 20, 30, 40})
	r := tensor.New(tensor.DimsFrom(4), tensor.ADD, x, y)

	k := Lookup(ForwardTable, tensor.ADD)
	k(0, 1, r)
	assert.Equal(t, []float32{11, 22, 33, 44}, r.Data()[:4])
}

func TestBackwardTableIsFatal(t *testing.T) {
	x := tensor.FromSlice(tensor.DimsFrom(4), []float32{1, 2, 3, 4})
	r := tensor.New(tensor.DimsFrom(4), tensor.RELU, x)

	k := Lookup(BackwardTable, tensor.RELU)
	assert.Panics(t, func() { k(0, 1, r) })
}

func TestUnknownOperatorIsFatal(t *testing.T) {
	assert.Panics(t, func() { Lookup(ForwardTable, tensor.Op(9999)) })
}

func TestSoftmaxDvEqualsSoftmaxEntry(t *testing.T) {
	fwdSoftmax := ForwardTable[tensor.SOFTMAX]
	fwdSoftmaxDv := ForwardTable[tensor.SOFTMAX_DV]

	x := tensor.FromSlice(tensor.DimsFrom(3), []float32{0.1, 0.2, 0.3})
	r1 := tensor.New(tensor.DimsFrom(3), tensor.SOFTMAX, x)
	r2 := tensor.New(tensor.DimsFrom(3), tensor.SOFTMAX_DV, x)

	fwdSoftmax(0, 1, r1)
	fwdSoftmaxDv(0, 1, r2)
	assert.Equal(t, r1.Data()[:3], r2.Data()[:3])
}
