package tkernel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itohio/cputensor/internal/kernel/vector"
	"github.com/itohio/cputensor/tensor"
)

func runPartitioned(t *testing.T, workers int, fn func(workerIdx, workerCount int, node *tensor.Tensor), node *tensor.Tensor) {
	t.Helper()
	for w := 0; w < workers; w++ {
		fn(w, workers, node)
	}
}

func TestUnaryReluAcrossThreadCounts(t *testing.T) {
	reluKernel := Unary(vector.Relu)
	for _, workers := range []int{1, 2, 3, 4, 7} {
		x := tensor.FromSlice(tensor.DimsFrom(5), []float32{-1, 0, 1, -2, 2})
		r := tensor.New(tensor.DimsFrom(5), tensor.RELU, x)
		runPartitioned(t, workers, reluKernel, r)
		assert.Equal(t, []float32{0, 0, 1, 0, 2}, r.Data()[:5], "workers=%d", workers)
	}
}

func TestScalarMulSMatchesScenario2(t *testing.T) {
	mulsKernel := Scalar(vector.MulS)
	x := tensor.FromSlice(tensor.DimsFrom(3), []float32{1, 2, 3})
	r := tensor.New(tensor.DimsFrom(3), tensor.MULS, x)
	r.Params.Scalar = 2.5
	runPartitioned(t, 2, mulsKernel, r)
	assert.Equal(t, []float32{2.5, 5.0, 7.5}, r.Data()[:3])
}

func TestSumScenario3(t *testing.T) {
	x := tensor.FromSlice(tensor.DimsFrom(2, 2), []float32{1, 2, 3, 4})
	r := tensor.New(tensor.DimsFrom(1), tensor.SUM, x)
	Sum(0, 4, r)
	Sum(1, 4, r)
	assert.Equal(t, float32(10), r.Data()[0])
}

func TestMeanScenario4ExactPrecision(t *testing.T) {
	data := make([]float32, 1000)
	for i := range data {
		data[i] = 1
	}
	x := tensor.FromSlice(tensor.DimsFrom(1000), data)
	r := tensor.New(tensor.DimsFrom(1), tensor.MEAN, x)
	Mean(0, 1, r)
	assert.Equal(t, float32(1), r.Data()[0])
}

func TestMinMax(t *testing.T) {
	x := tensor.FromSlice(tensor.DimsFrom(5), []float32{3, -1, 7, 2, -9})
	rMin := tensor.New(tensor.DimsFrom(1), tensor.MIN, x)
	rMax := tensor.New(tensor.DimsFrom(1), tensor.MAX, x)
	Min(0, 1, rMin)
	Max(0, 1, rMax)
	assert.Equal(t, float32(-9), rMin.Data()[0])
	assert.Equal(t, float32(7), rMax.Data()[0])
}

func TestReductionNotPartitioned(t *testing.T) {
	x := tensor.FromSlice(tensor.DimsFrom(4), []float32{1, 2, 3, 4})
	r := tensor.New(tensor.DimsFrom(1), tensor.SUM, x)
	// Only worker 0 contributes; others must no-op.
	Sum(1, 4, r)
	Sum(2, 4, r)
	Sum(3, 4, r)
	assert.Equal(t, float32(0), r.Data()[0])
	Sum(0, 4, r)
	assert.Equal(t, float32(10), r.Data()[0])
}

func TestMatMulScenario6(t *testing.T) {
	x := tensor.FromSlice(tensor.DimsFrom(2, 2), []float32{1, 2, 3, 4})
	y := tensor.FromSlice(tensor.DimsFrom(2, 2), []float32{5, 6, 7, 8})
	r := tensor.New(tensor.DimsFrom(2, 2), tensor.MATMUL, x, y)

	runPartitioned(t, 2, MatMul, r)
	assert.Equal(t, []float32{19, 22, 43, 50}, r.Data()[:4])
}

func TestMatMulThreadCountInvariance(t *testing.T) {
	x := tensor.FromSlice(tensor.DimsFrom(3, 2), []float32{1, 2, 3, 4, 5, 6})
	y := tensor.FromSlice(tensor.DimsFrom(2, 4), []float32{1, 0, 0, 1, 0, 1, 1, 0})

	var want []float32
	for _, workers := range []int{1, 2, 3, 5} {
		r := tensor.New(tensor.DimsFrom(3, 4), tensor.MATMUL, x, y)
		runPartitioned(t, workers, MatMul, r)
		got := append([]float32(nil), r.Data()[:12]...)
		if want == nil {
			want = got
		} else {
			assert.Equal(t, want, got, "workers=%d", workers)
		}
	}
}

func TestBroadcastAddScenario7(t *testing.T) {
	// Dims list the innermost (fastest-varying) axis first (§3), so a
	// conventional row-major (2 rows, 3 cols) layout with contiguous rows
	// is expressed here as (cols=3, rows=2): x.shape=(3,2)=[[1,2,3],[4,5,6]],
	// y.shape=(3,1)=[[10,20,30]] broadcasting along the row axis.
	add := Broadcast(vector.Add)
	x := tensor.FromSlice(tensor.DimsFrom(3, 2), []float32{1, 2, 3, 4, 5, 6})
	y := tensor.FromSlice(tensor.DimsFrom(3, 1), []float32{10, 20, 30})
	r := tensor.New(tensor.DimsFrom(3, 2), tensor.ADD, x, y)

	runPartitioned(t, 2, add, r)
	assert.Equal(t, []float32{11, 22, 33, 14, 25, 36}, r.Data()[:6])
}

func TestBroadcastEqualShapesMatchesPlainBinary(t *testing.T) {
	add := Broadcast(vector.Add)
	x := tensor.FromSlice(tensor.DimsFrom(2, 2), []float32{1, 2, 3, 4})
	y := tensor.FromSlice(tensor.DimsFrom(2, 2), []float32{10, 20, 30, 40})
	r := tensor.New(tensor.DimsFrom(2, 2), tensor.ADD, x, y)

	runPartitioned(t, 3, add, r)
	assert.Equal(t, []float32{11, 22, 33, 44}, r.Data()[:4])
}
