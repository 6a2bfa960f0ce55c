package tkernel

import (
	"math"

	"github.com/itohio/cputensor/internal/kernel/vector"
	"github.com/itohio/cputensor/internal/shape"
	"github.com/itohio/cputensor/tensor"
)

// gatherAxis0 returns the d0-element run of x starting at outer offset
// base, walking axis0 with stride s0. When s0 == 1 the run is already
// contiguous and is returned directly; otherwise it is gathered into
// scratch, since the vector primitives require a contiguous slice.
func gatherAxis0(x []float32, base, d0, s0 int, scratch []float32) []float32 {
	if s0 == 1 {
		return x[base : base+d0]
	}
	for i := 0; i < d0; i++ {
		scratch[i] = x[base+i*s0]
	}
	return scratch[:d0]
}

func outerOffset(strides shape.Dims, idx [shape.MaxDims - 1]int) int {
	off := 0
	for i, v := range idx {
		off += v * strides[i+1]
	}
	return off
}

// walkAxis0 invokes visit(run) once per outer index (dimensions 1..5) of x,
// where run is the d0-element slice along axis0 at that outer position.
func walkAxis0(x *tensor.Tensor, visit func(run []float32)) {
	d0 := x.Shape[0]
	s0 := x.Strides[0]
	outer := shape.OuterSize(x.Shape)
	data := x.Data()
	scratch := make([]float32, d0)
	for ri := 0; ri < outer; ri++ {
		idx := shape.DecomposeOuter(x.Shape, ri)
		base := outerOffset(x.Strides, idx)
		visit(gatherAxis0(data, base, d0, s0, scratch))
	}
}

// Sum, Mean, Min, Max are the whole-tensor reductions of §4.3. They are
// deliberately NOT partitioned across workers: only worker 0 performs the
// walk, the rest no-op, preserving the source's sequential reduction
// behavior (documented defect, §9 — parallelizing these would change
// floating-point association order and is left as an opt-in the dispatch
// table does not exercise).

func Sum(workerIdx, workerCount int, node *tensor.Tensor) {
	if workerIdx != 0 {
		return
	}
	x := node.Inputs[0]
	var total float64
	walkAxis0(x, func(run []float32) { total += vector.SumF64(len(run), run) })
	node.Data()[0] = float32(total)
}

func Mean(workerIdx, workerCount int, node *tensor.Tensor) {
	if workerIdx != 0 {
		return
	}
	x := node.Inputs[0]
	var total float64
	walkAxis0(x, func(run []float32) { total += vector.SumF64(len(run), run) })
	node.Data()[0] = float32(total / float64(x.Numel()))
}

func Min(workerIdx, workerCount int, node *tensor.Tensor) {
	if workerIdx != 0 {
		return
	}
	x := node.Inputs[0]
	m := float32(math.Inf(1))
	walkAxis0(x, func(run []float32) {
		v := vector.Min(len(run), run)
		if v < m {
			m = v
		}
	})
	node.Data()[0] = m
}

func Max(workerIdx, workerCount int, node *tensor.Tensor) {
	if workerIdx != 0 {
		return
	}
	x := node.Inputs[0]
	m := float32(math.Inf(-1))
	walkAxis0(x, func(run []float32) {
		v := vector.Max(len(run), run)
		if v > m {
			m = v
		}
	})
	node.Data()[0] = m
}
