package tkernel

import (
	"github.com/itohio/cputensor/internal/kernel/vector"
	"github.com/itohio/cputensor/internal/shape"
	"github.com/itohio/cputensor/tensor"
)

// Softmax implements the row-wise (axis0) softmax: for each outer index,
// subtract the row's max for numerical stability, exponentiate via the
// vector package's pointwise primitive, sum, and normalize. Rows are
// independent of one another, so unlike the whole-tensor reductions of
// §4.3 this kernel IS partitioned across workers, over the same outer
// index space the broadcast kernels use.
func Softmax(workerIdx, workerCount int, node *tensor.Tensor) {
	x := node.Inputs[0]
	d0 := x.Shape[0]
	outer := shape.OuterSize(x.Shape)
	start, end := Partition(outer, workerIdx, workerCount)
	if end <= start {
		return
	}

	xData, rData := x.Data(), node.Data()
	s0, rs0 := x.Strides[0], node.Strides[0]
	scratchIn := make([]float32, d0)
	scratchOut := make([]float32, d0)

	for ri := start; ri < end; ri++ {
		idx := shape.DecomposeOuter(x.Shape, ri)
		xBase := outerOffset(x.Strides, idx)
		rBase := outerOffset(node.Strides, idx)

		row := gatherAxis0(xData, xBase, d0, s0, scratchIn)
		m := vector.Max(d0, row)

		out := scratchOut
		vector.SubS(d0, out, row, m)
		vector.SoftmaxPointwise(d0, out, out)
		sum := vector.SumF64(d0, out)
		vector.DivS(d0, out, out, float32(sum))

		if rs0 == 1 {
			copy(rData[rBase:rBase+d0], out)
		} else {
			for i := 0; i < d0; i++ {
				rData[rBase+i*rs0] = out[i]
			}
		}
	}
}
