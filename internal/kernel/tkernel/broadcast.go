package tkernel

import (
	"github.com/itohio/cputensor/internal/shape"
	"github.com/itohio/cputensor/tensor"
)

// BinaryVec is the shape every vector-package elementwise binary primitive
// matches.
type BinaryVec func(n int, o, x, y []float32)

// Broadcast builds the dispatch kernel for ADD/SUB/MUL/DIV, the sole
// broadcasting rule of §4.4: r.shape == x.shape; y is broadcast-compatible
// with x (each axis of y equals x's or is 1). x and r are assumed
// contiguous along axis0, as they always are for freshly allocated output
// and primary-operand tensors in this backend.
//
// The outer-5 index space (dimensions 1..5) is partitioned across workers
// exactly as in Partition; each worker handles a contiguous run of outer
// indices.
func Broadcast(fn BinaryVec) func(workerIdx, workerCount int, node *tensor.Tensor) {
	return func(workerIdx, workerCount int, node *tensor.Tensor) {
		x, y := node.Inputs[0], node.Inputs[1]
		d := x.Shape
		e := y.Shape
		d0, e0 := d[0], e[0]

		outer := shape.OuterSize(d)
		start, end := Partition(outer, workerIdx, workerCount)
		if end <= start {
			return
		}

		xData, yData, rData := x.Data(), y.Data(), node.Data()
		ys0 := y.Strides[0]

		for ri := start; ri < end; ri++ {
			idx := shape.DecomposeOuter(d, ri)

			var yIdx [shape.MaxDims - 1]int
			for k := range idx {
				yIdx[k] = idx[k] % e[k+1]
			}

			xBase := outerOffset(x.Strides, idx)
			rBase := outerOffset(node.Strides, idx)
			yBase := outerOffset(y.Strides, yIdx)

			if ys0 == 1 {
				rep := d0 / e0
				xo, ro := xBase, rBase
				for k := 0; k < rep; k++ {
					fn(e0, rData[ro:ro+e0], xData[xo:xo+e0], yData[yBase:yBase+e0])
					xo += e0
					ro += e0
				}
				continue
			}

			for i := 0; i < d0; i++ {
				yAddr := yBase + (i%e0)*ys0
				fn(1, rData[rBase+i:rBase+i+1], xData[xBase+i:xBase+i+1], yData[yAddr:yAddr+1])
			}
		}
	}
}
