package tkernel

import "github.com/itohio/cputensor/tensor"

// UnaryVec is the shape every vector-package unary primitive matches.
type UnaryVec func(n int, o, x []float32)

// Unary builds a dispatch kernel for a unary operator: r.shape == x.shape,
// contiguous, partitioned across the flat element range per §4.2.
func Unary(fn UnaryVec) func(workerIdx, workerCount int, node *tensor.Tensor) {
	return func(workerIdx, workerCount int, node *tensor.Tensor) {
		x := node.Inputs[0]
		numel := node.Numel()
		start, end := Partition(numel, workerIdx, workerCount)
		if end <= start {
			return
		}
		fn(end-start, node.Data()[start:end], x.Data()[start:end])
	}
}

// ScalarVec is the shape every vector-package scalar-RHS primitive matches.
type ScalarVec func(n int, o, x []float32, s float32)

// Scalar builds a dispatch kernel for a scalar-RHS operator (ADDS, SUBS,
// MULS, DIVS), identically partitioned to Unary, with the scalar taken from
// op_params.
func Scalar(fn ScalarVec) func(workerIdx, workerCount int, node *tensor.Tensor) {
	return func(workerIdx, workerCount int, node *tensor.Tensor) {
		x := node.Inputs[0]
		numel := node.Numel()
		start, end := Partition(numel, workerIdx, workerCount)
		if end <= start {
			return
		}
		fn(end-start, node.Data()[start:end], x.Data()[start:end], node.Params.Scalar)
	}
}
