package tkernel

import "github.com/itohio/cputensor/tensor"

// Clone copies x into the equally-shaped output, partitioned over the flat
// element range like any other unary kernel.
func Clone(workerIdx, workerCount int, node *tensor.Tensor) {
	x := node.Inputs[0]
	numel := node.Numel()
	start, end := Partition(numel, workerIdx, workerCount)
	if end <= start {
		return
	}
	copy(node.Data()[start:end], x.Data()[start:end])
}

// Noop implements the structural no-ops (NOP, VIEW, TRANSPOSE, PERMUTE):
// metadata has already been updated by the graph layer, so the kernel does
// nothing.
func Noop(workerIdx, workerCount int, node *tensor.Tensor) {}
