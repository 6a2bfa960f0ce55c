// Package tkernel implements the N-D tensor kernels: the stride-aware
// wrappers around the contiguous vector primitives that add worker
// partitioning, broadcasting, whole-tensor reductions, and matrix
// multiplication. Every exported kernel has the
// func(workerIdx, workerCount int, node *tensor.Tensor) shape the dispatch
// table and thread pool expect.
package tkernel

// Partition computes the half-open [start, end) range of a flat index space
// of size numel assigned to worker workerIdx of workerCount, per §4.2's
// ceiling-chunk rule: chunk = ceil(numel/workerCount).
func Partition(numel, workerIdx, workerCount int) (start, end int) {
	if workerCount <= 0 {
		workerCount = 1
	}
	chunk := (numel + workerCount - 1) / workerCount
	start = workerIdx * chunk
	end = start + chunk
	if end > numel {
		end = numel
	}
	if end < start {
		end = start
	}
	return start, end
}
