// Package device implements the facade (component F): it owns a worker
// pool and exposes execute_forward/execute_backward over the dispatch
// tables, plus alloc_storage/free_storage for callers that want raw
// buffers without going through tensor.New.
package device

import (
	"runtime"

	"github.com/itohio/cputensor/internal/kernel/dispatch"
	"github.com/itohio/cputensor/internal/pool"
	"github.com/itohio/cputensor/tensor"
)

// Descriptor is the device construction input (§6): ThreadCount == 0 means
// "use hardware concurrency".
type Descriptor struct {
	ThreadCount uint32
}

// Handle is the device handle external interface of §6.
type Handle struct {
	Name string

	pool *pool.Pool
}

// Open constructs a device handle from a descriptor, starting its worker
// pool immediately.
func Open(name string, desc Descriptor) *Handle {
	workers := int(desc.ThreadCount)
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Handle{
		Name: name,
		pool: pool.New(pool.WithWorkers(workers)),
	}
}

// ExecuteForward dispatches node's operator across the pool via the
// forward table.
func (h *Handle) ExecuteForward(node *tensor.Tensor) {
	kernel := dispatch.Lookup(dispatch.ForwardTable, node.Op)
	h.pool.ParallelCompute(kernel, node)
}

// ExecuteBackward is fatal-unimplemented per §6/§9: the backward dispatch
// table is all fatal stubs, surfacing a clear diagnostic rather than
// silently running a forward kernel as if it were a gradient.
func (h *Handle) ExecuteBackward(node *tensor.Tensor) {
	kernel := dispatch.Lookup(dispatch.BackwardTable, node.Op)
	h.pool.ParallelCompute(kernel, node)
}

// AllocStorage allocates a fresh, zeroed tensor.Storage of numel float32
// elements. Allocation failure is fatal (internal/storage.AllocAligned).
func (h *Handle) AllocStorage(numel int) *tensor.Storage {
	return tensor.NewStorage(numel)
}

// FreeStorage releases a storage buffer obtained from AllocStorage.
func (h *Handle) FreeStorage(s *tensor.Storage) {
	if s == nil {
		return
	}
	s.Free()
}

// Close shuts the device's worker pool down, joining every spawned
// goroutine. Safe to call once; calling ExecuteForward/ExecuteBackward
// afterward is a programmer error.
func (h *Handle) Close() {
	h.pool.Close()
}

// NumWorkers reports the device's fixed worker count.
func (h *Handle) NumWorkers() int { return h.pool.NumWorkers() }
