// Package tensor holds the node data model the kernel backend operates on:
// a dense float32 buffer, its six-dimensional shape and strides, the
// operator that produced it, and the (at most two) input tensors that
// operator consumes. It intentionally carries no autograd, no allocation
// policy beyond a thin storage wrapper, and no shape inference — those are
// the responsibility of the graph layer this backend plugs into.
package tensor

import (
	"github.com/itohio/cputensor/internal/obslog"
	"github.com/itohio/cputensor/internal/shape"
	"github.com/itohio/cputensor/internal/storage"
)

// MaxDims is the fixed rank of every tensor's shape and strides.
const MaxDims = shape.MaxDims

// Dims is a fixed-rank shape or stride vector, re-exported from the shared
// arithmetic package so callers outside internal/ don't need to import it
// directly to build a shape literal.
type Dims = shape.Dims

// Storage is the backing buffer of a tensor's elements: a thin float32 view
// over an aligned storage.Buffer.
type Storage struct {
	buf *storage.Buffer
}

// NewStorage allocates a fresh, zeroed, aligned buffer sized for numel
// float32 elements.
func NewStorage(numel int) *Storage {
	return &Storage{buf: storage.AllocAligned(numel * 4)}
}

// Data returns the storage's element slice.
func (s *Storage) Data() []float32 { return s.buf.Float32() }

// Free releases the underlying buffer. The Storage must not be used
// afterward.
func (s *Storage) Free() { s.buf.Free() }

// Params is the small scalar parameter block consumed by scalar-RHS
// variants (ADDS, SUBS, MULS, DIVS); op_params in the design.
type Params struct {
	Scalar float32
}

// maxOpInputs is the fixed arity of Tensor.Inputs: every kernel in this
// backend is at most binary.
const maxOpInputs = 2

// Tensor is a single computational node: pre-allocated output storage
// tagged with the operator that will fill it and the input tensors that
// operator reads.
type Tensor struct {
	Shape   Dims
	Strides Dims
	Storage *Storage
	Offset  int

	Op     Op
	Inputs [maxOpInputs]*Tensor
	Params Params
}

// Numel returns the element count implied by Shape.
func (t *Tensor) Numel() int { return t.Shape.Size() }

// Data returns the tensor's element slice starting at Offset.
func (t *Tensor) Data() []float32 {
	return t.Storage.Data()[t.Offset:]
}

// IsContiguous reports whether Strides match the canonical row-major layout
// for Shape.
func (t *Tensor) IsContiguous() bool { return shape.IsContiguous(t.Shape, t.Strides) }

// New allocates a fresh, contiguous, zero-initialized tensor of the given
// shape, tagged with op and up to two input tensors.
func New(dims Dims, op Op, inputs ...*Tensor) *Tensor {
	if len(inputs) > maxOpInputs {
		obslog.Fatal("tensor.New: at most %d op inputs supported, got %d", maxOpInputs, len(inputs))
	}
	t := &Tensor{
		Shape:   dims,
		Strides: shape.RowMajorStrides(dims),
		Storage: NewStorage(dims.Size()),
		Op:      op,
	}
	copy(t.Inputs[:], inputs)
	return t
}

// FromSlice builds a contiguous tensor from an existing float32 slice by
// copying it into freshly allocated aligned storage; data itself is not
// retained. data must hold exactly dims.Size() elements. Used by tests and
// callers that already own a correctly laid out buffer.
func FromSlice(dims Dims, data []float32) *Tensor {
	if len(data) != dims.Size() {
		obslog.Fatal("tensor.FromSlice: data length %d does not match shape size %d", len(data), dims.Size())
	}
	numel := dims.Size()
	st := NewStorage(numel)
	copy(st.Data(), data)
	return &Tensor{
		Shape:   dims,
		Strides: shape.RowMajorStrides(dims),
		Storage: st,
	}
}

// DimsFrom builds a Dims from a rank-≤6 list of dimension sizes, padding
// trailing axes with 1 per the fixed six-dimensional convention.
func DimsFrom(dims ...int) Dims {
	if len(dims) > MaxDims {
		obslog.Fatal("tensor.DimsFrom: rank %d exceeds MaxDims %d", len(dims), MaxDims)
	}
	var d Dims
	for i := range d {
		d[i] = 1
	}
	copy(d[:], dims)
	return d
}
