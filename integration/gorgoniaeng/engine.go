// Package gorgoniaeng adapts this backend's device.Handle into a
// gorgonia.org/tensor.Engine, grounded directly on
// csotherden-gorgonia-mps/mps: an engine that embeds tensor.StdEng and
// overrides MatMul, falling back to the standard engine for anything
// outside that backend's supported shapes and dtypes. Where the MPS engine
// offloads MatMul to Metal, this one offloads it to the worker-pool kernels
// in internal/kernel.
package gorgoniaeng

import (
	"fmt"

	gtensor "gorgonia.org/tensor"

	"github.com/itohio/cputensor/device"
	"github.com/itohio/cputensor/tensor"
)

// Eng is a tensor.Engine implementation that runs MatMul through a
// device.Handle instead of gorgonia's own CPU kernel, for callers that
// already hold a gorgonia.org/tensor graph and want this backend's
// worker-pool execution for matrix multiplication specifically. Every other
// operator falls back to the embedded StdEng, the same division of labor
// csotherden-gorgonia-mps/mps.MPSEng draws between its accelerated MatMul
// (and Sum) and everything else.
type Eng struct {
	gtensor.StdEng
	dev *device.Handle
}

var _ gtensor.Engine = (*Eng)(nil)

// New constructs an Eng backed by dev. dev's lifetime is the caller's
// responsibility; Eng never closes it.
func New(dev *device.Handle) *Eng {
	return &Eng{dev: dev}
}

// isRowMajor2D reports whether d is a 2D dense tensor with the standard
// row-major layout (strides = [cols, 1]) this adapter's fast path expects.
func isRowMajor2D(d *gtensor.Dense) bool {
	if d.Dims() != 2 {
		return false
	}
	shape, strides := d.Shape(), d.Strides()
	if len(shape) != 2 || len(strides) != 2 {
		return false
	}
	rows, cols := shape[0], shape[1]
	return strides[1] == 1 && strides[0] == cols && rows > 0 && cols > 0
}

// denseToRowMajor2DF32 materializes a 2D float32 Dense tensor's logical
// contents into a row-major contiguous []float32, aliasing the backing
// slice when possible.
func denseToRowMajor2DF32(d *gtensor.Dense) ([]float32, error) {
	if d.Dtype() != gtensor.Float32 {
		return nil, fmt.Errorf("gorgoniaeng: expected Float32, got %v", d.Dtype())
	}
	if d.Dims() != 2 {
		return nil, fmt.Errorf("gorgoniaeng: expected 2D tensor, got %dD", d.Dims())
	}
	shape := d.Shape()
	rows, cols := shape[0], shape[1]
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("gorgoniaeng: zero-sized matrix %v", shape)
	}

	data, ok := d.Data().([]float32)
	if !ok {
		return nil, fmt.Errorf("gorgoniaeng: backing is %T, want []float32", d.Data())
	}

	if !d.RequiresIterator() && isRowMajor2D(d) {
		need := rows * cols
		if len(data) < need {
			return nil, fmt.Errorf("gorgoniaeng: backing slice too small: have %d, need %d", len(data), need)
		}
		return data[:need], nil
	}

	buf := make([]float32, rows*cols)
	it := d.Iterator()
	for idx, e := it.Start(); !it.Done(); idx, e = it.Next() {
		if e != nil {
			return nil, fmt.Errorf("gorgoniaeng: iterator error: %w", e)
		}
		coord := it.Coord()
		buf[coord[0]*cols+coord[1]] = data[idx]
	}
	return buf, nil
}

// rowMajor2DToDenseF32 writes buf back into d's logical layout.
func rowMajor2DToDenseF32(buf []float32, d *gtensor.Dense) error {
	shape := d.Shape()
	rows, cols := shape[0], shape[1]
	data, ok := d.Data().([]float32)
	if !ok {
		return fmt.Errorf("gorgoniaeng: backing is %T, want []float32", d.Data())
	}

	if !d.RequiresIterator() && isRowMajor2D(d) {
		copy(data[:rows*cols], buf)
		return nil
	}

	it := d.Iterator()
	for idx, e := it.Start(); !it.Done(); idx, e = it.Next() {
		if e != nil {
			return fmt.Errorf("gorgoniaeng: iterator error: %w", e)
		}
		coord := it.Coord()
		data[idx] = buf[coord[0]*cols+coord[1]]
	}
	return nil
}

// MatMul offloads 2D float32 matrix multiplication to this backend's
// worker pool. Any non-dense operand, non-float32 dtype, or non-2D shape
// falls back to the embedded StdEng implementation, exactly as
// csotherden-gorgonia-mps/mps.MPSEng.MatMul falls back to its CPU path. A
// shape mismatch between a and b, or between them and prealloc, is returned
// as an error.
func (e *Eng) MatMul(a, b, prealloc gtensor.Tensor) error {
	da, okA := a.(*gtensor.Dense)
	db, okB := b.(*gtensor.Dense)
	dc, okC := prealloc.(*gtensor.Dense)
	if !okA || !okB || !okC {
		return e.StdEng.MatMul(a, b, prealloc)
	}
	if da.Dtype() != gtensor.Float32 || db.Dtype() != gtensor.Float32 || dc.Dtype() != gtensor.Float32 {
		return e.StdEng.MatMul(a, b, prealloc)
	}

	shapeA, shapeB, shapeC := da.Shape(), db.Shape(), dc.Shape()
	if len(shapeA) != 2 || len(shapeB) != 2 || len(shapeC) != 2 {
		return e.StdEng.MatMul(a, b, prealloc)
	}
	m, kA := shapeA[0], shapeA[1]
	kB, n := shapeB[0], shapeB[1]
	if kA != kB {
		return fmt.Errorf("gorgoniaeng: MatMul shape mismatch: a=%v, b=%v (inner dims %d vs %d)", shapeA, shapeB, kA, kB)
	}
	if shapeC[0] != m || shapeC[1] != n {
		return fmt.Errorf("gorgoniaeng: MatMul prealloc shape mismatch: expected [%d %d], got %v", m, n, shapeC)
	}

	abuf, err := denseToRowMajor2DF32(da)
	if err != nil {
		return e.StdEng.MatMul(a, b, prealloc)
	}
	bbuf, err := denseToRowMajor2DF32(db)
	if err != nil {
		return e.StdEng.MatMul(a, b, prealloc)
	}

	x := tensor.FromSlice(tensor.DimsFrom(m, kA), abuf)
	y := tensor.FromSlice(tensor.DimsFrom(kB, n), bbuf)
	r := tensor.New(tensor.DimsFrom(m, n), tensor.MATMUL, x, y)
	defer x.Storage.Free()
	defer y.Storage.Free()
	defer r.Storage.Free()

	e.dev.ExecuteForward(r)

	return rowMajor2DToDenseF32(r.Data()[:m*n], dc)
}
