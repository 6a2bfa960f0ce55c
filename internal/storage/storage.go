// Package storage implements the aligned host buffer backing every tensor:
// component E of the backend, §4.8 of the design. Allocation is tiered —
// small and medium buffers are served from a recycling pool so that the
// tight ADD/MULS/RELU-style kernels in the test suite don't pay a fresh
// allocation every call, while large buffers fall back to an anonymous
// memory mapping, which is page-aligned by construction and avoids holding
// the pool's recycled arenas hostage to a single oversized tensor.
package storage

import (
	"unsafe"

	"github.com/edsrzf/mmap-go"
	pool "github.com/libp2p/go-buffer-pool"

	"github.com/itohio/cputensor/internal/obslog"
)

// Alignment is the minimum alignment guaranteed for every allocation, per
// the design's alloc_aligned(size, 16) contract.
const Alignment = 16

// mmapThreshold is the size, in bytes, at or above which a buffer is backed by an
// anonymous mapping instead of the pool. Chosen well above any tensor used
// in the kernel tests but small enough that a "pool stress" run (scenario
// 8) never crosses it.
const mmapThreshold = 4 << 20

type tier int

const (
	tierPooled tier = iota
	tierMapped
)

// Buffer is a storage buffer: a raw aligned allocation plus the tiny vtable
// of set/copy_in/copy_out operations the kernels and the device facade use
// to move bytes in and out of it.
type Buffer struct {
	raw  []byte // underlying pool allocation before alignment trimming
	base []byte // exactly size bytes, aligned to Alignment
	size int
	tier tier
	mm   mmap.MMap
}

// AllocAligned allocates a zero-initialized buffer of size bytes aligned to
// Alignment. Allocation failure is a programmer-contract violation per the
// error-handling design and is fatal.
func AllocAligned(size int) *Buffer {
	if size <= 0 {
		obslog.Fatal("storage: alloc_aligned called with non-positive size %d", size)
	}
	if size >= mmapThreshold {
		return allocMapped(size)
	}
	return allocPooled(size)
}

func allocPooled(size int) *Buffer {
	raw := pool.Get(size + Alignment)
	base := alignUp(raw, Alignment)
	for i := range base[:size] {
		base[i] = 0
	}
	return &Buffer{raw: raw, base: base[:size:size], size: size, tier: tierPooled}
}

func allocMapped(size int) *Buffer {
	mm, err := mmap.MapRegion(nil, size, mmap.RDWR, mmap.ANON, 0)
	if err != nil {
		obslog.Fatal("storage: anonymous mmap of %d bytes failed: %v", size, err)
	}
	return &Buffer{base: []byte(mm), size: size, tier: tierMapped, mm: mm}
}

func alignUp(b []byte, align int) []byte {
	if len(b) == 0 {
		obslog.Fatal("storage: alignUp called on empty allocation")
	}
	addr := uintptr(unsafe.Pointer(&b[0]))
	rem := int(addr % uintptr(align))
	if rem == 0 {
		return b
	}
	return b[align-rem:]
}

// Size returns the buffer's size in bytes.
func (b *Buffer) Size() int { return b.size }

// Bytes returns the buffer's backing bytes.
func (b *Buffer) Bytes() []byte { return b.base }

// Float32 reinterprets the buffer as a float32 slice of size/4 elements.
// The buffer's alignment guarantee (≥16 bytes) keeps this a valid view on
// every platform the backend targets.
func (b *Buffer) Float32() []float32 {
	if b.size == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&b.base[0])), b.size/4)
}

// Set fills base[offset:size) with value.
func (b *Buffer) Set(offset int, value byte) {
	b.checkRange(offset, b.size-offset)
	row := b.base[offset:b.size]
	for i := range row {
		row[i] = value
	}
}

// CopyIn copies src into base starting at offset; precondition offset+len(src) <= size.
func (b *Buffer) CopyIn(offset int, src []byte) {
	b.checkRange(offset, len(src))
	copy(b.base[offset:offset+len(src)], src)
}

// CopyOut copies base[offset:offset+len(dst)) into dst.
func (b *Buffer) CopyOut(offset int, dst []byte) {
	b.checkRange(offset, len(dst))
	copy(dst, b.base[offset:offset+len(dst)])
}

func (b *Buffer) checkRange(offset, n int) {
	if offset < 0 || n < 0 || offset+n > b.size {
		obslog.Fatal("storage: out-of-bounds access offset=%d n=%d size=%d", offset, n, b.size)
	}
}

// Free releases the buffer back to its tier. Not safe to call more than
// once, and not safe to use the buffer afterward.
func (b *Buffer) Free() {
	switch b.tier {
	case tierPooled:
		pool.Put(b.raw)
	case tierMapped:
		if err := b.mm.Unmap(); err != nil {
			obslog.Log.Warn().Err(err).Msg("storage: munmap failed")
		}
	}
	b.base = nil
}
