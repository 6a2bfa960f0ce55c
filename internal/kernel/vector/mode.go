// Package vector implements the contiguous 1-D numerical kernels: the
// elementwise binary/scalar/unary families and the whole-vector reductions.
// Every elementwise kernel has a scalar reference path and a "wide" path
// that processes four lanes per loop iteration; the reductions have a single
// scalar loop. Selection between the two elementwise paths is a
// package-level capability flag rather than a build tag, so a caller can
// flip it at startup once CPU features are known, mirroring how the source
// picks a translation unit at load time without requiring cgo or assembly.
package vector

import "github.com/itohio/cputensor/internal/obslog"

// MathMode selects between library-accurate and approximate transcendental
// kernels.
type MathMode int

const (
	// Precise routes exp/tanh/sin/cos/log/softmax/sigmoid/silu/gelu through
	// github.com/chewxy/math32, the library-accurate float32 math used
	// throughout the reference stack.
	Precise MathMode = iota
	// Approximate routes the same functions through the bounded-ulp
	// polynomial approximations documented in §4.1 of the specification.
	Approximate
)

// Width selects how many lanes a kernel processes per loop iteration.
type Width int

const (
	// WidthScalar processes one element per iteration.
	WidthScalar Width = iota
	// WidthWide processes four elements per iteration (loop-unrolled; the
	// closest pure-Go approximation of a 4-lane SIMD specialization).
	WidthWide
)

var (
	mathMode = Precise
	width    = WidthWide
)

// SetMathMode sets the process-wide transcendental math mode. Call once at
// startup; it is not safe to change while kernels are in flight.
func SetMathMode(m MathMode) {
	mathMode = m
	obslog.Log.Debug().Int("mode", int(m)).Msg("vector: math mode set")
}

// MathModeActive reports the active transcendental math mode.
func MathModeActive() MathMode { return mathMode }

// SetWidth overrides the lane width used by the elementwise kernels. Intended
// for tests and benchmarks; production callers should rely on the default.
func SetWidth(w Width) { width = w }

// WidthActive reports the active lane width.
func WidthActive() Width { return width }
