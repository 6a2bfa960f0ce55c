// Package obslog wires a single process-wide zerolog logger used for the
// fatal diagnostics, math-mode changes and storage warnings the kernel
// backend emits. The thread pool does not log.
package obslog

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// Log is the backend's logger: a caller-annotated console writer, matching
// the minimal logger wrapper used across the reference stack.
var Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Caller().Logger()

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

// Fatal logs a programmer-contract violation (bad shape, unsupported
// operator, allocation failure, ...) and panics. Per the backend's error
// taxonomy these are not recoverable by kernel code; panic lets an embedding
// process or test still decide whether to recover, while the default
// behavior is to bring the process down.
func Fatal(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	Log.Error().Msg(msg)
	panic(msg)
}
