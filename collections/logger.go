package collections

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

var pkgLogger atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	pkgLogger.Store(&nop)
}

// SetLogger replaces the package logger. The default discards everything.
//
// Operators log at debug level when they force a lazy sequence into memory,
// and at warn level when a single-pass sequence is traversed twice.
func SetLogger(l zerolog.Logger) {
	pkgLogger.Store(&l)
}

func logger() *zerolog.Logger {
	return pkgLogger.Load()
}

// materialized logs a forced materialization on behalf of op.
func materialized[K comparable, V any](op string, s Sequence[K, V], c *Collection[K, V]) {
	if _, already := s.(*Collection[K, V]); already {
		return
	}
	logger().Debug().
		Str("op", op).
		Int("count", c.Count()).
		Msg("lazy sequence materialized")
}
