package access

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
// Paths log at trace level when they short-circuit on a nil value.
func SetLogger(l zerolog.Logger) {
	pkgLogger.Store(&l)
}

func logger() *zerolog.Logger {
	return pkgLogger.Load()
}
