package chain

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

var pkgLogger atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	pkgLogger.Store(&nop)
}

// SetLogger replaces the package logger used by wrappers whose Config has no
// Logger. The default discards everything.
func SetLogger(l zerolog.Logger) {
	pkgLogger.Store(&l)
}

func logger() *zerolog.Logger {
	return pkgLogger.Load()
}
