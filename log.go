// SPDX-License-Identifier: Unlicense OR MIT

package glctx

import (
	"go.uber.org/zap"

	"gioui.org/glctx/internal/log"
)

// SetLogger directs diagnostics to l. Diagnostics are discarded by
// default; a nil l restores the default. The logger may be replaced at
// any time.
func SetLogger(l *zap.Logger) {
	log.Set(l)
}

// SetLogFunction directs diagnostics to a printf style function such as
// log.Printf. Every message ends in a newline. A nil fn discards
// diagnostics.
func SetLogFunction(fn func(format string, args ...interface{})) {
	log.SetFunc(fn)
}
