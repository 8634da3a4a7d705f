// SPDX-License-Identifier: Unlicense OR MIT

// Package log holds the process-wide logger of glctx. The default logger
// discards everything; installing another one takes effect immediately
// for subsequent calls.
package log

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type sink struct {
	logger  *zap.Logger
	enabled bool
}

var current atomic.Pointer[sink]

func init() {
	Set(nil)
}

// Set installs l as the process-wide logger. A nil l restores the no-op
// default.
func Set(l *zap.Logger) {
	if l == nil {
		current.Store(&sink{logger: zap.NewNop()})
		return
	}
	current.Store(&sink{logger: l.Named("glctx"), enabled: true})
}

// Func is a printf style logging function. Messages passed to it end in a
// newline.
type Func func(format string, args ...interface{})

// SetFunc installs fn as the process-wide logger. A nil fn restores the
// no-op default.
func SetFunc(fn Func) {
	if fn == nil {
		Set(nil)
		return
	}
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "level",
		NameKey:          "logger",
		EncodeLevel:      zapcore.LowercaseLevelEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		LineEnding:       zapcore.DefaultLineEnding,
		ConsoleSeparator: " ",
	})
	core := zapcore.NewCore(enc, zapcore.AddSync(funcWriter(fn)), zapcore.DebugLevel)
	Set(zap.New(core))
}

// Logger returns the current logger.
func Logger() *zap.Logger {
	return current.Load().logger
}

// Enabled reports whether a logger other than the no-op default is
// installed. Diagnostic work that only feeds the log is skipped when it
// is not.
func Enabled() bool {
	return current.Load().enabled
}

type funcWriter Func

func (w funcWriter) Write(p []byte) (int, error) {
	w("%s", p)
	return len(p), nil
}
