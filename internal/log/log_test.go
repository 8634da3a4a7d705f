// SPDX-License-Identifier: Unlicense OR MIT

package log

import (
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaultDisabled(t *testing.T) {
	Set(nil)
	if Enabled() {
		t.Error("default logger reports enabled")
	}
	if Logger() == nil {
		t.Fatal("Logger() returned nil")
	}
	// Must not panic.
	Logger().Debug("discarded")
}

func TestSetLogger(t *testing.T) {
	t.Cleanup(func() { Set(nil) })
	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))
	if !Enabled() {
		t.Fatal("Enabled() = false after Set")
	}
	Logger().Info("hello", zap.Int("n", 3))
	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if e := entries[0]; e.Message != "hello" || e.LoggerName != "glctx" {
		t.Errorf("got entry %q from %q", e.Message, e.LoggerName)
	}
	Set(nil)
	if Enabled() {
		t.Error("Enabled() = true after Set(nil)")
	}
}

func TestSetFunc(t *testing.T) {
	t.Cleanup(func() { Set(nil) })
	var lines []string
	SetFunc(func(format string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, args...))
	})
	if !Enabled() {
		t.Fatal("Enabled() = false after SetFunc")
	}
	Logger().Debug("initialised display", zap.Int32("major", 1))
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	l := lines[0]
	if !strings.HasSuffix(l, "\n") {
		t.Errorf("line %q lacks a trailing newline", l)
	}
	for _, want := range []string{"debug", "glctx", "initialised display", `"major": 1`} {
		if !strings.Contains(l, want) {
			t.Errorf("line %q does not contain %q", l, want)
		}
	}
	SetFunc(nil)
	if Enabled() {
		t.Error("Enabled() = true after SetFunc(nil)")
	}
}
