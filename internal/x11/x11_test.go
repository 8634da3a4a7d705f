// SPDX-License-Identifier: Unlicense OR MIT

//go:build (linux && !android) || freebsd

package x11

import (
	"os"
	"testing"
)

func TestOpenInvalidSize(t *testing.T) {
	for _, sz := range [][2]int{{0, 10}, {10, 0}, {-1, -1}} {
		if w, err := Open("", "glctx", sz[0], sz[1]); err == nil {
			w.Close()
			t.Errorf("Open(%dx%d) succeeded", sz[0], sz[1])
		}
	}
}

func TestOpen(t *testing.T) {
	if os.Getenv("DISPLAY") == "" {
		t.Skip("no X display")
	}
	w, err := Open("", "glctx test", 64, 48)
	if err != nil {
		t.Skipf("unable to open window: %v", err)
	}
	defer w.Close()
	if w.Display() == 0 {
		t.Error("nil display")
	}
	if w.ID() == 0 {
		t.Error("nil window id")
	}
	width, height, err := w.Size()
	if err != nil {
		t.Fatal(err)
	}
	if width <= 0 || height <= 0 {
		t.Errorf("size %dx%d", width, height)
	}
	w.Close()
	if w.ID() != 0 {
		t.Error("window id survives Close")
	}
	// Close is idempotent.
	w.Close()
}
