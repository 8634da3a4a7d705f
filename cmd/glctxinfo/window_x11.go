// SPDX-License-Identifier: Unlicense OR MIT

//go:build (linux && !android) || freebsd

package main

import (
	"gioui.org/glctx"
	"gioui.org/glctx/internal/x11"
)

type x11Window struct {
	*x11.Window
}

func openWindow(cfg WindowConfig) (nativeWindow, error) {
	w, err := x11.Open(cfg.Display, cfg.Title, cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	return x11Window{w}, nil
}

func (w x11Window) Display() glctx.Display {
	return w.Window.Display()
}

func (w x11Window) Handle() glctx.Window {
	return w.ID()
}

// Poll reports true; glctxinfo selects no X events.
func (w x11Window) Poll() bool {
	return true
}
