// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"gioui.org/glctx"
	"gioui.org/glctx/internal/win32"
)

type win32Window struct {
	*win32.Window
}

func openWindow(cfg WindowConfig) (nativeWindow, error) {
	w, err := win32.Open(cfg.Title, cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	return win32Window{w}, nil
}

func (w win32Window) Display() glctx.Display {
	return w.HDC()
}

func (w win32Window) Handle() glctx.Window {
	return w.HWND()
}
