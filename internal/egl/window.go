// SPDX-License-Identifier: Unlicense OR MIT

//go:build !android && !(linux && rpi)
// +build !android
// +build !linux !rpi

package egl

import "gioui.org/glctx/internal/driver"

func nativeDisplay(disp driver.Display) driver.Display {
	return disp
}

// prepareWindow is a no-op on desktop platforms: the native window is
// usable as is.
func prepareWindow(lib Lib, disp Display, cfg Config, w driver.Window) (driver.Window, func(), error) {
	return w, nil, nil
}
