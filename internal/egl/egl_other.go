// SPDX-License-Identifier: Unlicense OR MIT

//go:build !linux && !freebsd && !windows
// +build !linux,!freebsd,!windows

package egl

import "errors"

// Load reports that no system EGL library is known on this platform.
// Drivers built with an explicit Lib still work.
func Load() (Lib, error) {
	return nil, errors.New("egl: no EGL library on this platform")
}
