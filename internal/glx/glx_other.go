// SPDX-License-Identifier: Unlicense OR MIT

//go:build !((linux && !android) || freebsd || openbsd)
// +build !linux android
// +build !freebsd
// +build !openbsd

package glx

import "errors"

// Load reports that GLX is not available on this platform.
func Load() (Lib, error) {
	return nil, errors.New("glx: GLX is not supported on this platform")
}
