// SPDX-License-Identifier: Unlicense OR MIT

//go:build !windows
// +build !windows

package wgl

import "errors"

// Load reports that WGL is not available on this platform.
func Load() (Lib, error) {
	return nil, errors.New("wgl: WGL is only supported on Windows")
}
