// SPDX-License-Identifier: Unlicense OR MIT

//go:build (!linux && !freebsd && !windows) || android

package main

import (
	"fmt"
	"runtime"
)

func openWindow(cfg WindowConfig) (nativeWindow, error) {
	return nil, fmt.Errorf("no native window support on %s", runtime.GOOS)
}
