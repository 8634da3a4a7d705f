// SPDX-License-Identifier: Unlicense OR MIT

//go:build !linux && !freebsd && !windows

package glctx

import "gioui.org/glctx/internal/driver"

// defaultDriver returns nil: there is no default backend on this
// platform. Init fails unless a backend is selected explicitly.
func defaultDriver() driver.Driver {
	return nil
}
