// SPDX-License-Identifier: Unlicense OR MIT

//go:build android || ((linux || freebsd) && !glx) || (windows && angle)

package glctx

import (
	"gioui.org/glctx/internal/driver"
	"gioui.org/glctx/internal/egl"
)

func defaultDriver() driver.Driver {
	return egl.New(nil)
}
