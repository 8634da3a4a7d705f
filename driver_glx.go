// SPDX-License-Identifier: Unlicense OR MIT

//go:build ((linux && !android) || freebsd) && glx

package glctx

import (
	"gioui.org/glctx/internal/driver"
	"gioui.org/glctx/internal/glx"
)

func defaultDriver() driver.Driver {
	return glx.New(nil, nil)
}
