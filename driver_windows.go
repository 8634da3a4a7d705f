// SPDX-License-Identifier: Unlicense OR MIT

//go:build !angle

package glctx

import (
	"gioui.org/glctx/internal/driver"
	"gioui.org/glctx/internal/wgl"
)

func defaultDriver() driver.Driver {
	return wgl.New(nil, nil)
}
