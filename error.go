// SPDX-License-Identifier: Unlicense OR MIT

package glctx

import (
	"errors"

	"gioui.org/glctx/internal/driver"
)

// Error is the kind of a glctx failure.
type Error = driver.Error

const (
	ErrMemory  = driver.ErrMemory
	ErrDisplay = driver.ErrDisplay
	ErrConfig  = driver.ErrConfig
	ErrWindow  = driver.ErrWindow
	ErrSurface = driver.ErrSurface
	ErrContext = driver.ErrContext
	ErrBind    = driver.ErrBind
	ErrProfile = driver.ErrProfile
)

// ErrorName returns the stable identifier of the kind of err, such as
// GLCTX_ERROR_CONFIG. A nil err is GLCTX_ERROR_NONE; errors that wrap no
// Error are GLCTX_ERROR_UNKNOWN.
func ErrorName(err error) string {
	if err == nil {
		return driver.ErrNone.Name()
	}
	var e Error
	if errors.As(err, &e) {
		return e.Name()
	}
	return "GLCTX_ERROR_UNKNOWN"
}
