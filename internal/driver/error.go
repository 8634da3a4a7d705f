// SPDX-License-Identifier: Unlicense OR MIT

package driver

// Error is a glctx failure kind. A successful operation returns a nil
// error, never ErrNone.
type Error uint8

const (
	ErrNone Error = iota
	// ErrMemory reports an allocation failure.
	ErrMemory
	// ErrDisplay reports a display acquisition or handshake failure.
	ErrDisplay
	// ErrConfig reports that no matching config or pixel format exists.
	ErrConfig
	// ErrWindow reports a platform window preparation failure.
	ErrWindow
	// ErrSurface reports a drawing surface creation failure.
	ErrSurface
	// ErrContext reports a rendering context creation failure, including
	// a failed legacy fallback.
	ErrContext
	// ErrBind reports a make-current or release failure.
	ErrBind
	// ErrProfile reports that the native system rejected the profile.
	ErrProfile
)

var errorNames = [...]string{
	ErrNone:    "GLCTX_ERROR_NONE",
	ErrMemory:  "GLCTX_ERROR_MEMORY",
	ErrDisplay: "GLCTX_ERROR_DISPLAY",
	ErrConfig:  "GLCTX_ERROR_CONFIG",
	ErrWindow:  "GLCTX_ERROR_WINDOW",
	ErrSurface: "GLCTX_ERROR_SURFACE",
	ErrContext: "GLCTX_ERROR_CONTEXT",
	ErrBind:    "GLCTX_ERROR_BIND",
	ErrProfile: "GLCTX_ERROR_API",
}

// Name returns the stable identifier of e.
func (e Error) Name() string {
	if int(e) < len(errorNames) {
		return errorNames[e]
	}
	return "GLCTX_ERROR_UNKNOWN"
}

func (e Error) Error() string {
	switch e {
	case ErrNone:
		return "glctx: no error"
	case ErrMemory:
		return "glctx: out of memory"
	case ErrDisplay:
		return "glctx: display initialization failed"
	case ErrConfig:
		return "glctx: no matching config"
	case ErrWindow:
		return "glctx: window configuration failed"
	case ErrSurface:
		return "glctx: surface creation failed"
	case ErrContext:
		return "glctx: context creation failed"
	case ErrBind:
		return "glctx: context binding failed"
	case ErrProfile:
		return "glctx: profile not supported"
	default:
		return "glctx: unknown error"
	}
}
