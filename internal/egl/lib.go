// SPDX-License-Identifier: Unlicense OR MIT

package egl

type (
	Display uintptr
	Config  uintptr
	Surface uintptr
	Context uintptr
)

// EGL_NO_* sentinels.
const (
	NoDisplay Display = 0
	NoSurface Surface = 0
	NoContext Context = 0
)

const (
	_EGL_ALPHA_SIZE                  = 0x3021
	_EGL_BLUE_SIZE                   = 0x3022
	_EGL_GREEN_SIZE                  = 0x3023
	_EGL_RED_SIZE                    = 0x3024
	_EGL_DEPTH_SIZE                  = 0x3025
	_EGL_STENCIL_SIZE                = 0x3026
	_EGL_NATIVE_VISUAL_ID            = 0x302e
	_EGL_NONE                        = 0x3038
	_EGL_RENDERABLE_TYPE             = 0x3040
	_EGL_CONFORMANT                  = 0x3042
	_EGL_HEIGHT                      = 0x3056
	_EGL_WIDTH                       = 0x3057
	_EGL_EXTENSIONS                  = 0x3055
	_EGL_CONTEXT_CLIENT_VERSION      = 0x3098
	_EGL_CONTEXT_MAJOR_VERSION       = 0x3098
	_EGL_CONTEXT_MINOR_VERSION       = 0x30fb
	_EGL_CONTEXT_OPENGL_PROFILE_MASK = 0x30fd
	_EGL_OPENGL_ES_API               = 0x30a0
	_EGL_OPENGL_API                  = 0x30a2

	_EGL_OPENGL_ES_BIT  = 0x1
	_EGL_OPENGL_ES2_BIT = 0x4
	_EGL_OPENGL_BIT     = 0x8

	_EGL_CONTEXT_OPENGL_CORE_PROFILE_BIT          = 0x1
	_EGL_CONTEXT_OPENGL_COMPATIBILITY_PROFILE_BIT = 0x2
)

// Lib is the subset of the EGL API used by the driver. Attribute lists
// are terminated with EGL_NONE.
type Lib interface {
	GetDisplay(native uintptr) Display
	Initialize(d Display) (major, minor int32, ok bool)
	// ChooseConfig stores up to len(configs) matching configs and returns
	// the number of configs stored, or the number of matches when configs
	// is nil.
	ChooseConfig(d Display, attribs []int32, configs []Config) (int32, bool)
	GetConfigAttrib(d Display, cfg Config, attr int32) (int32, bool)
	BindAPI(api uint32) bool
	CreateWindowSurface(d Display, cfg Config, win uintptr, attribs []int32) Surface
	CreateContext(d Display, cfg Config, share Context, attribs []int32) Context
	MakeCurrent(d Display, draw, read Surface, ctx Context) bool
	SwapBuffers(d Display, s Surface) bool
	QuerySurface(d Display, s Surface, attr int32) (int32, bool)
	DestroySurface(d Display, s Surface) bool
	DestroyContext(d Display, ctx Context) bool
	Terminate(d Display) bool
	GetError() int32
	QueryString(d Display, name int32) string
	GetProcAddress(name string) uintptr
}
