// SPDX-License-Identifier: Unlicense OR MIT

package glx

import "gioui.org/glctx/internal/driver"

type (
	// Display is an Xlib Display pointer.
	Display  uintptr
	FBConfig uintptr
	Context  uintptr
	// Drawable is an X11 window id.
	Drawable uintptr
)

const (
	_None = 0
	_True = 1

	_GLX_DOUBLEBUFFER   = 5
	_GLX_RED_SIZE       = 8
	_GLX_GREEN_SIZE     = 9
	_GLX_BLUE_SIZE      = 10
	_GLX_ALPHA_SIZE     = 11
	_GLX_DEPTH_SIZE     = 12
	_GLX_STENCIL_SIZE   = 13
	_GLX_X_VISUAL_TYPE  = 0x22
	_GLX_TRUE_COLOR     = 0x8002
	_GLX_DRAWABLE_TYPE  = 0x8010
	_GLX_RENDER_TYPE    = 0x8011
	_GLX_X_RENDERABLE   = 0x8012
	_GLX_RGBA_TYPE      = 0x8014
	_GLX_WINDOW_BIT     = 0x1
	_GLX_RGBA_BIT       = 0x1
	_GLX_SAMPLE_BUFFERS = 100000
	_GLX_SAMPLES        = 100001

	_GLX_CONTEXT_MAJOR_VERSION_ARB = 0x2091
	_GLX_CONTEXT_MINOR_VERSION_ARB = 0x2092
	_GLX_CONTEXT_PROFILE_MASK_ARB  = 0x9126

	_GLX_CONTEXT_CORE_PROFILE_BIT_ARB          = 0x1
	_GLX_CONTEXT_COMPATIBILITY_PROFILE_BIT_ARB = 0x2
	_GLX_CONTEXT_ES_PROFILE_BIT_EXT            = 0x4
)

// WindowAttributes is the subset of XWindowAttributes used by the driver.
type WindowAttributes struct {
	Screen        int32
	Width, Height int32
}

// Lib is the subset of Xlib and GLX used by the driver. Attribute lists
// are terminated with None.
type Lib interface {
	QueryVersion(d Display) (major, minor int32, ok bool)
	// GetWindowAttributes wraps XGetWindowAttributes and
	// XScreenNumberOfScreen.
	GetWindowAttributes(d Display, w driver.Window) (WindowAttributes, bool)
	// ChooseFBConfig returns the matching configs. The native list is
	// freed before returning.
	ChooseFBConfig(d Display, screen int32, attribs []int32) []FBConfig
	GetFBConfigAttrib(d Display, cfg FBConfig, attr int32) (int32, bool)
	// VisualID returns the X visual of cfg, or 0 if it has none.
	VisualID(d Display, cfg FBConfig) uint32
	QueryExtensionsString(d Display, screen int32) string
	// GetProcAddress wraps glXGetProcAddressARB.
	GetProcAddress(name string) uintptr
	// CreateContextAttribs calls the glXCreateContextAttribsARB entry
	// point at proc.
	CreateContextAttribs(proc uintptr, d Display, cfg FBConfig, share Context, direct bool, attribs []int32) Context
	CreateNewContext(d Display, cfg FBConfig, renderType int32, share Context, direct bool) Context
	IsDirect(d Display, ctx Context) bool
	MakeContextCurrent(d Display, draw, read Drawable, ctx Context) bool
	SwapBuffers(d Display, draw Drawable)
	DestroyContext(d Display, ctx Context)
}
