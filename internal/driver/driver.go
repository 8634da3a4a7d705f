// SPDX-License-Identifier: Unlicense OR MIT

// Package driver defines the contract shared by the glctx backends: the
// portable profile and attribute vocabulary, the error kinds and the
// Driver interface every native backend implements.
package driver

// Display is a native display handle: an Xlib Display pointer, an
// EGLNativeDisplayType or a Windows HDC.
type Display uintptr

// Window is a native window handle: an X11 Window id, an ANativeWindow
// pointer, a wl_egl_window pointer or a Windows HWND.
type Window uintptr

// Profile is the requested rendering API variant.
type Profile uint8

const (
	ProfileES Profile = iota
	ProfileOpenGL
	ProfileCore
	ProfileCompat
)

// Attrib is a portable config attribute code. AttribNone terminates a
// portable attribute list and is never translated.
type Attrib int32

const (
	AttribNone Attrib = iota
	AttribRedSize
	AttribGreenSize
	AttribBlueSize
	AttribAlphaSize
	AttribDepthSize
	AttribStencilSize

	// NumAttribs is the number of translatable attribute codes.
	NumAttribs = int(AttribStencilSize)
)

// Attr is a portable (code, value) pair.
type Attr struct {
	Key   Attrib
	Value int32
}

// Driver is a native backend. Methods return Error kinds; native error
// codes are reported through the logger only.
//
// The lifecycle ordering is enforced by the caller: Open first, Release
// last, Activate only with a config obtained from the same Driver.
type Driver interface {
	// Open acquires the native display and performs the backend handshake.
	Open(d Display, w Window, p Profile, major, minor int) error
	// ChooseConfig selects a config matching the portable attributes.
	ChooseConfig(attrs []Attr) (uintptr, error)
	// ChooseNativeConfig selects a config matching a terminated list of
	// native attributes, passed through unmodified.
	ChooseNativeConfig(native []int32) (uintptr, error)
	// QueryConfig returns the value of attr for cfg, or -1.
	QueryConfig(cfg uintptr, attr Attrib) int
	// Activate creates the surface and the rendering context and binds
	// them to the calling thread. A nil ctxAttrs selects the backend
	// defaults.
	Activate(cfg uintptr, w Window, ctxAttrs []int32) error
	NativeContext() uintptr
	// ProcAddress resolves a client API entry point, or returns 0.
	ProcAddress(name string) uintptr
	// Size reports the drawable size in pixels.
	Size() (width, height int, ok bool)
	Flip()
	Bind() error
	Unbind() error
	// Release frees every native resource still owned. It must be safe to
	// call in any state and more than once.
	Release()
}

func (p Profile) String() string {
	switch p {
	case ProfileES:
		return "ES"
	case ProfileOpenGL:
		return "OpenGL"
	case ProfileCore:
		return "Core"
	case ProfileCompat:
		return "Compat"
	default:
		return "Unknown"
	}
}

func (a Attrib) String() string {
	switch a {
	case AttribNone:
		return "None"
	case AttribRedSize:
		return "RedSize"
	case AttribGreenSize:
		return "GreenSize"
	case AttribBlueSize:
		return "BlueSize"
	case AttribAlphaSize:
		return "AlphaSize"
	case AttribDepthSize:
		return "DepthSize"
	case AttribStencilSize:
		return "StencilSize"
	default:
		return "Unknown"
	}
}
