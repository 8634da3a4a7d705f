// SPDX-License-Identifier: Unlicense OR MIT

package wgl

type (
	// HDC is a Windows device context handle.
	HDC   uintptr
	HWND  uintptr
	HGLRC uintptr
)

const (
	_PFD_DOUBLEBUFFER   = 0x00000001
	_PFD_DRAW_TO_WINDOW = 0x00000004
	_PFD_SUPPORT_OPENGL = 0x00000020
	_PFD_TYPE_RGBA      = 0
	_PFD_MAIN_PLANE     = 0

	_WGL_CONTEXT_MAJOR_VERSION_ARB = 0x2091
	_WGL_CONTEXT_MINOR_VERSION_ARB = 0x2092
	_WGL_CONTEXT_PROFILE_MASK_ARB  = 0x9126

	_WGL_CONTEXT_CORE_PROFILE_BIT_ARB          = 0x1
	_WGL_CONTEXT_COMPATIBILITY_PROFILE_BIT_ARB = 0x2
	_WGL_CONTEXT_ES_PROFILE_BIT_EXT            = 0x4
)

// PixelFormatDescriptor mirrors PIXELFORMATDESCRIPTOR (40 bytes).
type PixelFormatDescriptor struct {
	Size           uint16
	Version        uint16
	Flags          uint32
	PixelType      byte
	ColorBits      byte
	RedBits        byte
	RedShift       byte
	GreenBits      byte
	GreenShift     byte
	BlueBits       byte
	BlueShift      byte
	AlphaBits      byte
	AlphaShift     byte
	AccumBits      byte
	AccumRedBits   byte
	AccumGreenBits byte
	AccumBlueBits  byte
	AccumAlphaBits byte
	DepthBits      byte
	StencilBits    byte
	AuxBuffers     byte
	LayerType      byte
	Reserved       byte
	LayerMask      uint32
	VisibleMask    uint32
	DamageMask     uint32
}

// Lib is the subset of gdi32, opengl32 and user32 used by the driver.
// Attribute lists are terminated with 0.
type Lib interface {
	ChoosePixelFormat(hdc HDC, pfd *PixelFormatDescriptor) int32
	DescribePixelFormat(hdc HDC, format int32, pfd *PixelFormatDescriptor) bool
	SetPixelFormat(hdc HDC, format int32, pfd *PixelFormatDescriptor) bool
	CreateContext(hdc HDC) HGLRC
	MakeCurrent(hdc HDC, ctx HGLRC) bool
	DeleteContext(ctx HGLRC) bool
	// GetProcAddress resolves an entry point with wglGetProcAddress,
	// falling back to the exports of opengl32.dll. A context must be
	// current.
	GetProcAddress(name string) uintptr
	// CreateContextAttribs calls the wglCreateContextAttribsARB entry
	// point at proc.
	CreateContextAttribs(proc uintptr, hdc HDC, share HGLRC, attribs []int32) HGLRC
	// ExtensionsString calls the wglGetExtensionsStringARB entry point at
	// proc.
	ExtensionsString(proc uintptr, hdc HDC) string
	SwapBuffers(hdc HDC) bool
	WindowFromDC(hdc HDC) HWND
	ClientSize(hwnd HWND) (width, height int32, ok bool)
	LastError() uint32
}
