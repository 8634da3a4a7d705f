// SPDX-License-Identifier: Unlicense OR MIT

//go:build (linux && !android) || freebsd || openbsd
// +build linux,!android freebsd openbsd

package glx

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"gioui.org/glctx/internal/driver"
	gunsafe "gioui.org/glctx/internal/unsafe"
)

// xWindowAttributes mirrors the Xlib XWindowAttributes struct.
type xWindowAttributes struct {
	X, Y               int32
	Width, Height      int32
	BorderWidth        int32
	Depth              int32
	Visual             uintptr
	Root               uintptr
	Class              int32
	BitGravity         int32
	WinGravity         int32
	BackingStore       int32
	BackingPlanes      uint64
	BackingPixel       uint64
	SaveUnder          int32
	Colormap           uintptr
	MapInstalled       int32
	MapState           int32
	AllEventMasks      int64
	YourEventMask      int64
	DoNotPropagateMask int64
	OverrideRedirect   int32
	Screen             uintptr
}

var (
	_XGetWindowAttributes  func(dpy Display, w uintptr, attrs *xWindowAttributes) int32
	_XScreenNumberOfScreen func(screen uintptr) int32
	_XFree                 func(p uintptr) int32

	_glXQueryVersion          func(dpy Display, major, minor *int32) int32
	_glXChooseFBConfig        func(dpy Display, screen int32, attribs *int32, n *int32) uintptr
	_glXGetFBConfigAttrib     func(dpy Display, cfg FBConfig, attr int32, val *int32) int32
	_glXGetVisualFromFBConfig func(dpy Display, cfg FBConfig) uintptr
	_glXQueryExtensionsString func(dpy Display, screen int32) uintptr
	_glXGetProcAddressARB     func(name *byte) uintptr
	_glXCreateNewContext      func(dpy Display, cfg FBConfig, renderType int32, share Context, direct int32) Context
	_glXIsDirect              func(dpy Display, ctx Context) int32
	_glXMakeContextCurrent    func(dpy Display, draw, read Drawable, ctx Context) int32
	_glXSwapBuffers           func(dpy Display, draw Drawable)
	_glXDestroyContext        func(dpy Display, ctx Context)
)

var (
	loadOnce sync.Once
	loadErr  error
)

// Load opens libX11 and libGL once per process.
func Load() (Lib, error) {
	loadOnce.Do(func() {
		loadErr = loadLibs()
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return nativeLib{}, nil
}

func dlopen(names ...string) (uintptr, error) {
	var err error
	for _, name := range names {
		var lib uintptr
		lib, err = purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err == nil {
			return lib, nil
		}
	}
	return 0, err
}

func register(lib uintptr, procs map[string]interface{}) error {
	for name, fn := range procs {
		if _, err := purego.Dlsym(lib, name); err != nil {
			return fmt.Errorf("glx: failed to locate %s: %w", name, err)
		}
		purego.RegisterLibFunc(fn, lib, name)
	}
	return nil
}

func loadLibs() error {
	x11, err := dlopen("libX11.so.6", "libX11.so")
	if err != nil {
		return fmt.Errorf("glx: failed to load libX11: %w", err)
	}
	gl, err := dlopen("libGL.so.1", "libGL.so")
	if err != nil {
		return fmt.Errorf("glx: failed to load libGL: %w", err)
	}
	err = register(x11, map[string]interface{}{
		"XGetWindowAttributes":  &_XGetWindowAttributes,
		"XScreenNumberOfScreen": &_XScreenNumberOfScreen,
		"XFree":                 &_XFree,
	})
	if err != nil {
		return err
	}
	return register(gl, map[string]interface{}{
		"glXQueryVersion":          &_glXQueryVersion,
		"glXChooseFBConfig":        &_glXChooseFBConfig,
		"glXGetFBConfigAttrib":     &_glXGetFBConfigAttrib,
		"glXGetVisualFromFBConfig": &_glXGetVisualFromFBConfig,
		"glXQueryExtensionsString": &_glXQueryExtensionsString,
		"glXGetProcAddressARB":     &_glXGetProcAddressARB,
		"glXCreateNewContext":      &_glXCreateNewContext,
		"glXIsDirect":              &_glXIsDirect,
		"glXMakeContextCurrent":    &_glXMakeContextCurrent,
		"glXSwapBuffers":           &_glXSwapBuffers,
		"glXDestroyContext":        &_glXDestroyContext,
	})
}

type nativeLib struct{}

func cbool(b bool) uintptr {
	if b {
		return 1
	}
	return 0
}

func (nativeLib) QueryVersion(d Display) (int32, int32, bool) {
	var maj, min int32
	r := _glXQueryVersion(d, &maj, &min)
	return maj, min, r != 0
}

func (nativeLib) GetWindowAttributes(d Display, w driver.Window) (WindowAttributes, bool) {
	var attrs xWindowAttributes
	if _XGetWindowAttributes(d, uintptr(w), &attrs) == 0 {
		return WindowAttributes{}, false
	}
	return WindowAttributes{
		Screen: _XScreenNumberOfScreen(attrs.Screen),
		Width:  attrs.Width,
		Height: attrs.Height,
	}, true
}

func (nativeLib) ChooseFBConfig(d Display, screen int32, attribs []int32) []FBConfig {
	var n int32
	p := _glXChooseFBConfig(d, screen, &attribs[0], &n)
	if p == 0 {
		return nil
	}
	defer _XFree(p)
	// GLXFBConfig is a pointer, so the list may be freed while the
	// configs are in use.
	return append([]FBConfig(nil), gunsafe.SliceOf[FBConfig](p, int(n))...)
}

func (nativeLib) GetFBConfigAttrib(d Display, cfg FBConfig, attr int32) (int32, bool) {
	var v int32
	// Success is 0.
	r := _glXGetFBConfigAttrib(d, cfg, attr, &v)
	return v, r == 0
}

func (nativeLib) VisualID(d Display, cfg FBConfig) uint32 {
	vi := _glXGetVisualFromFBConfig(d, cfg)
	if vi == 0 {
		return 0
	}
	defer _XFree(vi)
	// XVisualInfo starts with a Visual pointer followed by the VisualID.
	return uint32(gunsafe.SliceOf[uintptr](vi, 2)[1])
}

func (nativeLib) QueryExtensionsString(d Display, screen int32) string {
	return gunsafe.GoString(_glXQueryExtensionsString(d, screen))
}

func (nativeLib) GetProcAddress(name string) uintptr {
	return _glXGetProcAddressARB(gunsafe.CString(name))
}

func (nativeLib) CreateContextAttribs(proc uintptr, d Display, cfg FBConfig, share Context, direct bool, attribs []int32) Context {
	r, _, _ := purego.SyscallN(proc,
		uintptr(d), uintptr(cfg), uintptr(share), cbool(direct),
		uintptr(unsafe.Pointer(&attribs[0])))
	runtime.KeepAlive(attribs)
	return Context(r)
}

func (nativeLib) CreateNewContext(d Display, cfg FBConfig, renderType int32, share Context, direct bool) Context {
	return _glXCreateNewContext(d, cfg, renderType, share, int32(cbool(direct)))
}

func (nativeLib) IsDirect(d Display, ctx Context) bool {
	return _glXIsDirect(d, ctx) != 0
}

func (nativeLib) MakeContextCurrent(d Display, draw, read Drawable, ctx Context) bool {
	return _glXMakeContextCurrent(d, draw, read, ctx) != 0
}

func (nativeLib) SwapBuffers(d Display, draw Drawable) {
	_glXSwapBuffers(d, draw)
}

func (nativeLib) DestroyContext(d Display, ctx Context) {
	_glXDestroyContext(d, ctx)
}
