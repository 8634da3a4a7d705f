// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux || freebsd
// +build linux freebsd

package egl

import (
	"fmt"
	"sync"

	"github.com/ebitengine/purego"

	gunsafe "gioui.org/glctx/internal/unsafe"
)

var (
	_eglBindAPI             func(api uint32) uint32
	_eglChooseConfig        func(disp Display, attribs *int32, configs *Config, size int32, n *int32) uint32
	_eglCreateContext       func(disp Display, cfg Config, share Context, attribs *int32) Context
	_eglCreateWindowSurface func(disp Display, cfg Config, win uintptr, attribs *int32) Surface
	_eglDestroyContext      func(disp Display, ctx Context) uint32
	_eglDestroySurface      func(disp Display, surf Surface) uint32
	_eglGetConfigAttrib     func(disp Display, cfg Config, attr int32, val *int32) uint32
	_eglGetDisplay          func(native uintptr) Display
	_eglGetError            func() int32
	_eglGetProcAddress      func(name *byte) uintptr
	_eglInitialize          func(disp Display, major, minor *int32) uint32
	_eglMakeCurrent         func(disp Display, draw, read Surface, ctx Context) uint32
	_eglQueryString         func(disp Display, name int32) uintptr
	_eglQuerySurface        func(disp Display, surf Surface, attr int32, val *int32) uint32
	_eglSwapBuffers         func(disp Display, surf Surface) uint32
	_eglTerminate           func(disp Display) uint32
)

var (
	loadOnce sync.Once
	loadErr  error
)

// Load opens the system EGL library. The library is loaded once per
// process.
func Load() (Lib, error) {
	loadOnce.Do(func() {
		loadErr = loadLib()
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return nativeLib{}, nil
}

func loadLib() error {
	var lib uintptr
	var err error
	for _, name := range []string{"libEGL.so.1", "libEGL.so"} {
		lib, err = purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err == nil {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("egl: failed to load libEGL: %w", err)
	}
	procs := map[string]interface{}{
		"eglBindAPI":             &_eglBindAPI,
		"eglChooseConfig":        &_eglChooseConfig,
		"eglCreateContext":       &_eglCreateContext,
		"eglCreateWindowSurface": &_eglCreateWindowSurface,
		"eglDestroyContext":      &_eglDestroyContext,
		"eglDestroySurface":      &_eglDestroySurface,
		"eglGetConfigAttrib":     &_eglGetConfigAttrib,
		"eglGetDisplay":          &_eglGetDisplay,
		"eglGetError":            &_eglGetError,
		"eglGetProcAddress":      &_eglGetProcAddress,
		"eglInitialize":          &_eglInitialize,
		"eglMakeCurrent":         &_eglMakeCurrent,
		"eglQueryString":         &_eglQueryString,
		"eglQuerySurface":        &_eglQuerySurface,
		"eglSwapBuffers":         &_eglSwapBuffers,
		"eglTerminate":           &_eglTerminate,
	}
	for name, fn := range procs {
		if _, err := purego.Dlsym(lib, name); err != nil {
			return fmt.Errorf("egl: failed to locate %s: %w", name, err)
		}
		purego.RegisterLibFunc(fn, lib, name)
	}
	return nil
}

type nativeLib struct{}

func attribPtr(attribs []int32) *int32 {
	if len(attribs) == 0 {
		return nil
	}
	return &attribs[0]
}

func (nativeLib) GetDisplay(native uintptr) Display {
	return _eglGetDisplay(native)
}

func (nativeLib) Initialize(d Display) (int32, int32, bool) {
	var maj, min int32
	r := _eglInitialize(d, &maj, &min)
	return maj, min, r != 0
}

func (nativeLib) ChooseConfig(d Display, attribs []int32, configs []Config) (int32, bool) {
	var n int32
	var cfgs *Config
	if len(configs) > 0 {
		cfgs = &configs[0]
	}
	r := _eglChooseConfig(d, attribPtr(attribs), cfgs, int32(len(configs)), &n)
	return n, r != 0
}

func (nativeLib) GetConfigAttrib(d Display, cfg Config, attr int32) (int32, bool) {
	var v int32
	r := _eglGetConfigAttrib(d, cfg, attr, &v)
	return v, r != 0
}

func (nativeLib) BindAPI(api uint32) bool {
	return _eglBindAPI(api) != 0
}

func (nativeLib) CreateWindowSurface(d Display, cfg Config, win uintptr, attribs []int32) Surface {
	return _eglCreateWindowSurface(d, cfg, win, attribPtr(attribs))
}

func (nativeLib) CreateContext(d Display, cfg Config, share Context, attribs []int32) Context {
	return _eglCreateContext(d, cfg, share, attribPtr(attribs))
}

func (nativeLib) MakeCurrent(d Display, draw, read Surface, ctx Context) bool {
	return _eglMakeCurrent(d, draw, read, ctx) != 0
}

func (nativeLib) SwapBuffers(d Display, s Surface) bool {
	return _eglSwapBuffers(d, s) != 0
}

func (nativeLib) QuerySurface(d Display, s Surface, attr int32) (int32, bool) {
	var v int32
	r := _eglQuerySurface(d, s, attr, &v)
	return v, r != 0
}

func (nativeLib) DestroySurface(d Display, s Surface) bool {
	return _eglDestroySurface(d, s) != 0
}

func (nativeLib) DestroyContext(d Display, ctx Context) bool {
	return _eglDestroyContext(d, ctx) != 0
}

func (nativeLib) Terminate(d Display) bool {
	return _eglTerminate(d) != 0
}

func (nativeLib) GetError() int32 {
	return _eglGetError()
}

func (nativeLib) QueryString(d Display, name int32) string {
	return gunsafe.GoString(_eglQueryString(d, name))
}

func (nativeLib) GetProcAddress(name string) uintptr {
	return _eglGetProcAddress(gunsafe.CString(name))
}
