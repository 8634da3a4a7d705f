// SPDX-License-Identifier: Unlicense OR MIT

package egl

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	syscall "golang.org/x/sys/windows"
)

// On Windows the EGL driver runs on ANGLE's libEGL.dll.

var (
	libEGL                  = syscall.DLL{}
	_eglBindAPI             *syscall.Proc
	_eglChooseConfig        *syscall.Proc
	_eglCreateContext       *syscall.Proc
	_eglCreateWindowSurface *syscall.Proc
	_eglDestroyContext      *syscall.Proc
	_eglDestroySurface      *syscall.Proc
	_eglGetConfigAttrib     *syscall.Proc
	_eglGetDisplay          *syscall.Proc
	_eglGetError            *syscall.Proc
	_eglGetProcAddress      *syscall.Proc
	_eglInitialize          *syscall.Proc
	_eglMakeCurrent         *syscall.Proc
	_eglQueryString         *syscall.Proc
	_eglQuerySurface        *syscall.Proc
	_eglSwapBuffers         *syscall.Proc
	_eglTerminate           *syscall.Proc
)

var (
	loadOnce sync.Once
	loadErr  error
)

// Load opens libEGL.dll once per process.
func Load() (Lib, error) {
	loadOnce.Do(func() {
		loadErr = loadDLLs()
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return nativeLib{}, nil
}

func loadDLLs() error {
	if err := loadDLL(&libEGL, "libEGL.dll"); err != nil {
		return err
	}

	procs := map[string]**syscall.Proc{
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
	for name, proc := range procs {
		p, err := libEGL.FindProc(name)
		if err != nil {
			return fmt.Errorf("failed to locate %s in %s: %w", name, libEGL.Name, err)
		}
		*proc = p
	}
	return nil
}

func loadDLL(dll *syscall.DLL, name string) error {
	handle, err := syscall.LoadLibraryEx(name, 0, syscall.LOAD_LIBRARY_SEARCH_DEFAULT_DIRS)
	if err != nil {
		return fmt.Errorf("egl: failed to load %s: %v", name, err)
	}
	dll.Handle = handle
	dll.Name = name
	return nil
}

type nativeLib struct{}

func attribPtr(attribs []int32) uintptr {
	if len(attribs) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&attribs[0]))
}

func (nativeLib) GetDisplay(native uintptr) Display {
	d, _, _ := _eglGetDisplay.Call(native)
	return Display(d)
}

func (nativeLib) Initialize(d Display) (int32, int32, bool) {
	var maj, min int32
	r, _, _ := _eglInitialize.Call(uintptr(d), uintptr(unsafe.Pointer(&maj)), uintptr(unsafe.Pointer(&min)))
	return maj, min, r != 0
}

func (nativeLib) ChooseConfig(d Display, attribs []int32, configs []Config) (int32, bool) {
	var n int32
	var cfgs uintptr
	if len(configs) > 0 {
		cfgs = uintptr(unsafe.Pointer(&configs[0]))
	}
	r, _, _ := _eglChooseConfig.Call(uintptr(d), attribPtr(attribs), cfgs, uintptr(len(configs)), uintptr(unsafe.Pointer(&n)))
	issue34474KeepAlive(attribs)
	issue34474KeepAlive(configs)
	return n, r != 0
}

func (nativeLib) GetConfigAttrib(d Display, cfg Config, attr int32) (int32, bool) {
	var v int32
	r, _, _ := _eglGetConfigAttrib.Call(uintptr(d), uintptr(cfg), uintptr(attr), uintptr(unsafe.Pointer(&v)))
	return v, r != 0
}

func (nativeLib) BindAPI(api uint32) bool {
	r, _, _ := _eglBindAPI.Call(uintptr(api))
	return r != 0
}

func (nativeLib) CreateWindowSurface(d Display, cfg Config, win uintptr, attribs []int32) Surface {
	s, _, _ := _eglCreateWindowSurface.Call(uintptr(d), uintptr(cfg), win, attribPtr(attribs))
	issue34474KeepAlive(attribs)
	return Surface(s)
}

func (nativeLib) CreateContext(d Display, cfg Config, share Context, attribs []int32) Context {
	c, _, _ := _eglCreateContext.Call(uintptr(d), uintptr(cfg), uintptr(share), attribPtr(attribs))
	issue34474KeepAlive(attribs)
	return Context(c)
}

func (nativeLib) MakeCurrent(d Display, draw, read Surface, ctx Context) bool {
	r, _, _ := _eglMakeCurrent.Call(uintptr(d), uintptr(draw), uintptr(read), uintptr(ctx))
	return r != 0
}

func (nativeLib) SwapBuffers(d Display, s Surface) bool {
	r, _, _ := _eglSwapBuffers.Call(uintptr(d), uintptr(s))
	return r != 0
}

func (nativeLib) QuerySurface(d Display, s Surface, attr int32) (int32, bool) {
	var v int32
	r, _, _ := _eglQuerySurface.Call(uintptr(d), uintptr(s), uintptr(attr), uintptr(unsafe.Pointer(&v)))
	return v, r != 0
}

func (nativeLib) DestroySurface(d Display, s Surface) bool {
	r, _, _ := _eglDestroySurface.Call(uintptr(d), uintptr(s))
	return r != 0
}

func (nativeLib) DestroyContext(d Display, ctx Context) bool {
	r, _, _ := _eglDestroyContext.Call(uintptr(d), uintptr(ctx))
	return r != 0
}

func (nativeLib) Terminate(d Display) bool {
	r, _, _ := _eglTerminate.Call(uintptr(d))
	return r != 0
}

func (nativeLib) GetError() int32 {
	e, _, _ := _eglGetError.Call()
	return int32(e)
}

func (nativeLib) QueryString(d Display, name int32) string {
	r, _, _ := _eglQueryString.Call(uintptr(d), uintptr(name))
	return syscall.BytePtrToString((*byte)(unsafe.Pointer(r)))
}

func (nativeLib) GetProcAddress(name string) uintptr {
	cname, err := syscall.BytePtrFromString(name)
	if err != nil {
		return 0
	}
	p, _, _ := _eglGetProcAddress.Call(uintptr(unsafe.Pointer(cname)))
	return p
}

// issue34474KeepAlive calls runtime.KeepAlive as a
// workaround for golang.org/issue/34474.
func issue34474KeepAlive(v any) {
	runtime.KeepAlive(v)
}
