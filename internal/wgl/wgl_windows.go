// SPDX-License-Identifier: Unlicense OR MIT

package wgl

import (
	"fmt"
	"runtime"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	gdi32    = windows.NewLazySystemDLL("gdi32.dll")
	opengl32 = windows.NewLazySystemDLL("opengl32.dll")
	user32   = windows.NewLazySystemDLL("user32.dll")

	_ChoosePixelFormat   = gdi32.NewProc("ChoosePixelFormat")
	_DescribePixelFormat = gdi32.NewProc("DescribePixelFormat")
	_SetPixelFormat      = gdi32.NewProc("SetPixelFormat")
	_SwapBuffers         = gdi32.NewProc("SwapBuffers")

	_wglCreateContext  = opengl32.NewProc("wglCreateContext")
	_wglDeleteContext  = opengl32.NewProc("wglDeleteContext")
	_wglGetProcAddress = opengl32.NewProc("wglGetProcAddress")
	_wglMakeCurrent    = opengl32.NewProc("wglMakeCurrent")

	_GetClientRect = user32.NewProc("GetClientRect")
	_WindowFromDC  = user32.NewProc("WindowFromDC")
)

var (
	loadOnce sync.Once
	loadErr  error
)

// Load resolves the WGL entry points once per process.
func Load() (Lib, error) {
	loadOnce.Do(func() {
		if unsafe.Sizeof(PixelFormatDescriptor{}) != 40 {
			loadErr = fmt.Errorf("wgl: PIXELFORMATDESCRIPTOR size mismatch: %d", unsafe.Sizeof(PixelFormatDescriptor{}))
			return
		}
		for _, p := range []*windows.LazyProc{
			_ChoosePixelFormat, _DescribePixelFormat, _SetPixelFormat, _SwapBuffers,
			_wglCreateContext, _wglDeleteContext, _wglGetProcAddress, _wglMakeCurrent,
			_GetClientRect, _WindowFromDC,
		} {
			if err := p.Find(); err != nil {
				loadErr = fmt.Errorf("wgl: missing procedure %q: %w", p.Name, err)
				return
			}
		}
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return nativeLib{}, nil
}

type nativeLib struct{}

type rect struct {
	Left, Top, Right, Bottom int32
}

func (nativeLib) ChoosePixelFormat(hdc HDC, pfd *PixelFormatDescriptor) int32 {
	r, _, _ := _ChoosePixelFormat.Call(uintptr(hdc), uintptr(unsafe.Pointer(pfd)))
	return int32(r)
}

func (nativeLib) DescribePixelFormat(hdc HDC, format int32, pfd *PixelFormatDescriptor) bool {
	r, _, _ := _DescribePixelFormat.Call(uintptr(hdc), uintptr(format), unsafe.Sizeof(*pfd), uintptr(unsafe.Pointer(pfd)))
	return r != 0
}

func (nativeLib) SetPixelFormat(hdc HDC, format int32, pfd *PixelFormatDescriptor) bool {
	r, _, _ := _SetPixelFormat.Call(uintptr(hdc), uintptr(format), uintptr(unsafe.Pointer(pfd)))
	return r != 0
}

func (nativeLib) CreateContext(hdc HDC) HGLRC {
	r, _, _ := _wglCreateContext.Call(uintptr(hdc))
	return HGLRC(r)
}

func (nativeLib) MakeCurrent(hdc HDC, ctx HGLRC) bool {
	r, _, _ := _wglMakeCurrent.Call(uintptr(hdc), uintptr(ctx))
	return r != 0
}

func (nativeLib) DeleteContext(ctx HGLRC) bool {
	r, _, _ := _wglDeleteContext.Call(uintptr(ctx))
	return r != 0
}

func (nativeLib) GetProcAddress(name string) uintptr {
	cname, err := windows.BytePtrFromString(name)
	if err != nil {
		return 0
	}
	p, _, _ := _wglGetProcAddress.Call(uintptr(unsafe.Pointer(cname)))
	// Some drivers return small sentinel values instead of NULL.
	switch int(p) {
	case 0, 1, 2, 3, -1:
	default:
		return p
	}
	// OpenGL 1.1 functions are only exported by opengl32.dll.
	proc := opengl32.NewProc(name)
	if proc.Find() != nil {
		return 0
	}
	return proc.Addr()
}

func (nativeLib) CreateContextAttribs(proc uintptr, hdc HDC, share HGLRC, attribs []int32) HGLRC {
	r, _, _ := syscall.SyscallN(proc, uintptr(hdc), uintptr(share), uintptr(unsafe.Pointer(&attribs[0])))
	runtime.KeepAlive(attribs)
	return HGLRC(r)
}

func (nativeLib) ExtensionsString(proc uintptr, hdc HDC) string {
	r, _, _ := syscall.SyscallN(proc, uintptr(hdc))
	return windows.BytePtrToString((*byte)(unsafe.Pointer(r)))
}

func (nativeLib) SwapBuffers(hdc HDC) bool {
	r, _, _ := _SwapBuffers.Call(uintptr(hdc))
	return r != 0
}

func (nativeLib) WindowFromDC(hdc HDC) HWND {
	r, _, _ := _WindowFromDC.Call(uintptr(hdc))
	return HWND(r)
}

func (nativeLib) ClientSize(hwnd HWND) (int32, int32, bool) {
	var r rect
	ok, _, _ := _GetClientRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&r)))
	if ok == 0 {
		return 0, 0, false
	}
	return r.Right - r.Left, r.Bottom - r.Top, true
}

func (nativeLib) LastError() uint32 {
	if errno, ok := windows.GetLastError().(syscall.Errno); ok {
		return uint32(errno)
	}
	return 0
}
