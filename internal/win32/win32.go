// SPDX-License-Identifier: Unlicense OR MIT

//go:build windows

// Package win32 opens a bare Win32 window with a private device context
// for glctx clients that do not bring their own toolkit.
package win32

import (
	"fmt"
	"os"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"gioui.org/glctx/internal/driver"
)

const (
	_CS_OWNDC   = 0x0020
	_CS_HREDRAW = 0x0002
	_CS_VREDRAW = 0x0001

	_WS_OVERLAPPEDWINDOW = 0x00CF0000
	_WS_CLIPSIBLINGS     = 0x04000000
	_WS_CLIPCHILDREN     = 0x02000000
	_SW_SHOW             = 5
	_CW_USEDEFAULT       = 0x80000000

	_WM_CLOSE   = 0x0010
	_WM_DESTROY = 0x0002
	_PM_REMOVE  = 0x0001

	_IDC_ARROW = 32512
)

type wndClassEx struct {
	cbSize        uint32
	style         uint32
	lpfnWndProc   uintptr
	cbClsExtra    int32
	cbWndExtra    int32
	hInstance     windows.Handle
	hIcon         windows.Handle
	hCursor       windows.Handle
	hbrBackground windows.Handle
	lpszMenuName  *uint16
	lpszClassName *uint16
	hIconSm       windows.Handle
}

type msg struct {
	hwnd     windows.HWND
	message  uint32
	wParam   uintptr
	lParam   uintptr
	time     uint32
	pt       struct{ x, y int32 }
	lPrivate uint32
}

type rect struct {
	left, top, right, bottom int32
}

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	_RegisterClassExW = user32.NewProc("RegisterClassExW")
	_CreateWindowExW  = user32.NewProc("CreateWindowExW")
	_DefWindowProcW   = user32.NewProc("DefWindowProcW")
	_DestroyWindow    = user32.NewProc("DestroyWindow")
	_ShowWindow       = user32.NewProc("ShowWindow")
	_GetClientRect    = user32.NewProc("GetClientRect")
	_PeekMessageW     = user32.NewProc("PeekMessageW")
	_TranslateMessage = user32.NewProc("TranslateMessage")
	_DispatchMessageW = user32.NewProc("DispatchMessageW")
	_GetDC            = user32.NewProc("GetDC")
	_ReleaseDC        = user32.NewProc("ReleaseDC")
	_LoadCursorW      = user32.NewProc("LoadCursorW")

	_GetModuleHandleW = kernel32.NewProc("GetModuleHandleW")
)

var (
	// The class name is unique per process so CS_OWNDC classes never
	// collide with another copy of the program.
	className = fmt.Sprintf("GlctxWindow_%d", os.Getpid())

	registerOnce sync.Once
	registerErr  error

	windowsMu sync.Mutex
	// open maps live window handles to their Window for the window
	// procedure.
	open = map[windows.HWND]*Window{}
)

// Window is a top-level window and its private device context.
type Window struct {
	hwnd    windows.HWND
	hdc     uintptr
	running bool
}

func winErr(op string, err error) error {
	if errno, ok := err.(syscall.Errno); ok && errno != 0 {
		return fmt.Errorf("win32: %s failed: %w", op, errno)
	}
	return fmt.Errorf("win32: %s failed", op)
}

func register() error {
	registerOnce.Do(func() {
		cls, err := windows.UTF16PtrFromString(className)
		if err != nil {
			registerErr = err
			return
		}
		inst, _, _ := _GetModuleHandleW.Call(0)
		cursor, _, _ := _LoadCursorW.Call(0, _IDC_ARROW)
		wc := wndClassEx{
			style:         _CS_OWNDC | _CS_HREDRAW | _CS_VREDRAW,
			lpfnWndProc:   windows.NewCallback(windowProc),
			hInstance:     windows.Handle(inst),
			hCursor:       windows.Handle(cursor),
			lpszClassName: cls,
		}
		wc.cbSize = uint32(unsafe.Sizeof(wc))
		if r, _, err := _RegisterClassExW.Call(uintptr(unsafe.Pointer(&wc))); r == 0 {
			registerErr = winErr("RegisterClassExW", err)
		}
	})
	return registerErr
}

// Open creates and shows a width by height window titled title. The
// window belongs to the calling thread, which must stay locked for the
// lifetime of the window.
func Open(title string, width, height int) (*Window, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("win32: invalid window size %dx%d", width, height)
	}
	if err := register(); err != nil {
		return nil, err
	}
	cls, _ := windows.UTF16PtrFromString(className)
	name, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return nil, err
	}
	inst, _, _ := _GetModuleHandleW.Call(0)
	hwnd, _, err := _CreateWindowExW.Call(
		0,
		uintptr(unsafe.Pointer(cls)),
		uintptr(unsafe.Pointer(name)),
		_WS_OVERLAPPEDWINDOW|_WS_CLIPSIBLINGS|_WS_CLIPCHILDREN,
		_CW_USEDEFAULT, _CW_USEDEFAULT,
		uintptr(width), uintptr(height),
		0, 0, inst, 0,
	)
	if hwnd == 0 {
		return nil, winErr("CreateWindowExW", err)
	}
	hdc, _, err := _GetDC.Call(hwnd)
	if hdc == 0 {
		_DestroyWindow.Call(hwnd)
		return nil, winErr("GetDC", err)
	}
	w := &Window{hwnd: windows.HWND(hwnd), hdc: hdc, running: true}
	windowsMu.Lock()
	open[w.hwnd] = w
	windowsMu.Unlock()
	_ShowWindow.Call(hwnd, _SW_SHOW)
	return w, nil
}

// HDC returns the device context handed to the WGL and EGL drivers.
func (w *Window) HDC() driver.Display {
	return driver.Display(w.hdc)
}

// HWND returns the window handle.
func (w *Window) HWND() driver.Window {
	return driver.Window(w.hwnd)
}

// Size returns the client area size.
func (w *Window) Size() (int, int, error) {
	var r rect
	if ok, _, err := _GetClientRect.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(&r))); ok == 0 {
		return 0, 0, winErr("GetClientRect", err)
	}
	return int(r.right - r.left), int(r.bottom - r.top), nil
}

// Poll dispatches pending messages and reports whether the window is
// still open.
func (w *Window) Poll() bool {
	var m msg
	for w.running {
		r, _, _ := _PeekMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0, _PM_REMOVE)
		if r == 0 {
			break
		}
		_TranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		_DispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}
	return w.running
}

// Close releases the device context and destroys the window.
func (w *Window) Close() {
	if w.hdc != 0 {
		_ReleaseDC.Call(uintptr(w.hwnd), w.hdc)
		w.hdc = 0
	}
	if w.hwnd != 0 {
		_DestroyWindow.Call(uintptr(w.hwnd))
		w.forget()
	}
	w.running = false
}

func (w *Window) forget() {
	windowsMu.Lock()
	delete(open, w.hwnd)
	windowsMu.Unlock()
	w.hwnd = 0
}

func windowProc(hwnd, msg, wParam, lParam uintptr) uintptr {
	switch msg {
	case _WM_CLOSE:
		windowsMu.Lock()
		w := open[windows.HWND(hwnd)]
		windowsMu.Unlock()
		if w != nil {
			w.running = false
		}
		return 0
	case _WM_DESTROY:
		return 0
	}
	r, _, _ := _DefWindowProcW.Call(hwnd, msg, wParam, lParam)
	return r
}
