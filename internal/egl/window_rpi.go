// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux && rpi && !android
// +build linux,rpi,!android

package egl

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"gioui.org/glctx/internal/driver"
)

type vcRect struct {
	x, y, width, height int32
}

// dispmanxWindow mirrors EGL_DISPMANX_WINDOW_T.
type dispmanxWindow struct {
	element       uint32
	width, height int32
}

const lcd = 0

var (
	bcmOnce sync.Once
	bcmErr  error

	// The native window must outlive the EGL surface; EGL keeps a pointer
	// to it.
	nativeWindow dispmanxWindow

	_bcm_host_init                  func()
	_graphics_get_display_size      func(display uint16, width, height *uint32) int32
	_vc_dispmanx_display_open       func(device uint32) uint32
	_vc_dispmanx_display_close      func(display uint32) int32
	_vc_dispmanx_update_start       func(priority int32) uint32
	_vc_dispmanx_update_submit_sync func(update uint32) int32
	_vc_dispmanx_element_add        func(update, display uint32, layer int32, dst *vcRect, src uint32, srcRect *vcRect, protection uint32, alpha, clamp uintptr, transform uint32) uint32
	_vc_dispmanx_element_remove     func(update, element uint32) int32
)

func loadBCM() error {
	bcmOnce.Do(func() {
		lib, err := purego.Dlopen("libbcm_host.so", purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			bcmErr = fmt.Errorf("egl: failed to load libbcm_host.so: %w", err)
			return
		}
		purego.RegisterLibFunc(&_bcm_host_init, lib, "bcm_host_init")
		purego.RegisterLibFunc(&_graphics_get_display_size, lib, "graphics_get_display_size")
		purego.RegisterLibFunc(&_vc_dispmanx_display_open, lib, "vc_dispmanx_display_open")
		purego.RegisterLibFunc(&_vc_dispmanx_display_close, lib, "vc_dispmanx_display_close")
		purego.RegisterLibFunc(&_vc_dispmanx_update_start, lib, "vc_dispmanx_update_start")
		purego.RegisterLibFunc(&_vc_dispmanx_update_submit_sync, lib, "vc_dispmanx_update_submit_sync")
		purego.RegisterLibFunc(&_vc_dispmanx_element_add, lib, "vc_dispmanx_element_add")
		purego.RegisterLibFunc(&_vc_dispmanx_element_remove, lib, "vc_dispmanx_element_remove")
		_bcm_host_init()
	})
	return bcmErr
}

// nativeDisplay ignores disp: the VideoCore EGL only knows the default
// display.
func nativeDisplay(disp driver.Display) driver.Display {
	return 0
}

// prepareWindow adds a full screen dispmanx element on the LCD and
// replaces w with the resulting native window.
func prepareWindow(lib Lib, disp Display, cfg Config, w driver.Window) (driver.Window, func(), error) {
	if err := loadBCM(); err != nil {
		return 0, nil, err
	}
	var width, height uint32
	if _graphics_get_display_size(lcd, &width, &height) < 0 {
		return 0, nil, errors.New("unable to get screen size")
	}
	dst := vcRect{width: int32(width), height: int32(height)}
	// Source rectangles are in 16.16 fixed point.
	src := vcRect{width: int32(width) << 16, height: int32(height) << 16}
	display := _vc_dispmanx_display_open(lcd)
	update := _vc_dispmanx_update_start(0)
	element := _vc_dispmanx_element_add(update, display, 0, &dst, 0, &src, 0, 0, 0, 0)
	if _vc_dispmanx_update_submit_sync(update) != 0 || element == 0 {
		_vc_dispmanx_display_close(display)
		return 0, nil, errors.New("unable to set up the VideoCore display manager")
	}
	nativeWindow = dispmanxWindow{element: element, width: int32(width), height: int32(height)}
	release := func() {
		update := _vc_dispmanx_update_start(0)
		_vc_dispmanx_element_remove(update, element)
		_vc_dispmanx_update_submit_sync(update)
		_vc_dispmanx_display_close(display)
	}
	return driver.Window(uintptr(unsafe.Pointer(&nativeWindow))), release, nil
}
