// SPDX-License-Identifier: Unlicense OR MIT

package egl

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ebitengine/purego"

	"gioui.org/glctx/internal/driver"
)

var (
	androidOnce sync.Once
	androidErr  error

	_ANativeWindow_setBuffersGeometry func(win uintptr, width, height, format int32) int32
)

func loadAndroid() error {
	androidOnce.Do(func() {
		lib, err := purego.Dlopen("libandroid.so", purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			androidErr = fmt.Errorf("egl: failed to load libandroid.so: %w", err)
			return
		}
		purego.RegisterLibFunc(&_ANativeWindow_setBuffersGeometry, lib, "ANativeWindow_setBuffersGeometry")
	})
	return androidErr
}

func nativeDisplay(disp driver.Display) driver.Display {
	return disp
}

// prepareWindow sets the buffer format of the ANativeWindow to the native
// visual of cfg, keeping the window size.
func prepareWindow(lib Lib, disp Display, cfg Config, w driver.Window) (driver.Window, func(), error) {
	if err := loadAndroid(); err != nil {
		return 0, nil, err
	}
	format, ok := lib.GetConfigAttrib(disp, cfg, _EGL_NATIVE_VISUAL_ID)
	if !ok {
		return 0, nil, errors.New("eglGetConfigAttrib for EGL_NATIVE_VISUAL_ID failed")
	}
	if ret := _ANativeWindow_setBuffersGeometry(uintptr(w), 0, 0, format); ret != 0 {
		return 0, nil, fmt.Errorf("ANativeWindow_setBuffersGeometry failed: %d", ret)
	}
	return w, nil, nil
}
