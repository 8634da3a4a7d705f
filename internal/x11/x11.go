// SPDX-License-Identifier: Unlicense OR MIT

//go:build (linux && !android) || freebsd

// Package x11 opens an X11 window for glctx clients that do not bring
// their own toolkit. The drawable is created over the X protocol; the
// Xlib display pointer handed to EGL and GLX comes from libX11.
package x11

import (
	"errors"
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
	"github.com/ebitengine/purego"
	"go.uber.org/zap"

	"gioui.org/glctx/internal/driver"
	"gioui.org/glctx/internal/log"
	gunsafe "gioui.org/glctx/internal/unsafe"
)

// Window is a mapped top-level X11 window.
type Window struct {
	xu   *xgbutil.XUtil
	win  *xwindow.Window
	disp uintptr
}

var (
	_XOpenDisplay  func(name *byte) uintptr
	_XCloseDisplay func(dpy uintptr) int32

	loadOnce sync.Once
	loadErr  error
)

func loadXlib() error {
	loadOnce.Do(func() {
		var h uintptr
		for _, name := range []string{"libX11.so.6", "libX11.so"} {
			h, loadErr = purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
			if loadErr == nil {
				break
			}
		}
		if loadErr != nil {
			loadErr = fmt.Errorf("x11: %w", loadErr)
			return
		}
		purego.RegisterLibFunc(&_XOpenDisplay, h, "XOpenDisplay")
		purego.RegisterLibFunc(&_XCloseDisplay, h, "XCloseDisplay")
	})
	return loadErr
}

// Open connects to the named X display, or $DISPLAY when name is empty,
// and maps a width by height window titled title.
func Open(name, title string, width, height int) (*Window, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("x11: invalid window size %dx%d", width, height)
	}
	if err := loadXlib(); err != nil {
		return nil, err
	}
	var cname *byte
	if name != "" {
		cname = gunsafe.CString(name)
	}
	disp := _XOpenDisplay(cname)
	if disp == 0 {
		return nil, errors.New("x11: XOpenDisplay failed")
	}
	xu, err := xgbutil.NewConnDisplay(name)
	if err != nil {
		_XCloseDisplay(disp)
		return nil, fmt.Errorf("x11: %w", err)
	}
	w := &Window{xu: xu, disp: disp}
	if err := w.create(title, width, height); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

func (w *Window) create(title string, width, height int) error {
	conn := w.xu.Conn()
	screen := w.xu.Screen()
	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return fmt.Errorf("x11: %w", err)
	}
	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		w.xu.RootWin(),
		0, 0,
		uint16(width), uint16(height),
		0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{screen.BlackPixel, xproto.EventMaskStructureNotify | xproto.EventMaskExposure},
	).Check()
	if err != nil {
		return fmt.Errorf("x11: create window: %w", err)
	}
	w.win = xwindow.New(w.xu, wid)
	if err := ewmh.WmNameSet(w.xu, wid, title); err != nil {
		// Not every window manager speaks EWMH; fall back to WM_NAME.
		log.Logger().Debug("_NET_WM_NAME not set", zap.Error(err))
		if err := icccm.WmNameSet(w.xu, wid, title); err != nil {
			log.Logger().Warn("unable to set window title", zap.Error(err))
		}
	}
	w.win.Map()
	// Round-trip so the window exists before Xlib references it.
	if _, err := xproto.GetGeometry(conn, xproto.Drawable(wid)).Reply(); err != nil {
		return fmt.Errorf("x11: map window: %w", err)
	}
	return nil
}

// Display returns the Xlib Display pointer.
func (w *Window) Display() driver.Display {
	return driver.Display(w.disp)
}

// ID returns the X window id.
func (w *Window) ID() driver.Window {
	if w.win == nil {
		return 0
	}
	return driver.Window(w.win.Id)
}

// Size returns the current window geometry.
func (w *Window) Size() (int, int, error) {
	if w.win == nil {
		return 0, 0, errors.New("x11: window closed")
	}
	g, err := w.win.Geometry()
	if err != nil {
		return 0, 0, fmt.Errorf("x11: %w", err)
	}
	return g.Width(), g.Height(), nil
}

// Close destroys the window and closes both connections. The GL context
// must have been terminated first.
func (w *Window) Close() {
	if w.win != nil {
		w.win.Destroy()
		w.win = nil
	}
	if w.xu != nil {
		w.xu.Conn().Close()
		w.xu = nil
	}
	if w.disp != 0 {
		_XCloseDisplay(w.disp)
		w.disp = 0
	}
}
