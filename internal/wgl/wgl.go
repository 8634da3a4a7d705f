// SPDX-License-Identifier: Unlicense OR MIT

// Package wgl implements the glctx driver for WGL on Windows.
package wgl

import (
	"unsafe"

	"go.uber.org/zap"

	"gioui.org/glctx/internal/attrib"
	"gioui.org/glctx/internal/driver"
	"gioui.org/glctx/internal/extension"
	"gioui.org/glctx/internal/log"
	"gioui.org/glctx/internal/selector"
)

const (
	procCreateContext     = "wglCreateContextAttribsARB"
	procExtensionsString  = "wglGetExtensionsStringARB"
	extCreateContextES    = "WGL_EXT_create_context_es_profile"
	extCreateContextES2   = "WGL_EXT_create_context_es2_profile"
	pixelFormatDescriptor = int(unsafe.Sizeof(PixelFormatDescriptor{}))
)

// profileMasks maps profiles to WGL_CONTEXT_PROFILE_MASK_ARB values.
// Unqualified desktop OpenGL requests the core profile.
var profileMasks = [...]int32{
	driver.ProfileES:     _WGL_CONTEXT_ES_PROFILE_BIT_EXT,
	driver.ProfileOpenGL: _WGL_CONTEXT_CORE_PROFILE_BIT_ARB,
	driver.ProfileCore:   _WGL_CONTEXT_CORE_PROFILE_BIT_ARB,
	driver.ProfileCompat: _WGL_CONTEXT_COMPATIBILITY_PROFILE_BIT_ARB,
}

// ctxTable describes wglCreateContextAttribsARB lists. Config
// attributes have no native codes since pixel formats are requested
// through a PixelFormatDescriptor.
var ctxTable = attrib.Table{Terminator: 0}

// probe caches the WGL extensions and entry points for the process.
var probe extension.Probe

// Driver is a WGL backend. The device context belongs to the caller.
type Driver struct {
	lib   Lib
	probe *extension.Probe

	hdc  driver.Slot[HDC]
	ctx  driver.Slot[HGLRC]
	hwnd HWND

	profile      driver.Profile
	major, minor int
}

var _ driver.Driver = (*Driver)(nil)

// New returns a driver calling lib and caching extensions in p. A nil lib
// loads the system libraries when the driver is opened; a nil p selects
// the process-wide cache.
func New(lib Lib, p *extension.Probe) *Driver {
	if p == nil {
		p = &probe
	}
	return &Driver{lib: lib, probe: p}
}

func (d *Driver) Open(disp driver.Display, w driver.Window, p driver.Profile, major, minor int) error {
	if d.lib == nil {
		lib, err := Load()
		if err != nil {
			log.Logger().Error("failed to load WGL", zap.Error(err))
			return driver.ErrDisplay
		}
		d.lib = lib
	}
	if disp == 0 {
		log.Logger().Error("no device context")
		return driver.ErrDisplay
	}
	hdc := HDC(disp)
	d.hwnd = HWND(w)
	if d.hwnd == 0 {
		d.hwnd = d.lib.WindowFromDC(hdc)
	}
	d.hdc.Set(hdc)
	d.profile = p
	d.major, d.minor = major, minor
	return nil
}

func (d *Driver) ChooseConfig(attrs []driver.Attr) (uintptr, error) {
	hdc, ok := d.hdc.Get()
	if !ok {
		return 0, driver.ErrDisplay
	}
	pfd := PixelFormatDescriptor{
		Size:      uint16(pixelFormatDescriptor),
		Version:   1,
		Flags:     _PFD_DOUBLEBUFFER | _PFD_SUPPORT_OPENGL | _PFD_DRAW_TO_WINDOW,
		PixelType: _PFD_TYPE_RGBA,
		LayerType: _PFD_MAIN_PLANE,
	}
	var colorBits int32
	for _, a := range attrs[:attrib.CountPortable(attrs)] {
		switch a.Key {
		case driver.AttribRedSize, driver.AttribGreenSize, driver.AttribBlueSize, driver.AttribAlphaSize:
			colorBits += a.Value
		case driver.AttribDepthSize:
			pfd.DepthBits = byte(a.Value)
		case driver.AttribStencilSize:
			pfd.StencilBits = byte(a.Value)
		default:
			log.Logger().Error("bad attribute code", zap.Int32("code", int32(a.Key)))
			return 0, driver.ErrConfig
		}
	}
	pfd.ColorBits = selector.ColorBucket(colorBits)
	format := d.lib.ChoosePixelFormat(hdc, &pfd)
	if format == 0 {
		log.Logger().Error("ChoosePixelFormat failed", zap.Uint32("win32_error", d.lib.LastError()))
		return 0, driver.ErrConfig
	}
	log.Logger().Debug("chose pixel format",
		zap.Int32("format", format),
		zap.Uint8("color_bits", pfd.ColorBits),
		zap.Uint8("depth_bits", pfd.DepthBits),
		zap.Uint8("stencil_bits", pfd.StencilBits),
	)
	return uintptr(format), nil
}

// ChooseNativeConfig is not supported: pixel formats are described by a
// structure rather than an attribute list.
func (d *Driver) ChooseNativeConfig(native []int32) (uintptr, error) {
	log.Logger().Error("native config attributes are not supported by WGL")
	return 0, driver.ErrConfig
}

func (d *Driver) QueryConfig(cfg uintptr, a driver.Attrib) int {
	hdc, ok := d.hdc.Get()
	if !ok {
		return -1
	}
	var pfd PixelFormatDescriptor
	if !d.lib.DescribePixelFormat(hdc, int32(cfg), &pfd) {
		log.Logger().Error("DescribePixelFormat failed", zap.Uint32("win32_error", d.lib.LastError()))
		return -1
	}
	switch a {
	case driver.AttribRedSize, driver.AttribGreenSize, driver.AttribBlueSize, driver.AttribAlphaSize:
		return selector.ChannelBits(pfd.ColorBits)
	case driver.AttribDepthSize:
		return int(pfd.DepthBits)
	case driver.AttribStencilSize:
		return int(pfd.StencilBits)
	default:
		log.Logger().Error("bad attribute code", zap.Int32("code", int32(a)))
		return -1
	}
}

func (d *Driver) contextAttribs() []int32 {
	return []int32{
		_WGL_CONTEXT_PROFILE_MASK_ARB, profileMasks[d.profile],
		_WGL_CONTEXT_MAJOR_VERSION_ARB, int32(d.major),
		_WGL_CONTEXT_MINOR_VERSION_ARB, int32(d.minor),
		0,
	}
}

func (d *Driver) Activate(cfg uintptr, w driver.Window, ctxAttrs []int32) error {
	hdc, ok := d.hdc.Get()
	if !ok {
		return driver.ErrDisplay
	}
	if d.ctx.Valid() {
		log.Logger().Error("context already active")
		return driver.ErrContext
	}
	if ctxAttrs != nil {
		if _, err := ctxTable.Passthrough(ctxAttrs); err != nil {
			return driver.ErrContext
		}
	}
	if w != 0 {
		d.hwnd = HWND(w)
	}
	var pfd PixelFormatDescriptor
	if !d.lib.DescribePixelFormat(hdc, int32(cfg), &pfd) {
		log.Logger().Error("DescribePixelFormat failed", zap.Uint32("win32_error", d.lib.LastError()))
		return driver.ErrConfig
	}
	// The pixel format of a window is its drawing surface.
	if !d.lib.SetPixelFormat(hdc, int32(cfg), &pfd) {
		log.Logger().Error("SetPixelFormat failed", zap.Uint32("win32_error", d.lib.LastError()))
		return driver.ErrSurface
	}
	legacy := d.lib.CreateContext(hdc)
	if legacy == 0 {
		log.Logger().Error("wglCreateContext failed", zap.Uint32("win32_error", d.lib.LastError()))
		return driver.ErrContext
	}
	// Extension entry points are only available with a current context.
	if !d.lib.MakeCurrent(hdc, legacy) {
		log.Logger().Error("wglMakeCurrent failed", zap.Uint32("win32_error", d.lib.LastError()))
		d.lib.DeleteContext(legacy)
		return driver.ErrBind
	}
	ctx, err := d.upgrade(hdc, legacy, ctxAttrs)
	if err != nil {
		d.lib.MakeCurrent(hdc, 0)
		d.lib.DeleteContext(legacy)
		return err
	}
	d.ctx.Set(ctx)
	if ctx == legacy {
		return nil
	}
	d.lib.MakeCurrent(hdc, 0)
	d.lib.DeleteContext(legacy)
	return d.Bind()
}

// upgrade replaces the bound legacy context with one created by
// wglCreateContextAttribsARB. Desktop profiles keep the legacy context
// when the extension is unavailable or fails.
func (d *Driver) upgrade(hdc HDC, legacy HGLRC, ctxAttrs []int32) (HGLRC, error) {
	es := d.profile == driver.ProfileES
	proc := d.probe.Proc(procCreateContext, d.lib.GetProcAddress)
	if es {
		extProc := d.probe.Proc(procExtensionsString, d.lib.GetProcAddress)
		exts := d.probe.Extensions(func() string {
			if extProc == 0 {
				return ""
			}
			return d.lib.ExtensionsString(extProc, hdc)
		})
		if proc == 0 || !(extension.Has(exts, extCreateContextES2) || extension.Has(exts, extCreateContextES)) {
			log.Logger().Error(extCreateContextES2+" not supported (required for OpenGL ES)",
				zap.Bool("create_context", proc != 0))
			return 0, driver.ErrProfile
		}
	}
	if proc == 0 {
		log.Logger().Warn(procCreateContext + " not available; using a legacy context")
		return legacy, nil
	}
	if ctxAttrs == nil {
		ctxAttrs = d.contextAttribs()
	}
	ctx := d.lib.CreateContextAttribs(proc, hdc, 0, ctxAttrs)
	if ctx != 0 {
		return ctx, nil
	}
	if es {
		log.Logger().Error(procCreateContext+" failed", zap.Uint32("win32_error", d.lib.LastError()))
		return 0, driver.ErrContext
	}
	log.Logger().Warn(procCreateContext+" failed; falling back to a legacy context",
		zap.Uint32("win32_error", d.lib.LastError()))
	return legacy, nil
}

func (d *Driver) NativeContext() uintptr {
	ctx, _ := d.ctx.Get()
	return uintptr(ctx)
}

func (d *Driver) ProcAddress(name string) uintptr {
	if d.lib == nil {
		return 0
	}
	return d.lib.GetProcAddress(name)
}

func (d *Driver) Size() (int, int, bool) {
	if !d.hdc.Valid() || d.hwnd == 0 {
		return 0, 0, false
	}
	w, h, ok := d.lib.ClientSize(d.hwnd)
	return int(w), int(h), ok
}

func (d *Driver) Flip() {
	hdc, ok := d.hdc.Get()
	if !ok || !d.ctx.Valid() {
		return
	}
	if !d.lib.SwapBuffers(hdc) {
		log.Logger().Warn("SwapBuffers failed", zap.Uint32("win32_error", d.lib.LastError()))
	}
}

func (d *Driver) Bind() error {
	hdc, ok1 := d.hdc.Get()
	ctx, ok2 := d.ctx.Get()
	if !ok1 || !ok2 {
		return driver.ErrBind
	}
	if !d.lib.MakeCurrent(hdc, ctx) {
		log.Logger().Error("wglMakeCurrent failed", zap.Uint32("win32_error", d.lib.LastError()))
		return driver.ErrBind
	}
	return nil
}

func (d *Driver) Unbind() error {
	hdc, ok := d.hdc.Get()
	if !ok {
		return driver.ErrBind
	}
	if !d.lib.MakeCurrent(hdc, 0) {
		log.Logger().Error("wglMakeCurrent failed", zap.Uint32("win32_error", d.lib.LastError()))
		return driver.ErrBind
	}
	return nil
}

func (d *Driver) Release() {
	hdc, ok := d.hdc.Take()
	if !ok {
		return
	}
	d.lib.MakeCurrent(hdc, 0)
	if ctx, ok := d.ctx.Take(); ok {
		d.lib.DeleteContext(ctx)
	}
}
