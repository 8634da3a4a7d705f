// SPDX-License-Identifier: Unlicense OR MIT

// Package glx implements the glctx driver for GLX on X11.
package glx

import (
	"go.uber.org/zap"

	"gioui.org/glctx/internal/attrib"
	"gioui.org/glctx/internal/driver"
	"gioui.org/glctx/internal/extension"
	"gioui.org/glctx/internal/log"
	"gioui.org/glctx/internal/selector"
)

var table = attrib.Table{
	Codes: [driver.NumAttribs]int32{
		_GLX_RED_SIZE,
		_GLX_GREEN_SIZE,
		_GLX_BLUE_SIZE,
		_GLX_ALPHA_SIZE,
		_GLX_DEPTH_SIZE,
		_GLX_STENCIL_SIZE,
	},
	Terminator: _None,
}

// defaults restricts configs to double buffered true colour windows.
var defaults = []int32{
	_GLX_X_RENDERABLE, _True,
	_GLX_DRAWABLE_TYPE, _GLX_WINDOW_BIT,
	_GLX_RENDER_TYPE, _GLX_RGBA_BIT,
	_GLX_X_VISUAL_TYPE, _GLX_TRUE_COLOR,
	_GLX_DOUBLEBUFFER, _True,
	_None,
}

const (
	extCreateContext        = "GLX_ARB_create_context"
	extCreateContextProfile = "GLX_ARB_create_context_profile"
	procCreateContext       = "glXCreateContextAttribsARB"
)

// probe caches the GLX extensions and entry points for the process.
var probe extension.Probe

// Driver is a GLX backend. The X display belongs to the caller and is
// never closed by the driver.
type Driver struct {
	lib   Lib
	probe *extension.Probe

	disp driver.Slot[Display]
	ctx  driver.Slot[Context]

	win           Drawable
	screen        int32
	width, height int32

	profile      driver.Profile
	major, minor int
}

var _ driver.Driver = (*Driver)(nil)

// New returns a driver calling lib and caching extensions in p. A nil lib
// loads libX11 and libGL when the driver is opened; a nil p selects the
// process-wide cache.
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
			log.Logger().Error("failed to load GLX", zap.Error(err))
			return driver.ErrDisplay
		}
		d.lib = lib
	}
	if disp == 0 {
		log.Logger().Error("no X display")
		return driver.ErrDisplay
	}
	xdisp := Display(disp)
	gmaj, gmin, ok := d.lib.QueryVersion(xdisp)
	if !ok {
		log.Logger().Error("glXQueryVersion failed")
		return driver.ErrDisplay
	}
	attrs, ok := d.lib.GetWindowAttributes(xdisp, w)
	if !ok {
		log.Logger().Error("unable to get window attributes", zap.Uint64("window", uint64(w)))
		return driver.ErrWindow
	}
	d.disp.Set(xdisp)
	d.win = Drawable(w)
	d.screen = attrs.Screen
	d.width, d.height = attrs.Width, attrs.Height
	d.profile = p
	d.major, d.minor = major, minor
	log.Logger().Debug("initialised display",
		zap.Int32("glx_major", gmaj),
		zap.Int32("glx_minor", gmin),
		zap.Int32("screen", attrs.Screen),
	)
	return nil
}

func (d *Driver) ChooseConfig(attrs []driver.Attr) (uintptr, error) {
	buf, err := table.Pack(attrs, defaults)
	if err != nil {
		return 0, err
	}
	return d.choose(buf)
}

func (d *Driver) ChooseNativeConfig(native []int32) (uintptr, error) {
	buf, err := table.Passthrough(native)
	if err != nil {
		return 0, err
	}
	return d.choose(buf)
}

func (d *Driver) choose(attribs []int32) (uintptr, error) {
	disp, ok := d.disp.Get()
	if !ok {
		return 0, driver.ErrDisplay
	}
	cfgs := d.lib.ChooseFBConfig(disp, d.screen, attribs)
	if len(cfgs) == 0 {
		log.Logger().Error("unable to get any matching GLX configs")
		return 0, driver.ErrConfig
	}
	cands := make([]selector.Candidate, len(cfgs))
	for i, cfg := range cfgs {
		visual := d.lib.VisualID(disp, cfg)
		if visual == 0 {
			continue
		}
		sampleBufs, _ := d.lib.GetFBConfigAttrib(disp, cfg, _GLX_SAMPLE_BUFFERS)
		samples, _ := d.lib.GetFBConfigAttrib(disp, cfg, _GLX_SAMPLES)
		log.Logger().Debug("matching fbconfig",
			zap.Int("index", i),
			zap.Uint32("visual", visual),
			zap.Int32("sample_buffers", sampleBufs),
			zap.Int32("samples", samples),
		)
		cands[i] = selector.Candidate{Usable: true, SampleBuffers: sampleBufs, Samples: samples}
	}
	i, ok := selector.Best(cands)
	if !ok {
		log.Logger().Error("no GLX config has a visual")
		return 0, driver.ErrConfig
	}
	return uintptr(cfgs[i]), nil
}

func (d *Driver) QueryConfig(cfg uintptr, a driver.Attrib) int {
	disp, ok := d.disp.Get()
	if !ok {
		return -1
	}
	code, ok := table.Translate(a)
	if !ok {
		log.Logger().Error("bad attribute code", zap.Int32("code", int32(a)))
		return -1
	}
	v, ok := d.lib.GetFBConfigAttrib(disp, FBConfig(cfg), code)
	if !ok {
		return -1
	}
	return int(v)
}

// contextAttribs returns the default attributes for
// glXCreateContextAttribsARB.
func (d *Driver) contextAttribs(hasProfile bool) []int32 {
	attrs := []int32{
		_GLX_CONTEXT_MAJOR_VERSION_ARB, int32(d.major),
		_GLX_CONTEXT_MINOR_VERSION_ARB, int32(d.minor),
	}
	var mask int32
	switch d.profile {
	case driver.ProfileES:
		mask = _GLX_CONTEXT_ES_PROFILE_BIT_EXT
	case driver.ProfileCore:
		mask = _GLX_CONTEXT_CORE_PROFILE_BIT_ARB
	case driver.ProfileCompat:
		mask = _GLX_CONTEXT_COMPATIBILITY_PROFILE_BIT_ARB
	}
	if mask != 0 && hasProfile {
		attrs = append(attrs, _GLX_CONTEXT_PROFILE_MASK_ARB, mask)
	} else if mask != 0 {
		log.Logger().Warn("context profiles not supported; using the default profile", zap.Stringer("profile", d.profile))
	}
	return append(attrs, _None)
}

func (d *Driver) Activate(cfg uintptr, w driver.Window, ctxAttrs []int32) error {
	disp, ok := d.disp.Get()
	if !ok {
		return driver.ErrDisplay
	}
	if d.ctx.Valid() {
		log.Logger().Error("context already active")
		return driver.ErrContext
	}
	if ctxAttrs != nil {
		if _, err := table.Passthrough(ctxAttrs); err != nil {
			return driver.ErrContext
		}
	}
	// The window itself is the GLX drawable.
	win := d.win
	if w != 0 {
		win = Drawable(w)
	}
	if win == 0 {
		log.Logger().Error("no drawable")
		return driver.ErrSurface
	}
	exts := d.probe.Extensions(func() string {
		return d.lib.QueryExtensionsString(disp, d.screen)
	})
	proc := d.probe.Proc(procCreateContext, d.lib.GetProcAddress)
	hasARB := extension.Has(exts, extCreateContext) && proc != 0
	hasProfile := extension.Has(exts, extCreateContextProfile)

	var ctx Context
	if d.profile == driver.ProfileES {
		if !hasARB || !hasProfile {
			log.Logger().Error(extCreateContextProfile+" not supported (required for OpenGL ES)",
				zap.Bool("create_context", hasARB))
			return driver.ErrProfile
		}
		if ctxAttrs == nil {
			ctxAttrs = d.contextAttribs(hasProfile)
		}
		ctx = d.lib.CreateContextAttribs(proc, disp, FBConfig(cfg), 0, true, ctxAttrs)
		if ctx == 0 {
			log.Logger().Error("glXCreateContextAttribsARB failed")
			return driver.ErrContext
		}
	} else {
		if hasARB {
			if ctxAttrs == nil {
				ctxAttrs = d.contextAttribs(hasProfile)
			}
			ctx = d.lib.CreateContextAttribs(proc, disp, FBConfig(cfg), 0, true, ctxAttrs)
			if ctx == 0 {
				log.Logger().Warn("glXCreateContextAttribsARB failed; falling back to glXCreateNewContext")
			}
		} else {
			log.Logger().Warn(extCreateContext + " not supported; falling back to glXCreateNewContext")
		}
		if ctx == 0 {
			ctx = d.lib.CreateNewContext(disp, FBConfig(cfg), _GLX_RGBA_TYPE, 0, true)
		}
		if ctx == 0 {
			log.Logger().Error("glXCreateNewContext failed")
			return driver.ErrContext
		}
	}
	if !d.lib.IsDirect(disp, ctx) {
		log.Logger().Warn("rendering is not direct")
	}
	d.win = win
	d.ctx.Set(ctx)
	return d.Bind()
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

// Size reports the current window size, or the size at Open if the
// window can no longer be queried.
func (d *Driver) Size() (int, int, bool) {
	disp, ok := d.disp.Get()
	if !ok {
		return 0, 0, false
	}
	if attrs, ok := d.lib.GetWindowAttributes(disp, driver.Window(d.win)); ok {
		d.width, d.height = attrs.Width, attrs.Height
	}
	return int(d.width), int(d.height), true
}

func (d *Driver) Flip() {
	disp, ok := d.disp.Get()
	if !ok || !d.ctx.Valid() {
		return
	}
	d.lib.SwapBuffers(disp, d.win)
}

func (d *Driver) Bind() error {
	disp, ok1 := d.disp.Get()
	ctx, ok2 := d.ctx.Get()
	if !ok1 || !ok2 {
		return driver.ErrBind
	}
	if !d.lib.MakeContextCurrent(disp, d.win, d.win, ctx) {
		log.Logger().Error("unable to bind context", zap.Uint64("drawable", uint64(d.win)))
		return driver.ErrBind
	}
	return nil
}

func (d *Driver) Unbind() error {
	disp, ok := d.disp.Get()
	if !ok {
		return driver.ErrBind
	}
	if !d.lib.MakeContextCurrent(disp, 0, 0, 0) {
		log.Logger().Error("unable to release context")
		return driver.ErrBind
	}
	return nil
}

func (d *Driver) Release() {
	disp, ok := d.disp.Take()
	if !ok {
		return
	}
	d.lib.MakeContextCurrent(disp, 0, 0, 0)
	if ctx, ok := d.ctx.Take(); ok {
		d.lib.DestroyContext(disp, ctx)
	}
}
