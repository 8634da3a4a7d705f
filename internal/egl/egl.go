// SPDX-License-Identifier: Unlicense OR MIT

// Package egl implements the glctx driver for EGL: Mesa and vendor EGL on
// X11, Wayland and KMS, Android, the Raspberry Pi and ANGLE on Windows.
package egl

import (
	"go.uber.org/zap"

	"gioui.org/glctx/internal/attrib"
	"gioui.org/glctx/internal/driver"
	"gioui.org/glctx/internal/log"
	"gioui.org/glctx/internal/selector"
)

var table = attrib.Table{
	Codes: [driver.NumAttribs]int32{
		_EGL_RED_SIZE,
		_EGL_GREEN_SIZE,
		_EGL_BLUE_SIZE,
		_EGL_ALPHA_SIZE,
		_EGL_DEPTH_SIZE,
		_EGL_STENCIL_SIZE,
	},
	Terminator: _EGL_NONE,
}

// Driver is an EGL backend. The zero value is not usable; call New.
type Driver struct {
	lib Lib

	disp driver.Slot[Display]
	surf driver.Slot[Surface]
	ctx  driver.Slot[Context]
	// platform releases resources allocated while preparing the window.
	platform driver.Slot[func()]

	win          driver.Window
	profile      driver.Profile
	major, minor int
	// EGL version reported by eglInitialize.
	eglMajor, eglMinor int32
}

var _ driver.Driver = (*Driver)(nil)

// New returns a driver calling lib. A nil lib loads the system EGL
// library when the driver is opened.
func New(lib Lib) *Driver {
	return &Driver{lib: lib}
}

func (d *Driver) Open(disp driver.Display, w driver.Window, p driver.Profile, major, minor int) error {
	if d.lib == nil {
		lib, err := Load()
		if err != nil {
			log.Logger().Error("failed to load EGL", zap.Error(err))
			return driver.ErrDisplay
		}
		d.lib = lib
	}
	edisp := d.lib.GetDisplay(uintptr(nativeDisplay(disp)))
	if edisp == NoDisplay {
		log.Logger().Error("eglGetDisplay failed", zap.Int32("egl_error", d.lib.GetError()))
		return driver.ErrDisplay
	}
	emaj, emin, ok := d.lib.Initialize(edisp)
	if !ok {
		log.Logger().Error("eglInitialize failed", zap.Int32("egl_error", d.lib.GetError()))
		return driver.ErrDisplay
	}
	d.disp.Set(edisp)
	d.win = w
	d.profile = p
	d.major, d.minor = major, minor
	d.eglMajor, d.eglMinor = emaj, emin
	if log.Enabled() {
		log.Logger().Debug("initialised display",
			zap.Int32("egl_major", emaj),
			zap.Int32("egl_minor", emin),
			zap.String("extensions", d.lib.QueryString(edisp, _EGL_EXTENSIONS)),
		)
	}
	return nil
}

// renderableBit returns the EGL_RENDERABLE_TYPE bit of the requested
// profile.
func (d *Driver) renderableBit() int32 {
	switch {
	case d.profile != driver.ProfileES:
		return _EGL_OPENGL_BIT
	case d.major > 1:
		return _EGL_OPENGL_ES2_BIT
	default:
		return _EGL_OPENGL_ES_BIT
	}
}

func (d *Driver) ChooseConfig(attrs []driver.Attr) (uintptr, error) {
	bit := d.renderableBit()
	defaults := []int32{
		_EGL_RENDERABLE_TYPE, bit,
		_EGL_CONFORMANT, bit,
		_EGL_NONE,
	}
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
	n, ok := d.lib.ChooseConfig(disp, attribs, nil)
	if !ok || n < 1 {
		log.Logger().Error("no EGL configs available", zap.Int32("egl_error", d.lib.GetError()))
		return 0, driver.ErrConfig
	}
	if !log.Enabled() {
		// Let EGL pick; enumerating is only useful for the log.
		var cfg [1]Config
		n, ok := d.lib.ChooseConfig(disp, attribs, cfg[:])
		if !ok || n < 1 {
			return 0, driver.ErrConfig
		}
		return uintptr(cfg[0]), nil
	}
	log.Logger().Debug("EGL configs available", zap.Int32("count", n))
	cfgs := make([]Config, n)
	n, ok = d.lib.ChooseConfig(disp, attribs, cfgs)
	if !ok {
		log.Logger().Error("eglChooseConfig failed", zap.Int32("egl_error", d.lib.GetError()))
		return 0, driver.ErrConfig
	}
	cfgs = cfgs[:n]
	for i, c := range cfgs {
		if c == 0 {
			log.Logger().Warn("config is nil", zap.Int("index", i))
			continue
		}
		log.Logger().Debug("config",
			zap.Int("index", i),
			zap.Int32("red", d.attrib(disp, c, _EGL_RED_SIZE)),
			zap.Int32("green", d.attrib(disp, c, _EGL_GREEN_SIZE)),
			zap.Int32("blue", d.attrib(disp, c, _EGL_BLUE_SIZE)),
			zap.Int32("alpha", d.attrib(disp, c, _EGL_ALPHA_SIZE)),
			zap.Int32("depth", d.attrib(disp, c, _EGL_DEPTH_SIZE)),
		)
	}
	i, ok := selector.FirstValid(cfgs)
	if !ok {
		log.Logger().Error("no EGL configs available")
		return 0, driver.ErrConfig
	}
	return uintptr(cfgs[i]), nil
}

func (d *Driver) attrib(disp Display, cfg Config, attr int32) int32 {
	v, ok := d.lib.GetConfigAttrib(disp, cfg, attr)
	if !ok {
		return -1
	}
	return v
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
	return int(d.attrib(disp, Config(cfg), code))
}

// contextAttribs returns the default context attributes. EGL before 1.5
// only knows the ES client version.
func (d *Driver) contextAttribs() []int32 {
	eglLegacy := d.eglMajor == 1 && d.eglMinor < 5
	if d.profile == driver.ProfileES {
		attrs := []int32{_EGL_CONTEXT_CLIENT_VERSION, int32(d.major)}
		if !eglLegacy && d.minor > 0 {
			attrs = append(attrs, _EGL_CONTEXT_MINOR_VERSION, int32(d.minor))
		}
		return append(attrs, _EGL_NONE)
	}
	if eglLegacy {
		return []int32{_EGL_NONE}
	}
	attrs := []int32{
		_EGL_CONTEXT_MAJOR_VERSION, int32(d.major),
		_EGL_CONTEXT_MINOR_VERSION, int32(d.minor),
	}
	switch d.profile {
	case driver.ProfileCore:
		attrs = append(attrs, _EGL_CONTEXT_OPENGL_PROFILE_MASK, _EGL_CONTEXT_OPENGL_CORE_PROFILE_BIT)
	case driver.ProfileCompat:
		attrs = append(attrs, _EGL_CONTEXT_OPENGL_PROFILE_MASK, _EGL_CONTEXT_OPENGL_COMPATIBILITY_PROFILE_BIT)
	}
	return append(attrs, _EGL_NONE)
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
	if ctxAttrs == nil {
		ctxAttrs = d.contextAttribs()
	} else if _, err := table.Passthrough(ctxAttrs); err != nil {
		return driver.ErrContext
	}
	var api uint32 = _EGL_OPENGL_API
	if d.profile == driver.ProfileES {
		api = _EGL_OPENGL_ES_API
	}
	if !d.lib.BindAPI(api) {
		log.Logger().Error("eglBindAPI failed", zap.Stringer("profile", d.profile), zap.Int32("egl_error", d.lib.GetError()))
		return driver.ErrProfile
	}
	win, release, err := prepareWindow(d.lib, disp, Config(cfg), w)
	if err != nil {
		log.Logger().Error("unable to configure window", zap.Error(err))
		return driver.ErrWindow
	}
	surf := d.lib.CreateWindowSurface(disp, Config(cfg), uintptr(win), nil)
	if surf == NoSurface {
		log.Logger().Error("unable to create surface", zap.Int32("egl_error", d.lib.GetError()))
		if release != nil {
			release()
		}
		return driver.ErrSurface
	}
	ctx := d.lib.CreateContext(disp, Config(cfg), NoContext, ctxAttrs)
	if ctx == NoContext {
		log.Logger().Error("unable to create context", zap.Int32("egl_error", d.lib.GetError()))
		d.lib.DestroySurface(disp, surf)
		if release != nil {
			release()
		}
		return driver.ErrContext
	}
	d.win = win
	d.surf.Set(surf)
	d.ctx.Set(ctx)
	if release != nil {
		d.platform.Set(release)
	}
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

func (d *Driver) Size() (int, int, bool) {
	disp, ok1 := d.disp.Get()
	surf, ok2 := d.surf.Get()
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	w, ok1 := d.lib.QuerySurface(disp, surf, _EGL_WIDTH)
	h, ok2 := d.lib.QuerySurface(disp, surf, _EGL_HEIGHT)
	if !ok1 || !ok2 {
		log.Logger().Warn("unable to query surface size", zap.Int32("egl_error", d.lib.GetError()))
		return 0, 0, false
	}
	return int(w), int(h), true
}

func (d *Driver) Flip() {
	disp, ok1 := d.disp.Get()
	surf, ok2 := d.surf.Get()
	if !ok1 || !ok2 {
		return
	}
	if !d.lib.SwapBuffers(disp, surf) {
		log.Logger().Warn("eglSwapBuffers failed", zap.Int32("egl_error", d.lib.GetError()))
	}
}

func (d *Driver) Bind() error {
	disp, ok1 := d.disp.Get()
	surf, ok2 := d.surf.Get()
	ctx, ok3 := d.ctx.Get()
	if !ok1 || !ok2 || !ok3 {
		return driver.ErrBind
	}
	if !d.lib.MakeCurrent(disp, surf, surf, ctx) {
		log.Logger().Error("unable to bind thread to context", zap.Int32("egl_error", d.lib.GetError()))
		return driver.ErrBind
	}
	return nil
}

func (d *Driver) Unbind() error {
	disp, ok := d.disp.Get()
	if !ok {
		return driver.ErrBind
	}
	if !d.lib.MakeCurrent(disp, NoSurface, NoSurface, NoContext) {
		log.Logger().Error("unable to unbind thread from context", zap.Int32("egl_error", d.lib.GetError()))
		return driver.ErrBind
	}
	return nil
}

func (d *Driver) Release() {
	disp, ok := d.disp.Take()
	if !ok {
		return
	}
	d.lib.MakeCurrent(disp, NoSurface, NoSurface, NoContext)
	if ctx, ok := d.ctx.Take(); ok {
		d.lib.DestroyContext(disp, ctx)
	}
	if surf, ok := d.surf.Take(); ok {
		d.lib.DestroySurface(disp, surf)
	}
	if release, ok := d.platform.Take(); ok {
		release()
	}
	d.lib.Terminate(disp)
}
