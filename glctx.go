// SPDX-License-Identifier: Unlicense OR MIT

package glctx

import (
	"errors"

	"go.uber.org/zap"

	"gioui.org/glctx/internal/driver"
	"gioui.org/glctx/internal/egl"
	"gioui.org/glctx/internal/glx"
	"gioui.org/glctx/internal/log"
	"gioui.org/glctx/internal/wgl"
)

type (
	// Display is a native display: an Xlib Display pointer, an
	// EGLNativeDisplayType or a Windows HDC.
	Display = driver.Display
	// Window is a native window: an X11 Window, an ANativeWindow or
	// wl_egl_window pointer or a Windows HWND.
	Window = driver.Window
	// Profile selects OpenGL ES or desktop OpenGL.
	Profile = driver.Profile
	// Attrib is a portable config attribute.
	Attrib = driver.Attrib
	// Attr is a portable config attribute and its value.
	Attr = driver.Attr
	// Driver is implemented by the native backends.
	Driver = driver.Driver
)

const (
	ProfileES = driver.ProfileES
	// ProfileOpenGL requests desktop OpenGL without choosing between the
	// core and compatibility profiles.
	ProfileOpenGL = driver.ProfileOpenGL
	ProfileCore   = driver.ProfileCore
	ProfileCompat = driver.ProfileCompat
)

const (
	// AttrNone ends an attribute list early.
	AttrNone        = driver.AttribNone
	AttrRedSize     = driver.AttribRedSize
	AttrGreenSize   = driver.AttribGreenSize
	AttrBlueSize    = driver.AttribBlueSize
	AttrAlphaSize   = driver.AttribAlphaSize
	AttrDepthSize   = driver.AttribDepthSize
	AttrStencilSize = driver.AttribStencilSize
)

// State is the lifecycle state of a Context.
type State uint8

const (
	StateUninitialized State = iota
	StateDisplayReady
	StateConfigChosen
	StateActivated
	StateUnbound
	StateTerminated
)

// Backend names a native context API.
type Backend uint8

const (
	BackendEGL Backend = iota + 1
	BackendGLX
	BackendWGL
)

// Config is a native config (an EGLConfig, a GLXFBConfig or a pixel
// format index) and the display it belongs to. The zero Config is
// invalid.
type Config struct {
	disp   Display
	native uintptr
	valid  bool
}

// Context is a rendering context and the native resources it owns.
type Context struct {
	drv          driver.Driver
	disp         Display
	win          Window
	profile      Profile
	major, minor int
	cfg          Config
	state        State
}

type options struct {
	drv driver.Driver
}

// Option configures Init.
type Option func(*options)

// WithDriver makes Init use d instead of the default backend.
func WithDriver(d Driver) Option {
	return func(o *options) {
		o.drv = d
	}
}

// WithBackend makes Init use the system library of b instead of the
// default backend.
func WithBackend(b Backend) Option {
	return func(o *options) {
		o.drv = b.driver()
	}
}

func (b Backend) driver() driver.Driver {
	switch b {
	case BackendEGL:
		return egl.New(nil)
	case BackendGLX:
		return glx.New(nil, nil)
	case BackendWGL:
		return wgl.New(nil, nil)
	default:
		return nil
	}
}

// Init opens display and prepares a Context for window. The context will
// implement profile version major.minor. A failed Init releases
// everything it acquired.
func Init(display Display, window Window, profile Profile, major, minor int, opts ...Option) (*Context, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.drv == nil {
		o.drv = defaultDriver()
	}
	if o.drv == nil {
		log.Logger().Error("no glctx backend for this platform")
		return nil, ErrDisplay
	}
	if profile > ProfileCompat {
		log.Logger().Error("unknown profile", zap.Stringer("profile", profile))
		return nil, ErrProfile
	}
	if err := o.drv.Open(display, window, profile, major, minor); err != nil {
		o.drv.Release()
		return nil, err
	}
	log.Logger().Debug("initialised",
		zap.Stringer("profile", profile),
		zap.Int("major", major),
		zap.Int("minor", minor),
	)
	return &Context{
		drv:     o.drv,
		disp:    display,
		win:     window,
		profile: profile,
		major:   major,
		minor:   minor,
		state:   StateDisplayReady,
	}, nil
}

func (c *Context) live() bool {
	return c != nil && c.state != StateTerminated && c.state != StateUninitialized
}

// ChooseConfig returns the best config matching attrs. The list ends at
// the first AttrNone key.
func (c *Context) ChooseConfig(attrs []Attr) (Config, error) {
	if !c.live() {
		return Config{}, ErrDisplay
	}
	native, err := c.drv.ChooseConfig(attrs)
	return c.chose(native, err)
}

// ChooseNativeConfig returns the best config matching a list of native
// attributes ended by the backend's terminator. The list is passed to the
// native API unmodified. WGL does not support native lists.
func (c *Context) ChooseNativeConfig(native []int32) (Config, error) {
	if !c.live() {
		return Config{}, ErrDisplay
	}
	cfg, err := c.drv.ChooseNativeConfig(native)
	return c.chose(cfg, err)
}

func (c *Context) chose(native uintptr, err error) (Config, error) {
	if err != nil {
		return Config{}, err
	}
	c.cfg = Config{disp: c.disp, native: native, valid: true}
	if c.state == StateDisplayReady {
		c.state = StateConfigChosen
	}
	return c.cfg, nil
}

// owns reports whether cfg was chosen on the display of c.
func (c *Context) owns(cfg Config) bool {
	if !cfg.valid || cfg.disp != c.disp {
		log.Logger().Error("config belongs to another display",
			zap.Uint64("config_display", uint64(cfg.disp)),
			zap.Uint64("display", uint64(c.disp)),
		)
		return false
	}
	return true
}

// QueryConfig returns the value of attr for cfg, or -1 if it cannot be
// determined. WGL reports approximate colour channel sizes: 4 bits for
// 16-bit formats and 8 bits otherwise.
func (c *Context) QueryConfig(cfg Config, attr Attrib) int {
	if !c.live() || !c.owns(cfg) {
		return -1
	}
	return c.drv.QueryConfig(cfg.native, attr)
}

// Activate creates the surface for window and the rendering context, and
// binds them to the calling thread. A nil ctxAttrs requests the profile
// and version given to Init; otherwise ctxAttrs is a native context
// attribute list ended by the backend's terminator.
//
// If Activate fails with ErrBind the context exists but is not current;
// the Context is Unbound and Bind may be retried. Other failures leave
// the Context with its config chosen.
func (c *Context) Activate(cfg Config, window Window, ctxAttrs []int32) error {
	if !c.live() {
		return ErrDisplay
	}
	switch c.state {
	case StateDisplayReady:
		log.Logger().Error("no config chosen")
		return ErrConfig
	case StateActivated, StateUnbound:
		log.Logger().Error("context already active")
		return ErrContext
	}
	if !c.owns(cfg) {
		return ErrConfig
	}
	if window == 0 {
		window = c.win
	}
	err := c.drv.Activate(cfg.native, window, ctxAttrs)
	switch {
	case err == nil:
		c.win = window
		c.state = StateActivated
	case errors.Is(err, ErrBind) && c.drv.NativeContext() != 0:
		c.win = window
		c.state = StateUnbound
	}
	return err
}

// NativeContext returns the native context: an EGLContext, a GLXContext
// or an HGLRC. It is 0 before Activate.
func (c *Context) NativeContext() uintptr {
	if !c.live() {
		return 0
	}
	return c.drv.NativeContext()
}

// ProcAddress returns the address of a client API function, or 0 if it
// is not available. Some backends require the context to be current.
func (c *Context) ProcAddress(name string) uintptr {
	if !c.live() {
		return 0
	}
	return c.drv.ProcAddress(name)
}

// Size returns the size of the drawing surface in pixels.
func (c *Context) Size() (width, height int, ok bool) {
	if !c.live() {
		return 0, 0, false
	}
	return c.drv.Size()
}

// Flip presents the back buffer. Failures are logged, not reported.
func (c *Context) Flip() {
	if !c.live() || c.state != StateActivated {
		return
	}
	c.drv.Flip()
}

// Bind makes the context current on the calling thread.
func (c *Context) Bind() error {
	if !c.live() {
		return ErrDisplay
	}
	if c.state != StateActivated && c.state != StateUnbound {
		return ErrBind
	}
	if err := c.drv.Bind(); err != nil {
		return err
	}
	c.state = StateActivated
	return nil
}

// Unbind releases the context from the calling thread.
func (c *Context) Unbind() error {
	if !c.live() {
		return ErrDisplay
	}
	if c.state != StateActivated && c.state != StateUnbound {
		return ErrBind
	}
	if err := c.drv.Unbind(); err != nil {
		return err
	}
	c.state = StateUnbound
	return nil
}

// Terminate releases every native resource of c. It is safe to call more
// than once; other methods fail with ErrDisplay afterwards.
func (c *Context) Terminate() {
	if c == nil || c.state == StateTerminated {
		return
	}
	if c.drv != nil {
		c.drv.Release()
	}
	c.state = StateTerminated
	log.Logger().Debug("terminated")
}

// State returns the lifecycle state of c.
func (c *Context) State() State {
	if c == nil {
		return StateUninitialized
	}
	return c.state
}

// Profile returns the profile requested at Init.
func (c *Context) Profile() Profile {
	return c.profile
}

// Version returns the version requested at Init.
func (c *Context) Version() (major, minor int) {
	return c.major, c.minor
}

// Config returns the most recently chosen config.
func (c *Context) Config() (Config, bool) {
	if !c.live() {
		return Config{}, false
	}
	return c.cfg, c.cfg.valid
}

// Native returns the native config value.
func (c Config) Native() uintptr {
	return c.native
}

// Valid reports whether c was returned by a successful config choice.
func (c Config) Valid() bool {
	return c.valid
}

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateDisplayReady:
		return "DisplayReady"
	case StateConfigChosen:
		return "ConfigChosen"
	case StateActivated:
		return "Activated"
	case StateUnbound:
		return "Unbound"
	case StateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

func (b Backend) String() string {
	switch b {
	case BackendEGL:
		return "EGL"
	case BackendGLX:
		return "GLX"
	case BackendWGL:
		return "WGL"
	default:
		return "Unknown"
	}
}
