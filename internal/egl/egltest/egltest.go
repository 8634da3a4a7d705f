// SPDX-License-Identifier: Unlicense OR MIT

// Package egltest provides an in-memory egl.Lib that records every call.
package egltest

import (
	"gioui.org/glctx/internal/egl"
)

// Native attribute codes used by the fake.
const (
	None         = 0x3038
	RedSize      = 0x3024
	GreenSize    = 0x3023
	BlueSize     = 0x3022
	AlphaSize    = 0x3021
	DepthSize    = 0x3025
	StencilSize  = 0x3026
	Width        = 0x3057
	Height       = 0x3056
	ClientVer    = 0x3098
	MinorVersion = 0x30fb
	ProfileMask  = 0x30fd
	OpenGLESAPI  = 0x30a0
	OpenGLAPI    = 0x30a2
)

// Config describes one config offered by the fake.
type Config struct {
	Handle  egl.Config
	Attribs map[int32]int32
}

// Lib is a fake EGL library. Set the Fail* fields to make the
// corresponding call fail. Counters record the calls made.
type Lib struct {
	Configs []Config
	// Major and Minor are returned by Initialize.
	Major, Minor int32
	// Width and Height are returned by QuerySurface.
	Width, Height int32
	Extensions    string
	Procs         map[string]uintptr

	FailGetDisplay  bool
	FailInitialize  bool
	FailChoose      bool
	FailBindAPI     bool
	FailSurface     bool
	FailContext     bool
	FailMakeCurrent bool
	FailSwap        bool

	// Attribs passed to the last ChooseConfig and CreateContext calls.
	ChooseAttribs  []int32
	ContextAttribs []int32
	// API passed to the last BindAPI call.
	API uint32

	ChooseCalls      int
	ConfigQueries    int
	SurfacesCreated  int
	SurfacesFreed    int
	ContextsCreated  int
	ContextsFreed    int
	MakeCurrentCalls int
	Releases         int
	Swaps            int
	Terminates       int
	Initialized      bool

	current egl.Context
	next    uintptr
}

var _ egl.Lib = (*Lib)(nil)

// New returns a fake EGL 1.5 library offering configs.
func New(configs ...Config) *Lib {
	return &Lib{
		Configs: configs,
		Major:   1,
		Minor:   5,
		Width:   640,
		Height:  480,
		next:    0x100,
	}
}

// RGBA returns a config with the given handle and channel sizes.
func RGBA(handle egl.Config, r, g, b, a, depth int32) Config {
	return Config{
		Handle: handle,
		Attribs: map[int32]int32{
			RedSize:   r,
			GreenSize: g,
			BlueSize:  b,
			AlphaSize: a,
			DepthSize: depth,
		},
	}
}

func (l *Lib) alloc() uintptr {
	l.next++
	return l.next
}

// Current returns the context bound by the last MakeCurrent call.
func (l *Lib) Current() egl.Context {
	return l.current
}

// Live reports the number of surfaces and contexts not yet destroyed.
func (l *Lib) Live() (surfaces, contexts int) {
	return l.SurfacesCreated - l.SurfacesFreed, l.ContextsCreated - l.ContextsFreed
}

func (l *Lib) GetDisplay(native uintptr) egl.Display {
	if l.FailGetDisplay {
		return egl.NoDisplay
	}
	return egl.Display(0x1)
}

func (l *Lib) Initialize(d egl.Display) (int32, int32, bool) {
	if l.FailInitialize {
		return 0, 0, false
	}
	l.Initialized = true
	return l.Major, l.Minor, true
}

func (l *Lib) ChooseConfig(d egl.Display, attribs []int32, configs []egl.Config) (int32, bool) {
	l.ChooseCalls++
	l.ChooseAttribs = append([]int32(nil), attribs...)
	if l.FailChoose {
		return 0, false
	}
	if configs == nil {
		return int32(len(l.Configs)), true
	}
	n := copy(configs, handles(l.Configs))
	return int32(n), true
}

func handles(cfgs []Config) []egl.Config {
	hs := make([]egl.Config, len(cfgs))
	for i, c := range cfgs {
		hs[i] = c.Handle
	}
	return hs
}

func (l *Lib) GetConfigAttrib(d egl.Display, cfg egl.Config, attr int32) (int32, bool) {
	l.ConfigQueries++
	for _, c := range l.Configs {
		if c.Handle == cfg && cfg != 0 {
			v, ok := c.Attribs[attr]
			return v, ok
		}
	}
	return 0, false
}

func (l *Lib) BindAPI(api uint32) bool {
	l.API = api
	return !l.FailBindAPI
}

func (l *Lib) CreateWindowSurface(d egl.Display, cfg egl.Config, win uintptr, attribs []int32) egl.Surface {
	if l.FailSurface {
		return egl.NoSurface
	}
	l.SurfacesCreated++
	return egl.Surface(l.alloc())
}

func (l *Lib) CreateContext(d egl.Display, cfg egl.Config, share egl.Context, attribs []int32) egl.Context {
	l.ContextAttribs = append([]int32(nil), attribs...)
	if l.FailContext {
		return egl.NoContext
	}
	l.ContextsCreated++
	return egl.Context(l.alloc())
}

func (l *Lib) MakeCurrent(d egl.Display, draw, read egl.Surface, ctx egl.Context) bool {
	l.MakeCurrentCalls++
	if ctx == egl.NoContext {
		l.Releases++
		l.current = egl.NoContext
		return true
	}
	if l.FailMakeCurrent {
		return false
	}
	l.current = ctx
	return true
}

func (l *Lib) SwapBuffers(d egl.Display, s egl.Surface) bool {
	l.Swaps++
	return !l.FailSwap
}

func (l *Lib) QuerySurface(d egl.Display, s egl.Surface, attr int32) (int32, bool) {
	switch attr {
	case Width:
		return l.Width, true
	case Height:
		return l.Height, true
	}
	return 0, false
}

func (l *Lib) DestroySurface(d egl.Display, s egl.Surface) bool {
	l.SurfacesFreed++
	return true
}

func (l *Lib) DestroyContext(d egl.Display, ctx egl.Context) bool {
	l.ContextsFreed++
	return true
}

func (l *Lib) Terminate(d egl.Display) bool {
	l.Terminates++
	l.Initialized = false
	return true
}

func (l *Lib) GetError() int32 {
	// EGL_BAD_ALLOC.
	return 0x3003
}

func (l *Lib) QueryString(d egl.Display, name int32) string {
	return l.Extensions
}

func (l *Lib) GetProcAddress(name string) uintptr {
	return l.Procs[name]
}
