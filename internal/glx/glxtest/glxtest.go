// SPDX-License-Identifier: Unlicense OR MIT

// Package glxtest provides an in-memory glx.Lib that records every call.
package glxtest

import (
	"gioui.org/glctx/internal/driver"
	"gioui.org/glctx/internal/glx"
)

// Native codes used by the fake.
const (
	None          = 0
	RedSize       = 8
	GreenSize     = 9
	BlueSize      = 10
	AlphaSize     = 11
	DepthSize     = 12
	SampleBuffers = 100000
	Samples       = 100001
	MajorVersion  = 0x2091
	MinorVersion  = 0x2092
	ProfileMask   = 0x9126
)

// CreateContextProc is the address reported for
// glXCreateContextAttribsARB when Procs is nil.
const CreateContextProc = 0xc0de

// Config describes one config offered by the fake. A zero Visual marks a
// config without an X visual.
type Config struct {
	Handle  glx.FBConfig
	Visual  uint32
	Attribs map[int32]int32
}

// Lib is a fake Xlib and GLX. Set the Fail* fields to make the
// corresponding call fail.
type Lib struct {
	Configs    []Config
	Extensions string
	// Procs overrides the entry points returned by GetProcAddress.
	Procs         map[string]uintptr
	Width, Height int32

	FailVersion     bool
	FailWindow      bool
	FailAttribs     bool
	FailLegacy      bool
	FailMakeCurrent bool
	Indirect        bool

	ChooseAttribs  []int32
	ContextAttribs []int32

	ExtensionQueries int
	AttribsContexts  int
	LegacyContexts   int
	ContextsFreed    int
	Swaps            int
	current          glx.Context
	next             uintptr
}

var _ glx.Lib = (*Lib)(nil)

// New returns a fake supporting GLX_ARB_create_context and
// GLX_ARB_create_context_profile.
func New(configs ...Config) *Lib {
	return &Lib{
		Configs:    configs,
		Extensions: "GLX_ARB_multisample GLX_ARB_create_context GLX_ARB_create_context_profile GLX_EXT_swap_control",
		Width:      800,
		Height:     600,
		next:       0x100,
	}
}

// Multisample returns a config with a visual and the given sampling.
func Multisample(handle glx.FBConfig, sampleBuffers, samples int32) Config {
	return Config{
		Handle: handle,
		Visual: uint32(handle) + 0x20,
		Attribs: map[int32]int32{
			RedSize:       8,
			GreenSize:     8,
			BlueSize:      8,
			AlphaSize:     8,
			DepthSize:     24,
			SampleBuffers: sampleBuffers,
			Samples:       samples,
		},
	}
}

// Current returns the bound context.
func (l *Lib) Current() glx.Context {
	return l.current
}

// LiveContexts returns the number of contexts not yet destroyed.
func (l *Lib) LiveContexts() int {
	return l.AttribsContexts + l.LegacyContexts - l.ContextsFreed
}

func (l *Lib) alloc() uintptr {
	l.next++
	return l.next
}

func (l *Lib) QueryVersion(d glx.Display) (int32, int32, bool) {
	if l.FailVersion {
		return 0, 0, false
	}
	return 1, 4, true
}

func (l *Lib) GetWindowAttributes(d glx.Display, w driver.Window) (glx.WindowAttributes, bool) {
	if l.FailWindow {
		return glx.WindowAttributes{}, false
	}
	return glx.WindowAttributes{Screen: 0, Width: l.Width, Height: l.Height}, true
}

func (l *Lib) ChooseFBConfig(d glx.Display, screen int32, attribs []int32) []glx.FBConfig {
	l.ChooseAttribs = append([]int32(nil), attribs...)
	var cfgs []glx.FBConfig
	for _, c := range l.Configs {
		cfgs = append(cfgs, c.Handle)
	}
	return cfgs
}

func (l *Lib) config(cfg glx.FBConfig) (Config, bool) {
	for _, c := range l.Configs {
		if c.Handle == cfg {
			return c, true
		}
	}
	return Config{}, false
}

func (l *Lib) GetFBConfigAttrib(d glx.Display, cfg glx.FBConfig, attr int32) (int32, bool) {
	c, ok := l.config(cfg)
	if !ok {
		return 0, false
	}
	v, ok := c.Attribs[attr]
	return v, ok
}

func (l *Lib) VisualID(d glx.Display, cfg glx.FBConfig) uint32 {
	c, _ := l.config(cfg)
	return c.Visual
}

func (l *Lib) QueryExtensionsString(d glx.Display, screen int32) string {
	l.ExtensionQueries++
	return l.Extensions
}

func (l *Lib) GetProcAddress(name string) uintptr {
	if l.Procs != nil {
		return l.Procs[name]
	}
	if name == "glXCreateContextAttribsARB" {
		return CreateContextProc
	}
	return 0
}

func (l *Lib) CreateContextAttribs(proc uintptr, d glx.Display, cfg glx.FBConfig, share glx.Context, direct bool, attribs []int32) glx.Context {
	l.ContextAttribs = append([]int32(nil), attribs...)
	if l.FailAttribs || proc == 0 {
		return 0
	}
	l.AttribsContexts++
	return glx.Context(l.alloc())
}

func (l *Lib) CreateNewContext(d glx.Display, cfg glx.FBConfig, renderType int32, share glx.Context, direct bool) glx.Context {
	if l.FailLegacy {
		return 0
	}
	l.LegacyContexts++
	return glx.Context(l.alloc())
}

func (l *Lib) IsDirect(d glx.Display, ctx glx.Context) bool {
	return !l.Indirect
}

func (l *Lib) MakeContextCurrent(d glx.Display, draw, read glx.Drawable, ctx glx.Context) bool {
	if ctx == 0 {
		l.current = 0
		return true
	}
	if l.FailMakeCurrent {
		return false
	}
	l.current = ctx
	return true
}

func (l *Lib) SwapBuffers(d glx.Display, draw glx.Drawable) {
	l.Swaps++
}

func (l *Lib) DestroyContext(d glx.Display, ctx glx.Context) {
	l.ContextsFreed++
}
