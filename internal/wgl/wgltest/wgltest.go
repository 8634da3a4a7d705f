// SPDX-License-Identifier: Unlicense OR MIT

// Package wgltest provides an in-memory wgl.Lib that records every call.
package wgltest

import (
	"gioui.org/glctx/internal/wgl"
)

// Entry point addresses reported when Procs is nil.
const (
	CreateContextProc    = 0xc0de
	ExtensionsStringProc = 0xe875
)

// Format describes a pixel format offered by the fake.
type Format struct {
	ColorBits   byte
	DepthBits   byte
	StencilBits byte
}

// Lib is a fake WGL. Formats are numbered from 1. Set the Fail* fields
// to make the corresponding call fail.
type Lib struct {
	Formats    []Format
	Extensions string
	// Procs overrides the entry points returned by GetProcAddress.
	Procs         map[string]uintptr
	Width, Height int32

	FailDescribe      bool
	FailSetFormat     bool
	FailLegacy        bool
	FailAttribs       bool
	FailMakeCurrent   bool
	FailBindAttribsCt bool

	// Requested is the descriptor passed to the last ChoosePixelFormat.
	Requested      wgl.PixelFormatDescriptor
	ContextAttribs []int32
	FormatSet      int32

	LegacyContexts  int
	AttribsContexts int
	ContextsFreed   int
	Swaps           int
	ProcLookups     int
	current         wgl.HGLRC
	attribsCtx      map[wgl.HGLRC]bool
	next            uintptr
}

var _ wgl.Lib = (*Lib)(nil)

// New returns a fake supporting WGL_ARB_create_context and the ES profile
// extension.
func New(formats ...Format) *Lib {
	return &Lib{
		Formats:    formats,
		Extensions: "WGL_ARB_extensions_string WGL_ARB_create_context WGL_ARB_create_context_profile WGL_EXT_create_context_es2_profile",
		Width:      320,
		Height:     240,
		next:       0x100,
	}
}

// Current returns the bound context.
func (l *Lib) Current() wgl.HGLRC {
	return l.current
}

// LiveContexts returns the number of contexts not yet deleted.
func (l *Lib) LiveContexts() int {
	return l.LegacyContexts + l.AttribsContexts - l.ContextsFreed
}

func (l *Lib) alloc() uintptr {
	l.next++
	return l.next
}

func (l *Lib) ChoosePixelFormat(hdc wgl.HDC, pfd *wgl.PixelFormatDescriptor) int32 {
	l.Requested = *pfd
	for i, f := range l.Formats {
		if f.ColorBits == pfd.ColorBits {
			return int32(i + 1)
		}
	}
	return 0
}

func (l *Lib) DescribePixelFormat(hdc wgl.HDC, format int32, pfd *wgl.PixelFormatDescriptor) bool {
	if l.FailDescribe || format < 1 || int(format) > len(l.Formats) {
		return false
	}
	f := l.Formats[format-1]
	*pfd = wgl.PixelFormatDescriptor{
		Size:        40,
		Version:     1,
		ColorBits:   f.ColorBits,
		DepthBits:   f.DepthBits,
		StencilBits: f.StencilBits,
	}
	return true
}

func (l *Lib) SetPixelFormat(hdc wgl.HDC, format int32, pfd *wgl.PixelFormatDescriptor) bool {
	if l.FailSetFormat {
		return false
	}
	l.FormatSet = format
	return true
}

func (l *Lib) CreateContext(hdc wgl.HDC) wgl.HGLRC {
	if l.FailLegacy {
		return 0
	}
	l.LegacyContexts++
	return wgl.HGLRC(l.alloc())
}

func (l *Lib) MakeCurrent(hdc wgl.HDC, ctx wgl.HGLRC) bool {
	if ctx == 0 {
		l.current = 0
		return true
	}
	if l.FailMakeCurrent || (l.FailBindAttribsCt && l.attribsCtx[ctx]) {
		return false
	}
	l.current = ctx
	return true
}

func (l *Lib) DeleteContext(ctx wgl.HGLRC) bool {
	l.ContextsFreed++
	return true
}

func (l *Lib) GetProcAddress(name string) uintptr {
	l.ProcLookups++
	if l.Procs != nil {
		return l.Procs[name]
	}
	switch name {
	case "wglCreateContextAttribsARB":
		return CreateContextProc
	case "wglGetExtensionsStringARB":
		return ExtensionsStringProc
	}
	return 0
}

func (l *Lib) CreateContextAttribs(proc uintptr, hdc wgl.HDC, share wgl.HGLRC, attribs []int32) wgl.HGLRC {
	l.ContextAttribs = append([]int32(nil), attribs...)
	if l.FailAttribs {
		return 0
	}
	l.AttribsContexts++
	ctx := wgl.HGLRC(l.alloc())
	if l.attribsCtx == nil {
		l.attribsCtx = make(map[wgl.HGLRC]bool)
	}
	l.attribsCtx[ctx] = true
	return ctx
}

func (l *Lib) ExtensionsString(proc uintptr, hdc wgl.HDC) string {
	return l.Extensions
}

func (l *Lib) SwapBuffers(hdc wgl.HDC) bool {
	l.Swaps++
	return true
}

func (l *Lib) WindowFromDC(hdc wgl.HDC) wgl.HWND {
	return 0x77
}

func (l *Lib) ClientSize(hwnd wgl.HWND) (int32, int32, bool) {
	return l.Width, l.Height, hwnd != 0
}

func (l *Lib) LastError() uint32 {
	// ERROR_INVALID_PIXEL_FORMAT.
	return 2000
}
