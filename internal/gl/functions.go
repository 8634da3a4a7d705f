// SPDX-License-Identifier: Unlicense OR MIT

//go:build darwin || freebsd || linux || windows

package gl

import (
	"fmt"

	"github.com/ebitengine/purego"

	gunsafe "gioui.org/glctx/internal/unsafe"
)

// Functions calls GL through entry points resolved by a context. The
// context must be current on the calling thread.
type Functions struct {
	glClear       func(mask uint32)
	glClearColor  func(r, g, b, a float32)
	glGetError    func() uint32
	glGetIntegerv func(pname uint32, data *int32)
	glGetString   func(name uint32) uintptr
	glViewport    func(x, y, width, height int32)
}

// Load resolves the functions with lookup, typically the ProcAddress
// method of a glctx.Context.
func Load(lookup func(name string) uintptr) (*Functions, error) {
	f := new(Functions)
	procs := []struct {
		name string
		fn   interface{}
	}{
		{"glClear", &f.glClear},
		{"glClearColor", &f.glClearColor},
		{"glGetError", &f.glGetError},
		{"glGetIntegerv", &f.glGetIntegerv},
		{"glGetString", &f.glGetString},
		{"glViewport", &f.glViewport},
	}
	for _, p := range procs {
		addr := lookup(p.name)
		if addr == 0 {
			return nil, fmt.Errorf("gl: failed to resolve %s", p.name)
		}
		purego.RegisterFunc(p.fn, addr)
	}
	return f, nil
}

func (f *Functions) Clear(mask Enum) {
	f.glClear(uint32(mask))
}

func (f *Functions) ClearColor(red, green, blue, alpha float32) {
	f.glClearColor(red, green, blue, alpha)
}

func (f *Functions) GetError() Enum {
	return Enum(f.glGetError())
}

func (f *Functions) GetInteger(pname Enum) int {
	var v int32
	f.glGetIntegerv(uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetString(pname Enum) string {
	return gunsafe.GoString(f.glGetString(uint32(pname)))
}

func (f *Functions) Viewport(x, y, width, height int) {
	f.glViewport(int32(x), int32(y), int32(width), int32(height))
}

// Query collects the identification strings of the current context.
func Query(f *Functions) Info {
	info := Info{
		Vendor:     f.GetString(VENDOR),
		Renderer:   f.GetString(RENDERER),
		Version:    f.GetString(VERSION),
		Shading:    f.GetString(SHADING_LANGUAGE_VERSION),
		Extensions: Extensions(f.GetString(EXTENSIONS)),
	}
	// GL_EXTENSIONS is not a valid glGetString name in core profiles;
	// clear the resulting error.
	f.GetError()
	return info
}
