// SPDX-License-Identifier: Unlicense OR MIT

package wgl_test

import (
	"errors"
	"reflect"
	"testing"

	"gioui.org/glctx/internal/driver"
	"gioui.org/glctx/internal/extension"
	"gioui.org/glctx/internal/wgl"
	"gioui.org/glctx/internal/wgl/wgltest"
)

const hdc = driver.Display(0xdc)

var formats = []wgltest.Format{
	{ColorBits: 16, DepthBits: 16},
	{ColorBits: 32, DepthBits: 24, StencilBits: 8},
}

func open(t *testing.T, lib *wgltest.Lib, p driver.Profile, major, minor int) *wgl.Driver {
	t.Helper()
	d := wgl.New(lib, new(extension.Probe))
	if err := d.Open(hdc, 0, p, major, minor); err != nil {
		t.Fatalf("Open: %v", err)
	}
	return d
}

func TestOpenWithoutDC(t *testing.T) {
	d := wgl.New(wgltest.New(), new(extension.Probe))
	if err := d.Open(0, 0, driver.ProfileOpenGL, 2, 1); !errors.Is(err, driver.ErrDisplay) {
		t.Errorf("Open = %v, want %v", err, driver.ErrDisplay)
	}
}

func TestChooseConfigColorBucket(t *testing.T) {
	for _, tc := range []struct {
		name      string
		attrs     []driver.Attr
		colorBits byte
		want      uintptr
	}{
		{"default", nil, 32, 2},
		{"rgb565", []driver.Attr{
			{Key: driver.AttribRedSize, Value: 5},
			{Key: driver.AttribGreenSize, Value: 6},
			{Key: driver.AttribBlueSize, Value: 5},
		}, 16, 1},
		{"rgba4444", []driver.Attr{
			{Key: driver.AttribRedSize, Value: 4},
			{Key: driver.AttribGreenSize, Value: 4},
			{Key: driver.AttribBlueSize, Value: 4},
			{Key: driver.AttribAlphaSize, Value: 4},
		}, 16, 1},
		{"rgb888", []driver.Attr{
			{Key: driver.AttribRedSize, Value: 8},
			{Key: driver.AttribGreenSize, Value: 8},
			{Key: driver.AttribBlueSize, Value: 8},
		}, 32, 2},
		{"stops at none", []driver.Attr{
			{Key: driver.AttribRedSize, Value: 5},
			{Key: driver.AttribGreenSize, Value: 5},
			{Key: driver.AttribBlueSize, Value: 5},
			{Key: driver.AttribNone},
			{Key: driver.AttribAlphaSize, Value: 8},
		}, 16, 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			lib := wgltest.New(formats...)
			d := open(t, lib, driver.ProfileOpenGL, 2, 1)
			cfg, err := d.ChooseConfig(tc.attrs)
			if err != nil {
				t.Fatal(err)
			}
			if cfg != tc.want {
				t.Errorf("format = %d, want %d", cfg, tc.want)
			}
			if lib.Requested.ColorBits != tc.colorBits {
				t.Errorf("requested %d color bits, want %d", lib.Requested.ColorBits, tc.colorBits)
			}
		})
	}
}

func TestChooseConfigDescriptor(t *testing.T) {
	lib := wgltest.New(formats...)
	d := open(t, lib, driver.ProfileOpenGL, 2, 1)
	_, err := d.ChooseConfig([]driver.Attr{
		{Key: driver.AttribDepthSize, Value: 24},
		{Key: driver.AttribStencilSize, Value: 8},
	})
	if err != nil {
		t.Fatal(err)
	}
	pfd := lib.Requested
	if pfd.Size != 40 || pfd.Version != 1 || pfd.DepthBits != 24 || pfd.StencilBits != 8 {
		t.Errorf("descriptor = %+v", pfd)
	}
	const flags = 0x1 | 0x4 | 0x20
	if pfd.Flags != flags {
		t.Errorf("flags = %#x, want %#x", pfd.Flags, flags)
	}
}

func TestChooseConfigFailures(t *testing.T) {
	d := open(t, wgltest.New(), driver.ProfileOpenGL, 2, 1)
	if _, err := d.ChooseConfig(nil); !errors.Is(err, driver.ErrConfig) {
		t.Errorf("no formats: got %v, want %v", err, driver.ErrConfig)
	}
	d = open(t, wgltest.New(formats...), driver.ProfileOpenGL, 2, 1)
	if _, err := d.ChooseConfig([]driver.Attr{{Key: 9, Value: 1}}); !errors.Is(err, driver.ErrConfig) {
		t.Errorf("bad code: got %v, want %v", err, driver.ErrConfig)
	}
	if _, err := d.ChooseNativeConfig([]int32{0}); !errors.Is(err, driver.ErrConfig) {
		t.Errorf("native: got %v, want %v", err, driver.ErrConfig)
	}
}

func TestQueryConfig(t *testing.T) {
	d := open(t, wgltest.New(formats...), driver.ProfileOpenGL, 2, 1)
	for _, tc := range []struct {
		cfg  uintptr
		attr driver.Attrib
		want int
	}{
		{1, driver.AttribRedSize, 4},
		{1, driver.AttribAlphaSize, 4},
		{2, driver.AttribGreenSize, 8},
		{2, driver.AttribDepthSize, 24},
		{2, driver.AttribStencilSize, 8},
		{2, driver.AttribNone, -1},
		{3, driver.AttribRedSize, -1},
	} {
		if got := d.QueryConfig(tc.cfg, tc.attr); got != tc.want {
			t.Errorf("QueryConfig(%d, %v) = %d, want %d", tc.cfg, tc.attr, got, tc.want)
		}
	}
}

func TestActivateUpgrades(t *testing.T) {
	for _, tc := range []struct {
		name    string
		profile driver.Profile
		mask    int32
	}{
		{"es", driver.ProfileES, 0x4},
		{"opengl", driver.ProfileOpenGL, 0x1},
		{"core", driver.ProfileCore, 0x1},
		{"compat", driver.ProfileCompat, 0x2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			lib := wgltest.New(formats...)
			d := open(t, lib, tc.profile, 3, 2)
			if err := d.Activate(2, 0, nil); err != nil {
				t.Fatal(err)
			}
			want := []int32{0x9126, tc.mask, 0x2091, 3, 0x2092, 2, 0}
			if !reflect.DeepEqual(lib.ContextAttribs, want) {
				t.Errorf("context attribs = %#x, want %#x", lib.ContextAttribs, want)
			}
			if lib.FormatSet != 2 {
				t.Errorf("pixel format = %d, want 2", lib.FormatSet)
			}
			if lib.LiveContexts() != 1 {
				t.Errorf("live contexts = %d, want 1", lib.LiveContexts())
			}
			if lib.Current() == 0 || uintptr(lib.Current()) != d.NativeContext() {
				t.Error("upgraded context not bound")
			}
		})
	}
}

func TestActivateLegacy(t *testing.T) {
	for _, tc := range []struct {
		name  string
		setup func(l *wgltest.Lib)
	}{
		{"no entry point", func(l *wgltest.Lib) { l.Procs = map[string]uintptr{} }},
		{"ARB failure", func(l *wgltest.Lib) { l.FailAttribs = true }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			lib := wgltest.New(formats...)
			tc.setup(lib)
			d := open(t, lib, driver.ProfileOpenGL, 2, 1)
			if err := d.Activate(2, 0, nil); err != nil {
				t.Fatal(err)
			}
			if lib.LegacyContexts != 1 || lib.LiveContexts() != 1 {
				t.Errorf("legacy %d, live %d; want 1, 1", lib.LegacyContexts, lib.LiveContexts())
			}
			if lib.Current() == 0 {
				t.Error("legacy context not bound")
			}
		})
	}
}

func TestActivateESRequiresExtension(t *testing.T) {
	for _, tc := range []struct {
		name  string
		setup func(l *wgltest.Lib)
		want  driver.Error
	}{
		{"no ES extension", func(l *wgltest.Lib) { l.Extensions = "WGL_ARB_create_context WGL_EXT_create_context_es2_profile_foo" }, driver.ErrProfile},
		{"no entry point", func(l *wgltest.Lib) {
			l.Procs = map[string]uintptr{"wglGetExtensionsStringARB": wgltest.ExtensionsStringProc}
		}, driver.ErrProfile},
		{"no extensions string", func(l *wgltest.Lib) {
			l.Procs = map[string]uintptr{"wglCreateContextAttribsARB": wgltest.CreateContextProc}
		}, driver.ErrProfile},
		{"ARB failure", func(l *wgltest.Lib) { l.FailAttribs = true }, driver.ErrContext},
	} {
		t.Run(tc.name, func(t *testing.T) {
			lib := wgltest.New(formats...)
			tc.setup(lib)
			d := open(t, lib, driver.ProfileES, 2, 0)
			if err := d.Activate(2, 0, nil); !errors.Is(err, tc.want) {
				t.Fatalf("Activate = %v, want %v", err, tc.want)
			}
			if lib.LiveContexts() != 0 {
				t.Errorf("%d contexts leaked", lib.LiveContexts())
			}
			if lib.Current() != 0 {
				t.Error("context left current")
			}
		})
	}
}

func TestActivateFailures(t *testing.T) {
	for _, tc := range []struct {
		name  string
		setup func(l *wgltest.Lib)
		want  driver.Error
	}{
		{"describe", func(l *wgltest.Lib) { l.FailDescribe = true }, driver.ErrConfig},
		{"set format", func(l *wgltest.Lib) { l.FailSetFormat = true }, driver.ErrSurface},
		{"legacy", func(l *wgltest.Lib) { l.FailLegacy = true }, driver.ErrContext},
		{"bind legacy", func(l *wgltest.Lib) { l.FailMakeCurrent = true }, driver.ErrBind},
	} {
		t.Run(tc.name, func(t *testing.T) {
			lib := wgltest.New(formats...)
			tc.setup(lib)
			d := open(t, lib, driver.ProfileOpenGL, 2, 1)
			if err := d.Activate(2, 0, nil); !errors.Is(err, tc.want) {
				t.Fatalf("Activate = %v, want %v", err, tc.want)
			}
			if lib.LiveContexts() != 0 || d.NativeContext() != 0 {
				t.Errorf("%d contexts leaked", lib.LiveContexts())
			}
		})
	}
}

func TestActivateBindFailureKeepsContext(t *testing.T) {
	lib := wgltest.New(formats...)
	lib.FailBindAttribsCt = true
	d := open(t, lib, driver.ProfileCore, 3, 3)
	if err := d.Activate(2, 0, nil); !errors.Is(err, driver.ErrBind) {
		t.Fatalf("Activate = %v, want %v", err, driver.ErrBind)
	}
	if d.NativeContext() == 0 || lib.LiveContexts() != 1 {
		t.Errorf("native %#x, live %d; want the upgraded context kept", d.NativeContext(), lib.LiveContexts())
	}
	d.Release()
	if lib.LiveContexts() != 0 {
		t.Errorf("%d contexts leaked", lib.LiveContexts())
	}
}

func TestCustomContextAttribs(t *testing.T) {
	lib := wgltest.New(formats...)
	d := open(t, lib, driver.ProfileCore, 3, 3)
	if err := d.Activate(2, 0, []int32{0x2091, 4}); !errors.Is(err, driver.ErrContext) {
		t.Errorf("unterminated: got %v, want %v", err, driver.ErrContext)
	}
	attrs := []int32{0x2091, 4, 0x2092, 6, 0}
	if err := d.Activate(2, 0, attrs); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(lib.ContextAttribs, attrs) {
		t.Errorf("context attribs = %#x, want %#x", lib.ContextAttribs, attrs)
	}
}

func TestProbeCachesEntryPoints(t *testing.T) {
	p := new(extension.Probe)
	var lookups int
	for i := 0; i < 3; i++ {
		lib := wgltest.New(formats...)
		d := wgl.New(lib, p)
		if err := d.Open(hdc, 0, driver.ProfileES, 2, 0); err != nil {
			t.Fatal(err)
		}
		if err := d.Activate(2, 0, nil); err != nil {
			t.Fatal(err)
		}
		d.Release()
		lookups += lib.ProcLookups
	}
	if lookups != 2 {
		t.Errorf("entry point lookups = %d, want 2", lookups)
	}
}

func TestLifecycle(t *testing.T) {
	lib := wgltest.New(formats...)
	d := open(t, lib, driver.ProfileOpenGL, 2, 1)
	if w, h, ok := d.Size(); !ok || w != 320 || h != 240 {
		t.Errorf("Size = %d, %d, %v", w, h, ok)
	}
	if err := d.Activate(2, 0, nil); err != nil {
		t.Fatal(err)
	}
	d.Flip()
	if lib.Swaps != 1 {
		t.Errorf("swaps = %d, want 1", lib.Swaps)
	}
	if err := d.Unbind(); err != nil {
		t.Fatal(err)
	}
	if lib.Current() != 0 {
		t.Error("context bound after Unbind")
	}
	if err := d.Bind(); err != nil {
		t.Fatal(err)
	}
	d.Release()
	d.Release()
	if lib.LiveContexts() != 0 {
		t.Errorf("%d contexts leaked", lib.LiveContexts())
	}
}
