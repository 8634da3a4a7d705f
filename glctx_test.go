// SPDX-License-Identifier: Unlicense OR MIT

package glctx_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"gioui.org/glctx"
	"gioui.org/glctx/internal/egl"
	"gioui.org/glctx/internal/egl/egltest"
	"gioui.org/glctx/internal/extension"
	"gioui.org/glctx/internal/glx"
	"gioui.org/glctx/internal/glx/glxtest"
	"gioui.org/glctx/internal/wgl"
	"gioui.org/glctx/internal/wgl/wgltest"
)

var rgb888 = []glctx.Attr{
	{Key: glctx.AttrRedSize, Value: 8},
	{Key: glctx.AttrGreenSize, Value: 8},
	{Key: glctx.AttrBlueSize, Value: 8},
}

func initEGL(t *testing.T, lib *egltest.Lib, disp glctx.Display) *glctx.Context {
	t.Helper()
	ctx, err := glctx.Init(disp, 0x42, glctx.ProfileES, 2, 0, glctx.WithDriver(egl.New(lib)))
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(ctx.Terminate)
	return ctx
}

func TestLifecycleEGL(t *testing.T) {
	lib := egltest.New(egltest.RGBA(0x10, 8, 8, 8, 0, 24))
	ctx := initEGL(t, lib, 1)
	if s := ctx.State(); s != glctx.StateDisplayReady {
		t.Fatalf("state = %v, want DisplayReady", s)
	}
	cfg, err := ctx.ChooseConfig(rgb888)
	if err != nil {
		t.Fatal(err)
	}
	if s := ctx.State(); s != glctx.StateConfigChosen {
		t.Fatalf("state = %v, want ConfigChosen", s)
	}
	if got := ctx.QueryConfig(cfg, glctx.AttrDepthSize); got != 24 {
		t.Errorf("depth = %d, want 24", got)
	}
	if err := ctx.Activate(cfg, 0, nil); err != nil {
		t.Fatal(err)
	}
	if s := ctx.State(); s != glctx.StateActivated {
		t.Fatalf("state = %v, want Activated", s)
	}
	if ctx.NativeContext() == 0 {
		t.Error("no native context")
	}
	ctx.Flip()
	for i := 0; i < 3; i++ {
		if err := ctx.Unbind(); err != nil {
			t.Fatal(err)
		}
		if s := ctx.State(); s != glctx.StateUnbound {
			t.Fatalf("state = %v, want Unbound", s)
		}
		if err := ctx.Bind(); err != nil {
			t.Fatal(err)
		}
		if s := ctx.State(); s != glctx.StateActivated {
			t.Fatalf("state = %v, want Activated", s)
		}
	}
	if w, h, ok := ctx.Size(); !ok || w != 640 || h != 480 {
		t.Errorf("Size = %d, %d, %v", w, h, ok)
	}
	ctx.Terminate()
	ctx.Terminate()
	if s := ctx.State(); s != glctx.StateTerminated {
		t.Errorf("state = %v, want Terminated", s)
	}
	if lib.Terminates != 1 || lib.SurfacesFreed != 1 || lib.ContextsFreed != 1 {
		t.Errorf("released %d displays, %d surfaces, %d contexts; want 1 each",
			lib.Terminates, lib.SurfacesFreed, lib.ContextsFreed)
	}
}

func TestTerminatedContext(t *testing.T) {
	lib := egltest.New(egltest.RGBA(0x10, 8, 8, 8, 0, 24))
	ctx := initEGL(t, lib, 1)
	cfg, err := ctx.ChooseConfig(nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx.Terminate()
	if _, err := ctx.ChooseConfig(nil); !errors.Is(err, glctx.ErrDisplay) {
		t.Errorf("ChooseConfig = %v, want ErrDisplay", err)
	}
	if err := ctx.Activate(cfg, 0, nil); !errors.Is(err, glctx.ErrDisplay) {
		t.Errorf("Activate = %v, want ErrDisplay", err)
	}
	if err := ctx.Bind(); !errors.Is(err, glctx.ErrDisplay) {
		t.Errorf("Bind = %v, want ErrDisplay", err)
	}
	if err := ctx.Unbind(); !errors.Is(err, glctx.ErrDisplay) {
		t.Errorf("Unbind = %v, want ErrDisplay", err)
	}
	if got := ctx.QueryConfig(cfg, glctx.AttrRedSize); got != -1 {
		t.Errorf("QueryConfig = %d, want -1", got)
	}
	if ctx.NativeContext() != 0 || ctx.ProcAddress("glClear") != 0 {
		t.Error("terminated context exposes native values")
	}
	ctx.Flip()
	if lib.Swaps != 0 {
		t.Error("Flip reached the native API after Terminate")
	}
}

func TestTerminateWithoutActivate(t *testing.T) {
	lib := egltest.New()
	ctx := initEGL(t, lib, 1)
	ctx.Terminate()
	if lib.Terminates != 1 {
		t.Errorf("terminated %d times, want 1", lib.Terminates)
	}
	if lib.SurfacesFreed != 0 || lib.ContextsFreed != 0 {
		t.Error("released resources that were never created")
	}
	var nilCtx *glctx.Context
	nilCtx.Terminate()
}

func TestInitFailure(t *testing.T) {
	lib := egltest.New()
	lib.FailInitialize = true
	ctx, err := glctx.Init(1, 0x42, glctx.ProfileES, 2, 0, glctx.WithDriver(egl.New(lib)))
	if ctx != nil || !errors.Is(err, glctx.ErrDisplay) {
		t.Errorf("Init = %v, %v; want nil, ErrDisplay", ctx, err)
	}
	if _, err := glctx.Init(1, 0x42, glctx.Profile(9), 2, 0, glctx.WithDriver(egl.New(egltest.New()))); !errors.Is(err, glctx.ErrProfile) {
		t.Errorf("unknown profile: got %v, want ErrProfile", err)
	}
}

func TestActivateOrdering(t *testing.T) {
	lib := egltest.New(egltest.RGBA(0x10, 8, 8, 8, 0, 24))
	ctx := initEGL(t, lib, 1)
	if err := ctx.Activate(glctx.Config{}, 0, nil); !errors.Is(err, glctx.ErrConfig) {
		t.Errorf("Activate before ChooseConfig = %v, want ErrConfig", err)
	}
	if err := ctx.Bind(); !errors.Is(err, glctx.ErrBind) {
		t.Errorf("Bind before Activate = %v, want ErrBind", err)
	}
	cfg, err := ctx.ChooseConfig(nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := ctx.Activate(cfg, 0, nil); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Activate(cfg, 0, nil); !errors.Is(err, glctx.ErrContext) {
		t.Errorf("second Activate = %v, want ErrContext", err)
	}
}

func TestActivateFailureKeepsConfig(t *testing.T) {
	lib := egltest.New(egltest.RGBA(0x10, 8, 8, 8, 0, 24))
	lib.FailContext = true
	ctx := initEGL(t, lib, 1)
	cfg, err := ctx.ChooseConfig(nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := ctx.Activate(cfg, 0, nil); !errors.Is(err, glctx.ErrContext) {
		t.Fatalf("Activate = %v, want ErrContext", err)
	}
	if s := ctx.State(); s != glctx.StateConfigChosen {
		t.Errorf("state = %v, want ConfigChosen", s)
	}
	lib.FailContext = false
	if err := ctx.Activate(cfg, 0, nil); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if s, c := lib.Live(); s != 1 || c != 1 {
		t.Errorf("live surfaces, contexts = %d, %d; want 1, 1", s, c)
	}
}

func TestActivateBindFailure(t *testing.T) {
	lib := egltest.New(egltest.RGBA(0x10, 8, 8, 8, 0, 24))
	lib.FailMakeCurrent = true
	ctx := initEGL(t, lib, 1)
	cfg, err := ctx.ChooseConfig(nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := ctx.Activate(cfg, 0, nil); !errors.Is(err, glctx.ErrBind) {
		t.Fatalf("Activate = %v, want ErrBind", err)
	}
	if s := ctx.State(); s != glctx.StateUnbound {
		t.Errorf("state = %v, want Unbound", s)
	}
	if err := ctx.Bind(); !errors.Is(err, glctx.ErrBind) {
		t.Errorf("Bind = %v, want ErrBind", err)
	}
	lib.FailMakeCurrent = false
	if err := ctx.Bind(); err != nil {
		t.Fatal(err)
	}
	if s := ctx.State(); s != glctx.StateActivated {
		t.Errorf("state = %v, want Activated", s)
	}
}

func TestConfigFromOtherDisplay(t *testing.T) {
	a := initEGL(t, egltest.New(egltest.RGBA(0x10, 8, 8, 8, 0, 24)), 1)
	b := initEGL(t, egltest.New(egltest.RGBA(0x10, 8, 8, 8, 0, 24)), 2)
	cfgA, err := a.ChooseConfig(nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.ChooseConfig(nil); err != nil {
		t.Fatal(err)
	}
	if err := b.Activate(cfgA, 0, nil); !errors.Is(err, glctx.ErrConfig) {
		t.Errorf("Activate = %v, want ErrConfig", err)
	}
	if got := b.QueryConfig(cfgA, glctx.AttrRedSize); got != -1 {
		t.Errorf("QueryConfig = %d, want -1", got)
	}
}

func TestChooseConfigFailureKeepsState(t *testing.T) {
	ctx := initEGL(t, egltest.New(), 1)
	if _, err := ctx.ChooseConfig(rgb888); !errors.Is(err, glctx.ErrConfig) {
		t.Fatalf("ChooseConfig = %v, want ErrConfig", err)
	}
	if s := ctx.State(); s != glctx.StateDisplayReady {
		t.Errorf("state = %v, want DisplayReady", s)
	}
	if _, ok := ctx.Config(); ok {
		t.Error("failed choice recorded a config")
	}
}

func TestLifecycleGLX(t *testing.T) {
	lib := glxtest.New(glxtest.Multisample(0x1, 0, 0), glxtest.Multisample(0x2, 1, 4))
	ctx, err := glctx.Init(0xd15, 0x400001, glctx.ProfileCore, 3, 3,
		glctx.WithDriver(glx.New(lib, new(extension.Probe))))
	if err != nil {
		t.Fatal(err)
	}
	defer ctx.Terminate()
	cfg, err := ctx.ChooseConfig(rgb888)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Native() != 0x2 {
		t.Errorf("config = %#x, want the multisampled 0x2", cfg.Native())
	}
	if err := ctx.Activate(cfg, 0, nil); err != nil {
		t.Fatal(err)
	}
	if ctx.NativeContext() == 0 {
		t.Error("no native context")
	}
}

func TestLifecycleWGL(t *testing.T) {
	lib := wgltest.New(wgltest.Format{ColorBits: 16, DepthBits: 16}, wgltest.Format{ColorBits: 32, DepthBits: 24})
	ctx, err := glctx.Init(0xdc, 0, glctx.ProfileCompat, 2, 1,
		glctx.WithDriver(wgl.New(lib, new(extension.Probe))))
	if err != nil {
		t.Fatal(err)
	}
	defer ctx.Terminate()
	cfg, err := ctx.ChooseConfig([]glctx.Attr{
		{Key: glctx.AttrRedSize, Value: 5},
		{Key: glctx.AttrGreenSize, Value: 6},
		{Key: glctx.AttrBlueSize, Value: 5},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := ctx.QueryConfig(cfg, glctx.AttrGreenSize); got != 4 {
		t.Errorf("green = %d, want the approximated 4", got)
	}
	if _, err := ctx.ChooseNativeConfig([]int32{0}); !errors.Is(err, glctx.ErrConfig) {
		t.Errorf("ChooseNativeConfig = %v, want ErrConfig", err)
	}
	if err := ctx.Activate(cfg, 0, nil); err != nil {
		t.Fatal(err)
	}
	if w, h, ok := ctx.Size(); !ok || w != 320 || h != 240 {
		t.Errorf("Size = %d, %d, %v", w, h, ok)
	}
}

func TestErrorName(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "GLCTX_ERROR_NONE"},
		{glctx.ErrMemory, "GLCTX_ERROR_MEMORY"},
		{glctx.ErrDisplay, "GLCTX_ERROR_DISPLAY"},
		{glctx.ErrConfig, "GLCTX_ERROR_CONFIG"},
		{glctx.ErrWindow, "GLCTX_ERROR_WINDOW"},
		{glctx.ErrSurface, "GLCTX_ERROR_SURFACE"},
		{glctx.ErrContext, "GLCTX_ERROR_CONTEXT"},
		{glctx.ErrBind, "GLCTX_ERROR_BIND"},
		{glctx.ErrProfile, "GLCTX_ERROR_API"},
		{glctx.Error(200), "GLCTX_ERROR_UNKNOWN"},
		{fmt.Errorf("activate: %w", glctx.ErrSurface), "GLCTX_ERROR_SURFACE"},
		{errors.New("other"), "GLCTX_ERROR_UNKNOWN"},
	}
	for _, test := range tests {
		if got := glctx.ErrorName(test.err); got != test.want {
			t.Errorf("ErrorName(%v) = %q, want %q", test.err, got, test.want)
		}
	}
}

func TestSetLogFunction(t *testing.T) {
	var lines []string
	glctx.SetLogFunction(func(format string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, args...))
	})
	defer glctx.SetLogFunction(nil)
	lib := egltest.New(egltest.Config{Handle: 0}, egltest.RGBA(0x10, 8, 8, 8, 0, 24))
	ctx := initEGL(t, lib, 1)
	if _, err := ctx.ChooseConfig(nil); err != nil {
		t.Fatal(err)
	}
	if lib.ConfigQueries == 0 {
		t.Error("installed logger did not enable config enumeration")
	}
	var nilWarning bool
	for _, l := range lines {
		if !strings.HasSuffix(l, "\n") {
			t.Errorf("log line %q lacks a newline", l)
		}
		if strings.Contains(l, "config is nil") {
			nilWarning = true
		}
	}
	if !nilWarning {
		t.Errorf("no warning for the nil config in %q", lines)
	}
}

func TestStateString(t *testing.T) {
	if got := glctx.StateUnbound.String(); got != "Unbound" {
		t.Errorf("StateUnbound = %q", got)
	}
	if got := glctx.State(99).String(); got != "Unknown" {
		t.Errorf("State(99) = %q", got)
	}
	if got := glctx.BackendGLX.String(); got != "GLX" {
		t.Errorf("BackendGLX = %q", got)
	}
}
