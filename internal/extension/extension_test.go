// SPDX-License-Identifier: Unlicense OR MIT

package extension

import "testing"

func TestHas(t *testing.T) {
	const ext = "GLX_ARB_create_context"
	tests := []struct {
		list string
		want bool
	}{
		{"GLX_ARB_multisample GLX_ARB_create_context GLX_EXT_visual_info", true},
		{"GLX_ARB_create_context", true},
		{"GLX_ARB_create_context ", true},
		{" GLX_ARB_create_context", true},
		{"GLX_ARB_create_context_profile", false},
		{"GLX_ARB_multisample GLX_ARB_create_context_profile", false},
		{"XGLX_ARB_create_context", false},
		{"GLX_ARB_create_context_profile GLX_ARB_create_context", true},
		{"", false},
	}
	for _, test := range tests {
		if got := Has(test.list, ext); got != test.want {
			t.Errorf("Has(%q) = %v, want %v", test.list, got, test.want)
		}
	}
	if Has("a b c", "") {
		t.Error("empty name matched")
	}
}

func TestProbeCachesOnce(t *testing.T) {
	var p Probe
	loads := 0
	load := func() string {
		loads++
		return "WGL_ARB_create_context WGL_ARB_create_context_profile"
	}
	for i := 0; i < 3; i++ {
		if !p.Supports(load, "WGL_ARB_create_context_profile") {
			t.Fatal("extension not found")
		}
	}
	if loads != 1 {
		t.Errorf("extension string loaded %d times, want 1", loads)
	}

	procLoads := 0
	absent := func(string) uintptr {
		procLoads++
		return 0
	}
	for i := 0; i < 3; i++ {
		if addr := p.Proc("wglCreateContextAttribsARB", absent); addr != 0 {
			t.Fatalf("Proc = %#x, want 0", addr)
		}
	}
	if procLoads != 1 {
		t.Errorf("entry point resolved %d times, want 1", procLoads)
	}
	if got := p.Resolves(); got != 2 {
		t.Errorf("Resolves() = %d, want 2", got)
	}
}

func TestProbeReset(t *testing.T) {
	var p Probe
	p.Extensions(func() string { return "A" })
	p.Reset()
	if got := p.Extensions(func() string { return "B" }); got != "B" {
		t.Errorf("after Reset got %q, want B", got)
	}
}
