// SPDX-License-Identifier: Unlicense OR MIT

package unsafe

import (
	"runtime"
	"testing"
	"unsafe"
)

func TestGoString(t *testing.T) {
	p := CString("GLX_ARB_create_context")
	if got := GoString(uintptr(unsafe.Pointer(p))); got != "GLX_ARB_create_context" {
		t.Errorf("GoString = %q", got)
	}
	runtime.KeepAlive(p)
	if got := GoString(0); got != "" {
		t.Errorf("GoString(0) = %q", got)
	}
}

func TestSliceOf(t *testing.T) {
	vals := []uintptr{1, 2, 3}
	s := SliceOf[uintptr](uintptr(unsafe.Pointer(&vals[0])), len(vals))
	if len(s) != 3 || s[2] != 3 {
		t.Errorf("SliceOf = %v", s)
	}
	runtime.KeepAlive(vals)
	if SliceOf[uintptr](0, 3) != nil {
		t.Error("SliceOf(0) is not nil")
	}
}
