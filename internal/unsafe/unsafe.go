// SPDX-License-Identifier: Unlicense OR MIT

// Package unsafe converts between Go values and the C strings and arrays
// returned by native libraries.
package unsafe

import (
	"unsafe"
)

// GoString converts a NUL-terminated C string to a Go string. A zero
// pointer converts to the empty string.
func GoString(p uintptr) string {
	if p == 0 {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(p)), n))
}

// CString returns a NUL-terminated copy of s.
func CString(s string) *byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return &b[0]
}

// SliceOf returns a view of n elements of type T stored at the native
// pointer p.
func SliceOf[T any](p uintptr, n int) []T {
	if p == 0 || n <= 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(p)), n)
}
