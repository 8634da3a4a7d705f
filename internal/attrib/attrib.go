// SPDX-License-Identifier: Unlicense OR MIT

// Package attrib translates portable config attributes to native codes and
// packs them into terminated native attribute lists.
package attrib

import (
	"go.uber.org/zap"

	"gioui.org/glctx/internal/driver"
	"gioui.org/glctx/internal/log"
)

// Table maps the portable attribute codes of a backend to its native
// codes. Codes[i] is the native code of portable code i+1.
type Table struct {
	Codes [driver.NumAttribs]int32
	// Terminator ends every native list of the backend.
	Terminator int32
}

// Translate returns the native code for a. AttribNone and codes outside
// the table have no native equivalent.
func (t *Table) Translate(a driver.Attrib) (int32, bool) {
	if a <= driver.AttribNone || int(a) > len(t.Codes) {
		return 0, false
	}
	return t.Codes[a-1], true
}

// Pack returns a native list holding the translated attrs followed by
// defaults and the terminator. Caller pairs come first so that backends
// honouring the first occurrence of a key let them override defaults.
// attrs stops at the first AttribNone key; defaults must be terminated.
// The result has exactly 2*(n+m)+1 elements.
func (t *Table) Pack(attrs []driver.Attr, defaults []int32) ([]int32, error) {
	n := CountPortable(attrs)
	m, ok := t.CountNative(defaults)
	if !ok {
		log.Logger().Error("unterminated native attribute list", zap.Int("len", len(defaults)))
		return nil, driver.ErrConfig
	}
	buf := make([]int32, 0, 2*(n+m)+1)
	for _, a := range attrs[:n] {
		code, ok := t.Translate(a.Key)
		if !ok {
			log.Logger().Error("bad attribute code", zap.Int32("code", int32(a.Key)))
			return nil, driver.ErrConfig
		}
		buf = append(buf, code, a.Value)
	}
	buf = append(buf, defaults[:2*m]...)
	buf = append(buf, t.Terminator)
	return buf, nil
}

// Passthrough returns native unmodified if it is terminated by the
// backend's terminator.
func (t *Table) Passthrough(native []int32) ([]int32, error) {
	if _, ok := t.CountNative(native); !ok {
		log.Logger().Error("unterminated native attribute list", zap.Int("len", len(native)))
		return nil, driver.ErrConfig
	}
	return native, nil
}

// CountPortable returns the number of pairs before the first AttribNone.
func CountPortable(attrs []driver.Attr) int {
	for i, a := range attrs {
		if a.Key == driver.AttribNone {
			return i
		}
	}
	return len(attrs)
}

// CountNative returns the number of pairs preceding the terminator in
// native. A nil list counts as empty; a non-nil list lacking the
// terminator at a key position is reported as not ok.
func (t *Table) CountNative(native []int32) (int, bool) {
	if native == nil {
		return 0, true
	}
	for i := 0; i < len(native); i += 2 {
		if native[i] == t.Terminator {
			return i / 2, true
		}
	}
	return 0, false
}
