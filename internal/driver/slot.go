// SPDX-License-Identifier: Unlicense OR MIT

package driver

// Slot holds an optional native resource. Ownership is tracked explicitly
// because a zero handle is a valid resource on some backends. The zero
// Slot is empty.
type Slot[T any] struct {
	v  T
	ok bool
}

// Set stores v, replacing any previous value.
func (s *Slot[T]) Set(v T) {
	s.v, s.ok = v, true
}

// Get returns the stored value and whether one is present.
func (s *Slot[T]) Get() (T, bool) {
	return s.v, s.ok
}

// Valid reports whether a value is present.
func (s *Slot[T]) Valid() bool {
	return s.ok
}

// Take empties the slot and returns its previous content. Releasing a
// resource through Take guarantees a single release.
func (s *Slot[T]) Take() (T, bool) {
	v, ok := s.v, s.ok
	var zero T
	s.v, s.ok = zero, false
	return v, ok
}
