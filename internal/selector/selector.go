// SPDX-License-Identifier: Unlicense OR MIT

// Package selector implements the config selection rules shared by the
// backends.
package selector

import "golang.org/x/exp/slices"

// Candidate describes a matching config for multisample scoring.
type Candidate struct {
	// Usable is false for configs without a visual; they are never chosen.
	Usable        bool
	SampleBuffers int32
	Samples       int32
}

// Best returns the index of the preferred candidate: the first usable one,
// replaced only by a later candidate with sample buffers and strictly more
// samples. Ties keep the earlier candidate.
func Best(cands []Candidate) (int, bool) {
	best := -1
	var bestSamples int32
	for i, c := range cands {
		if !c.Usable {
			continue
		}
		if best < 0 || (c.SampleBuffers != 0 && c.Samples > bestSamples) {
			best = i
			bestSamples = c.Samples
		}
	}
	return best, best >= 0
}

// FirstValid returns the index of the first non-nil config.
func FirstValid[T comparable](cfgs []T) (int, bool) {
	var null T
	i := slices.IndexFunc(cfgs, func(c T) bool { return c != null })
	return i, i >= 0
}

// ColorBucket maps the sum of the requested channel sizes to the colour
// depth of a pixel format request: 16 bits for sums in [15, 24), 32 bits
// otherwise.
func ColorBucket(sum int32) byte {
	if sum >= 15 && sum < 24 {
		return 16
	}
	return 32
}

// ChannelBits estimates the size of a single colour channel of a pixel
// format that only records its total colour depth. The value is an
// approximation: 16-bit formats report 4 bits and every other format 8.
func ChannelBits(colorBits byte) int {
	if colorBits == 16 {
		return 4
	}
	return 8
}
