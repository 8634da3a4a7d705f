// SPDX-License-Identifier: Unlicense OR MIT

package selector

import "testing"

func TestBest(t *testing.T) {
	tests := []struct {
		name  string
		cands []Candidate
		want  int
	}{
		{
			name:  "no sample buffers picks first",
			cands: []Candidate{{true, 0, 0}, {true, 0, 8}, {true, 0, 4}},
			want:  0,
		},
		{
			name:  "highest samples wins",
			cands: []Candidate{{true, 0, 0}, {true, 1, 2}, {true, 1, 8}, {true, 1, 4}},
			want:  2,
		},
		{
			name:  "ties keep first",
			cands: []Candidate{{true, 0, 0}, {true, 1, 4}, {true, 1, 4}},
			want:  1,
		},
		{
			name:  "samples without buffers never replace",
			cands: []Candidate{{true, 1, 2}, {true, 0, 16}},
			want:  0,
		},
		{
			name:  "unusable skipped",
			cands: []Candidate{{false, 1, 16}, {true, 0, 0}, {false, 1, 32}},
			want:  1,
		},
	}
	for _, test := range tests {
		got, ok := Best(test.cands)
		if !ok || got != test.want {
			t.Errorf("%s: Best = %d, %v, want %d", test.name, got, ok, test.want)
		}
	}
}

func TestBestEmpty(t *testing.T) {
	if _, ok := Best(nil); ok {
		t.Error("Best(nil) succeeded")
	}
	if _, ok := Best([]Candidate{{Usable: false}}); ok {
		t.Error("Best with no usable candidate succeeded")
	}
}

func TestFirstValid(t *testing.T) {
	if i, ok := FirstValid([]uintptr{0, 0, 0x10, 0x20}); !ok || i != 2 {
		t.Errorf("FirstValid = %d, %v, want 2", i, ok)
	}
	if _, ok := FirstValid([]uintptr{0, 0}); ok {
		t.Error("FirstValid of nil entries succeeded")
	}
	if _, ok := FirstValid[uintptr](nil); ok {
		t.Error("FirstValid[uintptr](nil) succeeded")
	}
}

func TestColorBucket(t *testing.T) {
	tests := []struct {
		sum  int32
		want byte
	}{
		{0, 32}, {14, 32}, {15, 16}, {16, 16}, {23, 16}, {24, 32}, {32, 32},
	}
	for _, test := range tests {
		if got := ColorBucket(test.sum); got != test.want {
			t.Errorf("ColorBucket(%d) = %d, want %d", test.sum, got, test.want)
		}
	}
	if ChannelBits(16) != 4 || ChannelBits(32) != 8 {
		t.Error("ChannelBits mismatch")
	}
}
