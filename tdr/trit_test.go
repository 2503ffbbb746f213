// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package tdr

import "testing"

func TestParseTrit(t *testing.T) {
	tests := []struct {
		in   byte
		want Trit
		ok   bool
	}{
		{'0', Low, true},
		{'1', High, true},
		{'X', DontCare, true},
		{'x', DontCare, true},
		{'2', 0, false},
		{' ', 0, false},
	}
	for _, tc := range tests {
		got, ok := ParseTrit(tc.in)
		if ok != tc.ok {
			t.Errorf("ParseTrit(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("ParseTrit(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestTritStringRoundTrip(t *testing.T) {
	for _, tr := range []Trit{Low, High, DontCare} {
		b := tr.Byte()
		got, ok := ParseTrit(b)
		if !ok || got != tr {
			t.Errorf("round trip of %v through byte %q failed: got %v, ok=%v", tr, b, got, ok)
		}
	}
}
