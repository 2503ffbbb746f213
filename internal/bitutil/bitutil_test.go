// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bitutil

import "testing"

func TestParseHexWord(t *testing.T) {
	var nibbles [8]byte
	copy(nibbles[:], "a0000000")
	bits, err := ParseHexWord(nibbles)
	if err != nil {
		t.Fatal(err)
	}
	want := [4]bool{true, false, true, false} // 'a' = 1010
	for i, w := range want {
		if bits[i] != w {
			t.Errorf("bit %d = %v, want %v", i, bits[i], w)
		}
	}
	for i := 4; i < 32; i++ {
		if bits[i] {
			t.Errorf("bit %d should be 0", i)
		}
	}
}

func TestParseHexWordInvalidDigit(t *testing.T) {
	var nibbles [8]byte
	copy(nibbles[:], "0000000g")
	if _, err := ParseHexWord(nibbles); err == nil {
		t.Fatal("expected error for invalid hex digit")
	}
}
