// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package codebook

import "testing"

func TestEncodingDerivedFromName(t *testing.T) {
	tests := map[CDW]string{
		XXX:  "",
		LXX:  "0",
		HXX:  "1",
		LLX:  "00",
		HHX:  "11",
		LLL:  "000",
		HHH:  "111",
		LLLL: "0000",
		HHHH: "1111",
		HLHL: "1010",
	}
	for cdw, want := range tests {
		got, ok := Encoding(cdw)
		if !ok {
			t.Errorf("Encoding(%v) not found", cdw)
			continue
		}
		if got != want {
			t.Errorf("Encoding(%v) = %q, want %q", cdw, got, want)
		}
		if Length(cdw) != len(want) {
			t.Errorf("Length(%v) = %d, want %d", cdw, Length(cdw), len(want))
		}
	}
}

func TestEncodingInjective(t *testing.T) {
	seen := map[string]CDW{}
	for cdw := range names {
		enc, _ := Encoding(cdw)
		if other, ok := seen[enc]; ok {
			t.Errorf("encoding %q shared by %v and %v (invariant C1 violated)", enc, other, cdw)
		}
		seen[enc] = cdw
	}
}

func TestIsEmptyOnlyXXX(t *testing.T) {
	for cdw := range names {
		want := cdw == XXX
		if IsEmpty(cdw) != want {
			t.Errorf("IsEmpty(%v) = %v, want %v", cdw, IsEmpty(cdw), want)
		}
	}
}

func TestIsStaticNonExtended(t *testing.T) {
	for _, cdw := range []CDW{LXX, HXX} {
		if !IsStatic(cdw, false) || !IsStatic(cdw, true) {
			t.Errorf("%v must be static regardless of extended mode", cdw)
		}
	}
	for _, cdw := range []CDW{LLX, LHX, HLX, HHX} {
		if !IsStatic(cdw, false) {
			t.Errorf("%v must be static in non-extended mode", cdw)
		}
		if IsStatic(cdw, true) {
			t.Errorf("%v must NOT be static in extended mode", cdw)
		}
	}
	for _, cdw := range []CDW{LLL, HHHH} {
		if IsStatic(cdw, false) || IsStatic(cdw, true) {
			t.Errorf("%v must never be static", cdw)
		}
	}
}

func TestIsValid(t *testing.T) {
	if IsValid(None) {
		t.Error("None must not be valid")
	}
	if !IsValid(XXX) {
		t.Error("XXX must be valid")
	}
}
