// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package tdr

import "strings"

// BitVec is a finite ordered sequence of trits, addressed by 0-based index.
type BitVec []Trit

// NewBitVec parses a literal string of '0', '1', 'X' (case-insensitive for
// the don't-care marker) characters into a BitVec.
func NewBitVec(s string) (BitVec, error) {
	bv := make(BitVec, 0, len(s))
	for i := 0; i < len(s); i++ {
		t, ok := ParseTrit(s[i])
		if !ok {
			return nil, Error("invalid trit character '" + string(s[i]) + "'")
		}
		bv = append(bv, t)
	}
	return bv, nil
}

// String renders the vector back to its literal '0'/'1'/'X' form.
func (bv BitVec) String() string {
	var sb strings.Builder
	sb.Grow(len(bv))
	for _, t := range bv {
		sb.WriteByte(t.Byte())
	}
	return sb.String()
}

// Slice returns the half-open window [start,end) as a new BitVec sharing the
// underlying array — callers must not mutate it, matching the teacher's
// read-only BufferedReader contracts.
func (bv BitVec) Slice(start, end int) BitVec { return bv[start:end] }

// Literal returns the window's literal bit string and reports whether the
// window is free of DontCare trits. Invariant (R1) requires this to hold for
// any window a Replacement claims to cover: a don't-care trit can never be a
// literal key in the udw->cdw map.
func (bv BitVec) Literal() (string, bool) {
	var sb strings.Builder
	sb.Grow(len(bv))
	for _, t := range bv {
		if t == DontCare {
			return "", false
		}
		sb.WriteByte(t.Byte())
	}
	return sb.String(), true
}

// Equal reports whether two windows are consistent trit-by-trit. A
// DontCare trit on either side matches any trit on the other: the
// position was unconstrained in the golden TDR, so a reconstruction that
// resolved it to a concrete 0 or 1 (the only values a CDW can ever carry,
// per the static LXX/HXX fallback in the planner's gap-filling stage)
// still round-trips correctly.
func Equal(a, b BitVec) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] == DontCare || b[i] == DontCare {
			continue
		}
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
