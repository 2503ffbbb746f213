// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package route

import (
	"testing"

	"github.com/vecthor/tdrzip/codebook"
)

func TestRouteValidateAcceptsCompleteCoverage(t *testing.T) {
	rt := Route{Total: 4, Replacements: []Replacement{
		{CDW: codebook.LXX, Start: 0, End: 1},
		{CDW: codebook.LLX, Start: 1, End: 3},
		{CDW: codebook.HXX, Start: 3, End: 4},
	}}
	if err := rt.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestRouteValidateRejectsGap(t *testing.T) {
	rt := Route{Total: 4, Replacements: []Replacement{
		{CDW: codebook.LXX, Start: 0, End: 1},
		{CDW: codebook.HXX, Start: 3, End: 4},
	}}
	if err := rt.Validate(); err == nil {
		t.Fatal("Validate() should reject incomplete coverage")
	}
}

func TestRouteValidateRejectsOverlap(t *testing.T) {
	rt := Route{Total: 4, Replacements: []Replacement{
		{CDW: codebook.LLX, Start: 0, End: 2},
		{CDW: codebook.LLX, Start: 1, End: 3},
		{CDW: codebook.HXX, Start: 3, End: 4},
	}}
	if err := rt.Validate(); err == nil {
		t.Fatal("Validate() should reject overlapping replacements")
	}
}

func TestMergeRewritesRepeatedCDW(t *testing.T) {
	rt := Route{Total: 3, Replacements: []Replacement{
		{CDW: codebook.LLX, Start: 0, End: 1},
		{CDW: codebook.LLX, Start: 1, End: 2},
		{CDW: codebook.LLX, Start: 2, End: 3},
	}}
	merged := Merge(rt)
	if merged.Replacements[0].CDW != codebook.LLX {
		t.Fatalf("first replacement must keep its original CDW, got %v", merged.Replacements[0].CDW)
	}
	if merged.Replacements[1].CDW != codebook.XXX || merged.Replacements[2].CDW != codebook.XXX {
		t.Fatalf("consecutive repeats must both become XXX, got %v %v",
			merged.Replacements[1].CDW, merged.Replacements[2].CDW)
	}
}

func TestMergeDoesNotChainAcrossDistinctRuns(t *testing.T) {
	rt := Route{Total: 4, Replacements: []Replacement{
		{CDW: codebook.LLX, Start: 0, End: 1},
		{CDW: codebook.LLX, Start: 1, End: 2},
		{CDW: codebook.HHX, Start: 2, End: 3},
		{CDW: codebook.LLX, Start: 3, End: 4},
	}}
	merged := Merge(rt)
	if merged.Replacements[3].CDW != codebook.LLX {
		t.Fatalf("a new run after a different CDW must not be merged, got %v", merged.Replacements[3].CDW)
	}
}
