// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package stats

import (
	"testing"

	"github.com/vecthor/tdrzip/codebook"
	"github.com/vecthor/tdrzip/route"
)

func TestRecordReplacementAccumulates(t *testing.T) {
	c := NewCompressor()
	c.RecordReplacement(route.Replacement{CDW: codebook.LLLL, Start: 0, End: 8, Stage: route.StageAnchor}) // enc len 4, window 8
	c.RecordReplacement(route.Replacement{CDW: codebook.XXX, Start: 8, End: 16, Stage: route.StageAnchor}) // enc len 0, window 8
	if c.NumReplacements != 2 {
		t.Fatalf("NumReplacements = %d, want 2", c.NumReplacements)
	}
	if c.NumCDWRepetition != 1 {
		t.Fatalf("NumCDWRepetition = %d, want 1", c.NumCDWRepetition)
	}
	if c.OverallBits != 16 {
		t.Fatalf("OverallBits = %d, want 16", c.OverallBits)
	}
	if c.OverallCompressedBits != 4 {
		t.Fatalf("OverallCompressedBits = %d, want 4", c.OverallCompressedBits)
	}
	if c.CounterCDWs[codebook.LLLL] != 1 {
		t.Fatalf("CounterCDWs[LLLL] = %d, want 1", c.CounterCDWs[codebook.LLLL])
	}
	if c.NumStage1Repls != 2 {
		t.Fatalf("NumStage1Repls = %d, want 2", c.NumStage1Repls)
	}
}

func TestRecordReplacementTracksGapFillAndSBF(t *testing.T) {
	c := NewCompressor()
	c.RecordReplacement(route.Replacement{CDW: codebook.LLX, Start: 0, End: 2, Stage: route.StageGapFill})
	c.RecordReplacement(route.Replacement{CDW: codebook.HXX, Start: 2, End: 3, Stage: route.StageGapFill, SBF: true})
	if c.NumStage2Repls != 2 {
		t.Fatalf("NumStage2Repls = %d, want 2", c.NumStage2Repls)
	}
	if c.NumSBF != 1 {
		t.Fatalf("NumSBF = %d, want 1", c.NumSBF)
	}
	if c.NumStage1Repls != 0 {
		t.Fatalf("NumStage1Repls = %d, want 0", c.NumStage1Repls)
	}
}

func TestCompressionRatio(t *testing.T) {
	c := NewCompressor()
	if got := c.CompressionRatio(); got != 0 {
		t.Fatalf("ratio on empty Compressor = %v, want 0", got)
	}
	c.RecordReplacement(route.Replacement{CDW: codebook.LLLL, Start: 0, End: 8})
	if got, want := c.CompressionRatio(), 0.5; got != want {
		t.Fatalf("ratio = %v, want %v", got, want)
	}
}

func TestRecordOverfill(t *testing.T) {
	c := NewCompressor()
	c.RecordOverfill()
	c.RecordOverfill()
	if c.NumOverfill != 2 {
		t.Fatalf("NumOverfill = %d, want 2", c.NumOverfill)
	}
}

func TestMergeFoldsCounters(t *testing.T) {
	total := NewCompressor()
	part1 := NewCompressor()
	part1.RecordReplacement(route.Replacement{CDW: codebook.LLLL, Start: 0, End: 8, Stage: route.StageAnchor})
	part1.RecordOverfill()
	part2 := NewCompressor()
	part2.RecordReplacement(route.Replacement{CDW: codebook.LXX, Start: 0, End: 1, Stage: route.StageGapFill, SBF: true})

	total.Merge(part1)
	total.Merge(part2)

	if total.NumReplacements != 2 {
		t.Fatalf("NumReplacements = %d, want 2", total.NumReplacements)
	}
	if total.NumOverfill != 1 {
		t.Fatalf("NumOverfill = %d, want 1", total.NumOverfill)
	}
	if total.OverallBits != 9 {
		t.Fatalf("OverallBits = %d, want 9", total.OverallBits)
	}
	if total.NumStage1Repls != 1 || total.NumStage2Repls != 1 || total.NumSBF != 1 {
		t.Fatalf("stage counters not merged correctly: stage1=%d stage2=%d sbf=%d", total.NumStage1Repls, total.NumStage2Repls, total.NumSBF)
	}
	if total.CounterCDWs[codebook.LLLL] != 1 || total.CounterCDWs[codebook.LXX] != 1 {
		t.Fatalf("per-CDW counters not merged correctly: %+v", total.CounterCDWs)
	}
}
