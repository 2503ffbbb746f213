// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package stats accumulates the per-partition and overall counters the
// pipeline reports, grounded on the original CompressorStats/EmitterStats
// split (spec.md section 4, "Stats").
package stats

import (
	"github.com/vecthor/tdrzip/codebook"
	"github.com/vecthor/tdrzip/route"
)

// Compressor tracks per-partition and running-total compression counters.
type Compressor struct {
	NumSBF           int // single-bit-fallback count (stage 2 degenerate windows)
	NumReplacements  int
	NumStage1Repls   int
	NumStage2Repls   int
	NumCDWRepetition int // XXX merge markers emitted
	NumOverfill      int // CodebookOverfill events, recovered per spec.md section 7

	OverallBits           int
	OverallCompressedBits int

	CounterCDWs       map[codebook.CDW]int
	CounterCDWsLength map[int]int64
}

// NewCompressor returns a zeroed Compressor ready to accumulate one run.
func NewCompressor() *Compressor {
	return &Compressor{
		CounterCDWs:       map[codebook.CDW]int{},
		CounterCDWsLength: map[int]int64{},
	}
}

// RecordReplacement folds one finalized replacement into the running
// totals, including its GreedyPlanner stage provenance (spec.md section
// 4.4): StageAnchor increments NumStage1Repls, StageGapFill increments
// NumStage2Repls, and an SBF-resolved gap fill additionally increments
// NumSBF. FormalPlanner output carries StageUnspecified and affects neither
// counter — the PBO model has no stage-1/stage-2 split to report.
func (c *Compressor) RecordReplacement(r route.Replacement) {
	cdw, udwLen := r.CDW, r.Length()
	c.NumReplacements++
	switch r.Stage {
	case route.StageAnchor:
		c.NumStage1Repls++
	case route.StageGapFill:
		c.NumStage2Repls++
		if r.SBF {
			c.NumSBF++
		}
	}
	if cdw == codebook.XXX {
		c.NumCDWRepetition++
	}
	c.CounterCDWs[cdw]++
	encLen := codebook.Length(cdw)
	c.CounterCDWsLength[encLen] += int64(udwLen)
	c.OverallBits += udwLen
	c.OverallCompressedBits += encLen
}

// RecordOverfill counts a recovered CodebookOverfill event (spec.md
// section 7).
func (c *Compressor) RecordOverfill() { c.NumOverfill++ }

// CompressionRatio returns compressed/original bit length for this
// partition, or 0 if nothing has been recorded yet.
func (c *Compressor) CompressionRatio() float64 {
	if c.OverallBits == 0 {
		return 0
	}
	return float64(c.OverallCompressedBits) / float64(c.OverallBits)
}

// Merge folds another Compressor's counters into c, used to accumulate
// per-partition stats into a program-level total.
func (c *Compressor) Merge(other *Compressor) {
	c.NumSBF += other.NumSBF
	c.NumReplacements += other.NumReplacements
	c.NumStage1Repls += other.NumStage1Repls
	c.NumStage2Repls += other.NumStage2Repls
	c.NumCDWRepetition += other.NumCDWRepetition
	c.NumOverfill += other.NumOverfill
	c.OverallBits += other.OverallBits
	c.OverallCompressedBits += other.OverallCompressedBits
	for cdw, n := range other.CounterCDWs {
		c.CounterCDWs[cdw] += n
	}
	for l, n := range other.CounterCDWsLength {
		c.CounterCDWsLength[l] += n
	}
}

// Emitter tracks the per-partition cycle/marker counts the emitter produces
// (spec.md section 6, "Output stream").
type Emitter struct {
	Cycles       int
	ConfigCycles int
	TDIResets    int
	ComprDR      int
	ComprExit    int
	ComprRepeat  int
	MultiRep     int
}
