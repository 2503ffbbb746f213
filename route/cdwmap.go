// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package route

import (
	"github.com/vecthor/tdrzip/codebook"
	"github.com/vecthor/tdrzip/tdr"
)

// CDWMap is the two-level index CDWMap[start][end] = *Replacement described
// in spec.md section 4.4 stage 1.1: for every admissible sub-window of the
// input whose length is a valid UDW length and whose bits currently have an
// active codebook entry, the replacement that would claim it.
type CDWMap map[int]map[int]*Replacement

// udwLengths are the only window widths the codebook ever assigns a UDW to:
// a single trit, or a 4- or 8-trit byte-aligned run.
var udwLengths = [...]int{1, 4, 8}

// BuildCDWMap recursively enumerates every admissible sub-window of each
// sliding 8-trit block (stride permute) and records a Replacement for every
// window whose literal bits are currently covered by cb.
func BuildCDWMap(bv tdr.BitVec, cb *codebook.Codebook, permute int) CDWMap {
	if permute < 1 {
		permute = 1
	}
	m := CDWMap{}
	n := len(bv)
	for blockStart := 0; blockStart < n; blockStart += permute {
		blockEnd := blockStart + 8
		if blockEnd > n {
			blockEnd = n
		}
		scanBlock(bv, cb, blockStart, blockEnd, m)
	}
	return m
}

func scanBlock(bv tdr.BitVec, cb *codebook.Codebook, blockStart, blockEnd int, m CDWMap) {
	for start := blockStart; start < blockEnd; start++ {
		for _, l := range udwLengths {
			end := start + l
			if end > blockEnd {
				continue
			}
			recordCandidate(bv, cb, start, end, m)
		}
	}
}

func recordCandidate(bv tdr.BitVec, cb *codebook.Codebook, start, end int, m CDWMap) {
	lit, ok := bv.Slice(start, end).Literal()
	if !ok {
		return
	}
	cdw := cb.Lookup(lit)
	if !codebook.IsValid(cdw) {
		return
	}
	if _, ok := m[start]; !ok {
		m[start] = map[int]*Replacement{}
	}
	if _, exists := m[start][end]; exists {
		return
	}
	m[start][end] = &Replacement{
		CDW:     cdw,
		Start:   start,
		End:     end,
		Benefit: cb.Benefit(cdw),
	}
}

// Edges flattens the map into the (length, benefit, replacement) triples
// described by spec.md section 4.4 stage 1.2, keeping only strictly
// beneficial replacements.
type Edge struct {
	Length  int
	Benefit int
	Repl    Replacement
}

func (m CDWMap) Edges() []Edge {
	var edges []Edge
	for _, byEnd := range m {
		for _, r := range byEnd {
			if r.Benefit <= 0 {
				continue
			}
			edges = append(edges, Edge{Length: r.Length(), Benefit: r.Benefit, Repl: *r})
		}
	}
	return edges
}

// Lookup fetches the replacement claiming exactly [start,end), if any.
func (m CDWMap) Lookup(start, end int) (*Replacement, bool) {
	byEnd, ok := m[start]
	if !ok {
		return nil, false
	}
	r, ok := byEnd[end]
	return r, ok
}
