// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package route

import (
	"sort"

	"github.com/vecthor/tdrzip/codebook"
	"github.com/vecthor/tdrzip/tdr"
)

// GreedyPlanner runs the two (plus one optional) stage planning algorithm of
// spec.md section 4.4 against a CDWMap built over the full input.
type GreedyPlanner struct {
	Merging bool
}

// Plan builds a Route covering bv entirely, anchoring on the highest-benefit
// non-overlapping replacements first (stage 1), filling whatever gaps remain
// with recursive single-bit/byte lookups (stage 2), and optionally merging
// consecutive identical CDWs into repetition markers (stage 3).
func (p GreedyPlanner) Plan(bv tdr.BitVec, cb *codebook.Codebook, m CDWMap) (Route, error) {
	cov := newCoverage(len(bv))
	var repls []Replacement

	edges := m.Edges()
	// Mandated lexicographic order (spec.md section 9 open question
	// resolution): benefit descending, then length descending, then start
	// ascending — a genuine total order, unlike the original's non-transitive
	// two-clause AND comparator.
	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		if a.Benefit != b.Benefit {
			return a.Benefit > b.Benefit
		}
		if a.Length != b.Length {
			return a.Length > b.Length
		}
		return a.Repl.Start < b.Repl.Start
	})
	for _, e := range edges {
		r := e.Repl
		r.Stage = StageAnchor
		addToCoveredRoute(cov, &repls, r)
	}

	// Stage 2: gap filling.
	for _, g := range cov.gaps() {
		fillGap(bv, cb, m, cov, &repls, g[0], g[1])
	}

	return Finalize(len(bv), repls, p.Merging)
}

// fillGap implements spec.md section 4.4 stage 2: a single-trit window
// always has a valid replacement (LXX/HXX are permanently static), so the
// recursion is guaranteed to terminate.
func fillGap(bv tdr.BitVec, cb *codebook.Codebook, m CDWMap, cov coverage, repls *[]Replacement, a, b int) {
	if b-a == 1 {
		// Single-trit windows always resolve via the permanently static
		// LXX/HXX entries, independent of whether CDWMap happened to record
		// this exact position. A DontCare trit has no literal key (R1), but
		// the position still has to go somewhere: it resolves to HXX, the
		// same coercion the UDW-to-bool storage in the original compressor
		// applied to its don't-care marker. tdr.Equal treats DontCare as a
		// wildcard, so either static literal would round-trip; HXX is
		// chosen for consistency with that original behavior.
		lit, ok := bv.Slice(a, b).Literal()
		if !ok {
			lit = "1"
		}
		cdw := cb.Lookup(lit)
		addToCoveredRoute(cov, repls, Replacement{
			CDW: cdw, Start: a, End: b, Benefit: cb.Benefit(cdw),
			Stage: StageGapFill, SBF: true,
		})
		return
	}
	if r, ok := m.Lookup(a, b); ok {
		rr := *r
		rr.Stage = StageGapFill
		addToCoveredRoute(cov, repls, rr)
		return
	}
	fillGap(bv, cb, m, cov, repls, a, a+1)
	fillGap(bv, cb, m, cov, repls, a+1, b)
}
