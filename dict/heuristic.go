// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package dict implements the two dynamic-dictionary selection strategies
// described in spec.md sections 4.2 and 4.3: HeuristicSelector (a greedy
// frequency-scored covering) and FormalSelector (a pseudo-boolean
// optimization model built against package sat).
package dict

import (
	"sort"

	"github.com/vecthor/tdrzip/codebook"
	"github.com/vecthor/tdrzip/tdr"
)

// HeuristicParams configures HeuristicSelector, one field per
// config.Config option named in spec.md section 6 (HEUR_*).
type HeuristicParams struct {
	MaxCDWs   int
	InnerFreq int // HEUR_INNER_FREQ: lower cutoff for the inner filter
	OuterFreq int // HEUR_OUTER_FREQ: lower cutoff for the outer filter
	Weight    int // HEUR_WEIGHT: additive byte-length bias
	Permute   int // HEUR_PERMUTE: stride of the permutation scan, >=1
	ByteMode  bool // when true, scan every length 1..8 instead of {1,4,8}
}

// HeuristicSelector implements spec.md section 4.2's five-step algorithm.
type HeuristicSelector struct {
	Params HeuristicParams
}

// candidate tracks one distinct literal bit string seen during the
// permutation scan, together with its running score across the filter
// stages.
type candidate struct {
	bits  string
	length int
	score int
}

// candidateLengths returns the admissible sub-window widths: {1,4,8} by
// default, or every width 1..8 in byte mode.
func (p HeuristicParams) candidateLengths() []int {
	if p.ByteMode {
		out := make([]int, 8)
		for i := range out {
			out[i] = i + 1
		}
		return out
	}
	return []int{1, 4, 8}
}

// Select installs up to Params.MaxCDWs dynamic UDWs into cb, chosen to
// maximize uncovered-bit reduction (spec.md section 4.2). It returns the
// number of candidates actually installed via codebook.StoreDyn, and the
// number of attempts that hit CodebookOverfill (spec.md section 7: recovered,
// counted, never fatal).
func (hs HeuristicSelector) Select(bv tdr.BitVec, cb *codebook.Codebook) (installed, overfill int) {
	p := hs.Params
	if p.Permute < 1 {
		p.Permute = 1
	}

	// Step 1: permutation scan.
	freq := map[string]int{}
	lengthOf := map[string]int{}
	for start := 0; start < len(bv); start += p.Permute {
		for _, l := range p.candidateLengths() {
			end := start + l
			if end > len(bv) {
				continue
			}
			lit, ok := bv.Slice(start, end).Literal()
			if !ok {
				continue
			}
			freq[lit]++
			lengthOf[lit] = l
		}
	}

	// Step 2: score.
	var cands []candidate
	for bits, f := range freq {
		l := lengthOf[bits]
		w := 1
		if l == 8 {
			w += p.Weight
		}
		cands = append(cands, candidate{bits: bits, length: l, score: f * w})
	}
	sortCandidatesDesc(cands)

	// Step 3: inner filter.
	cands = hs.innerFilter(bv, cands, p)

	// Step 4: outer filter (greedy covering).
	return hs.outerFilter(bv, cb, cands, p)
}

// innerFilter recomputes each candidate's score from a non-overlapping
// intra-string scan of the full input, demoting sequences that mostly
// overlap themselves, then truncates the list at the point the cutoff
// frequency (or the MaxCDWs minimum-keep floor) stops being met.
func (hs HeuristicSelector) innerFilter(bv tdr.BitVec, cands []candidate, p HeuristicParams) []candidate {
	var kept []candidate
	for i, c := range cands {
		freq := countNonOverlapping(bv, c.bits)
		w := 1
		if c.length == 8 {
			w += p.Weight
		}
		c.score = freq * w
		if c.score >= p.InnerFreq || i < p.MaxCDWs {
			kept = append(kept, c)
			continue
		}
		break
	}
	sortCandidatesDesc(kept)
	return kept
}

// countNonOverlapping counts non-overlapping literal occurrences of bits in
// bv, skipping any window that straddles a don't-care trit.
func countNonOverlapping(bv tdr.BitVec, bits string) int {
	n := len(bits)
	count := 0
	i := 0
	for i+n <= len(bv) {
		w, ok := bv.Slice(i, i+n).Literal()
		if ok && w == bits {
			count++
			i += n
			continue
		}
		i++
	}
	return count
}

// outerFilter greedily installs candidates that still cover uncovered
// positions, rescoring the tail against a coverage snapshot on every
// iteration (spec.md section 4.2 step 4).
func (hs HeuristicSelector) outerFilter(bv tdr.BitVec, cb *codebook.Codebook, cands []candidate, p HeuristicParams) (installed, overfill int) {
	if len(cands) == 0 {
		return 0, 0
	}
	covered := make([]bool, len(bv))

	remaining := cands
	for len(remaining) > 0 && installed < p.MaxCDWs {
		head := remaining[0]
		if head.score < p.OuterFreq && installed > 0 {
			break
		}
		switch cb.StoreDyn(head.bits) {
		case codebook.InsertOK:
			installed++
		case codebook.InsertOverfill:
			overfill++
		}
		markOccurrences(bv, covered, head.bits)
		remaining = remaining[1:]

		for idx := range remaining {
			remaining[idx].score = scoreAgainstCoverage(bv, covered, remaining[idx], p)
		}
		sortCandidatesDesc(remaining)
	}

	_ = resizeDiagnostic(cands, p.MaxCDWs) // section 4.2 step 5: diagnostic only
	return installed, overfill
}

// markOccurrences marks every non-overlapping occurrence of bits within bv
// as covered.
func markOccurrences(bv tdr.BitVec, covered []bool, bits string) {
	n := len(bits)
	i := 0
	for i+n <= len(bv) {
		w, ok := bv.Slice(i, i+n).Literal()
		if ok && w == bits {
			for k := i; k < i+n; k++ {
				covered[k] = true
			}
			i += n
			continue
		}
		i++
	}
}

// scoreAgainstCoverage recomputes a candidate's score against a snapshot of
// the current coverage bitmap: occurrences that touch any already-covered
// position no longer count.
func scoreAgainstCoverage(bv tdr.BitVec, covered []bool, c candidate, p HeuristicParams) int {
	clone := make([]bool, len(covered))
	copy(clone, covered)

	n := c.length
	freq := 0
	i := 0
	for i+n <= len(bv) {
		w, ok := bv.Slice(i, i+n).Literal()
		if ok && w == c.bits && !anyCovered(clone, i, i+n) {
			freq++
			for k := i; k < i+n; k++ {
				clone[k] = true
			}
			i += n
			continue
		}
		i++
	}
	w := 1
	if n == 8 {
		w += p.Weight
	}
	return freq * w
}

func anyCovered(covered []bool, start, end int) bool {
	for i := start; i < end; i++ {
		if covered[i] {
			return true
		}
	}
	return false
}

// resizeDiagnostic truncates (or would pad) the candidate list to 2*MaxCDWs
// as a diagnostic-only step (spec.md section 4.2 step 5): it has no effect
// on which UDWs were installed, since installation already happened in
// outerFilter.
func resizeDiagnostic(cands []candidate, maxCDWs int) []candidate {
	want := 2 * maxCDWs
	if want < 0 {
		want = 0
	}
	if len(cands) <= want {
		return cands
	}
	return cands[:want]
}

// sortCandidatesDesc sorts by score descending; ties preserve current order
// (stable sort), per spec.md section 4.2's tie-break rule.
func sortCandidatesDesc(cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].score > cands[j].score })
}
