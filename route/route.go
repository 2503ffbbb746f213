// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package route builds and validates the ordered, non-overlapping,
// full-coverage list of replacements that the planner hands to the emitter
// (spec.md sections 4.4-4.6).
package route

import (
	"sort"

	"github.com/vecthor/tdrzip/codebook"
)

// Stage records which GreedyPlanner pass produced a Replacement (spec.md
// section 4.4). FormalPlanner output carries StageUnspecified: the PBO
// model has no equivalent two-stage structure to report.
type Stage int

const (
	StageUnspecified Stage = iota
	StageAnchor            // stage 1: CDWMap edge, chosen by benefit/length order
	StageGapFill           // stage 2: fill_gap lookup or recursive single-bit fallback
)

// Replacement is a single claimed window: codebook.CDW cdw covers the
// half-open trit range [Start, End) with the given compression Benefit
// (udwLength - encodedLength, as reported by codebook.Benefit at the time
// the replacement was planned).
type Replacement struct {
	CDW     codebook.CDW
	Start   int
	End     int
	Benefit int

	// Stage and SBF are provenance the planner attaches for stats
	// reporting (spec.md section 4.4); they play no part in Validate, V1-V3,
	// or emission.
	Stage Stage
	SBF   bool // single-bit fallback: fill_gap's degenerate length-1 recursion leaf
}

// Length reports the window's trit width.
func (r Replacement) Length() int { return r.End - r.Start }

// Route is a finalized, position-ordered, non-overlapping, fully-covering
// list of Replacements over an input of Total trits.
//
// Invariants (spec.md section 3):
//   - V1: no two replacements overlap.
//   - V2: the union of all windows equals [0, Total).
//   - V3: replacements are sorted by Start, and consecutive:
//     Route[i].End == Route[i+1].Start.
type Route struct {
	Total        int
	Replacements []Replacement
}

// Error is the package-local error wrapper.
type Error string

func (e Error) Error() string { return "route: " + string(e) }

// Validate checks V1-V3 against the finalized route and returns
// IncompleteCoverage-shaped errors (spec.md section 7) on failure.
func (rt Route) Validate() error {
	sorted := make([]Replacement, len(rt.Replacements))
	copy(sorted, rt.Replacements)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	pos := 0
	for _, r := range sorted {
		if r.Start != pos {
			return Error("incomplete coverage: gap or overlap at position " + itoa(pos) + " (next replacement starts at " + itoa(r.Start) + ")")
		}
		if r.End <= r.Start {
			return Error("malformed replacement: end <= start at position " + itoa(r.Start))
		}
		pos = r.End
	}
	if pos != rt.Total {
		return Error("incomplete coverage: covered up to " + itoa(pos) + " of " + itoa(rt.Total))
	}
	return nil
}

// Sort orders the replacements by Start in place (V3).
func (rt *Route) Sort() {
	sort.Slice(rt.Replacements, func(i, j int) bool {
		return rt.Replacements[i].Start < rt.Replacements[j].Start
	})
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
