// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package route

// coverage is a per-trit bitmap tracking which positions a route has already
// claimed. It backs both planners' "add_to_covered_route" step (spec.md
// section 4.4 stage 1.3).
type coverage []bool

func newCoverage(n int) coverage { return make(coverage, n) }

// clone returns an independent copy, used by the heuristic outer filter to
// score candidates against a snapshot without mutating the real map
// (spec.md section 4.2 step 4).
func (c coverage) clone() coverage {
	cp := make(coverage, len(c))
	copy(cp, c)
	return cp
}

func (c coverage) isFree(start, end int) bool {
	for i := start; i < end; i++ {
		if c[i] {
			return false
		}
	}
	return true
}

func (c coverage) mark(start, end int) {
	for i := start; i < end; i++ {
		c[i] = true
	}
}

// gaps returns every maximal run of uncovered positions, in ascending order,
// feeding stage 2's gap-filling recursion.
func (c coverage) gaps() [][2]int {
	var out [][2]int
	i := 0
	for i < len(c) {
		if c[i] {
			i++
			continue
		}
		j := i
		for j < len(c) && !c[j] {
			j++
		}
		out = append(out, [2]int{i, j})
		i = j
	}
	return out
}

// addToCoveredRoute appends r to replacements and marks its window covered
// only if the window is currently entirely free; it reports whether the
// replacement was accepted.
func addToCoveredRoute(c coverage, replacements *[]Replacement, r Replacement) bool {
	if !c.isFree(r.Start, r.End) {
		return false
	}
	c.mark(r.Start, r.End)
	*replacements = append(*replacements, r)
	return true
}
