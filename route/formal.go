// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package route

// FormalPlanner projects a list of replacements already extracted from a
// solved PBO model (package dict's FormalSelector) into a finalized Route.
// No heuristic choices remain here: every window was already chosen by the
// solver, so this stage exists purely to validate and merge (spec.md
// section 4.5).
type FormalPlanner struct {
	Merging bool
}

// Plan claims each proposed replacement against a fresh coverage bitmap (a
// solver bug could in principle propose overlapping windows; claiming
// defensively surfaces that as IncompleteCoverage rather than a panic),
// sorts by start, optionally merges repetitions, and validates.
func (p FormalPlanner) Plan(total int, proposed []Replacement) (Route, error) {
	cov := newCoverage(total)
	var repls []Replacement
	for _, r := range proposed {
		addToCoveredRoute(cov, &repls, r)
	}
	return Finalize(total, repls, p.Merging)
}
