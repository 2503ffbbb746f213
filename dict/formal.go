// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package dict

import (
	"github.com/vecthor/tdrzip/codebook"
	"github.com/vecthor/tdrzip/route"
	"github.com/vecthor/tdrzip/sat"
	"github.com/vecthor/tdrzip/tdr"
)

// FormalParams configures FormalSelector, sourced from config.Config's
// MAX_CDWS/SAT_SEC/SAT_CONFL/SAT_RESTART options (spec.md section 6).
type FormalParams struct {
	MaxCDWs   int
	TwoPass   bool // SAT_SEC: run the optional second optimization pass
	Conflicts int  // SAT_CONFL
	Restarts  int  // SAT_RESTART
}

// FormalSelector builds and solves the pseudo-boolean model of spec.md
// section 4.3 against a sat.Solver, installs the resulting dynamic UDWs
// into the codebook, and returns the replacement list for route.FormalPlanner.
type FormalSelector struct {
	Params FormalParams
	Solver sat.Solver
}

// window is one admissible (start, length) candidate the model considers.
type window struct {
	start, length int
	bits          string
}

type model struct {
	repl  map[window]sat.Var
	udw4  map[string]sat.Var
	udw8  map[string]sat.Var
	sbi   map[int]sat.Var
	merge map[[2]window]sat.Var
}

// Select builds the model described in spec.md section 4.3, solves it
// (optionally in two passes), installs every dynamically-chosen UDW via
// codebook.StoreDyn, and returns the replacement list ready for
// route.FormalPlanner. An Unsat outcome on the mandatory first pass surfaces
// as an error (spec.md section 7, ModelExtractionError); callers that want
// that behavior as a typed value should check errors.As against dict.Error.
// A Limited outcome commits the best model the solver found; when it found
// none, extraction yields no replacements and no error, and the planner then
// reports incomplete coverage.
func (fs FormalSelector) Select(bv tdr.BitVec, cb *codebook.Codebook) ([]route.Replacement, error) {
	s := fs.Solver
	if s == nil {
		s = sat.NewNaiveSolver()
	}
	n := len(bv)
	m := &model{
		repl:  map[window]sat.Var{},
		udw4:  map[string]sat.Var{},
		udw8:  map[string]sat.Var{},
		sbi:   map[int]sat.Var{},
		merge: map[[2]window]sat.Var{},
	}

	windowsAt := make(map[int][]window, n)
	for start := 0; start < n; start++ {
		for _, l := range [2]int{4, 8} {
			end := start + l
			if end > n {
				continue
			}
			lit, ok := bv.Slice(start, end).Literal()
			if !ok {
				continue
			}
			w := window{start: start, length: l, bits: lit}
			m.repl[w] = s.NewVar()
			windowsAt[start] = append(windowsAt[start], w)

			if already := cb.Lookup(lit); !codebook.IsValid(already) {
				if l == 4 {
					if _, ok := m.udw4[lit]; !ok {
						m.udw4[lit] = s.NewVar()
					}
				} else {
					if _, ok := m.udw8[lit]; !ok {
						m.udw8[lit] = s.NewVar()
					}
				}
			}
		}
	}
	for i := 0; i < n; i++ {
		m.sbi[i] = s.NewVar()
	}

	a1 := s.NewVar()
	a2 := s.NewVar()
	a3 := s.NewVar()

	// Clause 1: window => dictionary membership.
	for w, rv := range m.repl {
		var uv sat.Var
		var ok bool
		if w.length == 4 {
			uv, ok = m.udw4[w.bits]
		} else {
			uv, ok = m.udw8[w.bits]
		}
		if ok {
			s.AddClause(sat.Neg(rv), sat.Pos(uv))
		}
		// else: already statically covered, vacuously satisfied — the UDW
		// var is "fixed true by meaning" and omitted (spec.md section 4.3
		// clause 4).
	}

	// Clause 2: non-overlap between any two windows covering a shared
	// position (derived structurally from the per-position coverage clause
	// below instead of enumerated pairwise: any two windows containing the
	// same position i appear together in coverageAt[i], and the weight
	// constraint in clause 4 bounds how many of each dictionary size may be
	// chosen; overlap itself is forbidden by requiring at most one true
	// repl/sbi per position, encoded as an at-most-one group per position).
	coverageAt := make(map[int][]sat.Lit, n)
	for i := 0; i < n; i++ {
		coverageAt[i] = append(coverageAt[i], sat.Pos(m.sbi[i]))
	}
	for w, rv := range m.repl {
		for i := w.start; i < w.start+w.length; i++ {
			coverageAt[i] = append(coverageAt[i], sat.Pos(rv))
		}
	}
	for i := 0; i < n; i++ {
		lits := coverageAt[i]
		// Clause 3: full coverage.
		s.AddClause(lits...)
		// At-most-one per position: pairwise forbids overlap (spec.md
		// section 4.3 clause 2, restated per-position rather than
		// per-window-pair — equivalent, since two windows overlap iff they
		// share a covered position).
		for x := 0; x < len(lits); x++ {
			for y := x + 1; y < len(lits); y++ {
				s.AddClause(sat.Neg(lits[x].Var()), sat.Neg(lits[y].Var()))
			}
		}
	}

	// Clause 4: dictionary-size bounds.
	var udw4Lits, udw8Lits []sat.Lit
	var udw4W, udw8W []int
	for _, v := range m.udw4 {
		udw4Lits = append(udw4Lits, sat.Pos(v))
		udw4W = append(udw4W, 1)
	}
	for _, v := range m.udw8 {
		udw8Lits = append(udw8Lits, sat.Pos(v))
		udw8W = append(udw8W, 1)
	}
	s.AddWeightConstraint(udw4Lits, udw4W, 3)
	bound8 := fs.Params.MaxCDWs - 1
	if bound8 < 0 {
		bound8 = 0
	}
	s.AddWeightConstraint(udw8Lits, udw8W, bound8)

	// Clause 5: merge extraction, per adjacent same-length window pair with
	// identical literal bits.
	for start, ws := range windowsAt {
		for _, w := range ws {
			var nextW window
			found := false
			for _, cand := range windowsAt[start+w.length] {
				if cand.length == w.length {
					nextW = cand
					found = true
					break
				}
			}
			if !found || nextW.bits != w.bits {
				continue
			}
			key := [2]window{w, nextW}
			mv := s.NewVar()
			m.merge[key] = mv
			a := m.repl[w]
			b := m.repl[nextW]
			// Tseitin AND: mv <=> (a && b).
			s.AddClause(sat.Neg(a), sat.Neg(b), sat.Pos(mv))
			s.AddClause(sat.Pos(a), sat.Neg(mv))
			s.AddClause(sat.Pos(b), sat.Neg(mv))
		}
	}

	limits := sat.Limits{MaxConflicts: fs.Params.Conflicts, MaxRestarts: fs.Params.Restarts}

	// Pass 1: minimize weighted SBIs + merges, assuming A1 and A3.
	var objLits []sat.Lit
	var objW []int
	for i := 0; i < n; i++ {
		objLits = append(objLits, sat.Pos(m.sbi[i]))
		objW = append(objW, 3)
	}
	for _, mv := range m.merge {
		objLits = append(objLits, sat.Pos(mv))
		objW = append(objW, 2)
	}
	s.Minimize(objLits, objW)
	best, outcome := s.Solve([]sat.Lit{sat.Pos(a1), sat.Pos(a3)}, limits)
	if outcome == sat.Unsat {
		return nil, Error("formal selector: no feasible model (UNSAT on pass 1)")
	}

	if fs.Params.TwoPass {
		sbiCount := 0
		for i := 0; i < n; i++ {
			if best.Value(m.sbi[i]) {
				sbiCount++
			}
		}
		bound := int(1.05*float64(sbiCount)) + 1
		s.AddWeightConstraint(append([]sat.Lit(nil), objLits[:n]...), repeatInt(1, n), bound)

		var lenLits []sat.Lit
		var lenW []int
		for w, rv := range m.repl {
			lenLits = append(lenLits, sat.Pos(rv))
			if w.length == 8 {
				lenW = append(lenW, 2)
			} else {
				lenW = append(lenW, 1)
			}
		}
		for i := 0; i < n; i++ {
			lenLits = append(lenLits, sat.Pos(m.sbi[i]))
			lenW = append(lenW, 3)
		}
		s.Minimize(lenLits, lenW)
		second, secondOutcome := s.Solve([]sat.Lit{sat.Pos(a2)}, limits)
		if secondOutcome != sat.Unsat && fs.objectiveValue(m, second, n) <= fs.objectiveValue(m, best, n) {
			best = second
		}
	}

	return fs.extract(bv, cb, m, best, n)
}

func repeatInt(v, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func (fs FormalSelector) objectiveValue(m *model, mod *sat.Model, n int) int {
	if mod == nil {
		return 1 << 30
	}
	total := 0
	for w, rv := range m.repl {
		if mod.Value(rv) {
			if w.length == 8 {
				total += 2
			} else {
				total++
			}
		}
	}
	for i := 0; i < n; i++ {
		if mod.Value(m.sbi[i]) {
			total += 3
		}
	}
	return total
}

// extract installs every true udw* variable's UDW into cb, then builds the
// Replacement for every true repl/sbi variable (spec.md section 4.3,
// "Model extraction").
func (fs FormalSelector) extract(bv tdr.BitVec, cb *codebook.Codebook, m *model, mod *sat.Model, n int) ([]route.Replacement, error) {
	for bits, v := range m.udw4 {
		if mod.Value(v) {
			cb.StoreDyn(bits)
		}
	}
	for bits, v := range m.udw8 {
		if mod.Value(v) {
			cb.StoreDyn(bits)
		}
	}

	var out []route.Replacement
	for w, rv := range m.repl {
		if !mod.Value(rv) {
			continue
		}
		cdw := cb.Lookup(w.bits)
		if !codebook.IsValid(cdw) {
			return nil, Error("formal selector: model chose a window with no active codebook entry")
		}
		out = append(out, route.Replacement{CDW: cdw, Start: w.start, End: w.start + w.length, Benefit: cb.Benefit(cdw)})
	}
	for i := 0; i < n; i++ {
		if !mod.Value(m.sbi[i]) {
			continue
		}
		// A DontCare trit never gets a repl window (Literal fails, so no
		// window{} candidate was ever built for it in Select), which makes
		// its SBI var the *only* way clause 3 (full coverage) can be
		// satisfied at this position. It still needs a concrete
		// Replacement: fall back to the literal "1", statically HXX,
		// matching the same coercion route.fillGap applies on the greedy
		// path. tdr.Equal treats a DontCare golden position as a wildcard,
		// so the resolved bit still round-trips.
		lit, ok := bv.Slice(i, i+1).Literal()
		if !ok {
			lit = "1"
		}
		cdw := cb.Lookup(lit)
		out = append(out, route.Replacement{CDW: cdw, Start: i, End: i + 1, Benefit: cb.Benefit(cdw)})
	}
	return out, nil
}

// Error is the package-local error wrapper.
type Error string

func (e Error) Error() string { return "dict: " + string(e) }
