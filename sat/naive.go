// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package sat

// NaiveSolver is a small exhaustive backtracking solver over the Solver
// contract. It exists so dict.FormalSelector can be built and tested
// without a production PBO engine (spec.md section 9: the SAT engine is an
// external collaborator, absent from this module's dependency stack). It is
// not meant to scale past the handful of variables a single partition's
// FormalSelector model needs for tests; production use should swap in a
// real PBO engine behind the same Solver interface.
type NaiveSolver struct {
	numVars     int
	clauses     [][]Lit
	constraints []weightConstraint
	objTerms    []weightTerm
}

// NewNaiveSolver returns an empty solver ready for variable/clause
// registration.
func NewNaiveSolver() *NaiveSolver { return &NaiveSolver{} }

func (s *NaiveSolver) NewVar() Var {
	s.numVars++
	return Var(s.numVars)
}

func (s *NaiveSolver) AddClause(lits ...Lit) {
	cl := append([]Lit(nil), lits...)
	s.clauses = append(s.clauses, cl)
}

func (s *NaiveSolver) AddWeightConstraint(terms []Lit, weights []int, bound int) {
	wc := weightConstraint{bound: bound}
	for i, t := range terms {
		wc.terms = append(wc.terms, weightTerm{lit: t, weight: weights[i]})
	}
	s.constraints = append(s.constraints, wc)
}

func (s *NaiveSolver) Minimize(terms []Lit, weights []int) {
	s.objTerms = s.objTerms[:0]
	for i, t := range terms {
		s.objTerms = append(s.objTerms, weightTerm{lit: t, weight: weights[i]})
	}
}

// Solve enumerates assignments over every variable allocated by NewVar (both
// values each, except variables fixed by an assumption), filtering by hard
// clauses and weight constraints, and keeps
// the feasible assignment with the lowest objective value. Search nodes
// count as conflicts for the purpose of limits.MaxConflicts: it is a
// deliberately crude proxy, adequate for a reference implementation.
func (s *NaiveSolver) Solve(assumptions []Lit, limits Limits) (*Model, Outcome) {
	forced := map[Var]bool{}
	for _, a := range assumptions {
		forced[a.Var()] = a.Positive()
	}

	maxConflicts := limits.MaxConflicts
	if maxConflicts <= 0 {
		maxConflicts = 1 << 20
	}

	assign := make(map[Var]bool, s.numVars)
	var best map[Var]bool
	bestObj := 0
	haveBest := false
	nodes := 0
	limited := false

	var search func(idx int) bool
	search = func(idx int) bool {
		if nodes > maxConflicts {
			limited = true
			return true // stop recursing; caller checks `limited`
		}
		nodes++
		if idx > s.numVars {
			if !s.satisfiesClauses(assign) || !s.satisfiesConstraints(assign) {
				return false
			}
			obj := s.objective(assign)
			if !haveBest || obj < bestObj {
				haveBest = true
				bestObj = obj
				best = cloneAssign(assign)
			}
			return false
		}
		v := Var(idx + 1)
		if forcedVal, ok := forced[v]; ok {
			assign[v] = forcedVal
			if search(idx + 1) {
				return true
			}
			delete(assign, v)
			return false
		}
		for _, val := range [2]bool{false, true} {
			assign[v] = val
			if search(idx + 1) {
				return true
			}
		}
		delete(assign, v)
		return false
	}
	search(0)

	if best == nil {
		// If the conflict budget was exhausted before the search could
		// prove anything either way, the honest answer is "inconclusive",
		// not Unsat: report Limited with a nil model so callers can tell
		// the two apart (spec.md section 7, ModelExtractionError is only
		// for a genuine failure to extract a usable model).
		if limited {
			return nil, Limited
		}
		return nil, Unsat
	}
	model := &Model{assignment: best}
	if limited {
		return model, Limited
	}
	return model, Optimal
}

func cloneAssign(a map[Var]bool) map[Var]bool {
	cp := make(map[Var]bool, len(a))
	for k, v := range a {
		cp[k] = v
	}
	return cp
}

func litValue(assign map[Var]bool, l Lit) bool {
	v := assign[l.Var()]
	if l.Positive() {
		return v
	}
	return !v
}

func (s *NaiveSolver) satisfiesClauses(assign map[Var]bool) bool {
	for _, cl := range s.clauses {
		ok := false
		for _, l := range cl {
			if litValue(assign, l) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func (s *NaiveSolver) satisfiesConstraints(assign map[Var]bool) bool {
	for _, wc := range s.constraints {
		sum := 0
		for _, t := range wc.terms {
			if litValue(assign, t.lit) {
				sum += t.weight
			}
		}
		if sum > wc.bound {
			return false
		}
	}
	return true
}

func (s *NaiveSolver) objective(assign map[Var]bool) int {
	sum := 0
	for _, t := range s.objTerms {
		if litValue(assign, t.lit) {
			sum += t.weight
		}
	}
	return sum
}
