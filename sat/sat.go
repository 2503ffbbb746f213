// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package sat specifies the pseudo-boolean-optimization contract that
// dict.FormalSelector builds its model against (spec.md section 4.3). A
// production PBO/SAT engine is an external collaborator per spec.md's
// non-goals and does not appear anywhere in this module's dependency
// stack; NaiveSolver is a small reference implementation that lets
// FormalSelector be built and tested without one.
package sat

// Var identifies a boolean decision variable. Variables are allocated by
// Solver.NewVar starting at 1; 0 is never a valid Var.
type Var int

// Lit is a signed literal: Lit(v) asserts Var v true, Lit(-v) asserts it
// false.
type Lit int

// Var returns the underlying variable of a literal, stripping its sign.
func (l Lit) Var() Var {
	if l < 0 {
		return Var(-l)
	}
	return Var(l)
}

// Positive reports whether the literal asserts its variable true.
func (l Lit) Positive() bool { return l > 0 }

// Pos and Neg build the two literals of a variable.
func Pos(v Var) Lit { return Lit(v) }
func Neg(v Var) Lit { return Lit(-v) }

// Outcome reports how a Solve call concluded (spec.md section 4.3's
// "objective" and section 7's ModelExtractionError).
type Outcome uint8

const (
	// Unsat means no assignment satisfies every hard clause and weight
	// constraint under the given assumptions.
	Unsat Outcome = iota
	// Optimal means the search proved the returned model minimizes the
	// active objective.
	Optimal
	// Limited means the conflict/restart budget was exhausted before
	// optimality was proven; the returned model is the best one found so
	// far and is usable iff it satisfies coverage (spec.md section 4.3,
	// "Solver limits").
	Limited
)

// Limits bounds the search effort for a single Solve call, sourced from
// config.Config's SATConfl/SATRestart fields.
type Limits struct {
	MaxConflicts int
	MaxRestarts  int
}

// Model is a satisfying (or best-effort) assignment returned by Solve.
type Model struct {
	assignment map[Var]bool
}

// Value reports the truth value assigned to v. Unassigned variables (never
// mentioned in any clause reachable from the assumptions) read false.
func (m *Model) Value(v Var) bool {
	if m == nil {
		return false
	}
	return m.assignment[v]
}

// ValueLit reports whether l is satisfied under the model.
func (m *Model) ValueLit(l Lit) bool {
	v := m.Value(l.Var())
	if l.Positive() {
		return v
	}
	return !v
}

// weightTerm is one term of a pseudo-boolean weight constraint or
// objective: weight contributed when lit is true.
type weightTerm struct {
	lit    Lit
	weight int
}

// weightConstraint is a hard constraint: sum(weight*lit) <= bound.
type weightConstraint struct {
	terms []weightTerm
	bound int
}

// Solver is the pseudo-boolean-optimization contract dict.FormalSelector
// builds against (spec.md section 4.3): variable allocation, hard clauses,
// weighted cardinality constraints, a minimization objective, and a solve
// step parameterized by assumption literals (used to toggle constraint
// groups between the spec's two solve passes) and resource limits.
type Solver interface {
	NewVar() Var
	AddClause(lits ...Lit)
	AddWeightConstraint(terms []Lit, weights []int, bound int)
	Minimize(terms []Lit, weights []int)
	Solve(assumptions []Lit, limits Limits) (*Model, Outcome)
}
