// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package sat

import "testing"

func TestNaiveSolverSimpleSAT(t *testing.T) {
	s := NewNaiveSolver()
	v1 := s.NewVar()
	v2 := s.NewVar()
	s.AddClause(Pos(v1), Pos(v2))
	s.AddClause(Neg(v1), Neg(v2))
	model, outcome := s.Solve(nil, Limits{})
	if outcome == Unsat {
		t.Fatal("expected a satisfying model")
	}
	if model.Value(v1) == model.Value(v2) {
		t.Fatalf("v1 and v2 must differ, got %v %v", model.Value(v1), model.Value(v2))
	}
}

func TestNaiveSolverUnsat(t *testing.T) {
	s := NewNaiveSolver()
	v1 := s.NewVar()
	s.AddClause(Pos(v1))
	s.AddClause(Neg(v1))
	_, outcome := s.Solve(nil, Limits{})
	if outcome != Unsat {
		t.Fatalf("outcome = %v, want Unsat", outcome)
	}
}

func TestNaiveSolverWeightConstraint(t *testing.T) {
	s := NewNaiveSolver()
	vars := make([]Var, 4)
	var lits []Lit
	var weights []int
	for i := range vars {
		vars[i] = s.NewVar()
		lits = append(lits, Pos(vars[i]))
		weights = append(weights, 1)
	}
	s.AddWeightConstraint(lits, weights, 2)
	s.Minimize(lits, []int{-1, -1, -1, -1}) // maximize count, bounded by the constraint
	model, outcome := s.Solve(nil, Limits{})
	if outcome == Unsat {
		t.Fatal("expected a feasible model")
	}
	count := 0
	for _, v := range vars {
		if model.Value(v) {
			count++
		}
	}
	if count > 2 {
		t.Fatalf("weight constraint violated: %d of 4 set, bound was 2", count)
	}
}

func TestNaiveSolverAssumptions(t *testing.T) {
	s := NewNaiveSolver()
	v1 := s.NewVar()
	v2 := s.NewVar()
	s.AddClause(Pos(v1), Pos(v2))
	model, outcome := s.Solve([]Lit{Neg(v1)}, Limits{})
	if outcome == Unsat {
		t.Fatal("expected a feasible model under assumption")
	}
	if model.Value(v1) {
		t.Fatal("assumption Neg(v1) was not honored")
	}
	if !model.Value(v2) {
		t.Fatal("v2 must be true to satisfy the clause once v1 is forced false")
	}
}

func TestNaiveSolverConflictLimitYieldsLimited(t *testing.T) {
	s := NewNaiveSolver()
	for i := 0; i < 10; i++ {
		s.NewVar()
	}
	_, outcome := s.Solve(nil, Limits{MaxConflicts: 1})
	if outcome != Limited {
		t.Fatalf("outcome = %v, want Limited", outcome)
	}
}
