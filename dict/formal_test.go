// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package dict

import (
	"testing"

	"github.com/vecthor/tdrzip/codebook"
	"github.com/vecthor/tdrzip/route"
	"github.com/vecthor/tdrzip/sat"
	"github.com/vecthor/tdrzip/tdr"
)

func TestFormalSelectorProducesValidRoute(t *testing.T) {
	// Kept deliberately tiny: NaiveSolver is a brute-force reference
	// implementation, not a production PBO engine (see package sat's
	// doc comment) — every trit added roughly doubles its variable count.
	bv, err := tdr.NewBitVec("0011")
	if err != nil {
		t.Fatal(err)
	}
	cb := codebook.New(12, false)
	fs := FormalSelector{
		Params: FormalParams{MaxCDWs: 4, Conflicts: 50000, Restarts: 10},
		Solver: sat.NewNaiveSolver(),
	}
	replacements, err := fs.Select(bv, cb)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	cb.Seal()
	rt, err := (route.FormalPlanner{}).Plan(len(bv), replacements)
	if err != nil {
		t.Fatalf("FormalPlanner.Plan() error = %v", err)
	}
	if err := rt.Validate(); err != nil {
		t.Fatalf("resulting route is invalid: %v", err)
	}
}
