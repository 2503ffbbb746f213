// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package tdr

import "github.com/vecthor/tdrzip/internal/testutil"

// Generate produces a synthetic TDR bit vector of the requested length.
// Unlike the original clock-seeded generator, seed is always supplied by the
// caller (spec.md section 9's "non-deterministic seed" open question: the
// spec mandates this be runtime-configurable, so no package in this module
// ever reads the clock itself — only cmd/tdrzip's flag default does, at the
// outermost boundary).
//
// When allowX is true, roughly one in six trits is replaced with DontCare,
// mirroring the original generator's 1-in-6 (dist_x==3 of 0..5) substitution
// rate.
func Generate(length int, allowX bool, seed int64) BitVec {
	rng := testutil.NewRand(seed)
	rngX := testutil.NewRand(seed + 1)

	bv := make(BitVec, length)
	for i := range bv {
		if rng.Intn(2) == 1 {
			bv[i] = High
		} else {
			bv[i] = Low
		}
		if allowX && rngX.Intn(6) == 3 {
			bv[i] = DontCare
		}
	}
	return bv
}
