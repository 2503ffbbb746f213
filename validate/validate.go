// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package validate reconstructs a TDR from its emitted route and compares
// it against the golden input (spec.md section 4.7).
package validate

import (
	"github.com/vecthor/tdrzip/codebook"
	"github.com/vecthor/tdrzip/route"
	"github.com/vecthor/tdrzip/tdr"
)

// Error is the package-local error wrapper; a failing Run surfaces as
// ValidationFailure per spec.md section 7 (fatal at program level).
type Error string

func (e Error) Error() string { return "validate: " + string(e) }

// Validator reconstructs a partition's input from its finalized route and
// active codebook, and checks it against the golden original.
type Validator struct{}

// Reconstruct rebuilds the trit stream implied by rt against cb: for each
// replacement in order, append its UDW preimage; for CDW::XXX, locate the
// most recent non-XXX replacement (scanning backward through what has
// already been reconstructed) and repeat its preimage (spec.md section 4.7).
func (Validator) Reconstruct(rt route.Route, cb *codebook.Codebook) (tdr.BitVec, error) {
	var out tdr.BitVec
	var lastUDW string
	haveLast := false

	for _, r := range rt.Replacements {
		if r.CDW == codebook.XXX {
			if !haveLast {
				return nil, Error("repetition marker with no preceding non-XXX replacement")
			}
			bv, err := tdr.NewBitVec(lastUDW)
			if err != nil {
				return nil, Error(err.Error())
			}
			out = append(out, bv...)
			continue
		}
		udw, ok := cb.Preimage(r.CDW)
		if !ok {
			return nil, Error("no active UDW preimage for emitted CDW")
		}
		bv, err := tdr.NewBitVec(udw)
		if err != nil {
			return nil, Error(err.Error())
		}
		out = append(out, bv...)
		lastUDW = udw
		haveLast = true
	}
	return out, nil
}

// Run reconstructs rt against cb and reports whether it equals golden,
// returning a descriptive ValidationFailure-shaped error on mismatch.
func (v Validator) Run(rt route.Route, cb *codebook.Codebook, golden tdr.BitVec) error {
	got, err := v.Reconstruct(rt, cb)
	if err != nil {
		return err
	}
	if !tdr.Equal(got, golden) {
		return Error("reconstructed stream does not match golden input")
	}
	return nil
}
