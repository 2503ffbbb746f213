// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package dict

import (
	"testing"

	"github.com/vecthor/tdrzip/codebook"
	"github.com/vecthor/tdrzip/tdr"
)

func TestHeuristicSelectorInstallsFrequentRun(t *testing.T) {
	bv, err := tdr.NewBitVec(
		"11110000" + "11110000" + "11110000" + "11110000" +
			"10101010" + "01010101" + "00110011" + "11001100")
	if err != nil {
		t.Fatal(err)
	}
	cb := codebook.New(12, false)
	hs := HeuristicSelector{Params: HeuristicParams{
		MaxCDWs:   4,
		InnerFreq: 1,
		OuterFreq: 1,
		Weight:    1,
		Permute:   1,
	}}
	installed, overfill := hs.Select(bv, cb)
	if installed == 0 {
		t.Fatal("expected at least one dynamic UDW installed for a highly repetitive input")
	}
	if overfill != 0 {
		t.Fatalf("did not expect overfill with MaxCDWs=4 and a fresh codebook, got %d", overfill)
	}
	if cdw := cb.Lookup("11110000"); !codebook.IsValid(cdw) {
		t.Fatal("the most frequent 8-trit run should have been installed as a dynamic UDW")
	}
}

func TestHeuristicSelectorRespectsMaxCDWs(t *testing.T) {
	bv, _ := tdr.NewBitVec(
		"11110000" + "00001111" + "10101010" + "01010101" +
			"11100011" + "00011100" + "11011011" + "00100100")
	cb := codebook.New(12, false)
	hs := HeuristicSelector{Params: HeuristicParams{
		MaxCDWs:   2,
		InnerFreq: 0,
		OuterFreq: 0,
		Weight:    1,
		Permute:   1,
	}}
	installed, _ := hs.Select(bv, cb)
	if installed > 2 {
		t.Fatalf("installed %d UDWs, exceeding MaxCDWs=2", installed)
	}
}
