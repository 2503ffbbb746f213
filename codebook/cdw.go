// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package codebook implements the two consistent UDW<->CDW mappings that
// drive compression and the decoder's active-dictionary bookkeeping: the
// closed CDW enum, the encoding table, and the dynamic insertion lifecycle
// (TBR/TBC) described in spec.md sections 3 and 4.1.
package codebook

import "strings"

// CDW is a tagged enum drawn from a closed set of codewords: the empty
// repetition marker, two single-trit words, four two-trit words, eight
// three-trit words, and (in extended mode) sixteen four-trit words.
type CDW int8

const (
	None CDW = iota
	XXX      // repetition marker, encodes to ""
	HXX      // "1"
	LXX      // "0"

	LLX // "00"
	LHX // "01"
	HLX // "10"
	HHX // "11"

	LLL // "000"
	LLH // "001"
	LHL // "010"
	LHH // "011"
	HLL // "100"
	HLH // "101"
	HHL // "110"
	HHH // "111"

	LLLL // "0000"
	LLLH // "0001"
	LLHL // "0010"
	LLHH // "0011"
	LHLL // "0100"
	LHLH // "0101"
	LHHL // "0110"
	LHHH // "0111"
	HLLL // "1000"
	HLLH // "1001"
	HLHL // "1010"
	HLHH // "1011"
	HHLL // "1100"
	HHLH // "1101"
	HHHL // "1110"
	HHHH // "1111"
)

// names lists the CDW tags in the literal form their encodings are derived
// from: 'L' and 'H' map to trit characters '0' and '1', and any trailing 'X'
// characters are stripped (XXX, all-X, strips down to the empty string —
// the repetition marker's encoding).
var names = map[CDW]string{
	XXX:  "XXX",
	LXX:  "LXX",
	HXX:  "HXX",
	LLX:  "LLX",
	LHX:  "LHX",
	HLX:  "HLX",
	HHX:  "HHX",
	LLL:  "LLL",
	LLH:  "LLH",
	LHL:  "LHL",
	LHH:  "LHH",
	HLL:  "HLL",
	HLH:  "HLH",
	HHL:  "HHL",
	HHH:  "HHH",
	LLLL: "LLLL",
	LLLH: "LLLH",
	LLHL: "LLHL",
	LLHH: "LLHH",
	LHLL: "LHLL",
	LHLH: "LHLH",
	LHHL: "LHHL",
	LHHH: "LHHH",
	HLLL: "HLLL",
	HLLH: "HLLH",
	HLHL: "HLHL",
	HLHH: "HLHH",
	HHLL: "HHLL",
	HHLH: "HHLH",
	HHHL: "HHHL",
	HHHH: "HHHH",
}

var (
	encodingTable = map[CDW]string{}
	lengthTable   = map[CDW]int{}
)

func init() {
	for cdw, name := range names {
		trimmed := strings.TrimRight(name, "X")
		enc := strings.NewReplacer("L", "0", "H", "1").Replace(trimmed)
		encodingTable[cdw] = enc
		lengthTable[cdw] = len(enc)
	}
}

// Encoding returns the literal bit string shifted in for cdw, and whether cdw
// is a recognized tag. CDW::XXX decodes to the empty string: it never
// contributes encoded bits of its own, it signals "repeat the previous
// non-XXX replacement" (spec.md section 4.4 stage 3).
func Encoding(cdw CDW) (string, bool) {
	enc, ok := encodingTable[cdw]
	return enc, ok
}

// Length returns the bit length of cdw's encoding.
func Length(cdw CDW) int {
	return lengthTable[cdw]
}

// IsValid reports whether cdw is a real tag, i.e. not None.
func IsValid(cdw CDW) bool { return cdw != None }

// IsEmpty reports whether cdw is the repetition marker.
func IsEmpty(cdw CDW) bool { return cdw == XXX }

// IsStatic reports whether cdw belongs to the codebook's static tags: the two
// single-trit words always, and — only outside extended mode — the four
// two-trit words. The single-trit words are never placed in TBR. The
// two-trit words are placed in TBR (and so can be overwritten by StoreDyn)
// in extended mode, and also outside extended mode when maxCDWs > 8 (see
// seedTBR), even though IsStatic reports them static there.
func IsStatic(cdw CDW, extended bool) bool {
	switch cdw {
	case LXX, HXX:
		return true
	case LLX, LHX, HLX, HHX:
		return !extended
	default:
		return false
	}
}
