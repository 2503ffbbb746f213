// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package tdr implements the input side of the TDR compressor: the trit
// alphabet, bit-vector representation, and the text/hex readers and
// synthetic generator described in the configuration record's input format
// section.
package tdr

// Trit is one element of the JTAG test-data-register alphabet.
type Trit uint8

const (
	Low Trit = iota
	High
	DontCare
)

func (t Trit) String() string {
	switch t {
	case Low:
		return "0"
	case High:
		return "1"
	case DontCare:
		return "X"
	default:
		return "?"
	}
}

// Byte returns the literal character this trit is serialized as when forming
// a UDW key string ('0', '1', or 'X').
func (t Trit) Byte() byte { return t.String()[0] }

// ParseTrit converts a single input character into a Trit. Any byte other
// than '0', '1', 'X', or 'x' is rejected; callers reading free-form text
// input treat that as a warning (spec: non-{0,1,X,whitespace} characters in
// text input are warned about, not fatal) rather than an InputError.
func ParseTrit(b byte) (Trit, bool) {
	switch b {
	case '0':
		return Low, true
	case '1':
		return High, true
	case 'X', 'x':
		return DontCare, true
	default:
		return 0, false
	}
}

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "tdr: " + string(e) }
