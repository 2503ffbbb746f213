// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package tdr

import (
	"bufio"
	"fmt"
	"io"

	"github.com/dsnet/golib/errs"

	"github.com/vecthor/tdrzip/internal/bitutil"
)

// ReadResult reports how many characters were skipped while parsing free-form
// text input, so that callers can surface the count as a warning (spec.md
// section 7: unsupported characters in text input degrade gracefully and are
// counted, never fatal).
type ReadResult struct {
	Vec      BitVec
	Skipped  int // characters that were neither {0,1,X} nor whitespace
}

// ReadText parses whitespace-separated '0'/'1'/'X' tokens, one line at a
// time, exactly as the original TDR reader does: any other non-whitespace
// character is skipped and counted rather than rejected.
func ReadText(r io.Reader) (ReadResult, error) {
	var res ReadResult
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		for _, c := range line {
			if c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f' {
				continue
			}
			t, ok := ParseTrit(c)
			if !ok {
				res.Skipped++
				continue
			}
			res.Vec = append(res.Vec, t)
		}
	}
	if err := sc.Err(); err != nil {
		return res, Error(err.Error())
	}
	return res, nil
}

// ReadHex parses the hex TDR format: each line must be exactly 9 characters
// (8 hex nibbles plus one separator), decoded big-endian into 32 trits.
// A malformed line length is an InputError (fatal), matching spec.md
// section 7.
func ReadHex(r io.Reader) (bv BitVec, err error) {
	defer errs.Recover(&err)

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		errs.Assert(len(line) == 9, Error(fmt.Sprintf("hex line %d: want 9 characters, got %d", lineNo, len(line))))

		var nibbles [8]byte
		copy(nibbles[:], line[:8])
		bits, perr := bitutil.ParseHexWord(nibbles)
		errs.Assert(perr == nil, Error(fmt.Sprintf("hex line %d: %v", lineNo, perr)))
		for _, b := range bits {
			if b {
				bv = append(bv, High)
			} else {
				bv = append(bv, Low)
			}
		}
	}
	if serr := sc.Err(); serr != nil {
		return nil, Error(serr.Error())
	}
	return bv, nil
}
