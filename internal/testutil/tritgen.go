// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"errors"
	"strconv"
	"strings"
)

// DecodeTritGen decodes a compact literal test fixture describing a trit
// stream. The format is a simplification of the bit-generator idiom used
// elsewhere in this project's lineage: whitespace-separated tokens, each a
// run of '0', '1', and 'X' characters, optionally followed by a "*N"
// quantifier that repeats the preceding run N times. A '#' begins a line comment.
//
// Example: "01*4 X*2 1" decodes to "01010101" + "XX" + "1".
func DecodeTritGen(str string) (string, error) {
	var out strings.Builder
	for _, line := range strings.Split(str, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		for _, tok := range strings.Fields(line) {
			body, rep, err := splitQuantifier(tok)
			if err != nil {
				return "", err
			}
			for _, c := range body {
				if c != '0' && c != '1' && c != 'X' {
					return "", errors.New("testutil: invalid trit token: " + tok)
				}
			}
			for i := 0; i < rep; i++ {
				out.WriteString(body)
			}
		}
	}
	return out.String(), nil
}

func splitQuantifier(tok string) (body string, rep int, err error) {
	i := strings.LastIndexByte(tok, '*')
	if i < 0 {
		return tok, 1, nil
	}
	n, err := strconv.Atoi(tok[i+1:])
	if err != nil {
		return "", 0, errors.New("testutil: invalid quantified token: " + tok)
	}
	return tok[:i], n, nil
}
