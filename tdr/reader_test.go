// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package tdr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTextSkipsUnsupportedCharacters(t *testing.T) {
	res, err := ReadText(strings.NewReader("01 X\n01?01\n"))
	require.NoError(t, err)
	assert.Equal(t, "01X0101", res.Vec.String())
	assert.Equal(t, 1, res.Skipped)
}

func TestReadHexDecodesBigEndian(t *testing.T) {
	// A single all-ones word: 8 'f' nibbles plus a separator character.
	bv, err := ReadHex(strings.NewReader("ffffffff-\n"))
	require.NoError(t, err)
	assert.Equal(t, 32, len(bv))
	for _, tr := range bv {
		assert.Equal(t, High, tr)
	}
}

func TestReadHexRejectsBadLineLength(t *testing.T) {
	_, err := ReadHex(strings.NewReader("ffff\n"))
	assert.Error(t, err)
}
