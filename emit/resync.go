// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package emit

import (
	"bytes"
	"io"

	"github.com/vecthor/tdrzip/p2s"
)

// ResyncWriter persists the bit-exact resync file hardware verification
// reads: an ASCII stream of max_cycles+delay characters, '-' at every cycle
// producing no data and 'D' repeated dist times at each burst cycle
// (spec.md section 6, "Persisted resync file").
type ResyncWriter struct {
	w io.Writer
}

// NewResyncWriter wraps w.
func NewResyncWriter(w io.Writer) *ResyncWriter { return &ResyncWriter{w: w} }

// Write renders bursts against a timeline of length maxCycles+delay and
// writes it to the underlying writer.
func (rw *ResyncWriter) Write(bursts []p2s.Burst, maxCycles, delay int) error {
	total := maxCycles + delay
	if total < 0 {
		total = 0
	}
	var buf bytes.Buffer
	buf.Grow(total)
	line := make([]byte, total)
	for i := range line {
		line[i] = '-'
	}
	for _, b := range bursts {
		start := b.Cycle + delay
		for k := 0; k < b.Dist; k++ {
			idx := start + k
			if idx >= 0 && idx < total {
				line[idx] = 'D'
			}
		}
	}
	buf.Write(line)
	if _, err := rw.w.Write(buf.Bytes()); err != nil {
		return Error(err.Error())
	}
	return nil
}
