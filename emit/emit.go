// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package emit assembles the compressed output stream: per-replacement
// data bits, the preload block, and the resync file, per spec.md section 6
// (Output stream, Persisted resync file).
package emit

import (
	"io"
	"strconv"

	"github.com/dsnet/golib/bits"

	"github.com/vecthor/tdrzip/codebook"
	"github.com/vecthor/tdrzip/stats"
)

// Error is the package-local error wrapper; IOError per spec.md section 7.
type Error string

func (e Error) Error() string { return "emit: " + string(e) }

// Emitter is the output-stream contract the planner/pipeline drives: one
// EmitReplacement call per finalized Replacement (in position order), one
// EmitPreload call per TBC entry, and a final Close.
//
// COMPR_EXIT and COMPR_REPEAT are handshake markers on the decoder's control
// line, not bits folded into the data stream itself — they are modeled here
// purely as stats.Emitter counter events, matching how the hardware
// interface actually separates data and control signaling.
type Emitter interface {
	EmitReplacement(cdw codebook.CDW) error
	EmitPreload(udw string) error
	Close() error
}

// FileSink is the default Emitter: it assembles data bits into a
// dsnet/golib/bits.Buffer and flushes them to an underlying io.Writer,
// tracking stats.Emitter counters as it goes.
type FileSink struct {
	w     io.Writer
	bb    bits.Buffer
	Stats *stats.Emitter
}

// NewFileSink wraps w; Stats starts zeroed if the caller does not supply one.
func NewFileSink(w io.Writer) *FileSink {
	return &FileSink{w: w, Stats: &stats.Emitter{}}
}

// EmitReplacement writes cdw's encoded bits, then records the matching
// control marker: COMPR_REPEAT for CDW::XXX, COMPR_EXIT otherwise
// (spec.md section 6, "Output stream").
func (fs *FileSink) EmitReplacement(cdw codebook.CDW) error {
	enc, ok := codebook.Encoding(cdw)
	if !ok {
		return Error("unrecognized CDW")
	}
	if err := writeLiteral(&fs.bb, enc); err != nil {
		return err
	}
	if cdw == codebook.XXX {
		fs.Stats.ComprRepeat++
		fs.Stats.MultiRep++
	} else {
		fs.Stats.ComprExit++
	}
	fs.Stats.ComprDR++
	return nil
}

// EmitPreload writes one TBC entry: the UDW bits, with a length tag —
// length-4 UDWs get a trailing '0' bit; length-8 UDWs get a '1' bit spliced
// in at position 4 (spec.md section 6: "the UDW bits plus a length-tag bit
// (0 for length 4, 1 for length 8 with a 1-bit inserted at position 4)").
func (fs *FileSink) EmitPreload(udw string) error {
	switch len(udw) {
	case 4:
		if err := writeLiteral(&fs.bb, udw); err != nil {
			return err
		}
		fs.bb.WriteBits(0, 1)
	case 8:
		if err := writeLiteral(&fs.bb, udw[:4]); err != nil {
			return err
		}
		fs.bb.WriteBits(1, 1)
		if err := writeLiteral(&fs.bb, udw[4:]); err != nil {
			return err
		}
	default:
		return Error("preload UDW must be length 4 or 8, got " + strconv.Itoa(len(udw)))
	}
	fs.Stats.ConfigCycles++
	return nil
}

// Close flushes any buffered bits (padded with zero bits to a byte
// boundary) to the underlying writer.
func (fs *FileSink) Close() error {
	if fs.bb.BitsWritten() == 0 {
		return nil
	}
	if _, err := fs.w.Write(fs.bb.Bytes()); err != nil {
		return Error(err.Error())
	}
	return nil
}

func writeLiteral(bb *bits.Buffer, lit string) error {
	for i := 0; i < len(lit); i++ {
		switch lit[i] {
		case '0':
			bb.WriteBits(0, 1)
		case '1':
			bb.WriteBits(1, 1)
		default:
			return Error("non-binary character in literal encoding")
		}
	}
	return nil
}
