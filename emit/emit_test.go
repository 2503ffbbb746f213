// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package emit

import (
	"bytes"
	"testing"

	"github.com/vecthor/tdrzip/codebook"
)

func TestEmitReplacementTracksControlMarkers(t *testing.T) {
	var buf bytes.Buffer
	fs := NewFileSink(&buf)

	if err := fs.EmitReplacement(codebook.HHH); err != nil {
		t.Fatalf("EmitReplacement(HHH) error = %v", err)
	}
	if err := fs.EmitReplacement(codebook.XXX); err != nil {
		t.Fatalf("EmitReplacement(XXX) error = %v", err)
	}
	if fs.Stats.ComprExit != 1 {
		t.Fatalf("ComprExit = %d, want 1", fs.Stats.ComprExit)
	}
	if fs.Stats.ComprRepeat != 1 || fs.Stats.MultiRep != 1 {
		t.Fatalf("ComprRepeat/MultiRep = %d/%d, want 1/1", fs.Stats.ComprRepeat, fs.Stats.MultiRep)
	}
	if fs.Stats.ComprDR != 2 {
		t.Fatalf("ComprDR = %d, want 2", fs.Stats.ComprDR)
	}
}

func TestEmitReplacementRejectsUnrecognizedCDW(t *testing.T) {
	var buf bytes.Buffer
	fs := NewFileSink(&buf)
	if err := fs.EmitReplacement(codebook.None); err == nil {
		t.Fatal("expected an error for an unrecognized CDW")
	}
}

func TestEmitPreloadRejectsBadLength(t *testing.T) {
	var buf bytes.Buffer
	fs := NewFileSink(&buf)
	if err := fs.EmitPreload("010"); err == nil {
		t.Fatal("expected an error for a preload UDW of length 3")
	}
}

func TestEmitPreloadTracksConfigCycles(t *testing.T) {
	var buf bytes.Buffer
	fs := NewFileSink(&buf)
	if err := fs.EmitPreload("0010"); err != nil {
		t.Fatalf("EmitPreload(len 4) error = %v", err)
	}
	if err := fs.EmitPreload("00110011"); err != nil {
		t.Fatalf("EmitPreload(len 8) error = %v", err)
	}
	if fs.Stats.ConfigCycles != 2 {
		t.Fatalf("ConfigCycles = %d, want 2", fs.Stats.ConfigCycles)
	}
}

func TestCloseFlushesBufferedBits(t *testing.T) {
	var buf bytes.Buffer
	fs := NewFileSink(&buf)
	if err := fs.EmitReplacement(codebook.HHH); err != nil {
		t.Fatal(err)
	}
	if err := fs.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected Close to flush at least one byte after writing bits")
	}
}

func TestCloseIsNoOpOnEmptyBuffer(t *testing.T) {
	var buf bytes.Buffer
	fs := NewFileSink(&buf)
	if err := fs.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no bytes written for an empty buffer, got %d", buf.Len())
	}
}
