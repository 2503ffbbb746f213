// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package codebook

// InsertResult reports the outcome of a dynamic-insertion attempt. This is
// deliberately not an error: spec.md section 7 classifies CodebookOverfill
// as a recoverable, counted condition, not a failure that aborts the
// partition.
type InsertResult uint8

const (
	InsertOK InsertResult = iota
	InsertAlreadyCovered
	InsertOverfill
)

// Codebook holds the two consistent mappings described in spec.md section 3
// (invariant C1): cdwToEncoding is injective (guaranteed by the package-level
// encoding table); udwToCDW maps every currently active UDW to exactly one
// CDW. TBR lists CDW slots that may still be overwritten by a dynamic
// insertion; TBC lists the UDWs that have already been installed, in
// insertion order — this is exactly the decoder's preload configuration
// payload.
type Codebook struct {
	extended bool
	maxCDWs  int

	udwToCDW map[string]CDW
	benefit  map[CDW]int
	tbr      []CDW // popped from the back; see seedTBR
	tbc      []string

	sealed bool
}

// New builds a Codebook preloaded with the static UDW->CDW assignments for
// the requested mode, and seeds TBR per maxCDWs/extended exactly as the
// original Decompressor::preloadCDW does.
func New(maxCDWs int, extended bool) *Codebook {
	cb := &Codebook{extended: extended, maxCDWs: maxCDWs}
	cb.reset()
	return cb
}

// reset restores the codebook to its freshly preloaded state: static UDWs
// only, TBC empty, TBR reseeded. New calls it to build the initial state.
func (cb *Codebook) reset() {
	cb.sealed = false
	cb.benefit = make(map[CDW]int)
	cb.tbc = nil
	if cb.extended {
		cb.udwToCDW = cloneUDWMap(extendedStaticUDW)
	} else {
		cb.udwToCDW = cloneUDWMap(nonExtendedStaticUDW)
	}
	cb.tbr = seedTBR(cb.maxCDWs, cb.extended)
}

// Reset is the exported form of reset: it returns an existing codebook to the
// state New produces. The pipeline does not call it; it builds a fresh
// codebook with New for each partition instead.
func (cb *Codebook) Reset() { cb.reset() }

// Seal freezes the codebook against further mutation; the planner only ever
// borrows a sealed Codebook (spec.md section 9, "Codebook mutation vs
// planner read").
func (cb *Codebook) Seal() { cb.sealed = true }

// Sealed reports whether Seal has been called since the last Reset.
func (cb *Codebook) Sealed() bool { return cb.sealed }

func cloneUDWMap(src map[string]CDW) map[string]CDW {
	dst := make(map[string]CDW, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// seedTBR mirrors Decompressor::preloadCDW's TBR initialization. Entries are
// popped from the back of the slice by StoreDyn, so the tags listed last here
// are consumed first — lower-index tags are popped last, exactly as
// spec.md section 4.1 states.
func seedTBR(maxCDWs int, extended bool) []CDW {
	if extended {
		return append([]CDW(nil), extendedTBRSeed...)
	}
	if maxCDWs > 8 {
		return append([]CDW(nil), wideTBRSeed...)
	}
	return append([]CDW(nil), narrowTBRSeed...)
}

var (
	narrowTBRSeed = []CDW{HHH, HHL, HLH, HLL, LHH, LHL, LLH, LLL}
	wideTBRSeed   = []CDW{HHH, HHL, HLH, HLL, LHH, LHL, LLH, LLL, HHX, HLX, LHX, LLX}
	extendedTBRSeed = []CDW{
		HHHH, HHHL, HHLH, HHLL, HLHH, HLHL, HLLH, HLLL,
		LHHH, LHHL, LHLH, LHLL, LLHH, LLHL, LLLH, LLLL,
		HHH, HHL, HLH, HLL, LHH, LHL, LLH, LLL,
		HHX, HLX, LHX, LLX,
	}
)

// nonExtendedStaticUDW and extendedStaticUDW are the fixed, frequency-tuned
// UDW->CDW assignments the decoder ships with, ported verbatim from
// Decompressor::preloadCDW's two literal initializer tables.
var nonExtendedStaticUDW = map[string]CDW{
	"0":    LXX,
	"1":    HXX,
	"0010": LLX,
	"1101": LHX,
	"0011": HLX,
	"1100": HHX,
	"0101": LLL,
	"1010": LLH,
	"1111": LHL,
	"1001": LHH,
	"0110": HLL,
	"0000": HLH,
	"0100": HHL,
	"1000": HHH,
}

var extendedStaticUDW = map[string]CDW{
	"0":    LXX,
	"1":    HXX,
	"0000": LLX,
	"0001": LHX,
	"0011": HLX,
	"1100": HHX,
	"0101": LLL,
	"1010": LLH,
}

// Lookup returns the CDW currently assigned to the literal UDW bits, or None
// if no active mapping covers it.
func (cb *Codebook) Lookup(udw string) CDW {
	if cdw, ok := cb.udwToCDW[udw]; ok {
		return cdw
	}
	return None
}

// Benefit returns cdw's compression benefit given the UDW currently mapped
// to it: udwLength - encodedLength. It is memoized the way
// Decompressor::getCDWBenefit memoizes m_cdw_benefit, and recomputed lazily
// on first use after a Reset.
func (cb *Codebook) Benefit(cdw CDW) int {
	if b, ok := cb.benefit[cdw]; ok {
		return b
	}
	for udw, c := range cb.udwToCDW {
		if c == cdw {
			b := len(udw) - Length(cdw)
			cb.benefit[cdw] = b
			return b
		}
	}
	return 0
}

// Preimage returns a UDW currently mapped to cdw, if any — the inverse of
// Lookup, used by the validator to reconstruct the original input from an
// emitted CDW sequence (spec.md section 4.7).
func (cb *Codebook) Preimage(cdw CDW) (string, bool) {
	for udw, c := range cb.udwToCDW {
		if c == cdw {
			return udw, true
		}
	}
	return "", false
}

// TBC returns the UDWs installed dynamically so far, in insertion order —
// the decoder's preload configuration payload.
func (cb *Codebook) TBC() []string { return cb.tbc }

// TBR returns the CDW slots still eligible for dynamic overwrite.
func (cb *Codebook) TBR() []CDW { return cb.tbr }

// StoreDyn attempts to install udw as a dynamically-configured UDW. It
// mirrors Decompressor::storeDynCDW:
//
//  1. If udw is already mapped and its image is not in TBR, the UDW is
//     already covered by the static set: skip, report InsertAlreadyCovered.
//  2. Otherwise pop the last TBR entry, erase every existing UDW whose image
//     equals that tag (so the tag becomes free to take on a single new
//     meaning), install udw -> tag, and append udw to TBC.
//  3. If TBR is empty, fail soft: report InsertOverfill without touching the
//     table (spec.md section 7: CodebookOverfill is recovered, counted, and
//     does not abort the partition).
func (cb *Codebook) StoreDyn(udw string) InsertResult {
	if cb.sealed {
		panic(Error("StoreDyn called on a sealed codebook"))
	}
	if existing, ok := cb.udwToCDW[udw]; ok && !cb.inTBR(existing) {
		return InsertAlreadyCovered
	}
	if len(cb.tbr) == 0 {
		return InsertOverfill
	}
	tag := cb.tbr[len(cb.tbr)-1]
	cb.tbr = cb.tbr[:len(cb.tbr)-1]

	// Erase every existing UDW mapped to tag, in reverse insertion order to
	// match the original's boost::adaptors::reverse iteration (only
	// observable difference: Go maps have no iteration order to begin with,
	// so this is simply "erase all", which is the only behavior that
	// matters for a map keyed by UDW string).
	for existingUDW, c := range cb.udwToCDW {
		if c == tag {
			delete(cb.udwToCDW, existingUDW)
		}
	}
	cb.udwToCDW[udw] = tag
	cb.tbc = append(cb.tbc, udw)
	delete(cb.benefit, tag)
	return InsertOK
}

func (cb *Codebook) inTBR(cdw CDW) bool {
	for _, t := range cb.tbr {
		if t == cdw {
			return true
		}
	}
	return false
}

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "codebook: " + string(e) }
