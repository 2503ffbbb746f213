// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package config

import "github.com/spf13/pflag"

// FlagSet registers every Config option onto fs, seeded from base (typically
// Default() or a previously config.Load'd file), the way
// doismellburning-samoyed/src/appserver.go registers its flag set against
// spf13/pflag: one StringP/IntP/BoolP call per option, returning pointers
// the caller dereferences into a Config after fs.Parse.
type FlagSet struct {
	fs *pflag.FlagSet

	maxCDWs       *int
	extCDWs       *bool
	heurInnerFreq *int
	heurOuterFreq *int
	heurWeight    *int
	heurPermute   *int
	sat           *bool
	satSec        *bool
	satConfl      *int
	satRestart    *int
	merging       *bool
	partSize      *int
	dynamic       *bool
	p2sBuffer     *bool
	hex           *bool
	allowX        *bool
	validate      *bool
	genLegacy     *bool
	genCompressed *bool
	genGolden     *bool
	verbose       *bool
	debug         *bool
	seed          *int64
	seedSet       *bool
}

// NewFlagSet registers one flag per Config field onto fs, defaulted from
// base.
func NewFlagSet(fs *pflag.FlagSet, base Config) *FlagSet {
	f := &FlagSet{fs: fs}
	f.maxCDWs = fs.IntP("max-cdws", "m", base.MaxCDWs, "upper bound on dynamic-slot count; >12 enables extended 4-trit CDWs")
	f.extCDWs = fs.Bool("ext-cdws", base.ExtCDWs, "enable extended 4-trit CDW set")
	f.heurInnerFreq = fs.Int("heur-inner-freq", base.HeurInnerFreq, "heuristic inner filter cutoff frequency")
	f.heurOuterFreq = fs.Int("heur-outer-freq", base.HeurOuterFreq, "heuristic outer filter cutoff frequency")
	f.heurWeight = fs.Int("heur-weight", base.HeurWeight, "byte-length bias weight")
	f.heurPermute = fs.Int("heur-permute", base.HeurPermute, "stride of the permutation scan")
	f.sat = fs.Bool("sat", base.SAT, "enable the formal (PBO) selector")
	f.satSec = fs.Bool("sat-sec", base.SATSec, "enable the second optimization pass")
	f.satConfl = fs.Int("sat-confl", base.SATConfl, "solver conflict limit")
	f.satRestart = fs.Int("sat-restart", base.SATRestart, "solver restart limit")
	f.merging = fs.Bool("merging", base.Merging, "enable stage-3 repetition merging")
	f.partSize = fs.IntP("part-size", "s", base.PartSize, "partition length in trits, 0 = no partitioning")
	f.dynamic = fs.Bool("dynamic", base.Dynamic, "enable the dynamic dictionary")
	f.p2sBuffer = fs.Bool("p2s-buffer", base.P2SBuffer, "run the P2S delay analysis")
	f.hex = fs.Bool("hex", base.Hex, "input file is hex, 32 bits per line")
	f.allowX = fs.Bool("allow-x", base.AllowX, "generate X trits in synthetic input")
	f.validate = fs.Bool("validate", base.Validate, "run the post-emission validator")
	f.genLegacy = fs.Bool("gen-legacy", base.GenLegacy, "emit the legacy (uncompressed) stream")
	f.genCompressed = fs.Bool("gen-compressed", base.GenCompressed, "emit the compressed stream")
	f.genGolden = fs.Bool("gen-golden", base.GenGolden, "emit the golden reference stream")
	f.verbose = fs.BoolP("verbose", "v", base.Verbose, "enable verbose logging")
	f.debug = fs.Bool("debug", base.Debug, "enable debug logging")
	var seedDefault int64
	if base.Seed != nil {
		seedDefault = *base.Seed
	}
	f.seed = fs.Int64("seed", seedDefault, "PRNG seed; omit for a clock-derived seed")
	f.seedSet = new(bool)
	return f
}

// Resolve reads back the parsed flag values into a Config. Seed is left nil
// unless --seed was explicitly passed, preserving the clock-seeded default
// at the CLI boundary (spec.md section 9).
func (f *FlagSet) Resolve() Config {
	cfg := Config{
		MaxCDWs:       *f.maxCDWs,
		ExtCDWs:       *f.extCDWs,
		HeurInnerFreq: *f.heurInnerFreq,
		HeurOuterFreq: *f.heurOuterFreq,
		HeurWeight:    *f.heurWeight,
		HeurPermute:   *f.heurPermute,
		SAT:           *f.sat,
		SATSec:        *f.satSec,
		SATConfl:      *f.satConfl,
		SATRestart:    *f.satRestart,
		Merging:       *f.merging,
		PartSize:      *f.partSize,
		Dynamic:       *f.dynamic,
		P2SBuffer:     *f.p2sBuffer,
		Hex:           *f.hex,
		AllowX:        *f.allowX,
		Validate:      *f.validate,
		GenLegacy:     *f.genLegacy,
		GenCompressed: *f.genCompressed,
		GenGolden:     *f.genGolden,
		Verbose:       *f.verbose,
		Debug:         *f.debug,
	}
	if f.fs.Changed("seed") {
		seed := *f.seed
		cfg.Seed = &seed
	}
	return cfg
}
