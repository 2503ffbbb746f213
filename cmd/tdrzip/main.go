// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command tdrzip compresses and, optionally, validates JTAG TDR bit
// streams against the VecTHOR-style codebook/route pipeline.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/vecthor/tdrzip/config"
	"github.com/vecthor/tdrzip/pipeline"
	"github.com/vecthor/tdrzip/plot"
	"github.com/vecthor/tdrzip/sat"
	"github.com/vecthor/tdrzip/tdr"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := log.New(os.Stderr)

	// A config file changes the *defaults* every other flag resolves
	// against, so --config has to be known before config.NewFlagSet
	// registers the rest: scan for it with a throwaway flag set first: a
	// pflag.FlagSet ignores unrecognized flags when built with
	// ParseErrorsWhitelist.UnknownFlags, so this pass is safe to run
	// against the full argument list.
	precheck := pflag.NewFlagSet("tdrzip-precheck", pflag.ContinueOnError)
	precheck.ParseErrorsWhitelist = pflag.ParseErrorsWhitelist{UnknownFlags: true}
	precheckConfigFile := precheck.StringP("config", "c", "", "")
	_ = precheck.Parse(os.Args[1:])

	cfg := config.Default()
	if *precheckConfigFile != "" {
		loaded, err := config.Load(*precheckConfigFile)
		if err != nil {
			logger.Error("failed to load configuration", "err", err)
			return 1
		}
		cfg = loaded
	}

	fs := pflag.NewFlagSet("tdrzip", pflag.ContinueOnError)
	cflags := config.NewFlagSet(fs, cfg)

	fs.StringP("config", "c", *precheckConfigFile, "YAML configuration file (overrides defaults, overridden by flags)")
	inFile := fs.StringP("input", "i", "", "input TDR file; omit to generate a synthetic TDR")
	genLength := fs.Int("gen-length", 1024, "length in trits of a generated TDR, when --input is omitted")
	outDir := fs.StringP("out-dir", "o", "", "directory for --gen-legacy/--gen-compressed/--gen-golden/--p2s-buffer resync files and plot series; omit to skip all file output")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tdrzip [flags]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		return 2
	}
	// cflags's defaults already reflect any loaded config file, so Resolve
	// is safe to apply unconditionally: unset flags fall back to cfg's own
	// values rather than config.Default()'s. Resolve only ever sets Seed
	// when --seed was passed explicitly, so a seed that came from the
	// config file survives only if we restore it here.
	loadedSeed := cfg.Seed
	cfg = cflags.Resolve()
	if cfg.Seed == nil {
		cfg.Seed = loadedSeed
	}

	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	} else if cfg.Verbose {
		logger.SetLevel(log.InfoLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	seed := time.Now().UnixNano()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}

	var bv tdr.BitVec
	var err error
	if *inFile != "" {
		f, ferr := os.Open(*inFile)
		if ferr != nil {
			logger.Error("failed to open input", "err", ferr)
			return 1
		}
		defer f.Close()
		if cfg.Hex {
			bv, err = tdr.ReadHex(f)
		} else {
			var res tdr.ReadResult
			res, err = tdr.ReadText(f)
			bv = res.Vec
			if res.Skipped > 0 {
				logger.Warn("skipped unsupported characters in text input", "count", res.Skipped)
			}
		}
	} else {
		bv = tdr.Generate(*genLength, cfg.AllowX, seed)
		logger.Info("generated synthetic TDR", "length", *genLength, "seed", seed)
	}
	if err != nil {
		logger.Error("failed to read input", "err", err)
		return 1
	}

	var solver sat.Solver
	if cfg.SAT {
		solver = sat.NewNaiveSolver()
	}

	var outputs *pipeline.Outputs
	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0o755); err != nil {
			logger.Error("failed to create output directory", "err", err)
			return 1
		}
		create := func(partition int, name string) (io.WriteCloser, error) {
			return os.Create(filepath.Join(*outDir, fmt.Sprintf("part%d.%s", partition, name)))
		}
		openPlotFile := func(name string) (io.WriteCloser, error) {
			return os.Create(filepath.Join(*outDir, name))
		}
		outputs = &pipeline.Outputs{
			Create: create,
			Plot:   plot.NewGnuplotWriter(openPlotFile, "partition / encoded length", "ratio / count", plot.Scatter),
		}
	}

	result, err := pipeline.Run(cfg, bv, solver, logger, outputs)
	if err != nil {
		logger.Error("pipeline failed", "err", err)
		return 1
	}

	for i, pr := range result.Partitions {
		logger.Info("partition complete",
			"index", i,
			"length", len(pr.Input),
			"replacements", len(pr.Route.Replacements),
			"ratio", pr.Compressor.CompressionRatio(),
		)
		if cfg.P2SBuffer {
			logger.Info("p2s delay analysis", "index", i, "delay", pr.P2SDelay, "depth", pr.P2SDepth)
		}
	}
	logger.Info("overall compression ratio", "ratio", result.Total.CompressionRatio(),
		"replacements", result.Total.NumReplacements, "overfills", result.Total.NumOverfill)
	return 0
}
