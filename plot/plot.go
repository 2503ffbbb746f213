// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package plot specifies the diagnostic plotting contract, grounded on
// original_source/retarget/src/Plotter.h's ConfigMap/writeConfig/writeData
// split. Rendering (invoking gnuplot) is an explicit non-goal (spec.md
// section 1): Writer only ever produces the data file and the gnuplot
// script that would render it.
package plot

import (
	"fmt"
	"io"
	"strings"
)

// Error is the package-local error wrapper.
type Error string

func (e Error) Error() string { return "plot: " + string(e) }

// Type mirrors Plotter::PlotType: the plot styles the original tool
// produces for compression-ratio-vs-partition and CDW-usage-histogram
// diagnostics.
type Type int

const (
	Scatter Type = iota
	Histogram
	Plot3D
)

// Writer is the contract a diagnostic series is rendered through.
// WriteSeries never shells out to gnuplot: it only emits the files gnuplot
// would consume.
type Writer interface {
	WriteSeries(name string, x, y []float64) error
}

// GnuplotWriter is the default Writer: it writes one whitespace-separated
// data file and one matching ".gpl" script per series, mirroring
// Plotter::writeData/writeConfig.
type GnuplotWriter struct {
	Type     Type
	XLabel   string
	YLabel   string
	openData func(name string) (io.WriteCloser, error)
	openCfg  func(name string) (io.WriteCloser, error)
}

// NewGnuplotWriter builds a GnuplotWriter that opens "<name>.dat" and
// "<name>.gpl" files via openFile (typically os.Create), so tests can swap
// in an in-memory sink.
func NewGnuplotWriter(openFile func(name string) (io.WriteCloser, error), xlabel, ylabel string, typ Type) *GnuplotWriter {
	return &GnuplotWriter{
		Type:   typ,
		XLabel: xlabel,
		YLabel: ylabel,
		openData: func(name string) (io.WriteCloser, error) { return openFile(name + ".dat") },
		openCfg:  func(name string) (io.WriteCloser, error) { return openFile(name + ".gpl") },
	}
}

// WriteSeries writes name.dat (the x/y samples) and name.gpl (the gnuplot
// script that plots them), matching Plotter::writeData and
// Plotter::writeConfig.
func (gw *GnuplotWriter) WriteSeries(name string, x, y []float64) error {
	if len(x) != len(y) {
		return Error("x and y series must have equal length")
	}

	data, err := gw.openData(name)
	if err != nil {
		return Error(err.Error())
	}
	defer data.Close()
	var sb strings.Builder
	for i := range x {
		fmt.Fprintf(&sb, "%g %g\n", x[i], y[i])
	}
	if _, err := io.WriteString(data, sb.String()); err != nil {
		return Error(err.Error())
	}

	cfg, err := gw.openCfg(name)
	if err != nil {
		return Error(err.Error())
	}
	defer cfg.Close()
	style := "points"
	if gw.Type == Histogram {
		style = "boxes"
	}
	script := fmt.Sprintf("set xlabel %q\nset ylabel %q\nplot %q using 1:2 with %s\n",
		gw.XLabel, gw.YLabel, name+".dat", style)
	if _, err := io.WriteString(cfg, script); err != nil {
		return Error(err.Error())
	}
	return nil
}
