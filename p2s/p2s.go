// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package p2s models the parallel-to-serial shift-register drain the
// decoder hardware performs while consuming a compressed stream
// (spec.md section 4.6).
package p2s

import "github.com/vecthor/tdrzip/route"

// Burst is one recorded event: at cycle Cycle, dist additional bits of
// expanded UDW content become available to the serial shift register.
type Burst struct {
	Cycle int
	Dist  int
}

// Buffer simulates the shift-register drain against a finalized Route.
type Buffer struct {
	codebookLength func(cdw route.Replacement) int
}

// NewBuffer constructs a Buffer. encodedLength reports the bit length of a
// replacement's encoded form (codebook.Length(cdw.CDW)); it is injected
// rather than imported directly so this package stays free of a codebook
// dependency — route.Replacement alone carries everything the simulation
// needs once callers resolve encoded length up front.
func NewBuffer(encodedLength func(r route.Replacement) int) *Buffer {
	return &Buffer{codebookLength: encodedLength}
}

// Bursts walks the finalized route and records the burst schedule: cycle i
// advances by the most recent non-XXX replacement's *encoded* length (not
// its UDW window length); the dist recorded at that cycle is the *UDW*
// (window) length of the current replacement (spec.md section 9,
// authoritative reading of the open question on burst-cycle accounting).
func (b *Buffer) Bursts(rt route.Route) []Burst {
	var bursts []Burst
	cycle := 0
	for _, r := range rt.Replacements {
		dist := r.Length()
		bursts = append(bursts, Burst{Cycle: cycle, Dist: dist})
		if enc := b.codebookLength(r); enc > 0 {
			cycle += enc
		}
	}
	return bursts
}

// ProcessRoute computes the minimum non-negative startup delay such that the
// decoder's shift register buffer never underruns (goes negative) while
// draining rt's burst schedule, searching up to maxCycles (spec.md
// section 4.6, "Delay search").
func (b *Buffer) ProcessRoute(rt route.Route, maxCycles int) int {
	bursts := b.Bursts(rt)
	for delay := 0; delay < maxCycles; delay++ {
		if simulate(bursts, maxCycles, delay) {
			return delay
		}
	}
	return maxCycles
}

// Depth returns the peak buffer occupancy across the simulation at the
// given delay — the physical buffer depth the hardware must provision
// (spec.md section 4.6, "max(buf) is the required physical buffer depth").
func (b *Buffer) Depth(rt route.Route, maxCycles, delay int) int {
	bursts := b.Bursts(rt)
	buf := simulateBuf(bursts, maxCycles, delay)
	max := 0
	for _, v := range buf {
		if v > max {
			max = v
		}
	}
	return max
}

// simulate reports whether buf[i] >= 0 for every cycle under the given
// startup delay.
func simulate(bursts []Burst, maxCycles, delay int) bool {
	buf := simulateBuf(bursts, maxCycles, delay)
	for _, v := range buf {
		if v < 0 {
			return false
		}
	}
	return true
}

// simulateBuf builds the depth-over-time array against P2SBuffer.C's
// determineDelay model: delay is a startup pre-fill, not a shift applied to
// the burst schedule. Bursts are injected at their real, unshifted cycle;
// the one-bit-per-cycle drain itself does not start until cycle `delay`, so
// content that arrives before the decoder starts consuming simply
// accumulates. A larger delay can only ever help — it gives the buffer more
// time to fill before anything is taken out of it — which is what makes the
// delay search in ProcessRoute meaningful: shifting the bursts later
// instead (as if delay postponed the data's arrival rather than the drain's
// start) would make every burst arrive relatively later against an
// unmoved drain clock, the opposite of a pre-fill. The drain stops once
// every injected bit has been accounted for and the buffer has emptied —
// past that point the TDI clock has nothing left to shift out, so there is
// no sustained underrun past the end of the stream, only whatever
// transient dip the schedule produced while the stream was still live.
func simulateBuf(bursts []Burst, maxCycles, delay int) []int {
	total := 0
	for _, burst := range bursts {
		total += burst.Dist
	}

	var inject []int
	for _, burst := range bursts {
		if burst.Cycle < 0 || burst.Cycle >= maxCycles {
			continue
		}
		for len(inject) <= burst.Cycle {
			inject = append(inject, 0)
		}
		inject[burst.Cycle] += burst.Dist
	}

	var buf []int
	prev, received := 0, 0
	for i := 0; i < maxCycles; i++ {
		cur := prev
		if i < len(inject) {
			received += inject[i]
			cur += inject[i]
		}
		if i >= delay {
			cur--
		}
		buf = append(buf, cur)
		prev = cur
		if received >= total && i >= delay && cur <= 0 {
			break
		}
	}
	return buf
}
