// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package route

import "github.com/vecthor/tdrzip/codebook"

// Merge implements spec.md section 4.4 stage 3: walking the sorted route
// pairwise, whenever two consecutive replacements carry the same CDW the
// second is rewritten to the repetition marker XXX. emit.FileSink writes
// every XXX marker the same way, counting one COMPR_REPEAT and one multi-rep
// per marker; it does not treat the first XXX of a run differently from the
// ones that follow.
func Merge(rt Route) Route {
	out := make([]Replacement, len(rt.Replacements))
	copy(out, rt.Replacements)

	var lastCDW codebook.CDW
	haveLast := false
	for i := range out {
		original := rt.Replacements[i].CDW
		if haveLast && original == lastCDW {
			out[i].CDW = codebook.XXX
		} else {
			lastCDW = original
			haveLast = true
		}
	}
	rt.Replacements = out
	return rt
}
