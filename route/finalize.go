// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package route

// Finalize sorts a route by start position, optionally runs the merge pass,
// and asserts full coverage (spec.md section 4.4 "Finalization" /
// section 4.5's closing sentence). It is the single choke point both
// planners route their raw replacement lists through before handing a Route
// to the emitter.
func Finalize(total int, repls []Replacement, merging bool) (Route, error) {
	rt := Route{Total: total, Replacements: repls}
	rt.Sort()
	if merging {
		rt = Merge(rt)
	}
	if err := rt.Validate(); err != nil {
		return Route{}, err
	}
	return rt, nil
}
