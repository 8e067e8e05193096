// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tonecurve

import "math"

// Tolerance is the default comparison tolerance for Equal: parameters and
// segment breaks within this distance are treated as identical.
const Tolerance = 1e-5

// Equal reports whether a and b are the same curve within Tolerance: same
// type, same parameter count with parameters matching elementwise, or (for
// Sampled curves) matching sample tables elementwise.
func Equal(a, b Curve) bool {
	if a.Type != b.Type {
		return false
	}
	if a.Type == Sampled {
		if len(a.Samples) != len(b.Samples) {
			return false
		}
		for i := range a.Samples {
			if !closeEnough(a.Samples[i], b.Samples[i]) {
				return false
			}
		}
		return true
	}
	if len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		if !closeEnough(a.Params[i], b.Params[i]) {
			return false
		}
	}
	return true
}

func closeEnough(x, y float64) bool {
	d := x - y
	if d < 0 {
		d = -d
	}
	if math.IsInf(x, 0) || math.IsInf(y, 0) {
		return math.IsInf(x, 1) == math.IsInf(y, 1) && math.IsInf(x, -1) == math.IsInf(y, -1)
	}
	return d <= Tolerance
}
