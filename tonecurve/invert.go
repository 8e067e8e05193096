// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tonecurve

import "math"

// Invert returns the functional inverse of c. PowerLaw inverts exactly
// (1/gamma); every other analytical form inverts by monotonic bisection
// sampled at n points, since only the power-law inverse has a closed form
// this library needs (the transform builder only ever composes power
// curves directly — every other category goes through 3D-LUT composition
// regardless of curve shape).
func (c Curve) Invert(n int) Curve {
	if c.Type == PowerLaw {
		return NewPowerLaw(1 / c.Params[0])
	}
	samples := make([]float64, n)
	for i := 0; i < n; i++ {
		target := float64(i) / float64(n-1)
		samples[i] = invertByBisection(c, target)
	}
	return NewSampled(samples)
}

func invertByBisection(c Curve, target float64) float64 {
	lo, hi := 0.0, 1.0
	ascending := c.Eval(1) >= c.Eval(0)
	for i := 0; i < 40; i++ {
		mid := (lo + hi) / 2
		v := c.Eval(mid)
		if (v < target) == ascending {
			lo = mid
		} else {
			hi = mid
		}
	}
	return math.Max(0, math.Min(1, (lo+hi)/2))
}
