// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colortransform

import "math"

// LUT3D is a cubic lookup table of N³ RGB triples, sampled on a regular
// grid over [0,1]³ and interpolated trilinearly, the same grid-then-
// interpolate shape as colormap.Map's 1D lookup generalized to three axes.
type LUT3D struct {
	N    int
	Data []float32 // length 3*N*N*N, index 3*(i + N*j + N*N*k)
}

// chainFunc maps an (r,g,b) triple in [0,1]³ through a full color chain in
// floating point; BuildLUT3D samples it at every grid point.
type chainFunc func(r, g, b float64) (float64, float64, float64)

// BuildLUT3D samples chain at every grid point of an N×N×N cube and
// clamps each result to [0,1] with ensureUnorm, which passes NaN through
// unclamped so a broken chain is visible in the LUT instead of silently
// flattened to black.
func BuildLUT3D(n int, chain chainFunc) *LUT3D {
	data := make([]float32, 3*n*n*n)
	denom := float64(n - 1)
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				r := float64(i) / denom
				g := float64(j) / denom
				b := float64(k) / denom
				or, og, ob := chain(r, g, b)
				idx := 3 * (i + n*j + n*n*k)
				data[idx+0] = float32(ensureUnorm(or))
				data[idx+1] = float32(ensureUnorm(og))
				data[idx+2] = float32(ensureUnorm(ob))
			}
		}
	}
	return &LUT3D{N: n, Data: data}
}

// ensureUnorm clamps x to [0,1], passing NaN through unchanged — a
// deliberate diagnostic aid so a NaN produced by a malformed chain stays
// visible in sampled output instead of being clamped into a valid-looking
// color.
func ensureUnorm(x float64) float64 {
	if math.IsNaN(x) {
		return x
	}
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Sample trilinearly interpolates the LUT at (r,g,b) ∈ [0,1]³.
func (l *LUT3D) Sample(r, g, b float64) (float64, float64, float64) {
	n := l.N
	if n == 1 {
		return float64(l.Data[0]), float64(l.Data[1]), float64(l.Data[2])
	}
	denom := float64(n - 1)
	fx := clamp01(r) * denom
	fy := clamp01(g) * denom
	fz := clamp01(b) * denom

	i0, i1, tx := splitAxis(fx, n)
	j0, j1, ty := splitAxis(fy, n)
	k0, k1, tz := splitAxis(fz, n)

	at := func(i, j, k int) (float64, float64, float64) {
		idx := 3 * (i + n*j + n*n*k)
		return float64(l.Data[idx]), float64(l.Data[idx+1]), float64(l.Data[idx+2])
	}

	c000r, c000g, c000b := at(i0, j0, k0)
	c100r, c100g, c100b := at(i1, j0, k0)
	c010r, c010g, c010b := at(i0, j1, k0)
	c110r, c110g, c110b := at(i1, j1, k0)
	c001r, c001g, c001b := at(i0, j0, k1)
	c101r, c101g, c101b := at(i1, j0, k1)
	c011r, c011g, c011b := at(i0, j1, k1)
	c111r, c111g, c111b := at(i1, j1, k1)

	lerp := func(a, b, t float64) float64 { return a + (b-a)*t }
	mix3 := func(r00, g00, b00, r10, g10, b10, r01, g01, b01, r11, g11, b11 float64) (float64, float64, float64) {
		r0 := lerp(r00, r10, tx)
		r1 := lerp(r01, r11, tx)
		g0 := lerp(g00, g10, tx)
		g1 := lerp(g01, g11, tx)
		b0 := lerp(b00, b10, tx)
		b1 := lerp(b01, b11, tx)
		return lerp(r0, r1, ty), lerp(g0, g1, ty), lerp(b0, b1, ty)
	}

	rz0, gz0, bz0 := mix3(c000r, c000g, c000b, c100r, c100g, c100b, c010r, c010g, c010b, c110r, c110g, c110b)
	rz1, gz1, bz1 := mix3(c001r, c001g, c001b, c101r, c101g, c101b, c011r, c011g, c011b, c111r, c111g, c111b)
	return lerp(rz0, rz1, tz), lerp(gz0, gz1, tz), lerp(bz0, bz1, tz)
}

func splitAxis(f float64, n int) (lo, hi int, t float64) {
	lo = int(f)
	if lo >= n-1 {
		return n - 1, n - 1, 0
	}
	return lo, lo + 1, f - float64(lo)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
