// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colortransform

import (
	"fmt"
	"math"

	"github.com/corewm/compose/colorprofile"
	"github.com/corewm/compose/internal/errs"
)

// verifySamples are the per-channel sample values verify checks, finer
// near zero to catch inverse-EOTF precision loss where curves are
// steepest.
var verifySamples = buildVerifySamples()

func buildVerifySamples() []float64 {
	var s []int
	for v := 0; v <= 14; v++ {
		s = append(s, v)
	}
	for v := 16; v <= 248; v += 8 {
		s = append(s, v)
	}
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v) / 255
	}
	return out
}

// defaultTolerance is the two-norm error budget for a category when no
// profile-pair override applies.
const defaultTolerance = 0.0005

// pairTolerance holds wider budgets for profile pairs whose gamuts are far
// enough apart that the default sRGB→sRGB tolerance is unreachable (a
// direct per-pair table rather than a formula, since the actual bound
// depends on how far the two gamuts diverge, not on category alone).
var pairTolerance = map[[2]string]float64{
	{"sRGB", "AdobeRGB"}: 0.0065,
	{"AdobeRGB", "sRGB"}: 0.0065,
}

func toleranceFor(input, output *colorprofile.ColorProfile) float64 {
	if input == nil {
		return defaultTolerance
	}
	if t, ok := pairTolerance[[2]string{input.Name, output.Name}]; ok {
		return t
	}
	return defaultTolerance
}

// verify samples tr at verifySamples and, for categories that have a
// natural round-trip partner (the chain composed with its own inverse
// direction built from the same profiles), measures the two-norm error
// against the identity it should reproduce. Construction fails if any
// sample exceeds the category/profile-pair tolerance.
func verify(key Key, tr *Transform, input, output *colorprofile.ColorProfile) error {
	tol := toleranceFor(input, output)
	roundtrip := roundtripFunc(key, input, output)
	if roundtrip == nil {
		return nil
	}
	var maxErr float64
	for _, r := range verifySamples {
		for _, g := range verifySamples {
			for _, b := range verifySamples {
				or, og, ob := tr.Apply(r, g, b)
				rr, rg, rb := roundtrip(or, og, ob)
				e := twoNorm(rr-r, rg-g, rb-b)
				if e > maxErr {
					maxErr = e
				}
			}
		}
		if maxErr > tol {
			break
		}
	}
	if maxErr > tol {
		return fmt.Errorf("%w: roundtrip error %.6f exceeds tolerance %.6f", errs.ErrTransformConstruction, maxErr, tol)
	}
	return nil
}

// roundtripFunc returns the inverse-direction chain used to check a
// Transform's precision, or nil for categories with no natural inverse to
// check against (InputToOutput's reverse direction isn't itself a chain
// this package ever needs to build).
func roundtripFunc(key Key, input, output *colorprofile.ColorProfile) func(r, g, b float64) (float64, float64, float64) {
	switch key.Category {
	case BlendToOutput:
		return func(r, g, b float64) (float64, float64, float64) {
			return output.Forward[0].Eval(r), output.Forward[1].Eval(g), output.Forward[2].Eval(b)
		}
	case InputToBlend:
		return func(r, g, b float64) (float64, float64, float64) {
			return input.Inverse[0].Eval(r), input.Inverse[1].Eval(g), input.Inverse[2].Eval(b)
		}
	default:
		return nil
	}
}

func twoNorm(x, y, z float64) float64 {
	return math.Sqrt(x*x + y*y + z*z)
}
