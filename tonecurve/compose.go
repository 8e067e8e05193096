// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tonecurve

// PowerCurve is the two-valued description of a single power-law segment
// used by ComposePower: an exponent plus whether the curve runs forward
// (y = x^Exponent) or is the functional inverse of that form.
type PowerCurve struct {
	Exponent float64
	Inverted bool
}

// AsPowerCurve reports whether c is representable as a single power-law
// segment, returning it as a PowerCurve if so. Only PowerLaw curves
// qualify; multi-segment and non-power analytical forms do not.
func (c Curve) AsPowerCurve() (PowerCurve, bool) {
	if c.Type != PowerLaw {
		return PowerCurve{}, false
	}
	return PowerCurve{Exponent: c.Params[0]}, true
}

// ComposePower computes f∘g for two single-segment power curves f(x)=x^a
// and g(x)=x^b (or their functional inverses): the exponents multiply when
// the two curves run the same direction (both forward or both inverted),
// and divide when they run opposite directions — this is how consecutive
// "undo linearization + redo linearization" curve pairs collapse to a
// single power curve or to the identity.
func ComposePower(f, g PowerCurve) Curve {
	var c float64
	if f.Inverted == g.Inverted {
		c = f.Exponent * g.Exponent
	} else {
		c = f.Exponent / g.Exponent
	}
	return NewPowerLaw(c)
}

// Compose attempts the power-law composition shortcut for f∘g; ok is false
// for any pairing that isn't two single-segment power curves, signaling
// the caller (the color transform builder) to fall back to 3D-LUT
// composition instead.
func Compose(f, g Curve) (Curve, bool) {
	pf, ok1 := f.AsPowerCurve()
	pg, ok2 := g.AsPowerCurve()
	if !ok1 || !ok2 {
		return Curve{}, false
	}
	return ComposePower(pf, pg), true
}
