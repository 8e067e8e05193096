// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colortransform

import "github.com/corewm/compose/tonecurve"

// Transform is a constructed color chain: a 3D LUT for chains that mix
// gamuts, a bare per-channel pre-curve for chains that are pure
// re-linearization, or both (an LUT with a folded-out pre-curve in front
// of it when the composed linearization happens to collapse to a native
// curve).
type Transform struct {
	Key Key

	PreCurve  [3]tonecurve.Curve // identity (gamma=1 power curve) if unused
	HasLUT    bool
	LUT       *LUT3D
	RefCount  int
}

// Apply runs rgb through the transform: pre-curve first (if present),
// then the LUT (if present).
func (tr *Transform) Apply(r, g, b float64) (float64, float64, float64) {
	r = tr.PreCurve[0].Eval(r)
	g = tr.PreCurve[1].Eval(g)
	b = tr.PreCurve[2].Eval(b)
	if tr.HasLUT {
		return tr.LUT.Sample(r, g, b)
	}
	return r, g, b
}

func identityPreCurve() [3]tonecurve.Curve {
	id := tonecurve.NewPowerLaw(1)
	return [3]tonecurve.Curve{id, id, id}
}
