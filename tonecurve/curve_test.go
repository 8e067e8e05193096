// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tonecurve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPowerLawEval(t *testing.T) {
	c := NewPowerLaw(2.2)
	assert.InDelta(t, 0, c.Eval(0), 1e-9)
	assert.InDelta(t, 1, c.Eval(1), 1e-9)
	assert.Less(t, c.Eval(0.5), 0.5)
}

func TestSampledEval(t *testing.T) {
	c := NewSampled([]float64{0, 0.25, 1})
	assert.InDelta(t, 0.125, c.Eval(0.25), 1e-9)
	assert.InDelta(t, 0.625, c.Eval(0.75), 1e-9)
}

func TestComposePowerAgreeingSigns(t *testing.T) {
	f := PowerCurve{Exponent: 2.2}
	g := PowerCurve{Exponent: 1 / 2.2}
	c := ComposePower(f, g)
	assert.InDelta(t, 1.0, c.Params[0], 1e-9)
}

func TestComposePowerDisagreeingSigns(t *testing.T) {
	f := PowerCurve{Exponent: 2.2}
	g := PowerCurve{Exponent: 2.2, Inverted: true}
	c := ComposePower(f, g)
	assert.InDelta(t, 1.0, c.Params[0], 1e-9)
}

func TestComposeFallsBackForNonPower(t *testing.T) {
	f := NewPowerLaw(2.2)
	g := Curve{Type: SShaped, Params: []float64{3}}
	_, ok := Compose(f, g)
	assert.False(t, ok)
}

func TestEqualTolerance(t *testing.T) {
	a := NewPowerLaw(2.2)
	b := NewPowerLaw(2.2 + 1e-7)
	assert.True(t, Equal(a, b))
	c := NewPowerLaw(2.3)
	assert.False(t, Equal(a, c))
}

func TestInvertPowerLaw(t *testing.T) {
	c := NewPowerLaw(2.2)
	inv := c.Invert(0)
	assert.InDelta(t, 1/2.2, inv.Params[0], 1e-9)
	assert.InDelta(t, 0.5, c.Eval(inv.Eval(0.5)), 1e-6)
}

func TestInvertSampledByBisection(t *testing.T) {
	c := NewSampled(NewPowerLaw(2.0).Sample(64))
	inv := c.Invert(64)
	require := inv.Eval(0.25)
	assert.InDelta(t, 0.5, require, 0.02)
}
