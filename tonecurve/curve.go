// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tonecurve implements the fixed set of 1D tone-curve forms a
// color profile's TRC tags decode to: parametric forms dispatched by type
// and parameter count, and sampled curves for profiles that only provide
// a lookup table.
package tonecurve

import "math"

// Type enumerates the supported analytical curve forms, each with a fixed
// parameter count: power law (1), CIE 122-1966 gated power (3), IEC
// 61966-3 gated power with offset (4), sRGB-style gated power with linear
// segment (5), five-parameter gated power with offset (7), two ICC
// segmented forms log/exp (5 each), and an S-shaped form (1).
type Type int

const (
	PowerLaw Type = iota
	CIE122
	IEC61966_3
	SRGBStyle
	FiveParam
	SegmentedLog
	SegmentedExp
	SShaped
	Sampled
)

// ParamCount is the fixed parameter count for each analytical Type.
var ParamCount = map[Type]int{
	PowerLaw:     1,
	CIE122:       3,
	IEC61966_3:   4,
	SRGBStyle:    5,
	FiveParam:    7,
	SegmentedLog: 5,
	SegmentedExp: 5,
	SShaped:      1,
}

// Curve is a single tone-reproduction curve: either one of the fixed
// analytical forms with its parameters, or a sampled lookup table.
type Curve struct {
	Type    Type
	Params  []float64
	Samples []float64 // populated only when Type == Sampled
}

// NewPowerLaw builds a pure power curve y = x^g.
func NewPowerLaw(gamma float64) Curve {
	return Curve{Type: PowerLaw, Params: []float64{gamma}}
}

// NewSampled builds a curve from n evenly spaced samples over [0,1],
// matching the 1024-point sampled representation load_from_icc produces
// when a profile's TRC is not parametrically representable.
func NewSampled(samples []float64) Curve {
	return Curve{Type: Sampled, Samples: samples}
}

// Eval evaluates the curve at x, which must be in [0,1].
func (c Curve) Eval(x float64) float64 {
	switch c.Type {
	case Sampled:
		return evalSampled(c.Samples, x)
	case PowerLaw:
		return math.Pow(x, c.Params[0])
	case CIE122:
		// y = (a*x + b)^g, x >= -b/a; 0 otherwise (ICC functionType 1).
		g, a, b := c.Params[0], c.Params[1], c.Params[2]
		if x >= -b/a {
			return math.Pow(a*x+b, g)
		}
		return 0
	case IEC61966_3:
		// y = (a*x + b)^g + c, x >= -b/a; c otherwise (ICC functionType 2).
		g, a, b, cc := c.Params[0], c.Params[1], c.Params[2], c.Params[3]
		if x >= -b/a {
			return math.Pow(a*x+b, g) + cc
		}
		return cc
	case SRGBStyle:
		// y = (a*x + b)^g, x >= d; c*x otherwise (ICC functionType 3).
		g, a, b, cc, d := c.Params[0], c.Params[1], c.Params[2], c.Params[3], c.Params[4]
		if x >= d {
			return math.Pow(a*x+b, g)
		}
		return cc * x
	case FiveParam:
		// y = (a*x + b)^g + e, x >= d; c*x + f otherwise (ICC functionType 4).
		g, a, b, cc, d, e, f := c.Params[0], c.Params[1], c.Params[2], c.Params[3], c.Params[4], c.Params[5], c.Params[6]
		if x >= d {
			return math.Pow(a*x+b, g) + e
		}
		return cc*x + f
	case SegmentedLog:
		return evalSegmentedLog(c.Params, x)
	case SegmentedExp:
		return evalSegmentedExp(c.Params, x)
	case SShaped:
		k := c.Params[0]
		return sShape(x, k)
	default:
		return x
	}
}

// evalSegmentedLog and evalSegmentedExp are the ICC segmentedCurveType
// log/exp shapes over a joined [breakpoint, gamma, a, b, c] parameter
// layout, the same shape the sampled-table path falls back to when a
// profile's curve can't be represented by the other analytical forms.
func evalSegmentedLog(p []float64, x float64) float64 {
	brk, g, a, b, c := p[0], p[1], p[2], p[3], p[4]
	if x <= 0 {
		return 0
	}
	if x < brk {
		return a * x
	}
	return b*math.Log(x)*g + c
}

func evalSegmentedExp(p []float64, x float64) float64 {
	brk, g, a, b, c := p[0], p[1], p[2], p[3], p[4]
	if x < brk {
		return a * x
	}
	return b*math.Exp(g*x) + c
}

// sShape is a logistic S-curve parameterized by a single steepness k,
// normalized so sShape(0)=0 and sShape(1)=1.
func sShape(x, k float64) float64 {
	if k == 0 {
		return x
	}
	f := func(t float64) float64 { return 1 / (1 + math.Exp(-k*(t-0.5))) }
	f0, f1 := f(0), f(1)
	return (f(x) - f0) / (f1 - f0)
}

func evalSampled(samples []float64, x float64) float64 {
	n := len(samples)
	if n == 0 {
		return x
	}
	if n == 1 {
		return samples[0]
	}
	pos := x * float64(n-1)
	if pos <= 0 {
		return samples[0]
	}
	if pos >= float64(n-1) {
		return samples[n-1]
	}
	i := int(pos)
	t := pos - float64(i)
	return samples[i]*(1-t) + samples[i+1]*t
}

// Sample returns n evenly-spaced samples of c over [0,1].
func (c Curve) Sample(n int) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = c.Eval(float64(i) / float64(n-1))
	}
	return out
}
