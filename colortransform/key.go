// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colortransform builds and caches the color pipelines that carry
// pixels between input buffer space, the linear blend space, and output
// device space: 3D LUTs for the chains that mix gamuts, and bare 1D curves
// for the chains that are pure re-linearization.
package colortransform

// Category distinguishes which stage of the pipeline a Transform serves.
type Category int

const (
	// InputToBlend composes input_profile · output_profile · output_EOTF
	// into a 3D LUT (plus an optional folded pre-curve), landing surface
	// content in the output-referred linear blend space.
	InputToBlend Category = iota
	// InputToOutput composes input_profile · output_profile · VCGT (VCGT
	// omitted if the output profile doesn't carry one) into a 3D LUT, for
	// direct-scanout paths that skip the blend space entirely.
	InputToOutput
	// BlendToOutput is inverse-EOTF then VCGT: always a pure per-channel
	// curve, never a 3D LUT, since blend space is defined as output space
	// linearized.
	BlendToOutput
)

// Intent is the rendering intent consumed when building a chain that maps
// between profiles with different gamuts. RelativeColorimetric is the only
// intent this pipeline implements; the others are accepted as cache-key
// values so a caller requesting them gets a distinct (if behaviorally
// identical) cache entry rather than a silent substitution.
type Intent int

const (
	RelativeColorimetric Intent = iota
	Perceptual
	Saturation
	AbsoluteColorimetric
)

// Key identifies a cached Transform: category, rendering intent, and the
// MD5 identities of the input and output color profiles. Lookup is by
// value equality, not pointer identity, so two callers naming the same
// profile pair always hit the same cache entry regardless of which
// *colorprofile.ColorProfile reference they hold.
type Key struct {
	Category  Category
	Intent    Intent
	InputMD5  string
	OutputMD5 string
}
