// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colortransform

import "github.com/corewm/compose/colorprofile"

// EOTFMode is the electro-optical transfer function an output is driven
// with; it doesn't appear directly in a Key, but the output profile's
// curves are built to already reflect it, so a mode change forces an
// Outcome rebuild the same as a profile change would.
type EOTFMode int

const (
	EOTFSDR EOTFMode = iota
	EOTFST2084
	EOTFHLG
)

// Outcome is the triple of transforms a single output owns: blend→output
// for compositing, sRGB→blend for surfaces whose own color management is
// bypassed, and sRGB→output for direct-scanout of sRGB content. It is
// rebuilt whenever the output's attached profile or EOTF mode changes.
type Outcome struct {
	BlendToOutput *Transform
	SRGBToBlend   *Transform
	SRGBToOutput  *Transform

	profileMD5 string
	eotfMode   EOTFMode
}

// sRGBProfile is the well-known sRGB profile every Outcome composes
// against for its sRGB-sourced transforms; callers load it once (e.g. at
// startup, from an embedded or well-known ICC file) and pass it in here.
var sRGBProfile *colorprofile.ColorProfile

// SetSRGBProfile registers the reference sRGB profile used to build the
// sRGB→blend and sRGB→output legs of every Outcome.
func SetSRGBProfile(p *colorprofile.ColorProfile) {
	sRGBProfile = p
}

// NeedsRebuild reports whether out is stale for the given output profile
// and EOTF mode.
func (out *Outcome) NeedsRebuild(output *colorprofile.ColorProfile, mode EOTFMode) bool {
	return out == nil || out.profileMD5 != output.MD5String() || out.eotfMode != mode
}

// Rebuild constructs a fresh Outcome for output, using b as the shared
// transform cache.
func Rebuild(b *Builder, output *colorprofile.ColorProfile, mode EOTFMode) (*Outcome, error) {
	bo, err := b.Get(Key{Category: BlendToOutput, OutputMD5: output.MD5String()}, nil, output)
	if err != nil {
		return nil, err
	}
	var sb, so *Transform
	if sRGBProfile != nil {
		sb, err = b.Get(Key{Category: InputToBlend, InputMD5: sRGBProfile.MD5String(), OutputMD5: output.MD5String()}, sRGBProfile, output)
		if err != nil {
			return nil, err
		}
		so, err = b.Get(Key{Category: InputToOutput, InputMD5: sRGBProfile.MD5String(), OutputMD5: output.MD5String()}, sRGBProfile, output)
		if err != nil {
			return nil, err
		}
	}
	return &Outcome{
		BlendToOutput: bo,
		SRGBToBlend:   sb,
		SRGBToOutput:  so,
		profileMD5:    output.MD5String(),
		eotfMode:      mode,
	}, nil
}
