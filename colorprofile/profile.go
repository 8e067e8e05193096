// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colorprofile loads ICC display profiles into identity-bearing,
// deduplicated ColorProfile values: each profile carries an MD5 identity
// computed from its source bytes, so the color transform builder can key
// its cache by identity rather than by content.
package colorprofile

import (
	"crypto/md5"
	"fmt"

	"github.com/corewm/compose/internal/errs"
	"github.com/corewm/compose/internal/iccprofile"
	"github.com/corewm/compose/tonecurve"
)

const sampledPoints = 1024

// ColorProfile is a validated, identity-bearing ICC display profile: three
// forward EOTF curves (profile → linear) and three inverse-EOTF⊙VCGT
// curves (linear → device, with the video-card gamma table folded in when
// present), indexed 0=R, 1=G, 2=B.
type ColorProfile struct {
	Name    string
	MD5     [16]byte
	Forward [3]tonecurve.Curve
	Inverse [3]tonecurve.Curve
	VCGT    bool // true if Inverse already has VCGT folded in
}

// MD5String returns the profile's identity as a hex string, the form the
// transform builder's cache key uses.
func (p *ColorProfile) MD5String() string {
	return fmt.Sprintf("%x", p.MD5)
}

// loadFromICC validates and decodes raw ICC bytes into a ColorProfile. It
// does not dedup — that's the Registry's job, since identity comparison
// requires a shared table.
func loadFromICC(data []byte, name string) (*ColorProfile, error) {
	prof, err := iccprofile.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidProfile, err)
	}
	if prof.Header.MajorVer != 2 && prof.Header.MajorVer != 4 {
		return nil, fmt.Errorf("%w: unsupported ICC major version %d", errs.ErrInvalidProfile, prof.Header.MajorVer)
	}
	if !prof.IsDisplay() {
		return nil, fmt.Errorf("%w: device class is not Display", errs.ErrInvalidProfile)
	}
	if prof.Header.ColorSpace.Channels() != 3 {
		return nil, fmt.Errorf("%w: color space has %d channels, want 3", errs.ErrInvalidProfile, prof.Header.ColorSpace.Channels())
	}

	fwd, err := extractChannel(prof, "rTRC")
	if err != nil {
		return nil, err
	}
	fwdG, err := extractChannel(prof, "gTRC")
	if err != nil {
		return nil, err
	}
	fwdB, err := extractChannel(prof, "bTRC")
	if err != nil {
		return nil, err
	}

	inv := [3]tonecurve.Curve{fwd.Invert(sampledPoints), fwdG.Invert(sampledPoints), fwdB.Invert(sampledPoints)}
	hasVCGT := false
	if raw, ok := prof.Tag("vcgt"); ok {
		vcgt, err := iccprofile.ParseVCGT(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrInvalidProfile, err)
		}
		inv[0] = composeWithVCGT(inv[0], vcgt.Red)
		inv[1] = composeWithVCGT(inv[1], vcgt.Green)
		inv[2] = composeWithVCGT(inv[2], vcgt.Blue)
		hasVCGT = true
	}

	sum := md5.Sum(data)
	return &ColorProfile{
		Name:    name,
		MD5:     sum,
		Forward: [3]tonecurve.Curve{fwd, fwdG, fwdB},
		Inverse: inv,
		VCGT:    hasVCGT,
	}, nil
}

func extractChannel(prof *iccprofile.Profile, tag string) (tonecurve.Curve, error) {
	raw, ok := prof.Tag(tag)
	if !ok {
		return tonecurve.Curve{}, fmt.Errorf("%w: missing %s tag", errs.ErrInvalidProfile, tag)
	}
	if len(raw) < 4 {
		return tonecurve.Curve{}, fmt.Errorf("%w: %s tag too short", errs.ErrInvalidProfile, tag)
	}
	sig := string(raw[0:4])
	var ic iccprofile.Curve
	var err error
	switch sig {
	case "curv":
		ic, err = iccprofile.ParseCurv(raw)
	case "para":
		ic, err = iccprofile.ParsePara(raw)
	default:
		return tonecurve.Curve{}, fmt.Errorf("%w: unsupported %s tag type %q", errs.ErrInvalidProfile, tag, sig)
	}
	if err != nil {
		return tonecurve.Curve{}, fmt.Errorf("%w: %v", errs.ErrInvalidProfile, err)
	}
	return toneCurveOf(ic), nil
}

// toneCurveOf converts a decoded ICC TRC tag to the tonecurve representation
// the transform builder composes against: identity and gamma curves become
// a PowerLaw (gamma=1 for identity), parametric curves map directly onto
// the matching tonecurve.Type by functionType, and sampled tables carry
// straight through.
func toneCurveOf(c iccprofile.Curve) tonecurve.Curve {
	switch c.Kind {
	case iccprofile.CurveIdentity:
		return tonecurve.NewPowerLaw(1)
	case iccprofile.CurveGamma:
		return tonecurve.NewPowerLaw(c.Gamma)
	case iccprofile.CurveSampled:
		return tonecurve.NewSampled(c.Samples)
	case iccprofile.CurveParametric:
		typ := [5]tonecurve.Type{
			tonecurve.PowerLaw,
			tonecurve.CIE122,
			tonecurve.IEC61966_3,
			tonecurve.SRGBStyle,
			tonecurve.FiveParam,
		}[c.FunctionType]
		return tonecurve.Curve{Type: typ, Params: c.Params}
	default:
		return tonecurve.NewPowerLaw(1)
	}
}

// composeWithVCGT folds a VCGT channel curve on top of an inverse-EOTF
// curve via the sampled-table path: VCGT is only ever a table or a simple
// gamma/min/max formula, neither of which is a single-segment power curve
// pairing, so the power-law composition shortcut never applies here and
// sampling is the only option.
func composeWithVCGT(inverse, vcgt tonecurve.Curve) tonecurve.Curve {
	samples := make([]float64, sampledPoints)
	for i := 0; i < sampledPoints; i++ {
		x := float64(i) / float64(sampledPoints-1)
		samples[i] = vcgt.Eval(inverse.Eval(x))
	}
	return tonecurve.NewSampled(samples)
}
