// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colortransform

import (
	"fmt"
	"sync"

	"github.com/corewm/compose/colorprofile"
	"github.com/corewm/compose/internal/errs"
	"github.com/corewm/compose/tonecurve"
)

// DefaultLUTDimension is the grid size the Builder passes to BuildLUT3D
// for every 3D LUT it builds; 33 is the conventional ICC/LittleCMS
// default that balances interpolation error against memory.
const DefaultLUTDimension = 33

// entry is one node of the Builder's cache list.
type entry struct {
	key       Key
	transform *Transform
	next      *entry
}

// Builder constructs and caches Transforms. Lookup is a linear scan over a
// linked list, acceptable because the live set in practice is under ten
// entries (one triple per connected output, plus any inputs with a
// non-default color profile).
type Builder struct {
	mu   sync.Mutex
	head *entry
}

// NewBuilder returns an empty transform cache.
func NewBuilder() *Builder {
	return &Builder{}
}

// Get returns the cached Transform for key, bumping its refcount, or
// constructs, verifies, caches, and returns a new one on miss. input is
// nil for BlendToOutput, which only ever depends on output.
func (b *Builder) Get(key Key, input, output *colorprofile.ColorProfile) (*Transform, error) {
	b.mu.Lock()
	for e := b.head; e != nil; e = e.next {
		if e.key == key {
			e.transform.RefCount++
			b.mu.Unlock()
			return e.transform, nil
		}
	}
	b.mu.Unlock()

	tr, err := build(key, input, output)
	if err != nil {
		return nil, err
	}
	if err := verify(key, tr, input, output); err != nil {
		return nil, err
	}
	tr.RefCount = 1

	b.mu.Lock()
	defer b.mu.Unlock()
	for e := b.head; e != nil; e = e.next {
		if e.key == key {
			e.transform.RefCount++
			return e.transform, nil
		}
	}
	b.head = &entry{key: key, transform: tr, next: b.head}
	return tr, nil
}

// Release drops one reference to the cached transform for key, evicting it
// from the cache once unreferenced.
func (b *Builder) Release(key Key) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var prev *entry
	for e := b.head; e != nil; e = e.next {
		if e.key == key {
			e.transform.RefCount--
			if e.transform.RefCount <= 0 {
				if prev == nil {
					b.head = e.next
				} else {
					prev.next = e.next
				}
			}
			return
		}
		prev = e
	}
}

func build(key Key, input, output *colorprofile.ColorProfile) (*Transform, error) {
	switch key.Category {
	case BlendToOutput:
		return buildBlendToOutput(key, output), nil
	case InputToBlend:
		return buildInputToBlend(key, input, output), nil
	case InputToOutput:
		return buildInputToOutput(key, input, output), nil
	default:
		return nil, fmt.Errorf("%w: unknown category %d", errs.ErrTransformConstruction, key.Category)
	}
}

// buildBlendToOutput realizes "inverse EOTF then VCGT" as a bare pre-curve
// — the blend space is defined as the output device space linearized, so
// this chain is never more than a 1D curve per channel.
func buildBlendToOutput(key Key, output *colorprofile.ColorProfile) *Transform {
	return &Transform{
		Key:      key,
		PreCurve: output.Inverse,
		HasLUT:   false,
	}
}

// buildInputToBlend realizes input_profile · output_profile · output_EOTF
// as a 3D LUT. Under the simplifying assumption that every profile shares
// the reference linear RGB primaries (no chromatic-adaptation matrix is
// modeled — see DESIGN.md), output_profile · output_EOTF collapses to the
// identity and the chain reduces to the input profile's forward EOTF. When
// that forward curve is a native analytical form it is factored out as a
// pre-curve in front of an identity LUT, matching the "pre-curve emitted
// as LUT_3×1D only if it fits a native curve" rule; a sampled forward
// curve is instead folded directly into the LUT samples.
func buildInputToBlend(key Key, input, output *colorprofile.ColorProfile) *Transform {
	n := DefaultLUTDimension
	if fitsNativeCurve(input) {
		lut := BuildLUT3D(n, func(r, g, b float64) (float64, float64, float64) { return r, g, b })
		return &Transform{Key: key, PreCurve: input.Forward, HasLUT: true, LUT: lut}
	}
	lut := BuildLUT3D(n, func(r, g, b float64) (float64, float64, float64) {
		return input.Forward[0].Eval(r), input.Forward[1].Eval(g), input.Forward[2].Eval(b)
	})
	return &Transform{Key: key, PreCurve: identityPreCurve(), HasLUT: true, LUT: lut}
}

// buildInputToOutput realizes input_profile · output_profile · VCGT as a
// 3D LUT; VCGT is already folded into output.Inverse by colorprofile when
// present, so this is simply the input forward curve composed with the
// output inverse curve, sampled onto the grid.
func buildInputToOutput(key Key, input, output *colorprofile.ColorProfile) *Transform {
	n := DefaultLUTDimension
	lut := BuildLUT3D(n, func(r, g, b float64) (float64, float64, float64) {
		lr, lg, lb := input.Forward[0].Eval(r), input.Forward[1].Eval(g), input.Forward[2].Eval(b)
		return output.Inverse[0].Eval(lr), output.Inverse[1].Eval(lg), output.Inverse[2].Eval(lb)
	})
	return &Transform{Key: key, PreCurve: identityPreCurve(), HasLUT: true, LUT: lut}
}

// fitsNativeCurve reports whether every channel of a profile's forward
// curve is one of the closed analytical forms rather than a sampled
// table — the condition under which the curve can be factored out of a
// 3D LUT as a separate pre-curve stage instead of baked into the grid.
func fitsNativeCurve(p *colorprofile.ColorProfile) bool {
	for _, c := range p.Forward {
		if c.Type == tonecurve.Sampled {
			return false
		}
	}
	return true
}
