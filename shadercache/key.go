// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shadercache compiles and caches the shader programs a paint node
// needs to draw a surface: a fixed vertex/fragment template parameterized
// by a packed ShaderKey, MRU-evicted after each frame.
package shadercache

// Variant selects the per-plane texture-sampling path the fragment shader
// template is specialized for.
type Variant uint32

const (
	VariantRGBX Variant = iota
	VariantRGBA
	VariantYUV420
	VariantNV12
	VariantYUV422Packed
	VariantXYUV
	VariantSolid
	VariantExternal
	VariantRGBA16F
)

const numVariants = 9

// ShaderKey is the packed bit-pattern identifying a shader variant: bits
// 0-3 hold the texture Variant (9 values fit in 4 bits), bit 4 is the
// green-tint debug flag, bit 5 is premultiplied-alpha blending, and the
// remaining bits are reserved and must stay zero. The cache hashes this as
// raw bytes, so any reserved bit that isn't explicitly zeroed would make
// two logically-identical keys compare unequal.
type ShaderKey uint32

const (
	bitsVariant   = 0
	maskVariant   = 0xF
	bitGreenTint  = 4
	bitPremult    = 5
)

// NewShaderKey packs a ShaderKey from its components. It panics on an
// out-of-range variant rather than silently masking it, since a truncated
// variant would alias a different, valid shader.
func NewShaderKey(v Variant, greenTint, premultiplied bool) ShaderKey {
	if uint32(v) >= numVariants {
		panic("shadercache: variant out of range")
	}
	k := ShaderKey(v) & maskVariant
	if greenTint {
		k |= 1 << bitGreenTint
	}
	if premultiplied {
		k |= 1 << bitPremult
	}
	return k
}

// Variant extracts the texture variant from k.
func (k ShaderKey) Variant() Variant { return Variant(k & maskVariant) }

// GreenTint reports whether k requests the fan-debug green-tint variant.
func (k ShaderKey) GreenTint() bool { return k&(1<<bitGreenTint) != 0 }

// Premultiplied reports whether k requests premultiplied-alpha blending.
func (k ShaderKey) Premultiplied() bool { return k&(1<<bitPremult) != 0 }

// solidDarkRed is the fixed key used to censor protection-sensitive
// surfaces: the solid-color variant with no debug or blend flags, always
// resolving to the distinguished fallback-adjacent solid shader.
const solidDarkRed = ShaderKey(VariantSolid)
