// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compose

import (
	"math"
	"time"

	vk "github.com/vulkan-go/vulkan"

	"github.com/corewm/compose/clip"
	"github.com/corewm/compose/colortransform"
	"github.com/corewm/compose/internal/gpu"
	"github.com/corewm/compose/internal/linear"
	"github.com/corewm/compose/shadercache"
)

// Filter is the texture sampling filter a paint node draws with.
type Filter int

const (
	FilterNearest Filter = iota
	FilterLinear
)

// PaintNode is one surface's worth of per-frame draw state: its place in
// the view, its buffer's current texture, and the flags that drive the
// filter/censor/blend decisions in DrawNode.
type PaintNode struct {
	View       linear.M3 // surface-space to output-space affine transform
	ViewAlpha  float32
	BoundingBox clip.Rect // view.boundingbox, output space
	Clip       clip.Rect // view.clip, output space

	BufferScale float32
	OutputScale float32
	ZoomActive  bool

	ProtectionSensitive    bool
	OutputProtectionBelow  bool
	RecordingPlaneDisabled bool
	DirectDisplay          bool

	SurfaceTransform *colortransform.Transform // nil if the surface has none
	AcquireFence     *gpu.Fence

	Texture    *gpu.Texture
	BufferRect clip.Rect // surface rect in buffer space, for texcoord mapping

	BaseKey shadercache.ShaderKey
}

// censorKey is the fixed solid-dark-red shader key DrawNode substitutes
// when a node must be censored.
var censorKey = shadercache.NewShaderKey(shadercache.VariantSolid, false, false)

// DrawNode executes §4.G's eight-step per-node draw decision against the
// accumulated damage for this frame, recording GPU commands into pl. It
// returns false (with no error) when the node contributes nothing this
// frame, per step 1/2's skip conditions.
func DrawNode(pl *gpu.Pipeline, cache *shadercache.Cache, node *PaintNode, damage []clip.Rect, now time.Time) (bool, error) {
	// Step 1.
	if node.SurfaceTransform == nil && !node.DirectDisplay {
		return false, nil
	}

	// Step 2.
	repaint := intersectRegion(damage, node.BoundingBox)
	repaint = subtractRegion(repaint, node.Clip)
	if len(repaint) == 0 {
		return false, nil
	}

	// Step 3.
	if node.AcquireFence != nil {
		if err := node.AcquireFence.Wait(pl.Device, ^uint64(0)); err != nil {
			return false, err
		}
	}

	// Step 4.
	filter := chooseFilter(node)
	_ = filter // not passed on: DrawNode binds no sampler state and does not return the choice

	// Step 5.
	blendWhole := node.ViewAlpha < 1

	// Step 6.
	key := node.BaseKey
	if node.DirectDisplay {
		key = censorKey
	} else if node.ProtectionSensitive && (node.OutputProtectionBelow || node.RecordingPlaneDisabled) {
		key = censorKey
	}

	prog, err := cache.Get(key, now)
	if err != nil {
		// Fallback shader already substituted by cache.Get; the caller
		// is responsible for surfacing err as a protocol error to the
		// surface's client.
		prog = cache.Fallback()
	}

	// Step 7/8: draw each repaint rect against the surface's buffer
	// sub-rect, clipping and uploading a vertex fan per pair.
	var inv linear.M3
	inv.Invert(&node.View)

	for _, rect := range repaint {
		quad := viewQuad(node)
		poly := clip.Clip(quad, rect)
		if len(poly) < 3 {
			continue
		}
		verts := buildFan(poly, &inv, node)
		if err := uploadAndDraw(pl, prog, verts, blendWhole); err != nil {
			return false, err
		}
	}
	return true, nil
}

// chooseFilter implements step 4: linear if the view isn't the identity
// transform, output and buffer scale differ, or zoom is active; nearest
// otherwise.
func chooseFilter(node *PaintNode) Filter {
	var id linear.M3
	id.I()
	if node.View != id {
		return FilterLinear
	}
	if node.OutputScale != node.BufferScale {
		return FilterLinear
	}
	if node.ZoomActive {
		return FilterLinear
	}
	return FilterNearest
}

// viewQuad transforms the surface's BufferRect through its view transform
// into output space, as the clip.Quad DrawNode clips against the repaint
// rect.
func viewQuad(node *PaintNode) clip.Quad {
	corners := [4]linear.V2{
		{node.BufferRect.X0, node.BufferRect.Y0},
		{node.BufferRect.X1, node.BufferRect.Y0},
		{node.BufferRect.X1, node.BufferRect.Y1},
		{node.BufferRect.X0, node.BufferRect.Y1},
	}
	var id linear.M3
	id.I()
	identity := node.View == id
	var out [4]linear.V2
	for i, c := range corners {
		out[i] = applyAffine(&node.View, c)
	}
	return clip.NewQuad(out, identity)
}

// buildFan converts a clipped polygon (output space) into upload-ready
// (position, texcoord) vertices, mapping each vertex back to buffer space
// through the view's inverse transform and normalizing by the surface's
// buffer rect.
func buildFan(poly []linear.V2, inv *linear.M3, node *PaintNode) []float32 {
	verts := make([]float32, 0, len(poly)*4)
	bw := node.BufferRect.X1 - node.BufferRect.X0
	bh := node.BufferRect.Y1 - node.BufferRect.Y0
	for _, p := range poly {
		buf := applyAffine(inv, p)
		u := (buf[0] - node.BufferRect.X0) / bw
		v := (buf[1] - node.BufferRect.Y0) / bh
		verts = append(verts, p[0], p[1], u, v)
	}
	return verts
}

// applyAffine treats m as a 2D affine transform packed into a 3x3
// column-major matrix (the upper-left 2x2 plus a translation column) and
// applies it to p.
func applyAffine(m *linear.M3, p linear.V2) linear.V2 {
	return linear.V2{
		m[0][0]*p[0] + m[1][0]*p[1] + m[2][0],
		m[0][1]*p[0] + m[1][1]*p[1] + m[2][1],
	}
}

// uploadAndDraw writes verts to a host-visible vertex buffer and issues a
// TRIANGLE_FAN draw of them with prog bound. blendWhole is not consulted:
// the draw uses whatever blend state prog carries, and gpu.Program.Compile
// always enables premultiplied ONE/ONE_MINUS_SRC_ALPHA blending, so there
// is no opaque non-blended path here.
func uploadAndDraw(pl *gpu.Pipeline, prog *gpu.Program, verts []float32, blendWhole bool) error {
	_ = blendWhole // not consulted; see above
	vb := gpu.CreateBuffer(pl.Device, pl.GPU.MemoryProps,
		floatsToBytes(verts), vk.BufferUsageFlagBits(vk.BufferUsageVertexBufferBit))
	vk.CmdBindVertexBuffers(pl.CmdBuff, 0, 1, []vk.Buffer{vb.Buffer}, []vk.DeviceSize{0})
	pl.DrawQuad(prog, uint32(len(verts)/4))
	return nil
}

// floatsToBytes packs a []float32 vertex buffer into little-endian raw
// bytes for gpu.CreateBuffer, copying each value's bits via
// math.Float32bits (gpu.SliceUint32, by contrast, reinterprets its bytes
// through an unsafe pointer cast).
func floatsToBytes(f []float32) []byte {
	const sz = 4
	b := make([]byte, len(f)*sz)
	for i, v := range f {
		bits := math.Float32bits(v)
		b[i*sz+0] = byte(bits)
		b[i*sz+1] = byte(bits >> 8)
		b[i*sz+2] = byte(bits >> 16)
		b[i*sz+3] = byte(bits >> 24)
	}
	return b
}
