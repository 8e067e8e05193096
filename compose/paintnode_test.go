// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compose

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/corewm/compose/clip"
	"github.com/corewm/compose/internal/linear"
)

func identityNode() *PaintNode {
	var id linear.M3
	id.I()
	return &PaintNode{
		View:        id,
		BufferScale: 1,
		OutputScale: 1,
		BufferRect:  clip.Rect{X0: 0, Y0: 0, X1: 100, Y1: 50},
	}
}

func TestChooseFilterNearestForIdentityUnscaled(t *testing.T) {
	node := identityNode()
	assert.Equal(t, FilterNearest, chooseFilter(node))
}

func TestChooseFilterLinearWhenScaleDiffers(t *testing.T) {
	node := identityNode()
	node.OutputScale = 2
	assert.Equal(t, FilterLinear, chooseFilter(node))
}

func TestChooseFilterLinearWhenZoomActive(t *testing.T) {
	node := identityNode()
	node.ZoomActive = true
	assert.Equal(t, FilterLinear, chooseFilter(node))
}

func TestChooseFilterLinearForNonIdentityView(t *testing.T) {
	node := identityNode()
	node.View[2][0] = 10 // translate x
	assert.Equal(t, FilterLinear, chooseFilter(node))
}

func TestViewQuadIdentityMatchesBufferRect(t *testing.T) {
	node := identityNode()
	q := viewQuad(node)
	assert.True(t, q.Identity)
	assert.Equal(t, linear.V2{0, 0}, q.V[0])
	assert.Equal(t, linear.V2{100, 50}, q.V[2])
}

func TestViewQuadTranslated(t *testing.T) {
	node := identityNode()
	node.View[2][0] = 10
	node.View[2][1] = 20
	q := viewQuad(node)
	assert.False(t, q.Identity)
	assert.Equal(t, linear.V2{10, 20}, q.V[0])
}

func TestApplyAffineIdentityIsNoop(t *testing.T) {
	var id linear.M3
	id.I()
	p := linear.V2{3, 4}
	out := applyAffine(&id, p)
	assert.Equal(t, p, out)
}

func TestApplyAffineTranslates(t *testing.T) {
	var m linear.M3
	m.I()
	m[2][0] = 5
	m[2][1] = -2
	out := applyAffine(&m, linear.V2{1, 1})
	assert.Equal(t, linear.V2{6, -1}, out)
}

func TestBuildFanMapsBackToUnitBufferSpace(t *testing.T) {
	node := identityNode()
	var inv linear.M3
	inv.Invert(&node.View)
	poly := []linear.V2{{0, 0}, {100, 0}, {100, 50}, {0, 50}}
	verts := buildFan(poly, &inv, node)
	assert.Len(t, verts, len(poly)*4)
	// First vertex: position (0,0), texcoord (0,0).
	assert.InDelta(t, float32(0), verts[2], 1e-6)
	assert.InDelta(t, float32(0), verts[3], 1e-6)
	// Third vertex: position (100,50), texcoord (1,1).
	assert.InDelta(t, float32(1), verts[2*4+2], 1e-6)
	assert.InDelta(t, float32(1), verts[2*4+3], 1e-6)
}

func TestFloatsToBytesRoundtrips(t *testing.T) {
	in := []float32{1.5, -2.25, 0, 3.0}
	b := floatsToBytes(in)
	assert.Len(t, b, len(in)*4)
	for i, want := range in {
		bits := uint32(b[i*4]) | uint32(b[i*4+1])<<8 | uint32(b[i*4+2])<<16 | uint32(b[i*4+3])<<24
		assert.Equal(t, want, math.Float32frombits(bits))
	}
}

func TestDrawNodeSkipsWithoutTransformOrDirectDisplay(t *testing.T) {
	node := identityNode()
	ok, err := DrawNode(nil, nil, node, []clip.Rect{{X0: 0, Y0: 0, X1: 100, Y1: 100}}, time.Now())
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestDrawNodeSkipsWhenDamageDoesNotIntersect(t *testing.T) {
	node := identityNode()
	node.DirectDisplay = true
	node.BoundingBox = clip.Rect{X0: 0, Y0: 0, X1: 100, Y1: 50}
	ok, err := DrawNode(nil, nil, node, []clip.Rect{{X0: 200, Y0: 200, X1: 300, Y1: 300}}, time.Now())
	assert.NoError(t, err)
	assert.False(t, ok)
}
