// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clip

import (
	"math"
	"testing"

	"github.com/corewm/compose/internal/linear"
	"github.com/stretchr/testify/assert"
)

func rotated(cx, cy, halfSide, degrees float32) [4]linear.V2 {
	rad := float64(degrees) * math.Pi / 180
	cos, sin := float32(math.Cos(rad)), float32(math.Sin(rad))
	corners := [4][2]float32{{-halfSide, -halfSide}, {halfSide, -halfSide}, {halfSide, halfSide}, {-halfSide, halfSide}}
	var v [4]linear.V2
	for i, c := range corners {
		v[i] = linear.V2{cx + c[0]*cos - c[1]*sin, cy + c[0]*sin + c[1]*cos}
	}
	return v
}

func inHull(p linear.V2, hull [4]linear.V2, tol float32) bool {
	// Convex polygon point containment via the sign of the cross product
	// along each edge; hull need not be CW here, so accept either
	// consistent sign.
	n := len(hull)
	pos, neg := false, false
	for i := 0; i < n; i++ {
		a := hull[i]
		b := hull[(i+1)%n]
		cross := (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
		if cross > tol {
			pos = true
		}
		if cross < -tol {
			neg = true
		}
	}
	return !(pos && neg)
}

func TestClipIdentity(t *testing.T) {
	v := [4]linear.V2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	q := NewQuad(v, true)
	rect := Rect{0, 0, 10, 10}
	out := Clip(q, rect)
	assert.Len(t, out, 4)
}

func TestClipTotality(t *testing.T) {
	v := rotated(0, 0, 20, 30)
	q := NewQuad(v, false)
	rect := Rect{-15, -15, 15, 15}
	out := Clip(q, rect)
	if len(out) == 0 {
		return
	}
	assert.GreaterOrEqual(t, len(out), 3)
	assert.LessOrEqual(t, len(out), MaxVertices)
	assert.Greater(t, signedArea(out), float32(0))
}

func TestClipContainment(t *testing.T) {
	v := rotated(0, 0, 20, 30)
	q := NewQuad(v, false)
	rect := Rect{-15, -15, 15, 15}
	out := Clip(q, rect)
	for _, p := range out {
		assert.True(t, p[0] >= rect.X0-1e-3 && p[0] <= rect.X1+1e-3)
		assert.True(t, p[1] >= rect.Y0-1e-3 && p[1] <= rect.Y1+1e-3)
		assert.True(t, inHull(p, v, 1e-2))
	}
}

func TestClipNonTrivialPartialOverlap(t *testing.T) {
	v := rotated(0, 0, 20, 30)
	q := NewQuad(v, false)
	rect := Rect{-50, -50, -10, -10}
	out := Clip(q, rect)
	assert.GreaterOrEqual(t, len(out), 3)
	assert.LessOrEqual(t, len(out), MaxVertices)
}

func TestClipFullyOutside(t *testing.T) {
	v := [4]linear.V2{{100, 100}, {110, 100}, {110, 110}, {100, 110}}
	q := NewQuad(v, true)
	rect := Rect{0, 0, 10, 10}
	out := Clip(q, rect)
	assert.Nil(t, out)
}

func TestFloatDifference(t *testing.T) {
	assert.Equal(t, float32(0), FloatDifference(1.0000001, 1.0))
	assert.NotEqual(t, float32(0), FloatDifference(1.1, 1.0))
}
