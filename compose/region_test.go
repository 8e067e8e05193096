// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corewm/compose/clip"
)

func TestIntersectRectOverlap(t *testing.T) {
	a := clip.Rect{X0: 0, Y0: 0, X1: 10, Y1: 10}
	b := clip.Rect{X0: 5, Y0: 5, X1: 15, Y1: 15}
	r, ok := intersectRect(a, b)
	assert.True(t, ok)
	assert.Equal(t, clip.Rect{X0: 5, Y0: 5, X1: 10, Y1: 10}, r)
}

func TestIntersectRectDisjoint(t *testing.T) {
	a := clip.Rect{X0: 0, Y0: 0, X1: 10, Y1: 10}
	b := clip.Rect{X0: 20, Y0: 20, X1: 30, Y1: 30}
	_, ok := intersectRect(a, b)
	assert.False(t, ok)
}

func TestSubtractRectNoOverlapReturnsWhole(t *testing.T) {
	a := clip.Rect{X0: 0, Y0: 0, X1: 10, Y1: 10}
	b := clip.Rect{X0: 20, Y0: 20, X1: 30, Y1: 30}
	out := subtractRect(a, b)
	assert.Equal(t, []clip.Rect{a}, out)
}

func TestSubtractRectCenterHoleProducesFourRects(t *testing.T) {
	a := clip.Rect{X0: 0, Y0: 0, X1: 10, Y1: 10}
	b := clip.Rect{X0: 3, Y0: 3, X1: 7, Y1: 7}
	out := subtractRect(a, b)
	assert.Len(t, out, 4)
	var area float32
	for _, r := range out {
		area += (r.X1 - r.X0) * (r.Y1 - r.Y0)
	}
	assert.InDelta(t, float32(100-16), area, 1e-4)
}

func TestSubtractRectFullyCoveredYieldsNothing(t *testing.T) {
	a := clip.Rect{X0: 0, Y0: 0, X1: 10, Y1: 10}
	out := subtractRect(a, a)
	assert.Empty(t, out)
}

func TestIntersectRegionDropsEmptyResults(t *testing.T) {
	region := []clip.Rect{
		{X0: 0, Y0: 0, X1: 10, Y1: 10},
		{X0: 100, Y0: 100, X1: 110, Y1: 110},
	}
	out := intersectRegion(region, clip.Rect{X0: 5, Y0: 5, X1: 20, Y1: 20})
	assert.Len(t, out, 1)
}

func TestSubtractRegionAppliesToEveryRect(t *testing.T) {
	region := []clip.Rect{{X0: 0, Y0: 0, X1: 10, Y1: 10}}
	out := subtractRegion(region, clip.Rect{X0: 0, Y0: 0, X1: 10, Y1: 5})
	assert.Equal(t, []clip.Rect{{X0: 0, Y0: 5, X1: 10, Y1: 10}}, out)
}

func TestUnionBoundsEmpty(t *testing.T) {
	_, ok := unionBounds(nil)
	assert.False(t, ok)
}

func TestUnionBoundsCoversAll(t *testing.T) {
	region := []clip.Rect{
		{X0: 0, Y0: 0, X1: 5, Y1: 5},
		{X0: 10, Y0: -2, X1: 12, Y1: 1},
	}
	out, ok := unionBounds(region)
	assert.True(t, ok)
	assert.Equal(t, clip.Rect{X0: 0, Y0: -2, X1: 12, Y1: 5}, out)
}
