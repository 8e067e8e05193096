// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corewm/compose/clip"
)

func TestDamageForUnknownAgeIsWholeOutput(t *testing.T) {
	o := &Output{Width: 1920, Height: 1080}
	_, whole := o.damageFor(0)
	assert.True(t, whole)
}

func TestDamageForAccumulatesHistory(t *testing.T) {
	o := &Output{Width: 100, Height: 100}
	o.EndFrame([]clip.Rect{{X0: 0, Y0: 0, X1: 10, Y1: 10}})
	o.EndFrame([]clip.Rect{{X0: 20, Y0: 20, X1: 30, Y1: 30}})
	region, whole := o.damageFor(2)
	assert.False(t, whole)
	assert.Len(t, region, 1)
	assert.Equal(t, clip.Rect{X0: 20, Y0: 20, X1: 30, Y1: 30}, region[0])
}

func TestBeginFrameFanDebugForcesWholeOutput(t *testing.T) {
	o := &Output{Width: 640, Height: 480, FanDebug: true}
	repaint := o.BeginFrame(1, nil, false)
	assert.Equal(t, []clip.Rect{o.wholeOutput()}, repaint)
}

func TestBeginFrameBorderLayoutChangeForcesWholeOutput(t *testing.T) {
	o := &Output{Width: 640, Height: 480}
	repaint := o.BeginFrame(1, nil, true)
	assert.Equal(t, []clip.Rect{o.wholeOutput()}, repaint)
}

func TestBeginFrameUnknownAgeForcesWholeOutput(t *testing.T) {
	o := &Output{Width: 640, Height: 480}
	repaint := o.BeginFrame(0, []clip.Rect{{X0: 0, Y0: 0, X1: 10, Y1: 10}}, false)
	assert.Equal(t, []clip.Rect{o.wholeOutput()}, repaint)
}

func TestBeginFrameUnionsFrameAndHistoryDamage(t *testing.T) {
	o := &Output{Width: 640, Height: 480}
	o.EndFrame([]clip.Rect{{X0: 0, Y0: 0, X1: 5, Y1: 5}})
	repaint := o.BeginFrame(2, []clip.Rect{{X0: 10, Y0: 10, X1: 15, Y1: 15}}, false)
	assert.Len(t, repaint, 2)
}

func TestNeedsShadowPassRequiresTransformAndFBO(t *testing.T) {
	o := &Output{}
	assert.False(t, o.NeedsShadowPass(false))
}

func TestPartialUpdateRectsFlipsYAndOffsets(t *testing.T) {
	o := &Output{Width: 100, Height: 200, PartialUpdateSupported: true}
	damage := []clip.Rect{{X0: 0, Y0: 0, X1: 10, Y1: 20}}
	out := o.PartialUpdateRects(damage, 2, 3)
	assert.Equal(t, clip.Rect{X0: 2, Y0: 183, X1: 12, Y1: 203}, out[0])
}

func TestPartialUpdateRectsNilWhenUnsupported(t *testing.T) {
	o := &Output{Width: 100, Height: 200}
	out := o.PartialUpdateRects([]clip.Rect{{X0: 0, Y0: 0, X1: 1, Y1: 1}}, 0, 0)
	assert.Nil(t, out)
}

func TestPartialUpdateRectsNilWhenFanDebug(t *testing.T) {
	o := &Output{Width: 100, Height: 200, PartialUpdateSupported: true, FanDebug: true}
	out := o.PartialUpdateRects([]clip.Rect{{X0: 0, Y0: 0, X1: 1, Y1: 1}}, 0, 0)
	assert.Nil(t, out)
}

func TestDrawBordersReportsLayoutChangeOnFirstDraw(t *testing.T) {
	o := &Output{}
	o.borderRect[0] = clip.Rect{X0: 0, Y0: 0, X1: 100, Y1: 10}
	damage, changed := o.DrawBorders(nil, nil)
	assert.True(t, changed)
	assert.Len(t, damage, 1)

	damage, changed = o.DrawBorders(nil, nil)
	assert.False(t, changed)
	assert.Empty(t, damage)
}

func TestTimelineLogQueueAddsPending(t *testing.T) {
	tl := &TimelineLog{}
	tl.Queue(nil, "present")
	assert.Len(t, tl.pending, 1)
	assert.Equal(t, "present", tl.pending[0].Tag)
}
