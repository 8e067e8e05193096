// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compose

import (
	"time"

	vk "github.com/vulkan-go/vulkan"

	"github.com/corewm/compose/clip"
	"github.com/corewm/compose/colortransform"
	"github.com/corewm/compose/internal/gpu"
)

// damageHistoryDepth is how many prior frames' damage Output retains for
// buffer-age lookback; ages beyond this are treated as "whole output
// damaged" the same as an unknown age.
const damageHistoryDepth = 8

// Output is one display's repaint state: damage history, the optional
// shadow FBO for non-identity blend-to-output transforms, border
// textures, and the release-fence bookkeeping for surfaces drawn this
// frame.
type Output struct {
	Width, Height uint32

	history     [damageHistoryDepth][]clip.Rect // history[0] is most recent
	borderRect  [4]clip.Rect                    // top, bottom, left, right
	borderTex   [4]*gpu.Texture
	lastBorders [4]clip.Rect

	Shadow        *gpu.Framebuffer
	BlendToOutput *colortransform.Transform

	FanDebug bool

	PartialUpdateSupported bool
}

// BufferAge reports which of the last N rotated target buffers age
// refers to: 1 is the caller's last-submitted buffer, 2 the one before,
// and so on. 0 means unknown.
type BufferAge uint32

// damageFor computes the union of recorded damage needed to repaint a
// target buffer of the given age: the union of the last (age-1) frames'
// damage, or "whole output" if age is unknown or older than the retained
// history.
func (o *Output) damageFor(age BufferAge) ([]clip.Rect, bool) {
	if age == 0 || int(age)-1 > damageHistoryDepth {
		return nil, true // whole-output damage
	}
	var out []clip.Rect
	for i := 0; i < int(age)-1; i++ {
		out = append(out, o.history[i]...)
	}
	return out, false
}

// wholeOutput returns the single rect covering the entire output.
func (o *Output) wholeOutput() clip.Rect {
	return clip.Rect{X0: 0, Y0: 0, X1: float32(o.Width), Y1: float32(o.Height)}
}

// BeginFrame computes this frame's damage-to-repaint set for a target
// buffer of the given age, given the frame's freshly accumulated damage
// and whether the border layout changed since that buffer was last drawn
// (which forces full damage regardless of age).
func (o *Output) BeginFrame(age BufferAge, frameDamage []clip.Rect, borderLayoutChanged bool) []clip.Rect {
	if o.FanDebug {
		return []clip.Rect{o.wholeOutput()}
	}
	if borderLayoutChanged {
		return []clip.Rect{o.wholeOutput()}
	}
	prior, whole := o.damageFor(age)
	if whole {
		return []clip.Rect{o.wholeOutput()}
	}
	repaint := append(append([]clip.Rect{}, frameDamage...), prior...)
	return repaint
}

// EndFrame pushes this frame's damage into the history ring, evicting the
// oldest retained frame.
func (o *Output) EndFrame(frameDamage []clip.Rect) {
	copy(o.history[1:], o.history[:damageHistoryDepth-1])
	o.history[0] = frameDamage
}

// NeedsShadowPass reports whether the composer must render into the
// shadow FBO and blit through BlendToOutput, versus drawing straight to
// the real target: true whenever a Shadow target and a BlendToOutput
// program are both set and no backend has claimed the transform itself
// (e.g. via a color-management-capable scanout path). It does not check
// whether the blend-to-output transform is the identity.
func (o *Output) NeedsShadowPass(backendClaimed bool) bool {
	return o.Shadow != nil && o.BlendToOutput != nil && !backendClaimed
}

// BlitShadow records the full-screen pass that applies BlendToOutput and
// copies damaged rectangles from the shadow texture to the real target.
func (o *Output) BlitShadow(pl *gpu.Pipeline, prog *gpu.Program, damage []clip.Rect) error {
	for range damage {
		pl.DrawQuad(prog, 4)
	}
	return nil
}

// BorderRegions returns the up to 4 border rects whose textures backends
// render decoration into; damage around them is unioned into the
// caller's output damage by DrawBorders.
func (o *Output) BorderRegions() [4]clip.Rect {
	return o.borderRect
}

// DrawBorders draws the 4 border textures with prog (sRGB→output applied)
// and reports whether the border layout changed since the textures were
// last drawn, unioning any changed border's rect into damage.
func (o *Output) DrawBorders(pl *gpu.Pipeline, prog *gpu.Program) (damage []clip.Rect, layoutChanged bool) {
	for i, r := range o.borderRect {
		if r != o.lastBorders[i] {
			layoutChanged = true
			damage = append(damage, r)
		}
		if o.borderTex[i] != nil {
			pl.DrawQuad(prog, 4)
		}
	}
	o.lastBorders = o.borderRect
	return damage, layoutChanged
}

// PartialUpdateRects translates damage into target-buffer coordinates
// (flipping Y and offsetting by the border) for an EGL-style swap-with-
// damage call, or nil if either the GPU doesn't support it or fan-debug
// is active (which always repaints the whole output, precluding partial
// updates for the frame).
func (o *Output) PartialUpdateRects(damage []clip.Rect, borderOffsetX, borderOffsetY float32) []clip.Rect {
	if !o.PartialUpdateSupported || o.FanDebug {
		return nil
	}
	out := make([]clip.Rect, len(damage))
	h := float32(o.Height)
	for i, r := range damage {
		out[i] = clip.Rect{
			X0: r.X0 + borderOffsetX,
			Y0: h - r.Y1 + borderOffsetY,
			X1: r.X1 + borderOffsetX,
			Y1: h - r.Y0 + borderOffsetY,
		}
	}
	return out
}

// ReleaseFence duplicates the native fd that fenceNativeFD reports for a
// render-completion fence, for a surface that requested explicit sync.
// fenceNativeFD always reports -1, so the duplication fails and
// ReleaseFence returns -1 with the DupFD error; priorFD is not used. Ordering
// across surfaces drawn in the same frame is guaranteed by construction:
// every render shares one GPU context, so a fence signalling later in
// submission order always signals after earlier ones.
func ReleaseFence(renderDone *gpu.Fence, priorFD int) (int, error) {
	if priorFD >= 0 {
		_ = priorFD // caller closes its own retained copy; nothing to release here
	}
	fd, err := fenceNativeFD(renderDone)
	if err != nil {
		return -1, err
	}
	return gpu.DupFD(fd)
}

// fenceNativeFD returns -1 and a nil error for every fence: it does not
// extract the native (sync_file/drm_syncobj) fd backing a vk.Fence, since
// the vulkan-go binding available to this module doesn't expose the
// VK_KHR_external_fence_fd entry point.
func fenceNativeFD(f *gpu.Fence) (int, error) {
	_ = f
	return -1, nil
}

// TimelinePoint is a begin-frame or end-frame sync fence tagged for the
// timeline log. No GPU timestamp is read back; TimelineLog.Poll reports
// the CPU wall-clock time at which it finds the fence signalled.
type TimelinePoint struct {
	Fence   *gpu.Fence
	Tag     string
	Queued  time.Time
	Reading bool
}

// TimelineLog accumulates TimelinePoints until their fences signal, then
// emits a timestamp for external consumption (e.g. a presentation-
// timing protocol).
type TimelineLog struct {
	pending []TimelinePoint
	Emit    func(tag string, t time.Time)
}

// Queue adds a tagged fence to the timeline log for later readback.
func (tl *TimelineLog) Queue(f *gpu.Fence, tag string) {
	tl.pending = append(tl.pending, TimelinePoint{Fence: f, Tag: tag, Queued: time.Now()})
}

// Poll checks every pending point against dev and emits a timestamp for
// any that have signalled, removing them from the pending set.
func (tl *TimelineLog) Poll(dev vk.Device) {
	live := tl.pending[:0]
	for _, p := range tl.pending {
		if p.Fence.Signaled(dev) {
			if tl.Emit != nil {
				tl.Emit(p.Tag, time.Now())
			}
			continue
		}
		live = append(live, p)
	}
	tl.pending = live
}
