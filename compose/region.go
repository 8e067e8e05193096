// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compose assembles a frame: per-paint-node clip/shader/draw
// decisions (paintnode.go), the output-level damage/shadow-FBO/border/
// release-fence repaint loop (repaint.go), and per-surface buffer
// classification and upload (surface.go).
package compose

import "github.com/corewm/compose/clip"

// intersectRect returns the intersection of a and b, and false if it's
// empty.
func intersectRect(a, b clip.Rect) (clip.Rect, bool) {
	r := clip.Rect{
		X0: maxF(a.X0, b.X0),
		Y0: maxF(a.Y0, b.Y0),
		X1: minF(a.X1, b.X1),
		Y1: minF(a.Y1, b.Y1),
	}
	if r.X1 <= r.X0 || r.Y1 <= r.Y0 {
		return clip.Rect{}, false
	}
	return r, true
}

// subtractRect returns a \ b as up to 4 non-overlapping rects covering
// whatever of a lies outside b.
func subtractRect(a, b clip.Rect) []clip.Rect {
	ib, ok := intersectRect(a, b)
	if !ok {
		return []clip.Rect{a}
	}
	var out []clip.Rect
	if ib.Y0 > a.Y0 {
		out = append(out, clip.Rect{X0: a.X0, Y0: a.Y0, X1: a.X1, Y1: ib.Y0})
	}
	if ib.Y1 < a.Y1 {
		out = append(out, clip.Rect{X0: a.X0, Y0: ib.Y1, X1: a.X1, Y1: a.Y1})
	}
	if ib.X0 > a.X0 {
		out = append(out, clip.Rect{X0: a.X0, Y0: ib.Y0, X1: ib.X0, Y1: ib.Y1})
	}
	if ib.X1 < a.X1 {
		out = append(out, clip.Rect{X0: ib.X1, Y0: ib.Y0, X1: a.X1, Y1: ib.Y1})
	}
	return out
}

// intersectRegion intersects every rect in region with r, dropping empty
// results.
func intersectRegion(region []clip.Rect, r clip.Rect) []clip.Rect {
	out := make([]clip.Rect, 0, len(region))
	for _, a := range region {
		if ir, ok := intersectRect(a, r); ok {
			out = append(out, ir)
		}
	}
	return out
}

// subtractRegion subtracts r from every rect in region.
func subtractRegion(region []clip.Rect, r clip.Rect) []clip.Rect {
	out := make([]clip.Rect, 0, len(region))
	for _, a := range region {
		out = append(out, subtractRect(a, r)...)
	}
	return out
}

// unionBounds returns the bounding rect of region, or false if empty.
func unionBounds(region []clip.Rect) (clip.Rect, bool) {
	if len(region) == 0 {
		return clip.Rect{}, false
	}
	out := region[0]
	for _, r := range region[1:] {
		out.X0 = minF(out.X0, r.X0)
		out.Y0 = minF(out.Y0, r.Y0)
		out.X1 = maxF(out.X1, r.X1)
		out.Y1 = maxF(out.Y1, r.Y1)
	}
	return out, true
}

func maxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minF(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
