// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package clip clips quadrilaterals against axis-aligned rectangles using
// Sutherland-Hodgman, with a fast path for already axis-aligned input.
package clip

import "github.com/corewm/compose/internal/linear"

// MaxVertices bounds the polygon clipping a quad against a rectangle can
// produce: each of the 4 clip edges can add at most one vertex to a
// quadrilateral, so a quad (4 vertices) clips to at most 8.
const MaxVertices = 8

// Rect is an axis-aligned rectangle in the same space as a Quad's vertices.
type Rect struct {
	X0, Y0, X1, Y1 float32
}

// Quad is a clipper input: four vertices in surface space, in no
// particular winding order, plus a hint that the quad is already
// axis-aligned (the view transform applied to it is the identity), which
// enables a cheaper clipping path.
type Quad struct {
	V        [4]linear.V2
	AABB     Rect
	Identity bool
}

// AABB computes the axis-aligned bounding box of four vertices.
func AABB(v [4]linear.V2) Rect {
	r := Rect{X0: v[0][0], Y0: v[0][1], X1: v[0][0], Y1: v[0][1]}
	for _, p := range v[1:] {
		if p[0] < r.X0 {
			r.X0 = p[0]
		}
		if p[0] > r.X1 {
			r.X1 = p[0]
		}
		if p[1] < r.Y0 {
			r.Y0 = p[1]
		}
		if p[1] > r.Y1 {
			r.Y1 = p[1]
		}
	}
	return r
}

// NewQuad builds a Quad from four vertices, computing its AABB.
func NewQuad(v [4]linear.V2, identity bool) Quad {
	return Quad{V: v, AABB: AABB(v), Identity: identity}
}

func intersects(a, b Rect) bool {
	return a.X0 <= b.X1 && a.X1 >= b.X0 && a.Y0 <= b.Y1 && a.Y1 >= b.Y0
}

// FloatDifference is the tie-break subtraction used throughout the
// clipper's edge-intersection math: when a and b are close enough to be
// the same point up to float32 rounding, it returns exactly 0 rather than
// a near-zero residual, which is what keeps edge-tangent vertices from
// producing spurious near-duplicate points.
func FloatDifference(a, b float32) float32 {
	d := a - b
	if d == 0 {
		return 0
	}
	// Values closer than an absolute 1e-5 are treated as equal; this
	// matches how the reference tie-break avoids emitting
	// an intersection point a few bits off the rectangle edge.
	const eps = 1e-5
	if d > -eps && d < eps {
		return 0
	}
	return d
}

// Clip clips q against rect and returns the intersection polygon, clockwise
// wound, as 0 or 3-8 vertices. The returned slice is freshly allocated
// (not shared with q), safe to keep past the call.
func Clip(q Quad, rect Rect) []linear.V2 {
	if !intersects(q.AABB, rect) {
		return nil
	}
	if q.Identity {
		return clipAxisAligned(q, rect)
	}
	return clipGeneral(q, rect)
}

// clipAxisAligned handles the case where q is already axis-aligned: the
// result is simply the intersection of the two rectangles, as 4 CW
// vertices, or none if the quad degenerates to zero area.
func clipAxisAligned(q Quad, rect Rect) []linear.V2 {
	x0, y0, x1, y1 := q.AABB.X0, q.AABB.Y0, q.AABB.X1, q.AABB.Y1
	if rect.X0 > x0 {
		x0 = rect.X0
	}
	if rect.Y0 > y0 {
		y0 = rect.Y0
	}
	if rect.X1 < x1 {
		x1 = rect.X1
	}
	if rect.Y1 < y1 {
		y1 = rect.Y1
	}
	if x1 <= x0 || y1 <= y0 {
		return nil
	}
	return []linear.V2{
		{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1},
	}
}

// edge is one of the four clip half-planes, in the order the
// Sutherland-Hodgman pass applies them: x>=x0, x<=x1, y>=y0, y<=y1.
type edge int

const (
	edgeLeft edge = iota
	edgeRight
	edgeTop
	edgeBottom
)

func inside(e edge, p linear.V2, rect Rect) bool {
	switch e {
	case edgeLeft:
		return FloatDifference(p[0], rect.X0) >= 0
	case edgeRight:
		return FloatDifference(rect.X1, p[0]) >= 0
	case edgeTop:
		return FloatDifference(p[1], rect.Y0) >= 0
	default:
		return FloatDifference(rect.Y1, p[1]) >= 0
	}
}

// intersect returns the point where segment p->q crosses the half-plane
// boundary for e.
func intersect(e edge, p, q linear.V2, rect Rect) linear.V2 {
	switch e {
	case edgeLeft:
		t := FloatDifference(rect.X0, p[0]) / FloatDifference(q[0], p[0])
		return linear.V2{rect.X0, p[1] + t*(q[1]-p[1])}
	case edgeRight:
		t := FloatDifference(rect.X1, p[0]) / FloatDifference(q[0], p[0])
		return linear.V2{rect.X1, p[1] + t*(q[1]-p[1])}
	case edgeTop:
		t := FloatDifference(rect.Y0, p[1]) / FloatDifference(q[1], p[1])
		return linear.V2{p[0] + t*(q[0]-p[0]), rect.Y0}
	default:
		t := FloatDifference(rect.Y1, p[1]) / FloatDifference(q[1], p[1])
		return linear.V2{p[0] + t*(q[0]-p[0]), rect.Y1}
	}
}

// clipGeneral runs Sutherland-Hodgman against the four clip half-planes in
// turn, then drops the result if it degenerates below a triangle or has
// non-positive area.
func clipGeneral(q Quad, rect Rect) []linear.V2 {
	poly := make([]linear.V2, 4)
	copy(poly, q.V[:])

	for _, e := range [4]edge{edgeLeft, edgeRight, edgeTop, edgeBottom} {
		if len(poly) == 0 {
			return nil
		}
		poly = clipEdge(e, poly, rect)
	}

	if len(poly) < 3 {
		return nil
	}
	poly = dedupe(poly)
	if len(poly) < 3 || signedArea(poly) == 0 {
		return nil
	}
	if signedArea(poly) < 0 {
		reverse(poly)
	}
	return poly
}

func clipEdge(e edge, in []linear.V2, rect Rect) []linear.V2 {
	out := make([]linear.V2, 0, len(in)+1)
	n := len(in)
	for i := 0; i < n; i++ {
		p := in[i]
		q := in[(i+1)%n]
		pIn := inside(e, p, rect)
		qIn := inside(e, q, rect)
		switch {
		case pIn && qIn:
			out = append(out, q)
		case pIn && !qIn:
			out = append(out, intersect(e, p, q, rect))
		case !pIn && qIn:
			out = append(out, intersect(e, p, q, rect), q)
		}
	}
	return out
}

func dedupe(poly []linear.V2) []linear.V2 {
	out := poly[:0:0]
	for i, p := range poly {
		prev := poly[(i-1+len(poly))%len(poly)]
		if FloatDifference(p[0], prev[0]) == 0 && FloatDifference(p[1], prev[1]) == 0 {
			continue
		}
		out = append(out, p)
	}
	if len(out) > MaxVertices {
		out = out[:MaxVertices]
	}
	return out
}

func signedArea(poly []linear.V2) float32 {
	var a float32
	n := len(poly)
	for i := 0; i < n; i++ {
		p := poly[i]
		q := poly[(i+1)%n]
		a += p[0]*q[1] - q[0]*p[1]
	}
	return a / 2
}

func reverse(poly []linear.V2) {
	for i, j := 0, len(poly)-1; i < j; i, j = i+1, j-1 {
		poly[i], poly[j] = poly[j], poly[i]
	}
}
