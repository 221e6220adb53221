// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import "math"

// Verb is a path construction command.
type Verb uint8

const (
	VerbMoveTo Verb = iota
	VerbLineTo
	VerbQuadTo
	VerbCubicTo
	VerbClose
)

// pointsPer is the number of points each verb consumes.
var pointsPer = [...]int{VerbMoveTo: 1, VerbLineTo: 1, VerbQuadTo: 2, VerbCubicTo: 3, VerbClose: 0}

// Path is a vector path in surface pixels, built with canvas path semantics:
// drawing commands on an empty path start a subpath implicitly, and a
// command after Close starts a new subpath at the closed subpath's start.
//
//	p := surface.NewPath()
//	p.MoveTo(100, 100)
//	p.LineTo(200, 100)
//	p.LineTo(150, 200)
//	p.Close()
type Path struct {
	verbs  []Verb
	points []Point
	start  Point
	cur    Point
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{
		verbs:  make([]Verb, 0, 16),
		points: make([]Point, 0, 32),
	}
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.verbs = append(p.verbs, VerbMoveTo)
	p.points = append(p.points, pt)
	p.start, p.cur = pt, pt
}

// ensureSubpath starts a subpath at (x, y) on an empty path, or at the
// start point after a Close. It reports whether the path was empty.
func (p *Path) ensureSubpath(x, y float64) bool {
	if len(p.verbs) == 0 {
		p.MoveTo(x, y)
		return true
	}
	if p.verbs[len(p.verbs)-1] == VerbClose {
		p.MoveTo(p.start.X, p.start.Y)
	}
	return false
}

// LineTo adds a line from the current point to (x, y).
func (p *Path) LineTo(x, y float64) {
	if p.ensureSubpath(x, y) {
		return
	}
	p.verbs = append(p.verbs, VerbLineTo)
	p.points = append(p.points, Pt(x, y))
	p.cur = Pt(x, y)
}

// QuadTo adds a quadratic Bezier curve with control point (cx, cy).
func (p *Path) QuadTo(cx, cy, x, y float64) {
	p.ensureSubpath(cx, cy)
	p.verbs = append(p.verbs, VerbQuadTo)
	p.points = append(p.points, Pt(cx, cy), Pt(x, y))
	p.cur = Pt(x, y)
}

// CubicTo adds a cubic Bezier curve with control points (c1x, c1y) and
// (c2x, c2y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.ensureSubpath(c1x, c1y)
	p.verbs = append(p.verbs, VerbCubicTo)
	p.points = append(p.points, Pt(c1x, c1y), Pt(c2x, c2y), Pt(x, y))
	p.cur = Pt(x, y)
}

// Close closes the current subpath.
func (p *Path) Close() {
	if len(p.verbs) == 0 || p.verbs[len(p.verbs)-1] == VerbClose {
		return
	}
	p.verbs = append(p.verbs, VerbClose)
	p.cur = p.start
}

// Rectangle adds a closed rectangle subpath and leaves the pen at (x, y).
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
	p.MoveTo(x, y)
}

// Arc adds a circular arc around (cx, cy) from angle a0 to a1 (radians),
// clockwise in screen space unless ccw is set. The arc is joined to the
// current point by a straight line. Sweeps of a full turn or more draw a
// full circle.
func (p *Path) Arc(cx, cy, r, a0, a1 float64, ccw bool) {
	if r < 0 || math.IsNaN(r) {
		return
	}
	const twoPi = 2 * math.Pi
	sweep := a1 - a0
	switch {
	case !ccw && sweep >= twoPi:
		sweep = twoPi
	case ccw && sweep <= -twoPi:
		sweep = -twoPi
	case !ccw:
		if sweep = math.Mod(sweep, twoPi); sweep < 0 {
			sweep += twoPi
		}
	default:
		if sweep = math.Mod(sweep, twoPi); sweep > 0 {
			sweep -= twoPi
		}
	}

	x0, y0 := cx+r*math.Cos(a0), cy+r*math.Sin(a0)
	if len(p.verbs) == 0 || p.verbs[len(p.verbs)-1] == VerbClose {
		p.MoveTo(x0, y0)
	} else {
		p.LineTo(x0, y0)
	}
	if sweep == 0 || r == 0 {
		return
	}

	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	step := sweep / float64(n)
	for i := range n {
		a := a0 + float64(i)*step
		p.arcSegment(cx, cy, r, a, a+step)
	}
}

// arcSegment appends a cubic approximating an arc of at most 90 degrees.
func (p *Path) arcSegment(cx, cy, r, a1, a2 float64) {
	d := a2 - a1
	k := 4.0 / 3.0 * math.Tan(d/4)

	cos1, sin1 := math.Cos(a1), math.Sin(a1)
	cos2, sin2 := math.Cos(a2), math.Sin(a2)

	p.CubicTo(
		cx+r*(cos1-k*sin1), cy+r*(sin1+k*cos1),
		cx+r*(cos2+k*sin2), cy+r*(sin2-k*cos2),
		cx+r*cos2, cy+r*sin2,
	)
}

// Clear removes all elements from the path.
func (p *Path) Clear() {
	p.verbs = p.verbs[:0]
	p.points = p.points[:0]
	p.start, p.cur = Point{}, Point{}
}

// IsEmpty reports whether the path has no elements.
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.verbs) == 0
}

// CurrentPoint returns the pen position.
func (p *Path) CurrentPoint() Point {
	return p.cur
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	return &Path{
		verbs:  append([]Verb(nil), p.verbs...),
		points: append([]Point(nil), p.points...),
		start:  p.start,
		cur:    p.cur,
	}
}

// Walk calls fn for each verb with the points it consumes.
func (p *Path) Walk(fn func(v Verb, pts []Point)) {
	i := 0
	for _, v := range p.verbs {
		n := pointsPer[v]
		fn(v, p.points[i:i+n])
		i += n
	}
}

// Bounds returns the bounding box of all path points, control points
// included. An empty path returns zeros.
func (p *Path) Bounds() (minX, minY, maxX, maxY float64) {
	if len(p.points) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = p.points[0].X, p.points[0].Y
	maxX, maxY = minX, minY
	for _, pt := range p.points[1:] {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return minX, minY, maxX, maxY
}

// polyline is a flattened subpath.
type polyline struct {
	pts    []Point
	closed bool
}

// flatten converts the path into polylines, subdividing curves until they
// deviate from their chords by less than tolerance pixels.
func (p *Path) flatten(tolerance float64) []polyline {
	var out []polyline
	var cur *polyline
	last := Point{}
	p.Walk(func(v Verb, pts []Point) {
		switch v {
		case VerbMoveTo:
			out = append(out, polyline{pts: []Point{pts[0]}})
			cur = &out[len(out)-1]
			last = pts[0]
		case VerbLineTo:
			cur.pts = append(cur.pts, pts[0])
			last = pts[0]
		case VerbQuadTo:
			n := segments(last, pts[0], pts[0], pts[1], tolerance)
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				mt := 1 - t
				cur.pts = append(cur.pts, Pt(
					mt*mt*last.X+2*mt*t*pts[0].X+t*t*pts[1].X,
					mt*mt*last.Y+2*mt*t*pts[0].Y+t*t*pts[1].Y,
				))
			}
			last = pts[1]
		case VerbCubicTo:
			n := segments(last, pts[0], pts[1], pts[2], tolerance)
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				mt := 1 - t
				a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
				cur.pts = append(cur.pts, Pt(
					a*last.X+b*pts[0].X+c*pts[1].X+d*pts[2].X,
					a*last.Y+b*pts[0].Y+c*pts[1].Y+d*pts[2].Y,
				))
			}
			last = pts[2]
		case VerbClose:
			cur.closed = true
			last = cur.pts[0]
		}
	})
	return out
}

// segments estimates the subdivision count for a cubic from its control
// polygon.
func segments(p0, p1, p2, p3 Point, tolerance float64) int {
	dd := math.Max(
		math.Hypot(p0.X-2*p1.X+p2.X, p0.Y-2*p1.Y+p2.Y),
		math.Hypot(p1.X-2*p2.X+p3.X, p1.Y-2*p2.Y+p3.Y),
	)
	n := int(math.Ceil(math.Sqrt(0.75 * dd / tolerance)))
	return max(1, min(n, 256))
}
