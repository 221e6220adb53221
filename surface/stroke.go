// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import "math"

// flattenTolerance is the maximum distance in pixels between a curve and
// its flattened polyline.
const flattenTolerance = 0.1

// StrokeOutline converts path into a fillable outline using the line width,
// caps, joins, miter limit and dash pattern of paint. The outline consists
// of closed, positively oriented polygons meant to be filled with the
// non-zero winding rule.
func StrokeOutline(path *Path, paint *Paint) *Path {
	out := NewPath()
	if path.IsEmpty() || paint == nil || !(paint.LineWidth > 0) {
		return out
	}
	lines := path.flatten(flattenTolerance)
	if paint.IsDashed() {
		lines = dash(lines, paint.Dash, paint.DashOffset)
	}
	st := stroker{out: out, hw: paint.LineWidth / 2, cap: paint.Cap, join: paint.Join, limit: paint.MiterLimit}
	for _, pl := range lines {
		st.polyline(pl)
	}
	return out
}

type stroker struct {
	out   *Path
	hw    float64
	cap   LineCap
	join  LineJoin
	limit float64
}

func (s *stroker) polyline(pl polyline) {
	pts := prune(pl.pts)
	closed := pl.closed
	if closed && len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 2 {
		return
	}
	if len(pts) == 2 {
		closed = false
	}

	n := len(pts)
	segs := n - 1
	if closed {
		segs = n
	}
	for i := range segs {
		s.segment(pts[i], pts[(i+1)%n])
	}

	if closed {
		for i := range n {
			s.joinAt(pts[(i+n-1)%n], pts[i], pts[(i+1)%n])
		}
		return
	}
	for i := 1; i < n-1; i++ {
		s.joinAt(pts[i-1], pts[i], pts[i+1])
	}
	s.capAt(pts[0], pts[1])
	s.capAt(pts[n-1], pts[n-2])
}

// segment emits the rectangle covering the line from a to b.
func (s *stroker) segment(a, b Point) {
	n := s.normal(a, b)
	s.polygon(
		Pt(a.X+n.X, a.Y+n.Y),
		Pt(b.X+n.X, b.Y+n.Y),
		Pt(b.X-n.X, b.Y-n.Y),
		Pt(a.X-n.X, a.Y-n.Y),
	)
}

// joinAt fills the gap on the outer side of the turn at b.
func (s *stroker) joinAt(a, b, c Point) {
	d1 := unit(a, b)
	d2 := unit(b, c)
	cross := d1.X*d2.Y - d1.Y*d2.X
	dot := d1.X*d2.X + d1.Y*d2.Y
	if math.Abs(cross) < 1e-9 && dot > 0 {
		return
	}
	if s.join == LineJoinRound {
		s.circle(b)
		return
	}

	sign := 1.0
	if cross > 0 {
		sign = -1
	}
	n1 := s.normal(a, b)
	n2 := s.normal(b, c)
	o1 := Pt(b.X+sign*n1.X, b.Y+sign*n1.Y)
	o2 := Pt(b.X+sign*n2.X, b.Y+sign*n2.Y)

	if s.join == LineJoinMiter {
		bx, by := n1.X+n2.X, n1.Y+n2.Y
		if l := math.Hypot(bx, by); l > 1e-12 {
			bx, by = bx/l, by/l
			cosHalf := (bx*n1.X + by*n1.Y) / s.hw
			if cosHalf > 1e-12 && 1/cosHalf <= s.limit {
				m := s.hw / cosHalf
				tip := Pt(b.X+sign*bx*m, b.Y+sign*by*m)
				s.polygon(b, o1, tip, o2)
				return
			}
		}
	}
	s.polygon(b, o1, o2)
}

// capAt adds the cap at end, where from is the neighbouring point.
func (s *stroker) capAt(end, from Point) {
	switch s.cap {
	case LineCapRound:
		s.circle(end)
	case LineCapSquare:
		d := unit(from, end)
		n := s.normal(from, end)
		ex, ey := d.X*s.hw, d.Y*s.hw
		s.polygon(
			Pt(end.X+n.X, end.Y+n.Y),
			Pt(end.X+n.X+ex, end.Y+n.Y+ey),
			Pt(end.X-n.X+ex, end.Y-n.Y+ey),
			Pt(end.X-n.X, end.Y-n.Y),
		)
	}
}

func (s *stroker) circle(c Point) {
	n := int(math.Ceil(2 * math.Pi * s.hw))
	n = max(8, min(n, 128))
	pts := make([]Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Pt(c.X+s.hw*math.Cos(a), c.Y+s.hw*math.Sin(a))
	}
	s.polygon(pts...)
}

// polygon appends a closed polygon with positive signed area so that
// overlapping pieces accumulate instead of cancelling.
func (s *stroker) polygon(pts ...Point) {
	var area float64
	for i := range pts {
		j := (i + 1) % len(pts)
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	if area == 0 {
		return
	}
	if area < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	s.out.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.out.LineTo(p.X, p.Y)
	}
	s.out.Close()
}

// normal returns the left normal of a->b scaled to the half width.
func (s *stroker) normal(a, b Point) Point {
	d := unit(a, b)
	return Pt(-d.Y*s.hw, d.X*s.hw)
}

func unit(a, b Point) Point {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return Point{}
	}
	return Pt(dx/l, dy/l)
}

// prune drops consecutive duplicate points; zero-length segments are not
// stroked.
func prune(pts []Point) []Point {
	out := make([]Point, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	return out
}

// dash splits polylines into the "on" intervals of pattern, starting
// offset units into the pattern.
func dash(lines []polyline, pattern []float64, offset float64) []polyline {
	var total float64
	for _, v := range pattern {
		total += v
	}
	if !(total > 0) || math.IsInf(total, 0) {
		return lines
	}

	var out []polyline
	for _, pl := range lines {
		pts := pl.pts
		if pl.closed && len(pts) > 1 {
			pts = append(pts[:len(pts):len(pts)], pts[0])
		}
		if len(pts) < 2 {
			continue
		}

		off := math.Mod(offset, total)
		if off < 0 {
			off += total
		}
		idx := 0
		for off >= pattern[idx] {
			off -= pattern[idx]
			idx = (idx + 1) % len(pattern)
		}
		remain := pattern[idx] - off
		on := idx%2 == 0

		var cur []Point
		if on {
			cur = []Point{pts[0]}
		}
		for i := 1; i < len(pts); i++ {
			a, b := pts[i-1], pts[i]
			segLen := math.Hypot(b.X-a.X, b.Y-a.Y)
			pos := 0.0
			for segLen-pos > remain {
				pos += remain
				t := pos / segLen
				p := Pt(a.X+(b.X-a.X)*t, a.Y+(b.Y-a.Y)*t)
				if on {
					out = append(out, polyline{pts: append(cur, p)})
					cur = nil
				} else {
					cur = []Point{p}
				}
				on = !on
				idx = (idx + 1) % len(pattern)
				remain = pattern[idx]
			}
			remain -= segLen - pos
			if on {
				cur = append(cur, b)
			}
		}
		if on && len(cur) > 1 {
			out = append(out, polyline{pts: cur})
		}
	}
	return out
}
