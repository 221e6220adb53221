// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"math"
	"testing"
)

func verbs(p *Path) []Verb {
	var out []Verb
	p.Walk(func(v Verb, _ []Point) { out = append(out, v) })
	return out
}

func TestPathImplicitSubpaths(t *testing.T) {
	p := NewPath()
	p.LineTo(5, 5)
	p.LineTo(10, 5)
	p.Close()
	p.LineTo(0, 0)

	want := []Verb{VerbMoveTo, VerbLineTo, VerbClose, VerbMoveTo, VerbLineTo}
	got := verbs(p)
	if len(got) != len(want) {
		t.Fatalf("verbs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("verbs = %v, want %v", got, want)
		}
	}
	if cp := p.CurrentPoint(); cp != Pt(0, 0) {
		t.Errorf("CurrentPoint() = %v, want (0,0)", cp)
	}
}

func TestPathRectangleLeavesPenAtOrigin(t *testing.T) {
	p := NewPath()
	p.Rectangle(1, 2, 3, 4)
	if cp := p.CurrentPoint(); cp != Pt(1, 2) {
		t.Errorf("CurrentPoint() = %v, want (1,2)", cp)
	}
	minX, minY, maxX, maxY := p.Bounds()
	if minX != 1 || minY != 2 || maxX != 4 || maxY != 6 {
		t.Errorf("Bounds() = %v %v %v %v, want 1 2 4 6", minX, minY, maxX, maxY)
	}
}

func TestPathArc(t *testing.T) {
	tests := []struct {
		name   string
		a0, a1 float64
		ccw    bool
		end    Point
	}{
		{"quarter clockwise", 0, math.Pi / 2, false, Pt(0, 10)},
		{"quarter anticlockwise", 0, -math.Pi / 2, true, Pt(0, -10)},
		{"full turn", 0, 4 * math.Pi, false, Pt(10, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPath()
			p.Arc(0, 0, 10, tt.a0, tt.a1, tt.ccw)
			end := p.CurrentPoint()
			if math.Abs(end.X-tt.end.X) > 1e-9 || math.Abs(end.Y-tt.end.Y) > 1e-9 {
				t.Errorf("end = %v, want %v", end, tt.end)
			}
		})
	}
}

func TestPathArcJoinsCurrentPoint(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.Arc(20, 0, 5, 0, math.Pi, false)
	got := verbs(p)
	if got[1] != VerbLineTo {
		t.Errorf("second verb = %v, want VerbLineTo", got[1])
	}
}

func TestPathArcCircleFlattensNearRadius(t *testing.T) {
	p := NewPath()
	p.Arc(0, 0, 50, 0, 2*math.Pi, false)
	for _, pl := range p.flatten(flattenTolerance) {
		for _, pt := range pl.pts {
			if r := math.Hypot(pt.X, pt.Y); math.Abs(r-50) > 0.2 {
				t.Fatalf("point %v at radius %v, want ~50", pt, r)
			}
		}
	}
}

func TestPathClone(t *testing.T) {
	p := NewPath()
	p.MoveTo(1, 1)
	c := p.Clone()
	p.LineTo(2, 2)
	if len(verbs(c)) != 1 {
		t.Errorf("clone shares storage with original: %v", verbs(c))
	}
}

func TestStrokeOutlineEmpty(t *testing.T) {
	p := NewPath()
	p.MoveTo(1, 1)
	p.LineTo(1, 1)
	if out := StrokeOutline(p, DefaultPaint()); !out.IsEmpty() {
		t.Error("zero-length subpath produced an outline")
	}
	paint := DefaultPaint()
	paint.LineWidth = 0
	p.LineTo(5, 5)
	if out := StrokeOutline(p, paint); !out.IsEmpty() {
		t.Error("zero width produced an outline")
	}
}

func TestStrokeOutlineDashes(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	paint := DefaultPaint()
	paint.Dash = []float64{2, 2}

	var moves int
	StrokeOutline(p, paint).Walk(func(v Verb, _ []Point) {
		if v == VerbMoveTo {
			moves++
		}
	})
	// dashes at 0-2, 4-6 and 8-10 with butt caps
	if moves != 3 {
		t.Errorf("dashed outline has %d polygons, want 3", moves)
	}
}

func TestDashOffset(t *testing.T) {
	lines := []polyline{{pts: []Point{Pt(0, 0), Pt(7, 0)}}}
	out := dash(lines, []float64{4, 6}, 2)
	if len(out) != 1 {
		t.Fatalf("dash() = %d pieces, want 1", len(out))
	}
	if out[0].pts[0] != Pt(0, 0) || out[0].pts[len(out[0].pts)-1] != Pt(2, 0) {
		t.Errorf("dash() = %v, want (0,0)-(2,0)", out[0].pts)
	}
}

func TestStrokeJoins(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(10, 10)

	count := func(j LineJoin) int {
		paint := DefaultPaint()
		paint.LineWidth = 4
		paint.Join = j
		n := 0
		StrokeOutline(p, paint).Walk(func(v Verb, _ []Point) {
			if v == VerbMoveTo {
				n++
			}
		})
		return n
	}
	// two segments plus one join polygon
	for _, j := range []LineJoin{LineJoinMiter, LineJoinBevel, LineJoinRound} {
		if n := count(j); n != 3 {
			t.Errorf("join %v: %d polygons, want 3", j, n)
		}
	}
}
