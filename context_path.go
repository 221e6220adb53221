package canvas

import "math"

// finite reports whether every value is a finite number. Path and paint
// calls with non-finite arguments are ignored.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// BeginPath discards the current path.
func (c *Context) BeginPath() {
	c.path.Clear()
}

// MoveTo starts a new subpath at (x, y).
func (c *Context) MoveTo(x, y float64) {
	if finite(x, y) {
		c.path.MoveTo(x, y)
	}
}

// LineTo adds a line to (x, y).
func (c *Context) LineTo(x, y float64) {
	if finite(x, y) {
		c.path.LineTo(x, y)
	}
}

// QuadraticCurveTo adds a quadratic Bézier curve.
func (c *Context) QuadraticCurveTo(cpx, cpy, x, y float64) {
	if finite(cpx, cpy, x, y) {
		c.path.QuadTo(cpx, cpy, x, y)
	}
}

// BezierCurveTo adds a cubic Bézier curve.
func (c *Context) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	if finite(cp1x, cp1y, cp2x, cp2y, x, y) {
		c.path.CubicTo(cp1x, cp1y, cp2x, cp2y, x, y)
	}
}

// Arc adds a circular arc centred on (x, y). A negative radius is ignored.
func (c *Context) Arc(x, y, radius, startAngle, endAngle float64, counterclockwise bool) {
	if !finite(x, y, radius, startAngle, endAngle) || radius < 0 {
		return
	}
	c.path.Arc(x, y, radius, startAngle, endAngle, counterclockwise)
}

// Rect adds a closed rectangle subpath.
func (c *Context) Rect(x, y, w, h float64) {
	if finite(x, y, w, h) {
		c.path.Rectangle(x, y, w, h)
	}
}

// ClosePath closes the current subpath.
func (c *Context) ClosePath() {
	c.path.Close()
}
