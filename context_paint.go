package canvas

import (
	"image/color"

	"github.com/gogpu/canvas/surface"
)

// Fill fills the current path with the fill style.
func (c *Context) Fill() {
	if c.closed || c.path.IsEmpty() {
		return
	}
	c.surface.Fill(c.path, c.state.paint(false))
}

// Stroke strokes the current path with the stroke style and line style.
func (c *Context) Stroke() {
	if c.closed || c.path.IsEmpty() {
		return
	}
	c.surface.Stroke(c.path, c.state.paint(true))
}

// FillRect fills a rectangle without touching the current path.
func (c *Context) FillRect(x, y, w, h float64) {
	if c.closed || !finite(x, y, w, h) || w == 0 || h == 0 {
		return
	}
	c.surface.Fill(rectPath(x, y, w, h), c.state.paint(false))
}

// StrokeRect strokes a rectangle without touching the current path.
func (c *Context) StrokeRect(x, y, w, h float64) {
	if c.closed || !finite(x, y, w, h) || (w == 0 && h == 0) {
		return
	}
	c.surface.Stroke(rectPath(x, y, w, h), c.state.paint(true))
}

// ClearRect clears a rectangle to transparent black, ignoring alpha,
// compositing, shadows and filters.
func (c *Context) ClearRect(x, y, w, h float64) {
	if c.closed || !finite(x, y, w, h) || w == 0 || h == 0 {
		return
	}
	c.surface.Fill(rectPath(x, y, w, h), &surface.Paint{
		Color: opaqueBlack,
		Alpha: 1,
		Op:    surface.CompositeDestinationOut,
	})
}

var opaqueBlack = color.NRGBA{A: 255}

func rectPath(x, y, w, h float64) *surface.Path {
	p := surface.NewPath()
	p.Rectangle(x, y, w, h)
	return p
}
