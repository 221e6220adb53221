// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/gogpu/canvas/internal/blend"
)

// LineCap specifies the shape of line endpoints.
type LineCap uint8

const (
	// LineCapButt ends the line flat at the endpoint.
	LineCapButt LineCap = iota

	// LineCapRound adds a semicircle at each endpoint.
	LineCapRound

	// LineCapSquare extends the line by half its width.
	LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin uint8

const (
	// LineJoinMiter extends the outer edges until they meet.
	LineJoinMiter LineJoin = iota

	// LineJoinRound joins with a circular arc.
	LineJoinRound

	// LineJoinBevel joins with a straight cut.
	LineJoinBevel
)

// CompositeOp is a canvas compositing operation.
type CompositeOp = blend.Op

const (
	CompositeSourceOver     = blend.SourceOver
	CompositeCopy           = blend.Copy
	CompositeDestinationOut = blend.DestinationOut
)

// ParseCompositeOp looks up a compositing operation by its CSS keyword.
func ParseCompositeOp(name string) (CompositeOp, bool) {
	return blend.Parse(name)
}

// ImageFilter post-processes the premultiplied layer of one drawing
// operation before it is composited.
type ImageFilter interface {
	Apply(layer *image.RGBA)
}

// Shadow is a canvas shadow. Blur follows the canvas shadowBlur convention:
// the Gaussian standard deviation is Blur/2.
type Shadow struct {
	OffsetX, OffsetY float64
	Blur             float64
	Color            color.Color
}

// Paint carries everything a drawing operation needs beyond its geometry.
//
// The zero Paint is transparent; use DefaultPaint as a starting point.
type Paint struct {
	// Color is used when Pattern is nil.
	Color color.Color

	// Pattern, when set, takes precedence over Color.
	Pattern Pattern

	// Alpha multiplies the paint opacity, in [0, 1].
	Alpha float64

	// Op composites the drawing onto the surface.
	Op CompositeOp

	// Filters run on the drawing's layer in order.
	Filters []ImageFilter

	Shadow Shadow

	LineWidth  float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64

	// Dash is the dash/gap pattern in user units. Empty means solid.
	Dash       []float64
	DashOffset float64
}

// DefaultPaint returns an opaque black source-over paint with canvas line
// defaults.
func DefaultPaint() *Paint {
	return &Paint{
		Color:      color.Black,
		Alpha:      1,
		Op:         blend.SourceOver,
		LineWidth:  1,
		MiterLimit: 10,
	}
}

// IsDashed reports whether the paint strokes with a dash pattern.
func (p *Paint) IsDashed() bool {
	return len(p.Dash) > 0
}

// DrawImageOptions defines how an image is drawn.
type DrawImageOptions struct {
	// SrcRect selects part of the image. nil means the whole image.
	SrcRect *image.Rectangle

	// DstWidth and DstHeight scale the drawn image. Zero keeps the source
	// size along that axis.
	DstWidth, DstHeight float64

	// Filter is the resampling quality used when scaling.
	Filter Filter

	// Paint supplies alpha, composite operation, shadow and filters. nil
	// means DefaultPaint.
	Paint *Paint
}

// Filter is the resampling quality used for scaled image draws.
type Filter uint8

const (
	// FilterNone samples the nearest pixel.
	FilterNone Filter = iota

	// FilterLow uses an approximate bilinear filter.
	FilterLow

	// FilterMedium uses a bilinear filter.
	FilterMedium

	// FilterHigh uses a Catmull-Rom bicubic filter.
	FilterHigh
)

// Interpolator returns the x/image/draw scaler for the quality.
func (f Filter) Interpolator() draw.Interpolator {
	switch f {
	case FilterLow:
		return draw.ApproxBiLinear
	case FilterMedium:
		return draw.BiLinear
	case FilterHigh:
		return draw.CatmullRom
	default:
		return draw.NearestNeighbor
	}
}

// String returns the name of the quality.
func (f Filter) String() string {
	switch f {
	case FilterNone:
		return "none"
	case FilterLow:
		return "low"
	case FilterMedium:
		return "medium"
	case FilterHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Pattern is a colour source that varies across the surface.
type Pattern interface {
	// ColorAt returns the colour at surface coordinates (x, y).
	ColorAt(x, y float64) color.Color
}

// SolidPattern returns a single colour everywhere.
type SolidPattern struct {
	Color color.Color
}

// ColorAt implements Pattern.
func (p SolidPattern) ColorAt(_, _ float64) color.Color {
	return p.Color
}

// Point is a 2D point in surface pixels.
type Point struct {
	X, Y float64
}

// Pt creates a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Options configures surface creation through the registry.
type Options struct {
	Width  int
	Height int

	// Background is the initial colour. nil means transparent.
	Background color.Color

	// GPU configures surfaces created by the "gpu" backend.
	GPU *GPUTarget

	// GPUBackend builds the host rasterizer for GPU. nil selects the
	// software backend.
	GPUBackend GPUBackendFactory
}
