// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
	"math"
	"slices"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/gogpu/canvas/internal/blend"
	"github.com/gogpu/canvas/internal/filter"
)

// ImageSurface is a CPU surface over premultiplied RGBA memory.
//
// Path coverage is computed by an x/image/vector rasterizer (non-zero
// winding, anti-aliased); each drawing operation is rendered into a layer,
// filtered, shadowed and composited with the paint's operation.
//
//	s := surface.NewImageSurface(300, 150)
//	defer s.Close()
//
//	path := surface.NewPath()
//	path.Arc(150, 75, 50, 0, 2*math.Pi, false)
//	s.Fill(path, surface.DefaultPaint())
type ImageSurface struct {
	width  int
	height int
	img    *image.RGBA
	rast   *vector.Rasterizer

	// snap shares img.Pix until the next write. Concurrent readers may
	// take snapshots, so it is guarded by snapMu.
	snapMu sync.Mutex
	snap   *Image

	closed bool
}

// NewImageSurface creates a transparent CPU surface. Non-positive
// dimensions are clamped to 1.
func NewImageSurface(width, height int) *ImageSurface {
	width = max(width, 1)
	height = max(height, 1)
	return &ImageSurface{
		width:  width,
		height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		rast:   vector.NewRasterizer(width, height),
	}
}

// Info implements Surface.
func (s *ImageSurface) Info() ImageInfo {
	return ImageInfo{Width: s.width, Height: s.height, ColorType: ColorTypeRGBA8888, AlphaType: AlphaTypePremul}
}

// Width returns the surface width.
func (s *ImageSurface) Width() int { return s.width }

// Height returns the surface height.
func (s *ImageSurface) Height() int { return s.height }

// beforeWrite detaches the pixels from an outstanding snapshot.
func (s *ImageSurface) beforeWrite() {
	s.snapMu.Lock()
	defer s.snapMu.Unlock()
	if s.snap != nil {
		s.img.Pix = slices.Clone(s.img.Pix)
		s.snap = nil
	}
}

// Clear implements Surface.
func (s *ImageSurface) Clear(c color.Color) {
	if s.closed {
		return
	}
	s.beforeWrite()
	p := toRGBA(c)
	pix := s.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = p.R, p.G, p.B, p.A
	}
}

// Fill implements Surface.
func (s *ImageSurface) Fill(path *Path, paint *Paint) {
	if s.closed || path.IsEmpty() {
		return
	}
	s.paintMask(s.coverage(path), orDefault(paint))
}

// Stroke implements Surface.
func (s *ImageSurface) Stroke(path *Path, paint *Paint) {
	if s.closed || path.IsEmpty() {
		return
	}
	paint = orDefault(paint)
	outline := StrokeOutline(path, paint)
	if outline.IsEmpty() {
		return
	}
	s.paintMask(s.coverage(outline), paint)
}

// DrawImage implements Surface.
func (s *ImageSurface) DrawImage(img image.Image, at Point, opts *DrawImageOptions) {
	if s.closed || img == nil {
		return
	}
	if opts == nil {
		opts = &DrawImageOptions{}
	}
	sr := img.Bounds()
	if opts.SrcRect != nil {
		sr = opts.SrcRect.Intersect(sr)
	}
	if sr.Empty() {
		return
	}
	dw, dh := opts.DstWidth, opts.DstHeight
	if dw == 0 {
		dw = float64(sr.Dx())
	}
	if dh == 0 {
		dh = float64(sr.Dy())
	}
	x0, y0 := int(math.Round(at.X)), int(math.Round(at.Y))
	dr := image.Rect(x0, y0, int(math.Round(at.X+dw)), int(math.Round(at.Y+dh))).Canon()
	if dr.Empty() || !dr.Overlaps(s.img.Rect) {
		return
	}

	if v, ok := img.(*Image); ok {
		img = v.rgba
	}
	layer := s.newLayer()
	if dr.Dx() == sr.Dx() && dr.Dy() == sr.Dy() && dw > 0 && dh > 0 {
		draw.Draw(layer, dr, img, sr.Min, draw.Src)
	} else {
		// Negative sizes mirror the image.
		src := img
		if dw < 0 || dh < 0 {
			src = mirror(img, sr, dw < 0, dh < 0)
			sr = src.Bounds()
		}
		opts.Filter.Interpolator().Scale(layer, dr, src, sr, draw.Src, nil)
	}
	s.composite(layer, orDefault(opts.Paint))
}

// mirror copies the sr part of img flipped along the requested axes.
func mirror(img image.Image, sr image.Rectangle, flipX, flipY bool) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, sr.Dx(), sr.Dy()))
	for y := range sr.Dy() {
		sy := sr.Min.Y + y
		if flipY {
			sy = sr.Max.Y - 1 - y
		}
		for x := range sr.Dx() {
			sx := sr.Min.X + x
			if flipX {
				sx = sr.Max.X - 1 - x
			}
			out.Set(x, y, img.At(sx, sy))
		}
	}
	return out
}

// Flush implements Surface. CPU drawing completes synchronously.
func (s *ImageSurface) Flush() error {
	if s.closed {
		return ErrClosed
	}
	return nil
}

// ReadPixels implements Surface.
func (s *ImageSurface) ReadPixels(dstInfo ImageInfo, dst []byte, rowBytes, x, y int) error {
	if s.closed {
		return ErrClosed
	}
	return readPixels(s.img, dstInfo, dst, rowBytes, x, y)
}

// Snapshot implements Surface. Consecutive snapshots without drawing in
// between return the same Image.
func (s *ImageSurface) Snapshot() *Image {
	if s.closed {
		return nil
	}
	s.snapMu.Lock()
	defer s.snapMu.Unlock()
	if s.snap == nil {
		s.snap = &Image{rgba: &image.RGBA{Pix: s.img.Pix, Stride: s.img.Stride, Rect: s.img.Rect}}
	}
	return s.snap
}

// Draw implements Surface.
func (s *ImageSurface) Draw(onto Surface, at Point, quality Filter, paint *Paint) {
	snap := s.Snapshot()
	if snap == nil || onto == nil {
		return
	}
	onto.DrawImage(snap, at, &DrawImageOptions{Filter: quality, Paint: paint})
}

// Close implements Surface.
func (s *ImageSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.img = nil
	s.snapMu.Lock()
	s.snap = nil
	s.snapMu.Unlock()
	return nil
}

// Image returns the backing image. It is only valid until the next drawing
// call and must not be modified.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

func (s *ImageSurface) newLayer() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, s.width, s.height))
}

// coverage rasterizes path into an anti-aliased alpha mask.
func (s *ImageSurface) coverage(path *Path) *image.Alpha {
	z := s.rast
	z.Reset(s.width, s.height)
	z.DrawOp = draw.Src
	open := false
	path.Walk(func(v Verb, pts []Point) {
		switch v {
		case VerbMoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(f32(pts[0].X), f32(pts[0].Y))
			open = true
		case VerbLineTo:
			z.LineTo(f32(pts[0].X), f32(pts[0].Y))
		case VerbQuadTo:
			z.QuadTo(f32(pts[0].X), f32(pts[0].Y), f32(pts[1].X), f32(pts[1].Y))
		case VerbCubicTo:
			z.CubeTo(f32(pts[0].X), f32(pts[0].Y), f32(pts[1].X), f32(pts[1].Y), f32(pts[2].X), f32(pts[2].Y))
		case VerbClose:
			z.ClosePath()
			open = false
		}
	})
	if open {
		z.ClosePath()
	}
	mask := image.NewAlpha(image.Rect(0, 0, s.width, s.height))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// f32 converts a coordinate, pinning non-finite values far outside the
// surface.
func f32(v float64) float32 {
	switch {
	case math.IsNaN(v):
		return 0
	case v > 1e7:
		return 1e7
	case v < -1e7:
		return -1e7
	}
	return float32(v)
}

// paintMask renders the paint's colour or pattern through mask into a layer
// and composites it.
func (s *ImageSurface) paintMask(mask *image.Alpha, paint *Paint) {
	layer := s.newLayer()
	var solid color.RGBA
	if paint.Pattern == nil {
		solid = toRGBA(paint.Color)
	}
	for y := range s.height {
		mrow := mask.Pix[y*mask.Stride : y*mask.Stride+s.width]
		lrow := layer.Pix[y*layer.Stride:]
		for x, m := range mrow {
			if m == 0 {
				continue
			}
			c := solid
			if paint.Pattern != nil {
				c = toRGBA(paint.Pattern.ColorAt(float64(x)+0.5, float64(y)+0.5))
			}
			p := lrow[x*4 : x*4+4]
			p[0] = mul(c.R, m)
			p[1] = mul(c.G, m)
			p[2] = mul(c.B, m)
			p[3] = mul(c.A, m)
		}
	}
	s.composite(layer, paint)
}

// composite runs the paint's filters on layer, draws its shadow and then
// composites the layer itself.
func (s *ImageSurface) composite(layer *image.RGBA, paint *Paint) {
	for _, f := range paint.Filters {
		f.Apply(layer)
	}
	s.beforeWrite()
	op := blend.For(paint.Op)
	alpha := byte(math.Round(math.Max(0, math.Min(1, paint.Alpha)) * 255))

	if sh := shadowFilter(paint.Shadow); sh.Visible() {
		sl := sh.Layer(layer)
		scaleAlpha(sl, alpha)
		s.span(op, sl)
	}
	scaleAlpha(layer, alpha)
	s.span(op, layer)
}

func (s *ImageSurface) span(op blend.Func, layer *image.RGBA) {
	w := s.width * 4
	for y := range s.height {
		blend.Span(op, s.img.Pix[y*s.img.Stride:y*s.img.Stride+w], layer.Pix[y*layer.Stride:y*layer.Stride+w], nil)
	}
}

func shadowFilter(sh Shadow) filter.Shadow {
	if sh.Color == nil {
		return filter.Shadow{}
	}
	r, g, b, a := sh.Color.RGBA()
	c := [4]uint8{}
	if a > 0 {
		c = [4]uint8{uint8(r * 255 / a), uint8(g * 255 / a), uint8(b * 255 / a), uint8(a >> 8)}
	}
	return filter.Shadow{DX: sh.OffsetX, DY: sh.OffsetY, Sigma: sh.Blur / 2, Color: c}
}

func scaleAlpha(layer *image.RGBA, alpha byte) {
	if alpha == 255 {
		return
	}
	for i := range layer.Pix {
		layer.Pix[i] = mul(layer.Pix[i], alpha)
	}
}

// toRGBA converts any colour to premultiplied 8-bit RGBA.
func toRGBA(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{}
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}

func mul(a, b byte) byte {
	return byte((uint32(a)*uint32(b) + 127) / 255)
}

func orDefault(p *Paint) *Paint {
	if p == nil {
		return DefaultPaint()
	}
	return p
}

var _ Surface = (*ImageSurface)(nil)
