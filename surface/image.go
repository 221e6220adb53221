// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"

	icolor "github.com/gogpu/canvas/internal/color"
)

// Image is an immutable snapshot of surface pixels, stored as premultiplied
// RGBA. It implements image.Image so it can be drawn back onto surfaces or
// handed to image encoders.
type Image struct {
	rgba *image.RGBA
}

// NewImage copies src into a new snapshot.
func NewImage(src *image.RGBA) *Image {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := range b.Dy() {
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+b.Dx()*4], src.Pix[y*src.Stride:])
	}
	return &Image{rgba: dst}
}

// Width returns the image width in pixels.
func (m *Image) Width() int { return m.rgba.Rect.Dx() }

// Height returns the image height in pixels.
func (m *Image) Height() int { return m.rgba.Rect.Dy() }

// Info describes the snapshot pixels.
func (m *Image) Info() ImageInfo {
	return ImageInfo{Width: m.Width(), Height: m.Height(), ColorType: ColorTypeRGBA8888, AlphaType: AlphaTypePremul}
}

// ColorModel implements image.Image.
func (m *Image) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (m *Image) Bounds() image.Rectangle { return m.rgba.Rect }

// At implements image.Image.
func (m *Image) At(x, y int) color.Color { return m.rgba.RGBAAt(x, y) }

// RGBA returns a private copy of the pixels.
func (m *Image) RGBA() *image.RGBA {
	return NewImage(m.rgba).rgba
}

// ReadPixels copies a rectangle of the snapshot into dst; see
// Surface.ReadPixels.
func (m *Image) ReadPixels(dstInfo ImageInfo, dst []byte, rowBytes, x, y int) error {
	return readPixels(m.rgba, dstInfo, dst, rowBytes, x, y)
}

// readPixels converts a rectangle of premultiplied RGBA src into dst.
func readPixels(src *image.RGBA, dstInfo ImageInfo, dst []byte, rowBytes, x, y int) error {
	if dstInfo.IsEmpty() {
		return ErrInvalidSize
	}
	row := dstInfo.MinRowBytes()
	if rowBytes < row || len(dst) < rowBytes*(dstInfo.Height-1)+row {
		return ErrBufferTooSmall
	}
	b := src.Bounds()
	for j := range dstInfo.Height {
		out := dst[j*rowBytes : j*rowBytes+row]
		clear(out)
		sy := y + j
		if sy < 0 || sy >= b.Dy() {
			continue
		}
		x0 := max(x, 0)
		x1 := min(x+dstInfo.Width, b.Dx())
		if x0 < x1 {
			copy(out[(x0-x)*4:], src.Pix[sy*src.Stride+x0*4:sy*src.Stride+x1*4])
		}
		if dstInfo.AlphaType == AlphaTypeUnpremul {
			icolor.Unpremultiply(out)
		}
		if dstInfo.ColorType == ColorTypeBGRA8888 {
			icolor.SwapRB(out)
		}
	}
	return nil
}
