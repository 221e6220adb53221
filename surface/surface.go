// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"
	"image/color"
)

// Surface is a pixel surface a rendering context draws into.
//
// Surfaces are NOT thread-safe. The owning context serializes access.
type Surface interface {
	// Info describes the pixel layout of the surface.
	Info() ImageInfo

	// Clear replaces every pixel with c, ignoring compositing.
	Clear(c color.Color)

	// Fill paints the interior of path (non-zero winding) with paint.
	Fill(path *Path, paint *Paint)

	// Stroke paints the outline of path using the line style of paint.
	Stroke(path *Path, paint *Paint)

	// DrawImage draws img with its top-left corner at at.
	DrawImage(img image.Image, at Point, opts *DrawImageOptions)

	// Flush completes pending drawing work.
	Flush() error

	// ReadPixels copies the dstInfo.Width x dstInfo.Height rectangle whose
	// top-left corner is (x, y) into dst, converting to dstInfo's colour and
	// alpha types. Pixels outside the surface read as transparent black.
	ReadPixels(dstInfo ImageInfo, dst []byte, rowBytes, x, y int) error

	// Snapshot returns an immutable copy of the current contents.
	Snapshot() *Image

	// Draw draws the contents of this surface onto another surface.
	Draw(onto Surface, at Point, quality Filter, paint *Paint)

	// Close releases the surface. Close is idempotent.
	Close() error
}

// ColorType is the byte order of a pixel.
type ColorType uint8

const (
	ColorTypeRGBA8888 ColorType = iota
	ColorTypeBGRA8888
)

// String returns the name of the colour type.
func (c ColorType) String() string {
	switch c {
	case ColorTypeRGBA8888:
		return "rgba8888"
	case ColorTypeBGRA8888:
		return "bgra8888"
	default:
		return "unknown"
	}
}

// AlphaType is the alpha representation of a pixel.
type AlphaType uint8

const (
	AlphaTypePremul AlphaType = iota
	AlphaTypeUnpremul
	AlphaTypeOpaque
)

// String returns the name of the alpha type.
func (a AlphaType) String() string {
	switch a {
	case AlphaTypePremul:
		return "premul"
	case AlphaTypeUnpremul:
		return "unpremul"
	case AlphaTypeOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// ImageInfo describes the dimensions and pixel layout of a buffer.
type ImageInfo struct {
	Width     int
	Height    int
	ColorType ColorType
	AlphaType AlphaType
}

// MinRowBytes is the tightly packed row size.
func (i ImageInfo) MinRowBytes() int {
	return i.Width * 4
}

// ByteSize is the tightly packed buffer size.
func (i ImageInfo) ByteSize() int {
	return i.MinRowBytes() * i.Height
}

// IsEmpty reports whether the info describes no pixels.
func (i ImageInfo) IsEmpty() bool {
	return i.Width <= 0 || i.Height <= 0
}

// Errors.
var (
	// ErrClosed is returned by operations on a closed surface.
	ErrClosed = errors.New("surface: closed")

	// ErrInvalidSize is returned for non-positive surface dimensions.
	ErrInvalidSize = errors.New("surface: invalid size")

	// ErrBufferTooSmall is returned by ReadPixels when dst cannot hold the
	// requested rectangle.
	ErrBufferTooSmall = errors.New("surface: destination buffer too small")

	// ErrNilBackend is returned when a GPU surface is built without a backend.
	ErrNilBackend = errors.New("surface: GPUBackend cannot be nil")
)
