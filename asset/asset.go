// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package asset holds decoded raster images owned by the host: image
// assets produced by the ingestion pipeline and the unpremultiplied
// ImageData buffers of canvas pixel manipulation.
//
// An Asset never shares memory with the buffer it was built from. Failed
// operations return the empty asset with the failure recorded on it
// instead of an error, so a host can always hold on to the result.
package asset

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/gogpu/canvas/codec"
	icolor "github.com/gogpu/canvas/internal/color"
	"github.com/gogpu/canvas/internal/logging"
	"github.com/gogpu/canvas/surface"
)

// ColorSpace is the colour space of asset pixels.
type ColorSpace = icolor.ColorSpace

const (
	ColorSpaceSRGB       = icolor.SRGB
	ColorSpaceLinearSRGB = icolor.LinearSRGB
)

// Errors recorded on failed assets.
var (
	// ErrEmpty is reported by operations that need pixels on the empty asset.
	ErrEmpty = errors.New("asset: empty")

	// ErrPixelCount is returned when a pixel buffer does not match its
	// dimensions.
	ErrPixelCount = errors.New("asset: pixel buffer does not match dimensions")
)

// Asset is an immutable decoded image.
type Asset struct {
	pixels     []byte
	width      int
	height     int
	colorType  surface.ColorType
	alphaType  surface.AlphaType
	colorSpace ColorSpace
	err        error
}

var empty = &Asset{}

// Empty returns the empty asset: zero dimensions, no pixels, no error.
func Empty() *Asset {
	return empty
}

// Failed returns an empty asset that records why it is empty.
func Failed(err error) *Asset {
	return &Asset{err: err}
}

// New copies pixels into a new asset described by info. pixels must hold
// exactly info.ByteSize() bytes.
func New(pixels []byte, info surface.ImageInfo, cs ColorSpace) (*Asset, error) {
	if info.IsEmpty() {
		return nil, fmt.Errorf("%w: %dx%d", surface.ErrInvalidSize, info.Width, info.Height)
	}
	if len(pixels) != info.ByteSize() {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrPixelCount, len(pixels), info.Width, info.Height)
	}
	return &Asset{
		pixels:     bytes.Clone(pixels),
		width:      info.Width,
		height:     info.Height,
		colorType:  info.ColorType,
		alphaType:  info.AlphaType,
		colorSpace: cs,
	}, nil
}

// Decode decodes an encoded image with the default codec.
func Decode(data []byte) *Asset {
	return DecodeWith(codec.Default(), data)
}

// DecodeWith decodes an encoded image with c.
func DecodeWith(c codec.Codec, data []byte) *Asset {
	img, err := c.Decode(data)
	if err != nil {
		logging.Logger().Debug("asset: decode failed", "bytes", len(data), "err", err)
		return Failed(err)
	}
	return FromImage(img)
}

// Load reads and decodes the image file at path.
func Load(path string) *Asset {
	data, err := os.ReadFile(path)
	if err != nil {
		return Failed(fmt.Errorf("asset: load: %w", err))
	}
	return Decode(data)
}

// FromImage copies img into a new asset. *image.RGBA and *surface.Image
// are kept premultiplied; everything else is converted to unpremultiplied
// RGBA.
func FromImage(img image.Image) *Asset {
	if img == nil {
		return Failed(ErrEmpty)
	}
	b := img.Bounds()
	if b.Empty() {
		return Failed(fmt.Errorf("%w: %dx%d", surface.ErrInvalidSize, b.Dx(), b.Dy()))
	}
	a := &Asset{
		width:      b.Dx(),
		height:     b.Dy(),
		colorType:  surface.ColorTypeRGBA8888,
		colorSpace: ColorSpaceSRGB,
	}
	switch src := img.(type) {
	case *surface.Image:
		a.pixels = src.RGBA().Pix
		a.alphaType = surface.AlphaTypePremul
	case *image.RGBA:
		a.pixels = packed(src.Pix, src.Stride, src.PixOffset(b.Min.X, b.Min.Y), b.Dx(), b.Dy())
		a.alphaType = surface.AlphaTypePremul
	default:
		a.pixels = imaging.Clone(img).Pix
		a.alphaType = surface.AlphaTypeUnpremul
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		a.alphaType = surface.AlphaTypeOpaque
	}
	return a
}

// packed copies a w x h region starting at off into a tight buffer.
func packed(pix []byte, stride, off, w, h int) []byte {
	out := make([]byte, w*h*4)
	for y := range h {
		copy(out[y*w*4:(y+1)*w*4], pix[off+y*stride:])
	}
	return out
}

// Width returns the width in pixels.
func (a *Asset) Width() int { return a.width }

// Height returns the height in pixels.
func (a *Asset) Height() int { return a.height }

// Info describes the pixel layout.
func (a *Asset) Info() surface.ImageInfo {
	return surface.ImageInfo{
		Width:     a.width,
		Height:    a.height,
		ColorType: a.colorType,
		AlphaType: a.alphaType,
	}
}

// ColorSpace returns the colour space of the pixels.
func (a *Asset) ColorSpace() ColorSpace { return a.colorSpace }

// IsEmpty reports whether the asset has no pixels.
func (a *Asset) IsEmpty() bool { return a == nil || len(a.pixels) == 0 }

// Err returns the reason an empty asset was produced, if any.
func (a *Asset) Err() error {
	if a == nil {
		return ErrEmpty
	}
	return a.err
}

// Pixels returns a copy of the pixel bytes, tightly packed.
func (a *Asset) Pixels() []byte {
	if a.IsEmpty() {
		return nil
	}
	return bytes.Clone(a.pixels)
}

// Image returns a copy of the asset as an image in RGBA byte order:
// *image.RGBA for premultiplied pixels and *image.NRGBA otherwise.
// Colour values are returned in the asset's colour space.
func (a *Asset) Image() image.Image {
	if a.IsEmpty() {
		return nil
	}
	pix := a.Pixels()
	if a.colorType == surface.ColorTypeBGRA8888 {
		icolor.SwapRB(pix)
	}
	r := image.Rect(0, 0, a.width, a.height)
	if a.alphaType == surface.AlphaTypePremul {
		return &image.RGBA{Pix: pix, Stride: a.width * 4, Rect: r}
	}
	return &image.NRGBA{Pix: pix, Stride: a.width * 4, Rect: r}
}

// straightSRGB returns the pixels as unpremultiplied sRGB RGBA.
func (a *Asset) straightSRGB() *image.NRGBA {
	pix := a.Pixels()
	if a.colorType == surface.ColorTypeBGRA8888 {
		icolor.SwapRB(pix)
	}
	if a.alphaType == surface.AlphaTypePremul {
		icolor.Unpremultiply(pix)
	}
	icolor.Convert(pix, a.colorSpace, ColorSpaceSRGB, false)
	return &image.NRGBA{Pix: pix, Stride: a.width * 4, Rect: image.Rect(0, 0, a.width, a.height)}
}

// Encode encodes the asset in format f with the default codec. Pixels are
// converted to sRGB first.
func (a *Asset) Encode(f codec.Format, quality int) ([]byte, error) {
	return a.EncodeWith(codec.Default(), f, quality)
}

// EncodeWith encodes the asset with c.
func (a *Asset) EncodeWith(c codec.Codec, f codec.Format, quality int) ([]byte, error) {
	if a.IsEmpty() {
		return nil, ErrEmpty
	}
	var buf bytes.Buffer
	if err := c.Encode(&buf, a.straightSRGB(), f, quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save encodes the asset into the file at path. FormatUnknown picks the
// format from the file extension.
func (a *Asset) Save(path string, f codec.Format) error {
	if f == codec.FormatUnknown {
		var ok bool
		if f, ok = codec.ParseFormat(filepath.Ext(path)); !ok {
			return fmt.Errorf("%w: %q", codec.ErrUnknownFormat, filepath.Ext(path))
		}
	}
	data, err := a.Encode(f, 100)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
