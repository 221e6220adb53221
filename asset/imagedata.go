// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package asset

import (
	"fmt"
	"image"

	"github.com/gogpu/canvas/surface"
)

// maxImageDataPixels bounds ImageData allocations.
const maxImageDataPixels = 1 << 28

// ImageData is a canvas pixel buffer: unpremultiplied sRGB RGBA, row
// major, four bytes per pixel with no row padding.
type ImageData struct {
	Width  int
	Height int
	Data   []byte
}

// NewImageData allocates transparent black image data.
func NewImageData(width, height int) (*ImageData, error) {
	if width <= 0 || height <= 0 || width*height > maxImageDataPixels {
		return nil, fmt.Errorf("%w: %dx%d", surface.ErrInvalidSize, width, height)
	}
	return &ImageData{
		Width:  width,
		Height: height,
		Data:   make([]byte, width*height*4),
	}, nil
}

// Info describes the layout of Data.
func (d *ImageData) Info() surface.ImageInfo {
	return surface.ImageInfo{
		Width:     d.Width,
		Height:    d.Height,
		ColorType: surface.ColorTypeRGBA8888,
		AlphaType: surface.AlphaTypeUnpremul,
	}
}

// Valid reports whether Data matches the dimensions.
func (d *ImageData) Valid() bool {
	return d != nil && d.Width > 0 && d.Height > 0 && len(d.Data) == d.Width*d.Height*4
}

// NRGBA returns an image view sharing Data.
func (d *ImageData) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    d.Data,
		Stride: d.Width * 4,
		Rect:   image.Rect(0, 0, d.Width, d.Height),
	}
}
