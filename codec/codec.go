// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package codec decodes and encodes raster image formats for the image
// pipeline and image assets.
//
// The default codec sniffs content with github.com/h2non/filetype and
// decodes PNG, JPEG, GIF, WebP, BMP and TIFF through the standard library
// and golang.org/x/image. It encodes PNG, JPEG, GIF, BMP and TIFF.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// Format is an encoded image format.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatPNG
	FormatJPEG
	FormatGIF
	FormatWebP
	FormatBMP
	FormatTIFF
)

var formatNames = [...]string{
	FormatUnknown: "unknown",
	FormatPNG:     "png",
	FormatJPEG:    "jpeg",
	FormatGIF:     "gif",
	FormatWebP:    "webp",
	FormatBMP:     "bmp",
	FormatTIFF:    "tiff",
}

// String returns the lower-case format name.
func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return "unknown"
}

// Extension returns the usual file extension, with the dot.
func (f Format) Extension() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatTIFF:
		return ".tif"
	case FormatUnknown:
		return ""
	default:
		return "." + f.String()
	}
}

// ParseFormat parses a format name, extension or MIME type such as "png",
// ".jpg" or "image/webp".
func ParseFormat(name string) (Format, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimPrefix(n, "image/")
	n = strings.TrimPrefix(n, ".")
	switch n {
	case "png":
		return FormatPNG, true
	case "jpg", "jpeg":
		return FormatJPEG, true
	case "gif":
		return FormatGIF, true
	case "webp":
		return FormatWebP, true
	case "bmp":
		return FormatBMP, true
	case "tif", "tiff":
		return FormatTIFF, true
	}
	return FormatUnknown, false
}

// Sniff identifies the format of encoded data from its magic bytes.
func Sniff(data []byte) Format {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return FormatUnknown
	}
	f, _ := ParseFormat(kind.Extension)
	return f
}

// Errors.
var (
	// ErrEmptyInput is returned when there is nothing to decode.
	ErrEmptyInput = errors.New("codec: empty input")

	// ErrUnknownFormat is returned for data no decoder recognizes.
	ErrUnknownFormat = errors.New("codec: unknown image format")

	// ErrUnsupportedEncoding is returned for formats that can only be
	// decoded.
	ErrUnsupportedEncoding = errors.New("codec: encoding not supported")
)

// Codec decodes and encodes images.
type Codec interface {
	// Decode decodes the first frame of an encoded image.
	Decode(data []byte) (image.Image, error)

	// Encode writes img in format f. quality applies to lossy formats and
	// ranges 0-100.
	Encode(w io.Writer, img image.Image, f Format, quality int) error
}

// Default returns the built-in codec.
func Default() Codec {
	return stdCodec{}
}

type stdCodec struct{}

func (stdCodec) Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	r := bytes.NewReader(data)
	var (
		img image.Image
		err error
	)
	switch Sniff(data) {
	case FormatPNG:
		img, err = png.Decode(r)
	case FormatJPEG:
		img, err = jpeg.Decode(r)
	case FormatGIF:
		img, err = gif.Decode(r)
	case FormatWebP:
		img, err = webp.Decode(r)
	case FormatBMP:
		img, err = bmp.Decode(r)
	case FormatTIFF:
		img, err = tiff.Decode(r)
	default:
		return nil, ErrUnknownFormat
	}
	if err != nil {
		return nil, fmt.Errorf("codec: decode: %w", err)
	}
	return img, nil
}

func (stdCodec) Encode(w io.Writer, img image.Image, f Format, quality int) error {
	quality = max(0, min(100, quality))
	var err error
	switch f {
	case FormatPNG:
		enc := png.Encoder{CompressionLevel: png.DefaultCompression}
		if quality < 50 {
			enc.CompressionLevel = png.BestSpeed
		}
		err = enc.Encode(w, img)
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: max(quality, 1)})
	case FormatGIF:
		err = gif.Encode(w, img, nil)
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedEncoding, f)
	}
	if err != nil {
		return fmt.Errorf("codec: encode %s: %w", f, err)
	}
	return nil
}
