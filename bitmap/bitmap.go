// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package bitmap turns encoded or raw pixels into image assets.
//
// Every entry point runs the same fixed sequence of stages:
//
//	obtain → crop → flip → resize → premultiply → colorspace → wrap
//
// A stage is skipped when it would not change the pixels. The functions
// are stateless and safe for concurrent use. They never return errors:
// a failed ingestion yields an empty asset whose Err method reports the
// reason.
package bitmap

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/gogpu/canvas/asset"
	icolor "github.com/gogpu/canvas/internal/color"
	"github.com/gogpu/canvas/internal/logging"
	"github.com/gogpu/canvas/internal/parallel"
	"github.com/gogpu/canvas/surface"
)

// MaxPixels bounds the size of any buffer the pipeline allocates.
const MaxPixels = 1 << 28

// Errors recorded on failed assets.
var (
	// ErrNoInput is recorded when the input is nil or empty.
	ErrNoInput = errors.New("bitmap: no input")

	// ErrEmptyCrop is recorded when the source rectangle does not overlap
	// the source.
	ErrEmptyCrop = errors.New("bitmap: source rectangle is empty")

	// ErrTooLarge is recorded when an output buffer would exceed MaxPixels.
	ErrTooLarge = errors.New("bitmap: image too large")
)

// frame is the buffer passed between stages. Pixels are RGBA byte order
// and tightly packed; img is an NRGBA view regardless of alpha so that
// byte-moving stages copy pixels verbatim.
type frame struct {
	img   *image.NRGBA
	alpha surface.AlphaType
	cs    asset.ColorSpace
}

func (f *frame) size() (int, int) {
	return f.img.Rect.Dx(), f.img.Rect.Dy()
}

type stage struct {
	name string
	run  func(f *frame, o *Options) (bool, error)
}

var stages = [...]stage{
	{"crop", crop},
	{"flip", flip},
	{"resize", resize},
	{"premultiply", premultiply},
	{"colorspace", convert},
}

// FromBytes ingests raw RGBA pixels of the given size. The source alpha
// representation and colour space come from opts.
func FromBytes(data []byte, width, height int, opts *Options) *asset.Asset {
	o := orDefault(opts)
	if len(data) == 0 {
		return fail("bytes", ErrNoInput)
	}
	if !fits(width, height) {
		return fail("bytes", fmt.Errorf("%w: %dx%d", surface.ErrInvalidSize, width, height))
	}
	if len(data) != width*height*4 {
		return fail("bytes", fmt.Errorf("%w: %d bytes for %dx%d", asset.ErrPixelCount, len(data), width, height))
	}
	alpha := surface.AlphaTypeUnpremul
	if o.SourcePremultiplied {
		alpha = surface.AlphaTypePremul
	}
	return run("bytes", o, &frame{
		img:   nrgba(data, width, height, true),
		alpha: alpha,
		cs:    o.SourceColorSpace,
	})
}

// FromEncoded decodes data with opts.Codec and ingests the result.
func FromEncoded(data []byte, opts *Options) *asset.Asset {
	o := orDefault(opts)
	if len(data) == 0 {
		return fail("encoded", ErrNoInput)
	}
	img, err := o.codec().Decode(data)
	if err != nil {
		return fail("encoded", err)
	}
	a := asset.FromImage(img)
	if a.IsEmpty() {
		return fail("encoded", a.Err())
	}
	f := fromAsset(a)
	f.cs = o.SourceColorSpace
	return run("encoded", o, f)
}

// FromAsset re-ingests an existing asset without decoding it again.
func FromAsset(a *asset.Asset, opts *Options) *asset.Asset {
	o := orDefault(opts)
	if a.IsEmpty() {
		err := ErrNoInput
		if a != nil && a.Err() != nil {
			err = a.Err()
		}
		return fail("asset", err)
	}
	return run("asset", o, fromAsset(a))
}

// FromImage ingests a decoded platform image.
func FromImage(img image.Image, opts *Options) *asset.Asset {
	o := orDefault(opts)
	if img == nil {
		return fail("image", ErrNoInput)
	}
	a := asset.FromImage(img)
	if a.IsEmpty() {
		return fail("image", a.Err())
	}
	return run("image", o, fromAsset(a))
}

// FromImageData ingests canvas image data.
func FromImageData(d *asset.ImageData, opts *Options) *asset.Asset {
	o := orDefault(opts)
	if d == nil || len(d.Data) == 0 {
		return fail("imagedata", ErrNoInput)
	}
	if !d.Valid() {
		return fail("imagedata", fmt.Errorf("%w: %d bytes for %dx%d", asset.ErrPixelCount, len(d.Data), d.Width, d.Height))
	}
	return run("imagedata", o, &frame{
		img:   nrgba(d.Data, d.Width, d.Height, true),
		alpha: surface.AlphaTypeUnpremul,
		cs:    asset.ColorSpaceSRGB,
	})
}

func orDefault(o *Options) *Options {
	if o == nil {
		return &Options{}
	}
	return o
}

func fromAsset(a *asset.Asset) *frame {
	pix := a.Pixels()
	if a.Info().ColorType == surface.ColorTypeBGRA8888 {
		icolor.SwapRB(pix)
	}
	return &frame{
		img:   nrgba(pix, a.Width(), a.Height(), false),
		alpha: a.Info().AlphaType,
		cs:    a.ColorSpace(),
	}
}

// nrgba wraps pix, copying it first when it belongs to the caller.
func nrgba(pix []byte, w, h int, copyPix bool) *image.NRGBA {
	if copyPix {
		pix = append([]byte(nil), pix...)
	}
	return &image.NRGBA{Pix: pix, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}
}

func run(source string, o *Options, f *frame) *asset.Asset {
	log := logging.Logger()
	for _, s := range stages {
		applied, err := s.run(f, o)
		if err != nil {
			return fail(source, fmt.Errorf("%s: %w", s.name, err))
		}
		if !applied {
			log.Debug("bitmap: stage skipped", "source", source, "stage", s.name)
		}
	}
	w, h := f.size()
	info := surface.ImageInfo{
		Width:     w,
		Height:    h,
		ColorType: surface.ColorTypeRGBA8888,
		AlphaType: f.alpha,
	}
	a, err := asset.New(f.img.Pix, info, f.cs)
	if err != nil {
		return fail(source, err)
	}
	return a
}

func fail(source string, err error) *asset.Asset {
	logging.Logger().Warn("bitmap: ingestion failed", "source", source, "err", err)
	return asset.Failed(err)
}

func crop(f *frame, o *Options) (bool, error) {
	if o.SourceRect == nil {
		return false, nil
	}
	x0, y0, x1, y1, ok := o.SourceRect.bounds()
	if !ok {
		return false, fmt.Errorf("%w: %+v", ErrEmptyCrop, *o.SourceRect)
	}
	r := image.Rect(x0, y0, x1, y1).Intersect(f.img.Rect)
	if r.Empty() {
		return false, fmt.Errorf("%w: %+v", ErrEmptyCrop, *o.SourceRect)
	}
	if r == f.img.Rect {
		return false, nil
	}
	f.img = imaging.Crop(f.img, r)
	return true, nil
}

func flip(f *frame, o *Options) (bool, error) {
	if !o.FlipY || f.img.Rect.Dy() < 2 {
		return false, nil
	}
	f.img = imaging.FlipV(f.img)
	return true, nil
}

func resize(f *frame, o *Options) (bool, error) {
	w, h := f.size()
	tw, th := o.targetSize(w, h)
	if tw == w && th == h {
		return false, nil
	}
	if !fits(tw, th) {
		return false, fmt.Errorf("%w: %dx%d", ErrTooLarge, tw, th)
	}
	if o.ResizeQuality == ResizeNearest {
		f.img = imaging.Resize(f.img, tw, th, imaging.NearestNeighbor)
		return true, nil
	}

	// Smooth filters blend neighbours, which is only correct on
	// premultiplied colour.
	straight := f.alpha == surface.AlphaTypeUnpremul
	pix := f.img.Pix
	if straight {
		pix = append([]byte(nil), pix...)
		parallel.Pixels(pix, w*4, icolor.Premultiply)
	}
	src := &image.RGBA{Pix: pix, Stride: w * 4, Rect: f.img.Rect}
	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	o.ResizeQuality.interpolator().Scale(dst, dst.Rect, src, src.Rect, draw.Src, nil)
	if straight {
		parallel.Pixels(dst.Pix, dst.Stride, icolor.Unpremultiply)
	}
	f.img = nrgba(dst.Pix, tw, th, false)
	return true, nil
}

func premultiply(f *frame, o *Options) (bool, error) {
	switch {
	case o.PremultiplyAlpha == On && f.alpha == surface.AlphaTypeUnpremul:
		parallel.Pixels(f.img.Pix, f.img.Stride, icolor.Premultiply)
		f.alpha = surface.AlphaTypePremul
	case o.PremultiplyAlpha == Off && f.alpha == surface.AlphaTypePremul:
		parallel.Pixels(f.img.Pix, f.img.Stride, icolor.Unpremultiply)
		f.alpha = surface.AlphaTypeUnpremul
	default:
		return false, nil
	}
	return true, nil
}

func convert(f *frame, o *Options) (bool, error) {
	var to asset.ColorSpace
	switch o.ColorSpaceConversion {
	case Off:
		return false, nil
	case On:
		to = o.WorkingColorSpace
	default:
		to = asset.ColorSpaceSRGB
	}
	if to == f.cs {
		return false, nil
	}
	from, premul := f.cs, f.alpha == surface.AlphaTypePremul
	parallel.Pixels(f.img.Pix, f.img.Stride, func(band []byte) {
		icolor.Convert(band, from, to, premul)
	})
	f.cs = to
	return true, nil
}
