// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package bitmap

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/draw"

	"github.com/gogpu/canvas/asset"
	"github.com/gogpu/canvas/codec"
)

// Tristate is a policy that can be left unset, forced on or forced off.
type Tristate uint8

const (
	// Unset leaves the decision to the default behaviour of the stage.
	Unset Tristate = iota
	// On forces the stage.
	On
	// Off disables the stage.
	Off
)

// String returns the recipe keyword of the policy.
func (t Tristate) String() string {
	switch t {
	case On:
		return "on"
	case Off:
		return "off"
	default:
		return "default"
	}
}

// UnmarshalText accepts "default", "on"/"off", "true"/"false" and the
// createImageBitmap keywords "premultiply" and "none".
func (t *Tristate) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "default", "unset":
		*t = Unset
	case "on", "true", "premultiply", "convert":
		*t = On
	case "off", "false", "none":
		*t = Off
	default:
		return fmt.Errorf("bitmap: invalid policy %q", text)
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t Tristate) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ResizeQuality selects the resampling filter.
type ResizeQuality uint8

const (
	// ResizeLow is an approximate bilinear filter.
	ResizeLow ResizeQuality = iota
	// ResizeMedium is a bilinear filter.
	ResizeMedium
	// ResizeHigh is a Catmull-Rom bicubic filter.
	ResizeHigh
	// ResizeNearest point-samples without blending.
	ResizeNearest
)

// String returns the createImageBitmap keyword of the quality.
func (q ResizeQuality) String() string {
	switch q {
	case ResizeMedium:
		return "medium"
	case ResizeHigh:
		return "high"
	case ResizeNearest:
		return "pixelated"
	default:
		return "low"
	}
}

// UnmarshalText accepts "pixelated" (or "nearest"), "low", "medium" and
// "high".
func (q *ResizeQuality) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "low":
		*q = ResizeLow
	case "medium":
		*q = ResizeMedium
	case "high":
		*q = ResizeHigh
	case "pixelated", "nearest":
		*q = ResizeNearest
	default:
		return fmt.Errorf("bitmap: invalid resize quality %q", text)
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (q ResizeQuality) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

// interpolator returns the x/image/draw kernel for the smoothing tiers.
func (q ResizeQuality) interpolator() draw.Interpolator {
	switch q {
	case ResizeMedium:
		return draw.BiLinear
	case ResizeHigh:
		return draw.CatmullRom
	default:
		return draw.ApproxBiLinear
	}
}

// Rect is a source rectangle in pixels. A negative width or height
// extends the rectangle left or up from X, Y.
type Rect struct {
	X      float64 `yaml:"x" toml:"x"`
	Y      float64 `yaml:"y" toml:"y"`
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// bounds normalizes r and rounds its edges to whole pixels.
func (r Rect) bounds() (x0, y0, x1, y1 int, ok bool) {
	for _, v := range [...]float64{r.X, r.Y, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, 0, 0, false
		}
	}
	x, y, w, h := r.X, r.Y, r.Width, r.Height
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	return int(math.Round(x)), int(math.Round(y)), int(math.Round(x + w)), int(math.Round(y + h)), true
}

// Options is an ingestion recipe. The zero value keeps the source as is.
type Options struct {
	// SourceRect crops the source before any other stage. Out-of-range
	// rectangles are clamped to the source; an empty intersection fails.
	SourceRect *Rect

	// FlipY mirrors the rows of the cropped source.
	FlipY bool

	// PremultiplyAlpha: Unset keeps the source representation, On
	// premultiplies and Off unpremultiplies.
	PremultiplyAlpha Tristate

	// ColorSpaceConversion: Unset converts to sRGB, On converts to
	// WorkingColorSpace and Off keeps the source colour space.
	ColorSpaceConversion Tristate

	ResizeQuality ResizeQuality

	// ResizeWidth and ResizeHeight are the output size. Zero means
	// absent; when only one is set the other keeps the aspect ratio.
	ResizeWidth  int
	ResizeHeight int

	// SourcePremultiplied marks raw input of FromBytes as premultiplied.
	SourcePremultiplied bool

	// SourceColorSpace is the colour space of raw and encoded input.
	SourceColorSpace asset.ColorSpace

	// WorkingColorSpace is the target of ColorSpaceConversion On.
	WorkingColorSpace asset.ColorSpace

	// Codec decodes FromEncoded input. nil means codec.Default().
	Codec codec.Codec
}

func (o *Options) codec() codec.Codec {
	if o.Codec == nil {
		return codec.Default()
	}
	return o.Codec
}

// targetSize resolves the output size for a w x h source.
func (o *Options) targetSize(w, h int) (int, int) {
	tw, th := o.ResizeWidth, o.ResizeHeight
	switch {
	case tw <= 0 && th <= 0:
		return w, h
	case tw <= 0:
		tw = scaledSide(w, th, h)
	case th <= 0:
		th = scaledSide(h, tw, w)
	}
	return tw, th
}

// scaledSide returns side*num/den rounded, at least 1. Results beyond
// MaxPixels are pinned just past it so the size check rejects them.
func scaledSide(side, num, den int) int {
	v := math.Round(float64(side) * float64(num) / float64(den))
	if !(v <= MaxPixels) {
		return MaxPixels + 1
	}
	return max(1, int(v))
}

// fits reports whether a w x h buffer is non-empty and within MaxPixels.
func fits(w, h int) bool {
	return w > 0 && h > 0 && w <= MaxPixels/h
}
