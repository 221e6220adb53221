package filter

import (
	"image"
	"math"

	"github.com/gogpu/canvas/internal/blend"
)

// Shadow describes a canvas shadow or a CSS drop-shadow(): the alpha of a
// layer, offset by (DX, DY), blurred with standard deviation Sigma and
// tinted with a straight-alpha RGBA colour.
type Shadow struct {
	DX, DY float64
	Sigma  float64
	Color  [4]uint8
}

// Visible reports whether the shadow would paint anything. A shadow with a
// transparent colour, or with no offset and no blur, is skipped.
func (s Shadow) Visible() bool {
	if s.Color[3] == 0 {
		return false
	}
	return s.DX != 0 || s.DY != 0 || s.Sigma > 0
}

// Layer renders the shadow cast by layer into a new premultiplied layer of
// the same bounds.
func (s Shadow) Layer(layer *image.RGBA) *image.RGBA {
	b := layer.Bounds()
	out := image.NewRGBA(b)
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return out
	}

	dx := int(math.Round(s.DX))
	dy := int(math.Round(s.DY))
	plane := getFloats(w * h)
	defer putFloats(plane)
	for y := range h {
		sy := y - dy
		if sy < 0 || sy >= h {
			continue
		}
		for x := range w {
			sx := x - dx
			if sx < 0 || sx >= w {
				continue
			}
			plane[y*w+x] = float32(layer.Pix[sy*layer.Stride+sx*4+3])
		}
	}
	if s.Sigma > 0 {
		blurAlpha(plane, w, h, s.Sigma)
	}

	ca := float32(s.Color[3]) / 255
	for y := range h {
		row := out.Pix[y*out.Stride:]
		for x := range w {
			a := plane[y*w+x] / 255 * ca
			p := row[x*4 : x*4+4]
			p[0] = clampUint8(float32(s.Color[0]) * a)
			p[1] = clampUint8(float32(s.Color[1]) * a)
			p[2] = clampUint8(float32(s.Color[2]) * a)
			p[3] = clampUint8(255 * a)
		}
	}
	return out
}

// DropShadow is the CSS drop-shadow() filter: the shadow is composited
// beneath the layer.
type DropShadow struct {
	Shadow
}

// Apply draws the shadow under layer in place.
func (f DropShadow) Apply(layer *image.RGBA) {
	if layer == nil || !f.Visible() {
		return
	}
	sh := f.Layer(layer)
	over := blend.For(blend.DestinationOver)
	w := layer.Bounds().Dx() * 4
	for y := range layer.Bounds().Dy() {
		blend.Span(over, layer.Pix[y*layer.Stride:y*layer.Stride+w], sh.Pix[y*sh.Stride:y*sh.Stride+w], nil)
	}
}
