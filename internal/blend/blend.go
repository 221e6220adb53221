// Package blend implements the canvas compositing operators and blend modes
// on premultiplied RGBA8 pixels.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// Op is a compositing operation as named by globalCompositeOperation.
type Op uint8

const (
	SourceOver Op = iota // S + D*(1-Sa) [default]
	SourceIn             // S*Da
	SourceOut            // S*(1-Da)
	SourceAtop           // S*Da + D*(1-Sa)
	DestinationOver      // S*(1-Da) + D
	DestinationIn        // D*Sa
	DestinationOut       // D*(1-Sa)
	DestinationAtop      // S*(1-Da) + D*Sa
	Lighter              // min(S + D, 1)
	Copy                 // S
	Xor                  // S*(1-Da) + D*(1-Sa)
	Multiply
	Screen
	Overlay
	Darken
	Lighten
	ColorDodge
	ColorBurn
	HardLight
	SoftLight
	Difference
	Exclusion
	Hue
	Saturation
	Color
	Luminosity

	opCount
)

var opNames = [opCount]string{
	SourceOver:      "source-over",
	SourceIn:        "source-in",
	SourceOut:       "source-out",
	SourceAtop:      "source-atop",
	DestinationOver: "destination-over",
	DestinationIn:   "destination-in",
	DestinationOut:  "destination-out",
	DestinationAtop: "destination-atop",
	Lighter:         "lighter",
	Copy:            "copy",
	Xor:             "xor",
	Multiply:        "multiply",
	Screen:          "screen",
	Overlay:         "overlay",
	Darken:          "darken",
	Lighten:         "lighten",
	ColorDodge:      "color-dodge",
	ColorBurn:       "color-burn",
	HardLight:       "hard-light",
	SoftLight:       "soft-light",
	Difference:      "difference",
	Exclusion:       "exclusion",
	Hue:             "hue",
	Saturation:      "saturation",
	Color:           "color",
	Luminosity:      "luminosity",
}

// String returns the CSS keyword of the operation.
func (op Op) String() string {
	if op < opCount {
		return opNames[op]
	}
	return "unknown"
}

// Parse looks up an operation by its CSS keyword.
func Parse(name string) (Op, bool) {
	for i, n := range opNames {
		if n == name {
			return Op(i), true
		}
	}
	return SourceOver, false
}

// Unbounded reports whether the operation changes destination pixels that
// the source does not cover. Such operations must be applied over the whole
// clip area with a transparent source outside the shape.
func (op Op) Unbounded() bool {
	switch op {
	case SourceIn, SourceOut, DestinationIn, DestinationAtop, Copy:
		return true
	}
	return false
}

// Func blends one premultiplied source pixel onto one premultiplied
// destination pixel.
type Func func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

var funcs = [opCount]Func{
	SourceOver:      sourceOver,
	SourceIn:        sourceIn,
	SourceOut:       sourceOut,
	SourceAtop:      sourceAtop,
	DestinationOver: destinationOver,
	DestinationIn:   destinationIn,
	DestinationOut:  destinationOut,
	DestinationAtop: destinationAtop,
	Lighter:         lighter,
	Copy:            source,
	Xor:             xor,
	Multiply:        multiply,
	Screen:          screen,
	Overlay:         overlay,
	Darken:          darken,
	Lighten:         lighten,
	ColorDodge:      colorDodge,
	ColorBurn:       colorBurn,
	HardLight:       hardLight,
	SoftLight:       softLight,
	Difference:      difference,
	Exclusion:       exclusion,
	Hue:             hue,
	Saturation:      saturation,
	Color:           colorMode,
	Luminosity:      luminosity,
}

// For returns the blend function for op. Unknown operations fall back to
// source-over.
func For(op Op) Func {
	if op < opCount {
		return funcs[op]
	}
	return sourceOver
}

// Span composites a row of premultiplied source pixels onto dst, weighting
// each result by the matching coverage byte. A nil coverage slice means full
// coverage. dst and src must have the same length.
func Span(f Func, dst, src, coverage []byte) {
	for i, j := 0, 0; i+3 < len(dst); i, j = i+4, j+1 {
		r, g, b, a := f(src[i], src[i+1], src[i+2], src[i+3], dst[i], dst[i+1], dst[i+2], dst[i+3])
		c := byte(255)
		if coverage != nil {
			c = coverage[j]
		}
		if c == 255 {
			dst[i], dst[i+1], dst[i+2], dst[i+3] = r, g, b, a
			continue
		}
		dst[i] = lerp(dst[i], r, c)
		dst[i+1] = lerp(dst[i+1], g, c)
		dst[i+2] = lerp(dst[i+2], b, c)
		dst[i+3] = lerp(dst[i+3], a, c)
	}
}

// lerp moves from d towards v by t/255.
func lerp(d, v, t byte) byte {
	return byte((uint32(d)*uint32(255-t) + uint32(v)*uint32(t) + 127) / 255)
}
