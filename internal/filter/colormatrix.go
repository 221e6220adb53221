package filter

import (
	"image"
	"math"
)

// ColorMatrix is a 4x5 row-major transform applied to straight-alpha
// channels in the 0-255 range:
//
//	[R']   [m0  m1  m2  m3  m4 ]   [R]
//	[G'] = [m5  m6  m7  m8  m9 ] * [G]
//	[B']   [m10 m11 m12 m13 m14]   [B]
//	[A']   [m15 m16 m17 m18 m19]   [A]
//	                               [1]
type ColorMatrix [20]float32

// Identity leaves pixels unchanged.
var Identity = ColorMatrix{
	1, 0, 0, 0, 0,
	0, 1, 0, 0, 0,
	0, 0, 1, 0, 0,
	0, 0, 0, 1, 0,
}

// Brightness is the CSS brightness() function.
func Brightness(amount float32) ColorMatrix {
	return ColorMatrix{
		amount, 0, 0, 0, 0,
		0, amount, 0, 0, 0,
		0, 0, amount, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Contrast is the CSS contrast() function.
func Contrast(amount float32) ColorMatrix {
	off := 127.5 * (1 - amount)
	return ColorMatrix{
		amount, 0, 0, 0, off,
		0, amount, 0, 0, off,
		0, 0, amount, 0, off,
		0, 0, 0, 1, 0,
	}
}

// Saturate is the CSS saturate() function.
func Saturate(s float32) ColorMatrix {
	return ColorMatrix{
		0.213 + 0.787*s, 0.715 - 0.715*s, 0.072 - 0.072*s, 0, 0,
		0.213 - 0.213*s, 0.715 + 0.285*s, 0.072 - 0.072*s, 0, 0,
		0.213 - 0.213*s, 0.715 - 0.715*s, 0.072 + 0.928*s, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Grayscale is the CSS grayscale() function; amount is clamped to [0, 1].
func Grayscale(amount float32) ColorMatrix {
	return Saturate(1 - unitClamp(amount))
}

// Sepia is the CSS sepia() function; amount is clamped to [0, 1].
func Sepia(amount float32) ColorMatrix {
	k := 1 - unitClamp(amount)
	return ColorMatrix{
		0.393 + 0.607*k, 0.769 - 0.769*k, 0.189 - 0.189*k, 0, 0,
		0.349 - 0.349*k, 0.686 + 0.314*k, 0.168 - 0.168*k, 0, 0,
		0.272 - 0.272*k, 0.534 - 0.534*k, 0.131 + 0.869*k, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Invert is the CSS invert() function; amount is clamped to [0, 1].
func Invert(amount float32) ColorMatrix {
	a := unitClamp(amount)
	s := 1 - 2*a
	return ColorMatrix{
		s, 0, 0, 0, 255 * a,
		0, s, 0, 0, 255 * a,
		0, 0, s, 0, 255 * a,
		0, 0, 0, 1, 0,
	}
}

// Opacity is the CSS opacity() function; amount is clamped to [0, 1].
func Opacity(amount float32) ColorMatrix {
	m := Identity
	m[18] = unitClamp(amount)
	return m
}

// HueRotate is the CSS hue-rotate() function, angle in degrees.
func HueRotate(degrees float64) ColorMatrix {
	rad := degrees * math.Pi / 180
	c := float32(math.Cos(rad))
	s := float32(math.Sin(rad))
	return ColorMatrix{
		0.213 + c*0.787 - s*0.213, 0.715 - c*0.715 - s*0.715, 0.072 - c*0.072 + s*0.928, 0, 0,
		0.213 - c*0.213 + s*0.143, 0.715 + c*0.285 + s*0.140, 0.072 - c*0.072 - s*0.283, 0, 0,
		0.213 - c*0.213 - s*0.787, 0.715 - c*0.715 + s*0.715, 0.072 + c*0.928 + s*0.072, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Apply transforms every pixel of layer. Colours are unpremultiplied for
// the transform and premultiplied again afterwards.
func (m ColorMatrix) Apply(layer *image.RGBA) {
	if layer == nil {
		return
	}
	b := layer.Bounds()
	for y := range b.Dy() {
		row := layer.Pix[y*layer.Stride : y*layer.Stride+b.Dx()*4]
		for i := 0; i < len(row); i += 4 {
			a := float32(row[i+3])
			var r, g, bl float32
			if a > 0 {
				r = float32(row[i]) * 255 / a
				g = float32(row[i+1]) * 255 / a
				bl = float32(row[i+2]) * 255 / a
			}
			nr := m[0]*r + m[1]*g + m[2]*bl + m[3]*a + m[4]
			ng := m[5]*r + m[6]*g + m[7]*bl + m[8]*a + m[9]
			nb := m[10]*r + m[11]*g + m[12]*bl + m[13]*a + m[14]
			na := clampUint8(m[15]*r + m[16]*g + m[17]*bl + m[18]*a + m[19])

			k := float32(na) / 255
			row[i] = clampUint8(clampf(nr) * k)
			row[i+1] = clampUint8(clampf(ng) * k)
			row[i+2] = clampUint8(clampf(nb) * k)
			row[i+3] = na
		}
	}
}

// Then returns the matrix that applies m first and next second.
func (m ColorMatrix) Then(next ColorMatrix) ColorMatrix {
	var out ColorMatrix
	for row := range 4 {
		for col := range 4 {
			var sum float32
			for k := range 4 {
				sum += next[row*5+k] * m[k*5+col]
			}
			out[row*5+col] = sum
		}
		out[row*5+4] = next[row*5]*m[4] + next[row*5+1]*m[9] +
			next[row*5+2]*m[14] + next[row*5+3]*m[19] + next[row*5+4]
	}
	return out
}

func clampf(v float32) float32 {
	return max(0, min(255, v))
}

func unitClamp(v float32) float32 {
	return max(0, min(1, v))
}
