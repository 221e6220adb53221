package color

import "math"

// sRGBToLinearLUT maps an sRGB byte to a linear value in [0, 1].
var sRGBToLinearLUT [256]float32

// linearToSRGBLUT maps a linear value quantized to 12 bits to an sRGB byte.
// 4096 entries keep the dark end of the curve accurate for 8-bit output.
var linearToSRGBLUT [4096]uint8

// srgbToLinear8 and linear8ToSRGB are the byte-to-byte tables used when
// converting whole buffers.
var (
	srgbToLinear8 [256]uint8
	linear8ToSRGB [256]uint8
)

func init() {
	for i := range 256 {
		sRGBToLinearLUT[i] = float32(decode(float64(i) / 255))
	}
	for i := range 4096 {
		linearToSRGBLUT[i] = toByte(encode(float64(i) / 4095))
	}
	for i := range 256 {
		srgbToLinear8[i] = toByte(decode(float64(i) / 255))
		linear8ToSRGB[i] = toByte(encode(float64(i) / 255))
	}
}

// decode is the sRGB EOTF.
func decode(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// encode is the sRGB OETF.
func encode(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1.0/2.4) - 0.055
}

func toByte(v float64) uint8 {
	n := int(v*255 + 0.5)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

// SRGBToLinearFast converts an sRGB byte to a linear float32.
//
//	r := SRGBToLinearFast(128) // ~0.2159, not 0.5
func SRGBToLinearFast(s uint8) float32 {
	return sRGBToLinearLUT[s]
}

// LinearToSRGBFast converts a linear float32 to an sRGB byte.
// Input outside [0, 1] is clamped.
func LinearToSRGBFast(l float32) uint8 {
	if l < 0 {
		l = 0
	}
	if l > 1 {
		l = 1
	}
	index := int(l*4095.0 + 0.5)
	if index > 4095 {
		index = 4095
	}
	return linearToSRGBLUT[index]
}

// SRGBToLinearSlow is the math.Pow reference for SRGBToLinearFast.
func SRGBToLinearSlow(s uint8) float32 {
	return float32(decode(float64(s) / 255))
}

// LinearToSRGBSlow is the math.Pow reference for LinearToSRGBFast.
func LinearToSRGBSlow(l float32) uint8 {
	lf := math.Min(math.Max(float64(l), 0), 1)
	return toByte(encode(lf))
}
