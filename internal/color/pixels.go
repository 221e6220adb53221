package color

// Premultiply multiplies the colour channels of a straight-alpha RGBA
// buffer by alpha, in place.
func Premultiply(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		a := uint32(pix[i+3])
		if a == 255 {
			continue
		}
		pix[i+0] = uint8((uint32(pix[i+0])*a + 127) / 255)
		pix[i+1] = uint8((uint32(pix[i+1])*a + 127) / 255)
		pix[i+2] = uint8((uint32(pix[i+2])*a + 127) / 255)
	}
}

// Unpremultiply divides the colour channels of a premultiplied RGBA buffer
// by alpha, in place. Fully transparent pixels become transparent black.
func Unpremultiply(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		a := uint32(pix[i+3])
		switch a {
		case 255:
			continue
		case 0:
			pix[i+0], pix[i+1], pix[i+2] = 0, 0, 0
			continue
		}
		pix[i+0] = unpremul(pix[i+0], a)
		pix[i+1] = unpremul(pix[i+1], a)
		pix[i+2] = unpremul(pix[i+2], a)
	}
}

func unpremul(c uint8, a uint32) uint8 {
	v := (uint32(c)*255 + a/2) / a
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Convert re-encodes the RGB channels of an RGBA buffer from one colour
// space to another, in place. Alpha is never gamma-encoded and is left
// alone. Premultiplied buffers are unpremultiplied around the conversion
// because the transfer functions apply to straight colour values.
func Convert(pix []byte, from, to ColorSpace, premultiplied bool) {
	if from == to {
		return
	}
	var table *[256]uint8
	switch {
	case from == SRGB && to == LinearSRGB:
		table = &srgbToLinear8
	case from == LinearSRGB && to == SRGB:
		table = &linear8ToSRGB
	default:
		return
	}
	if premultiplied {
		Unpremultiply(pix)
	}
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = table[pix[i+0]]
		pix[i+1] = table[pix[i+1]]
		pix[i+2] = table[pix[i+2]]
	}
	if premultiplied {
		Premultiply(pix)
	}
}

// SwapRB exchanges the red and blue channels in place, converting between
// RGBA and BGRA byte orders.
func SwapRB(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0], pix[i+2] = pix[i+2], pix[i+0]
	}
}
