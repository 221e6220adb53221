package filter

import "image"

// Filter modifies a premultiplied RGBA layer in place.
type Filter interface {
	Apply(layer *image.RGBA)
}

// Chain applies filters in order.
type Chain []Filter

// Apply runs every filter of the chain on layer.
func (c Chain) Apply(layer *image.RGBA) {
	for _, f := range c {
		f.Apply(layer)
	}
}

func clampUint8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
