package filter

import (
	"image"
	"sync"
)

// Blur is the CSS blur() function: a Gaussian blur with standard deviation
// Sigma in device pixels.
type Blur struct {
	Sigma float64
}

// Apply blurs layer in place with a horizontal then vertical pass.
// Pixels outside the layer count as transparent.
func (f Blur) Apply(layer *image.RGBA) {
	if f.Sigma <= 0 || layer == nil {
		return
	}
	b := layer.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}
	kernel := CachedGaussianKernel(f.Sigma)

	tmp := getFloats(w * h * 4)
	defer putFloats(tmp)

	half := len(kernel) / 2
	for y := range h {
		row := layer.Pix[y*layer.Stride : y*layer.Stride+w*4]
		for x := range w {
			var acc [4]float32
			for k, wt := range kernel {
				sx := x + k - half
				if sx < 0 || sx >= w {
					continue
				}
				p := row[sx*4 : sx*4+4]
				acc[0] += float32(p[0]) * wt
				acc[1] += float32(p[1]) * wt
				acc[2] += float32(p[2]) * wt
				acc[3] += float32(p[3]) * wt
			}
			copy(tmp[(y*w+x)*4:], acc[:])
		}
	}
	for y := range h {
		row := layer.Pix[y*layer.Stride:]
		for x := range w {
			var acc [4]float32
			for k, wt := range kernel {
				sy := y + k - half
				if sy < 0 || sy >= h {
					continue
				}
				i := (sy*w + x) * 4
				acc[0] += tmp[i] * wt
				acc[1] += tmp[i+1] * wt
				acc[2] += tmp[i+2] * wt
				acc[3] += tmp[i+3] * wt
			}
			a := clampUint8(acc[3])
			p := row[x*4 : x*4+4]
			// keep the premultiplied invariant c <= a after rounding
			p[0] = min(clampUint8(acc[0]), a)
			p[1] = min(clampUint8(acc[1]), a)
			p[2] = min(clampUint8(acc[2]), a)
			p[3] = a
		}
	}
}

// blurAlpha blurs a single channel w*h plane in place.
func blurAlpha(plane []float32, w, h int, sigma float64) {
	kernel := CachedGaussianKernel(sigma)
	half := len(kernel) / 2
	tmp := getFloats(w * h)
	defer putFloats(tmp)

	for y := range h {
		for x := range w {
			var acc float32
			for k, wt := range kernel {
				if sx := x + k - half; sx >= 0 && sx < w {
					acc += plane[y*w+sx] * wt
				}
			}
			tmp[y*w+x] = acc
		}
	}
	for y := range h {
		for x := range w {
			var acc float32
			for k, wt := range kernel {
				if sy := y + k - half; sy >= 0 && sy < h {
					acc += tmp[sy*w+x] * wt
				}
			}
			plane[y*w+x] = acc
		}
	}
}

var floatPool sync.Pool

func getFloats(n int) []float32 {
	if p, ok := floatPool.Get().(*[]float32); ok && cap(*p) >= n {
		buf := (*p)[:n]
		clear(buf)
		return buf
	}
	return make([]float32, n)
}

func putFloats(buf []float32) {
	floatPool.Put(&buf)
}
