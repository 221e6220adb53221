package parallel

// MinPixels is the buffer size, in pixels, below which Pixels runs on the
// calling goroutine.
const MinPixels = 1 << 16

// Pixels runs fn over pix, a packed buffer of 4-byte pixels with rowBytes
// bytes per row, split into bands of whole rows. Bands never share a row,
// so fn may modify its band freely.
func Pixels(pix []byte, rowBytes int, fn func(band []byte)) {
	PixelsOn(Shared(), pix, rowBytes, fn)
}

// PixelsOn is Pixels on pool p.
func PixelsOn(p *Pool, pix []byte, rowBytes int, fn func(band []byte)) {
	if rowBytes <= 0 || len(pix) < rowBytes || len(pix)/4 < MinPixels || p.Workers() < 2 {
		fn(pix)
		return
	}
	rows := len(pix) / rowBytes
	n := min(p.Workers()*2, rows)
	per := (rows + n - 1) / n
	work := make([]func(), 0, n)
	for r := 0; r < rows; r += per {
		start := r * rowBytes
		end := min(r+per, rows) * rowBytes
		if r+per >= rows {
			end = len(pix)
		}
		band := pix[start:end]
		work = append(work, func() { fn(band) })
	}
	p.Run(work)
}
