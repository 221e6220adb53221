// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

func rectPath(x, y, w, h float64) *Path {
	p := NewPath()
	p.Rectangle(x, y, w, h)
	return p
}

func pixel(s *ImageSurface, x, y int) color.RGBA {
	return s.Image().RGBAAt(x, y)
}

func solidPaint(c color.Color) *Paint {
	p := DefaultPaint()
	p.Color = c
	return p
}

func TestNewImageSurfaceClampsSize(t *testing.T) {
	s := NewImageSurface(0, -5)
	info := s.Info()
	if info.Width != 1 || info.Height != 1 {
		t.Errorf("Info() = %dx%d, want 1x1", info.Width, info.Height)
	}
	if info.ColorType != ColorTypeRGBA8888 || info.AlphaType != AlphaTypePremul {
		t.Errorf("Info() = %v/%v, want rgba8888/premul", info.ColorType, info.AlphaType)
	}
}

func TestImageSurfaceFill(t *testing.T) {
	s := NewImageSurface(10, 10)
	s.Fill(rectPath(2, 2, 4, 4), solidPaint(color.RGBA{255, 0, 0, 255}))

	if got := pixel(s, 3, 3); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("inside = %v, want red", got)
	}
	if got := pixel(s, 8, 8); got != (color.RGBA{}) {
		t.Errorf("outside = %v, want transparent", got)
	}
}

func TestImageSurfaceFillAlpha(t *testing.T) {
	s := NewImageSurface(4, 4)
	p := solidPaint(color.RGBA{0, 0, 255, 255})
	p.Alpha = 0.5
	s.Fill(rectPath(0, 0, 4, 4), p)
	got := pixel(s, 1, 1)
	if got.A < 126 || got.A > 129 || got.B != got.A {
		t.Errorf("pixel = %v, want half transparent blue", got)
	}
}

func TestImageSurfaceStroke(t *testing.T) {
	s := NewImageSurface(10, 10)
	p := NewPath()
	p.MoveTo(1, 5)
	p.LineTo(9, 5)
	paint := solidPaint(color.Black)
	paint.LineWidth = 2
	s.Stroke(p, paint)

	for _, y := range []int{4, 5} {
		if got := pixel(s, 5, y); got.A != 255 {
			t.Errorf("pixel (5,%d) alpha = %d, want 255", y, got.A)
		}
	}
	for _, y := range []int{2, 7} {
		if got := pixel(s, 5, y); got.A != 0 {
			t.Errorf("pixel (5,%d) alpha = %d, want 0", y, got.A)
		}
	}
}

func TestImageSurfaceCopyIsUnbounded(t *testing.T) {
	s := NewImageSurface(8, 8)
	s.Clear(color.RGBA{0, 255, 0, 255})
	p := solidPaint(color.RGBA{255, 0, 0, 255})
	p.Op = CompositeCopy
	s.Fill(rectPath(0, 0, 2, 2), p)

	if got := pixel(s, 1, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("inside = %v, want red", got)
	}
	if got := pixel(s, 6, 6); got != (color.RGBA{}) {
		t.Errorf("outside = %v, want cleared", got)
	}
}

func TestImageSurfaceDestinationOutClears(t *testing.T) {
	s := NewImageSurface(8, 8)
	s.Clear(color.White)
	p := solidPaint(color.Black)
	p.Op = CompositeDestinationOut
	s.Fill(rectPath(0, 0, 4, 8), p)

	if got := pixel(s, 1, 1); got.A != 0 {
		t.Errorf("cleared pixel = %v, want transparent", got)
	}
	if got := pixel(s, 6, 1); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("kept pixel = %v, want white", got)
	}
}

func TestImageSurfaceShadow(t *testing.T) {
	s := NewImageSurface(10, 10)
	p := solidPaint(color.RGBA{255, 0, 0, 255})
	p.Shadow = Shadow{OffsetX: 4, OffsetY: 4, Color: color.RGBA{0, 0, 0, 255}}
	s.Fill(rectPath(0, 0, 3, 3), p)

	if got := pixel(s, 1, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("shape pixel = %v, want red", got)
	}
	if got := pixel(s, 5, 5); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("shadow pixel = %v, want black", got)
	}
}

type invert struct{}

func (invert) Apply(layer *image.RGBA) {
	for i := 0; i < len(layer.Pix); i += 4 {
		a := layer.Pix[i+3]
		layer.Pix[i], layer.Pix[i+1], layer.Pix[i+2] = a-layer.Pix[i], a-layer.Pix[i+1], a-layer.Pix[i+2]
	}
}

func TestImageSurfaceFilters(t *testing.T) {
	s := NewImageSurface(4, 4)
	p := solidPaint(color.RGBA{255, 0, 0, 255})
	p.Filters = []ImageFilter{invert{}}
	s.Fill(rectPath(0, 0, 4, 4), p)
	if got := pixel(s, 1, 1); got != (color.RGBA{0, 255, 255, 255}) {
		t.Errorf("filtered pixel = %v, want cyan", got)
	}
}

func TestImageSurfacePattern(t *testing.T) {
	s := NewImageSurface(4, 1)
	p := DefaultPaint()
	p.Pattern = SolidPattern{Color: color.RGBA{0, 0, 255, 255}}
	s.Fill(rectPath(0, 0, 4, 1), p)
	if got := pixel(s, 2, 0); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("pattern pixel = %v, want blue", got)
	}
}

func TestSnapshotCopyOnWrite(t *testing.T) {
	s := NewImageSurface(4, 4)
	s.Clear(color.White)

	a := s.Snapshot()
	if b := s.Snapshot(); a != b {
		t.Error("Snapshot() without drawing returned a new image")
	}
	s.Clear(color.Black)
	if got := a.At(0, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("old snapshot changed to %v after drawing", got)
	}
	if got := s.Snapshot().At(0, 0); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("new snapshot = %v, want black", got)
	}
}

func TestReadPixelsConversions(t *testing.T) {
	s := NewImageSurface(2, 1)
	s.Clear(color.RGBA{100, 50, 0, 128})

	tests := []struct {
		name string
		info ImageInfo
		want []byte
	}{
		{"premul rgba", ImageInfo{Width: 1, Height: 1, ColorType: ColorTypeRGBA8888}, []byte{100, 50, 0, 128}},
		{"premul bgra", ImageInfo{Width: 1, Height: 1, ColorType: ColorTypeBGRA8888}, []byte{0, 50, 100, 128}},
		{"unpremul", ImageInfo{Width: 1, Height: 1, AlphaType: AlphaTypeUnpremul}, []byte{199, 100, 0, 128}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]byte, 4)
			if err := s.ReadPixels(tt.info, dst, 4, 0, 0); err != nil {
				t.Fatalf("ReadPixels() error = %v", err)
			}
			for i := range dst {
				if dst[i] != tt.want[i] {
					t.Fatalf("ReadPixels() = %v, want %v", dst, tt.want)
				}
			}
		})
	}
}

func TestReadPixelsOutsideIsTransparent(t *testing.T) {
	s := NewImageSurface(2, 2)
	s.Clear(color.White)
	dst := make([]byte, 3*3*4)
	if err := s.ReadPixels(ImageInfo{Width: 3, Height: 3}, dst, 12, 1, 1); err != nil {
		t.Fatalf("ReadPixels() error = %v", err)
	}
	if dst[3] != 255 {
		t.Errorf("pixel (0,0) alpha = %d, want 255", dst[3])
	}
	if dst[7] != 0 || dst[12*2+3] != 0 {
		t.Error("pixels outside the surface are not transparent")
	}
}

func TestReadPixelsBufferTooSmall(t *testing.T) {
	s := NewImageSurface(4, 4)
	err := s.ReadPixels(ImageInfo{Width: 4, Height: 4}, make([]byte, 10), 16, 0, 0)
	if !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("ReadPixels() error = %v, want ErrBufferTooSmall", err)
	}
}

func TestDrawImageExact(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	src.SetRGBA(1, 1, color.RGBA{0, 0, 255, 255})

	s := NewImageSurface(4, 4)
	s.DrawImage(src, Pt(2, 2), nil)
	if got := pixel(s, 2, 2); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("pixel (2,2) = %v, want red", got)
	}
	if got := pixel(s, 3, 3); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("pixel (3,3) = %v, want blue", got)
	}
	if got := pixel(s, 0, 0); got.A != 0 {
		t.Errorf("pixel (0,0) = %v, want transparent", got)
	}
}

func TestDrawImageScaledNearest(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{10, 20, 30, 255})
	s := NewImageSurface(4, 4)
	s.DrawImage(src, Pt(0, 0), &DrawImageOptions{DstWidth: 4, DstHeight: 4, Filter: FilterNone})
	for y := range 4 {
		for x := range 4 {
			if got := pixel(s, x, y); got != (color.RGBA{10, 20, 30, 255}) {
				t.Fatalf("pixel (%d,%d) = %v", x, y, got)
			}
		}
	}
}

func TestDrawOntoSurface(t *testing.T) {
	a := NewImageSurface(3, 3)
	a.Clear(color.RGBA{0, 128, 0, 255})
	b := NewImageSurface(3, 3)
	a.Draw(b, Pt(0, 0), FilterHigh, &Paint{Alpha: 1, Op: CompositeCopy})
	if got := pixel(b, 2, 2); got != (color.RGBA{0, 128, 0, 255}) {
		t.Errorf("target pixel = %v, want green", got)
	}
}

func TestDrawSelf(t *testing.T) {
	s := NewImageSurface(4, 2)
	s.Fill(rectPath(0, 0, 2, 2), solidPaint(color.White))
	s.Draw(s, Pt(2, 0), FilterNone, nil)
	if got := pixel(s, 3, 1); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("self draw pixel = %v, want white", got)
	}
}

func TestImageSurfaceClose(t *testing.T) {
	s := NewImageSurface(2, 2)
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := s.Flush(); !errors.Is(err, ErrClosed) {
		t.Errorf("Flush() after Close = %v, want ErrClosed", err)
	}
	if s.Snapshot() != nil {
		t.Error("Snapshot() after Close returned an image")
	}
	s.Fill(rectPath(0, 0, 1, 1), nil)
}

func TestFillArc(t *testing.T) {
	s := NewImageSurface(20, 20)
	p := NewPath()
	p.Arc(10, 10, 5, 0, 2*math.Pi, false)
	s.Fill(p, nil)
	if got := pixel(s, 10, 10); got.A != 255 {
		t.Errorf("centre alpha = %d, want 255", got.A)
	}
	if got := pixel(s, 1, 1); got.A != 0 {
		t.Errorf("corner alpha = %d, want 0", got.A)
	}
}

func BenchmarkImageSurfaceFill(b *testing.B) {
	s := NewImageSurface(256, 256)
	p := NewPath()
	p.Arc(128, 128, 100, 0, 2*math.Pi, false)
	paint := DefaultPaint()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Fill(p, paint)
	}
}
