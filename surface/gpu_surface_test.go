// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

type mockProvider struct {
	format gputypes.TextureFormat
}

func (m *mockProvider) Device() gpucontext.Device             { return &mockDevice{} }
func (m *mockProvider) Queue() gpucontext.Queue               { return nil }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return nil }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return m.format }

// countingBackend records calls and delegates rendering to software.
type countingBackend struct {
	GPUBackend
	fills     int
	readbacks int
	closed    bool
}

func (b *countingBackend) Fill(path *Path, paint *Paint) {
	b.fills++
	b.GPUBackend.Fill(path, paint)
}

func (b *countingBackend) Readback() (*image.RGBA, error) {
	b.readbacks++
	return b.GPUBackend.Readback()
}

func (b *countingBackend) Close() error {
	b.closed = true
	return b.GPUBackend.Close()
}

func TestNewGPUSurfaceValidation(t *testing.T) {
	if _, err := NewGPUSurface(GPUTarget{Width: 1, Height: 1}, nil); !errors.Is(err, ErrNilBackend) {
		t.Errorf("nil backend error = %v, want ErrNilBackend", err)
	}
	target := GPUTarget{Width: 0, Height: 1}
	if _, err := NewGPUSurface(target, NewSoftwareBackend(target)); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("zero width error = %v, want ErrInvalidSize", err)
	}
}

func TestGPUSurfaceColorType(t *testing.T) {
	tests := []struct {
		name   string
		target GPUTarget
		want   ColorType
	}{
		{"default", GPUTarget{Width: 1, Height: 1}, ColorTypeRGBA8888},
		{"bgra format", GPUTarget{Width: 1, Height: 1, Format: gputypes.TextureFormatBGRA8Unorm}, ColorTypeBGRA8888},
		{"device format", GPUTarget{Width: 1, Height: 1, Device: &mockProvider{format: gputypes.TextureFormatBGRA8Unorm}}, ColorTypeBGRA8888},
		{"explicit wins", GPUTarget{Width: 1, Height: 1, Format: gputypes.TextureFormatRGBA8Unorm, Device: &mockProvider{format: gputypes.TextureFormatBGRA8Unorm}}, ColorTypeRGBA8888},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewGPUSurface(tt.target, NewSoftwareBackend(tt.target))
			if err != nil {
				t.Fatal(err)
			}
			if got := s.Info().ColorType; got != tt.want {
				t.Errorf("ColorType = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGPUSurfaceDelegatesAndCachesSnapshot(t *testing.T) {
	target := GPUTarget{Width: 4, Height: 4, Framebuffer: 7}
	b := &countingBackend{GPUBackend: NewSoftwareBackend(target)}
	s, err := NewGPUSurface(target, b)
	if err != nil {
		t.Fatal(err)
	}
	s.Fill(rectPath(0, 0, 4, 4), solidPaint(color.RGBA{255, 0, 0, 255}))
	if b.fills != 1 {
		t.Errorf("backend fills = %d, want 1", b.fills)
	}

	first := s.Snapshot()
	if s.Snapshot() != first || b.readbacks != 1 {
		t.Errorf("repeated Snapshot() read back %d times, want 1", b.readbacks)
	}
	if got := first.At(1, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("snapshot pixel = %v, want red", got)
	}

	s.Fill(rectPath(0, 0, 1, 1), nil)
	s.Snapshot()
	if b.readbacks != 2 {
		t.Errorf("Snapshot() after drawing read back %d times, want 2", b.readbacks)
	}

	if err := s.Close(); err != nil || !b.closed {
		t.Errorf("Close() error = %v, backend closed = %v", err, b.closed)
	}
	if s.Backend() != nil {
		t.Error("Backend() after Close is not nil")
	}
}

func TestGPUFactoryFallsBackToSoftware(t *testing.T) {
	s, err := NewSurfaceByName(BackendGPU, Options{GPU: &GPUTarget{Width: 2, Height: 2}})
	if err != nil {
		t.Fatalf("NewSurfaceByName(gpu) error = %v", err)
	}
	g, ok := s.(*GPUSurface)
	if !ok {
		t.Fatalf("surface = %T, want *GPUSurface", s)
	}
	if _, ok := g.Backend().(*softwareBackend); !ok {
		t.Errorf("backend = %T, want software", g.Backend())
	}
}

func TestGPUFactoryUsesHostBackend(t *testing.T) {
	var got GPUTarget
	factory := func(target GPUTarget) (GPUBackend, error) {
		got = target
		return NewSoftwareBackend(target), nil
	}
	_, err := NewSurfaceByName(BackendGPU, Options{
		Width: 3, Height: 2,
		GPU:        &GPUTarget{Framebuffer: 42, SampleCount: 4},
		GPUBackend: factory,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.Framebuffer != 42 || got.SampleCount != 4 || got.Width != 3 || got.Height != 2 {
		t.Errorf("factory target = %+v", got)
	}
}

// deferredBackend queues fills until Flush, like a GPU command buffer.
type deferredBackend struct {
	GPUBackend
	pending []func()
	flushes int
}

func (b *deferredBackend) Fill(path *Path, paint *Paint) {
	b.pending = append(b.pending, func() { b.GPUBackend.Fill(path, paint) })
}

func (b *deferredBackend) Flush() error {
	b.flushes++
	for _, op := range b.pending {
		op()
	}
	b.pending = nil
	return b.GPUBackend.Flush()
}

func TestGPUSurfaceFlushesBeforeReadback(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	tests := []struct {
		name string
		read func(s *GPUSurface) (color.Color, error)
	}{
		{"Draw", func(s *GPUSurface) (color.Color, error) {
			dst := NewImageSurface(2, 2)
			s.Draw(dst, Point{}, FilterHigh, nil)
			return dst.Image().At(1, 1), nil
		}},
		{"Snapshot", func(s *GPUSurface) (color.Color, error) {
			return s.Snapshot().At(1, 1), nil
		}},
		{"ReadPixels", func(s *GPUSurface) (color.Color, error) {
			buf := make([]byte, 2*2*4)
			info := ImageInfo{Width: 2, Height: 2, ColorType: ColorTypeRGBA8888, AlphaType: AlphaTypePremul}
			if err := s.ReadPixels(info, buf, 8, 0, 0); err != nil {
				return nil, err
			}
			return color.RGBA{buf[12], buf[13], buf[14], buf[15]}, nil
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := GPUTarget{Width: 2, Height: 2}
			b := &deferredBackend{GPUBackend: NewSoftwareBackend(target)}
			s, err := NewGPUSurface(target, b)
			if err != nil {
				t.Fatal(err)
			}
			s.Fill(rectPath(0, 0, 2, 2), solidPaint(red))
			got, err := tt.read(s)
			if err != nil {
				t.Fatalf("read error = %v", err)
			}
			if got != red {
				t.Errorf("pixel = %v, want %v", got, red)
			}
			if b.flushes == 0 {
				t.Error("backend was not flushed before readback")
			}
		})
	}
}

func TestGPUSurfaceConcurrentSnapshots(t *testing.T) {
	target := GPUTarget{Width: 2, Height: 2}
	b := &countingBackend{GPUBackend: NewSoftwareBackend(target)}
	s, err := NewGPUSurface(target, b)
	if err != nil {
		t.Fatal(err)
	}
	s.Fill(rectPath(0, 0, 2, 2), solidPaint(color.RGBA{0, 0, 255, 255}))

	snaps := make([]*Image, 8)
	var wg sync.WaitGroup
	for i := range snaps {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snaps[i] = s.Snapshot()
		}()
	}
	wg.Wait()
	for i, snap := range snaps {
		if snap != snaps[0] {
			t.Errorf("snapshot %d differs from the cached one", i)
		}
	}
	if b.readbacks != 1 {
		t.Errorf("backend readbacks = %d, want 1", b.readbacks)
	}
}
