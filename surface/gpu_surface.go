// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/canvas/internal/logging"
)

// GPUBackend is implemented by the host's GPU rasterizer. It renders into
// the framebuffer named by the GPUTarget it was created for.
type GPUBackend interface {
	Clear(c color.Color)
	Fill(path *Path, paint *Paint)
	Stroke(path *Path, paint *Paint)
	DrawImage(img image.Image, at Point, opts *DrawImageOptions)

	// Flush submits pending work and waits for it to complete.
	Flush() error

	// Readback returns the framebuffer contents as premultiplied RGBA.
	Readback() (*image.RGBA, error)

	Close() error
}

// GPUTarget identifies the framebuffer a GPU surface renders into.
type GPUTarget struct {
	Width, Height int

	// Framebuffer is the host framebuffer object bound when the surface
	// was built. It is re-queried on every resize.
	Framebuffer uint32

	SampleCount int

	// Format is the pixel format of the framebuffer. Undefined falls back
	// to the device surface format, then to RGBA8Unorm.
	Format gputypes.TextureFormat

	// Device is the host GPU device, if any.
	Device gpucontext.DeviceProvider
}

// GPUBackendFactory creates a backend for a framebuffer target.
type GPUBackendFactory func(target GPUTarget) (GPUBackend, error)

// Platform is the host's graphics context: the framebuffer operations a
// GPU surface rebuild needs.
type Platform interface {
	// ClearFramebuffer clears the bound framebuffer to transparent black.
	ClearFramebuffer()

	// Viewport sets the viewport to width x height pixels.
	Viewport(width, height int)

	// FramebufferBinding returns the currently bound framebuffer object.
	FramebufferBinding() (uint32, error)
}

// GPUSurface wraps a host GPUBackend.
type GPUSurface struct {
	target  GPUTarget
	backend GPUBackend
	info    ImageInfo
	closed  bool

	// mu serializes flush and readback between concurrent readers and
	// guards snap.
	mu   sync.Mutex
	snap *Image
}

// NewGPUSurface creates a surface for target rendered by backend.
func NewGPUSurface(target GPUTarget, backend GPUBackend) (*GPUSurface, error) {
	if backend == nil {
		return nil, ErrNilBackend
	}
	if target.Width <= 0 || target.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, target.Width, target.Height)
	}
	return &GPUSurface{
		target:  target,
		backend: backend,
		info: ImageInfo{
			Width:     target.Width,
			Height:    target.Height,
			ColorType: colorTypeFor(target.Format, target.Device),
			AlphaType: AlphaTypePremul,
		},
	}, nil
}

// colorTypeFor maps the framebuffer format to a pixel byte order.
func colorTypeFor(format gputypes.TextureFormat, dev gpucontext.DeviceProvider) ColorType {
	if format == gputypes.TextureFormatUndefined && dev != nil {
		format = dev.SurfaceFormat()
	}
	switch format {
	case gputypes.TextureFormatBGRA8Unorm:
		return ColorTypeBGRA8888
	default:
		return ColorTypeRGBA8888
	}
}

// Target returns the framebuffer target the surface was built for.
func (s *GPUSurface) Target() GPUTarget { return s.target }

// Backend returns the backend, or nil once the surface is closed.
func (s *GPUSurface) Backend() GPUBackend {
	if s.closed {
		return nil
	}
	return s.backend
}

// Info implements Surface.
func (s *GPUSurface) Info() ImageInfo { return s.info }

// Clear implements Surface.
func (s *GPUSurface) Clear(c color.Color) {
	if s.closed {
		return
	}
	s.invalidate()
	s.backend.Clear(c)
}

// Fill implements Surface.
func (s *GPUSurface) Fill(path *Path, paint *Paint) {
	if s.closed || path.IsEmpty() {
		return
	}
	s.invalidate()
	s.backend.Fill(path, orDefault(paint))
}

// Stroke implements Surface.
func (s *GPUSurface) Stroke(path *Path, paint *Paint) {
	if s.closed || path.IsEmpty() {
		return
	}
	s.invalidate()
	s.backend.Stroke(path, orDefault(paint))
}

// DrawImage implements Surface.
func (s *GPUSurface) DrawImage(img image.Image, at Point, opts *DrawImageOptions) {
	if s.closed || img == nil {
		return
	}
	s.invalidate()
	s.backend.DrawImage(img, at, opts)
}

// invalidate drops the cached snapshot after a draw.
func (s *GPUSurface) invalidate() {
	s.mu.Lock()
	s.snap = nil
	s.mu.Unlock()
}

// readback completes pending work and reads the framebuffer. s.mu must be
// held.
func (s *GPUSurface) readback() (*image.RGBA, error) {
	if err := s.backend.Flush(); err != nil {
		return nil, fmt.Errorf("surface: flush: %w", err)
	}
	img, err := s.backend.Readback()
	if err != nil {
		return nil, fmt.Errorf("surface: readback: %w", err)
	}
	return img, nil
}

// Flush implements Surface.
func (s *GPUSurface) Flush() error {
	if s.closed {
		return ErrClosed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend.Flush()
}

// ReadPixels implements Surface. It flushes pending work and performs a
// GPU readback.
func (s *GPUSurface) ReadPixels(dstInfo ImageInfo, dst []byte, rowBytes, x, y int) error {
	if s.closed {
		return ErrClosed
	}
	s.mu.Lock()
	img, err := s.readback()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return readPixels(img, dstInfo, dst, rowBytes, x, y)
}

// Snapshot implements Surface. It flushes and performs a GPU readback
// unless nothing was drawn since the previous snapshot.
func (s *GPUSurface) Snapshot() *Image {
	if s.closed {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap != nil {
		return s.snap
	}
	img, err := s.readback()
	if err != nil {
		logging.Logger().Warn("surface: gpu readback failed", "err", err)
		return nil
	}
	s.snap = &Image{rgba: img}
	return s.snap
}

// Draw implements Surface.
func (s *GPUSurface) Draw(onto Surface, at Point, quality Filter, paint *Paint) {
	snap := s.Snapshot()
	if snap == nil || onto == nil {
		return
	}
	onto.DrawImage(snap, at, &DrawImageOptions{Filter: quality, Paint: paint})
}

// Close implements Surface.
func (s *GPUSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.invalidate()
	return s.backend.Close()
}

// softwareBackend renders a GPU target on the CPU. It stands in when the
// host registers no GPU rasterizer.
type softwareBackend struct {
	s *ImageSurface
}

// NewSoftwareBackend returns a CPU GPUBackend for target.
func NewSoftwareBackend(target GPUTarget) GPUBackend {
	return &softwareBackend{s: NewImageSurface(target.Width, target.Height)}
}

func (b *softwareBackend) Clear(c color.Color)             { b.s.Clear(c) }
func (b *softwareBackend) Fill(path *Path, paint *Paint)   { b.s.Fill(path, paint) }
func (b *softwareBackend) Stroke(path *Path, paint *Paint) { b.s.Stroke(path, paint) }
func (b *softwareBackend) Flush() error                    { return b.s.Flush() }
func (b *softwareBackend) Close() error                    { return b.s.Close() }

func (b *softwareBackend) DrawImage(img image.Image, at Point, opts *DrawImageOptions) {
	b.s.DrawImage(img, at, opts)
}

func (b *softwareBackend) Readback() (*image.RGBA, error) {
	if b.s.closed {
		return nil, ErrClosed
	}
	return NewImage(b.s.img).rgba, nil
}

var _ Surface = (*GPUSurface)(nil)
