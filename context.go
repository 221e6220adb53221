package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gogpu/canvas/asset"
	"github.com/gogpu/canvas/codec"
	"github.com/gogpu/canvas/surface"
)

// ErrClosed is returned by operations on a closed Context.
var ErrClosed = errors.New("canvas: context closed")

// Context is a 2D rendering context: a drawing state machine over a
// surface it owns exclusively.
//
// Context is NOT safe for concurrent use. Share it through a Handle.
type Context struct {
	surface   surface.Surface
	path      *surface.Path
	state     State
	stack     []State
	device    Device
	fontColor color.NRGBA
	opts      contextOptions
	closed    bool
}

// Ensure Context implements io.Closer
var _ io.Closer = (*Context)(nil)

// NewContext creates a context for device. Raster devices get an
// ImageSurface; GPU devices render into the framebuffer configured with
// WithGPU.
func NewContext(device Device, opts ...ContextOption) (*Context, error) {
	if err := device.Validate(); err != nil {
		return nil, err
	}
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	c := &Context{
		path:      surface.NewPath(),
		state:     NewState(device, options.direction),
		stack:     make([]State, 0, 8),
		device:    device,
		fontColor: options.fontColor,
		opts:      options,
	}
	s, err := c.newSurface(device)
	if err != nil {
		return nil, fmt.Errorf("canvas: create surface: %w", err)
	}
	c.surface = s
	info := s.Info()
	Logger().Info("canvas: context created",
		"surface", fmt.Sprintf("%T", s), "width", info.Width, "height", info.Height)
	return c, nil
}

// newSurface builds a surface for d.
func (c *Context) newSurface(d Device) (surface.Surface, error) {
	w, h := d.PixelSize()
	opts := surface.Options{Width: w, Height: h}
	switch {
	case c.opts.factory != nil:
		return c.opts.factory(opts)
	case d.NonGPU:
		return surface.NewSurfaceByName(surface.BackendRaster, opts)
	case c.opts.gpu == nil || c.opts.gpu.Platform == nil:
		// Without a framebuffer the gpu backend declines and the next
		// registered backend by priority serves the context.
		Logger().Warn("canvas: GPU device without platform")
		return surface.NewSurface(opts)
	default:
		return c.resizeGPU(w, h)
	}
}

// resizeGPU prepares the host framebuffer and builds a GPU surface on it,
// falling back by registry priority when the host backend cannot be built.
// The framebuffer binding belongs to one surface generation, so it is
// queried again on every call.
func (c *Context) resizeGPU(w, h int) (surface.Surface, error) {
	cfg := c.opts.gpu
	cfg.Platform.ClearFramebuffer()
	cfg.Platform.Viewport(w, h)
	fbo, err := cfg.Platform.FramebufferBinding()
	if err != nil {
		return nil, fmt.Errorf("canvas: framebuffer binding: %w", err)
	}
	Logger().Debug("canvas: framebuffer bound", "fbo", fbo, "width", w, "height", h)
	s, err := surface.NewSurface(surface.Options{
		Width:  w,
		Height: h,
		GPU: &surface.GPUTarget{
			Width:       w,
			Height:      h,
			Framebuffer: fbo,
			SampleCount: c.device.SampleCount,
			Format:      cfg.Format,
			Device:      cfg.Device,
		},
		GPUBackend: cfg.Backend,
	})
	if err != nil {
		return nil, err
	}
	if _, ok := s.(*surface.GPUSurface); !ok {
		Logger().Warn("canvas: GPU backend failed, using fallback surface", "surface", fmt.Sprintf("%T", s))
	}
	return s, nil
}

// Close releases the surface. Close is idempotent.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.stack = nil
	return c.surface.Close()
}

// Device returns the device descriptor.
func (c *Context) Device() Device { return c.device }

// Width returns the surface width in pixels.
func (c *Context) Width() int { return c.surface.Info().Width }

// Height returns the surface height in pixels.
func (c *Context) Height() int { return c.surface.Info().Height }

// Surface returns the surface the context draws into.
func (c *Context) Surface() surface.Surface { return c.surface }

// State returns a copy of the current drawing state.
func (c *Context) State() State { return c.state.Clone() }

// StateDepth returns the number of saved states.
func (c *Context) StateDepth() int { return len(c.stack) }

// FontColor returns the host text colour.
func (c *Context) FontColor() color.NRGBA { return c.fontColor }

// Save pushes a copy of the drawing state.
func (c *Context) Save() {
	c.stack = append(c.stack, c.state.Clone())
}

// Restore pops the last saved drawing state. Restore without a matching
// Save does nothing.
func (c *Context) Restore() {
	n := len(c.stack)
	if n == 0 {
		return
	}
	c.state = c.stack[n-1]
	c.stack[n-1] = State{}
	c.stack = c.stack[:n-1]
}

// ResetState replaces the drawing state with a fresh one, keeping the text
// direction. Saved states are left alone.
func (c *Context) ResetState() {
	c.state = NewState(c.device, c.state.Direction)
}

// Clear clears the surface to transparent black and flushes.
func (c *Context) Clear() {
	if c.closed {
		return
	}
	c.surface.Clear(color.Transparent)
	c.Flush()
}

// Flush completes pending drawing work.
func (c *Context) Flush() {
	if c.closed {
		return
	}
	if err := c.surface.Flush(); err != nil {
		Logger().Warn("canvas: flush failed", "err", err)
	}
}

// Resize rebuilds the surface at width x height, keeping density, ppi,
// alpha and backing of the device. The drawing state and path survive.
func (c *Context) Resize(width, height float32) error {
	if c.closed {
		return ErrClosed
	}
	d := c.device.withSize(width, height)
	if err := d.Validate(); err != nil {
		return err
	}
	s, err := c.newSurface(d)
	if err != nil {
		return fmt.Errorf("canvas: resize: %w", err)
	}
	if err := c.surface.Close(); err != nil {
		Logger().Warn("canvas: closing old surface", "err", err)
	}
	c.surface = s
	c.device = d
	info := s.Info()
	Logger().Debug("canvas: surface rebuilt", "width", info.Width, "height", info.Height)
	return nil
}

// ReadPixelsRaw flushes and copies the surface in its native pixel layout,
// Info().MinRowBytes() per row.
func (c *Context) ReadPixelsRaw() []byte {
	if c.closed {
		return nil
	}
	c.Flush()
	info := c.surface.Info()
	buf := make([]byte, info.ByteSize())
	if err := c.surface.ReadPixels(info, buf, info.MinRowBytes(), 0, 0); err != nil {
		Logger().Warn("canvas: read pixels failed", "err", err)
		return nil
	}
	return buf
}

// ReadPixelsAsBitmap flushes and copies the surface into a premultiplied
// RGBA image.
func (c *Context) ReadPixelsAsBitmap() *image.RGBA {
	if c.closed {
		return nil
	}
	c.Flush()
	info := c.surface.Info()
	info.ColorType = surface.ColorTypeRGBA8888
	info.AlphaType = surface.AlphaTypePremul
	img := image.NewRGBA(image.Rect(0, 0, info.Width, info.Height))
	if err := c.surface.ReadPixels(info, img.Pix, img.Stride, 0, 0); err != nil {
		Logger().Warn("canvas: read pixels failed", "err", err)
		return nil
	}
	return img
}

// ReadPixelsAsImage flushes and copies the surface into an image asset.
// A closed context yields the empty asset.
func (c *Context) ReadPixelsAsImage() *asset.Asset {
	if c.closed {
		return asset.Failed(ErrClosed)
	}
	raw := c.ReadPixelsRaw()
	if raw == nil {
		return asset.Empty()
	}
	a, err := asset.New(raw, c.surface.Info(), asset.ColorSpaceSRGB)
	if err != nil {
		return asset.Failed(err)
	}
	return a
}

// SnapshotImage flushes and returns an immutable snapshot of the surface.
func (c *Context) SnapshotImage() *surface.Image {
	if c.closed {
		return nil
	}
	c.Flush()
	return c.surface.Snapshot()
}

// EncodeSnapshotPNG encodes a snapshot of the surface as PNG. ok is false
// when encoding fails.
func (c *Context) EncodeSnapshotPNG() (data []byte, ok bool) {
	snap := c.SnapshotImage()
	if snap == nil {
		return nil, false
	}
	data, err := asset.FromImage(snap).Encode(codec.FormatPNG, 100)
	if err != nil {
		Logger().Warn("canvas: encode snapshot failed", "err", err)
		return nil, false
	}
	return data, true
}

// DrawOntoSurface draws the surface contents onto target at the origin
// with high quality filtering.
func (c *Context) DrawOntoSurface(target surface.Surface) {
	if c.closed || target == nil {
		return
	}
	c.Flush()
	c.surface.Draw(target, surface.Pt(0, 0), surface.FilterHigh, nil)
}
