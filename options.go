package canvas

import (
	"image/color"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/canvas/surface"
)

// ContextOption configures a Context during creation.
//
// Example:
//
//	// CPU rendering
//	ctx, err := canvas.NewContext(canvas.NewNonGPUDevice(800, 600, 1, 160))
//
//	// Rendering into a host framebuffer
//	ctx, err := canvas.NewContext(device, canvas.WithGPU(canvas.GPUConfig{
//	    Platform: platform,
//	    Backend:  newBackend,
//	}))
type ContextOption func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	direction Direction
	factory   surface.Factory
	gpu       *GPUConfig
	fontColor color.NRGBA
}

// defaultOptions returns the default context options.
func defaultOptions() contextOptions {
	return contextOptions{
		direction: DirectionLTR,
		fontColor: color.NRGBA{A: 255},
	}
}

// GPUConfig connects a Context to the host's graphics stack.
type GPUConfig struct {
	// Platform clears, sizes and reports the host framebuffer.
	Platform surface.Platform

	// Backend creates the host rasterizer for a framebuffer. nil renders
	// the framebuffer target in software.
	Backend surface.GPUBackendFactory

	// Device is the host GPU device, used for the surface texture format.
	Device gpucontext.DeviceProvider

	// Format overrides the framebuffer pixel format.
	Format gputypes.TextureFormat
}

// WithDirection sets the text direction of the initial drawing state and
// of every ResetState.
func WithDirection(d Direction) ContextOption {
	return func(o *contextOptions) {
		o.direction = d
	}
}

// WithSurfaceFactory replaces surface creation. The factory is called with
// the device size on creation and on every Resize.
//
// Example:
//
//	ctx, err := canvas.NewContext(device, canvas.WithSurfaceFactory(
//	    func(opts surface.Options) (surface.Surface, error) {
//	        return surface.NewSurfaceByName(surface.BackendRaster, opts)
//	    }))
func WithSurfaceFactory(f surface.Factory) ContextOption {
	return func(o *contextOptions) {
		o.factory = f
	}
}

// WithGPU renders GPU devices into the host framebuffer described by cfg.
// It has no effect on devices with NonGPU set.
func WithGPU(cfg GPUConfig) ContextOption {
	return func(o *contextOptions) {
		o.gpu = &cfg
	}
}

// WithFontColor sets the colour the host uses for text rendered outside
// the drawing state.
func WithFontColor(c color.Color) ContextOption {
	return func(o *contextOptions) {
		o.fontColor = toNRGBA(c)
	}
}
