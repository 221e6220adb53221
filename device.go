package canvas

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// ErrInvalidDevice is returned for a Device with unusable dimensions.
var ErrInvalidDevice = errors.New("canvas: invalid device")

// Device describes the drawing target of a Context: its size in pixels,
// display density and pixels per inch, and how it is backed.
type Device struct {
	Width   float32
	Height  float32
	Density float32
	PPI     float32

	// NonGPU selects the CPU raster surface.
	NonGPU bool

	// SampleCount is the MSAA sample count of the GPU framebuffer.
	SampleCount int

	// HasAlpha reports whether the GPU framebuffer has an alpha channel.
	HasAlpha bool
}

// NewNonGPUDevice describes a CPU-rendered device.
func NewNonGPUDevice(width, height, density, ppi float32) Device {
	return Device{
		Width:   width,
		Height:  height,
		Density: density,
		PPI:     ppi,
		NonGPU:  true,
	}
}

// NewGPUDevice describes a device rendered into a host framebuffer.
func NewGPUDevice(width, height, density, ppi float32, sampleCount int, hasAlpha bool) Device {
	return Device{
		Width:       width,
		Height:      height,
		Density:     density,
		PPI:         ppi,
		SampleCount: sampleCount,
		HasAlpha:    hasAlpha,
	}
}

// Validate checks that dimensions, density and ppi are finite and
// positive and that the sample count is not negative.
func (d Device) Validate() error {
	fields := [...]struct {
		name string
		v    float32
	}{
		{"width", d.Width},
		{"height", d.Height},
		{"density", d.Density},
		{"ppi", d.PPI},
	}
	for _, f := range fields {
		if math32.IsNaN(f.v) || math32.IsInf(f.v, 0) || f.v <= 0 {
			return fmt.Errorf("%w: %s %v", ErrInvalidDevice, f.name, f.v)
		}
	}
	if d.SampleCount < 0 {
		return fmt.Errorf("%w: sample count %d", ErrInvalidDevice, d.SampleCount)
	}
	return nil
}

// PixelSize returns the surface size in whole pixels, at least 1x1.
func (d Device) PixelSize() (width, height int) {
	return pixels(d.Width), pixels(d.Height)
}

func pixels(v float32) int {
	return max(1, int(math32.Round(v)))
}

// withSize returns d resized, keeping density, ppi, alpha and backing.
func (d Device) withSize(width, height float32) Device {
	d.Width, d.Height = width, height
	return d
}
