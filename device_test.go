package canvas

import (
	"errors"
	"math"
	"testing"
)

func TestNewNonGPUDevice(t *testing.T) {
	d := NewNonGPUDevice(300, 150, 2, 326)
	if !d.NonGPU || d.SampleCount != 0 || d.HasAlpha {
		t.Errorf("NewNonGPUDevice() = %+v, want NonGPU, no samples, no alpha", d)
	}
	if err := d.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	if w, h := d.PixelSize(); w != 300 || h != 150 {
		t.Errorf("PixelSize() = %d, %d, want 300, 150", w, h)
	}
}

func TestDeviceValidate(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	tests := []struct {
		name string
		d    Device
	}{
		{"zero width", NewNonGPUDevice(0, 10, 1, 160)},
		{"negative height", NewNonGPUDevice(10, -1, 1, 160)},
		{"nan density", NewNonGPUDevice(10, 10, nan, 160)},
		{"inf ppi", NewNonGPUDevice(10, 10, 1, inf)},
		{"negative samples", NewGPUDevice(10, 10, 1, 160, -4, true)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.d.Validate(); !errors.Is(err, ErrInvalidDevice) {
				t.Errorf("Validate() = %v, want ErrInvalidDevice", err)
			}
		})
	}
}

func TestDevicePixelSizeRounds(t *testing.T) {
	d := NewNonGPUDevice(10.6, 0.2, 1, 160)
	if w, h := d.PixelSize(); w != 11 || h != 1 {
		t.Errorf("PixelSize() = %d, %d, want 11, 1", w, h)
	}
}

func TestDeviceWithSizeKeepsRest(t *testing.T) {
	d := NewGPUDevice(10, 10, 3, 480, 4, true)
	r := d.withSize(20, 30)
	want := NewGPUDevice(20, 30, 3, 480, 4, true)
	if r != want {
		t.Errorf("withSize() = %+v, want %+v", r, want)
	}
}
