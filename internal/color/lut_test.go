package color

import (
	"math"
	"testing"
)

func TestSRGBToLinearFastMatchesReference(t *testing.T) {
	for i := range 256 {
		fast := SRGBToLinearFast(uint8(i))
		slow := SRGBToLinearSlow(uint8(i))
		if d := math.Abs(float64(fast - slow)); d > 1e-4 {
			t.Errorf("SRGBToLinearFast(%d) = %f, want %f", i, fast, slow)
		}
	}
}

func TestLinearToSRGBFastMatchesReference(t *testing.T) {
	for i := 0; i <= 1000; i++ {
		l := float32(i) / 1000
		fast := int(LinearToSRGBFast(l))
		slow := int(LinearToSRGBSlow(l))
		if fast-slow > 1 || slow-fast > 1 {
			t.Errorf("LinearToSRGBFast(%f) = %d, want %d (±1)", l, fast, slow)
		}
	}
}

func TestLinearToSRGBFastClamps(t *testing.T) {
	tests := []struct {
		in   float32
		want uint8
	}{
		{-1, 0},
		{0, 0},
		{1, 255},
		{2, 255},
	}
	for _, tt := range tests {
		if got := LinearToSRGBFast(tt.in); got != tt.want {
			t.Errorf("LinearToSRGBFast(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSRGBRoundTripThroughFloat(t *testing.T) {
	for i := range 256 {
		got := LinearToSRGBFast(SRGBToLinearFast(uint8(i)))
		if d := int(got) - i; d > 1 || d < -1 {
			t.Errorf("round trip %d = %d", i, got)
		}
	}
}

func TestColorSpaceString(t *testing.T) {
	if got := SRGB.String(); got != "srgb" {
		t.Errorf("SRGB.String() = %q, want %q", got, "srgb")
	}
	if got := LinearSRGB.String(); got != "srgb-linear" {
		t.Errorf("LinearSRGB.String() = %q, want %q", got, "srgb-linear")
	}
}

func TestColorSpaceUnmarshalText(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorSpace
		wantErr bool
	}{
		{"srgb", SRGB, false},
		{"", SRGB, false},
		{"SRGB-Linear", LinearSRGB, false},
		{"linear-srgb", LinearSRGB, false},
		{"display-p3", SRGB, true},
	}
	for _, tt := range tests {
		var got ColorSpace
		err := got.UnmarshalText([]byte(tt.in))
		if (err != nil) != tt.wantErr {
			t.Errorf("UnmarshalText(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("UnmarshalText(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func BenchmarkSRGBToLinearFast(b *testing.B) {
	var sum float32
	for i := 0; i < b.N; i++ {
		sum += SRGBToLinearFast(uint8(i))
	}
	_ = sum
}

func BenchmarkLinearToSRGBFast(b *testing.B) {
	var sum int
	for i := 0; i < b.N; i++ {
		sum += int(LinearToSRGBFast(float32(i&1023) / 1023))
	}
	_ = sum
}
