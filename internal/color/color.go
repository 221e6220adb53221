// Package color holds the per-pixel colour math used by canvas: sRGB and
// linear transfer functions backed by lookup tables, and alpha
// premultiplication of RGBA8 buffers.
//
// All buffers are tightly packed 4-byte RGBA with straight or premultiplied
// alpha as stated by each function.
package color

import (
	"fmt"
	"strings"
)

// ColorSpace identifies the transfer function of RGB components.
type ColorSpace uint8

const (
	// SRGB is the standard gamma-encoded sRGB colour space.
	SRGB ColorSpace = iota

	// LinearSRGB uses sRGB primaries with a linear transfer function.
	LinearSRGB
)

// String returns the CSS predefined colour space name.
func (c ColorSpace) String() string {
	switch c {
	case SRGB:
		return "srgb"
	case LinearSRGB:
		return "srgb-linear"
	default:
		return "unknown"
	}
}

// UnmarshalText accepts "srgb" and "srgb-linear" ("linear-srgb" too).
func (c *ColorSpace) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "srgb":
		*c = SRGB
	case "srgb-linear", "linear-srgb":
		*c = LinearSRGB
	default:
		return fmt.Errorf("color: unknown colour space %q", text)
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c ColorSpace) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
