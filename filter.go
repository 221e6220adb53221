package canvas

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/canvas/internal/filter"
	"github.com/gogpu/canvas/surface"
)

// ErrInvalidFilter is returned by ParseFilter for unreadable filter lists.
var ErrInvalidFilter = errors.New("canvas: invalid filter")

// ParseFilter parses a CSS filter list such as
// "blur(2px) grayscale(50%) drop-shadow(2px 2px 4px black)".
// "none" yields an empty list.
func ParseFilter(s string) ([]surface.ImageFilter, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return nil, nil
	}
	var out []surface.ImageFilter
	for s != "" {
		open := strings.IndexByte(s, '(')
		if open <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFilter, s)
		}
		end := closing(s, open)
		if end < 0 {
			return nil, fmt.Errorf("%w: unbalanced %q", ErrInvalidFilter, s)
		}
		name := strings.ToLower(strings.TrimSpace(s[:open]))
		f, err := filterFunc(name, strings.TrimSpace(s[open+1:end]))
		if err != nil {
			return nil, err
		}
		out = append(out, f)
		s = strings.TrimSpace(s[end+1:])
	}
	return out, nil
}

// closing returns the index of the parenthesis matching s[open].
func closing(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func filterFunc(name, arg string) (surface.ImageFilter, error) {
	switch name {
	case "blur":
		px := 0.0
		if arg != "" {
			v, ok := length(arg)
			if !ok || v < 0 {
				return nil, fmt.Errorf("%w: blur(%s)", ErrInvalidFilter, arg)
			}
			px = v
		}
		return filter.Blur{Sigma: px}, nil
	case "hue-rotate":
		deg := 0.0
		if arg != "" {
			v, ok := angle(arg)
			if !ok {
				return nil, fmt.Errorf("%w: hue-rotate(%s)", ErrInvalidFilter, arg)
			}
			deg = v
		}
		return filter.HueRotate(deg), nil
	case "drop-shadow":
		return dropShadow(arg)
	}

	amount := 1.0
	if arg != "" {
		v, ok := number(arg, 1)
		if !ok || v < 0 {
			return nil, fmt.Errorf("%w: %s(%s)", ErrInvalidFilter, name, arg)
		}
		amount = v
	}
	a := float32(amount)
	switch name {
	case "brightness":
		return filter.Brightness(a), nil
	case "contrast":
		return filter.Contrast(a), nil
	case "saturate":
		return filter.Saturate(a), nil
	case "grayscale":
		return filter.Grayscale(min(a, 1)), nil
	case "sepia":
		return filter.Sepia(min(a, 1)), nil
	case "invert":
		return filter.Invert(min(a, 1)), nil
	case "opacity":
		return filter.Opacity(min(a, 1)), nil
	}
	return nil, fmt.Errorf("%w: unknown function %q", ErrInvalidFilter, name)
}

// length parses a CSS length in pixels; a bare 0 is allowed.
func length(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "0" {
		return 0, true
	}
	v, ok := strings.CutSuffix(s, "px")
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	return f, err == nil
}

// dropShadow parses "<dx> <dy> [<blur>] [<color>]" in either order of
// lengths and colour.
func dropShadow(arg string) (surface.ImageFilter, error) {
	var lengths []float64
	c := [4]uint8{0, 0, 0, 255}
	var colorParts []string
	for _, tok := range splitArgs(arg) {
		if v, ok := length(tok); ok && len(colorParts) == 0 {
			lengths = append(lengths, v)
			continue
		}
		colorParts = append(colorParts, tok)
	}
	if len(lengths) < 2 || len(lengths) > 3 {
		return nil, fmt.Errorf("%w: drop-shadow(%s)", ErrInvalidFilter, arg)
	}
	if len(colorParts) > 0 {
		nc, ok := ParseColor(strings.Join(colorParts, " "))
		if !ok {
			return nil, fmt.Errorf("%w: drop-shadow colour %q", ErrInvalidFilter, strings.Join(colorParts, " "))
		}
		c = [4]uint8{nc.R, nc.G, nc.B, nc.A}
	}
	sh := filter.Shadow{DX: lengths[0], DY: lengths[1], Color: c}
	if len(lengths) == 3 {
		if lengths[2] < 0 {
			return nil, fmt.Errorf("%w: negative drop-shadow blur", ErrInvalidFilter)
		}
		sh.Sigma = lengths[2] / 2
	}
	return filter.DropShadow{Shadow: sh}, nil
}

// splitArgs splits on spaces outside parentheses.
func splitArgs(s string) []string {
	var out []string
	depth, start := 0, -1
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; {
		case ch == '(':
			depth++
		case ch == ')':
			depth--
		case ch == ' ' && depth == 0:
			if start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}
