package canvas

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Transparent is the CSS "transparent" keyword.
var Transparent = color.NRGBA{}

// ParseColor parses a CSS colour: hex notation ("#rgb", "#rgba",
// "#rrggbb", "#rrggbbaa"), rgb()/rgba(), hsl()/hsla() and named colours.
func ParseColor(s string) (color.NRGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return color.NRGBA{}, false
	case s == "transparent":
		return Transparent, true
	case s[0] == '#':
		return Hex(s)
	case strings.HasPrefix(s, "rgb"):
		return parseRGB(s)
	case strings.HasPrefix(s, "hsl"):
		return parseHSL(s)
	}
	c, ok := colornames.Map[s]
	if !ok {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, true
}

// FormatColor serializes a colour the way canvas style getters do:
// "#rrggbb" when opaque, "rgba(r, g, b, a)" otherwise.
func FormatColor(c color.NRGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	a := strconv.FormatFloat(float64(c.A)/255, 'g', 3, 64)
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, a)
}

// Hex parses a hex colour. Supports formats: "RGB", "RGBA", "RRGGBB",
// "RRGGBBAA", with or without a leading '#'.
func Hex(hex string) (color.NRGBA, bool) {
	hex = strings.TrimPrefix(hex, "#")

	var r, g, b uint32
	a := uint32(255)
	ok := true

	switch len(hex) {
	case 3: // RGB
		ok = parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) && parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4: // RGBA
		ok = parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) && parseHex(hex[2:3], &b) && parseHex(hex[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6: // RRGGBB
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) && parseHex(hex[4:6], &b)
	case 8: // RRGGBBAA
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) && parseHex(hex[4:6], &b) && parseHex(hex[6:8], &a)
	default:
		return color.NRGBA{}, false
	}
	if !ok {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}, true
}

// parseHex is a helper for hex parsing
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

// args splits the argument list of a CSS colour function. Both the legacy
// comma syntax and the space syntax with "/ alpha" are accepted.
func args(s, name string) ([]string, bool) {
	rest, ok := strings.CutPrefix(s, name)
	if !ok {
		return nil, false
	}
	rest = strings.TrimPrefix(rest, "a")
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "(") || !strings.HasSuffix(rest, ")") {
		return nil, false
	}
	rest = rest[1 : len(rest)-1]
	rest = strings.NewReplacer(",", " ", "/", " ").Replace(rest)
	f := strings.Fields(rest)
	if len(f) != 3 && len(f) != 4 {
		return nil, false
	}
	return f, true
}

func parseRGB(s string) (color.NRGBA, bool) {
	f, ok := args(s, "rgb")
	if !ok {
		return color.NRGBA{}, false
	}
	var ch [3]uint8
	for i := range 3 {
		v, ok := number(f[i], 255)
		if !ok {
			return color.NRGBA{}, false
		}
		ch[i] = unit255(v / 255)
	}
	a, ok := alphaArg(f)
	if !ok {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: a}, true
}

func parseHSL(s string) (color.NRGBA, bool) {
	f, ok := args(s, "hsl")
	if !ok {
		return color.NRGBA{}, false
	}
	h, ok := angle(f[0])
	if !ok {
		return color.NRGBA{}, false
	}
	sat, ok1 := number(f[1], 1)
	l, ok2 := number(f[2], 1)
	if !ok1 || !ok2 || !strings.HasSuffix(f[1], "%") || !strings.HasSuffix(f[2], "%") {
		return color.NRGBA{}, false
	}
	a, ok := alphaArg(f)
	if !ok {
		return color.NRGBA{}, false
	}
	c := HSL(h, clampUnit(sat), clampUnit(l))
	c.A = a
	return c, true
}

func alphaArg(f []string) (uint8, bool) {
	if len(f) < 4 {
		return 255, true
	}
	a, ok := number(f[3], 1)
	if !ok {
		return 0, false
	}
	return unit255(a), true
}

// number parses a CSS number or percentage; percentages scale to full.
func number(s string, full float64) (float64, bool) {
	pct := strings.HasSuffix(s, "%")
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if pct {
		v = v / 100 * full
	}
	return v, true
}

// angle parses a CSS angle in degrees.
func angle(s string) (float64, bool) {
	units := []struct {
		suffix string
		scale  float64
	}{
		{"deg", 1},
		{"grad", 0.9},
		{"rad", 180 / math.Pi},
		{"turn", 360},
	}
	for _, u := range units {
		if v, ok := strings.CutSuffix(s, u.suffix); ok {
			f, err := strconv.ParseFloat(v, 64)
			return f * u.scale, err == nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

func clampUnit(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

func unit255(x float64) uint8 {
	return uint8(math.Round(clampUnit(x) * 255))
}

// HSL creates an opaque colour from HSL values.
// h is hue [0, 360), s is saturation [0, 1], l is lightness [0, 1].
func HSL(h, s, l float64) color.NRGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	h /= 360

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h*6, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 1.0/6:
		r, g, b = c, x, 0
	case h < 2.0/6:
		r, g, b = x, c, 0
	case h < 3.0/6:
		r, g, b = 0, c, x
	case h < 4.0/6:
		r, g, b = 0, x, c
	case h < 5.0/6:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return color.NRGBA{R: unit255(r + m), G: unit255(g + m), B: unit255(b + m), A: 255}
}

// toNRGBA converts any colour to straight alpha.
func toNRGBA(c color.Color) color.NRGBA {
	if c == nil {
		return Transparent
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
