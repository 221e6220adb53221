package canvas

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/canvas/internal/cache"
)

// ErrInvalidFont is returned by ParseFont for shorthands it cannot read.
var ErrInvalidFont = errors.New("canvas: invalid font")

// DefaultFont is the font of a fresh drawing state.
const DefaultFont = "10px sans-serif"

// FontStyle is the CSS font-style.
type FontStyle uint8

const (
	FontStyleNormal FontStyle = iota
	FontStyleItalic
	FontStyleOblique
)

// Font is a parsed CSS font shorthand plus the metrics it resolves to on
// a device.
type Font struct {
	Style     FontStyle
	SmallCaps bool
	Weight    int

	// Size and Unit are the size as written, e.g. 12 and "pt".
	Size float64
	Unit string

	// LineHeight is the optional "/line-height" part, verbatim.
	LineHeight string

	Family []string

	Metrics FontMetrics
}

// FontMetrics are font dimensions in device pixels.
type FontMetrics struct {
	Size    float64
	Ascent  float64
	Descent float64
	LineGap float64
}

var absoluteSizes = map[string]float64{
	"xx-small": 9,
	"x-small":  10,
	"small":    13,
	"medium":   16,
	"large":    18,
	"x-large":  24,
	"xx-large": 32,
}

// cssPixels per unit.
var units = map[string]float64{
	"px":  1,
	"pt":  4.0 / 3,
	"pc":  16,
	"in":  96,
	"cm":  96 / 2.54,
	"mm":  96 / 25.4,
	"em":  16,
	"rem": 16,
	"%":   16.0 / 100,
}

// ParseFont parses a CSS font shorthand such as
// "italic bold 12px/1.5 'Go Mono', monospace".
func ParseFont(s string) (Font, error) {
	f := Font{Weight: 400}
	rest := strings.TrimSpace(s)
	for rest != "" {
		tok, after, _ := strings.Cut(rest, " ")
		rest = strings.TrimSpace(after)
		if size, lh, ok := splitSize(tok); ok {
			v, unit, ok := parseSize(size)
			if !ok {
				return Font{}, fmt.Errorf("%w: size %q", ErrInvalidFont, size)
			}
			f.Size, f.Unit, f.LineHeight = v, unit, lh
			f.Family = parseFamilies(rest)
			if len(f.Family) == 0 {
				return Font{}, fmt.Errorf("%w: no family in %q", ErrInvalidFont, s)
			}
			return f, nil
		}
		if !f.keyword(strings.ToLower(tok)) {
			return Font{}, fmt.Errorf("%w: unexpected %q", ErrInvalidFont, tok)
		}
	}
	return Font{}, fmt.Errorf("%w: no size in %q", ErrInvalidFont, s)
}

// keyword applies a style, variant, weight or stretch keyword.
func (f *Font) keyword(tok string) bool {
	switch tok {
	case "normal":
	case "italic":
		f.Style = FontStyleItalic
	case "oblique":
		f.Style = FontStyleOblique
	case "small-caps":
		f.SmallCaps = true
	case "bold", "bolder":
		f.Weight = 700
	case "lighter":
		f.Weight = 300
	case "ultra-condensed", "extra-condensed", "condensed", "semi-condensed",
		"semi-expanded", "expanded", "extra-expanded", "ultra-expanded":
	default:
		w, err := strconv.Atoi(tok)
		if err != nil || w < 1 || w > 1000 {
			return false
		}
		f.Weight = w
	}
	return true
}

// splitSize reports whether tok is the size token and splits off an
// optional line height.
func splitSize(tok string) (size, lineHeight string, ok bool) {
	size, lineHeight, _ = strings.Cut(tok, "/")
	lower := strings.ToLower(size)
	if _, ok := absoluteSizes[lower]; ok {
		return lower, lineHeight, true
	}
	if lower == "" || (lower[0] < '0' || lower[0] > '9') && lower[0] != '.' {
		return "", "", false
	}
	if strings.Trim(lower, "0123456789.") == "" && lineHeight == "" {
		// A bare number is a weight.
		return "", "", false
	}
	return lower, lineHeight, true
}

func parseSize(s string) (float64, string, bool) {
	if v, ok := absoluteSizes[s]; ok {
		return v, "px", true
	}
	i := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	if i <= 0 {
		return 0, "", false
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	unit := s[i:]
	if _, ok := units[unit]; err != nil || !ok || v <= 0 {
		return 0, "", false
	}
	return v, unit, true
}

func parseFamilies(s string) []string {
	var out []string
	for _, fam := range strings.Split(s, ",") {
		fam = strings.Trim(strings.TrimSpace(fam), `"'`)
		if fam != "" {
			out = append(out, fam)
		}
	}
	return out
}

// String returns the canonical shorthand.
func (f Font) String() string {
	var b strings.Builder
	switch f.Style {
	case FontStyleItalic:
		b.WriteString("italic ")
	case FontStyleOblique:
		b.WriteString("oblique ")
	}
	if f.SmallCaps {
		b.WriteString("small-caps ")
	}
	switch f.Weight {
	case 0, 400:
	case 700:
		b.WriteString("bold ")
	default:
		b.WriteString(strconv.Itoa(f.Weight) + " ")
	}
	b.WriteString(strconv.FormatFloat(f.Size, 'f', -1, 64) + f.Unit)
	if f.LineHeight != "" {
		b.WriteString("/" + f.LineHeight)
	}
	for i, fam := range f.Family {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(", ")
		}
		if strings.ContainsRune(fam, ' ') {
			fam = `"` + fam + `"`
		}
		b.WriteString(fam)
	}
	return b.String()
}

// CSSPixels returns the size in CSS pixels.
func (f Font) CSSPixels() float64 {
	return f.Size * units[f.Unit]
}

// resolve computes the device metrics of f. Points map through the
// device ppi; everything else scales CSS pixels by the density.
func (f Font) resolve(d Device) Font {
	size := f.CSSPixels() * float64(d.Density)
	if f.Unit == "pt" {
		size = f.Size * float64(d.PPI) / 72
	}
	f.Metrics = FontMetrics{Size: size}
	fnt, err := f.face()
	if err != nil {
		return f
	}
	face := font.NewFace(fnt)
	scale := size / float64(fnt.Upem())
	if ext, ok := face.FontHExtents(); ok {
		f.Metrics.Ascent = float64(ext.Ascender) * scale
		f.Metrics.Descent = -float64(ext.Descender) * scale
		f.Metrics.LineGap = float64(ext.LineGap) * scale
	}
	return f
}

type fontKey struct {
	shorthand    string
	density, ppi float32
}

type resolvedFont struct {
	font Font
	err  error
}

// resolvedFonts holds shorthands already resolved on a device, including
// the ones that failed to parse.
var resolvedFonts = cache.New[fontKey, resolvedFont](64)

// resolveFont parses shorthand and resolves it on d.
func resolveFont(shorthand string, d Device) (Font, error) {
	r := resolvedFonts.GetOrCreate(fontKey{shorthand, d.Density, d.PPI}, func() resolvedFont {
		f, err := ParseFont(shorthand)
		if err != nil {
			return resolvedFont{err: err}
		}
		return resolvedFont{font: f.resolve(d)}
	})
	r.font.Family = slices.Clone(r.font.Family)
	return r.font, r.err
}

// TextMetrics is the result of measuring text, in device pixels.
type TextMetrics struct {
	Width   float64
	Ascent  float64
	Descent float64
}

// measure returns the advance width of s without shaping.
func (f Font) measure(s string) TextMetrics {
	m := TextMetrics{Ascent: f.Metrics.Ascent, Descent: f.Metrics.Descent}
	fnt, err := f.face()
	if err != nil || s == "" {
		return m
	}
	face := font.NewFace(fnt)
	scale := f.Metrics.Size / float64(fnt.Upem())
	for _, r := range s {
		gid, _ := face.NominalGlyph(r)
		m.Width += float64(face.HorizontalAdvance(gid)) * scale
	}
	return m
}

// bundledFont lazily parses one of the bundled Go fonts.
type bundledFont struct {
	ttf  []byte
	once sync.Once
	font *font.Font
	err  error
}

func (b *bundledFont) get() (*font.Font, error) {
	b.once.Do(func() {
		face, err := font.ParseTTF(bytes.NewReader(b.ttf))
		if err != nil {
			b.err = err
			return
		}
		b.font = face.Font
	})
	return b.font, b.err
}

type faceKey struct {
	mono, bold, italic bool
}

var bundled = map[faceKey]*bundledFont{
	{false, false, false}: {ttf: goregular.TTF},
	{false, true, false}:  {ttf: gobold.TTF},
	{false, false, true}:  {ttf: goitalic.TTF},
	{false, true, true}:   {ttf: gobolditalic.TTF},
	{true, false, false}:  {ttf: gomono.TTF},
	{true, true, false}:   {ttf: gomonobold.TTF},
	{true, false, true}:   {ttf: gomonoitalic.TTF},
	{true, true, true}:    {ttf: gomonobolditalic.TTF},
}

// face picks the bundled face closest to the font's family, weight and
// style.
func (f Font) face() (*font.Font, error) {
	key := faceKey{
		bold:   f.Weight >= 600,
		italic: f.Style != FontStyleNormal,
	}
	for _, fam := range f.Family {
		lower := strings.ToLower(fam)
		if lower == "monospace" || strings.Contains(lower, "mono") || strings.Contains(lower, "courier") {
			key.mono = true
			break
		}
	}
	return bundled[key].get()
}
