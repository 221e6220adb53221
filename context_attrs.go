package canvas

import (
	"image/color"
	"math"
	"slices"
	"strings"

	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/canvas/surface"
)

// Attribute setters follow the canvas convention: values that do not
// parse or are out of range leave the state unchanged.

// SetFillStyle sets the fill colour from a CSS colour string.
func (c *Context) SetFillStyle(css string) {
	if col, ok := ParseColor(css); ok {
		c.state.Fill = ColorStyle(col)
	}
}

// SetFillColor sets the fill colour.
func (c *Context) SetFillColor(col color.Color) {
	c.state.Fill = ColorStyle(toNRGBA(col))
}

// SetFillPattern fills with a pattern.
func (c *Context) SetFillPattern(p surface.Pattern) {
	if p != nil {
		c.state.Fill = Style{Pattern: p}
	}
}

// FillStyle returns the serialized fill style.
func (c *Context) FillStyle() string { return c.state.Fill.String() }

// SetStrokeStyle sets the stroke colour from a CSS colour string.
func (c *Context) SetStrokeStyle(css string) {
	if col, ok := ParseColor(css); ok {
		c.state.Stroke = ColorStyle(col)
	}
}

// SetStrokeColor sets the stroke colour.
func (c *Context) SetStrokeColor(col color.Color) {
	c.state.Stroke = ColorStyle(toNRGBA(col))
}

// SetStrokePattern strokes with a pattern.
func (c *Context) SetStrokePattern(p surface.Pattern) {
	if p != nil {
		c.state.Stroke = Style{Pattern: p}
	}
}

// StrokeStyle returns the serialized stroke style.
func (c *Context) StrokeStyle() string { return c.state.Stroke.String() }

// SetFont sets the font from a CSS font shorthand.
func (c *Context) SetFont(shorthand string) {
	f, err := resolveFont(shorthand, c.device)
	if err != nil {
		return
	}
	c.state.Font = f
}

// Font returns the canonical font shorthand.
func (c *Context) Font() string { return c.state.Font.String() }

// FontMetrics returns the resolved metrics of the current font.
func (c *Context) FontMetrics() FontMetrics { return c.state.Font.Metrics }

// MeasureText measures text in the current font.
func (c *Context) MeasureText(text string) TextMetrics {
	return c.state.Font.measure(text)
}

// SetTextAlign sets textAlign: start, end, left, right or center.
func (c *Context) SetTextAlign(v string) {
	if i, ok := lookup(textAlignNames[:], v); ok {
		c.state.TextAlign = TextAlign(i)
	}
}

// TextAlign returns the textAlign keyword.
func (c *Context) TextAlign() string { return c.state.TextAlign.String() }

// SetTextBaseline sets textBaseline.
func (c *Context) SetTextBaseline(v string) {
	if i, ok := lookup(textBaselineNames[:], v); ok {
		c.state.TextBaseline = TextBaseline(i)
	}
}

// TextBaseline returns the textBaseline keyword.
func (c *Context) TextBaseline() string { return c.state.TextBaseline.String() }

// SetDirection sets the text direction: ltr, rtl or inherit.
func (c *Context) SetDirection(v string) {
	if i, ok := lookup(directionNames[:], v); ok {
		c.state.Direction = Direction(i)
	}
}

// Direction returns the direction keyword.
func (c *Context) Direction() string { return c.state.Direction.String() }

// ResolvedDirection returns the direction text is laid out in. An
// inherited direction follows the first strong character of text and
// defaults to left-to-right.
func (c *Context) ResolvedDirection(text string) Direction {
	if c.state.Direction != DirectionInherit {
		return c.state.Direction
	}
	for len(text) > 0 {
		p, size := bidi.LookupString(text)
		if size == 0 {
			break
		}
		switch p.Class() {
		case bidi.L:
			return DirectionLTR
		case bidi.R, bidi.AL:
			return DirectionRTL
		}
		text = text[size:]
	}
	return DirectionLTR
}

// ResolvedTextAlign maps start and end to left or right for text.
func (c *Context) ResolvedTextAlign(text string) TextAlign {
	rtl := c.ResolvedDirection(text) == DirectionRTL
	switch c.state.TextAlign {
	case TextAlignStart:
		if rtl {
			return TextAlignRight
		}
		return TextAlignLeft
	case TextAlignEnd:
		if rtl {
			return TextAlignLeft
		}
		return TextAlignRight
	}
	return c.state.TextAlign
}

// SetShadowColor sets the shadow colour from a CSS colour string.
func (c *Context) SetShadowColor(css string) {
	if col, ok := ParseColor(css); ok {
		c.state.ShadowColor = col
	}
}

// ShadowColor returns the serialized shadow colour.
func (c *Context) ShadowColor() string { return FormatColor(c.state.ShadowColor) }

// SetShadowOffsetX sets the horizontal shadow offset.
func (c *Context) SetShadowOffsetX(v float64) {
	if finite(v) {
		c.state.ShadowOffsetX = v
	}
}

// ShadowOffsetX returns the horizontal shadow offset.
func (c *Context) ShadowOffsetX() float64 { return c.state.ShadowOffsetX }

// SetShadowOffsetY sets the vertical shadow offset.
func (c *Context) SetShadowOffsetY(v float64) {
	if finite(v) {
		c.state.ShadowOffsetY = v
	}
}

// ShadowOffsetY returns the vertical shadow offset.
func (c *Context) ShadowOffsetY() float64 { return c.state.ShadowOffsetY }

// SetShadowBlur sets the shadow blur. Negative values are ignored.
func (c *Context) SetShadowBlur(v float64) {
	if finite(v) && v >= 0 {
		c.state.ShadowBlur = v
	}
}

// ShadowBlur returns the shadow blur.
func (c *Context) ShadowBlur() float64 { return c.state.ShadowBlur }

// SetImageSmoothingEnabled turns image smoothing on or off.
func (c *Context) SetImageSmoothingEnabled(on bool) {
	c.state.ImageSmoothingEnabled = on
}

// ImageSmoothingEnabled reports whether image smoothing is on.
func (c *Context) ImageSmoothingEnabled() bool { return c.state.ImageSmoothingEnabled }

// SetImageSmoothingQuality sets the quality: low, medium or high.
func (c *Context) SetImageSmoothingQuality(v string) {
	if i, ok := lookup(smoothingNames[:], v); ok {
		c.state.ImageSmoothingQuality = ImageSmoothingQuality(i)
	}
}

// ImageSmoothingQuality returns the quality keyword.
func (c *Context) ImageSmoothingQuality() string { return c.state.ImageSmoothingQuality.String() }

// SetLineWidth sets the line width. Zero, negative and non-finite values
// are ignored.
func (c *Context) SetLineWidth(w float64) {
	if finite(w) && w > 0 {
		c.state.LineWidth = w
	}
}

// LineWidth returns the line width.
func (c *Context) LineWidth() float64 { return c.state.LineWidth }

var (
	lineCapNames  = [...]string{"butt", "round", "square"}
	lineJoinNames = [...]string{"miter", "round", "bevel"}
)

// SetLineCap sets the line cap: butt, round or square.
func (c *Context) SetLineCap(v string) {
	if i, ok := lookup(lineCapNames[:], v); ok {
		c.state.LineCap = surface.LineCap(i)
	}
}

// LineCap returns the line cap keyword.
func (c *Context) LineCap() string { return keyword(lineCapNames[:], int(c.state.LineCap)) }

// SetLineJoin sets the line join: miter, round or bevel.
func (c *Context) SetLineJoin(v string) {
	if i, ok := lookup(lineJoinNames[:], v); ok {
		c.state.LineJoin = surface.LineJoin(i)
	}
}

// LineJoin returns the line join keyword.
func (c *Context) LineJoin() string { return keyword(lineJoinNames[:], int(c.state.LineJoin)) }

// SetMiterLimit sets the miter limit. Zero, negative and non-finite
// values are ignored.
func (c *Context) SetMiterLimit(v float64) {
	if finite(v) && v > 0 {
		c.state.MiterLimit = v
	}
}

// MiterLimit returns the miter limit.
func (c *Context) MiterLimit() float64 { return c.state.MiterLimit }

// SetLineDash sets the dash pattern. Lists with negative or non-finite
// entries are ignored; odd-length lists are repeated to even length.
func (c *Context) SetLineDash(segments []float64) {
	for _, v := range segments {
		if !finite(v) || v < 0 {
			return
		}
	}
	dash := slices.Clone(segments)
	if len(dash)%2 == 1 {
		dash = append(dash, dash...)
	}
	c.state.LineDash = dash
}

// LineDash returns a copy of the dash pattern.
func (c *Context) LineDash() []float64 { return slices.Clone(c.state.LineDash) }

// SetLineDashOffset sets the dash phase.
func (c *Context) SetLineDashOffset(v float64) {
	if finite(v) {
		c.state.LineDashOffset = v
	}
}

// LineDashOffset returns the dash phase.
func (c *Context) LineDashOffset() float64 { return c.state.LineDashOffset }

// SetFilter sets the CSS filter list. Unparsable lists are ignored.
func (c *Context) SetFilter(v string) {
	fs, err := ParseFilter(v)
	if err != nil {
		return
	}
	v = strings.TrimSpace(v)
	if len(fs) == 0 {
		v = "none"
	}
	c.state.Filter = v
	c.state.filters = fs
}

// Filter returns the CSS filter string.
func (c *Context) Filter() string { return c.state.Filter }

// SetGlobalAlpha sets the global alpha. Values outside [0, 1] are ignored.
func (c *Context) SetGlobalAlpha(a float64) {
	if !math.IsNaN(a) && a >= 0 && a <= 1 {
		c.state.GlobalAlpha = a
	}
}

// GlobalAlpha returns the global alpha.
func (c *Context) GlobalAlpha() float64 { return c.state.GlobalAlpha }

// SetGlobalCompositeOperation sets the compositing operation by its CSS
// name. Unknown names are ignored.
func (c *Context) SetGlobalCompositeOperation(name string) {
	if op, ok := surface.ParseCompositeOp(name); ok {
		c.state.GlobalCompositeOperation = op
	}
}

// GlobalCompositeOperation returns the CSS name of the compositing
// operation.
func (c *Context) GlobalCompositeOperation() string {
	return c.state.GlobalCompositeOperation.String()
}
