package canvas

import (
	"image/color"
	"slices"

	"github.com/gogpu/canvas/surface"
)

// Direction is the canvas text direction.
type Direction uint8

const (
	DirectionInherit Direction = iota
	DirectionLTR
	DirectionRTL
)

var directionNames = [...]string{"inherit", "ltr", "rtl"}

// String returns the CSS keyword.
func (d Direction) String() string { return keyword(directionNames[:], int(d)) }

// TextAlign is the canvas textAlign attribute.
type TextAlign uint8

const (
	TextAlignStart TextAlign = iota
	TextAlignEnd
	TextAlignLeft
	TextAlignRight
	TextAlignCenter
)

var textAlignNames = [...]string{"start", "end", "left", "right", "center"}

// String returns the CSS keyword.
func (a TextAlign) String() string { return keyword(textAlignNames[:], int(a)) }

// TextBaseline is the canvas textBaseline attribute.
type TextBaseline uint8

const (
	TextBaselineAlphabetic TextBaseline = iota
	TextBaselineTop
	TextBaselineHanging
	TextBaselineMiddle
	TextBaselineIdeographic
	TextBaselineBottom
)

var textBaselineNames = [...]string{"alphabetic", "top", "hanging", "middle", "ideographic", "bottom"}

// String returns the CSS keyword.
func (b TextBaseline) String() string { return keyword(textBaselineNames[:], int(b)) }

// ImageSmoothingQuality is the canvas imageSmoothingQuality attribute.
type ImageSmoothingQuality uint8

const (
	ImageSmoothingLow ImageSmoothingQuality = iota
	ImageSmoothingMedium
	ImageSmoothingHigh
)

var smoothingNames = [...]string{"low", "medium", "high"}

// String returns the CSS keyword.
func (q ImageSmoothingQuality) String() string { return keyword(smoothingNames[:], int(q)) }

func keyword(names []string, i int) string {
	if i < len(names) {
		return names[i]
	}
	return "unknown"
}

// lookup finds name in names.
func lookup(names []string, name string) (int, bool) {
	i := slices.Index(names, name)
	return i, i >= 0
}

// Style is a fill or stroke style: a colour or a pattern.
type Style struct {
	Color   color.NRGBA
	Pattern surface.Pattern
}

// ColorStyle returns a solid style.
func ColorStyle(c color.NRGBA) Style {
	return Style{Color: c}
}

// String returns the serialized colour, or "pattern".
func (s Style) String() string {
	if s.Pattern != nil {
		return "pattern"
	}
	return FormatColor(s.Color)
}

// State is the drawing state saved and restored by Context.Save and
// Context.Restore.
type State struct {
	Direction Direction
	Fill      Style
	Stroke    Style
	Font      Font

	TextAlign    TextAlign
	TextBaseline TextBaseline

	ShadowColor   color.NRGBA
	ShadowOffsetX float64
	ShadowOffsetY float64
	ShadowBlur    float64

	ImageSmoothingEnabled bool
	ImageSmoothingQuality ImageSmoothingQuality

	LineWidth      float64
	LineCap        surface.LineCap
	LineJoin       surface.LineJoin
	MiterLimit     float64
	LineDash       []float64
	LineDashOffset float64

	// Filter is the CSS filter string; filters is its parsed form.
	Filter  string
	filters []surface.ImageFilter

	GlobalAlpha              float64
	GlobalCompositeOperation surface.CompositeOp
}

// NewState returns the initial drawing state for device.
func NewState(device Device, direction Direction) State {
	f, _ := resolveFont(DefaultFont, device)
	return State{
		Direction:                direction,
		Fill:                     ColorStyle(color.NRGBA{A: 255}),
		Stroke:                   ColorStyle(color.NRGBA{A: 255}),
		Font:                     f,
		ShadowColor:              Transparent,
		LineWidth:                1,
		MiterLimit:               10,
		Filter:                   "none",
		GlobalAlpha:              1,
		GlobalCompositeOperation: surface.CompositeSourceOver,
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.LineDash = slices.Clone(s.LineDash)
	s.filters = slices.Clone(s.filters)
	s.Font.Family = slices.Clone(s.Font.Family)
	return s
}

// ImageFilterQuality is the resampling quality for image draws: none when
// smoothing is disabled, else the smoothing quality.
func (s *State) ImageFilterQuality() surface.Filter {
	if !s.ImageSmoothingEnabled {
		return surface.FilterNone
	}
	switch s.ImageSmoothingQuality {
	case ImageSmoothingMedium:
		return surface.FilterMedium
	case ImageSmoothingHigh:
		return surface.FilterHigh
	default:
		return surface.FilterLow
	}
}

// paint builds the surface paint for a fill (stroke false) or stroke.
func (s *State) paint(stroke bool) *surface.Paint {
	style := s.Fill
	if stroke {
		style = s.Stroke
	}
	p := &surface.Paint{
		Color:      style.Color,
		Pattern:    style.Pattern,
		Alpha:      s.GlobalAlpha,
		Op:         s.GlobalCompositeOperation,
		Filters:    s.filters,
		Shadow:     s.shadow(),
		LineWidth:  s.LineWidth,
		Cap:        s.LineCap,
		Join:       s.LineJoin,
		MiterLimit: s.MiterLimit,
		DashOffset: s.LineDashOffset,
	}
	if len(s.LineDash) > 0 {
		p.Dash = s.LineDash
	}
	return p
}

// imagePaint is the paint for image draws: no colour, no line style.
func (s *State) imagePaint() *surface.Paint {
	return &surface.Paint{
		Alpha:   s.GlobalAlpha,
		Op:      s.GlobalCompositeOperation,
		Filters: s.filters,
		Shadow:  s.shadow(),
	}
}

func (s *State) shadow() surface.Shadow {
	return surface.Shadow{
		OffsetX: s.ShadowOffsetX,
		OffsetY: s.ShadowOffsetY,
		Blur:    s.ShadowBlur,
		Color:   s.ShadowColor,
	}
}
