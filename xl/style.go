package xl

import (
	"fmt"
	"strings"
)

// Style is a named formatting bundle referenced by rows, columns and cells.
//
// The display name and identifier are fixed when the style is added to a
// registry; the sub-records are meant to be mutated in place.
type Style struct {
	Font         Font
	Alignment    Alignment
	Interior     Interior
	NumberFormat string
	Borders      []*Border

	name string
	id   string
}

// Name is the display name written as ss:Name.
func (s *Style) Name() string { return s.name }

// ID is the identifier written as ss:ID and referenced by ss:StyleID.
func (s *Style) ID() string { return s.id }

// AddBorder appends a border with the given settings.
func (s *Style) AddBorder(pos BorderPosition, ls LineStyle, c Color, weight float64) *Border {
	b := &Border{Position: pos, LineStyle: ls, Color: c, Weight: weight}
	s.Borders = append(s.Borders, b)
	return b
}

// Alignment holds the cell alignment settings of a style.
type Alignment struct {
	Horizontal   HorizontalAlignment
	Vertical     VerticalAlignment
	Rotate       float64 // degrees, clamped to [-90, 90] when written
	Indent       int
	WrapText     bool
	ShrinkToFit  bool
	VerticalText bool
}

// Interior is the fill of a style.
type Interior struct {
	Color        Color
	Pattern      Pattern
	PatternColor Color
}

// Border is one edge of a style's border set.
type Border struct {
	Position  BorderPosition
	LineStyle LineStyle
	Color     Color
	Weight    float64
}

func newStyle(name, id string) *Style {
	return &Style{
		name:         name,
		id:           id,
		Font:         defaultFont(),
		Interior:     Interior{Color: White, PatternColor: Black},
		NumberFormat: "General",
	}
}

// HorizontalAlignment is written by name in ss:Horizontal.
type HorizontalAlignment int

const (
	HorizontalAutomatic HorizontalAlignment = iota
	HorizontalLeft
	HorizontalCenter
	HorizontalRight
	HorizontalFill
	HorizontalJustify
	HorizontalCenterAcrossSelection
	HorizontalDistributed
	HorizontalJustifyDistributed
)

var horizontalNames = []string{"Automatic", "Left", "Center", "Right", "Fill", "Justify",
	"CenterAcrossSelection", "Distributed", "JustifyDistributed"}

func (h HorizontalAlignment) String() string { return enumName(horizontalNames, int(h)) }

func ParseHorizontalAlignment(s string) (HorizontalAlignment, error) {
	i, err := enumParse("horizontal alignment", horizontalNames, s)
	return HorizontalAlignment(i), err
}

// VerticalAlignment is written by name in ss:Vertical.
type VerticalAlignment int

const (
	VerticalAutomatic VerticalAlignment = iota
	VerticalTop
	VerticalBottom
	VerticalCenter
	VerticalJustify
	VerticalDistributed
	VerticalJustifyDistributed
)

var verticalNames = []string{"Automatic", "Top", "Bottom", "Center", "Justify",
	"Distributed", "JustifyDistributed"}

func (v VerticalAlignment) String() string { return enumName(verticalNames, int(v)) }

func ParseVerticalAlignment(s string) (VerticalAlignment, error) {
	i, err := enumParse("vertical alignment", verticalNames, s)
	return VerticalAlignment(i), err
}

// Pattern is the interior fill pattern.
type Pattern int

const (
	PatternNone Pattern = iota
	PatternSolid
	PatternGray75
	PatternGray50
	PatternGray25
	PatternGray125
	PatternGray0625
	PatternHorzStripe
	PatternVertStripe
	PatternReverseDiagStripe
	PatternDiagStripe
	PatternDiagCross
	PatternThickDiagCross
	PatternThinHorzStripe
	PatternThinVertStripe
	PatternThinReverseDiagStripe
	PatternThinDiagStripe
	PatternThinHorzCross
	PatternThinDiagCross
)

var patternNames = []string{"None", "Solid", "Gray75", "Gray50", "Gray25", "Gray125", "Gray0625",
	"HorzStripe", "VertStripe", "ReverseDiagStripe", "DiagStripe", "DiagCross", "ThickDiagCross",
	"ThinHorzStripe", "ThinVertStripe", "ThinReverseDiagStripe", "ThinDiagStripe",
	"ThinHorzCross", "ThinDiagCross"}

func (p Pattern) String() string { return enumName(patternNames, int(p)) }

func ParsePattern(s string) (Pattern, error) {
	i, err := enumParse("pattern", patternNames, s)
	return Pattern(i), err
}

// BorderPosition selects the edge a border applies to.
type BorderPosition int

const (
	BorderLeft BorderPosition = iota
	BorderTop
	BorderRight
	BorderBottom
	BorderDiagonalLeft
	BorderDiagonalRight
)

var borderPositionNames = []string{"Left", "Top", "Right", "Bottom", "DiagonalLeft", "DiagonalRight"}

func (p BorderPosition) String() string { return enumName(borderPositionNames, int(p)) }

func ParseBorderPosition(s string) (BorderPosition, error) {
	i, err := enumParse("border position", borderPositionNames, s)
	return BorderPosition(i), err
}

// LineStyle is the stroke of a border.
type LineStyle int

const (
	LineNone LineStyle = iota
	LineContinuous
	LineDash
	LineDot
	LineDashDot
	LineDashDotDot
	LineSlantDashDot
	LineDouble
)

var lineStyleNames = []string{"None", "Continuous", "Dash", "Dot", "DashDot", "DashDotDot",
	"SlantDashDot", "Double"}

func (l LineStyle) String() string { return enumName(lineStyleNames, int(l)) }

func ParseLineStyle(s string) (LineStyle, error) {
	i, err := enumParse("line style", lineStyleNames, s)
	return LineStyle(i), err
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("%d", i)
	}
	return names[i]
}

// enumParse matches case-insensitively; the empty string selects the first
// (default) value.
func enumParse(kind string, names []string, s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	for i, n := range names {
		if strings.EqualFold(n, s) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s '%s'", kind, s)
}

// number format keys and the labels the application expects
var numberFormatLabels = map[string]string{
	"General":       "General",
	"GeneralNumber": "General Number",
	"GeneralDate":   "General Date",
	"LongDate":      "Long Date",
	"MediumDate":    "Medium Date",
	"ShortDate":     "Short Date",
	"LongTime":      "Long Time",
	"MediumTime":    "Medium Time",
	"ShortTime":     "Short Time",
	"Currency":      "Currency",
	"EuroCurrency":  "Euro Currency",
	"Fixed":         "Fixed",
	"Standard":      "Standard",
	"Percent":       "Percent",
	"Scientific":    "Scientific",
	"YesNo":         "Yes/No",
	"TrueFalse":     "True/False",
	"OnOff":         "On/Off",
}

// NumberFormatLabel translates a standard format key such as "YesNo" to its
// display label; custom format codes are returned unchanged.
func NumberFormatLabel(format string) string {
	if l, ok := numberFormatLabels[format]; ok {
		return l
	}
	return format
}
