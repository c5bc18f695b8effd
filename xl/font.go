package xl

// Font represents font formatting properties of a style.
// Only non-default values are written to the document.
type Font struct {
	Name          string        // Font face, empty = application default
	Size          float64       // Font size in points (0 = application default)
	Color         Color         // Text color (Black = default)
	Bold          bool          // Bold text
	Italic        bool          // Italic text
	Outline       bool          // Outlined glyphs
	Shadow        bool          // Shadowed glyphs
	StrikeThrough bool          // Strikethrough text
	Underline     UnderlineType // Underline style
}

// UnderlineType represents the type of underline formatting.
type UnderlineType int

// Underline type constants, written by name in ss:Underline.
const (
	UnderlineNone             UnderlineType = iota // No underline (default)
	UnderlineSingle                                // Single underline
	UnderlineDouble                                // Double underline
	UnderlineSingleAccounting                      // Single accounting underline
	UnderlineDoubleAccounting                      // Double accounting underline
)

var underlineNames = []string{"None", "Single", "Double", "SingleAccounting", "DoubleAccounting"}

func (u UnderlineType) String() string { return enumName(underlineNames, int(u)) }

// ParseUnderline returns the underline type for its document name.
func ParseUnderline(s string) (UnderlineType, error) {
	i, err := enumParse("underline", underlineNames, s)
	return UnderlineType(i), err
}

func defaultFont() Font {
	return Font{Color: Black}
}

// IsDefault returns true if the font uses all default properties.
func (f *Font) IsDefault() bool {
	return f.Name == "" && f.Size == 0 && f.Color == Black &&
		!f.Bold && !f.Italic && !f.Outline && !f.Shadow && !f.StrikeThrough &&
		f.Underline == UnderlineNone
}
