package xl

import "strings"

// XmlEncode escapes text the way the XML Spreadsheet writers of the Excel
// 2003 era did: quote, ampersand, apostrophe, less-than, greater-than, in
// that order. The ampersand pass re-escapes the entity produced for a quote,
// so `"` ends up as "&amp;quot;".
func XmlEncode(s string) string {
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

var strictReplacer = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&apos;",
	"<", "&lt;",
	">", "&gt;",
)

// XmlEncodeStrict escapes each special character exactly once.
func XmlEncodeStrict(s string) string {
	return strictReplacer.Replace(s)
}

// Escaping selects how the Writer escapes text.
type Escaping int

const (
	// EscapeLegacy reproduces XmlEncode for cell data and style names and
	// writes formulas, hyperlinks, font names, number formats, sheet names
	// and range names verbatim.
	EscapeLegacy Escaping = iota

	// EscapeStrict escapes every text value and attribute with
	// XmlEncodeStrict.
	EscapeStrict
)

// text escapes element content and style names.
func (e Escaping) text(s string) string {
	if e == EscapeStrict {
		return XmlEncodeStrict(s)
	}
	return XmlEncode(s)
}

// attr escapes attribute values that the legacy writer left untouched.
func (e Escaping) attr(s string) string {
	if e == EscapeStrict {
		return XmlEncodeStrict(s)
	}
	return s
}
