package xl

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Charset is the byte encoding of a saved document.
type Charset int

const (
	CharsetASCII       Charset = iota // non-ASCII characters become '?'
	CharsetWindows1252                // declared in the prolog; unmappable characters become character references
	CharsetUTF8
)

var charsetNames = []string{"ascii", "windows-1252", "utf-8"}

func (c Charset) String() string { return enumName(charsetNames, int(c)) }

// ParseCharset accepts "ascii", "windows-1252" (or "cp1252") and "utf-8"
// (or "utf8").
func ParseCharset(s string) (Charset, error) {
	switch strings.ToLower(s) {
	case "", "ascii", "us-ascii":
		return CharsetASCII, nil
	case "windows-1252", "cp1252":
		return CharsetWindows1252, nil
	case "utf-8", "utf8":
		return CharsetUTF8, nil
	}
	return 0, fmt.Errorf("unknown charset '%s'", s)
}

// declaration is the XML declaration that opens a document in c. ASCII and
// UTF-8 documents rely on the UTF-8 default.
func (c Charset) declaration() string {
	if c == CharsetWindows1252 {
		return "<?xml version=\"1.0\" encoding=\"windows-1252\"?>\n"
	}
	return "<?xml version=\"1.0\"?>\n"
}

func (c Charset) encode(doc string) ([]byte, error) {
	switch c {
	case CharsetUTF8:
		return []byte(doc), nil
	case CharsetWindows1252:
		return encode1252(doc), nil
	default:
		ascii := runes.Map(func(r rune) rune {
			if r > unicode.MaxASCII {
				return '?'
			}
			return r
		})
		b, _, err := transform.Bytes(ascii, []byte(doc))
		return b, err
	}
}

// encode1252 writes characters outside the code page as decimal character
// references. Markup is ASCII, so a reference only ever lands in text or an
// attribute value.
func encode1252(doc string) []byte {
	out := make([]byte, 0, len(doc))
	for _, r := range doc {
		if r == utf8.RuneError {
			out = append(out, '?')
			continue
		}
		if b, ok := charmap.Windows1252.EncodeRune(r); ok {
			out = append(out, b)
			continue
		}
		out = append(out, "&#"...)
		out = strconv.AppendInt(out, int64(r), 10)
		out = append(out, ';')
	}
	return out
}
