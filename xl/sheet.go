package xl

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultSheetName is used when a worksheet is added without a name.
const DefaultSheetName = "Sheet 1"

var counterSuffix = regexp.MustCompile(`\(\d+\)$`)

type Worksheet struct {
	Name    string
	Columns []*Column
	Rows    []*Row
}

type Column struct {
	Index        int // 1-based; 0 = next after the previous column
	Width        float64
	AutoFitWidth bool
	Hidden       bool
	StyleName    string
}

// SetStyle references st by its display name.
func (c *Column) SetStyle(st *Style) {
	c.StyleName = st.Name()
}

func (s *Worksheet) AddRow() *Row {
	r := &Row{}
	s.Rows = append(s.Rows, r)
	return r
}

func (s *Worksheet) AddColumn() *Column {
	c := &Column{}
	s.Columns = append(s.Columns, c)
	return c
}

// SetColumnWidth adds a column with the given width.
func (s *Worksheet) SetColumnWidth(w float64) *Column {
	c := s.AddColumn()
	c.Width = w
	return c
}

// ExpandedRowCount is the declared row extent of the sheet: the number of
// rows, pushed forward by explicit indices, and never less than the highest
// explicit index.
func ExpandedRowCount(s *Worksheet) int {
	count, highest := 0, 0
	for _, r := range s.Rows {
		count++
		if r.Index > 0 {
			if r.Index > count {
				count = r.Index
			}
			if r.Index > highest {
				highest = r.Index
			}
		}
	}
	return max(count, highest)
}

// ExpandedColumnCount applies the ExpandedRowCount rule to the cells of each
// row and returns the widest result. Merge spans are not counted.
func ExpandedColumnCount(s *Worksheet) int {
	widest := 0
	for _, r := range s.Rows {
		count := 0
		for _, c := range r.Cells {
			count++
			if c.Index > count {
				count = c.Index
			}
			widest = max(widest, c.Index)
		}
		widest = max(widest, count)
	}
	return widest
}

// Worksheets is the ordered collection of worksheets in a workbook.
type Worksheets struct {
	list []*Worksheet
}

// Add appends a worksheet. A name that is already taken is made unique by
// appending " (1)", " (2)", and so on; an empty name becomes "Sheet 1".
func (ws *Worksheets) Add(name string) *Worksheet {
	if name == "" {
		name = DefaultSheetName
	}
	sheet := &Worksheet{Name: ws.uniqueName(name)}
	ws.list = append(ws.list, sheet)
	return sheet
}

func (ws *Worksheets) uniqueName(name string) string {
	for j := 1; ws.Lookup(name) != nil; j++ {
		// a name such as "Total (net)" has no counter to bump
		if !strings.HasSuffix(name, ")") || !counterSuffix.MatchString(name) {
			name += fmt.Sprintf(" (%d)", j)
		} else {
			name = strings.ReplaceAll(name, fmt.Sprintf("(%d)", j-1), fmt.Sprintf("(%d)", j))
		}
	}
	return name
}

// Lookup finds a worksheet by exact name.
func (ws *Worksheets) Lookup(name string) *Worksheet {
	for _, s := range ws.list {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func (ws *Worksheets) All() []*Worksheet {
	return ws.list
}

func (ws *Worksheets) Len() int {
	return len(ws.list)
}

// ValidateSheetName reports names the spreadsheet application would refuse.
// Worksheets.Add does not call it.
func ValidateSheetName(s string) error {
	n := utf8.RuneCountInString(s)
	if n == 0 {
		return errors.New("empty sheet name is not allowed")
	} else if n > 31 {
		return errors.New("the sheet name is too long")
	}
	if strings.HasPrefix(s, "'") || strings.HasSuffix(s, "'") {
		return errors.New("the first or last character of the sheet name can not be a single quote")
	}
	if strings.ContainsAny(s, ":\\/?*[]") {
		return errors.New("the sheet can not contain any of the characters :\\/?*[]")
	}
	return nil
}
