package xl

import (
	"fmt"
	"strconv"
	"strings"
)

// NamedRange is a user-named rectangle of one worksheet. RefersTo has the
// form "Sheet!R<row>C<col>:R<row>C<col>" and is only checked when queried.
type NamedRange struct {
	Name     string
	RefersTo string
}

// NamedRanges is the named-range registry of a workbook.
type NamedRanges struct {
	list []*NamedRange
}

func (nr *NamedRanges) Add(name, refersTo string) *NamedRange {
	r := &NamedRange{Name: name, RefersTo: refersTo}
	nr.list = append(nr.list, r)
	return r
}

// AddEmpty appends a blank range to be filled in by the caller.
func (nr *NamedRanges) AddEmpty() *NamedRange {
	return nr.Add("", "")
}

func (nr *NamedRanges) All() []*NamedRange {
	return nr.list
}

func (nr *NamedRanges) Len() int {
	return len(nr.list)
}

// FindContaining returns the name of the first registered range on sheet
// (compared case-insensitively) whose rectangle contains the 1-based row and
// column, or "" when none does.
func (nr *NamedRanges) FindContaining(sheet string, row, col int) (string, error) {
	for _, r := range nr.list {
		ref, ok, err := r.on(sheet)
		if err != nil {
			return "", err
		}
		if ok && ref.Contains(row, col) {
			return r.Name, nil
		}
	}
	return "", nil
}

// on parses the range when it belongs to sheet. Corner tokens of ranges on
// other sheets are not examined.
func (r *NamedRange) on(sheet string) (RangeRef, bool, error) {
	if strings.Count(r.RefersTo, "!") != 1 {
		return RangeRef{}, false, r.formatError("expected exactly one '!'")
	}
	s, _, _ := strings.Cut(r.RefersTo, "!")
	if !strings.EqualFold(s, sheet) {
		return RangeRef{}, false, nil
	}
	ref, err := ParseRangeRef(r.RefersTo)
	if err != nil {
		err.(*FormatError).Name = r.Name
		return RangeRef{}, false, err
	}
	return ref, true, nil
}

func (r *NamedRange) formatError(reason string) *FormatError {
	return &FormatError{Name: r.Name, Ref: r.RefersTo, Reason: reason}
}

// FormatError reports a malformed range reference.
type FormatError struct {
	Name   string
	Ref    string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("named range '%s': invalid reference '%s': %s", e.Name, e.Ref, e.Reason)
	}
	return fmt.Sprintf("invalid reference '%s': %s", e.Ref, e.Reason)
}

// RangeRef is a parsed "Sheet!R1C1:R2C2" reference.
type RangeRef struct {
	Sheet  string
	MinRow int
	MinCol int
	MaxRow int
	MaxCol int
}

// ParseRangeRef parses an R1C1 rectangle reference. The error, if any, is a
// *FormatError.
func ParseRangeRef(s string) (RangeRef, error) {
	fail := func(reason string) (RangeRef, error) {
		return RangeRef{}, &FormatError{Ref: s, Reason: reason}
	}
	if strings.Count(s, "!") != 1 {
		return fail("expected exactly one '!'")
	}
	sheet, area, _ := strings.Cut(s, "!")
	if strings.Count(area, ":") != 1 {
		return fail("expected exactly one ':'")
	}
	lo, hi, _ := strings.Cut(area, ":")
	ref := RangeRef{Sheet: sheet}
	var ok bool
	if ref.MinRow, ref.MinCol, ok = parseCorner(lo); !ok {
		return fail(fmt.Sprintf("bad corner '%s'", lo))
	}
	if ref.MaxRow, ref.MaxCol, ok = parseCorner(hi); !ok {
		return fail(fmt.Sprintf("bad corner '%s'", hi))
	}
	return ref, nil
}

// parseCorner reads "R<row>C<col>".
func parseCorner(s string) (row, col int, ok bool) {
	if !strings.HasPrefix(s, "R") {
		return 0, 0, false
	}
	rs, cs, found := strings.Cut(s[1:], "C")
	if !found {
		return 0, 0, false
	}
	row, err := strconv.Atoi(rs)
	if err != nil {
		return 0, 0, false
	}
	col, err = strconv.Atoi(cs)
	if err != nil {
		return 0, 0, false
	}
	return row, col, true
}

// Contains tests the inclusive rectangle.
func (r RangeRef) Contains(row, col int) bool {
	return row >= r.MinRow && row <= r.MaxRow && col >= r.MinCol && col <= r.MaxCol
}

func (r RangeRef) String() string {
	return fmt.Sprintf("%s!R%dC%d:R%dC%d", r.Sheet, r.MinRow, r.MinCol, r.MaxRow, r.MaxCol)
}

// A1 renders the reference in letter-column notation, e.g. "Sheet1!A1:B2".
func (r RangeRef) A1() string {
	if r.MinRow < 1 || r.MinCol < 1 || r.MaxRow < 1 || r.MaxCol < 1 {
		return r.String()
	}
	return fmt.Sprintf("%s!%s%d:%s%d", r.Sheet,
		ColumnNumberAsLetters(r.MinCol), r.MinRow,
		ColumnNumberAsLetters(r.MaxCol), r.MaxRow)
}
