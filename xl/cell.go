package xl

import (
	"strconv"
	"time"
)

// Cell is a single value within a row.
type Cell struct {
	Index       int // 1-based column; 0 = next after the previous cell
	MergeAcross int
	MergeDown   int
	StyleName   string
	Formula     string // written verbatim, never evaluated
	HRef        string

	Type  CellType
	Value string
}

// CellType is the type of cell value, written by name in ss:Type.
type CellType int

// Cell value types enumeration.
const (
	CellTypeString CellType = iota
	CellTypeNumber
	CellTypeDateTime
	CellTypeBoolean
	CellTypeError
)

var cellTypeNames = []string{"String", "Number", "DateTime", "Boolean", "Error"}

func (t CellType) String() string { return enumName(cellTypeNames, int(t)) }

func ParseCellType(s string) (CellType, error) {
	i, err := enumParse("cell type", cellTypeNames, s)
	return CellType(i), err
}

// DateTimeLayout is the text form of DateTime cell values.
const DateTimeLayout = "2006-01-02T15:04:05.000"

func (c *Cell) SetBool(v bool) {
	c.Type = CellTypeBoolean
	if v {
		c.Value = "1"
	} else {
		c.Value = "0"
	}
}

func (c *Cell) SetInt(v int64) {
	c.Type = CellTypeNumber
	c.Value = strconv.FormatInt(v, 10)
}

func (c *Cell) SetFloat(v float64) {
	c.Type = CellTypeNumber
	c.Value = formatFloat(v)
}

// SetNumber stores an already formatted numeric literal.
func (c *Cell) SetNumber(v string) {
	c.Type = CellTypeNumber
	c.Value = v
}

func (c *Cell) SetStr(v string) {
	c.Type = CellTypeString
	c.Value = v
}

// SetDateTime stores t as written, without zone conversion.
func (c *Cell) SetDateTime(t time.Time) {
	c.Type = CellTypeDateTime
	c.Value = t.Format(DateTimeLayout)
}

// SetError stores an error literal such as "#N/A".
func (c *Cell) SetError(v string) {
	c.Type = CellTypeError
	c.Value = v
}

// SetStyle references st by its display name.
func (c *Cell) SetStyle(st *Style) {
	c.StyleName = st.Name()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
