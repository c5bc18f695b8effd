package xl

import (
	"fmt"
	"time"
)

// FieldKind classifies a source column for styling and cell typing.
type FieldKind int

const (
	FieldOther FieldKind = iota
	FieldDateTime
	FieldSmallInt
)

// Field describes one column of a Source.
type Field struct {
	Name string
	Kind FieldKind
}

// Source is a forward-only tabular record stream, such as a database query
// result or an in-memory table.
type Source interface {
	Fields() ([]Field, error)
	// Next advances to the next record and reports whether there is one.
	Next() bool
	// Values returns the current record; nil entries are missing values.
	Values() ([]any, error)
	// Err reports the error that stopped Next, if any.
	Err() error
}

// Names of the helper styles registered by SetData.
const (
	HeaderStyleName   = "_HeaderStyle"
	DateTimeStyleName = "_DateTime"
	IntegerStyleName  = "_Integer"
)

const importColumnWidth = 99.75

// SetData adds a worksheet and fills it from src: one autofit column per
// field, a bold header row of field names and one row per record.
//
// It returns false when src has no records; the (empty) worksheet is still
// added.
func (wb *Workbook) SetData(src Source, sheetName string) (bool, error) {
	wb.ensureImportStyles()
	sheet := wb.Sheets.Add(sheetName)

	fields, err := src.Fields()
	if err != nil {
		return false, fmt.Errorf("reading fields: %w", err)
	}

	n := 0
	for src.Next() {
		if n == 0 {
			addImportHeader(sheet, fields)
		}
		vals, err := src.Values()
		if err != nil {
			return false, fmt.Errorf("reading record %d: %w", n+1, err)
		}
		addImportRow(sheet.AddRow(), fields, vals)
		n++
	}
	if err := src.Err(); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (wb *Workbook) ensureImportStyles() {
	hasDefault := false
	for _, st := range wb.Styles.All() {
		if st.id == defaultStyleID {
			hasDefault = true
		}
	}
	if !hasDefault {
		wb.Styles.Add(DefaultStyleName)
	}
	if wb.Styles.Lookup(HeaderStyleName) == nil {
		wb.Styles.Add(HeaderStyleName).Font.Bold = true
	}
	if wb.Styles.Lookup(DateTimeStyleName) == nil {
		wb.Styles.Add(DateTimeStyleName).NumberFormat = `[$-409]m/d/yy\ h:mm\ AM/PM;@`
	}
	if wb.Styles.Lookup(IntegerStyleName) == nil {
		wb.Styles.Add(IntegerStyleName).NumberFormat = "0"
	}
}

func addImportHeader(sheet *Worksheet, fields []Field) {
	row := sheet.AddRow()
	for _, f := range fields {
		col := sheet.AddColumn()
		col.AutoFitWidth = true
		col.Width = importColumnWidth
		switch f.Kind {
		case FieldDateTime:
			col.StyleName = DateTimeStyleName
		case FieldSmallInt:
			col.StyleName = IntegerStyleName
		}
		row.AddString(f.Name, HeaderStyleName)
	}
}

func addImportRow(row *Row, fields []Field, vals []any) {
	for i, f := range fields {
		var v any
		if i < len(vals) {
			v = vals[i]
		}
		c := row.AddCell()
		if v == nil {
			c.SetStr("")
			continue
		}
		switch f.Kind {
		case FieldDateTime:
			if t, ok := v.(time.Time); ok {
				c.SetDateTime(t)
			} else {
				c.Type = CellTypeDateTime
				c.Value = valueText(v)
			}
		case FieldSmallInt:
			c.SetNumber(valueText(v))
		default:
			c.SetStr(valueText(v))
		}
	}
}

func valueText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(DateTimeLayout)
	case float64:
		return formatFloat(t)
	case float32:
		return formatFloat(float64(t))
	default:
		return fmt.Sprint(v)
	}
}
