// Package tabular adapts common record sources to xl.Source so they can be
// loaded with (*xl.Workbook).SetData.
package tabular

import (
	"fmt"

	"github.com/adnsv/go-xlxml/xl"
)

// Table is an in-memory table. A nil entry in Rows is a missing value.
type Table struct {
	Fields []xl.Field
	Rows   [][]any
}

// Source returns a fresh cursor over t.
func (t *Table) Source() *TableSource {
	return &TableSource{t: t}
}

type TableSource struct {
	t   *Table
	pos int
}

func (s *TableSource) Fields() ([]xl.Field, error) {
	return s.t.Fields, nil
}

func (s *TableSource) Next() bool {
	if s.pos >= len(s.t.Rows) {
		return false
	}
	s.pos++
	return true
}

func (s *TableSource) Values() ([]any, error) {
	if s.pos == 0 {
		return nil, fmt.Errorf("Values called before Next")
	}
	row := s.t.Rows[s.pos-1]
	if len(row) > len(s.t.Fields) {
		return nil, fmt.Errorf("row %d has %d values for %d fields", s.pos, len(row), len(s.t.Fields))
	}
	return row, nil
}

func (s *TableSource) Err() error {
	return nil
}
