package tabular

import (
	"database/sql"
	"reflect"
	"strings"
	"time"

	"github.com/adnsv/go-xlxml/xl"
)

// Rows is the subset of *sql.Rows used by RowsSource.
type Rows interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// RowsSource reads a query result.
type RowsSource struct {
	rows   Rows
	kinds  []xl.FieldKind
	fields []xl.Field
}

// FromSQL classifies the columns of rows by their driver types: time values
// are DateTime, SMALLINT/INT2/int16 columns are SmallInt.
func FromSQL(rows *sql.Rows) (*RowsSource, error) {
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	kinds := make([]xl.FieldKind, len(types))
	for i, t := range types {
		kinds[i] = ColumnKind(t.DatabaseTypeName(), t.ScanType())
	}
	return NewRowsSource(rows, kinds), nil
}

// NewRowsSource wraps rows with explicit column kinds; missing kinds are
// xl.FieldOther.
func NewRowsSource(rows Rows, kinds []xl.FieldKind) *RowsSource {
	return &RowsSource{rows: rows, kinds: kinds}
}

var timeType = reflect.TypeOf(time.Time{})

// ColumnKind classifies a column from its database type name and Go scan
// type; either may be empty/nil.
func ColumnKind(dbType string, scan reflect.Type) xl.FieldKind {
	switch strings.ToUpper(dbType) {
	case "DATE", "DATETIME", "DATETIME2", "TIMESTAMP", "TIMESTAMPTZ", "SMALLDATETIME":
		return xl.FieldDateTime
	case "SMALLINT", "INT2":
		return xl.FieldSmallInt
	}
	if scan != nil {
		for scan.Kind() == reflect.Pointer {
			scan = scan.Elem()
		}
		switch {
		case scan == timeType:
			return xl.FieldDateTime
		case scan.Kind() == reflect.Int16:
			return xl.FieldSmallInt
		case scan == reflect.TypeOf(sql.NullTime{}):
			return xl.FieldDateTime
		case scan == reflect.TypeOf(sql.NullInt16{}):
			return xl.FieldSmallInt
		}
	}
	return xl.FieldOther
}

func (s *RowsSource) Fields() ([]xl.Field, error) {
	if s.fields != nil {
		return s.fields, nil
	}
	names, err := s.rows.Columns()
	if err != nil {
		return nil, err
	}
	s.fields = make([]xl.Field, len(names))
	for i, n := range names {
		s.fields[i].Name = n
		if i < len(s.kinds) {
			s.fields[i].Kind = s.kinds[i]
		}
	}
	return s.fields, nil
}

func (s *RowsSource) Next() bool {
	return s.rows.Next()
}

// Values scans the current row. SQL NULL comes back as nil.
func (s *RowsSource) Values() ([]any, error) {
	fields, err := s.Fields()
	if err != nil {
		return nil, err
	}
	vals := make([]any, len(fields))
	ptrs := make([]any, len(fields))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := s.rows.Scan(ptrs...); err != nil {
		return nil, err
	}
	return vals, nil
}

func (s *RowsSource) Err() error {
	return s.rows.Err()
}
