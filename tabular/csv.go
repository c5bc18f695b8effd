package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/adnsv/go-xlxml/xl"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ReadCSV loads a CSV document whose first record holds the field names.
// Column kinds are inferred: a column whose non-empty values all fit int16 is
// SmallInt, one whose values all parse as dates is DateTime. Empty values
// are missing.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("reading csv: missing header record")
	}

	header := recs[0]
	t := &Table{Fields: make([]xl.Field, len(header))}
	for i, name := range header {
		t.Fields[i] = xl.Field{Name: name, Kind: inferKind(recs[1:], i)}
	}

	for _, rec := range recs[1:] {
		row := make([]any, len(header))
		for i := range header {
			if i >= len(rec) || rec[i] == "" {
				continue
			}
			row[i] = convert(rec[i], t.Fields[i].Kind)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func inferKind(recs [][]string, col int) xl.FieldKind {
	ints, dates, seen := true, true, false
	for _, rec := range recs {
		if col >= len(rec) || rec[col] == "" {
			continue
		}
		seen = true
		if _, err := strconv.ParseInt(rec[col], 10, 16); err != nil {
			ints = false
		}
		if _, ok := parseDate(rec[col]); !ok {
			dates = false
		}
	}
	switch {
	case !seen:
		return xl.FieldOther
	case ints:
		return xl.FieldSmallInt
	case dates:
		return xl.FieldDateTime
	}
	return xl.FieldOther
}

func parseDate(s string) (time.Time, bool) {
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func convert(s string, kind xl.FieldKind) any {
	switch kind {
	case xl.FieldSmallInt:
		v, _ := strconv.ParseInt(s, 10, 16)
		return int16(v)
	case xl.FieldDateTime:
		t, _ := parseDate(s)
		return t
	}
	return s
}
