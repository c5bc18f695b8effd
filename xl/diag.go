package xl

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
)

// Diagnostics lists problems that do not stop generation but usually point
// at a mistake: style names registered twice (only the last one can be
// referenced), references to unknown styles, and named ranges that are
// malformed or point at a missing sheet. Generation itself fails on a
// malformed range only if its sheet has cells.
func (wb *Workbook) Diagnostics() []string {
	var out []string

	enumerate(wb.Styles.Shadowed(), func(name string, ids []string) error {
		out = append(out, fmt.Sprintf("style '%s' is registered as %s; references resolve to %s",
			name, strings.Join(ids, ", "), ids[len(ids)-1]))
		return nil
	})

	unknown := map[string]int{}
	note := func(name string) {
		if name != "" && wb.Styles.Lookup(name) == nil {
			unknown[name]++
		}
	}
	for _, sh := range wb.Sheets.All() {
		for _, c := range sh.Columns {
			note(c.StyleName)
		}
		for _, r := range sh.Rows {
			note(r.StyleName)
			for _, c := range r.Cells {
				note(c.StyleName)
			}
		}
	}
	enumerate(unknown, func(name string, n int) error {
		out = append(out, fmt.Sprintf("style '%s' is referenced %d time(s) but not registered", name, n))
		return nil
	})

	for _, nr := range wb.Names.All() {
		ref, err := ParseRangeRef(nr.RefersTo)
		if err != nil {
			err.(*FormatError).Name = nr.Name
			out = append(out, err.Error())
			continue
		}
		if !wb.hasSheetFold(ref.Sheet) {
			out = append(out, fmt.Sprintf("named range '%s' refers to missing sheet '%s'", nr.Name, ref.Sheet))
		}
	}
	return out
}

func (wb *Workbook) hasSheetFold(name string) bool {
	for _, s := range wb.Sheets.All() {
		if strings.EqualFold(s.Name, name) {
			return true
		}
	}
	return false
}

func enumerate[M ~map[K]V, K constraints.Ordered, V any](m M, callback func(k K, v V) error) error {
	keys := maps.Keys(m)
	slices.Sort(keys)
	for _, k := range keys {
		err := callback(k, m[k])
		if err != nil {
			return err
		}
	}
	return nil
}
