package xl

type Row struct {
	Index         int // 1-based; 0 = next after the previous row
	Height        float64
	AutoFitHeight bool
	Hidden        bool
	StyleName     string
	Cells         []*Cell
}

// AddCell appends an empty string cell.
func (r *Row) AddCell() *Cell {
	c := &Cell{}
	r.Cells = append(r.Cells, c)
	return c
}

// AddString appends a string cell, optionally styled.
func (r *Row) AddString(v string, styleName string) *Cell {
	c := r.AddCell()
	c.SetStr(v)
	c.StyleName = styleName
	return c
}

// AddValue appends a cell of the given type holding v verbatim.
func (r *Row) AddValue(v string, typ CellType) *Cell {
	c := r.AddCell()
	c.Type = typ
	c.Value = v
	return c
}

// SetStyle references st by its display name.
func (r *Row) SetStyle(st *Style) {
	r.StyleName = st.Name()
}

// ColumnNumberAsLetters converts a 1-based column number to A1 letters.
func ColumnNumberAsLetters(n int) string {
	if n < 1 {
		panic("invalid column number")
	}
	var s string
	for n > 0 {
		s = string(rune((n-1)%26+65)) + s
		n = (n - 1) / 26
	}
	return s
}
