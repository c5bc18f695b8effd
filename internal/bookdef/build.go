package bookdef

import (
	"fmt"

	"github.com/adnsv/go-xlxml/xl"
)

// Build creates the workbook described by d. Styles are registered in
// definition order, so the ids match what a caller adding them by hand would
// get. Sheet names are made unique the usual way.
func (d *Definition) Build() (*xl.Workbook, error) {
	wb := xl.NewWorkbook()

	p := d.Properties
	wb.Properties.Author = p.Author
	wb.Properties.LastAuthor = p.LastAuthor
	wb.Properties.Company = p.Company
	if p.Version != "" {
		wb.Properties.Version = p.Version
	}
	wb.Properties.Created = p.Created

	w := d.Window
	setInt(&wb.Window.Width, w.Width)
	setInt(&wb.Window.Height, w.Height)
	setInt(&wb.Window.TopX, w.TopX)
	setInt(&wb.Window.TopY, w.TopY)
	wb.Window.ProtectStructure = w.ProtectStructure
	wb.Window.ProtectWindows = w.ProtectWindows

	for i, sd := range d.Styles {
		if err := buildStyle(wb.Styles.Add(sd.Name), &sd); err != nil {
			return nil, fmt.Errorf("styles[%d] '%s': %w", i, sd.Name, err)
		}
	}

	for _, n := range d.Names {
		wb.Names.Add(n.Name, n.RefersTo)
	}

	for i, sd := range d.Sheets {
		sheet := wb.Sheets.Add(sd.Name)
		for _, cd := range sd.Columns {
			col := sheet.AddColumn()
			col.Index = cd.Index
			col.Width = cd.Width
			col.AutoFitWidth = cd.AutoFit
			col.Hidden = cd.Hidden
			col.StyleName = cd.Style
		}
		for j, rd := range sd.Rows {
			row := sheet.AddRow()
			row.Index = rd.Index
			row.Height = rd.Height
			row.AutoFitHeight = rd.AutoFit
			row.Hidden = rd.Hidden
			row.StyleName = rd.Style
			for k, cd := range rd.Cells {
				typ, err := xl.ParseCellType(cd.Type)
				if err != nil {
					return nil, fmt.Errorf("sheets[%d].rows[%d].cells[%d]: %w", i, j, k, err)
				}
				cell := row.AddValue(cd.Value, typ)
				cell.Index = cd.Index
				cell.MergeAcross = cd.MergeAcross
				cell.MergeDown = cd.MergeDown
				cell.StyleName = cd.Style
				cell.Formula = cd.Formula
				cell.HRef = cd.HRef
			}
		}
	}
	return wb, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func buildStyle(st *xl.Style, sd *Style) error {
	var err error

	f := &st.Font
	f.Name = sd.Font.Name
	f.Size = sd.Font.Size
	f.Bold = sd.Font.Bold
	f.Italic = sd.Font.Italic
	f.Outline = sd.Font.Outline
	f.Shadow = sd.Font.Shadow
	f.StrikeThrough = sd.Font.StrikeThrough
	if f.Underline, err = xl.ParseUnderline(sd.Font.Underline); err != nil {
		return err
	}
	if err = color(&f.Color, sd.Font.Color); err != nil {
		return err
	}

	a := &st.Alignment
	if a.Horizontal, err = xl.ParseHorizontalAlignment(sd.Alignment.Horizontal); err != nil {
		return err
	}
	if a.Vertical, err = xl.ParseVerticalAlignment(sd.Alignment.Vertical); err != nil {
		return err
	}
	a.Rotate = sd.Alignment.Rotate
	a.Indent = sd.Alignment.Indent
	a.WrapText = sd.Alignment.WrapText
	a.ShrinkToFit = sd.Alignment.ShrinkToFit
	a.VerticalText = sd.Alignment.VerticalText

	in := &st.Interior
	if in.Pattern, err = xl.ParsePattern(sd.Interior.Pattern); err != nil {
		return err
	}
	if err = color(&in.Color, sd.Interior.Color); err != nil {
		return err
	}
	if err = color(&in.PatternColor, sd.Interior.PatternColor); err != nil {
		return err
	}

	if sd.NumberFormat != "" {
		st.NumberFormat = sd.NumberFormat
	}

	for _, bd := range sd.Borders {
		pos, err := xl.ParseBorderPosition(bd.Position)
		if err != nil {
			return err
		}
		ls, err := xl.ParseLineStyle(bd.LineStyle)
		if err != nil {
			return err
		}
		b := st.AddBorder(pos, ls, xl.Black, 1)
		if bd.Weight > 0 {
			b.Weight = bd.Weight
		}
		if err := color(&b.Color, bd.Color); err != nil {
			return err
		}
	}
	return nil
}

// color leaves dst alone when s is empty.
func color(dst *xl.Color, s string) error {
	if s == "" {
		return nil
	}
	c, err := xl.ParseColor(s)
	if err != nil {
		return err
	}
	*dst = c
	return nil
}
