package xl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/adnsv/srw/xml"
	"github.com/valyala/bytebufferpool"
)

const (
	nsSpreadsheet = "urn:schemas-microsoft-com:office:spreadsheet"
	nsOffice      = "urn:schemas-microsoft-com:office:office"
	nsExcel       = "urn:schemas-microsoft-com:office:excel"
	nsHTML        = "http://www.w3.org/TR/REC-html40"

	msoInstruction = "<?mso-application progid=\"Excel.Sheet\"?>\n"
)

// Writer serializes workbooks to XML Spreadsheet 2003 markup. A Writer holds
// no per-document state and may be reused.
type Writer struct {
	Escaping Escaping
	Charset  Charset
}

func NewWriter() *Writer {
	return &Writer{}
}

// Generate returns the whole document as text. It fails only when a named
// range on a sheet that has cells cannot be parsed.
//
// The text carries no encoding declaration; Encode adds the one its Charset
// needs. Alignment rotations outside [-90, 90] are clamped in the model.
func (w *Writer) Generate(wb *Workbook) (string, error) {
	return w.generate(wb, CharsetUTF8)
}

// Encode generates the document and transcodes it to the Writer's Charset.
func (w *Writer) Encode(wb *Workbook) ([]byte, error) {
	doc, err := w.generate(wb, w.Charset)
	if err != nil {
		return nil, err
	}
	return w.Charset.encode(doc)
}

// WriteTo encodes wb and writes it to out.
func (w *Writer) WriteTo(wb *Workbook, out io.Writer) (int64, error) {
	doc, err := w.Encode(wb)
	if err != nil {
		return 0, err
	}
	n, err := out.Write(doc)
	return int64(n), err
}

func (w *Writer) generate(wb *Workbook, cs Charset) (string, error) {
	b := bytebufferpool.Get()
	defer bytebufferpool.Put(b)

	x := xml.NewWriter(b, xml.WriterConfig{Indent: xml.IndentTabs})
	if err := w.write(x, wb, cs); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (w *Writer) write(x *xml.Writer, wb *Workbook, cs Charset) error {
	x.RawString(xml.RawString(cs.declaration()))
	x.RawString(msoInstruction)
	x.OTag("+Workbook").
		RawAttr("xmlns", nsSpreadsheet).
		RawAttr("xmlns:o", nsOffice).
		RawAttr("xmlns:x", nsExcel).
		RawAttr("xmlns:ss", nsSpreadsheet).
		RawAttr("xmlns:html", nsHTML)

	w.writeProperties(x, &wb.Properties)
	w.writeWindow(x, &wb.Window)
	w.writeStyles(x, wb.Styles)
	w.writeNames(x, wb.Names)

	for _, sheet := range wb.Sheets.All() {
		if err := w.writeSheet(x, wb, sheet); err != nil {
			return err
		}
	}

	x.CTag() // Workbook
	return nil
}

// text and attr run a value through the Writer's escaping mode.
func (w *Writer) text(s string) xml.RawString { return xml.RawString(w.Escaping.text(s)) }
func (w *Writer) attr(s string) xml.RawString { return xml.RawString(w.Escaping.attr(s)) }

func elem(x *xml.Writer, name xml.NameString, v xml.RawString) {
	x.OTag(name).RawString(v).CTag()
}

func (w *Writer) writeProperties(x *xml.Writer, p *DocumentProperties) {
	x.OTag("+DocumentProperties").RawAttr("xmlns", nsOffice)
	elem(x, "+Author", w.text(p.Author))
	elem(x, "+LastAuthor", w.text(p.LastAuthor))
	elem(x, "+Created", xml.RawString(p.createdString()))
	elem(x, "+Company", w.text(p.Company))
	elem(x, "+Version", w.text(p.Version))
	x.CTag()
}

func (w *Writer) writeWindow(x *xml.Writer, s *WindowSettings) {
	x.OTag("+ExcelWorkbook").RawAttr("xmlns", nsExcel)
	elem(x, "+WindowHeight", raw(s.Height))
	elem(x, "+WindowWidth", raw(s.Width))
	elem(x, "+WindowTopX", raw(s.TopX))
	elem(x, "+WindowTopY", raw(s.TopY))
	elem(x, "+ProtectStructure", raw(s.ProtectStructure))
	elem(x, "+ProtectWindows", raw(s.ProtectWindows))
	x.CTag()
}

func (w *Writer) writeStyles(x *xml.Writer, styles *Styles) {
	x.OTag("+Styles")
	for _, st := range styles.All() {
		x.OTag("+Style")
		x.OptRawAttr("ss:ID", xml.RawString(st.id))
		x.OptRawAttr("ss:Name", w.text(st.name))

		w.writeAlignment(x, &st.Alignment)
		w.writeFont(x, &st.Font)
		w.writeInterior(x, &st.Interior)

		if st.NumberFormat != "" && st.NumberFormat != "General" {
			x.OTag("+NumberFormat").
				RawAttr("ss:Format", w.attr(NumberFormatLabel(st.NumberFormat))).
				CTag()
		}

		x.OTag("+Borders")
		for _, b := range st.Borders {
			x.OTag("+Border").
				RawAttr("ss:Position", raw(b.Position)).
				RawAttr("ss:LineStyle", raw(b.LineStyle)).
				RawAttr("ss:Weight", raw(b.Weight))
			if b.Color != Black {
				x.RawAttr("ss:Color", raw(b.Color))
			}
			x.CTag()
		}
		x.CTag() // Borders

		x.OTag("+Protection").CTag()
		x.CTag() // Style
	}
	x.CTag() // Styles
}

func (w *Writer) writeAlignment(x *xml.Writer, a *Alignment) {
	x.OTag("+Alignment").
		RawAttr("ss:Horizontal", raw(a.Horizontal)).
		RawAttr("ss:Vertical", raw(a.Vertical))
	if a.Rotate != 0 {
		a.Rotate = min(max(a.Rotate, -90), 90)
		x.RawAttr("ss:Rotate", raw(a.Rotate))
	}
	if a.Indent > 0 {
		x.RawAttr("ss:Indent", raw(a.Indent))
	}
	if a.WrapText {
		x.RawAttr("ss:WrapText", "1")
	}
	if a.ShrinkToFit {
		x.RawAttr("ss:ShrinkToFit", "1")
	}
	if a.VerticalText {
		x.RawAttr("ss:VerticalText", "1")
	}
	x.CTag()
}

func (w *Writer) writeFont(x *xml.Writer, f *Font) {
	x.OTag("+Font")
	if f.IsDefault() {
		x.CTag()
		return
	}
	if f.Size > 0 {
		x.RawAttr("ss:Size", raw(f.Size))
	}
	x.OptRawAttr("ss:FontName", w.attr(f.Name))
	if f.Color != Black {
		x.RawAttr("ss:Color", raw(f.Color))
	}
	if f.Bold {
		x.RawAttr("ss:Bold", "1")
	}
	if f.Italic {
		x.RawAttr("ss:Italic", "1")
	}
	if f.Outline {
		x.RawAttr("ss:Outline", "1")
	}
	if f.Shadow {
		x.RawAttr("ss:Shadow", "1")
	}
	if f.StrikeThrough {
		x.RawAttr("ss:StrikeThrough", "1")
	}
	if f.Underline != UnderlineNone {
		x.RawAttr("ss:Underline", raw(f.Underline))
	}
	x.CTag()
}

func (w *Writer) writeInterior(x *xml.Writer, in *Interior) {
	x.OTag("+Interior")
	if in.Color != White {
		x.RawAttr("ss:Color", raw(in.Color))
	}
	if in.Pattern != PatternNone {
		x.RawAttr("ss:Pattern", raw(in.Pattern))
		if in.Pattern != PatternSolid {
			x.RawAttr("ss:PatternColor", raw(in.PatternColor))
		}
	}
	x.CTag()
}

func (w *Writer) writeNames(x *xml.Writer, names *NamedRanges) {
	x.OTag("+Names")
	for _, n := range names.All() {
		x.OTag("+NamedRange").
			RawAttr("ss:Name", w.attr(n.Name)).
			RawAttr("ss:RefersTo", "="+w.attr(n.RefersTo)).
			CTag()
	}
	x.CTag()
}

type namedRect struct {
	name string
	ref  RangeRef
}

// sheetRanges collects, in registration order, the ranges that lie on sheet.
func sheetRanges(names *NamedRanges, sheet string) ([]namedRect, error) {
	var rects []namedRect
	for _, r := range names.All() {
		ref, ok, err := r.on(sheet)
		if err != nil {
			return nil, err
		}
		if ok {
			rects = append(rects, namedRect{name: r.Name, ref: ref})
		}
	}
	return rects, nil
}

func hasCells(s *Worksheet) bool {
	for _, r := range s.Rows {
		if len(r.Cells) > 0 {
			return true
		}
	}
	return false
}

func (w *Writer) writeSheet(x *xml.Writer, wb *Workbook, sh *Worksheet) error {
	var rects []namedRect
	if hasCells(sh) {
		var err error
		rects, err = sheetRanges(wb.Names, sh.Name)
		if err != nil {
			return err
		}
	}

	x.OTag("+Worksheet").RawAttr("ss:Name", w.attr(sh.Name))
	x.OTag("+Table").
		RawAttr("ss:ExpandedColumnCount", raw(ExpandedColumnCount(sh))).
		RawAttr("ss:ExpandedRowCount", raw(ExpandedRowCount(sh))).
		RawAttr("x:FullColumns", "1").
		RawAttr("x:FullRows", "1")

	for _, col := range sh.Columns {
		x.OTag("+Column")
		if col.Index > 0 {
			x.RawAttr("ss:Index", raw(col.Index))
		}
		if col.AutoFitWidth {
			x.RawAttr("ss:AutoFitWidth", "1")
		}
		if col.Hidden {
			x.RawAttr("ss:Hidden", "1")
		}
		if col.Width > 0 {
			x.RawAttr("ss:Width", raw(col.Width))
		}
		x.OptRawAttr("ss:StyleID", xml.RawString(wb.Styles.ResolveID(col.StyleName)))
		x.CTag()
	}

	curRow := 0
	for _, row := range sh.Rows {
		x.OTag("+Row")
		if row.Index > 0 {
			x.RawAttr("ss:Index", raw(row.Index))
			curRow = row.Index
		} else {
			curRow++
		}
		if row.AutoFitHeight {
			x.RawAttr("ss:AutoFitHeight", "1")
		}
		if row.Hidden {
			x.RawAttr("ss:Hidden", "1")
		}
		if row.Height > 0 {
			x.RawAttr("ss:Height", raw(row.Height))
		}
		x.OptRawAttr("ss:StyleID", xml.RawString(wb.Styles.ResolveID(row.StyleName)))

		curCol := 0
		for _, cell := range row.Cells {
			if cell.Index > 0 {
				curCol = cell.Index
			} else {
				curCol++
			}
			w.writeCell(x, wb, cell, namedAt(rects, curRow, curCol))
		}
		x.CTag() // Row
	}
	x.CTag() // Table

	x.OTag("+WorksheetOptions").RawAttr("xmlns", nsExcel)
	x.OTag("+Print")
	x.OTag("+ValidPrinterInfo").CTag()
	elem(x, "+HorizontalResolution", raw(600))
	elem(x, "+VerticalResolution", raw(600))
	x.CTag() // Print
	x.OTag("+Selected").CTag()
	elem(x, "+ProtectObjects", raw(false))
	elem(x, "+ProtectScenarios", raw(false))
	x.CTag() // WorksheetOptions
	x.CTag() // Worksheet
	return nil
}

func namedAt(rects []namedRect, row, col int) string {
	for _, r := range rects {
		if r.ref.Contains(row, col) {
			return r.name
		}
	}
	return ""
}

func (w *Writer) writeCell(x *xml.Writer, wb *Workbook, cell *Cell, named string) {
	x.OTag("+Cell")
	if cell.Index > 0 {
		x.RawAttr("ss:Index", raw(cell.Index))
	}
	if cell.MergeAcross > 0 {
		x.RawAttr("ss:MergeAcross", raw(cell.MergeAcross))
	}
	if cell.MergeDown > 0 {
		x.RawAttr("ss:MergeDown", raw(cell.MergeDown))
	}
	x.OptRawAttr("ss:StyleID", xml.RawString(wb.Styles.ResolveID(cell.StyleName)))
	x.OptRawAttr("ss:Formula", w.attr(cell.Formula))
	x.OptRawAttr("ss:HRef", w.attr(cell.HRef))

	x.OTag("Data").RawAttr("ss:Type", raw(cell.Type)).RawString(w.text(cell.Value)).CTag()
	if named != "" {
		x.OTag("NamedCell").RawAttr("ss:Name", w.attr(named)).CTag()
	}
	x.CTag() // Cell
}

// raw formats numbers, flags and enum values the way the application
// writes them. The results never need escaping.
func raw(v any) xml.RawString {
	switch t := v.(type) {
	case int:
		return xml.RawString(strconv.Itoa(t))
	case float64:
		return xml.RawString(formatFloat(t))
	case bool:
		// the application's own spelling
		if t {
			return "True"
		}
		return "False"
	case fmt.Stringer:
		return xml.RawString(t.String())
	default:
		return xml.RawString(fmt.Sprint(v))
	}
}
