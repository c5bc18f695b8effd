package xl

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
	. "gopkg.in/check.v1"
)

type WriterSuite struct{}

var _ = Suite(&WriterSuite{})

func totalsWorkbook() *Workbook {
	wb := NewWorkbook()
	wb.Styles.Add("Default")
	sheet := wb.Sheets.Add("Sheet1")
	for _, vals := range [][]string{{"a", "b"}, {"c", "d"}} {
		row := sheet.AddRow()
		for _, v := range vals {
			row.AddCell().SetStr(v)
		}
	}
	wb.Names.Add("Totals", "Sheet1!R1C1:R1C2")
	return wb
}

func lines(ls ...string) string {
	return strings.Join(ls, "\n")
}

func (s *WriterSuite) TestTotalsDocument(c *C) {
	doc, err := totalsWorkbook().Generate()
	c.Assert(err, IsNil)

	want := lines(
		`<?xml version="1.0"?>`,
		`<?mso-application progid="Excel.Sheet"?>`,
		`<Workbook xmlns="urn:schemas-microsoft-com:office:spreadsheet" xmlns:o="urn:schemas-microsoft-com:office:office" xmlns:x="urn:schemas-microsoft-com:office:excel" xmlns:ss="urn:schemas-microsoft-com:office:spreadsheet" xmlns:html="http://www.w3.org/TR/REC-html40">`,
		"\t<DocumentProperties xmlns=\"urn:schemas-microsoft-com:office:office\">",
		"\t\t<Author></Author>",
		"\t\t<LastAuthor></LastAuthor>",
		"\t\t<Created></Created>",
		"\t\t<Company></Company>",
		"\t\t<Version>11.8132</Version>",
		"\t</DocumentProperties>",
		"\t<ExcelWorkbook xmlns=\"urn:schemas-microsoft-com:office:excel\">",
		"\t\t<WindowHeight>7995</WindowHeight>",
		"\t\t<WindowWidth>12000</WindowWidth>",
		"\t\t<WindowTopX>120</WindowTopX>",
		"\t\t<WindowTopY>60</WindowTopY>",
		"\t\t<ProtectStructure>False</ProtectStructure>",
		"\t\t<ProtectWindows>False</ProtectWindows>",
		"\t</ExcelWorkbook>",
		"\t<Styles>",
		"\t\t<Style ss:ID=\"Default\" ss:Name=\"Normal\">",
		"\t\t\t<Alignment ss:Horizontal=\"Automatic\" ss:Vertical=\"Automatic\"/>",
		"\t\t\t<Font/>",
		"\t\t\t<Interior/>",
		"\t\t\t<Borders/>",
		"\t\t\t<Protection/>",
		"\t\t</Style>",
		"\t</Styles>",
		"\t<Names>",
		"\t\t<NamedRange ss:Name=\"Totals\" ss:RefersTo=\"=Sheet1!R1C1:R1C2\"/>",
		"\t</Names>",
		"\t<Worksheet ss:Name=\"Sheet1\">",
		"\t\t<Table ss:ExpandedColumnCount=\"2\" ss:ExpandedRowCount=\"2\" x:FullColumns=\"1\" x:FullRows=\"1\">",
		"\t\t\t<Row>",
		"\t\t\t\t<Cell><Data ss:Type=\"String\">a</Data><NamedCell ss:Name=\"Totals\"/></Cell>",
		"\t\t\t\t<Cell><Data ss:Type=\"String\">b</Data><NamedCell ss:Name=\"Totals\"/></Cell>",
		"\t\t\t</Row>",
		"\t\t\t<Row>",
		"\t\t\t\t<Cell><Data ss:Type=\"String\">c</Data></Cell>",
		"\t\t\t\t<Cell><Data ss:Type=\"String\">d</Data></Cell>",
		"\t\t\t</Row>",
		"\t\t</Table>",
		"\t\t<WorksheetOptions xmlns=\"urn:schemas-microsoft-com:office:excel\">",
		"\t\t\t<Print>",
		"\t\t\t\t<ValidPrinterInfo/>",
		"\t\t\t\t<HorizontalResolution>600</HorizontalResolution>",
		"\t\t\t\t<VerticalResolution>600</VerticalResolution>",
		"\t\t\t</Print>",
		"\t\t\t<Selected/>",
		"\t\t\t<ProtectObjects>False</ProtectObjects>",
		"\t\t\t<ProtectScenarios>False</ProtectScenarios>",
		"\t\t</WorksheetOptions>",
		"\t</Worksheet>",
		"</Workbook>",
		"",
	)
	c.Assert(doc, Equals, want)
}

// The document must stay well-formed for an ordinary XML parser.
func (s *WriterSuite) TestDocumentIsWellFormed(c *C) {
	wb := totalsWorkbook()
	st := wb.Styles.Add("fancy")
	st.Font.Underline = UnderlineSingle
	st.Font.Name = "Arial"
	wb.Sheets.All()[0].Rows[0].Cells[0].SetStr(`5" & "6' <x>`)

	doc, err := wb.Generate()
	c.Assert(err, IsNil)
	d := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := d.Token()
		if err == io.EOF {
			break
		}
		c.Assert(err, IsNil)
	}
}

func (s *WriterSuite) TestStyleAttributes(c *C) {
	wb := NewWorkbook()
	st := wb.Styles.Add("Loud")
	st.Alignment.Horizontal = HorizontalCenter
	st.Alignment.Vertical = VerticalTop
	st.Alignment.Rotate = 135
	st.Alignment.Indent = 2
	st.Alignment.WrapText = true
	st.Font.Size = 12.5
	st.Font.Name = "Tahoma"
	st.Font.Color = Red
	st.Font.Bold = true
	st.Font.StrikeThrough = true
	st.Font.Underline = UnderlineDouble
	st.Interior.Color = RGB(0xFF, 0xFF, 0x00)
	st.Interior.Pattern = PatternGray50
	st.Interior.PatternColor = Blue
	st.NumberFormat = "YesNo"
	st.AddBorder(BorderLeft, LineContinuous, Black, 1)
	st.AddBorder(BorderTop, LineDash, Green, 2.5)

	doc, err := wb.Generate()
	c.Assert(err, IsNil)
	for _, want := range []string{
		"\t\t<Style ss:ID=\"s20\" ss:Name=\"Loud\">\n",
		"\t\t\t<Alignment ss:Horizontal=\"Center\" ss:Vertical=\"Top\" ss:Rotate=\"90\" ss:Indent=\"2\" ss:WrapText=\"1\"/>\n",
		"\t\t\t<Font ss:Size=\"12.5\" ss:FontName=\"Tahoma\" ss:Color=\"#FF0000\" ss:Bold=\"1\" ss:StrikeThrough=\"1\" ss:Underline=\"Double\"/>\n",
		"\t\t\t<Interior ss:Color=\"#FFFF00\" ss:Pattern=\"Gray50\" ss:PatternColor=\"#0000FF\"/>\n",
		"\t\t\t<NumberFormat ss:Format=\"Yes/No\"/>\n",
		"\t\t\t\t<Border ss:Position=\"Left\" ss:LineStyle=\"Continuous\" ss:Weight=\"1\"/>\n",
		"\t\t\t\t<Border ss:Position=\"Top\" ss:LineStyle=\"Dash\" ss:Weight=\"2.5\" ss:Color=\"#008000\"/>\n",
	} {
		c.Assert(strings.Contains(doc, want), Equals, true, Commentf("missing %q", want))
	}
	// the clamp is written back to the model
	c.Assert(st.Alignment.Rotate, Equals, 90.0)
}

func (s *WriterSuite) TestNegativeRotationClamp(c *C) {
	wb := NewWorkbook()
	st := wb.Styles.Add("Down")
	st.Alignment.Rotate = -120
	doc, err := wb.Generate()
	c.Assert(err, IsNil)
	c.Assert(strings.Contains(doc, `ss:Rotate="-90"`), Equals, true)
	c.Assert(st.Alignment.Rotate, Equals, -90.0)
}

func (s *WriterSuite) TestSolidPatternHasNoPatternColor(c *C) {
	wb := NewWorkbook()
	st := wb.Styles.Add("Fill")
	st.Interior.Pattern = PatternSolid
	st.Interior.Color = Red
	doc, err := wb.Generate()
	c.Assert(err, IsNil)
	c.Assert(strings.Contains(doc, "\t\t\t<Interior ss:Color=\"#FF0000\" ss:Pattern=\"Solid\"/>\n"), Equals, true)
}

func (s *WriterSuite) TestGeneralNumberFormatOmitted(c *C) {
	wb := NewWorkbook()
	wb.Styles.Add("a")
	wb.Styles.Add("b").NumberFormat = ""
	doc, err := wb.Generate()
	c.Assert(err, IsNil)
	c.Assert(strings.Contains(doc, "<NumberFormat"), Equals, false)
}

func (s *WriterSuite) TestRowsColumnsAndCells(c *C) {
	wb := NewWorkbook()
	wb.Styles.Add("Head")
	num := wb.Styles.Add("Num")
	sh := wb.Sheets.Add("Report")

	col := sh.AddColumn()
	col.Index = 2
	col.AutoFitWidth = true
	col.Hidden = true
	col.Width = 99.75
	col.SetStyle(num)
	sh.AddColumn().StyleName = "Nope"

	r := sh.AddRow()
	r.Index = 3
	r.AutoFitHeight = true
	r.Hidden = true
	r.Height = 15
	r.StyleName = "Head"
	cell := r.AddCell()
	cell.Index = 4
	cell.MergeAcross = 1
	cell.MergeDown = 2
	cell.SetStyle(num)
	cell.Formula = "=SUM(R1C1:R2C1)"
	cell.HRef = "http://example.com/?a=1&b=2"
	cell.SetFloat(1.5)
	r.AddCell().SetBool(true)

	doc, err := wb.Generate()
	c.Assert(err, IsNil)
	for _, want := range []string{
		"\t\t<Table ss:ExpandedColumnCount=\"5\" ss:ExpandedRowCount=\"3\" x:FullColumns=\"1\" x:FullRows=\"1\">\n",
		"\t\t\t<Column ss:Index=\"2\" ss:AutoFitWidth=\"1\" ss:Hidden=\"1\" ss:Width=\"99.75\" ss:StyleID=\"s21\"/>\n",
		"\t\t\t<Column/>\n",
		"\t\t\t<Row ss:Index=\"3\" ss:AutoFitHeight=\"1\" ss:Hidden=\"1\" ss:Height=\"15\" ss:StyleID=\"s20\">\n",
		"\t\t\t\t<Cell ss:Index=\"4\" ss:MergeAcross=\"1\" ss:MergeDown=\"2\" ss:StyleID=\"s21\" ss:Formula=\"=SUM(R1C1:R2C1)\" ss:HRef=\"http://example.com/?a=1&b=2\"><Data ss:Type=\"Number\">1.5</Data></Cell>\n",
		"\t\t\t\t<Cell><Data ss:Type=\"Boolean\">1</Data></Cell>\n",
	} {
		c.Assert(strings.Contains(doc, want), Equals, true, Commentf("missing %q", want))
	}
}

func (s *WriterSuite) TestNamedCellsFollowRunningCoordinates(c *C) {
	wb := NewWorkbook()
	sh := wb.Sheets.Add("S")
	wb.Names.Add("Spot", "s!R5C3:R5C3")

	r := sh.AddRow()
	r.Index = 5
	r.AddCell().Index = 2
	r.AddCell().SetStr("here")

	doc, err := wb.Generate()
	c.Assert(err, IsNil)
	c.Assert(strings.Count(doc, "<NamedCell"), Equals, 1)
	c.Assert(strings.Contains(doc, `<Data ss:Type="String">here</Data><NamedCell ss:Name="Spot"/>`), Equals, true)

	name, err := wb.FindContaining(sh, 5, 3)
	c.Assert(err, IsNil)
	c.Assert(name, Equals, "Spot")
}

func (s *WriterSuite) TestMalformedRangeFailsGeneration(c *C) {
	wb := totalsWorkbook()
	wb.Names.Add("Broken", "Sheet1!R1C1")
	_, err := wb.Generate()
	c.Assert(err, FitsTypeOf, &FormatError{})
}

func (s *WriterSuite) TestMalformedRangeOnEmptySheetIsNotQueried(c *C) {
	wb := NewWorkbook()
	wb.Sheets.Add("Empty")
	wb.Names.Add("Broken", "Empty!R1C1")
	_, err := wb.Generate()
	c.Assert(err, IsNil)
}

func (s *WriterSuite) TestLegacyEscaping(c *C) {
	wb := NewWorkbook()
	wb.Styles.Add(`A&B`)
	wb.Properties.Author = `O'Brien`
	cell := wb.Sheets.Add("S").AddRow().AddCell()
	cell.SetStr(`5" & "6'`)
	cell.Formula = `=IF(RC[-1]>0,"y","n")`

	doc, err := wb.Generate()
	c.Assert(err, IsNil)
	c.Assert(strings.Contains(doc, `<Data ss:Type="String">5&amp;quot; &amp; &amp;quot;6&apos;</Data>`), Equals, true)
	c.Assert(strings.Contains(doc, `ss:Name="A&amp;B"`), Equals, true)
	c.Assert(strings.Contains(doc, "<Author>O&apos;Brien</Author>"), Equals, true)
	c.Assert(strings.Contains(doc, `ss:Formula="=IF(RC[-1]>0,"y","n")"`), Equals, true)
}

func (s *WriterSuite) TestStrictEscaping(c *C) {
	wb := NewWorkbook()
	cell := wb.Sheets.Add("S").AddRow().AddCell()
	cell.SetStr(`5" & "6'`)
	cell.Formula = `=IF(RC[-1]>0,"y","n")`

	w := NewWriter()
	w.Escaping = EscapeStrict
	doc, err := w.Generate(wb)
	c.Assert(err, IsNil)
	c.Assert(strings.Contains(doc, `<Data ss:Type="String">5&quot; &amp; &quot;6&apos;</Data>`), Equals, true)
	c.Assert(strings.Contains(doc, `ss:Formula="=IF(RC[-1]&gt;0,&quot;y&quot;,&quot;n&quot;)"`), Equals, true)
}

func (s *WriterSuite) TestCreatedIsUTC(c *C) {
	wb := NewWorkbook()
	zone := time.FixedZone("X", 2*60*60)
	wb.Properties.Created = time.Date(2024, 3, 1, 10, 30, 0, 0, zone)
	doc, err := wb.Generate()
	c.Assert(err, IsNil)
	c.Assert(strings.Contains(doc, "\t\t<Created>2024-03-01T08:30:00Z</Created>\n"), Equals, true)
}

func (s *WriterSuite) TestWindowSettings(c *C) {
	wb := NewWorkbook()
	wb.Window.ProtectWindows = true
	wb.Window.Width = 800
	doc, err := wb.Generate()
	c.Assert(err, IsNil)
	c.Assert(strings.Contains(doc, "\t\t<WindowWidth>800</WindowWidth>\n"), Equals, true)
	c.Assert(strings.Contains(doc, "\t\t<ProtectWindows>True</ProtectWindows>\n"), Equals, true)
}

func (s *WriterSuite) TestWriteToUsesCharset(c *C) {
	wb := NewWorkbook()
	wb.Sheets.Add("S").AddRow().AddCell().SetStr("naïve")

	var buf bytes.Buffer
	n, err := NewWriter().WriteTo(wb, &buf)
	c.Assert(err, IsNil)
	c.Assert(n, Equals, int64(buf.Len()))
	c.Assert(strings.Contains(buf.String(), "na?ve"), Equals, true)

	buf.Reset()
	w := &Writer{Charset: CharsetUTF8}
	_, err = w.WriteTo(wb, &buf)
	c.Assert(err, IsNil)
	c.Assert(strings.Contains(buf.String(), "naïve"), Equals, true)
}

func (s *WriterSuite) TestGenerateIsRepeatable(c *C) {
	wb := totalsWorkbook()
	w := NewWriter()
	a, err := w.Generate(wb)
	c.Assert(err, IsNil)
	b, err := w.Generate(wb)
	c.Assert(err, IsNil)
	c.Assert(a, Equals, b)
}

func (s *WriterSuite) TestWindows1252DocumentIsWellFormed(c *C) {
	wb := NewWorkbook()
	wb.Properties.Author = "Jürgen"
	wb.Sheets.Add("S").AddRow().AddCell().SetStr("café 中")

	w := &Writer{Charset: CharsetWindows1252}
	doc, err := w.Encode(wb)
	c.Assert(err, IsNil)
	c.Assert(bytes.HasPrefix(doc, []byte(`<?xml version="1.0" encoding="windows-1252"?>`+"\n")), Equals, true)
	c.Assert(bytes.Contains(doc, []byte("<Author>J\xfcrgen</Author>")), Equals, true)

	d := xml.NewDecoder(bytes.NewReader(doc))
	d.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		c.Assert(label, Equals, "windows-1252")
		return charmap.Windows1252.NewDecoder().Reader(input), nil
	}
	var texts []string
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		c.Assert(err, IsNil)
		if cd, ok := tok.(xml.CharData); ok {
			texts = append(texts, string(cd))
		}
	}
	all := strings.Join(texts, "|")
	c.Assert(strings.Contains(all, "café 中"), Equals, true)
	c.Assert(strings.Contains(all, "Jürgen"), Equals, true)
}
