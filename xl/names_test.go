package xl

import (
	. "gopkg.in/check.v1"
)

type NamesSuite struct{}

var _ = Suite(&NamesSuite{})

func (s *NamesSuite) TestFindContainingFirstMatchWins(c *C) {
	nr := &NamedRanges{}
	nr.Add("Wide", "Sheet1!R1C1:R10C10")
	nr.Add("Corner", "Sheet1!R1C1:R1C1")

	name, err := nr.FindContaining("Sheet1", 1, 1)
	c.Assert(err, IsNil)
	c.Assert(name, Equals, "Wide")

	name, err = nr.FindContaining("Sheet1", 11, 1)
	c.Assert(err, IsNil)
	c.Assert(name, Equals, "")
}

func (s *NamesSuite) TestFindContainingSheetIsCaseInsensitive(c *C) {
	nr := &NamedRanges{}
	nr.Add("Totals", "SHEET1!R2C3:R4C5")

	name, err := nr.FindContaining("sheet1", 3, 4)
	c.Assert(err, IsNil)
	c.Assert(name, Equals, "Totals")

	name, err = nr.FindContaining("Sheet2", 3, 4)
	c.Assert(err, IsNil)
	c.Assert(name, Equals, "")
}

func (s *NamesSuite) TestFindContainingBounds(c *C) {
	nr := &NamedRanges{}
	nr.Add("Box", "S!R2C3:R4C5")
	for _, t := range []struct {
		row, col int
		want     string
	}{
		{2, 3, "Box"}, {4, 5, "Box"}, {3, 4, "Box"},
		{1, 3, ""}, {5, 5, ""}, {2, 2, ""}, {4, 6, ""},
	} {
		name, err := nr.FindContaining("S", t.row, t.col)
		c.Assert(err, IsNil)
		c.Assert(name, Equals, t.want, Commentf("R%dC%d", t.row, t.col))
	}
}

func (s *NamesSuite) TestMalformedReferencesFailOnQuery(c *C) {
	for _, ref := range []string{
		"Sheet1R1C1:R2C2",
		"Sheet1!R1C1R2C2",
		"Sheet1!R1C1:R2C2:R3C3",
		"Sheet1!RxC1:R2C2",
		"Sheet1!R1C1:R2",
		"Sheet1!1C1:R2C2",
	} {
		nr := &NamedRanges{}
		// registration never validates
		nr.Add("Bad", ref)
		_, err := nr.FindContaining("Sheet1", 1, 1)
		c.Assert(err, NotNil, Commentf(ref))
		fe, ok := err.(*FormatError)
		c.Assert(ok, Equals, true)
		c.Assert(fe.Name, Equals, "Bad")
		c.Assert(fe.Ref, Equals, ref)
	}
}

func (s *NamesSuite) TestCornersOfOtherSheetsAreNotParsed(c *C) {
	nr := &NamedRanges{}
	nr.Add("Elsewhere", "Other!garbage")
	name, err := nr.FindContaining("Sheet1", 1, 1)
	c.Assert(err, IsNil)
	c.Assert(name, Equals, "")
}

func (s *NamesSuite) TestAddEmptyPlaceholder(c *C) {
	nr := &NamedRanges{}
	p := nr.AddEmpty()
	p.Name = "Late"
	p.RefersTo = "Sheet1!R1C1:R1C1"
	c.Assert(nr.Len(), Equals, 1)
	name, err := nr.FindContaining("Sheet1", 1, 1)
	c.Assert(err, IsNil)
	c.Assert(name, Equals, "Late")
}

func (s *NamesSuite) TestParseRangeRef(c *C) {
	ref, err := ParseRangeRef("Sheet1!R1C2:R3C28")
	c.Assert(err, IsNil)
	c.Assert(ref, DeepEquals, RangeRef{Sheet: "Sheet1", MinRow: 1, MinCol: 2, MaxRow: 3, MaxCol: 28})
	c.Assert(ref.String(), Equals, "Sheet1!R1C2:R3C28")
	c.Assert(ref.A1(), Equals, "Sheet1!B1:AB3")

	_, err = ParseRangeRef("Sheet1!R1C1")
	c.Assert(err, ErrorMatches, "invalid reference 'Sheet1!R1C1': expected exactly one ':'")
}
