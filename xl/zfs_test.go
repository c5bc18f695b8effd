package xl

import (
	"archive/zip"
	"bytes"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"time"

	. "gopkg.in/check.v1"
)

type SinkSuite struct{}

var _ = Suite(&SinkSuite{})

func (s *SinkSuite) TestDirStorage(c *C) {
	dir := c.MkDir()
	wb := totalsWorkbook()
	c.Assert(wb.Save(NewDirStorage(dir), "out/book.xml"), IsNil)

	got, err := os.ReadFile(filepath.Join(dir, "out", "book.xml"))
	c.Assert(err, IsNil)
	want, err := wb.Generate()
	c.Assert(err, IsNil)
	c.Assert(string(got), Equals, want)
}

func (s *SinkSuite) TestDirStorageStaysInsideDir(c *C) {
	dir := c.MkDir()
	ds := NewDirStorage(filepath.Join(dir, "sub"))
	for _, name := range []string{"../book.xml", "/etc/book.xml", "a/../../book.xml"} {
		err := ds.WriteDocument(name, []byte("x"))
		c.Check(err, ErrorMatches, "document name '.*' is outside the output directory")
	}
	_, err := os.Stat(filepath.Join(dir, "book.xml"))
	c.Assert(os.IsNotExist(err), Equals, true)
}

func (s *SinkSuite) TestZipStorage(c *C) {
	var buf bytes.Buffer
	zs := NewZipStorage(&buf)
	c.Assert(totalsWorkbook().Save(zs, "book.xml"), IsNil)
	c.Assert(zs.Close(), IsNil)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	c.Assert(err, IsNil)
	c.Assert(zr.File, HasLen, 1)
	c.Assert(zr.File[0].Name, Equals, "book.xml")
	f, err := zr.File[0].Open()
	c.Assert(err, IsNil)
	defer f.Close()
	body, err := io.ReadAll(f)
	c.Assert(err, IsNil)
	c.Assert(bytes.Contains(body, []byte(`<Worksheet ss:Name="Sheet1">`)), Equals, true)
}

func (s *SinkSuite) TestZipStorageEntryHeader(c *C) {
	stamp := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	var buf bytes.Buffer
	zs := NewZipStorage(&buf)
	zs.Modified = stamp
	c.Assert(zs.WriteDocument("a.xml", []byte("<a/>")), IsNil)
	c.Assert(zs.WriteDocument("b.xml", []byte("<b/>")), IsNil)
	c.Assert(zs.Close(), IsNil)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	c.Assert(err, IsNil)
	c.Assert(zr.File, HasLen, 2)
	for _, f := range zr.File {
		c.Check(f.Method, Equals, zip.Deflate)
		c.Check(f.Modified.Equal(stamp), Equals, true, Commentf("%s: %v", f.Name, f.Modified))
	}
}

func (s *SinkSuite) TestResponseSink(c *C) {
	rec := httptest.NewRecorder()
	wb := totalsWorkbook()
	c.Assert(wb.Save(&ResponseSink{W: rec}, "report.xls"), IsNil)

	c.Assert(rec.Header().Get("Content-Type"), Equals, "application/vnd.ms-excel")
	c.Assert(rec.Header().Get("Content-Disposition"), Equals, "attachment; filename=report.xls")
	c.Assert(rec.Header().Get("ETag"), Equals, `"`+Fingerprint(rec.Body.Bytes()).String()+`"`)

	rec = httptest.NewRecorder()
	c.Assert(wb.Save(&ResponseSink{W: rec, OpenInBrowser: true}, "report.xls"), IsNil)
	c.Assert(rec.Header().Get("Content-Disposition"), Equals, "")
}

func (s *SinkSuite) TestResponseSinkQuotesFilename(c *C) {
	wb := totalsWorkbook()
	for name, want := range map[string]string{
		"Q1 report.xls": `attachment; filename="Q1 report.xls"`,
		`a;b".xls`:      `attachment; filename="a;b\".xls"`,
		"Bericht ü.xls": `attachment; filename*=utf-8''Bericht%20%C3%BC.xls`,
	} {
		rec := httptest.NewRecorder()
		c.Assert(wb.Save(&ResponseSink{W: rec}, name), IsNil)
		c.Check(rec.Header().Get("Content-Disposition"), Equals, want)
	}
}

func (s *SinkSuite) TestFingerprint(c *C) {
	a := Fingerprint([]byte("one"))
	c.Assert(Fingerprint([]byte("one")), Equals, a)
	c.Assert(Fingerprint([]byte("two")), Not(Equals), a)
}
