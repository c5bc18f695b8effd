package xl

import (
	"archive/zip"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Sink receives a finished, encoded document.
type Sink interface {
	WriteDocument(name string, doc []byte) error
}

// Save encodes wb and passes it to sink.
func (w *Writer) Save(wb *Workbook, sink Sink, name string) error {
	doc, err := w.Encode(wb)
	if err != nil {
		return err
	}
	return sink.WriteDocument(name, doc)
}

// DirStorage saves each document as a file under Dir. Names are slash
// separated and must stay inside Dir.
type DirStorage struct {
	Dir string
}

func NewDirStorage(dir string) *DirStorage {
	return &DirStorage{Dir: dir}
}

// WriteDocument writes doc to Dir/name, creating missing directories.
func (ds *DirStorage) WriteDocument(name string, doc []byte) error {
	rel := filepath.FromSlash(name)
	if !filepath.IsLocal(rel) {
		return fmt.Errorf("document name '%s' is outside the output directory", name)
	}
	fn := filepath.Join(ds.Dir, rel)
	if err := os.MkdirAll(filepath.Dir(fn), 0o777); err != nil {
		return err
	}
	return os.WriteFile(fn, doc, 0o666)
}

// ZipStorage packs documents into one ZIP archive written to an io.Writer.
// The archive is incomplete until Close.
type ZipStorage struct {
	z *zip.Writer

	// Modified stamps every entry; zero means the time of the write.
	Modified time.Time
}

func NewZipStorage(out io.Writer) *ZipStorage {
	return &ZipStorage{z: zip.NewWriter(out)}
}

// WriteDocument adds doc as a deflated entry.
func (zs *ZipStorage) WriteDocument(name string, doc []byte) error {
	mod := zs.Modified
	if mod.IsZero() {
		mod = time.Now()
	}
	f, err := zs.z.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: mod,
	})
	if err != nil {
		return fmt.Errorf("adding '%s' to archive: %w", name, err)
	}
	_, err = f.Write(doc)
	return err
}

// Close writes the archive directory. The underlying writer is not closed.
func (zs *ZipStorage) Close() error {
	return zs.z.Close()
}

// ContentType is the media type spreadsheet applications register for this
// markup.
const ContentType = "application/vnd.ms-excel"

// ResponseSink sends the document as an HTTP response body.
type ResponseSink struct {
	W http.ResponseWriter

	// OpenInBrowser omits the attachment disposition so the browser may
	// hand the document to the application inline.
	OpenInBrowser bool
}

// WriteDocument sets Content-Type, Content-Disposition (unless
// OpenInBrowser) and an ETag derived from the content, then writes doc.
func (rs *ResponseSink) WriteDocument(name string, doc []byte) error {
	h := rs.W.Header()
	h.Set("Content-Type", ContentType)
	h.Set("Content-Length", strconv.Itoa(len(doc)))
	h.Set("ETag", `"`+Fingerprint(doc).String()+`"`)
	if !rs.OpenInBrowser {
		h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	}
	_, err := rs.W.Write(doc)
	return err
}
