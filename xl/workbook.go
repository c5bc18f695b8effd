package xl

import (
	"time"

	"github.com/google/uuid"
)

// Workbook is the root of the document model. It is built by one caller and
// then serialized; nothing in it is safe for concurrent mutation.
type Workbook struct {
	// ID identifies this in-memory instance, e.g. in logs. It is not
	// written to the document.
	ID uuid.UUID

	Properties DocumentProperties
	Window     WindowSettings
	Styles     *Styles
	Sheets     *Worksheets
	Names      *NamedRanges
}

// DocumentProperties is the author/version metadata block.
type DocumentProperties struct {
	Author     string
	LastAuthor string
	Company    string
	Version    string
	Created    time.Time // written in UTC; zero writes an empty element
}

const createdLayout = "2006-01-02T15:04:05Z"

func (p *DocumentProperties) createdString() string {
	if p.Created.IsZero() {
		return ""
	}
	return p.Created.UTC().Format(createdLayout)
}

// WindowSettings is the host application's window geometry and protection.
type WindowSettings struct {
	Width            int
	Height           int
	TopX             int
	TopY             int
	ProtectStructure bool
	ProtectWindows   bool
}

func NewWorkbook() *Workbook {
	return &Workbook{
		ID: uuid.New(),
		Properties: DocumentProperties{
			Version: "11.8132",
		},
		Window: WindowSettings{
			Width:  12000,
			Height: 7995,
			TopX:   120,
			TopY:   60,
		},
		Styles: newStyles(),
		Sheets: &Worksheets{},
		Names:  &NamedRanges{},
	}
}

// AddSheet is shorthand for wb.Sheets.Add.
func (wb *Workbook) AddSheet(name string) *Worksheet {
	return wb.Sheets.Add(name)
}

// AddStyle is shorthand for wb.Styles.Add.
func (wb *Workbook) AddStyle(name string) *Style {
	return wb.Styles.Add(name)
}

// AddName is shorthand for wb.Names.Add.
func (wb *Workbook) AddName(name, refersTo string) *NamedRange {
	return wb.Names.Add(name, refersTo)
}

// FindContaining reports the named range covering a cell of sheet.
func (wb *Workbook) FindContaining(sheet *Worksheet, row, col int) (string, error) {
	return wb.Names.FindContaining(sheet.Name, row, col)
}

// Generate serializes the workbook with default settings.
func (wb *Workbook) Generate() (string, error) {
	return NewWriter().Generate(wb)
}

// Save generates the workbook with default settings and hands the encoded
// document to sink under name.
func (wb *Workbook) Save(sink Sink, name string) error {
	return NewWriter().Save(wb, sink, name)
}
