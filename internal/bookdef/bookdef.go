// Package bookdef reads declarative workbook definitions from YAML and
// builds xl workbooks from them.
package bookdef

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/adnsv/go-xlxml/xl"
)

type Definition struct {
	Properties Properties `yaml:"properties"`
	Window     Window     `yaml:"window"`
	Styles     []Style    `yaml:"styles" validate:"dive"`
	Names      []Name     `yaml:"names" validate:"dive"`
	Sheets     []Sheet    `yaml:"sheets" validate:"dive"`
}

type Properties struct {
	Author     string    `yaml:"author"`
	LastAuthor string    `yaml:"last_author"`
	Company    string    `yaml:"company"`
	Version    string    `yaml:"version"`
	Created    time.Time `yaml:"created"`
}

// Window overrides the default window settings field by field.
type Window struct {
	Width            *int `yaml:"width" validate:"omitempty,gte=0"`
	Height           *int `yaml:"height" validate:"omitempty,gte=0"`
	TopX             *int `yaml:"top_x"`
	TopY             *int `yaml:"top_y"`
	ProtectStructure bool `yaml:"protect_structure"`
	ProtectWindows   bool `yaml:"protect_windows"`
}

type Style struct {
	Name         string    `yaml:"name" validate:"required"`
	Font         Font      `yaml:"font"`
	Alignment    Alignment `yaml:"alignment"`
	Interior     Interior  `yaml:"interior"`
	NumberFormat string    `yaml:"number_format"`
	Borders      []Border  `yaml:"borders" validate:"dive"`
}

type Font struct {
	Name          string  `yaml:"name"`
	Size          float64 `yaml:"size" validate:"gte=0"`
	Color         string  `yaml:"color" validate:"omitempty,color"`
	Bold          bool    `yaml:"bold"`
	Italic        bool    `yaml:"italic"`
	Outline       bool    `yaml:"outline"`
	Shadow        bool    `yaml:"shadow"`
	StrikeThrough bool    `yaml:"strike_through"`
	Underline     string  `yaml:"underline"`
}

type Alignment struct {
	Horizontal   string  `yaml:"horizontal"`
	Vertical     string  `yaml:"vertical"`
	Rotate       float64 `yaml:"rotate"`
	Indent       int     `yaml:"indent" validate:"gte=0"`
	WrapText     bool    `yaml:"wrap_text"`
	ShrinkToFit  bool    `yaml:"shrink_to_fit"`
	VerticalText bool    `yaml:"vertical_text"`
}

type Interior struct {
	Color        string `yaml:"color" validate:"omitempty,color"`
	Pattern      string `yaml:"pattern"`
	PatternColor string `yaml:"pattern_color" validate:"omitempty,color"`
}

type Border struct {
	Position  string  `yaml:"position" validate:"required"`
	LineStyle string  `yaml:"line_style"`
	Color     string  `yaml:"color" validate:"omitempty,color"`
	Weight    float64 `yaml:"weight" validate:"gte=0"`
}

type Name struct {
	Name     string `yaml:"name" validate:"required"`
	RefersTo string `yaml:"refers_to" validate:"required"`
}

type Sheet struct {
	Name    string   `yaml:"name" validate:"omitempty,sheetname"`
	Columns []Column `yaml:"columns" validate:"dive"`
	Rows    []Row    `yaml:"rows" validate:"dive"`
}

type Column struct {
	Index   int     `yaml:"index" validate:"gte=0"`
	Width   float64 `yaml:"width" validate:"gte=0"`
	AutoFit bool    `yaml:"autofit"`
	Hidden  bool    `yaml:"hidden"`
	Style   string  `yaml:"style"`
}

type Row struct {
	Index   int     `yaml:"index" validate:"gte=0"`
	Height  float64 `yaml:"height" validate:"gte=0"`
	AutoFit bool    `yaml:"autofit"`
	Hidden  bool    `yaml:"hidden"`
	Style   string  `yaml:"style"`
	Cells   []Cell  `yaml:"cells" validate:"dive"`
}

type Cell struct {
	Index       int    `yaml:"index" validate:"gte=0"`
	MergeAcross int    `yaml:"merge_across" validate:"gte=0"`
	MergeDown   int    `yaml:"merge_down" validate:"gte=0"`
	Style       string `yaml:"style"`
	Formula     string `yaml:"formula"`
	HRef        string `yaml:"href"`
	Type        string `yaml:"type"`
	Value       string `yaml:"value"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("sheetname", func(fl validator.FieldLevel) bool {
		return xl.ValidateSheetName(fl.Field().String()) == nil
	})
	v.RegisterValidation("color", func(fl validator.FieldLevel) bool {
		_, err := xl.ParseColor(fl.Field().String())
		return err == nil
	})
	return v
}

// Load reads and validates a definition file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse decodes and validates a YAML definition. Unknown keys are errors.
func Parse(data []byte) (*Definition, error) {
	d := &Definition{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(d); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding definition: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate checks field constraints and reports every violation.
func (d *Definition) Validate() error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", strings.TrimPrefix(fe.Namespace(), "Definition."), fe.Tag()))
	}
	return fmt.Errorf("invalid definition: %s", strings.Join(msgs, "; "))
}
