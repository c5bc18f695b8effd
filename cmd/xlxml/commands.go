package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adnsv/go-xlxml/internal/bookdef"
	"github.com/adnsv/go-xlxml/tabular"
	"github.com/adnsv/go-xlxml/xl"
)

type options struct {
	output  string
	charset string
	strict  bool
	zip     bool
	sheet   string
	verbose bool

	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "xlxml",
		Short: "Generate XML Spreadsheet 2003 documents",
		Long: `xlxml writes workbooks in the single-file XML Spreadsheet 2003 format,
either from a YAML workbook definition or from a CSV file.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if o.verbose {
				level = slog.LevelDebug
			}
			o.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "Log debug details")

	build := &cobra.Command{
		Use:   "build <def.yaml>",
		Short: "Build a workbook from a YAML definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runBuild(cmd, args[0])
		},
	}
	o.outputFlags(build)

	imp := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Convert a CSV file into a one-sheet workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runImport(cmd, args[0])
		},
	}
	o.outputFlags(imp)
	imp.Flags().StringVar(&o.sheet, "sheet", "", "Worksheet name (default: file name)")

	lint := &cobra.Command{
		Use:   "lint <def.yaml>",
		Short: "Report suspicious styles and named ranges in a definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runLint(cmd, args[0])
		},
	}

	root.AddCommand(build, imp, lint)
	return root
}

func (o *options) outputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&o.charset, "charset", "ascii", "Output charset: ascii, windows-1252, utf-8")
	cmd.Flags().BoolVar(&o.strict, "strict", false, "Escape every text and attribute value strictly")
	cmd.Flags().BoolVar(&o.zip, "zip", false, "Wrap the document in a ZIP archive")
}

func (o *options) writer() (*xl.Writer, error) {
	cs, err := xl.ParseCharset(o.charset)
	if err != nil {
		return nil, err
	}
	w := xl.NewWriter()
	w.Charset = cs
	if o.strict {
		w.Escaping = xl.EscapeStrict
	}
	return w, nil
}

func (o *options) runBuild(cmd *cobra.Command, path string) error {
	def, err := bookdef.Load(path)
	if err != nil {
		return err
	}
	wb, err := def.Build()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	o.log.Debug("definition loaded", "path", path, "workbook", wb.ID,
		"styles", wb.Styles.Len(), "sheets", wb.Sheets.Len(), "names", wb.Names.Len())
	for _, d := range wb.Diagnostics() {
		o.log.Warn(d, "workbook", wb.ID)
	}
	return o.emit(cmd, wb, path)
}

func (o *options) runImport(cmd *cobra.Command, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	tbl, err := tabular.ReadCSV(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	name := o.sheet
	if name == "" {
		name = baseName(path)
	}
	if err := xl.ValidateSheetName(name); err != nil {
		return fmt.Errorf("sheet name '%s': %w", name, err)
	}

	wb := xl.NewWorkbook()
	ok, err := wb.SetData(tbl.Source(), name)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if !ok {
		o.log.Warn("no records", "path", path, "workbook", wb.ID)
	}
	o.log.Debug("csv imported", "path", path, "workbook", wb.ID,
		"fields", len(tbl.Fields), "records", len(tbl.Rows))
	return o.emit(cmd, wb, path)
}

func (o *options) runLint(cmd *cobra.Command, path string) error {
	def, err := bookdef.Load(path)
	if err != nil {
		return err
	}
	wb, err := def.Build()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	out := cmd.OutOrStdout()
	for _, d := range wb.Diagnostics() {
		fmt.Fprintf(out, "%s: %s\n", path, d)
	}
	bad := 0
	for _, nr := range wb.Names.All() {
		if _, err := xl.ParseRangeRef(nr.RefersTo); err != nil {
			bad++
		}
	}
	if bad > 0 {
		return fmt.Errorf("%s: %d malformed named range(s)", path, bad)
	}
	return nil
}

// emit encodes wb and writes it to the output path, or to stdout when no
// path is given.
func (o *options) emit(cmd *cobra.Command, wb *xl.Workbook, input string) error {
	w, err := o.writer()
	if err != nil {
		return err
	}
	doc, err := w.Encode(wb)
	if err != nil {
		return err
	}

	if o.zip {
		var buf bytes.Buffer
		zs := xl.NewZipStorage(&buf)
		if err := zs.WriteDocument(baseName(input)+".xml", doc); err != nil {
			return err
		}
		if err := zs.Close(); err != nil {
			return err
		}
		doc = buf.Bytes()
	}

	if o.output == "" {
		if _, err := cmd.OutOrStdout().Write(doc); err != nil {
			return err
		}
	} else {
		sink := xl.NewDirStorage(filepath.Dir(o.output))
		if err := sink.WriteDocument(filepath.Base(o.output), doc); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	o.log.Info("workbook written", "workbook", wb.ID, "sheets", wb.Sheets.Len(),
		"output", outputLabel(o.output), "bytes", len(doc), "fingerprint", xl.Fingerprint(doc))
	return nil
}

func baseName(path string) string {
	b := filepath.Base(path)
	return strings.TrimSuffix(b, filepath.Ext(b))
}

func outputLabel(path string) string {
	if path == "" {
		return "-"
	}
	return path
}
