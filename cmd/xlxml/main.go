// Command xlxml builds XML Spreadsheet 2003 documents from YAML workbook
// definitions or CSV files.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
