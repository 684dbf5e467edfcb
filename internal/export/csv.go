// Package export serializes the current filtered record set into
// downloadable artifacts.
package export

import (
	"strings"

	"github.com/peter890821/esg-eval-dashboard/internal/model"
	"github.com/peter890821/esg-eval-dashboard/internal/view"
)

// bom guarantees correct UTF-8 detection by spreadsheet software.
const bom = "\uFEFF"

// CSVFilename is the suggested download name for the CSV artifact.
const CSVFilename = "esg_indicators.csv"

var cellFlattener = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// CSV serializes records (header plus one row per record) with a BOM
// prefix. Every cell is quoted; embedded quotes are doubled and
// embedded newlines collapse to a single space.
func CSV(records []model.Record) []byte {
	var b strings.Builder
	b.WriteString(bom)
	b.WriteString(joinRow(view.CSVColumns))
	for _, r := range records {
		b.WriteString("\n")
		b.WriteString(joinRow(view.CSVRow(r)))
	}
	return []byte(b.String())
}

func joinRow(cells []string) string {
	quoted := make([]string, len(cells))
	for i, cell := range cells {
		quoted[i] = quoteCell(cell)
	}
	return strings.Join(quoted, ",")
}

func quoteCell(cell string) string {
	cell = cellFlattener.Replace(cell)
	cell = strings.ReplaceAll(cell, `"`, `""`)
	return `"` + cell + `"`
}
