package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/peter890821/esg-eval-dashboard/internal/model"
	"github.com/peter890821/esg-eval-dashboard/internal/view"
)

// XLSXFilename is the suggested download name for the XLSX artifact.
const XLSXFilename = "esg_indicators.xlsx"

// XLSX writes the filtered set as a single-sheet workbook with the
// same columns as the CSV artifact.
func XLSX(records []model.Record, w io.Writer) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("indicators")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range view.CSVColumns {
		header.AddCell().Value = col
	}
	for _, r := range records {
		row := sheet.AddRow()
		for _, cell := range view.CSVRow(r) {
			row.AddCell().Value = cell
		}
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write xlsx")
	}
	return nil
}
