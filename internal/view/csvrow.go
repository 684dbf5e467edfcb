package view

import "github.com/peter890821/esg-eval-dashboard/internal/model"

// CSVColumns is the fixed, ordered export header.
var CSVColumns = []string{
	"指標代號",
	"狀態",
	"構面",
	"指標內容",
	"題型",
	"今年度得分",
	"負責單位",
	"今年度自評說明",
}

// CSVRow projects one record to its export row. Absent fields become
// empty cells, not placeholders; cell escaping is the serializer's job.
func CSVRow(r model.Record) []string {
	return []string{
		r.ID,
		string(r.StatusTag),
		string(r.Face),
		r.Title,
		r.QuestionType,
		ScoreCell(r),
		r.Department,
		r.Description,
	}
}
