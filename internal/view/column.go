package view

import "github.com/peter890821/esg-eval-dashboard/internal/board"

// Column is one rendered board column: the group key, its accent and
// the member summaries.
type Column struct {
	Key    string    `json:"key"`
	Accent string    `json:"accent"`
	Cards  []Summary `json:"cards"`
}

// ProjectGroups maps board groups to rendered columns.
func ProjectGroups(groups []board.Group) []Column {
	columns := make([]Column, 0, len(groups))
	for _, g := range groups {
		columns = append(columns, Column{
			Key:    g.Key,
			Accent: g.Accent,
			Cards:  SummarizeAll(g.Records),
		})
	}
	return columns
}
