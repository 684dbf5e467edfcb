// Package view projects indicator records into presentation payloads.
// All projections are total over the record shape: absent fields always
// map to a defined placeholder, never to an error.
package view

import (
	"strconv"
	"strings"

	"github.com/peter890821/esg-eval-dashboard/internal/model"
)

// Placeholder strings for absent optional fields.
const (
	NotAvailable     = "N/A"
	NotYetGenerated  = "AI 建議尚未產生"
	neutralScoreDash = "—"
)

// Badge labels shared by the card and row renderings.
const (
	BadgeNew      = "NEW"
	BadgeModified = "MOD"
)

const titleLimit = 100

// ScoreBadge is the score chip shown on a card, row or detail view.
type ScoreBadge struct {
	Label string `json:"label"`
	Class string `json:"class"`
}

// Summary is the compact projection shared by board cards and table
// rows.
type Summary struct {
	ID           string     `json:"id"`
	FaceClass    string     `json:"faceClass"`
	Badge        string     `json:"badge"`
	Title        string     `json:"title"`
	QuestionType string     `json:"questionType"`
	Score        ScoreBadge `json:"score"`
	HasAI        bool       `json:"hasAI"`
}

// Summarize maps one record to its summary payload.
func Summarize(r model.Record) Summary {
	badge := BadgeModified
	if r.IsNew() {
		badge = BadgeNew
	}
	return Summary{
		ID:           r.ID,
		FaceClass:    r.Face.CSSClass(),
		Badge:        badge,
		Title:        truncate(flattenNewlines(r.Title), titleLimit),
		QuestionType: r.QuestionType,
		Score:        scoreBadge(r),
		HasAI:        r.HasActionableAI(),
	}
}

// SummarizeAll maps a record set in order.
func SummarizeAll(records []model.Record) []Summary {
	summaries := make([]Summary, 0, len(records))
	for _, r := range records {
		summaries = append(summaries, Summarize(r))
	}
	return summaries
}

// scoreBadge applies the score classification policy. New status
// overrides any score signal; the binary score takes precedence over
// free text.
func scoreBadge(r model.Record) ScoreBadge {
	switch {
	case r.IsNew():
		return ScoreBadge{Label: "(new)", Class: "score-new"}
	case r.ScoreNumeric != nil && *r.ScoreNumeric == 1:
		return ScoreBadge{Label: "1 point", Class: "score-pass"}
	case r.ScoreNumeric != nil && *r.ScoreNumeric == 0:
		return ScoreBadge{Label: "0 points", Class: "score-fail"}
	case r.ScoreText != "":
		return ScoreBadge{Label: truncate(r.ScoreText, 6), Class: "score-pass"}
	default:
		return ScoreBadge{Label: neutralScoreDash, Class: "score-none"}
	}
}

// ScoreCell renders the score as a plain CSV cell value: the binary
// score when present, otherwise the free-text score, otherwise empty.
func ScoreCell(r model.Record) string {
	if r.ScoreNumeric != nil {
		return strconv.Itoa(*r.ScoreNumeric)
	}
	return r.ScoreText
}

// flattenNewlines replaces embedded line breaks with single spaces.
var newlineFlattener = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func flattenNewlines(s string) string {
	return newlineFlattener.Replace(s)
}

// truncate keeps the first n runes of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// orNA substitutes the N/A placeholder for an absent value.
func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}
