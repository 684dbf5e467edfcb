package view

import (
	"strings"

	"github.com/peter890821/esg-eval-dashboard/internal/model"
)

// InfoBlock is the fixed-field block at the top of the detail overlay.
type InfoBlock struct {
	FaceLabel    string `json:"faceLabel"`
	QuestionType string `json:"questionType"`
	PriorID      string `json:"priorID"`
	Score        string `json:"score"`
	Department   string `json:"department"`
}

// AISection is the AI-suggestion portion of the detail overlay,
// rendered as a three-way branch on the suggestion's resolved shape.
// Exactly one of Structured, RawText or Placeholder is populated.
type AISection struct {
	Kind        string        `json:"kind"` // "structured", "raw" or "absent"
	Structured  *AIStructured `json:"structured,omitempty"`
	RawText     string        `json:"rawText,omitempty"`
	Placeholder string        `json:"placeholder,omitempty"`
}

// AIStructured holds the five labeled sub-items of a well-formed
// suggestion. Absent fields default to N/A.
type AIStructured struct {
	CoreRequirement string   `json:"coreRequirement"`
	GapAnalysis     string   `json:"gapAnalysis"`
	ActionItems     []string `json:"actionItems,omitempty"`
	ActionText      string   `json:"actionText,omitempty"`
	References      string   `json:"references"`
	Assignment      string   `json:"assignment"`
}

// Detail is the full projection for the single-record overlay.
type Detail struct {
	ID         string `json:"id"`
	Badge      string `json:"badge"`
	BadgeClass string `json:"badgeClass"`
	Title      string `json:"title"`

	Info InfoBlock `json:"info"`

	Description string `json:"description"`
	Evidence    string `json:"evidence"`

	// PriorYearNote is shown only for non-New records that carry one;
	// otherwise the section is omitted entirely.
	PriorYearNote string `json:"priorYearNote,omitempty"`

	// Gaps is the assembled gaps-and-corrections section, or empty when
	// no gap field is present.
	Gaps string `json:"gaps,omitempty"`

	AI AISection `json:"ai"`
}

// Project maps one record to its full detail payload.
func Project(r model.Record) Detail {
	badge, badgeClass := BadgeModified, "badge-mod"
	if r.IsNew() {
		badge, badgeClass = BadgeNew, "badge-new"
	}

	d := Detail{
		ID:         r.ID,
		Badge:      badge,
		BadgeClass: badgeClass,
		Title:      orNA(r.Title),
		Info: InfoBlock{
			FaceLabel:    r.Face.LongLabel(),
			QuestionType: orNA(r.QuestionType),
			PriorID:      priorID(r),
			Score:        detailScore(r),
			Department:   r.DepartmentKey(),
		},
		Description: orNA(r.Description),
		Evidence:    orNA(r.Evidence),
		AI:          aiSection(r),
	}

	if !r.IsNew() {
		d.PriorYearNote = r.PriorYearNote
		d.Gaps = gapsSection(r)
	}

	return d
}

// priorID defaults the prior-cycle identifier to "(new)".
func priorID(r model.Record) string {
	if r.PriorID == "" {
		return "(new)"
	}
	return r.PriorID
}

// detailScore renders the current-year score: not applicable for New
// records, otherwise through the summary score policy.
func detailScore(r model.Record) string {
	if r.IsNew() {
		return NotAvailable
	}
	return scoreBadge(r).Label
}

// gapLabels pairs each gap field with its display label, in render
// order.
func gapsSection(r model.Record) string {
	fields := []struct {
		label string
		value string
	}{
		{"官網揭露缺口", r.GapOfficialSite},
		{"年報揭露缺口", r.GapAnnualReport},
		{"去年未得分說明", r.PriorUnscoredNote},
		{"修正類型", r.CorrectionType},
	}

	var lines []string
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		lines = append(lines, f.label+": "+f.value)
	}
	return strings.Join(lines, "\n")
}

// aiSection resolves the three-way AI branch. Malformed upstream output
// degrades to a raw dump or placeholder; it never aborts the detail
// projection.
func aiSection(r model.Record) AISection {
	s := r.AISuggestion
	switch s.Kind() {
	case model.SuggestionStructured:
		structured := &AIStructured{
			CoreRequirement: orNA(s.CoreRequirement),
			GapAnalysis:     orNA(s.GapText()),
			References:      orNA(s.References),
			Assignment:      orNA(s.Assignment),
		}
		if s.Actions.IsList() {
			structured.ActionItems = s.Actions.Items
		} else {
			structured.ActionText = orNA(s.Actions.Text)
		}
		return AISection{Kind: "structured", Structured: structured}
	case model.SuggestionRawFallback:
		return AISection{Kind: "raw", RawText: s.RawText()}
	default:
		return AISection{Kind: "absent", Placeholder: NotYetGenerated}
	}
}
