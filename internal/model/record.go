package model

import "regexp"

// Face is the categorical axis of an indicator.
type Face string

const (
	FaceE Face = "E"
	FaceS Face = "S"
	FaceG Face = "G"
)

// faceLabels maps a face to its long display label.
var faceLabels = map[Face]string{
	FaceE: "環境 (Environmental)",
	FaceS: "社會 (Social)",
	FaceG: "公司治理 (Governance)",
}

// LongLabel returns the display label for the face. Unknown or absent
// faces fall into the governance bucket.
func (f Face) LongLabel() string {
	if label, ok := faceLabels[f]; ok {
		return label
	}
	return faceLabels[FaceG]
}

// CSSClass returns the style class for the face. Unknown or absent
// faces render as governance.
func (f Face) CSSClass() string {
	switch f {
	case FaceE:
		return "face-e"
	case FaceS:
		return "face-s"
	default:
		return "face-g"
	}
}

// StatusTag marks whether an indicator is newly introduced this cycle
// or a revision of a prior-cycle item.
type StatusTag string

const (
	StatusNew      StatusTag = "New"
	StatusModified StatusTag = "Modified"
)

// DepartmentUnassigned is the synthetic grouping bucket for records
// without a department. It always sorts last on the board.
const DepartmentUnassigned = "待分配"

// codePattern matches indicator identifiers: a face letter, a hyphen,
// one or more digits (e.g. "G-12"). Source rows whose id does not match
// are section headers or notes, not indicators.
var codePattern = regexp.MustCompile(`^[ESG]-[0-9]+$`)

// Record is one evaluation indicator as loaded from the dataset.
// All fields except ID are optional; absent values render as defined
// placeholders, never as errors.
type Record struct {
	ID         string    `json:"id"`
	Face       Face      `json:"face,omitempty"`
	StatusTag  StatusTag `json:"statusTag,omitempty"`
	Department string    `json:"department,omitempty"`

	// ScoreNumeric is the binary score signal (0 or 1) and takes
	// precedence over ScoreText when present.
	ScoreNumeric *int   `json:"scoreNumeric,omitempty"`
	ScoreText    string `json:"scoreText,omitempty"`

	Title             string `json:"title,omitempty"`
	Description       string `json:"description,omitempty"`
	Evidence          string `json:"evidence,omitempty"`
	PriorYearBasis    string `json:"priorYearBasis,omitempty"`
	PriorYearNote     string `json:"priorYearNote,omitempty"`
	GapOfficialSite   string `json:"gapOfficialSite,omitempty"`
	GapAnnualReport   string `json:"gapAnnualReport,omitempty"`
	PriorUnscoredNote string `json:"priorUnscoredNote,omitempty"`
	CorrectionType    string `json:"correctionType,omitempty"`
	PriorID           string `json:"priorID,omitempty"`
	QuestionType      string `json:"questionType,omitempty"`

	AISuggestion *Suggestion `json:"aiSuggestion,omitempty"`
}

// IsIndicator reports whether the record's identifier matches the
// indicator code pattern.
func (r Record) IsIndicator() bool {
	return codePattern.MatchString(r.ID)
}

// IsNew reports whether the record was newly introduced this cycle.
func (r Record) IsNew() bool {
	return r.StatusTag == StatusNew
}

// DepartmentKey returns the board grouping key: the department itself,
// or the unassigned sentinel when the department is absent. The stored
// value is never mutated.
func (r Record) DepartmentKey() string {
	if r.Department == "" {
		return DepartmentUnassigned
	}
	return r.Department
}

// SuggestionKind resolves the shape of the attached AI suggestion.
func (r Record) SuggestionKind() SuggestionKind {
	return r.AISuggestion.Kind()
}

// HasActionableAI reports whether the record carries a well-formed AI
// suggestion, i.e. one present and free of error or parse-error markers.
func (r Record) HasActionableAI() bool {
	return r.SuggestionKind() == SuggestionStructured
}
