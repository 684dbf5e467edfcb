package model

import "encoding/json"

// SuggestionKind is the resolved shape of an AI suggestion payload.
// The shape is decided once at decode time, not re-sniffed per render.
type SuggestionKind int

const (
	// SuggestionAbsent means no suggestion was ever generated.
	SuggestionAbsent SuggestionKind = iota
	// SuggestionStructured is a well-formed suggestion with labeled fields.
	SuggestionStructured
	// SuggestionRawFallback carries an error or parse-error marker; only
	// the raw text is trustworthy and it is rendered verbatim.
	SuggestionRawFallback
)

// Suggestion is the optional AI-generated annotation attached to a
// record. Upstream generation may fail in two ways — an API error or an
// unparseable model reply — and both are preserved here rather than
// dropped, so the detail view can always show something.
type Suggestion struct {
	CoreRequirement string     `json:"core_requirement,omitempty"`
	GapAnalysis     string     `json:"gap_analysis,omitempty"`
	GapDiagnosis    string     `json:"gap_diagnosis,omitempty"`
	Actions         ActionList `json:"actions,omitzero"`
	References      string     `json:"references,omitempty"`
	Assignment      string     `json:"assignment,omitempty"`

	Error       string `json:"error,omitempty"`
	ParseError  bool   `json:"parse_error,omitempty"`
	RawResponse string `json:"raw_response,omitempty"`

	// raw is the original payload, kept for the fallback dump when a
	// malformed suggestion has no raw_response field.
	raw json.RawMessage
}

// suggestionAlias breaks the UnmarshalJSON recursion.
type suggestionAlias Suggestion

// UnmarshalJSON decodes the suggestion and retains the original bytes.
func (s *Suggestion) UnmarshalJSON(data []byte) error {
	var alias suggestionAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*s = Suggestion(alias)
	s.raw = append(json.RawMessage(nil), data...)
	return nil
}

// Kind resolves the suggestion's shape. A nil receiver is the absent
// shape, so callers never need a nil check before dispatching.
func (s *Suggestion) Kind() SuggestionKind {
	switch {
	case s == nil:
		return SuggestionAbsent
	case s.ParseError || s.Error != "":
		return SuggestionRawFallback
	default:
		return SuggestionStructured
	}
}

// RawText returns the verbatim text for the raw-fallback rendering:
// the raw_response field when present, otherwise a serialized form of
// the whole payload.
func (s *Suggestion) RawText() string {
	if s == nil {
		return ""
	}
	if s.RawResponse != "" {
		return s.RawResponse
	}
	if len(s.raw) > 0 {
		return string(s.raw)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(data)
}

// GapText returns the gap analysis, falling back to the alternate
// gap_diagnosis key when the primary is absent.
func (s *Suggestion) GapText() string {
	if s == nil {
		return ""
	}
	if s.GapAnalysis != "" {
		return s.GapAnalysis
	}
	return s.GapDiagnosis
}

// ActionList is the concrete-actions field, which upstream emits either
// as a JSON array of strings or as one plain string.
type ActionList struct {
	Items []string
	Text  string
}

// IsList reports whether the actions arrived as a sequence.
func (a ActionList) IsList() bool {
	return len(a.Items) > 0
}

// IsZero reports whether no actions were provided at all.
func (a ActionList) IsZero() bool {
	return len(a.Items) == 0 && a.Text == ""
}

// UnmarshalJSON accepts an array of strings, a plain string, or — as a
// last resort — any other value serialized verbatim.
func (a *ActionList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		a.Items = items
		a.Text = ""
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		a.Items = nil
		a.Text = text
		return nil
	}
	a.Items = nil
	a.Text = string(data)
	return nil
}

// MarshalJSON mirrors UnmarshalJSON: arrays round-trip as arrays,
// plain text as a string.
func (a ActionList) MarshalJSON() ([]byte, error) {
	if a.IsList() {
		return json.Marshal(a.Items)
	}
	return json.Marshal(a.Text)
}
