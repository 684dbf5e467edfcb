package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestionKind(t *testing.T) {
	t.Parallel()

	t.Run("nil is absent", func(t *testing.T) {
		t.Parallel()
		var s *Suggestion
		assert.Equal(t, SuggestionAbsent, s.Kind())
	})

	t.Run("clean payload is structured", func(t *testing.T) {
		t.Parallel()
		s := &Suggestion{CoreRequirement: "setup a grievance mailbox"}
		assert.Equal(t, SuggestionStructured, s.Kind())
	})

	t.Run("parse_error marker forces raw fallback", func(t *testing.T) {
		t.Parallel()
		s := &Suggestion{ParseError: true, RawResponse: "not json"}
		assert.Equal(t, SuggestionRawFallback, s.Kind())
	})

	t.Run("error marker forces raw fallback", func(t *testing.T) {
		t.Parallel()
		s := &Suggestion{Error: "overloaded"}
		assert.Equal(t, SuggestionRawFallback, s.Kind())
	})
}

func TestSuggestionRawText(t *testing.T) {
	t.Parallel()

	t.Run("prefers raw_response", func(t *testing.T) {
		t.Parallel()
		var s Suggestion
		require.NoError(t, json.Unmarshal([]byte(`{"parse_error":true,"raw_response":"xyz"}`), &s))
		assert.Equal(t, "xyz", s.RawText())
	})

	t.Run("falls back to serialized payload", func(t *testing.T) {
		t.Parallel()
		var s Suggestion
		raw := `{"error":"api timeout","detail":"unused"}`
		require.NoError(t, json.Unmarshal([]byte(raw), &s))
		assert.Equal(t, raw, s.RawText())
	})
}

func TestSuggestionGapText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "primary", (&Suggestion{GapAnalysis: "primary", GapDiagnosis: "alt"}).GapText())
	assert.Equal(t, "alt", (&Suggestion{GapDiagnosis: "alt"}).GapText())
	assert.Empty(t, (&Suggestion{}).GapText())
}

func TestActionListUnmarshal(t *testing.T) {
	t.Parallel()

	t.Run("array of strings", func(t *testing.T) {
		t.Parallel()
		var a ActionList
		require.NoError(t, json.Unmarshal([]byte(`["盤查排放源","委外查證"]`), &a))
		assert.True(t, a.IsList())
		assert.Equal(t, []string{"盤查排放源", "委外查證"}, a.Items)
	})

	t.Run("plain string", func(t *testing.T) {
		t.Parallel()
		var a ActionList
		require.NoError(t, json.Unmarshal([]byte(`"每季檢討一次"`), &a))
		assert.False(t, a.IsList())
		assert.Equal(t, "每季檢討一次", a.Text)
	})

	t.Run("other values serialize verbatim", func(t *testing.T) {
		t.Parallel()
		var a ActionList
		require.NoError(t, json.Unmarshal([]byte(`{"step":1}`), &a))
		assert.False(t, a.IsList())
		assert.Equal(t, `{"step":1}`, a.Text)
	})
}

func TestSuggestionRoundTrip(t *testing.T) {
	t.Parallel()

	in := `{"core_requirement":"公開溫室氣體盤查","gap_analysis":"缺少範疇三","actions":["盤查","查證"],"references":"GRI 305","assignment":"永續發展組"}`
	var s Suggestion
	require.NoError(t, json.Unmarshal([]byte(in), &s))

	assert.Equal(t, SuggestionStructured, s.Kind())
	assert.Equal(t, "公開溫室氣體盤查", s.CoreRequirement)
	assert.Equal(t, "缺少範疇三", s.GapText())
	assert.Equal(t, []string{"盤查", "查證"}, s.Actions.Items)

	out, err := json.Marshal(&s)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}
