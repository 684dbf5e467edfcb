package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordIsIndicator(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		id   string
		want bool
	}{
		{"environmental code", "E-1", true},
		{"social code", "S-12", true},
		{"governance code", "G-305", true},
		{"section header", "壹、環境面", false},
		{"missing digits", "E-", false},
		{"lowercase letter", "e-1", false},
		{"letter outside set", "X-1", false},
		{"trailing text", "G-1 附註", false},
		{"empty id", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Record{ID: tc.id}.IsIndicator())
		})
	}
}

func TestRecordDepartmentKey(t *testing.T) {
	t.Parallel()

	t.Run("real department passes through", func(t *testing.T) {
		t.Parallel()
		r := Record{ID: "E-1", Department: "永續發展組"}
		assert.Equal(t, "永續發展組", r.DepartmentKey())
	})

	t.Run("absent department maps to sentinel without mutating the record", func(t *testing.T) {
		t.Parallel()
		r := Record{ID: "E-1"}
		assert.Equal(t, DepartmentUnassigned, r.DepartmentKey())
		assert.Empty(t, r.Department)
	})
}

func TestFaceDefaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "face-e", FaceE.CSSClass())
	assert.Equal(t, "face-s", FaceS.CSSClass())
	assert.Equal(t, "face-g", FaceG.CSSClass())

	// Absent or unknown faces render in the governance bucket.
	assert.Equal(t, "face-g", Face("").CSSClass())
	assert.Equal(t, FaceG.LongLabel(), Face("").LongLabel())
}

func TestRecordHasActionableAI(t *testing.T) {
	t.Parallel()

	t.Run("absent suggestion", func(t *testing.T) {
		t.Parallel()
		assert.False(t, Record{ID: "E-1"}.HasActionableAI())
	})

	t.Run("structured suggestion", func(t *testing.T) {
		t.Parallel()
		r := Record{ID: "E-1", AISuggestion: &Suggestion{CoreRequirement: "揭露範疇一排放"}}
		assert.True(t, r.HasActionableAI())
	})

	t.Run("parse-error suggestion is not actionable", func(t *testing.T) {
		t.Parallel()
		r := Record{ID: "E-1", AISuggestion: &Suggestion{ParseError: true, RawResponse: "xyz"}}
		assert.False(t, r.HasActionableAI())
	})

	t.Run("error suggestion is not actionable", func(t *testing.T) {
		t.Parallel()
		r := Record{ID: "E-1", AISuggestion: &Suggestion{Error: "api timeout"}}
		assert.False(t, r.HasActionableAI())
	})
}
