package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peter890821/esg-eval-dashboard/internal/model"
)

func intPtr(n int) *int { return &n }

func TestSummarizeBadge(t *testing.T) {
	t.Parallel()

	assert.Equal(t, BadgeNew, Summarize(model.Record{ID: "E-1", StatusTag: model.StatusNew}).Badge)
	assert.Equal(t, BadgeModified, Summarize(model.Record{ID: "E-1", StatusTag: model.StatusModified}).Badge)
	assert.Equal(t, BadgeModified, Summarize(model.Record{ID: "E-1"}).Badge, "unset status renders as modified")
}

func TestScoreBadgePolicy(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		record    model.Record
		wantLabel string
		wantClass string
	}{
		{
			name:      "new status overrides a zero score",
			record:    model.Record{ID: "E-1", StatusTag: model.StatusNew, ScoreNumeric: intPtr(0)},
			wantLabel: "(new)",
			wantClass: "score-new",
		},
		{
			name:      "binary one is a pass",
			record:    model.Record{ID: "E-1", ScoreNumeric: intPtr(1)},
			wantLabel: "1 point",
			wantClass: "score-pass",
		},
		{
			name:      "binary zero is a fail",
			record:    model.Record{ID: "E-1", ScoreNumeric: intPtr(0)},
			wantLabel: "0 points",
			wantClass: "score-fail",
		},
		{
			name:      "binary score beats free text",
			record:    model.Record{ID: "E-1", ScoreNumeric: intPtr(1), ScoreText: "部分符合規範"},
			wantLabel: "1 point",
			wantClass: "score-pass",
		},
		{
			name:      "free text truncated to six runes",
			record:    model.Record{ID: "E-1", ScoreText: "部分符合規範要求"},
			wantLabel: "部分符合規範",
			wantClass: "score-pass",
		},
		{
			name:      "no score at all",
			record:    model.Record{ID: "E-1"},
			wantLabel: "—",
			wantClass: "score-none",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Summarize(tc.record).Score
			assert.Equal(t, tc.wantLabel, got.Label)
			assert.Equal(t, tc.wantClass, got.Class)
		})
	}
}

func TestSummarizeTitle(t *testing.T) {
	t.Parallel()

	t.Run("newlines become single spaces", func(t *testing.T) {
		t.Parallel()
		got := Summarize(model.Record{ID: "E-1", Title: "第一行\n第二行\r\n第三行"})
		assert.Equal(t, "第一行 第二行 第三行", got.Title)
	})

	t.Run("truncated at 100 runes", func(t *testing.T) {
		t.Parallel()
		long := strings.Repeat("永", 150)
		got := Summarize(model.Record{ID: "E-1", Title: long})
		assert.Equal(t, strings.Repeat("永", 100), got.Title)
	})
}

func TestSummarizeHasAI(t *testing.T) {
	t.Parallel()

	assert.False(t, Summarize(model.Record{ID: "E-1"}).HasAI)
	assert.False(t, Summarize(model.Record{
		ID:           "E-1",
		AISuggestion: &model.Suggestion{ParseError: true, RawResponse: "xyz"},
	}).HasAI)
	assert.True(t, Summarize(model.Record{
		ID:           "E-1",
		AISuggestion: &model.Suggestion{CoreRequirement: "公開揭露"},
	}).HasAI)
}

func TestSummarizeFaceClass(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "face-e", Summarize(model.Record{ID: "E-1", Face: model.FaceE}).FaceClass)
	assert.Equal(t, "face-g", Summarize(model.Record{ID: "G-1"}).FaceClass, "absent face falls to governance")
}

func TestSummarizeAllPreservesOrder(t *testing.T) {
	t.Parallel()

	records := []model.Record{{ID: "S-1"}, {ID: "E-1"}, {ID: "G-9"}}
	got := SummarizeAll(records)
	assert.Equal(t, []string{"S-1", "E-1", "G-9"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestScoreCell(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1", ScoreCell(model.Record{ScoreNumeric: intPtr(1)}))
	assert.Equal(t, "0", ScoreCell(model.Record{ScoreNumeric: intPtr(0)}))
	assert.Equal(t, "部分符合", ScoreCell(model.Record{ScoreText: "部分符合"}))
	assert.Empty(t, ScoreCell(model.Record{}))
}
