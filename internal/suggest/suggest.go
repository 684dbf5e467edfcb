// Package suggest generates AI improvement suggestions for indicator
// records. It is the upstream producer of the three suggestion shapes
// the dashboard renders: structured on success, a raw-fallback payload
// when the model reply cannot be parsed or the API fails, and absent
// when a record was never annotated.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/peter890821/esg-eval-dashboard/internal/model"
	"github.com/peter890821/esg-eval-dashboard/pkg/anthropic"
)

const systemPrompt = "你是上市公司 ESG 評鑑顧問。針對每一項評鑑指標，" +
	"以繁體中文提出具體改善建議，並且只輸出一個 JSON 物件，" +
	"包含以下欄位：core_requirement（白話核心要求）、gap_analysis（差距分析）、" +
	"actions（具體行動清單，字串陣列）、references（官方參考資料）、" +
	"assignment（建議負責單位）。不要輸出 JSON 以外的文字。"

// Generator annotates records via the Anthropic API.
type Generator struct {
	client        anthropic.Client
	model         string
	maxTokens     int64
	maxConcurrent int
}

// New creates a Generator.
func New(client anthropic.Client, modelID string, maxTokens int64, maxConcurrent int) *Generator {
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &Generator{
		client:        client,
		model:         modelID,
		maxTokens:     maxTokens,
		maxConcurrent: maxConcurrent,
	}
}

// Annotate returns a copy of records with AI suggestions attached,
// generated with bounded parallelism. Records already carrying a
// suggestion are left untouched. Generation failures are embedded as
// error-marked payloads rather than aborting the run, so the output is
// always a complete dataset.
func (g *Generator) Annotate(ctx context.Context, records []model.Record) ([]model.Record, error) {
	out := make([]model.Record, len(records))
	copy(out, records)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.maxConcurrent)

	for i := range out {
		if out[i].AISuggestion != nil {
			continue
		}
		eg.Go(func() error {
			out[i].AISuggestion = g.generate(ctx, out[i])
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// generate produces the suggestion payload for one record. It never
// returns nil: failures degrade to marked payloads.
func (g *Generator) generate(ctx context.Context, r model.Record) *model.Suggestion {
	resp, err := g.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     g.model,
		MaxTokens: g.maxTokens,
		System:    systemPrompt,
		Messages:  []anthropic.Message{{Role: "user", Content: recordPrompt(r)}},
	})
	if err != nil {
		zap.L().Warn("suggestion generation failed",
			zap.String("id", r.ID),
			zap.Error(err),
		)
		return &model.Suggestion{Error: err.Error()}
	}

	return ParseReply(resp.Text)
}

// ParseReply converts a model reply into a suggestion payload. An
// unparseable reply is preserved verbatim under a parse-error marker
// instead of being dropped.
func ParseReply(reply string) *model.Suggestion {
	var s model.Suggestion
	if err := json.Unmarshal([]byte(stripFences(reply)), &s); err != nil {
		return &model.Suggestion{ParseError: true, RawResponse: reply}
	}
	return &s
}

// stripFences removes a surrounding markdown code fence, which models
// emit despite instructions.
func stripFences(reply string) string {
	trimmed := strings.TrimSpace(reply)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// recordPrompt renders one record as the user message.
func recordPrompt(r model.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "指標代號：%s\n", r.ID)
	fmt.Fprintf(&b, "構面：%s\n", r.Face.LongLabel())
	if r.Title != "" {
		fmt.Fprintf(&b, "指標內容：%s\n", r.Title)
	}
	if r.Description != "" {
		fmt.Fprintf(&b, "今年度自評說明：%s\n", r.Description)
	}
	if r.PriorYearNote != "" {
		fmt.Fprintf(&b, "去年度自評說明：%s\n", r.PriorYearNote)
	}
	if r.Department != "" {
		fmt.Fprintf(&b, "負責單位：%s\n", r.Department)
	}
	return b.String()
}
