package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/peter890821/esg-eval-dashboard/internal/loader"
	"github.com/peter890821/esg-eval-dashboard/internal/model"
	"github.com/peter890821/esg-eval-dashboard/internal/suggest"
	"github.com/peter890821/esg-eval-dashboard/pkg/anthropic"
)

var (
	suggestInput string
	suggestOut   string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Annotate indicators with AI improvement suggestions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.Anthropic.Key == "" {
			return eris.New("anthropic API key is required (ESG_ANTHROPIC_KEY)")
		}

		var (
			records []model.Record
			err     error
		)
		if suggestInput != "" {
			records, err = loader.LoadFile(suggestInput)
		} else {
			ld := loader.New(loader.Options{
				PrimaryURL:  cfg.Dataset.PrimaryURL,
				FallbackURL: cfg.Dataset.FallbackURL,
				Timeout:     time.Duration(cfg.Dataset.TimeoutSecs) * time.Second,
			})
			records, _, err = ld.Load(cmd.Context())
		}
		if err != nil {
			return err
		}

		gen := suggest.New(
			anthropic.NewClient(cfg.Anthropic.Key),
			cfg.Anthropic.Model,
			int64(cfg.Anthropic.MaxTokens),
			cfg.Anthropic.MaxConcurrent,
		)

		annotated, err := gen.Annotate(cmd.Context(), records)
		if err != nil {
			return eris.Wrap(err, "annotate records")
		}

		payload, err := json.MarshalIndent(annotated, "", "  ")
		if err != nil {
			return eris.Wrap(err, "encode annotated dataset")
		}
		if err := os.WriteFile(suggestOut, payload, 0o644); err != nil {
			return eris.Wrapf(err, "write %s", suggestOut)
		}

		zap.L().Info("annotation complete",
			zap.String("out", suggestOut),
			zap.Int("records", len(annotated)),
		)
		return nil
	},
}

func init() {
	suggestCmd.Flags().StringVar(&suggestInput, "input", "", "local dataset JSON file (default: fetch from configured URLs)")
	suggestCmd.Flags().StringVar(&suggestOut, "out", "esg_indicators_ai.json", "output path for the annotated dataset")
	rootCmd.AddCommand(suggestCmd)
}
