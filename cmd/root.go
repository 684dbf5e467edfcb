package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/peter890821/esg-eval-dashboard/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "esg-dashboard",
	Short: "ESG evaluation indicator dashboard backend",
	Long:  "Loads the yearly ESG indicator dataset, serves the kanban/table dashboard API, exports CSV/XLSX artifacts and annotates indicators with AI improvement suggestions.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
