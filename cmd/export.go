package main

import (
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/peter890821/esg-eval-dashboard/internal/export"
	"github.com/peter890821/esg-eval-dashboard/internal/filter"
	"github.com/peter890821/esg-eval-dashboard/internal/loader"
	"github.com/peter890821/esg-eval-dashboard/internal/model"
)

var (
	exportInput      string
	exportOut        string
	exportFormat     string
	exportFace       string
	exportStatus     string
	exportDepartment string
	exportSearch     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the indicator dataset as CSV or XLSX",
	RunE: func(cmd *cobra.Command, _ []string) error {
		records, err := exportRecords(cmd)
		if err != nil {
			return err
		}

		filtered := filter.Apply(records, filter.Criteria{
			Face:       model.Face(exportFace),
			Status:     model.StatusTag(exportStatus),
			Department: exportDepartment,
			Search:     exportSearch,
		})

		format := exportFormat
		if format == "" {
			format = cfg.Export.DefaultFormat
		}

		out := exportOut
		switch format {
		case "csv":
			if out == "" {
				out = export.CSVFilename
			}
			if err := os.WriteFile(out, export.CSV(filtered), 0o644); err != nil {
				return eris.Wrapf(err, "write %s", out)
			}
		case "xlsx":
			if out == "" {
				out = export.XLSXFilename
			}
			f, err := os.Create(out)
			if err != nil {
				return eris.Wrapf(err, "create %s", out)
			}
			defer f.Close() //nolint:errcheck
			if err := export.XLSX(filtered, f); err != nil {
				return err
			}
		default:
			return eris.Errorf("unknown format %q (want csv or xlsx)", format)
		}

		zap.L().Info("export complete",
			zap.String("out", out),
			zap.Int("records", len(filtered)),
		)
		return nil
	},
}

// exportRecords reads the dataset from --input, or fetches it with the
// configured source URLs when no file is given.
func exportRecords(cmd *cobra.Command) ([]model.Record, error) {
	if exportInput != "" {
		return loader.LoadFile(exportInput)
	}

	ld := loader.New(loader.Options{
		PrimaryURL:  cfg.Dataset.PrimaryURL,
		FallbackURL: cfg.Dataset.FallbackURL,
		Timeout:     time.Duration(cfg.Dataset.TimeoutSecs) * time.Second,
	})
	records, _, err := ld.Load(cmd.Context())
	return records, err
}

func init() {
	exportCmd.Flags().StringVar(&exportInput, "input", "", "local dataset JSON file (default: fetch from configured URLs)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (default per format)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "output format: csv or xlsx (default from config)")
	exportCmd.Flags().StringVar(&exportFace, "face", "", "filter by face (E, S or G)")
	exportCmd.Flags().StringVar(&exportStatus, "status", "", "filter by status tag")
	exportCmd.Flags().StringVar(&exportDepartment, "department", "", "filter by department")
	exportCmd.Flags().StringVar(&exportSearch, "q", "", "substring search filter")
	rootCmd.AddCommand(exportCmd)
}
