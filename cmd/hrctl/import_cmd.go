package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/locvowork/hrrecords/internal/domain"
	"github.com/locvowork/hrrecords/internal/ingestion"
	"github.com/locvowork/hrrecords/internal/repository/memory"
	"github.com/locvowork/hrrecords/internal/validation"
)

type importOutput struct {
	File      string `json:"file"`
	DryRun    bool   `json:"dry_run"`
	RunID     string `json:"run_id"`
	Outcome   string `json:"outcome"`
	Message   string `json:"message"`
	Rows      int    `json:"rows"`
	Persisted int    `json:"persisted"`
	Skipped   int    `json:"skipped"`
}

func newImportCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Load a CSV or xlsx employee file in one transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			var importer *ingestion.Pipeline
			if dryRun {
				importer = ingestion.NewPipeline(memory.NewStore(), validation.NewEmployeeValidator())
			} else {
				app, err := initApp(cmd.Context())
				if err != nil {
					return err
				}
				defer app.Close()
				importer = app.Importer
			}

			res, runErr := importer.Run(cmd.Context(), ingestion.ReaderFor(path, f))
			out := importOutput{
				File:      path,
				DryRun:    dryRun,
				RunID:     res.RunID,
				Rows:      res.Rows,
				Persisted: res.Persisted,
				Skipped:   res.Skipped,
			}
			switch {
			case runErr == nil:
				out.Outcome, out.Message = "created", "Data is created"
			case domain.KindOf(runErr) == domain.KindUnableToPersist:
				out.Outcome, out.Message = "not_processed", "File is uploaded but not processed - "+runErr.Error()
			case domain.KindOf(runErr) != "":
				out.Outcome, out.Message = "rejected", runErr.Error()
			default:
				return fmt.Errorf("import %s: %w", path, runErr)
			}

			if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			return runErr
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate against an empty in-memory store instead of PostgreSQL")
	return cmd
}
