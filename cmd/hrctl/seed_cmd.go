package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/locvowork/hrrecords/internal/database"
)

func newSeedCmd() *cobra.Command {
	var (
		count    int
		preset   string
		clearAll bool
		seed     int64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert random valid employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			seeder := database.NewDataSeeder(app.Employees, app.Tx, seed)
			if clearAll {
				removed, err := seeder.ClearData(cmd.Context())
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), map[string]any{"removed": removed})
			}

			if count <= 0 {
				count = database.GetPresetCount(database.SeedPreset(preset))
			}
			stats, err := seeder.SeedData(cmd.Context(), count)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), stats)
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "Number of employees (overrides --preset)")
	cmd.Flags().StringVar(&preset, "preset", string(database.PresetMedium), "Data preset: small, medium, large, xlarge")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Delete every employee instead of seeding")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "Random seed")
	return cmd
}
