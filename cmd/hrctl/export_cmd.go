package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/locvowork/hrrecords/internal/domain"
)

func newExportCmd() *cobra.Command {
	var (
		out       string
		minSalary string
		maxSalary string
		name      string
		sort      string
		order     string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write matching employees to an xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := domain.NewQuerySpec()
			var err error
			if spec.MinSalary, err = decimal.NewFromString(minSalary); err != nil {
				return fmt.Errorf("invalid --min-salary: %w", err)
			}
			if spec.MaxSalary, err = decimal.NewFromString(maxSalary); err != nil {
				return fmt.Errorf("invalid --max-salary: %w", err)
			}
			if name != "" {
				spec.Name = &name
			}
			if cmd.Flags().Changed("limit") {
				spec.Limit = &limit
			}
			spec.Sort, spec.Order = sort, order

			app, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			employees, err := app.Employees.List(cmd.Context(), spec)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := app.Exporter.Write(f, employees); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), map[string]any{"file": out, "employees": len(employees)})
		},
	}

	cmd.Flags().StringVar(&out, "out", "employees.xlsx", "Output file")
	cmd.Flags().StringVar(&minSalary, "min-salary", domain.DefaultMinSalary.String(), "Lowest salary, inclusive")
	cmd.Flags().StringVar(&maxSalary, "max-salary", domain.DefaultMaxSalary.StringFixed(2), "Highest salary, exclusive")
	cmd.Flags().StringVar(&name, "name", "", "Name substring")
	cmd.Flags().StringVar(&sort, "sort", domain.DefaultSortField, "Sort field: id, name, login or salary")
	cmd.Flags().StringVar(&order, "order", domain.DefaultOrder, "ASC or DESC")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of employees (default unbounded)")
	return cmd
}
