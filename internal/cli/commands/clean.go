package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stayflow-labs/dataguard/internal/cleaner"
	"github.com/stayflow-labs/dataguard/internal/config"
)

// NewCleanCommand creates the clean command.
func NewCleanCommand() *cobra.Command {
	var (
		output   string
		minPrice float64
		maxPrice float64
	)
	cmd := &cobra.Command{
		Use:   "clean [input]",
		Short: "Run the basic cleaning stage",
		Long: `Drop rows with out-of-range prices, normalize the review date column to
a timestamp, drop rows outside the geographic bound box, and write the
cleaned dataset as CSV.`,
		Example: `  # Clean the configured dataset
  dataguard clean

  # Clean an explicit file with custom price bounds
  dataguard clean listings.csv --output clean_sample.csv --min-price 10 --max-price 350`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetConfig(cmd.Context())
			logger := GetLogger(cmd.Context())

			input := cfg.Dataset
			if len(args) > 0 {
				input = args[0]
			}
			if input == "" {
				return fmt.Errorf("no input: pass a path or set dataset in %s", config.ConfigFileName)
			}

			out := cfg.Cleaning.Output
			if cmd.Flags().Changed("output") {
				out = output
			}
			if out == "" {
				return fmt.Errorf("no output path: use --output or set cleaning.output in %s", config.ConfigFileName)
			}

			opts := cleaner.Options{
				MinPrice:    cfg.Cleaning.MinPrice,
				MaxPrice:    cfg.Cleaning.MaxPrice,
				PriceColumn: cfg.Cleaning.PriceColumn,
				DateColumn:  cfg.Cleaning.DateColumn,
			}
			if cmd.Flags().Changed("min-price") {
				opts.MinPrice = minPrice
			}
			if cmd.Flags().Changed("max-price") {
				opts.MaxPrice = maxPrice
			}
			if opts.MinPrice > opts.MaxPrice {
				return fmt.Errorf("min price %g is greater than max price %g", opts.MinPrice, opts.MaxPrice)
			}

			schema, err := cfg.TableSchema()
			if err != nil {
				return err
			}
			ds, err := loadTable(cmd.Context(), cfg.Engine, input, schema)
			if err != nil {
				return err
			}

			cleaned, stats, err := cleaner.Clean(ds, opts, logger)
			if err != nil {
				return err
			}
			if err := cleaned.WriteCSVFile(out); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"Cleaned %d rows to %d (%d price outliers, %d out of bounds)\n",
				stats.RowsIn, stats.RowsOut, stats.DroppedPrice, stats.DroppedGeo)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "Path for the cleaned CSV")
	cmd.Flags().Float64Var(&minPrice, "min-price", config.DefaultMinPrice, "Minimum accepted price")
	cmd.Flags().Float64Var(&maxPrice, "max-price", config.DefaultMaxPrice, "Maximum accepted price")
	return cmd
}
