package main

import (
	"fmt"
	"os"

	"Pergola/internal/calc/report"
	"Pergola/internal/calc/structure"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func newGenerateCmd(opts *options, v *viper.Viper) *cobra.Command {
	var members bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the frame members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadParams(opts, v)
			if err != nil {
				return err
			}
			res, err := structure.Generate(structure.Direct, p)
			if err != nil {
				return err
			}
			if !members {
				res.Members = nil
			}
			return output(cmd, res, OutputFormat(opts.format))
		},
	}
	cmd.Flags().BoolVar(&members, "members", false, "Include every member in the output")
	return cmd
}

func newEstimateCmd(opts *options, v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "estimate",
		Short: "Generate the frame and price it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := calculate(cmd, opts, v)
			if err != nil {
				return err
			}
			res.Members = nil
			return output(cmd, res, OutputFormat(opts.format))
		},
	}
}

func newReportCmd(opts *options, v *viper.Viper) *cobra.Command {
	var out, project, author string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a PDF cost report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := calculate(cmd, opts, v)
			if err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			number, err := report.Write(f, res, report.Meta{Project: project, Author: author})
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "report %s written to %s\n", number, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "report.pdf", "Output PDF path")
	cmd.Flags().StringVar(&project, "project", "", "Project name on the report")
	cmd.Flags().StringVar(&author, "author", "", "Author on the report")
	return cmd
}

func newTubesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tubes",
		Short: "List nominal tube sections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return output(cmd, structure.Tubes(), OutputFormat(opts.format))
		},
	}
}

func newPricesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "prices",
		Short: "Print the effective price table as YAML",
		Long: `Print the built-in price table with --prices and --prices-xlsx laid over it.
The output can be edited and passed back with --prices.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadPrices(cmd.Context(), opts)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(table); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

func calculate(cmd *cobra.Command, opts *options, v *viper.Viper) (structure.Result, error) {
	p, err := loadParams(opts, v)
	if err != nil {
		return structure.Result{}, err
	}
	prices, err := loadPrices(cmd.Context(), opts)
	if err != nil {
		return structure.Result{}, err
	}
	return structure.Calculate(structure.Direct, p, prices)
}

func output(cmd *cobra.Command, v any, format OutputFormat) error {
	s, err := FormatResponse(v, format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
	return err
}
