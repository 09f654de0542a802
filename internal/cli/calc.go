package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/recipecost/pkg/errors"
	recipeio "github.com/matzehuels/recipecost/pkg/io"
	"github.com/matzehuels/recipecost/pkg/pipeline"
	"github.com/matzehuels/recipecost/pkg/recipe"
)

// formatTable is the default, human-readable output of calc.
const formatTable = "table"

// calcOpts holds the command-line flags for the calc command.
type calcOpts struct {
	input    inputOpts
	format   string // table, json or csv
	currency string // suffix for amounts; empty uses the configured one
	save     string // write the (single) recipe to this file
	noCache  bool
	refresh  bool
}

// calcCommand creates the calc command.
func (c *CLI) calcCommand() *cobra.Command {
	opts := calcOpts{format: formatTable}

	cmd := &cobra.Command{
		Use:   "calc [files...]",
		Short: "Calculate cost per serving and selling price",
		Long: `Calculate the total cost, cost per serving and selling price of one or more recipes.

Recipes are read from CSV, TOML, YAML or JSON files, or assembled from
--example and --ingredient flags:

  recipecost calc salad.toml stew.csv
  recipecost calc --example "Shopska salad" --servings 4
  recipecost calc -i "Flour:500:g:2.40" -i "Eggs:3:br:0.45" --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateReportFormat(opts.format); err != nil {
				return err
			}
			return c.runCalc(cmd.Context(), cmd.OutOrStdout(), args, &opts)
		},
	}

	opts.input.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: table, json, csv")
	cmd.Flags().StringVar(&opts.currency, "currency", "", "currency suffix for amounts (default from config)")
	cmd.Flags().StringVar(&opts.save, "save", "", "also save the recipe to a .csv, .toml, .yaml or .json file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recalculate even when a cached result exists")

	return cmd
}

// validateReportFormat accepts table, json and csv.
func validateReportFormat(f string) error {
	switch f {
	case formatTable, string(recipeio.FormatJSON), string(recipeio.FormatCSV):
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'table', 'json' or 'csv')", f)
}

// runCalc loads the recipes, calculates them concurrently and prints one
// report per recipe in argument order.
func (c *CLI) runCalc(ctx context.Context, w io.Writer, files []string, opts *calcOpts) error {
	prog := newProgress(c.Logger)

	recipes, err := opts.input.load(ctx, files, c.Config.Defaults.Settings())
	if err != nil {
		return err
	}
	if opts.save != "" {
		if len(recipes) != 1 {
			return errors.New(errors.ErrCodeInvalidInput, "--save needs exactly one recipe, got %d", len(recipes))
		}
		if err := recipeio.ExportRecipe(recipes[0], opts.save); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	results, err := calculateAll(ctx, runner, recipes, opts.refresh)
	if err != nil {
		return err
	}

	currency := opts.currency
	if currency == "" {
		currency = c.currency()
	}

	for i, rec := range recipes {
		rep := recipeio.NewReport(rec, currency)
		rep.Summary = results[i].Summary

		if opts.format == formatTable {
			if i > 0 {
				fmt.Fprintln(w)
			}
			writeReport(w, rep)
			printStats(w, results[i].Stats.Rows, results[i].CacheHit)
			continue
		}
		if i > 0 && opts.format == string(recipeio.FormatCSV) {
			fmt.Fprintln(w)
		}
		if err := recipeio.WriteReport(rep, w, recipeio.Format(opts.format)); err != nil {
			return err
		}
	}

	if opts.save != "" {
		c.Logger.Info("Saved recipe", "path", opts.save)
	}
	prog.done(fmt.Sprintf("Calculated %d recipe(s)", len(recipes)))
	return nil
}

// calculateAll runs the pipeline for every recipe concurrently.
func calculateAll(ctx context.Context, runner *pipeline.Runner, recipes []*recipe.Recipe, refresh bool) ([]*pipeline.Result, error) {
	results := make([]*pipeline.Result, len(recipes))
	g, ctx := errgroup.WithContext(ctx)
	for i, rec := range recipes {
		g.Go(func() error {
			req := pipeline.FromRecipe(rec)
			req.Refresh = refresh
			res, err := runner.Calculate(ctx, req)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
