package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/recipecost/pkg/cost"
	"github.com/matzehuels/recipecost/pkg/errors"
	recipeio "github.com/matzehuels/recipecost/pkg/io"
	"github.com/matzehuels/recipecost/pkg/recipe"
)

// examplesCommand creates the examples command.
func (c *CLI) examplesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "examples",
		Short: "List the built-in example recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, ex := range recipe.Examples() {
				total := cost.Aggregate(ex.Ingredients, c.Config.Defaults.Settings()).TotalCost
				fmt.Fprintf(w, "%s %s\n",
					StyleValue.Render(fmt.Sprintf("%-16s", ex.Name)),
					StyleDim.Render(fmt.Sprintf("%d ingredients · %s", len(ex.Ingredients), cost.FormatCurrency(total, c.currency()))))
			}
			return nil
		},
	}

	cmd.AddCommand(c.examplesShowCommand())
	return cmd
}

// examplesShowCommand creates the "examples show" subcommand.
func (c *CLI) examplesShowCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Show an example recipe",
		Long: `Show an example recipe with its calculated costs.

With --format csv, toml, yaml or json the recipe itself is printed so it can
be saved and edited:

  recipecost examples show moussaka --format toml > moussaka.toml`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return recipe.ExampleNames(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := recipe.FindExample(args[0]); !ok {
				return errors.New(errors.ErrCodeNotFound, "unknown example %q", args[0])
			}
			rec := recipe.FromExample(args[0])
			rec.Settings = c.Config.Defaults.Settings()

			w := cmd.OutOrStdout()
			if format == formatTable {
				writeReport(w, recipeio.NewReport(rec, c.currency()))
				return nil
			}
			f, err := recipeio.ParseFormat(format)
			if err != nil {
				return err
			}
			return recipeio.WriteRecipe(rec, w, f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table, csv, toml, yaml, json")
	return cmd
}
