package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/recipecost/pkg/cost"
	"github.com/matzehuels/recipecost/pkg/errors"
	recipeio "github.com/matzehuels/recipecost/pkg/io"
	"github.com/matzehuels/recipecost/pkg/recipe"
)

// inputOpts holds the flags that select which recipe(s) a command works on.
// Recipe files are given as arguments; without them the recipe is built
// from --example or --ingredient.
type inputOpts struct {
	example     string   // built-in example to load
	ingredients []string // "name:qty:unit:price" rows
	servings    string
	markup      string
	vat         string
}

// register adds the input flags to cmd.
func (o *inputOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.example, "example", "e", "", "start from a built-in example (see 'recipecost examples')")
	cmd.Flags().StringArrayVarP(&o.ingredients, "ingredient", "i", nil, `ingredient as "name:quantity:unit:price" (repeatable)`)
	cmd.Flags().StringVar(&o.servings, "servings", "", "number of servings (overrides the recipe)")
	cmd.Flags().StringVar(&o.markup, "markup", "", "markup in percent (overrides the recipe)")
	cmd.Flags().StringVar(&o.vat, "vat", "", "VAT in percent (overrides the recipe)")
	_ = cmd.RegisterFlagCompletionFunc("example", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return recipe.ExampleNames(), cobra.ShellCompDirectiveNoFileComp
	})
}

// load resolves the recipes named by files and the flags. Files are read
// concurrently; the result keeps argument order.
func (o *inputOpts) load(ctx context.Context, files []string, defaults cost.Settings) ([]*recipe.Recipe, error) {
	var recipes []*recipe.Recipe
	switch {
	case len(files) > 0:
		if o.example != "" || len(o.ingredients) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "recipe files cannot be combined with --example or --ingredient")
		}
		loaded, err := importAll(ctx, files)
		if err != nil {
			return nil, err
		}
		recipes = loaded
	default:
		rec, err := o.build(defaults)
		if err != nil {
			return nil, err
		}
		recipes = []*recipe.Recipe{rec}
	}

	for _, rec := range recipes {
		o.override(rec)
	}
	return recipes, nil
}

// build assembles a recipe from --example and --ingredient. Ingredient rows
// are appended after the example's.
func (o *inputOpts) build(defaults cost.Settings) (*recipe.Recipe, error) {
	if o.example == "" && len(o.ingredients) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nothing to calculate: pass recipe files, --example or --ingredient")
	}

	rec := &recipe.Recipe{Settings: defaults}
	if o.example != "" {
		ex, ok := recipe.FindExample(o.example)
		if !ok {
			return nil, errors.New(errors.ErrCodeNotFound, "unknown example %q (have: %s)",
				o.example, strings.Join(recipe.ExampleNames(), ", "))
		}
		rec.Name = ex.Name
		for _, ing := range ex.Ingredients {
			rec.Append(ing)
		}
	}
	for i, arg := range o.ingredients {
		ing, err := parseIngredient(arg)
		if err != nil {
			return nil, fmt.Errorf("--ingredient %d: %w", i+1, err)
		}
		rec.Append(ing)
	}
	rec.Normalize()
	return rec, nil
}

// override applies explicitly set settings flags.
func (o *inputOpts) override(rec *recipe.Recipe) {
	if o.servings != "" {
		rec.Settings.Servings = o.servings
	}
	if o.markup != "" {
		rec.Settings.MarkupPercent = o.markup
	}
	if o.vat != "" {
		rec.Settings.VATPercent = o.vat
	}
}

// importAll reads every file concurrently.
func importAll(ctx context.Context, files []string) ([]*recipe.Recipe, error) {
	out := make([]*recipe.Recipe, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := recipeio.ImportRecipe(path)
			if err != nil {
				return err
			}
			if rec.Name == "" {
				rec.Name = filepath.Base(path)
			}
			out[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// parseIngredient parses "name:quantity:unit:price". The name may itself
// contain colons; the last three fields are always quantity, unit and price.
func parseIngredient(s string) (cost.Ingredient, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 4 {
		return cost.Ingredient{}, errors.New(errors.ErrCodeInvalidInput,
			"ingredient %q: want name:quantity:unit:price", s)
	}
	n := len(parts)
	unit, err := cost.ParseUnit(parts[n-2])
	if err != nil {
		return cost.Ingredient{}, err
	}
	return cost.Ingredient{
		Name:     strings.TrimSpace(strings.Join(parts[:n-3], ":")),
		Quantity: strings.TrimSpace(parts[n-3]),
		Unit:     unit,
		Price:    strings.TrimSpace(parts[n-1]),
	}, nil
}
