package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/recipecost/pkg/errors"
	"github.com/matzehuels/recipecost/pkg/pipeline"
	"github.com/matzehuels/recipecost/pkg/prefs"
	"github.com/matzehuels/recipecost/pkg/recipe"
	"github.com/matzehuels/recipecost/pkg/render/chart"
)

// stdoutPath makes chart write its single artifact to standard output.
const stdoutPath = "-"

// chartOpts holds the command-line flags for the chart command.
type chartOpts struct {
	input    inputOpts
	output   string   // output file (single format), base path (multiple) or "-"
	formats  []string // svg, dot, png, json
	theme    string   // light or dark; empty uses the stored preference
	width    float64
	height   float64
	legend   bool
	currency string
	noCache  bool
	refresh  bool
}

// chartCommand creates the chart command for rendering the cost breakdown.
func (c *CLI) chartCommand() *cobra.Command {
	var formatsStr string
	opts := chartOpts{
		width:  chart.DefaultWidth,
		height: chart.DefaultHeight,
		legend: true,
	}

	cmd := &cobra.Command{
		Use:   "chart [file]",
		Short: "Render the cost breakdown as a doughnut chart",
		Long: `Render each ingredient's share of the total cost.

SVG draws a doughnut with a legend; DOT and PNG draw the recipe as a
graph with one node per ingredient; JSON lists the segments with their
shares and colours.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if opts.output == stdoutPath && len(opts.formats) != 1 {
				return errors.New(errors.ErrCodeInvalidInput, "-o - writes a single format, got %d", len(opts.formats))
			}
			return c.runChart(cmd.Context(), cmd.OutOrStdout(), args, &opts)
		},
	}

	opts.input.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file (single format), base path (multiple) or "-" for stdout`)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, json (comma-separated)")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "colour theme: light, dark (default: stored preference)")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "frame width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "frame height")
	cmd.Flags().BoolVar(&opts.legend, "legend", opts.legend, "draw the legend")
	cmd.Flags().StringVar(&opts.currency, "currency", "", "currency suffix for amounts (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recalculate even when a cached result exists")

	return cmd
}

// runChart calculates the recipe and writes one artifact per format.
func (c *CLI) runChart(ctx context.Context, w io.Writer, files []string, opts *chartOpts) error {
	recipes, err := opts.input.load(ctx, files, c.Config.Defaults.Settings())
	if err != nil {
		return err
	}
	rec := recipes[0]

	theme, err := c.chartTheme(ctx, opts.theme)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	req := pipeline.FromRecipe(rec)
	req.Refresh = opts.refresh
	res, err := runner.Calculate(ctx, req)
	if err != nil {
		return err
	}

	currency := opts.currency
	if currency == "" {
		currency = c.currency()
	}
	renderOpts := chart.Options{
		Theme:    theme,
		Width:    opts.width,
		Height:   opts.height,
		Legend:   opts.legend,
		Currency: currency,
	}

	var spinner *Spinner
	if opts.output != stdoutPath {
		spinner = newSpinnerWithContext(ctx, "Rendering chart...")
		spinner.Start()
	}
	artifacts, cached, err := runner.Render(ctx, res, opts.formats, renderOpts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	c.Logger.Debug("chart ready", "theme", theme, "cached", cached)

	if opts.output == stdoutPath {
		_, err := w.Write(artifacts[opts.formats[0]])
		return err
	}

	base := basePath(opts.output, inputName(files, rec))
	for _, format := range opts.formats {
		path := base + "." + format
		if len(opts.formats) == 1 && opts.output != "" {
			path = opts.output
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// chartTheme resolves --theme, falling back to the stored preference and
// then to the default theme when the store is unavailable.
func (c *CLI) chartTheme(ctx context.Context, flag string) (prefs.Theme, error) {
	if flag != "" {
		return prefs.ParseTheme(flag)
	}
	store, err := c.Config.OpenPrefs(ctx)
	if err != nil {
		c.Logger.Warn("preferences unavailable, using default theme", "err", err)
		return prefs.DefaultTheme, nil
	}
	defer store.Close()
	theme, err := store.Theme(ctx)
	if err != nil {
		c.Logger.Warn("could not read theme, using default", "err", err)
		return prefs.DefaultTheme, nil
	}
	return theme, nil
}

// inputName picks the name output files are derived from: the input file,
// or the recipe name when the recipe came from flags.
func inputName(files []string, rec *recipe.Recipe) string {
	if len(files) > 0 {
		return files[0]
	}
	if rec.Name == "" {
		return "chart"
	}
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(rec.Name)), " ", "-")
}

// basePath derives the base output path from the output and input names.
// If output is empty, it strips the extension from input.
// If output has a chart format extension, it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if chart.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
