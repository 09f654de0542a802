// Package pkg provides the core libraries for Recipecost recipe costing.
//
// # Overview
//
// Recipecost prices a recipe from its ingredients: each row contributes
// quantity × unit multiplier × unit price, the total is split over the
// servings, and markup and VAT turn the per-serving cost into a selling
// price. The pkg directory is organized into these areas:
//
//  1. [cost] - Pure calculation (parsing, units, aggregation, formatting)
//  2. [recipe] - Editable ingredient lists and the built-in examples
//  3. [io] - Recipe files (CSV, TOML, YAML, JSON) and cost reports
//  4. [pipeline] - Orchestration (calculate → render) with result caching
//  5. [render] - Breakdown charts (SVG doughnut, Graphviz cost tree)
//  6. [cache], [prefs] - Infrastructure (result cache, theme preference)
//  7. [errors], [observability], [tutorial], [buildinfo] - Supporting pieces
//
// # Architecture
//
// The typical data flow through Recipecost:
//
//	Recipe file / CLI flags / TUI / HTTP request
//	         ↓
//	    [recipe] package (rows + settings)
//	         ↓
//	    [cost] package (Aggregate, Breakdown)
//	         ↓
//	    [pipeline] package (cache lookup, calculation, rendering)
//	         ↓
//	    Report (table/JSON/CSV) and SVG/DOT/PNG/JSON charts
//
// # Quick Start
//
// Calculate a built-in example and render its breakdown:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/recipecost/pkg/cache"
//	    "github.com/matzehuels/recipecost/pkg/pipeline"
//	    "github.com/matzehuels/recipecost/pkg/recipe"
//	    "github.com/matzehuels/recipecost/pkg/render/chart"
//	)
//
//	rec := recipe.FromExample("Shopska salad")
//	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, nil)
//	defer runner.Close()
//
//	res, _ := runner.Calculate(ctx, pipeline.FromRecipe(rec))
//	fmt.Println(cost.FormatCurrency(res.Summary.PriceWithVAT, cost.DefaultCurrency))
//
//	out, _, _ := runner.Render(ctx, res, []string{chart.FormatSVG}, chart.Options{})
//	os.WriteFile("salad.svg", out[chart.FormatSVG], 0o644)
//
// # Input Tolerance
//
// Numeric fields are kept as the text the user typed. [cost.ParseNumeric]
// accepts a decimal comma, ignores trailing garbage ("12abc" is 12) and
// treats anything unparsable as zero, so an incomplete row never fails a
// calculation. Zero or negative servings count as one.
//
// # Caching
//
// The [pipeline] caches summaries and rendered charts under content hashes
// of the rows and settings, so repeated calculations of the same recipe are
// served from the file, Redis or in-memory [cache] backends.
package pkg
